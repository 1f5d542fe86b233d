package schedule

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/mwarner/courtsched/internal/config"
)

// Slot represents one unit of weekly capacity: a venue, court, and timeslot
// combination usable by at most one match per week. Time is the raw HH:MM
// string; display formatting is a presentation concern.
type Slot struct {
	Venue string
	Court string
	Time  string
}

// ShortVenueName returns the display label for a venue. A venue whose name
// contains "mullum" collapses to "Mullum". Kept for compatibility with
// existing fixtures; everything else passes through trimmed.
func ShortVenueName(name string) string {
	s := strings.TrimSpace(name)
	if s == "" {
		return s
	}
	if strings.Contains(strings.ToLower(s), "mullum") {
		return "Mullum"
	}
	return s
}

// BuildSlots enumerates every (venue, court, timeslot) triple in canonical
// order: venue display label, then court natural-sort key, then raw time.
// This is the exact order the placement engine scans for a free slot, so it
// decides scheduling outcomes, not just display.
func BuildSlots(venues []config.Venue, timeslots []string) []Slot {
	var slots []Slot

	for _, v := range venues {
		venue := ShortVenueName(v.Name)
		for _, c := range v.Courts {
			court := strings.TrimSpace(c)
			if court == "" {
				continue
			}
			for _, t := range timeslots {
				slots = append(slots, Slot{Venue: venue, Court: court, Time: t})
			}
		}
	}

	sort.Slice(slots, func(i, j int) bool {
		a, b := slots[i], slots[j]
		if a.Venue != b.Venue {
			return a.Venue < b.Venue
		}
		if a.Court != b.Court {
			return courtLess(a.Court, b.Court)
		}
		return a.Time < b.Time
	})

	return slots
}

var (
	numAlphaRe = regexp.MustCompile(`^([0-9]+)([A-Za-z]+)$`)
	alphaNumRe = regexp.MustCompile(`^([A-Za-z]+)([0-9]+)$`)
)

type courtKey struct {
	kind int // 0: "3A" style, 1: "DC1" style, 2: anything else
	num  int
	str  string
}

func courtSortKey(c string) courtKey {
	s := strings.TrimSpace(c)
	if m := numAlphaRe.FindStringSubmatch(s); m != nil {
		n, _ := strconv.Atoi(m[1])
		return courtKey{kind: 0, num: n, str: strings.ToUpper(m[2])}
	}
	if m := alphaNumRe.FindStringSubmatch(s); m != nil {
		n, _ := strconv.Atoi(m[2])
		return courtKey{kind: 1, num: n, str: strings.ToUpper(m[1])}
	}
	return courtKey{kind: 2, num: 9999, str: strings.ToUpper(s)}
}

func courtLess(a, b string) bool {
	ka, kb := courtSortKey(a), courtSortKey(b)
	if ka.kind != kb.kind {
		return ka.kind < kb.kind
	}
	if ka.num != kb.num {
		return ka.num < kb.num
	}
	return ka.str < kb.str
}

// FormatTimeLabel renders a raw HH:MM time as a 12-hour label ("19:00" ->
// "7:00pm"). Inputs that don't look like HH:MM come back unchanged.
func FormatTimeLabel(hhmm string) string {
	s := strings.TrimSpace(hhmm)
	hh, mm, ok := strings.Cut(s, ":")
	if !ok || len(mm) != 2 {
		return s
	}
	h, err := strconv.Atoi(hh)
	if err != nil {
		return s
	}

	ampm := "am"
	if h >= 12 {
		ampm = "pm"
	}
	h = h % 12
	if h == 0 {
		h = 12
	}
	return strconv.Itoa(h) + ":" + mm + ampm
}
