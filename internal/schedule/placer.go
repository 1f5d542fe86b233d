package schedule

import (
	"sort"

	"github.com/mwarner/courtsched/internal/clash"
	"github.com/mwarner/courtsched/internal/config"
	"github.com/mwarner/courtsched/internal/strategy"
)

// RejectReason categorizes why a candidate slot was rejected for a game.
type RejectReason int

const (
	RejectSlotUsed RejectReason = iota // physical court slot already claimed
	RejectTeamBusy                     // home or away already playing at that time
	RejectClash                        // a clash partner is playing at that time
)

func (r RejectReason) String() string {
	switch r {
	case RejectSlotUsed:
		return "slot used"
	case RejectTeamBusy:
		return "team already playing"
	case RejectClash:
		return "clash"
	default:
		return "unknown"
	}
}

// Tracer receives placement decisions as they happen. The engine itself is
// side-effect-free; verbose accept/reject tracing is the caller's concern.
// For RejectClash events, other names the already-placed team that triggered
// the rejection; it is empty otherwise.
type Tracer interface {
	Placed(week int, m strategy.Match, s Slot)
	Rejected(week int, m strategy.Match, s Slot, reason RejectReason, other string)
	Unassigned(week int, m strategy.Match)
}

// NopTracer discards all events.
type NopTracer struct{}

func (NopTracer) Placed(int, strategy.Match, Slot)                        {}
func (NopTracer) Rejected(int, strategy.Match, Slot, RejectReason, string) {}
func (NopTracer) Unassigned(int, strategy.Match)                          {}

type slotKey struct {
	venue string
	court string
	time  string
}

// Place assigns every non-BYE fixture to the first slot, in catalogue order,
// that is physically free, has neither team already playing at that time,
// and puts no clash pair on court simultaneously. Weeks are placed
// independently; per-week claim state is discarded between weeks.
//
// Games that fit nowhere are emitted with empty venue/court/time rather than
// dropped: partial placement is a reportable condition, not an error. BYE
// fixtures pass through with sentinel placeholders and consume no capacity.
//
// The returned list is sorted for display by week, division, venue, time,
// then home+away. Identical inputs always produce identical output.
func Place(fixtures []strategy.Match, slots []Slot, clashes *clash.Set, tracer Tracer) []strategy.Match {
	if tracer == nil {
		tracer = NopTracer{}
	}
	if clashes == nil {
		clashes = clash.NewSet(nil)
	}

	byWeek := make(map[int][]strategy.Match)
	var weeks []int
	for _, m := range fixtures {
		if _, ok := byWeek[m.Week]; !ok {
			weeks = append(weeks, m.Week)
		}
		byWeek[m.Week] = append(byWeek[m.Week], m)
	}
	sort.Ints(weeks)

	out := make([]strategy.Match, 0, len(fixtures))
	for _, week := range weeks {
		out = placeWeek(out, week, byWeek[week], slots, clashes, tracer)
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Week != b.Week {
			return a.Week < b.Week
		}
		if a.Division != b.Division {
			return a.Division < b.Division
		}
		if a.Venue != b.Venue {
			return a.Venue < b.Venue
		}
		if a.Time != b.Time {
			return a.Time < b.Time
		}
		return a.Home+a.Away < b.Home+b.Away
	})

	return out
}

func placeWeek(out []strategy.Match, week int, fixtures []strategy.Match, slots []Slot, clashes *clash.Set, tracer Tracer) []strategy.Match {
	var games, byes []strategy.Match
	for _, m := range fixtures {
		if m.IsBye() {
			byes = append(byes, m)
		} else {
			games = append(games, m)
		}
	}

	// Fixed claim order for reproducibility. Not priority-weighted.
	sort.Slice(games, func(i, j int) bool {
		return games[i].Division+games[i].Home+games[i].Away <
			games[j].Division+games[j].Home+games[j].Away
	})

	usedSlots := make(map[slotKey]bool)
	playingAtTime := make(map[string][]string)

	playing := func(time, team string) bool {
		for _, t := range playingAtTime[time] {
			if t == team {
				return true
			}
		}
		return false
	}

	for _, g := range games {
		placed := false

		for _, s := range slots {
			sk := slotKey{s.Venue, s.Court, s.Time}
			if usedSlots[sk] {
				tracer.Rejected(week, g, s, RejectSlotUsed, "")
				continue
			}

			if playing(s.Time, g.Home) || playing(s.Time, g.Away) {
				tracer.Rejected(week, g, s, RejectTeamBusy, "")
				continue
			}

			clashed := false
			for _, other := range playingAtTime[s.Time] {
				if clashes.IsPair(g.Home, other) || clashes.IsPair(g.Away, other) {
					tracer.Rejected(week, g, s, RejectClash, other)
					clashed = true
					break
				}
			}
			if clashed {
				continue
			}

			g.Venue = s.Venue
			g.Court = s.Court
			g.Time = s.Time
			out = append(out, g)

			usedSlots[sk] = true
			playingAtTime[s.Time] = append(playingAtTime[s.Time], g.Home, g.Away)
			tracer.Placed(week, g, s)
			placed = true
			break
		}

		if !placed {
			g.Venue, g.Court, g.Time = "", "", ""
			out = append(out, g)
			tracer.Unassigned(week, g)
		}
	}

	for _, b := range byes {
		b.Venue = config.Bye
		b.Court = "-"
		b.Time = ""
		out = append(out, b)
	}

	return out
}
