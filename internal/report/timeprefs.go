package report

import (
	"sort"

	"github.com/mwarner/courtsched/internal/config"
	"github.com/mwarner/courtsched/internal/strategy"
)

// TimePrefStats counts how a team's placed games landed against its declared
// timeslot preferences. Placement never consults preferences; this report
// shows how the deterministic schedule happened to treat each team.
type TimePrefStats struct {
	TeamID       string
	Preferred    int
	NotPreferred int
	Unavailable  int
	Unrated      int
}

// TimePrefCompliance scores each team that declared preferences. Teams
// without an entry in prefs are omitted.
func TimePrefCompliance(schedule []strategy.Match, prefs map[string]config.TimePrefs) []TimePrefStats {
	contains := func(list []string, t string) bool {
		for _, x := range list {
			if x == t {
				return true
			}
		}
		return false
	}

	acc := make(map[string]*TimePrefStats, len(prefs))
	for id := range prefs {
		acc[id] = &TimePrefStats{TeamID: id}
	}

	score := func(team, time string) {
		st := acc[team]
		if st == nil {
			return
		}
		p := prefs[team]
		switch {
		case contains(p.Unavailable, time):
			st.Unavailable++
		case contains(p.NotPreferred, time):
			st.NotPreferred++
		case contains(p.Preferred, time):
			st.Preferred++
		default:
			st.Unrated++
		}
	}

	for _, m := range schedule {
		if !m.Placed() {
			continue
		}
		score(m.Home, m.Time)
		score(m.Away, m.Time)
	}

	out := make([]TimePrefStats, 0, len(acc))
	for _, st := range acc {
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].TeamID < out[j].TeamID
	})
	return out
}
