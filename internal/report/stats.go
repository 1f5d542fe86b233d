// Package report holds read-only projections over a placed schedule. Nothing
// here mutates the match list or feeds back into placement.
package report

import (
	"github.com/mwarner/courtsched/internal/strategy"
)

// DivisionStats counts a division's games, BYEs, and unplaced games.
type DivisionStats struct {
	Games      int
	Byes       int
	Unassigned int
}

// Stats tallies per-division schedule statistics. Unassigned counts games
// that were paired but given no slot.
func Stats(schedule []strategy.Match) map[string]DivisionStats {
	out := make(map[string]DivisionStats)
	for _, m := range schedule {
		s := out[m.Division]
		if m.IsBye() {
			s.Byes++
		} else {
			s.Games++
			if !m.Placed() {
				s.Unassigned++
			}
		}
		out[m.Division] = s
	}
	return out
}

// WeekStats counts one week's placed games, unplaced games, and BYEs.
type WeekStats struct {
	Placed     int
	Unassigned int
	Byes       int
}

// StatsByWeek tallies per-week schedule statistics.
func StatsByWeek(schedule []strategy.Match) map[int]WeekStats {
	out := make(map[int]WeekStats)
	for _, m := range schedule {
		s := out[m.Week]
		switch {
		case m.IsBye():
			s.Byes++
		case m.Placed():
			s.Placed++
		default:
			s.Unassigned++
		}
		out[m.Week] = s
	}
	return out
}
