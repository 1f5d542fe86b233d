package report

import (
	"sort"

	"github.com/mwarner/courtsched/internal/config"
	"github.com/mwarner/courtsched/internal/strategy"
)

// NetHeightChange records one same-court transition between consecutive
// occupied timeslots where the net must be re-rigged to a different height.
type NetHeightChange struct {
	Week  int
	Venue string
	Court string

	FromTime string
	ToTime   string

	FromDivision string
	ToDivision   string

	FromHeightM float64
	ToHeightM   float64
}

// NetHeightReport aggregates net height changes across the schedule.
type NetHeightReport struct {
	TotalChanges int
	ByWeek       map[int]int
	Events       []NetHeightChange
}

// NetHeightChanges walks each court's timeslots in configured order, per
// week, and reports every adjacent pair of games whose divisions play on
// different net heights. Unplaced matches and BYEs never appear on a court
// and are ignored.
func NetHeightChanges(schedule []strategy.Match, divisions []config.Division, timeslots []string) NetHeightReport {
	heightByDivision := make(map[string]float64, len(divisions))
	for _, d := range divisions {
		heightByDivision[d.Code] = d.NetHeightM
	}

	slotIndex := make(map[string]int, len(timeslots))
	for i, t := range timeslots {
		slotIndex[t] = i
	}
	indexOf := func(t string) int {
		if i, ok := slotIndex[t]; ok {
			return i
		}
		return len(timeslots) // unknown times sort last
	}

	type courtKey struct {
		week  int
		venue string
		court string
	}
	groups := make(map[courtKey][]strategy.Match)
	for _, m := range schedule {
		if !m.Placed() {
			continue
		}
		k := courtKey{m.Week, m.Venue, m.Court}
		groups[k] = append(groups[k], m)
	}

	rep := NetHeightReport{ByWeek: make(map[int]int)}

	for k, matches := range groups {
		sort.Slice(matches, func(i, j int) bool {
			return indexOf(matches[i].Time) < indexOf(matches[j].Time)
		})

		prev := -1 // index into matches of the last game with a known height
		for i, m := range matches {
			h, ok := heightByDivision[m.Division]
			if !ok {
				continue
			}
			if prev >= 0 {
				ph := heightByDivision[matches[prev].Division]
				if ph != h {
					rep.Events = append(rep.Events, NetHeightChange{
						Week:         k.week,
						Venue:        k.venue,
						Court:        k.court,
						FromTime:     matches[prev].Time,
						ToTime:       m.Time,
						FromDivision: matches[prev].Division,
						ToDivision:   m.Division,
						FromHeightM:  ph,
						ToHeightM:    h,
					})
					rep.ByWeek[k.week]++
				}
			}
			prev = i
		}
	}

	sort.Slice(rep.Events, func(i, j int) bool {
		a, b := rep.Events[i], rep.Events[j]
		if a.Week != b.Week {
			return a.Week < b.Week
		}
		if a.Venue+a.Court != b.Venue+b.Court {
			return a.Venue+a.Court < b.Venue+b.Court
		}
		return indexOf(a.ToTime) < indexOf(b.ToTime)
	})

	rep.TotalChanges = len(rep.Events)
	return rep
}
