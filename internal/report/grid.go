package report

import (
	"github.com/mwarner/courtsched/internal/strategy"
)

// PlacedGame is one cell of the division grid.
type PlacedGame struct {
	Home  string
	Away  string
	Venue string
	Court string
	Time  string
}

// Pairing is an unplaced home/away pair.
type Pairing struct {
	Home string
	Away string
}

// WeekCell is one division-week of the grid: placed games keyed by slot,
// plus the team on BYE that week, if any.
type WeekCell struct {
	BySlot map[string]PlacedGame
	Bye    string
}

// Grid is the division-major projection of a schedule: division -> week ->
// cell, with unplaced pairings broken out separately.
type Grid struct {
	ByDivision map[string]map[int]*WeekCell
	Unassigned map[string]map[int][]Pairing
}

// SlotKey is the composite key a grid cell indexes placed games by.
func SlotKey(venue, court, time string) string {
	return venue + "__" + court + "__" + time
}

// BuildGrid projects a schedule into its division grid.
func BuildGrid(schedule []strategy.Match) *Grid {
	g := &Grid{
		ByDivision: make(map[string]map[int]*WeekCell),
		Unassigned: make(map[string]map[int][]Pairing),
	}

	for _, m := range schedule {
		byWeek := g.ByDivision[m.Division]
		if byWeek == nil {
			byWeek = make(map[int]*WeekCell)
			g.ByDivision[m.Division] = byWeek
		}
		cell := byWeek[m.Week]
		if cell == nil {
			cell = &WeekCell{BySlot: make(map[string]PlacedGame)}
			byWeek[m.Week] = cell
		}

		if m.IsBye() {
			cell.Bye = m.Home
			continue
		}

		if !m.Placed() {
			uw := g.Unassigned[m.Division]
			if uw == nil {
				uw = make(map[int][]Pairing)
				g.Unassigned[m.Division] = uw
			}
			uw[m.Week] = append(uw[m.Week], Pairing{Home: m.Home, Away: m.Away})
			continue
		}

		cell.BySlot[SlotKey(m.Venue, m.Court, m.Time)] = PlacedGame{
			Home:  m.Home,
			Away:  m.Away,
			Venue: m.Venue,
			Court: m.Court,
			Time:  m.Time,
		}
	}

	return g
}
