package validator

import (
	"fmt"
	"sort"

	"github.com/mwarner/courtsched/internal/clash"
	"github.com/mwarner/courtsched/internal/config"
	"github.com/mwarner/courtsched/internal/schedule"
	"github.com/mwarner/courtsched/internal/strategy"
)

// Violation is one invariant breach found in a schedule.
type Violation struct {
	Week    int
	Type    string // "error" or "warning"
	Message string
}

// Validate checks a generated schedule against the scheduling invariants.
// Hard-constraint breaches (double-booking, simultaneous clash pairs,
// capacity overruns, malformed BYEs) are errors; unassigned games are
// warnings, since partial placement is an expected shortfall condition.
func Validate(cfg *config.Config, sched []strategy.Match) []Violation {
	var violations []Violation

	violations = append(violations, checkSlotDoubleBooking(sched)...)
	violations = append(violations, checkTeamDoubleBooking(sched)...)
	violations = append(violations, checkClashes(cfg, sched)...)
	violations = append(violations, checkCapacity(cfg, sched)...)
	violations = append(violations, checkByes(cfg, sched)...)
	violations = append(violations, checkUnassigned(sched)...)

	sort.SliceStable(violations, func(i, j int) bool {
		return violations[i].Week < violations[j].Week
	})
	return violations
}

func checkSlotDoubleBooking(sched []strategy.Match) []Violation {
	type slotKey struct {
		week  int
		venue string
		court string
		time  string
	}
	seen := make(map[slotKey]strategy.Match)

	var violations []Violation
	for _, m := range sched {
		if !m.Placed() {
			continue
		}
		sk := slotKey{m.Week, m.Venue, m.Court, m.Time}
		if prev, ok := seen[sk]; ok {
			violations = append(violations, Violation{
				Week: m.Week,
				Type: "error",
				Message: fmt.Sprintf("week %d: %s/%s %s double-booked: %s v %s and %s v %s",
					m.Week, m.Venue, m.Court, m.Time, prev.Home, prev.Away, m.Home, m.Away),
			})
			continue
		}
		seen[sk] = m
	}
	return violations
}

func checkTeamDoubleBooking(sched []strategy.Match) []Violation {
	type timeKey struct {
		week int
		time string
	}
	counts := make(map[timeKey]map[string]int)
	for _, m := range sched {
		if !m.Placed() {
			continue
		}
		tk := timeKey{m.Week, m.Time}
		if counts[tk] == nil {
			counts[tk] = make(map[string]int)
		}
		counts[tk][m.Home]++
		counts[tk][m.Away]++
	}

	var violations []Violation
	for tk, teams := range counts {
		for team, n := range teams {
			if n > 1 {
				violations = append(violations, Violation{
					Week:    tk.week,
					Type:    "error",
					Message: fmt.Sprintf("week %d: %s plays %d games at %s", tk.week, team, n, tk.time),
				})
			}
		}
	}
	sortByMessage(violations)
	return violations
}

func checkClashes(cfg *config.Config, sched []strategy.Match) []Violation {
	set := clash.NewSet(clash.BuildEdges(cfg.Clashes))
	if set.Len() == 0 {
		return nil
	}

	type timeKey struct {
		week int
		time string
	}
	playing := make(map[timeKey][]string)
	for _, m := range sched {
		if !m.Placed() {
			continue
		}
		tk := timeKey{m.Week, m.Time}
		playing[tk] = append(playing[tk], m.Home, m.Away)
	}

	var violations []Violation
	for tk, teams := range playing {
		sort.Strings(teams)
		for i := 0; i < len(teams); i++ {
			for j := i + 1; j < len(teams); j++ {
				if set.IsPair(teams[i], teams[j]) {
					violations = append(violations, Violation{
						Week: tk.week,
						Type: "error",
						Message: fmt.Sprintf("week %d: clash pair %s and %s both playing at %s",
							tk.week, teams[i], teams[j], tk.time),
					})
				}
			}
		}
	}
	sortByMessage(violations)
	return violations
}

func checkCapacity(cfg *config.Config, sched []strategy.Match) []Violation {
	capacity := len(schedule.BuildSlots(cfg.Venues, cfg.Timeslots))

	placed := make(map[int]int)
	for _, m := range sched {
		if m.Placed() {
			placed[m.Week]++
		}
	}

	var violations []Violation
	for week, n := range placed {
		if n > capacity {
			violations = append(violations, Violation{
				Week:    week,
				Type:    "error",
				Message: fmt.Sprintf("week %d: %d games placed but weekly capacity is %d", week, n, capacity),
			})
		}
	}
	sortByMessage(violations)
	return violations
}

// checkByes verifies that odd divisions carry exactly one BYE per week, even
// divisions none, and that no BYE pretends to occupy a real slot.
func checkByes(cfg *config.Config, sched []strategy.Match) []Violation {
	odd := make(map[string]bool, len(cfg.Divisions))
	weeks := 0
	for _, d := range cfg.Divisions {
		if d.Teams > 0 {
			odd[d.Code] = d.Teams%2 == 1
		}
	}
	for _, m := range sched {
		if m.Week > weeks {
			weeks = m.Week
		}
	}

	type divWeek struct {
		division string
		week     int
	}
	byes := make(map[divWeek]int)

	var violations []Violation
	for _, m := range sched {
		if !m.IsBye() {
			continue
		}
		byes[divWeek{m.Division, m.Week}]++
		if m.Venue != config.Bye || m.Time != "" {
			violations = append(violations, Violation{
				Week:    m.Week,
				Type:    "error",
				Message: fmt.Sprintf("week %d: BYE for %s carries a real slot (%s/%s %s)", m.Week, m.Home, m.Venue, m.Court, m.Time),
			})
		}
	}

	for _, d := range cfg.Divisions {
		want := 0
		if odd[d.Code] {
			want = 1
		}
		for w := 1; w <= weeks; w++ {
			if got := byes[divWeek{d.Code, w}]; got != want {
				violations = append(violations, Violation{
					Week:    w,
					Type:    "error",
					Message: fmt.Sprintf("week %d: division %s has %d BYEs, want %d", w, d.Code, got, want),
				})
			}
		}
	}
	return violations
}

func checkUnassigned(sched []strategy.Match) []Violation {
	var violations []Violation
	for _, m := range sched {
		if m.IsBye() || m.Placed() {
			continue
		}
		violations = append(violations, Violation{
			Week:    m.Week,
			Type:    "warning",
			Message: fmt.Sprintf("week %d: %s %s v %s has no slot", m.Week, m.Division, m.Home, m.Away),
		})
	}
	return violations
}

func sortByMessage(violations []Violation) {
	sort.Slice(violations, func(i, j int) bool {
		return violations[i].Message < violations[j].Message
	})
}
