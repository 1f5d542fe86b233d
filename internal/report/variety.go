package report

import (
	"sort"

	"github.com/mwarner/courtsched/internal/strategy"
)

// OpponentCount is one entry of a team's opponent histogram.
type OpponentCount struct {
	Opponent string
	Count    int
}

// TeamVariety measures how well a team's games spread across distinct
// opponents. VarietyRatio is uniqueOpponents over the best achievable for
// that many games, in [0, 1].
type TeamVariety struct {
	TeamID            string
	Division          string
	Games             int
	UniqueOpponents   int
	PossibleOpponents int
	MaxUniquePossible int
	VarietyRatio      float64
	RepeatGames       int
	OpponentCounts    []OpponentCount
}

// DivisionVariety summarizes variety ratios across one division's teams.
type DivisionVariety struct {
	Division          string
	Teams             int
	PossibleOpponents int
	AvgVarietyRatio   float64
	MinVarietyRatio   float64
	MaxVarietyRatio   float64
}

// OpponentVariety computes per-team and per-division opponent-variety
// metrics. Unplaced games still count: the pairing happened even if no
// court was found. BYEs do not count as games.
func OpponentVariety(schedule []strategy.Match, teamsByDivision map[string][]string) ([]TeamVariety, []DivisionVariety) {
	type teamAcc struct {
		division  string
		games     int
		opponents map[string]int
	}

	teamToDiv := make(map[string]string)
	acc := make(map[string]*teamAcc)
	for div, ids := range teamsByDivision {
		for _, id := range ids {
			teamToDiv[id] = div
			acc[id] = &teamAcc{division: div, opponents: make(map[string]int)}
		}
	}

	ensure := func(id, div string) *teamAcc {
		a := acc[id]
		if a == nil {
			if d, ok := teamToDiv[id]; ok {
				div = d
			}
			a = &teamAcc{division: div, opponents: make(map[string]int)}
			acc[id] = a
		}
		return a
	}

	for _, m := range schedule {
		if m.IsBye() || m.Home == "" || m.Away == "" {
			continue
		}
		h := ensure(m.Home, m.Division)
		a := ensure(m.Away, m.Division)
		h.games++
		a.games++
		h.opponents[m.Away]++
		a.opponents[m.Home]++
	}

	teams := make([]TeamVariety, 0, len(acc))
	for id, st := range acc {
		possible := len(teamsByDivision[st.division]) - 1
		if possible < 0 {
			possible = 0
		}
		maxUnique := min(st.games, possible)

		ratio := 1.0
		if maxUnique > 0 {
			ratio = float64(len(st.opponents)) / float64(maxUnique)
		}
		repeats := st.games - len(st.opponents)
		if repeats < 0 {
			repeats = 0
		}

		counts := make([]OpponentCount, 0, len(st.opponents))
		for opp, n := range st.opponents {
			counts = append(counts, OpponentCount{Opponent: opp, Count: n})
		}
		sort.Slice(counts, func(i, j int) bool {
			if counts[i].Count != counts[j].Count {
				return counts[i].Count > counts[j].Count
			}
			return counts[i].Opponent < counts[j].Opponent
		})

		teams = append(teams, TeamVariety{
			TeamID:            id,
			Division:          st.division,
			Games:             st.games,
			UniqueOpponents:   len(st.opponents),
			PossibleOpponents: possible,
			MaxUniquePossible: maxUnique,
			VarietyRatio:      ratio,
			RepeatGames:       repeats,
			OpponentCounts:    counts,
		})
	}

	sort.Slice(teams, func(i, j int) bool {
		if teams[i].Division != teams[j].Division {
			return teams[i].Division < teams[j].Division
		}
		return teams[i].TeamID < teams[j].TeamID
	})

	byDiv := make(map[string][]float64)
	for _, t := range teams {
		byDiv[t.Division] = append(byDiv[t.Division], t.VarietyRatio)
	}

	divisions := make([]DivisionVariety, 0, len(byDiv))
	for div, ratios := range byDiv {
		teamCount := len(teamsByDivision[div])
		possible := teamCount - 1
		if possible < 0 {
			possible = 0
		}

		sum, lo, hi := 0.0, ratios[0], ratios[0]
		for _, r := range ratios {
			sum += r
			if r < lo {
				lo = r
			}
			if r > hi {
				hi = r
			}
		}

		divisions = append(divisions, DivisionVariety{
			Division:          div,
			Teams:             teamCount,
			PossibleOpponents: possible,
			AvgVarietyRatio:   sum / float64(len(ratios)),
			MinVarietyRatio:   lo,
			MaxVarietyRatio:   hi,
		})
	}
	sort.Slice(divisions, func(i, j int) bool {
		return divisions[i].Division < divisions[j].Division
	})

	return teams, divisions
}
