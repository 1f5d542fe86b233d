package strategy

import (
	"fmt"

	"github.com/mwarner/courtsched/internal/config"
)

// Match is a single fixture. The pairing stage fills Week through Away;
// placement fills Venue, Court, and Time. A match whose Away is the BYE
// sentinel carries placeholder location fields and never occupies a slot.
// A non-BYE match with empty location fields could not be placed.
type Match struct {
	Week     int    `json:"week"`
	Division string `json:"division"`
	Home     string `json:"home"`
	Away     string `json:"away"`
	Venue    string `json:"venue"`
	Court    string `json:"court"`
	Time     string `json:"time"`
}

// IsBye reports whether the match is a BYE artifact rather than a real game.
func (m Match) IsBye() bool {
	return m.Away == config.Bye
}

// Placed reports whether a real game has been assigned a full slot.
func (m Match) Placed() bool {
	return !m.IsBye() && m.Venue != "" && m.Court != "" && m.Time != ""
}

// Strategy generates the weekly fixture list for a season.
type Strategy interface {
	GenerateFixtures(weeks int, divisions []config.Division) []Match
}

// Get returns a Strategy by name.
func Get(name string) (Strategy, error) {
	switch name {
	case "round_robin":
		return &RoundRobin{}, nil
	default:
		return nil, fmt.Errorf("unknown strategy: %q", name)
	}
}

// RoundRobin pairs teams within their own division using the circle method,
// cycling through the rotation as weeks exceed one full cycle. Until a cycle
// completes, no team repeats an opponent; odd divisions get one BYE per team
// per cycle.
type RoundRobin struct{}

func (s *RoundRobin) GenerateFixtures(weeks int, divisions []config.Division) []Match {
	var fixtures []Match

	for _, div := range divisions {
		rounds := roundRobinRounds(div.TeamIDs())
		if len(rounds) == 0 {
			continue
		}

		for w := 1; w <= weeks; w++ {
			for _, p := range rounds[(w-1)%len(rounds)] {
				a, b := p[0], p[1]
				switch {
				case a == config.Bye && b == config.Bye:
					continue
				case a == config.Bye || b == config.Bye:
					team := a
					if a == config.Bye {
						team = b
					}
					fixtures = append(fixtures, Match{Week: w, Division: div.Code, Home: team, Away: config.Bye})
				default:
					fixtures = append(fixtures, Match{Week: w, Division: div.Code, Home: a, Away: b})
				}
			}
		}
	}

	return fixtures
}

// roundRobinRounds builds the n-1 rounds of a circle-method rotation. The
// first team stays fixed; the remaining teams form a ring that shifts one
// position per round (last element to the front). The ring is addressed by
// index arithmetic instead of being physically rotated.
func roundRobinRounds(teamIDs []string) [][][2]string {
	teams := append([]string(nil), teamIDs...)
	if len(teams)%2 == 1 {
		teams = append(teams, config.Bye)
	}
	n := len(teams)
	if n < 2 {
		return nil
	}

	fixed := teams[0]
	ring := teams[1:]
	m := len(ring)

	rounds := make([][][2]string, 0, n-1)
	for r := 0; r < n-1; r++ {
		order := make([]string, 0, n)
		order = append(order, fixed)
		for i := 0; i < m; i++ {
			order = append(order, ring[((i-r)%m+m)%m])
		}

		pairs := make([][2]string, 0, n/2)
		for i := 0; i < n/2; i++ {
			pairs = append(pairs, [2]string{order[i], order[n-1-i]})
		}
		rounds = append(rounds, pairs)
	}

	return rounds
}
