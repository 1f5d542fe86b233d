package report

import (
	"testing"

	"github.com/mwarner/courtsched/internal/config"
	"github.com/mwarner/courtsched/internal/strategy"
)

func TestTimePrefCompliance(t *testing.T) {
	prefs := map[string]config.TimePrefs{
		"D1-01": {
			Preferred:    []string{"19:00"},
			NotPreferred: []string{"20:00"},
			Unavailable:  []string{"21:00"},
		},
	}
	schedule := []strategy.Match{
		{Week: 1, Division: "D1", Home: "D1-01", Away: "D1-02", Venue: "X", Court: "A", Time: "19:00"},
		{Week: 2, Division: "D1", Home: "D1-03", Away: "D1-01", Venue: "X", Court: "A", Time: "20:00"},
		{Week: 3, Division: "D1", Home: "D1-01", Away: "D1-04", Venue: "X", Court: "A", Time: "21:00"},
		{Week: 4, Division: "D1", Home: "D1-01", Away: "D1-05", Venue: "X", Court: "A", Time: "18:00"},
		{Week: 5, Division: "D1", Home: "D1-01", Away: "D1-06"}, // unplaced, not scored
	}

	stats := TimePrefCompliance(schedule, prefs)
	if len(stats) != 1 {
		t.Fatalf("len = %d, want only teams with declared prefs", len(stats))
	}

	s := stats[0]
	if s.TeamID != "D1-01" {
		t.Fatalf("team = %q, want D1-01", s.TeamID)
	}
	if s.Preferred != 1 || s.NotPreferred != 1 || s.Unavailable != 1 || s.Unrated != 1 {
		t.Errorf("buckets = %+v, want one game in each", s)
	}
}

func TestTimePrefComplianceUnavailableWins(t *testing.T) {
	// A timeslot listed in more than one bucket counts as the most severe.
	prefs := map[string]config.TimePrefs{
		"D1-01": {
			Preferred:   []string{"19:00"},
			Unavailable: []string{"19:00"},
		},
	}
	schedule := []strategy.Match{
		{Week: 1, Division: "D1", Home: "D1-01", Away: "D1-02", Venue: "X", Court: "A", Time: "19:00"},
	}

	stats := TimePrefCompliance(schedule, prefs)
	if stats[0].Unavailable != 1 || stats[0].Preferred != 0 {
		t.Errorf("stats = %+v, want the unavailable bucket to win", stats[0])
	}
}

func TestTimePrefComplianceNoPrefs(t *testing.T) {
	schedule := []strategy.Match{
		{Week: 1, Division: "D1", Home: "D1-01", Away: "D1-02", Venue: "X", Court: "A", Time: "19:00"},
	}
	if got := TimePrefCompliance(schedule, nil); len(got) != 0 {
		t.Errorf("len = %d, want 0 for empty prefs", len(got))
	}
}
