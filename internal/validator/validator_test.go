package validator

import (
	"strings"
	"testing"

	"github.com/mwarner/courtsched/internal/clash"
	"github.com/mwarner/courtsched/internal/config"
	"github.com/mwarner/courtsched/internal/schedule"
	"github.com/mwarner/courtsched/internal/strategy"
)

func validatorTestConfig() *config.Config {
	return &config.Config{
		Weeks:     2,
		Timeslots: []string{"19:00", "20:00", "21:00"},
		Venues: []config.Venue{
			{Name: "Mullum Mullum", Courts: []string{"3A", "3B"}},
			{Name: "DCC", Courts: []string{"DC1"}},
		},
		Divisions: []config.Division{
			{Code: "D1", Teams: 4, NetHeightM: 2.43},
			{Code: "D2", Teams: 5, NetHeightM: 2.35},
		},
		Clashes: []config.ClashRow{{Teams: []string{"D1-01", "D2-01"}}},
	}
}

func errorsAndWarnings(violations []Violation) (int, int) {
	errs, warns := 0, 0
	for _, v := range violations {
		switch v.Type {
		case "error":
			errs++
		case "warning":
			warns++
		}
	}
	return errs, warns
}

func TestValidateGeneratedSchedule(t *testing.T) {
	cfg := validatorTestConfig()

	fixtures := (&strategy.RoundRobin{}).GenerateFixtures(cfg.Weeks, cfg.Divisions)
	slots := schedule.BuildSlots(cfg.Venues, cfg.Timeslots)
	clashes := clash.NewSet(clash.BuildEdges(cfg.Clashes))
	sched := schedule.Place(fixtures, slots, clashes, nil)

	violations := Validate(cfg, sched)
	errs, _ := errorsAndWarnings(violations)
	if errs != 0 {
		t.Errorf("generated schedule has %d errors, want 0:", errs)
		for _, v := range violations {
			t.Logf("  [%s] %s", v.Type, v.Message)
		}
	}
}

func TestValidateSingleTeamDivision(t *testing.T) {
	// A lone team gets a weekly BYE from the generator; the validator must
	// accept that schedule rather than demand zero BYEs.
	cfg := validatorTestConfig()
	cfg.Clashes = nil
	cfg.Divisions = []config.Division{
		{Code: "D1", Teams: 4, NetHeightM: 2.43},
		{Code: "D9", Teams: 1, NetHeightM: 2.24},
	}

	fixtures := (&strategy.RoundRobin{}).GenerateFixtures(cfg.Weeks, cfg.Divisions)
	slots := schedule.BuildSlots(cfg.Venues, cfg.Timeslots)
	sched := schedule.Place(fixtures, slots, clash.NewSet(nil), nil)

	violations := Validate(cfg, sched)
	errs, _ := errorsAndWarnings(violations)
	if errs != 0 {
		t.Errorf("schedule with a 1-team division has %d errors, want 0:", errs)
		for _, v := range violations {
			t.Logf("  [%s] %s", v.Type, v.Message)
		}
	}

	t.Run("missing weekly bye is still an error", func(t *testing.T) {
		var trimmed []strategy.Match
		for _, m := range sched {
			if m.Division == "D9" && m.Week == 1 {
				continue
			}
			trimmed = append(trimmed, m)
		}
		violations := Validate(cfg, trimmed)
		if !hasViolation(violations, "error", "division D9 has 0 BYEs, want 1") {
			t.Errorf("no missing-bye error in %v", violations)
		}
	})
}

func TestValidateSlotDoubleBooking(t *testing.T) {
	cfg := validatorTestConfig()
	sched := []strategy.Match{
		{Week: 1, Division: "D1", Home: "D1-01", Away: "D1-02", Venue: "Mullum", Court: "3A", Time: "19:00"},
		{Week: 1, Division: "D2", Home: "D2-01", Away: "D2-02", Venue: "Mullum", Court: "3A", Time: "19:00"},
	}
	cfg.Clashes = nil
	cfg.Divisions = []config.Division{{Code: "D1", Teams: 4, NetHeightM: 2.43}, {Code: "D2", Teams: 4, NetHeightM: 2.35}}

	violations := Validate(cfg, sched)
	if !hasViolation(violations, "error", "double-booked") {
		t.Errorf("no double-booking error in %v", violations)
	}
}

func TestValidateTeamDoubleBooking(t *testing.T) {
	cfg := validatorTestConfig()
	cfg.Clashes = nil
	cfg.Divisions = []config.Division{{Code: "D1", Teams: 6, NetHeightM: 2.43}}
	sched := []strategy.Match{
		{Week: 1, Division: "D1", Home: "D1-01", Away: "D1-02", Venue: "Mullum", Court: "3A", Time: "19:00"},
		{Week: 1, Division: "D1", Home: "D1-01", Away: "D1-03", Venue: "Mullum", Court: "3B", Time: "19:00"},
	}

	violations := Validate(cfg, sched)
	if !hasViolation(violations, "error", "D1-01 plays 2 games at 19:00") {
		t.Errorf("no team double-booking error in %v", violations)
	}
}

func TestValidateClashPair(t *testing.T) {
	cfg := validatorTestConfig()
	cfg.Divisions = []config.Division{{Code: "D1", Teams: 4, NetHeightM: 2.43}, {Code: "D2", Teams: 4, NetHeightM: 2.35}}
	sched := []strategy.Match{
		{Week: 1, Division: "D1", Home: "D1-01", Away: "D1-02", Venue: "Mullum", Court: "3A", Time: "19:00"},
		{Week: 1, Division: "D2", Home: "D2-01", Away: "D2-02", Venue: "Mullum", Court: "3B", Time: "19:00"},
	}

	violations := Validate(cfg, sched)
	if !hasViolation(violations, "error", "clash pair D1-01 and D2-01") {
		t.Errorf("no clash error in %v", violations)
	}

	t.Run("different times are fine", func(t *testing.T) {
		sched[1].Time = "20:00"
		violations := Validate(cfg, sched)
		if hasViolation(violations, "error", "clash pair") {
			t.Errorf("unexpected clash error in %v", violations)
		}
	})
}

func TestValidateByes(t *testing.T) {
	cfg := validatorTestConfig()
	cfg.Clashes = nil
	cfg.Weeks = 1
	cfg.Divisions = []config.Division{{Code: "D2", Teams: 5, NetHeightM: 2.35}}

	t.Run("odd division missing its bye", func(t *testing.T) {
		sched := []strategy.Match{
			{Week: 1, Division: "D2", Home: "D2-01", Away: "D2-02", Venue: "Mullum", Court: "3A", Time: "19:00"},
			{Week: 1, Division: "D2", Home: "D2-03", Away: "D2-04", Venue: "Mullum", Court: "3B", Time: "19:00"},
		}
		violations := Validate(cfg, sched)
		if !hasViolation(violations, "error", "has 0 BYEs, want 1") {
			t.Errorf("no missing-bye error in %v", violations)
		}
	})

	t.Run("bye carrying a real slot", func(t *testing.T) {
		sched := []strategy.Match{
			{Week: 1, Division: "D2", Home: "D2-01", Away: "D2-02", Venue: "Mullum", Court: "3A", Time: "19:00"},
			{Week: 1, Division: "D2", Home: "D2-03", Away: "D2-04", Venue: "Mullum", Court: "3B", Time: "19:00"},
			{Week: 1, Division: "D2", Home: "D2-05", Away: config.Bye, Venue: "Mullum", Court: "3A", Time: "20:00"},
		}
		violations := Validate(cfg, sched)
		if !hasViolation(violations, "error", "carries a real slot") {
			t.Errorf("no bye-slot error in %v", violations)
		}
	})
}

func TestValidateCapacity(t *testing.T) {
	cfg := validatorTestConfig()
	cfg.Clashes = nil
	cfg.Venues = []config.Venue{{Name: "DCC", Courts: []string{"DC1"}}}
	cfg.Timeslots = []string{"19:00"}
	cfg.Divisions = []config.Division{{Code: "D1", Teams: 4, NetHeightM: 2.43}}

	// Two games claim slots but weekly capacity is a single slot.
	sched := []strategy.Match{
		{Week: 1, Division: "D1", Home: "D1-01", Away: "D1-02", Venue: "DCC", Court: "DC1", Time: "19:00"},
		{Week: 1, Division: "D1", Home: "D1-03", Away: "D1-04", Venue: "DCC", Court: "DC2", Time: "19:00"},
	}

	violations := Validate(cfg, sched)
	if !hasViolation(violations, "error", "weekly capacity") {
		t.Errorf("no capacity error in %v", violations)
	}
}

func TestValidateUnassignedIsWarning(t *testing.T) {
	cfg := validatorTestConfig()
	cfg.Clashes = nil
	cfg.Weeks = 1
	cfg.Divisions = []config.Division{{Code: "D1", Teams: 4, NetHeightM: 2.43}}
	sched := []strategy.Match{
		{Week: 1, Division: "D1", Home: "D1-01", Away: "D1-02", Venue: "Mullum", Court: "3A", Time: "19:00"},
		{Week: 1, Division: "D1", Home: "D1-03", Away: "D1-04"},
	}

	violations := Validate(cfg, sched)
	errs, warns := errorsAndWarnings(violations)
	if errs != 0 {
		t.Errorf("errors = %d, want 0: %v", errs, violations)
	}
	if warns != 1 {
		t.Errorf("warnings = %d, want 1: %v", warns, violations)
	}
	if !hasViolation(violations, "warning", "has no slot") {
		t.Errorf("no unassigned warning in %v", violations)
	}
}

func hasViolation(violations []Violation, typ, substr string) bool {
	for _, v := range violations {
		if v.Type == typ && strings.Contains(v.Message, substr) {
			return true
		}
	}
	return false
}
