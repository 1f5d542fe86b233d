// Package trace provides a zerolog-backed placement tracer. The scheduling
// engine emits structured events through an interface; this is the
// implementation the CLI wires in when verbose output is requested.
package trace

import (
	"github.com/rs/zerolog"

	"github.com/mwarner/courtsched/internal/schedule"
	"github.com/mwarner/courtsched/internal/strategy"
)

// Placement logs every placement decision as a structured event.
type Placement struct {
	log zerolog.Logger
}

// NewPlacement returns a tracer writing to log.
func NewPlacement(log zerolog.Logger) *Placement {
	return &Placement{log: log}
}

func (t *Placement) game(e *zerolog.Event, week int, m strategy.Match) *zerolog.Event {
	return e.Int("week", week).Str("division", m.Division).Str("home", m.Home).Str("away", m.Away)
}

func (t *Placement) Placed(week int, m strategy.Match, s schedule.Slot) {
	t.game(t.log.Debug(), week, m).
		Str("venue", s.Venue).Str("court", s.Court).Str("time", s.Time).
		Msg("placed")
}

func (t *Placement) Rejected(week int, m strategy.Match, s schedule.Slot, reason schedule.RejectReason, other string) {
	e := t.game(t.log.Debug(), week, m).
		Str("venue", s.Venue).Str("court", s.Court).Str("time", s.Time).
		Str("reason", reason.String())
	if other != "" {
		e = e.Str("clash_with", other)
	}
	e.Msg("rejected")
}

func (t *Placement) Unassigned(week int, m strategy.Match) {
	t.game(t.log.Warn(), week, m).Msg("unassigned")
}
