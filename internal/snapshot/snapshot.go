// Package snapshot persists a schedule run as a versioned JSON envelope.
// The envelope wraps the full input configuration plus the generated match
// list, so a snapshot alone is enough to re-validate or re-render a run.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/mwarner/courtsched/internal/config"
	"github.com/mwarner/courtsched/internal/strategy"
)

// SchemaVersion is the only envelope version this build reads or writes.
const SchemaVersion = 1

// State is the payload of a snapshot: configuration plus schedule.
type State struct {
	Weeks         int                         `json:"weeks"`
	Timeslots     []string                    `json:"timeslots"`
	Venues        []config.Venue              `json:"venues"`
	Divisions     []config.Division           `json:"divisions"`
	ClashRows     []config.ClashRow           `json:"clashRows"`
	TeamNames     map[string]string           `json:"teamNames,omitempty"`
	TeamTimePrefs map[string]config.TimePrefs `json:"teamTimePrefs,omitempty"`
	Schedule      []strategy.Match            `json:"schedule"`
}

// Snapshot is the versioned envelope.
type Snapshot struct {
	SchemaVersion int    `json:"schemaVersion"`
	ID            string `json:"id,omitempty"`
	CreatedAt     string `json:"createdAt"`
	State         State  `json:"state"`
}

// New wraps a config and its generated schedule in a fresh envelope.
func New(cfg *config.Config, schedule []strategy.Match) *Snapshot {
	return &Snapshot{
		SchemaVersion: SchemaVersion,
		ID:            uuid.NewString(),
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
		State: State{
			Weeks:         cfg.Weeks,
			Timeslots:     cfg.Timeslots,
			Venues:        cfg.Venues,
			Divisions:     cfg.Divisions,
			ClashRows:     cfg.Clashes,
			TeamNames:     cfg.TeamNames,
			TeamTimePrefs: cfg.TimePrefs,
			Schedule:      schedule,
		},
	}
}

// Config rebuilds the configuration captured in the snapshot.
func (s *Snapshot) Config() *config.Config {
	return &config.Config{
		Weeks:     s.State.Weeks,
		Timeslots: s.State.Timeslots,
		Venues:    s.State.Venues,
		Divisions: s.State.Divisions,
		Clashes:   s.State.ClashRows,
		TeamNames: s.State.TeamNames,
		TimePrefs: s.State.TeamTimePrefs,
	}
}

// Decode parses snapshot JSON. It accepts both the full envelope and older
// state-less snapshots where the state fields sit at the top level, and
// rejects any schema version other than 1.
func Decode(data []byte) (*Snapshot, error) {
	var probe struct {
		SchemaVersion *int            `json:"schemaVersion"`
		ID            string          `json:"id"`
		CreatedAt     string          `json:"createdAt"`
		State         json.RawMessage `json:"state"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("parsing snapshot: %w", err)
	}

	version := SchemaVersion
	if probe.SchemaVersion != nil {
		version = *probe.SchemaVersion
	}
	if version != SchemaVersion {
		return nil, fmt.Errorf("unsupported snapshot schemaVersion: %d", version)
	}

	stateJSON := probe.State
	if stateJSON == nil {
		stateJSON = data
	}

	var state State
	if err := json.Unmarshal(stateJSON, &state); err != nil {
		return nil, fmt.Errorf("parsing snapshot state: %w", err)
	}

	createdAt := probe.CreatedAt
	if createdAt == "" {
		createdAt = time.Now().UTC().Format(time.RFC3339)
	}

	return &Snapshot{
		SchemaVersion: SchemaVersion,
		ID:            probe.ID,
		CreatedAt:     createdAt,
		State:         state,
	}, nil
}

// Load reads and decodes a snapshot file.
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	return Decode(data)
}

// Save writes the snapshot as pretty-printed JSON.
func Save(path string, s *Snapshot) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return nil
}
