package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// timeslotRe matches canonical 24-hour HH:MM times.
var timeslotRe = regexp.MustCompile(`^([01]?\d|2[0-3]):[0-5]\d$`)

// Division defines a named group of teams that only play each other.
// Team IDs are derived from Code and Teams, never listed explicitly.
type Division struct {
	Code       string  `yaml:"code" json:"code" validate:"required"`
	Teams      int     `yaml:"teams" json:"teams" validate:"gt=0"`
	NetHeightM float64 `yaml:"net_height_m" json:"netHeightM" validate:"gt=0"`
}

// Venue is a physical location contributing one schedulable court per entry.
type Venue struct {
	Name   string   `yaml:"name" json:"name" validate:"required"`
	Courts []string `yaml:"courts" json:"courts" validate:"min=1,unique,dive,required"`
}

// ClashRow declares a group of teams that share players. Every pair within
// the row must never be scheduled at the same time in the same week.
type ClashRow struct {
	Teams []string `yaml:"teams" json:"teams"`
}

// TimePrefs records a team's timeslot preferences. These never influence
// placement; they feed the compliance report only.
type TimePrefs struct {
	Preferred    []string `yaml:"preferred,omitempty" json:"preferred,omitempty"`
	NotPreferred []string `yaml:"not_preferred,omitempty" json:"notPreferred,omitempty"`
	Unavailable  []string `yaml:"unavailable,omitempty" json:"unavailable,omitempty"`
}

type Config struct {
	Weeks     int        `yaml:"weeks" validate:"gt=0"`
	Timeslots []string   `yaml:"timeslots" validate:"min=1,unique"`
	Venues    []Venue    `yaml:"venues" validate:"min=1,unique=Name,dive"`
	Divisions []Division `yaml:"divisions" validate:"min=1,unique=Code,dive"`
	Clashes   []ClashRow `yaml:"clashes"`
	Strategy  string     `yaml:"strategy"`

	// Optional presentation config.
	TeamNames map[string]string    `yaml:"team_names"`
	TimePrefs map[string]TimePrefs `yaml:"time_prefs"`
}

// Bye is the reserved pseudo-team meaning "no opponent this round".
const Bye = "BYE"

func pad2(n int) string {
	return fmt.Sprintf("%02d", n)
}

// TeamIDs returns the division's team IDs, "{code}-{NN}" with a 1-based
// zero-padded sequence. Non-positive team counts yield no IDs.
func (d Division) TeamIDs() []string {
	if d.Teams <= 0 {
		return nil
	}
	ids := make([]string, 0, d.Teams)
	for i := 1; i <= d.Teams; i++ {
		ids = append(ids, d.Code+"-"+pad2(i))
	}
	return ids
}

// AllTeamIDs returns every team ID across all divisions, grouped by division
// in division list order.
func (c *Config) AllTeamIDs() []string {
	var ids []string
	for _, d := range c.Divisions {
		ids = append(ids, d.TeamIDs()...)
	}
	return ids
}

// TeamIDsByDivision maps division code to that division's team IDs.
func (c *Config) TeamIDsByDivision() map[string][]string {
	m := make(map[string][]string, len(c.Divisions))
	for _, d := range c.Divisions {
		m[d.Code] = d.TeamIDs()
	}
	return m
}

// DisplayName resolves a team ID to its configured friendly name, falling
// back to the ID itself.
func (c *Config) DisplayName(id string) string {
	if name, ok := c.TeamNames[id]; ok && strings.TrimSpace(name) != "" {
		return name
	}
	return id
}

// TeamNumber extracts the sequence portion of a team ID without the leading
// zero ("D1-05" -> "5"). BYE and malformed IDs return "".
func TeamNumber(id string) string {
	if id == "" || id == Bye {
		return ""
	}
	_, num, ok := strings.Cut(id, "-")
	if !ok {
		return ""
	}
	trimmed := strings.TrimLeft(num, "0")
	if trimmed == "" && num != "" {
		return "0"
	}
	return trimmed
}

// LoadFromBytes parses YAML bytes into a Config and validates it.
func LoadFromBytes(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Strategy == "" {
		cfg.Strategy = "round_robin"
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromFile reads and parses a YAML config file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromBytes(data)
}

func (c *Config) validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	for _, t := range c.Timeslots {
		if !timeslotRe.MatchString(t) {
			return fmt.Errorf("timeslot %q is not a valid HH:MM time", t)
		}
	}

	known := make(map[string]bool)
	for _, id := range c.AllTeamIDs() {
		known[id] = true
	}

	for i, row := range c.Clashes {
		for _, team := range row.Teams {
			team = strings.TrimSpace(team)
			if team == "" {
				continue
			}
			if !known[team] {
				return fmt.Errorf("clash row %d references unknown team %q", i+1, team)
			}
		}
	}

	for id := range c.TeamNames {
		if !known[id] {
			return fmt.Errorf("team_names references unknown team %q", id)
		}
	}

	slotSet := make(map[string]bool, len(c.Timeslots))
	for _, t := range c.Timeslots {
		slotSet[t] = true
	}
	for id, prefs := range c.TimePrefs {
		if !known[id] {
			return fmt.Errorf("time_prefs references unknown team %q", id)
		}
		for _, bucket := range [][]string{prefs.Preferred, prefs.NotPreferred, prefs.Unavailable} {
			for _, t := range bucket {
				if !slotSet[t] {
					return fmt.Errorf("time_prefs for %s references unknown timeslot %q", id, t)
				}
			}
		}
	}

	return nil
}
