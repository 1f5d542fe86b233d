// Package export renders schedules to flat interchange formats.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/mwarner/courtsched/internal/clash"
	"github.com/mwarner/courtsched/internal/strategy"
)

// WriteScheduleCSV writes the flat match projection. The column set mirrors
// the Match record exactly; unplaced games show empty venue/court/time.
func WriteScheduleCSV(w io.Writer, schedule []strategy.Match) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"week", "division", "home", "away", "venue", "court", "time"}); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, m := range schedule {
		row := []string{strconv.Itoa(m.Week), m.Division, m.Home, m.Away, m.Venue, m.Court, m.Time}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteClashEdgesCSV writes the deduplicated clash edge list.
func WriteClashEdgesCSV(w io.Writer, edges []clash.Edge) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"team", "clash_team"}); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, e := range edges {
		if err := cw.Write([]string{e.A, e.B}); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
