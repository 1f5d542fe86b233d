package excel

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/mwarner/courtsched/internal/config"
	"github.com/mwarner/courtsched/internal/report"
	"github.com/mwarner/courtsched/internal/schedule"
	"github.com/mwarner/courtsched/internal/strategy"
)

// Generate creates a workbook with the master schedule and one grid sheet
// per division.
func Generate(cfg *config.Config, sched []strategy.Match) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetDefaultFont("Arial")

	if err := writeMasterSheet(f, cfg, sched); err != nil {
		return nil, fmt.Errorf("writing master sheet: %w", err)
	}
	if err := writeDivisionSheets(f, cfg, sched); err != nil {
		return nil, fmt.Errorf("writing division sheets: %w", err)
	}

	f.DeleteSheet("Sheet1")
	return f, nil
}

func headerStyle(f *excelize.File) int {
	style, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 12, Family: "Arial"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#4472C4"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	return style
}

// courtColumns returns the distinct venue/court pairs in catalogue order.
func courtColumns(slots []schedule.Slot) []schedule.Slot {
	var cols []schedule.Slot
	for _, s := range slots {
		if len(cols) == 0 || cols[len(cols)-1].Venue != s.Venue || cols[len(cols)-1].Court != s.Court {
			cols = append(cols, schedule.Slot{Venue: s.Venue, Court: s.Court})
		}
	}
	return cols
}

func writeMasterSheet(f *excelize.File, cfg *config.Config, sched []strategy.Match) error {
	sheet := "Schedule"
	f.NewSheet(sheet)

	slots := schedule.BuildSlots(cfg.Venues, cfg.Timeslots)
	cols := courtColumns(slots)

	headers := []string{"Week", "Time"}
	for _, c := range cols {
		headers = append(headers, c.Venue+" "+c.Court)
	}
	for i, h := range headers {
		f.SetCellValue(sheet, cellRef(i+1, 1), h)
	}
	if style := headerStyle(f); style != 0 {
		for i := range headers {
			f.SetCellStyle(sheet, cellRef(i+1, 1), cellRef(i+1, 1), style)
		}
	}

	type cellKey struct {
		week         int
		venue, court string
		time         string
	}
	games := make(map[cellKey]strategy.Match)
	var unassigned []strategy.Match
	for _, m := range sched {
		switch {
		case m.Placed():
			games[cellKey{m.Week, m.Venue, m.Court, m.Time}] = m
		case !m.IsBye():
			unassigned = append(unassigned, m)
		}
	}

	row := 2
	for w := 1; w <= cfg.Weeks; w++ {
		for _, t := range cfg.Timeslots {
			f.SetCellValue(sheet, cellRef(1, row), w)
			f.SetCellValue(sheet, cellRef(2, row), schedule.FormatTimeLabel(t))
			for ci, c := range cols {
				if m, ok := games[cellKey{w, c.Venue, c.Court, t}]; ok {
					f.SetCellValue(sheet, cellRef(ci+3, row), fmt.Sprintf("%s v %s (%s)", m.Home, m.Away, m.Division))
				}
			}
			row++
		}
	}

	if len(unassigned) > 0 {
		row++
		f.SetCellValue(sheet, cellRef(1, row), "Unassigned")
		if style := headerStyle(f); style != 0 {
			f.SetCellStyle(sheet, cellRef(1, row), cellRef(1, row), style)
		}
		row++
		for _, m := range unassigned {
			f.SetCellValue(sheet, cellRef(1, row), m.Week)
			f.SetCellValue(sheet, cellRef(2, row), m.Division)
			f.SetCellValue(sheet, cellRef(3, row), fmt.Sprintf("%s v %s", m.Home, m.Away))
			row++
		}
	}

	f.SetColWidth(sheet, "A", "A", 8)
	f.SetColWidth(sheet, "B", "B", 10)
	for i := range cols {
		col := colLetter(i + 3)
		f.SetColWidth(sheet, col, col, 24)
	}

	return nil
}

func writeDivisionSheets(f *excelize.File, cfg *config.Config, sched []strategy.Match) error {
	grid := report.BuildGrid(sched)
	slots := schedule.BuildSlots(cfg.Venues, cfg.Timeslots)

	codes := make([]string, 0, len(cfg.Divisions))
	for _, d := range cfg.Divisions {
		codes = append(codes, d.Code)
	}
	sort.Strings(codes)

	for _, div := range codes {
		byWeek := grid.ByDivision[div]
		if byWeek == nil {
			continue
		}

		sheet := div
		f.NewSheet(sheet)

		headers := []string{"Slot"}
		for w := 1; w <= cfg.Weeks; w++ {
			headers = append(headers, fmt.Sprintf("Week %d", w))
		}
		for i, h := range headers {
			f.SetCellValue(sheet, cellRef(i+1, 1), h)
		}
		if style := headerStyle(f); style != 0 {
			for i := range headers {
				f.SetCellStyle(sheet, cellRef(i+1, 1), cellRef(i+1, 1), style)
			}
		}

		// Only slot rows this division ever occupies.
		var rows []schedule.Slot
		for _, s := range slots {
			key := report.SlotKey(s.Venue, s.Court, s.Time)
			for w := 1; w <= cfg.Weeks; w++ {
				if cell := byWeek[w]; cell != nil {
					if _, ok := cell.BySlot[key]; ok {
						rows = append(rows, s)
						break
					}
				}
			}
		}

		row := 2
		for _, s := range rows {
			label := fmt.Sprintf("%s %s %s", s.Venue, s.Court, schedule.FormatTimeLabel(s.Time))
			f.SetCellValue(sheet, cellRef(1, row), label)
			key := report.SlotKey(s.Venue, s.Court, s.Time)
			for w := 1; w <= cfg.Weeks; w++ {
				if cell := byWeek[w]; cell != nil {
					if g, ok := cell.BySlot[key]; ok {
						f.SetCellValue(sheet, cellRef(w+1, row),
							fmt.Sprintf("%s v %s", config.TeamNumber(g.Home), config.TeamNumber(g.Away)))
					}
				}
			}
			row++
		}

		f.SetCellValue(sheet, cellRef(1, row), "BYE")
		for w := 1; w <= cfg.Weeks; w++ {
			if cell := byWeek[w]; cell != nil && cell.Bye != "" {
				f.SetCellValue(sheet, cellRef(w+1, row), config.TeamNumber(cell.Bye))
			}
		}
		row++

		if uw := grid.Unassigned[div]; uw != nil {
			f.SetCellValue(sheet, cellRef(1, row), "Unassigned")
			for w := 1; w <= cfg.Weeks; w++ {
				pairs := uw[w]
				if len(pairs) == 0 {
					continue
				}
				var parts []string
				for _, p := range pairs {
					parts = append(parts, fmt.Sprintf("%s v %s", config.TeamNumber(p.Home), config.TeamNumber(p.Away)))
				}
				f.SetCellValue(sheet, cellRef(w+1, row), strings.Join(parts, ", "))
			}
		}

		f.SetColWidth(sheet, "A", "A", 26)
		for w := 1; w <= cfg.Weeks; w++ {
			col := colLetter(w + 1)
			f.SetColWidth(sheet, col, col, 12)
		}
	}

	return nil
}

func cellRef(col, row int) string {
	return fmt.Sprintf("%s%d", colLetter(col), row)
}

func colLetter(col int) string {
	result := ""
	for col > 0 {
		col--
		result = string(rune('A'+col%26)) + result
		col /= 26
	}
	return result
}
