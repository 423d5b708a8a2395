// Package data loads the hourly profile and cost assumptions from the input
// workbook (or CSV equivalents with the same schema).
package data

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dmw24/IndiaElecGen/internal/model"
)

// Column names shared by the workbook sheets and their CSV equivalents.
const (
	colDate   = "Date"
	colSolar  = "Solar profile"
	colDemand = "Total Demand (MWh)"

	colAssumption = "Assumption"
	colValue      = "Value"
)

// excelEpoch is the origin for Excel 1900-system serial dates. Adding a
// serial directly to 1899-12-30 lands serial 1 on 1899-12-31, which
// compensates for Excel counting from 1 and for its phantom 1900-02-29, so
// modern serials convert correctly (serial 44927 is 2023-01-01).
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// dateLayouts are tried in order for non-serial date cells.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02 15:04",
	"01-02-06 15:04",
	"2006-01-02",
	"1/2/06 15:04",
	"1/2/2006 15:04",
}

// parseProfileRows converts sheet rows (header first) into a Profile.
// Timestamps are rounded to the hour. Any unparseable date is a hard error;
// missing solar/demand cells read as 0.
func parseProfileRows(rows [][]string) (model.Profile, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("profiles sheet is empty")
	}

	cols, err := headerIndex(rows[0], colDate, colSolar, colDemand)
	if err != nil {
		return nil, err
	}

	dataRows := rows[1:]

	// The workbook stores dates as Excel serials; CSV exports store strings.
	// Mirror the upstream heuristic: when most date cells are numeric, the
	// whole column is treated as serial days.
	numeric := 0
	nonEmpty := 0
	for _, row := range dataRows {
		cell := cellAt(row, cols[colDate])
		if strings.TrimSpace(cell) == "" {
			continue
		}
		nonEmpty++
		if _, err := strconv.ParseFloat(strings.TrimSpace(cell), 64); err == nil {
			numeric++
		}
	}
	serialDates := nonEmpty > 0 && float64(numeric)/float64(nonEmpty) > 0.9

	profile := make(model.Profile, 0, len(dataRows))
	for i, row := range dataRows {
		dateCell := strings.TrimSpace(cellAt(row, cols[colDate]))
		if dateCell == "" && strings.TrimSpace(cellAt(row, cols[colDemand])) == "" {
			// Trailing blank row.
			continue
		}

		ts, err := parseTimestamp(dateCell, serialDates)
		if err != nil {
			return nil, fmt.Errorf("profiles row %d: %w", i+2, err)
		}

		profile = append(profile, model.HourlyPoint{
			Timestamp:     ts.Round(time.Hour),
			SolarFraction: parseFloatOrZero(cellAt(row, cols[colSolar])),
			DemandMWh:     parseFloatOrZero(cellAt(row, cols[colDemand])),
		})
	}

	if err := profile.Validate(); err != nil {
		return nil, err
	}
	return profile, nil
}

func parseTimestamp(cell string, serial bool) (time.Time, error) {
	if cell == "" {
		return time.Time{}, fmt.Errorf("empty date cell")
	}
	if serial {
		days, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse serial date %q", cell)
		}
		return excelEpoch.Add(time.Duration(days * float64(24*time.Hour))), nil
	}
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, cell); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("failed to parse timestamp %q", cell)
}

// parseAssumptionRows converts sheet rows (header first) into an
// AssumptionSet. Rows with a missing name or a non-numeric value are skipped,
// matching the workbook's tolerance for annotation rows.
func parseAssumptionRows(rows [][]string) (model.AssumptionSet, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("cost assumptions sheet is empty")
	}

	cols, err := headerIndex(rows[0], colAssumption, colValue)
	if err != nil {
		return nil, err
	}

	assumptions := make(model.AssumptionSet)
	for _, row := range rows[1:] {
		name := strings.TrimSpace(cellAt(row, cols[colAssumption]))
		if name == "" {
			continue
		}
		value := strings.TrimSpace(cellAt(row, cols[colValue]))
		if value == "" {
			continue
		}
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			continue
		}
		assumptions[name] = v
	}
	return assumptions, nil
}

// headerIndex locates the required columns in a header row, reporting every
// missing column at once.
func headerIndex(header []string, required ...string) (map[string]int, error) {
	idx := make(map[string]int, len(required))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}

	var missing []string
	out := make(map[string]int, len(required))
	for _, name := range required {
		i, ok := idx[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		out[name] = i
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("missing columns: %s", strings.Join(missing, ", "))
	}
	return out, nil
}

func cellAt(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

func parseFloatOrZero(cell string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil {
		return 0
	}
	return v
}
