package data

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/dmw24/IndiaElecGen/internal/model"
)

// Workbook sheet names.
const (
	profilesSheet    = "Profiles"
	assumptionsSheet = "Cost assumptions"
)

// LoadWorkbook reads the hourly profile and cost assumptions from an Excel
// workbook with "Profiles" and "Cost assumptions" sheets.
func LoadWorkbook(path string) (model.Profile, model.AssumptionSet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	profileRows, err := f.GetRows(profilesSheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %q: %w", profilesSheet, err)
	}
	profile, err := parseProfileRows(profileRows)
	if err != nil {
		return nil, nil, fmt.Errorf("sheet %q: %w", profilesSheet, err)
	}

	assumptionRows, err := f.GetRows(assumptionsSheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %q: %w", assumptionsSheet, err)
	}
	assumptions, err := parseAssumptionRows(assumptionRows)
	if err != nil {
		return nil, nil, fmt.Errorf("sheet %q: %w", assumptionsSheet, err)
	}

	return profile, assumptions, nil
}
