package data

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmw24/IndiaElecGen/internal/model"
)

// LoadProfileCSV reads an hourly profile from a CSV file with the same
// columns as the workbook's Profiles sheet (Date, Solar profile,
// Total Demand (MWh)).
func LoadProfileCSV(path string) (model.Profile, error) {
	rows, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	profile, err := parseProfileRows(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return profile, nil
}

// LoadAssumptionsCSV reads cost assumptions from a CSV file with the same
// columns as the workbook's Cost assumptions sheet (Assumption, Value).
func LoadAssumptionsCSV(path string) (model.AssumptionSet, error) {
	rows, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	assumptions, err := parseAssumptionRows(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return assumptions, nil
}

// LoadInputs dispatches on the input extension: .xlsx/.xlsm loads both sheets
// from one workbook, .csv expects the profile in inputPath and the
// assumptions alongside it in assumptionsPath.
func LoadInputs(inputPath, assumptionsPath string) (model.Profile, model.AssumptionSet, error) {
	switch strings.ToLower(filepath.Ext(inputPath)) {
	case ".xlsx", ".xlsm":
		return LoadWorkbook(inputPath)
	case ".csv":
		if assumptionsPath == "" {
			return nil, nil, fmt.Errorf("CSV input %s requires a separate assumptions file", inputPath)
		}
		profile, err := LoadProfileCSV(inputPath)
		if err != nil {
			return nil, nil, err
		}
		assumptions, err := LoadAssumptionsCSV(assumptionsPath)
		if err != nil {
			return nil, nil, err
		}
		return profile, assumptions, nil
	default:
		return nil, nil, fmt.Errorf("unsupported input format: %s", inputPath)
	}
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return rows, nil
}
