package planner

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/dmw24/IndiaElecGen/internal/model"
)

// Artifact file names inside a scenario output directory. The downstream
// dashboard reads the first three plus the sweep-level scenario_index.json;
// their schemas are stable.
const (
	HourlyDispatchFile  = "hourly_dispatch.csv"
	SummaryFile         = "summary.json"
	CostBreakdownFile   = "cost_breakdown.csv"
	AssumptionsUsedFile = "assumptions_used.csv"
)

const timestampLayout = "2006-01-02 15:04:05"

// WriteArtifacts writes all four per-scenario files into dir, creating it if
// needed.
func WriteArtifacts(res *Result, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := WriteDispatchCSV(filepath.Join(dir, HourlyDispatchFile), res.Hourly); err != nil {
		return fmt.Errorf("write hourly dispatch: %w", err)
	}
	if err := WriteSummaryJSON(filepath.Join(dir, SummaryFile), res.Summary); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	if err := WriteCostBreakdownCSV(filepath.Join(dir, CostBreakdownFile), res.Summary); err != nil {
		return fmt.Errorf("write cost breakdown: %w", err)
	}
	if err := WriteAssumptionsCSV(filepath.Join(dir, AssumptionsUsedFile), res.Assumptions); err != nil {
		return fmt.Errorf("write assumptions: %w", err)
	}
	return nil
}

// WriteDispatchCSV writes the hourly dispatch table, one row per hour in
// chronological order.
func WriteDispatchCSV(path string, rows []DispatchRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"timestamp",
		"solar_profile",
		"demand_mwh",
		"gen_solar_mwh",
		"gen_diesel_mwh",
		"gen_ccgt_mwh",
		"gen_coal_mwh",
		"battery_charge_mwh",
		"battery_discharge_mwh",
		"battery_net_mwh",
		"battery_soc_mwh",
		"unserved_mwh",
		"solar_potential_mwh",
		"solar_curtailment_mwh",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range rows {
		record := []string{
			r.Timestamp.Format(timestampLayout),
			fmtFloat(r.SolarProfile),
			fmtFloat(r.DemandMWh),
			fmtFloat(r.GenSolarMWh),
			fmtFloat(r.GenDieselMWh),
			fmtFloat(r.GenCCGTMWh),
			fmtFloat(r.GenCoalMWh),
			fmtFloat(r.BatteryChargeMWh),
			fmtFloat(r.BatteryDischargeMWh),
			fmtFloat(r.BatteryNetMWh),
			fmtFloat(r.BatterySOCMWh),
			fmtFloat(r.UnservedMWh),
			fmtFloat(r.SolarPotentialMWh),
			fmtFloat(r.SolarCurtailmentMWh),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return w.Error()
}

// WriteSummaryJSON writes the summary record, indented for direct inspection.
func WriteSummaryJSON(path string, s Summary) error {
	raw, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}

// WriteCostBreakdownCSV writes the long-format cost rows: one row per
// technology and component, plus a single system-level penalty row.
func WriteCostBreakdownCSV(path string, s Summary) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"bucket", "technology", "component", "cost_usd"}); err != nil {
		return err
	}

	type comp struct {
		bucket string
		name   string
		value  func(CostComponents) float64
	}
	comps := []comp{
		{"fixed", "capex_annualized", func(c CostComponents) float64 { return c.CapexAnnualizedUSD }},
		{"fixed", "fixed_om", func(c CostComponents) float64 { return c.FixedOMUSD }},
		{"variable", "var_om", func(c CostComponents) float64 { return c.VarOMUSD }},
	}

	for _, t := range model.AllTechs {
		parts, ok := s.CostComponentsByTechnology[t.String()]
		if !ok {
			continue
		}
		for _, c := range comps {
			record := []string{c.bucket, t.String(), c.name, fmtFloat(c.value(parts))}
			if err := w.Write(record); err != nil {
				return err
			}
		}
	}

	penalty := []string{"penalty", "system", "unserved_penalty", fmtFloat(s.UnservedPenaltyUSD)}
	if err := w.Write(penalty); err != nil {
		return err
	}
	return w.Error()
}

// WriteAssumptionsCSV writes the flattened, alphabetically sorted assumption
// audit trail.
func WriteAssumptionsCSV(path string, assumptions model.AssumptionSet) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"assumption", "value"}); err != nil {
		return err
	}
	for _, key := range assumptions.SortedKeys() {
		if err := w.Write([]string{key, fmtFloat(assumptions[key])}); err != nil {
			return err
		}
	}
	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
