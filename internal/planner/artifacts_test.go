package planner

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmw24/IndiaElecGen/internal/lp"
	"github.com/dmw24/IndiaElecGen/internal/model"
)

func solvedResult(t *testing.T) *Result {
	t.Helper()
	res, err := RunScenario(flatProfile(6, 100, 0), testParams(t), testAssumptions(), testSolver, 10000, 0, "artifacts")
	require.NoError(t, err)
	require.Equal(t, lp.StatusOptimal, res.Summary.Status)
	return res
}

func readCSVFile(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriteArtifacts(t *testing.T) {
	res := solvedResult(t)
	dir := filepath.Join(t.TempDir(), "nested", "artifacts")

	require.NoError(t, WriteArtifacts(res, dir))

	for _, name := range []string{HourlyDispatchFile, SummaryFile, CostBreakdownFile, AssumptionsUsedFile} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
}

func TestDispatchCSVSchema(t *testing.T) {
	res := solvedResult(t)
	dir := t.TempDir()
	path := filepath.Join(dir, HourlyDispatchFile)
	require.NoError(t, WriteDispatchCSV(path, res.Hourly))

	rows := readCSVFile(t, path)
	require.Len(t, rows, 1+len(res.Hourly))

	wantHeader := []string{
		"timestamp", "solar_profile", "demand_mwh",
		"gen_solar_mwh", "gen_diesel_mwh", "gen_ccgt_mwh", "gen_coal_mwh",
		"battery_charge_mwh", "battery_discharge_mwh", "battery_net_mwh", "battery_soc_mwh",
		"unserved_mwh", "solar_potential_mwh", "solar_curtailment_mwh",
	}
	assert.Equal(t, wantHeader, rows[0])

	assert.Equal(t, "2023-01-01 00:00:00", rows[1][0])
	assert.Equal(t, "100.000000", rows[1][2])
}

func TestSummaryJSONRoundTrip(t *testing.T) {
	res := solvedResult(t)
	path := filepath.Join(t.TempDir(), SummaryFile)
	require.NoError(t, WriteSummaryJSON(path, res.Summary))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, "artifacts", decoded["scenario_name"])
	assert.Equal(t, "Optimal", decoded["status"])
	assert.Equal(t, false, decoded["capacity_factor_constraints_applied"])
	assert.Contains(t, decoded, "share_metric_definition")
	assert.Contains(t, decoded, "achieved_non_fossil_share")
	assert.Contains(t, decoded, "lcoe_usd_per_mwh_served")
	assert.InDelta(t, res.Summary.ObjectiveUSD, decoded["objective_usd"].(float64), 1e-6)
}

func TestCostBreakdownCSV(t *testing.T) {
	res := solvedResult(t)
	path := filepath.Join(t.TempDir(), CostBreakdownFile)
	require.NoError(t, WriteCostBreakdownCSV(path, res.Summary))

	rows := readCSVFile(t, path)
	// Header + 3 components per technology + the penalty row.
	require.Len(t, rows, 1+3*len(model.AllTechs)+1)
	assert.Equal(t, []string{"bucket", "technology", "component", "cost_usd"}, rows[0])

	last := rows[len(rows)-1]
	assert.Equal(t, "penalty", last[0])
	assert.Equal(t, "system", last[1])
	assert.Equal(t, "unserved_penalty", last[2])

	buckets := map[string]int{}
	for _, row := range rows[1:] {
		buckets[row[0]]++
	}
	assert.Equal(t, 2*len(model.AllTechs), buckets["fixed"])
	assert.Equal(t, len(model.AllTechs), buckets["variable"])
	assert.Equal(t, 1, buckets["penalty"])
}

func TestAssumptionsCSVSorted(t *testing.T) {
	path := filepath.Join(t.TempDir(), AssumptionsUsedFile)
	set := model.AssumptionSet{
		"Zeta":  1,
		"alpha": 2,
		"Beta":  3,
	}
	require.NoError(t, WriteAssumptionsCSV(path, set))

	rows := readCSVFile(t, path)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"assumption", "value"}, rows[0])
	assert.Equal(t, "alpha", rows[1][0])
	assert.Equal(t, "Beta", rows[2][0])
	assert.Equal(t, "Zeta", rows[3][0])
	assert.Equal(t, "2.000000", rows[1][1])
}
