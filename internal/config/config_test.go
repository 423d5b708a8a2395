package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmw24/IndiaElecGen/internal/lp"
	"github.com/dmw24/IndiaElecGen/internal/sweep"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFullConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
input: data.xlsx
output_root: out/scenarios
voll: 5000
parallel: 4
solver:
  tolerance: 1e-8
scenarios:
  - name: base
    min_non_fossil_share: 0
  - name: nf90
    min_non_fossil_share: 0.9
`)

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "data.xlsx", c.Input)
	assert.Equal(t, "out/scenarios", c.OutputRoot)
	assert.Equal(t, 5000.0, c.VOLL)
	assert.Equal(t, 4, c.Parallel)
	assert.Equal(t, 1e-8, c.Solver.Tolerance)

	specs := c.Specs()
	require.Len(t, specs, 2)
	assert.Equal(t, sweep.Spec{Name: "base", TargetShare: 0}, specs[0])
	assert.Equal(t, sweep.Spec{Name: "nf90", TargetShare: 0.9}, specs[1])

	solver, ok := c.NewSolver().(lp.SimplexSolver)
	require.True(t, ok)
	assert.Equal(t, 1e-8, solver.Tol)
}

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "{}\n")

	c, err := Load(path)
	require.NoError(t, err)

	def := Default()
	assert.Equal(t, def.Input, c.Input)
	assert.Equal(t, def.OutputRoot, c.OutputRoot)
	assert.Equal(t, def.VOLL, c.VOLL)
	assert.Equal(t, sweep.DefaultSpecs, c.Specs())
}

func TestLoadResolvesRelativeInput(t *testing.T) {
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "profile.csv")
	require.NoError(t, os.WriteFile(inputPath, []byte("Date,Solar profile,Total Demand (MWh)\n"), 0o644))
	path := writeConfig(t, dir, "input: profile.csv\n")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, inputPath, c.Input)
}

func TestLoadRelativeInputMissingKeptAsGiven(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "input: elsewhere/profile.csv\n")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "elsewhere/profile.csv", c.Input)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "input: [unclosed\n")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := map[string]*Config{
		"negative voll":     {Input: "a.xlsx", VOLL: -1},
		"negative parallel": {Input: "a.xlsx", Parallel: -1},
		"unnamed scenario":  {Input: "a.xlsx", Scenarios: []ScenarioConfig{{Name: ""}}},
		"duplicate scenario": {Input: "a.xlsx", Scenarios: []ScenarioConfig{
			{Name: "nf70", MinNonFossilShare: 0.7},
			{Name: "nf70", MinNonFossilShare: 0.75},
		}},
		"missing input": {Input: ""},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, c.Validate())
		})
	}

	ok := &Config{Input: "a.xlsx", VOLL: 10000, Scenarios: []ScenarioConfig{{Name: "base"}}}
	assert.NoError(t, ok.Validate())
}
