package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/dmw24/IndiaElecGen/internal/lp"
	"github.com/dmw24/IndiaElecGen/internal/sweep"
)

// Config is the on-disk run configuration (YAML). Command-line flags override
// anything set here.
type Config struct {
	// Input is the workbook path (or a profile CSV when Assumptions is set).
	Input string `yaml:"input"`
	// Assumptions is the assumptions CSV path for CSV inputs.
	Assumptions string `yaml:"assumptions"`

	OutputRoot string `yaml:"output_root"`

	// VOLL is the unserved-energy penalty in $/MWh.
	VOLL float64 `yaml:"voll"`

	// Scenarios lists the sweep members; empty runs the default nf70-nf99
	// sweep.
	Scenarios []ScenarioConfig `yaml:"scenarios"`

	// Parallel bounds concurrent scenario solves (0 or 1 = sequential).
	Parallel int `yaml:"parallel"`

	Solver SolverConfig `yaml:"solver"`
}

type ScenarioConfig struct {
	Name              string  `yaml:"name"`
	MinNonFossilShare float64 `yaml:"min_non_fossil_share"`
}

type SolverConfig struct {
	// Tolerance is the simplex tolerance; 0 uses the solver default.
	Tolerance float64 `yaml:"tolerance"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Input:      "Input file.xlsx",
		OutputRoot: "outputs/scenarios",
		VOLL:       10000.0,
	}
}

// Load reads, defaults, and validates a config file.
func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads a config without defaulting or validation. Relative
// input paths are resolved against the config file's directory when they
// exist there.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	c.Input = resolveRelative(dir, c.Input)
	c.Assumptions = resolveRelative(dir, c.Assumptions)
	return &c, nil
}

func (c *Config) applyDefaults() {
	def := Default()
	if c.Input == "" {
		c.Input = def.Input
	}
	if c.OutputRoot == "" {
		c.OutputRoot = def.OutputRoot
	}
	if c.VOLL == 0 {
		c.VOLL = def.VOLL
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Input == "" {
		return errors.New("input is required")
	}
	if c.VOLL < 0 {
		return errors.New("voll must be >= 0")
	}
	if c.Parallel < 0 {
		return errors.New("parallel must be >= 0")
	}
	seen := make(map[string]bool, len(c.Scenarios))
	for i, s := range c.Scenarios {
		if s.Name == "" {
			return fmt.Errorf("scenarios[%d]: name is required", i)
		}
		if seen[s.Name] {
			return fmt.Errorf("scenarios[%d]: duplicate name %q", i, s.Name)
		}
		seen[s.Name] = true
	}
	return nil
}

// Specs converts the configured scenarios into sweep specs, falling back to
// the default sweep when none are configured.
func (c *Config) Specs() []sweep.Spec {
	if len(c.Scenarios) == 0 {
		out := make([]sweep.Spec, len(sweep.DefaultSpecs))
		copy(out, sweep.DefaultSpecs)
		return out
	}
	out := make([]sweep.Spec, len(c.Scenarios))
	for i, s := range c.Scenarios {
		out[i] = sweep.Spec{Name: s.Name, TargetShare: s.MinNonFossilShare}
	}
	return out
}

// NewSolver builds the configured solver.
func (c *Config) NewSolver() lp.Solver {
	return lp.SimplexSolver{Tol: c.Solver.Tolerance}
}

// resolveRelative prefers interpreting relative paths against the config file
// directory, falling back to the path as given when nothing exists there.
func resolveRelative(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	cand := filepath.Join(dir, path)
	if _, err := os.Stat(cand); err == nil {
		return cand
	}
	return path
}
