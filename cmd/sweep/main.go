package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/dmw24/IndiaElecGen/internal/config"
	"github.com/dmw24/IndiaElecGen/internal/data"
	"github.com/dmw24/IndiaElecGen/internal/econ"
	"github.com/dmw24/IndiaElecGen/internal/sweep"
)

func main() {
	cfgPath := flag.String("config", "", "Optional YAML config file; flags override it")
	inputPath := flag.String("input", "", "Path to workbook input (or a profile CSV)")
	assumptionsPath := flag.String("assumptions", "", "Assumptions CSV path (required for CSV inputs)")
	outputRoot := flag.String("output-root", "", "Root directory where scenario output folders are created")
	scenariosRaw := flag.String("scenarios", "", "Comma-separated scenarios, e.g. 'nf70:0.7,nf80:0.8' or '70,80,90'. Default runs nf70,nf80,nf90,nf95,nf99")
	voll := flag.Float64("voll", 0, "Value of lost load penalty in $/MWh")
	parallel := flag.Int("parallel", 0, "Max concurrent scenario solves (0 = sequential)")
	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		cfg = loaded
	}
	if *inputPath != "" {
		cfg.Input = *inputPath
	}
	if *assumptionsPath != "" {
		cfg.Assumptions = *assumptionsPath
	}
	if *outputRoot != "" {
		cfg.OutputRoot = *outputRoot
	}
	if *voll != 0 {
		cfg.VOLL = *voll
	}
	if *parallel != 0 {
		cfg.Parallel = *parallel
	}

	specs := cfg.Specs()
	if *scenariosRaw != "" {
		parsed, err := sweep.ParseSpecs(*scenariosRaw)
		if err != nil {
			log.Fatalf("parse scenarios: %v", err)
		}
		specs = parsed
	}

	profile, assumptions, err := data.LoadInputs(cfg.Input, cfg.Assumptions)
	if err != nil {
		log.Fatalf("load inputs: %v", err)
	}
	fmt.Printf("Loaded %d hours from %s to %s from %s\n",
		profile.Hours(),
		profile[0].Timestamp.Format(time.RFC3339),
		profile[profile.Hours()-1].Timestamp.Format(time.RFC3339),
		cfg.Input,
	)

	params, err := econ.Derive(assumptions)
	if err != nil {
		log.Fatalf("derive parameters: %v", err)
	}

	if err := os.MkdirAll(cfg.OutputRoot, 0o755); err != nil {
		log.Fatalf("create output root: %v", err)
	}

	inputAbs, err := filepath.Abs(cfg.Input)
	if err != nil {
		inputAbs = cfg.Input
	}

	runner := &sweep.Runner{
		Profile:     profile,
		Assumptions: assumptions,
		Params:      params,
		Solver:      cfg.NewSolver(),
		VOLL:        cfg.VOLL,
		OutputRoot:  cfg.OutputRoot,
		InputFile:   inputAbs,
		Parallel:    cfg.Parallel,
	}

	idx, err := runner.Run(specs)
	if err != nil {
		log.Fatalf("run sweep: %v", err)
	}

	for _, row := range idx.Scenarios {
		fmt.Printf("  %s: status=%s lcoe=$%.2f/MWh non_fossil=%.2f%%\n",
			row.ID, row.Status, row.LCOEUSDPerMWhServed,
			row.AchievedNonFossilShareServedPrimary*100)
	}
	fmt.Printf("Wrote scenario index to %s\n", filepath.Join(cfg.OutputRoot, sweep.IndexFile))
}
