package main

import (
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/dmw24/IndiaElecGen/internal/data"
	"github.com/dmw24/IndiaElecGen/internal/econ"
	"github.com/dmw24/IndiaElecGen/internal/lp"
	"github.com/dmw24/IndiaElecGen/internal/planner"
)

func main() {
	inputPath := flag.String("input", "Input file.xlsx", "Path to workbook with 'Profiles' and 'Cost assumptions' sheets, or a profile CSV")
	assumptionsPath := flag.String("assumptions", "", "Assumptions CSV path (required for CSV inputs)")
	outputDir := flag.String("output-dir", "outputs", "Directory for result artifacts")
	voll := flag.Float64("voll", 10000.0, "Value of lost load penalty in $/MWh (forces high reliability)")
	minShare := flag.Float64("min-non-fossil-share", 0.0, "Minimum non-fossil generation share (0 to 1)")
	scenarioName := flag.String("scenario-name", "default", "Scenario name recorded in summary output")
	tol := flag.Float64("tol", 0, "Simplex tolerance (0 = default)")
	flag.Parse()

	profile, assumptions, err := data.LoadInputs(*inputPath, *assumptionsPath)
	if err != nil {
		log.Fatalf("load inputs: %v", err)
	}
	fmt.Printf("Loaded %d hours from %s to %s from %s\n",
		profile.Hours(),
		profile[0].Timestamp.Format(time.RFC3339),
		profile[profile.Hours()-1].Timestamp.Format(time.RFC3339),
		*inputPath,
	)

	params, err := econ.Derive(assumptions)
	if err != nil {
		log.Fatalf("derive parameters: %v", err)
	}

	solver := lp.SimplexSolver{Tol: *tol}
	res, err := planner.RunScenario(profile, params, assumptions, solver, *voll, *minShare, *scenarioName)
	if err != nil {
		log.Fatalf("run scenario: %v", err)
	}

	fmt.Printf("Solver status: %s\n", res.Summary.Status)
	if res.Summary.Status != lp.StatusOptimal {
		fmt.Println("Warning: Solution is not Optimal. Outputs are still being written for debugging.")
	}

	if err := planner.WriteArtifacts(res, *outputDir); err != nil {
		log.Fatalf("write outputs: %v", err)
	}
	abs, err := filepath.Abs(*outputDir)
	if err != nil {
		abs = *outputDir
	}
	fmt.Printf("Wrote results to %s\n", abs)
}
