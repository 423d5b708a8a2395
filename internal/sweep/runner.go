package sweep

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmw24/IndiaElecGen/internal/lp"
	"github.com/dmw24/IndiaElecGen/internal/model"
	"github.com/dmw24/IndiaElecGen/internal/planner"
)

// StatusFailed marks index rows for scenarios that errored before producing a
// summary. Solver statuses (Optimal, Infeasible, ...) pass through untouched.
const StatusFailed = "Failed"

// Runner executes a scenario sweep. Scenarios share the read-only profile,
// assumptions, and derived params, and each writes to its own directory under
// OutputRoot, so they can run in parallel.
type Runner struct {
	Profile     model.Profile
	Assumptions model.AssumptionSet
	Params      *model.SystemParams
	Solver      lp.Solver

	VOLL       float64
	OutputRoot string
	// InputFile is recorded in the index for provenance.
	InputFile string

	// Parallel bounds concurrent scenario solves; values below 1 run the
	// sweep sequentially.
	Parallel int
}

// Run executes every spec, writes per-scenario artifacts, and persists the
// aggregated index once at the end. A failing scenario does not abort the
// sweep: it becomes a failed-status row and the rest still complete. Index
// row order always follows spec order.
func (r *Runner) Run(specs []Spec) (*Index, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("no scenarios to run")
	}
	if err := checkUniqueNames(specs); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(r.OutputRoot, 0o755); err != nil {
		return nil, fmt.Errorf("create output root: %w", err)
	}

	entries := make([]IndexEntry, len(specs))

	var g errgroup.Group
	limit := r.Parallel
	if limit < 1 {
		limit = 1
	}
	g.SetLimit(limit)

	for i, spec := range specs {
		i, spec := i, spec
		g.Go(func() error {
			entries[i] = r.runOne(spec)
			return nil
		})
	}
	// Workers never return errors; failures land in their index rows.
	_ = g.Wait()

	idx := &Index{
		GeneratedAtUTC: time.Now().UTC().Format(time.RFC3339),
		InputFile:      r.InputFile,
		Hours:          r.Profile.Hours(),
		Scenarios:      entries,
	}
	indexPath := filepath.Join(r.OutputRoot, IndexFile)
	if err := WriteIndex(indexPath, idx); err != nil {
		return nil, fmt.Errorf("write index: %w", err)
	}
	log.Printf("[sweep] wrote scenario index to %s", indexPath)
	return idx, nil
}

func (r *Runner) runOne(spec Spec) IndexEntry {
	share := spec.clamped()
	entry := IndexEntry{
		ID:                        spec.Name,
		Label:                     spec.Label(),
		ThresholdNonFossilShare:   share,
		EnforcedMinNonFossilShare: share,
		MinNonFossilShare:         share,
	}

	log.Printf("[sweep] running scenario %s (min_non_fossil_share=%.2f)", spec.Name, share)

	res, err := planner.RunScenario(
		r.Profile, r.Params, r.Assumptions, r.Solver,
		r.VOLL, share, spec.Name,
	)
	if err != nil {
		log.Printf("[sweep] scenario %s failed: %v", spec.Name, err)
		entry.Status = StatusFailed
		entry.Error = err.Error()
		return entry
	}

	scenarioDir := filepath.Join(r.OutputRoot, spec.Name)
	if err := planner.WriteArtifacts(res, scenarioDir); err != nil {
		log.Printf("[sweep] scenario %s failed writing artifacts: %v", spec.Name, err)
		entry.Status = StatusFailed
		entry.Error = err.Error()
		return entry
	}

	s := res.Summary
	entry.AchievedFossilShareServedPrimary = s.AchievedFossilShareServedPrimary
	entry.AchievedNonFossilShareServedPrimary = s.AchievedNonFossilShareServedPrimary
	entry.AchievedSolarShareServed = s.AchievedSolarShareServed
	entry.AchievedNonFossilShare = s.AchievedNonFossilShare
	entry.Status = string(s.Status)
	entry.LCOEUSDPerMWhServed = s.LCOEUSDPerMWhServed
	entry.ObjectiveUSD = s.ObjectiveUSD
	entry.OutputDir = scenarioDir

	log.Printf("[sweep] scenario %s: status=%s lcoe=%.2f non_fossil_share=%.4f",
		spec.Name, entry.Status, entry.LCOEUSDPerMWhServed, entry.AchievedNonFossilShareServedPrimary)
	return entry
}

func checkUniqueNames(specs []Spec) error {
	seen := make(map[string]bool, len(specs))
	for _, s := range specs {
		if s.Name == "" {
			return fmt.Errorf("scenario with empty name")
		}
		if seen[s.Name] {
			return fmt.Errorf("duplicate scenario name %q", s.Name)
		}
		seen[s.Name] = true
	}
	return nil
}
