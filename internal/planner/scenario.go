package planner

import (
	"fmt"

	"github.com/dmw24/IndiaElecGen/internal/lp"
	"github.com/dmw24/IndiaElecGen/internal/model"
)

// RunScenario builds, solves, and extracts one scenario end to end. A
// non-Optimal solver status is not an error: the result still carries a full
// (zero-filled where unsolved) dispatch table so it can be written out and
// inspected. The returned error covers input and solver malfunctions only.
func RunScenario(
	profile model.Profile,
	params *model.SystemParams,
	assumptions model.AssumptionSet,
	solver lp.Solver,
	voll float64,
	minNonFossilShare float64,
	scenarioName string,
) (*Result, error) {
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("profile: %w", err)
	}
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("params: %w", err)
	}

	m := Build(profile, params, voll, minNonFossilShare, scenarioName)
	sol, err := solver.Solve(m.Problem)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenarioName, err)
	}
	return Extract(m, sol, assumptions), nil
}
