package lp

import (
	"errors"
	"fmt"
	"time"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// Status is the terminal state reported by a solver run.
type Status string

const (
	StatusOptimal    Status = "Optimal"
	StatusInfeasible Status = "Infeasible"
	StatusUnbounded  Status = "Unbounded"
	StatusNotSolved  Status = "Not Solved"
)

// Solution carries a solver outcome. Values is indexed by variable and may be
// nil when the solver produced nothing usable; callers read through Value,
// which defaults missing entries to 0 so non-optimal runs still yield
// inspectable output.
type Solution struct {
	Status    Status
	Objective float64
	Values    []float64
}

// Value returns the solved value of variable v, or 0 when unavailable.
func (s Solution) Value(v int) float64 {
	if s.Values == nil || v < 0 || v >= len(s.Values) {
		return 0
	}
	return s.Values[v]
}

// Solver is the invocation boundary: submit a fully built problem, get a
// status and variable values back. A non-Optimal status is not an error;
// Solve returns an error only when the solver itself misbehaves.
type Solver interface {
	Solve(p *Problem) (Solution, error)
}

// SimplexSolver solves the problem with gonum's dense simplex
// (optimize/convex/lp). The general form is reduced to standard form
// directly: non-negative variables map to a single column (their bound is
// implicit in standard form), only free variables are split into positive and
// negative parts, and each inequality row gains one slack variable. A
// presolve pass first pins variables that are provably zero and discards rows
// that can never bind; without it the hourly dispatch models carry
// structurally-zero rows (a zero solar hour caps generation at 0 times
// capacity) that make the simplex basis singular.
type SimplexSolver struct {
	// Tol is the simplex tolerance; 0 uses DefaultTolerance.
	Tol float64
	// Timeout bounds one solve; 0 or negative uses DefaultTimeout.
	Timeout time.Duration
}

// DefaultTolerance matches the tolerance used throughout the tests.
const DefaultTolerance = 1e-7

// DefaultTimeout caps a single solve so a wedged pivot sequence surfaces as
// Not Solved instead of stalling the caller.
const DefaultTimeout = 5 * time.Minute

// maxStandardFormCells caps the dense standard-form matrix (rows times
// columns). The backend materializes the full matrix, so horizons beyond a
// few hundred hours blow past this; full-year runs need an external Solver
// implementation behind the same interface.
const maxStandardFormCells = 1 << 25

func (s SimplexSolver) Solve(p *Problem) (Solution, error) {
	if p == nil || p.NumVars() == 0 {
		return Solution{Status: StatusNotSolved}, errors.New("empty problem")
	}
	tol := s.Tol
	if tol == 0 {
		tol = DefaultTolerance
	}

	rows, pinned, feasible := presolve(p)
	if !feasible {
		return Solution{Status: StatusInfeasible}, nil
	}

	// Column layout: one column per remaining non-negative variable, two per
	// free variable (x = x+ - x-), slacks appended after.
	n := p.NumVars()
	col := make([]int, n)
	ncols := 0
	for i := 0; i < n; i++ {
		if pinned[i] {
			col[i] = -1
			continue
		}
		col[i] = ncols
		if p.IsFree(i) {
			ncols += 2
		} else {
			ncols++
		}
	}

	if len(rows) == 0 {
		return unconstrainedSolution(p, col)
	}

	nSlack := 0
	for _, con := range rows {
		if con.Rel == LessEq {
			nSlack++
		}
	}
	total := ncols + nSlack
	if len(rows)*total > maxStandardFormCells {
		return Solution{Status: StatusNotSolved}, fmt.Errorf(
			"problem too large for the dense simplex backend (%d rows x %d columns); use an external Solver",
			len(rows), total)
	}

	c := make([]float64, total)
	for i := 0; i < n; i++ {
		j := col[i]
		if j < 0 {
			continue
		}
		coef := p.ObjectiveCoef(i)
		c[j] = coef
		if p.IsFree(i) {
			c[j+1] = -coef
		}
	}

	a := mat.NewDense(len(rows), total, nil)
	b := make([]float64, len(rows))
	slack := ncols
	for r, con := range rows {
		for _, t := range con.Terms {
			j := col[t.Var]
			a.Set(r, j, a.At(r, j)+t.Coef)
			if p.IsFree(t.Var) {
				a.Set(r, j+1, a.At(r, j+1)-t.Coef)
			}
		}
		if con.Rel == LessEq {
			a.Set(r, slack, 1)
			slack++
		}
		b[r] = con.RHS
	}

	opt, x, err := s.runSimplex(c, a, b, tol)
	if err != nil {
		switch {
		case errors.Is(err, lp.ErrInfeasible):
			return Solution{Status: StatusInfeasible}, nil
		case errors.Is(err, lp.ErrUnbounded):
			return Solution{Status: StatusUnbounded}, nil
		default:
			return Solution{Status: StatusNotSolved}, fmt.Errorf("simplex: %w", err)
		}
	}

	values := make([]float64, n)
	for i := 0; i < n; i++ {
		j := col[i]
		if j < 0 {
			continue
		}
		if p.IsFree(i) {
			values[i] = x[j] - x[j+1]
		} else {
			values[i] = x[j]
		}
	}
	return Solution{Status: StatusOptimal, Objective: opt, Values: values}, nil
}

// runSimplex runs gonum's simplex under the solve deadline. On timeout the
// worker goroutine is abandoned; its buffered channel send cannot block.
func (s SimplexSolver) runSimplex(c []float64, a *mat.Dense, b []float64, tol float64) (float64, []float64, error) {
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	type result struct {
		opt float64
		x   []float64
		err error
	}
	done := make(chan result, 1)
	go func() {
		opt, x, err := lp.Simplex(c, a, b, tol, nil)
		done <- result{opt, x, err}
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case r := <-done:
		return r.opt, r.x, r.err
	case <-timer.C:
		return 0, nil, fmt.Errorf("no result within %s", timeout)
	}
}

// presolve strips structure the simplex backend handles poorly: zero
// coefficients, non-negative variables whose positive coefficients sit in a
// "<= 0" row (pinned to zero), and inequality rows that can never bind.
// Pinning cascades, so the pass repeats until it settles. The third return is
// false when a row is proven unsatisfiable outright.
func presolve(p *Problem) ([]Constraint, []bool, bool) {
	pinned := make([]bool, p.NumVars())
	src := p.Constraints()

	var rows []Constraint
	for {
		changed := false
		rows = rows[:0]
		for _, con := range src {
			terms := make([]Term, 0, len(con.Terms))
			for _, t := range con.Terms {
				if t.Coef == 0 || pinned[t.Var] {
					continue
				}
				terms = append(terms, t)
			}
			if len(terms) == 0 {
				if con.Rel == Eq && con.RHS != 0 {
					return nil, nil, false
				}
				if con.Rel == LessEq && con.RHS < 0 {
					return nil, nil, false
				}
				continue
			}
			if con.Rel == LessEq {
				allPos, allNeg := true, true
				for _, t := range terms {
					if p.IsFree(t.Var) {
						allPos, allNeg = false, false
						break
					}
					if t.Coef > 0 {
						allNeg = false
					} else {
						allPos = false
					}
				}
				if allNeg && con.RHS >= 0 {
					// LHS can never exceed zero; the row never binds.
					continue
				}
				if allPos {
					if con.RHS < 0 {
						return nil, nil, false
					}
					if con.RHS == 0 {
						for _, t := range terms {
							pinned[t.Var] = true
						}
						changed = true
						continue
					}
				}
			}
			rows = append(rows, Constraint{Name: con.Name, Terms: terms, Rel: con.Rel, RHS: con.RHS})
		}
		if !changed {
			break
		}
	}
	return rows, pinned, true
}

// unconstrainedSolution covers the case where presolve removed every row:
// each surviving variable is bounded only by its sign, so the optimum is all
// zeros unless some objective direction is open.
func unconstrainedSolution(p *Problem, col []int) (Solution, error) {
	n := p.NumVars()
	for i := 0; i < n; i++ {
		if col[i] < 0 {
			continue
		}
		coef := p.ObjectiveCoef(i)
		if coef < 0 || (p.IsFree(i) && coef != 0) {
			return Solution{Status: StatusUnbounded}, nil
		}
	}
	return Solution{Status: StatusOptimal, Objective: 0, Values: make([]float64, n)}, nil
}
