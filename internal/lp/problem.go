// Package lp holds an explicit sparse linear-program representation and the
// solver boundary. Constraints are lists of (variable index, coefficient)
// terms with a relation and right-hand side; there is no modeling DSL.
package lp

import "fmt"

// Rel is a constraint relation. Greater-or-equal rows are expressed by
// negating both sides into a LessEq row at build time.
type Rel int

const (
	Eq Rel = iota
	LessEq
)

func (r Rel) String() string {
	switch r {
	case Eq:
		return "=="
	case LessEq:
		return "<="
	default:
		return fmt.Sprintf("rel(%d)", int(r))
	}
}

// Term is one coefficient of a linear expression.
type Term struct {
	Var  int
	Coef float64
}

// Constraint is one linear row: sum(Terms) Rel RHS.
type Constraint struct {
	Name  string
	Terms []Term
	Rel   Rel
	RHS   float64
}

// Problem is a minimization LP over continuous variables. Variables are
// non-negative unless added with AddFreeVar.
type Problem struct {
	Name string

	names []string
	free  []bool
	obj   []float64
	cons  []Constraint
}

func NewProblem(name string) *Problem {
	return &Problem{Name: name}
}

// AddVar registers a non-negative continuous variable and returns its index.
func (p *Problem) AddVar(name string) int {
	p.names = append(p.names, name)
	p.free = append(p.free, false)
	p.obj = append(p.obj, 0)
	return len(p.names) - 1
}

// AddFreeVar registers a sign-unconstrained continuous variable.
func (p *Problem) AddFreeVar(name string) int {
	v := p.AddVar(name)
	p.free[v] = true
	return v
}

// SetObjectiveCoef sets the minimization objective coefficient of v.
func (p *Problem) SetObjectiveCoef(v int, coef float64) {
	p.obj[v] = coef
}

// AddObjectiveCoef accumulates onto the objective coefficient of v.
func (p *Problem) AddObjectiveCoef(v int, coef float64) {
	p.obj[v] += coef
}

// AddConstraint appends a row. Term slices are retained, not copied.
func (p *Problem) AddConstraint(name string, rel Rel, rhs float64, terms ...Term) {
	p.cons = append(p.cons, Constraint{Name: name, Terms: terms, Rel: rel, RHS: rhs})
}

func (p *Problem) NumVars() int        { return len(p.names) }
func (p *Problem) NumConstraints() int { return len(p.cons) }

// VarName returns the registered name of variable v.
func (p *Problem) VarName(v int) string { return p.names[v] }

// IsFree reports whether variable v is sign-unconstrained.
func (p *Problem) IsFree(v int) bool { return p.free[v] }

// ObjectiveCoef returns the objective coefficient of v.
func (p *Problem) ObjectiveCoef(v int) float64 { return p.obj[v] }

// Constraints exposes the rows for solvers and tests.
func (p *Problem) Constraints() []Constraint { return p.cons }

// ObjectiveValue evaluates the objective at the given point.
func (p *Problem) ObjectiveValue(x []float64) float64 {
	total := 0.0
	for i, c := range p.obj {
		if c != 0 && i < len(x) {
			total += c * x[i]
		}
	}
	return total
}
