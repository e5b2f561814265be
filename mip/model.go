// SPDX-License-Identifier: MIT

// Package mip - model building.
//
// A Model is an append-only container of variables, linear constraints and a
// linear objective. Variables are referenced through opaque Var handles
// (indices into the model's table), so building an n²-variable model costs
// O(n²) memory with no per-variable allocations beyond the table itself.

package mip

import (
	"fmt"
	"math"
)

// VarType is the domain of a decision variable.
type VarType int

const (
	// Continuous variables take any real value within their bounds.
	Continuous VarType = iota
	// Integer variables take integral values within their bounds.
	Integer
	// Binary variables are integer variables restricted to {0, 1}.
	Binary
)

// String implements fmt.Stringer.
func (t VarType) String() string {
	switch t {
	case Continuous:
		return "continuous"
	case Integer:
		return "integer"
	case Binary:
		return "binary"
	default:
		return fmt.Sprintf("VarType(%d)", int(t))
	}
}

// Inf is the upper bound of a variable with no upper limit.
var Inf = math.Inf(1)

// Var is a handle to a variable of one Model.
type Var int

// Sense is the relation of a linear constraint.
type Sense int

const (
	// LessEq encodes expr <= rhs.
	LessEq Sense = iota
	// GreaterEq encodes expr >= rhs.
	GreaterEq
	// Equal encodes expr == rhs.
	Equal
)

// String implements fmt.Stringer.
func (s Sense) String() string {
	switch s {
	case LessEq:
		return "<="
	case GreaterEq:
		return ">="
	case Equal:
		return "=="
	default:
		return fmt.Sprintf("Sense(%d)", int(s))
	}
}

// Term is a coefficient applied to a variable.
type Term struct {
	Var  Var
	Coef float64
}

// Expr is a linear expression Σ Coef·Var. Repeated variables are summed
// when the expression is attached to a model.
type Expr []Term

// Sum returns the expression v1 + v2 + ... with unit coefficients.
func Sum(vars ...Var) Expr {
	e := make(Expr, len(vars))
	for i, v := range vars {
		e[i] = Term{Var: v, Coef: 1}
	}

	return e
}

// Plus returns e + coef·v. The receiver may be reused by append semantics,
// as with any slice.
func (e Expr) Plus(v Var, coef float64) Expr {
	return append(e, Term{Var: v, Coef: coef})
}

// variable is one row of the model's variable table.
type variable struct {
	name   string
	lb, ub float64
	kind   VarType
}

// constraint is a normalized linear row: unique vars, finite coefficients.
type constraint struct {
	name  string
	terms Expr
	sense Sense
	rhs   float64
}

// Model is a mixed-integer linear program under construction.
// A Model is not safe for concurrent mutation; Solve only reads it.
type Model struct {
	name     string
	vars     []variable
	cons     []constraint
	obj      Expr
	maximize bool
	hint     map[Var]float64
}

// NewModel returns an empty model. The name is used in log lines only.
func NewModel(name string) *Model {
	return &Model{name: name}
}

// Name returns the model name.
func (m *Model) Name() string { return m.name }

// NumVars returns the number of variables added so far.
func (m *Model) NumVars() int { return len(m.vars) }

// NumConstraints returns the number of constraints added so far.
func (m *Model) NumConstraints() int { return len(m.cons) }

// VarName returns the name given to v, or "" for a foreign handle.
func (m *Model) VarName(v Var) string {
	if !m.owns(v) {
		return ""
	}

	return m.vars[v].name
}

// AddVar appends a variable with bounds [lb, ub]. ub may be +Inf; lb must be
// finite. Binary variables must have bounds inside [0,1].
//
// Errors: ErrInvalidBounds.
// Complexity: O(1) amortized.
func (m *Model) AddVar(name string, lb, ub float64, kind VarType) (Var, error) {
	if math.IsNaN(lb) || math.IsNaN(ub) || math.IsInf(lb, 0) || math.IsInf(ub, -1) || lb > ub {
		return -1, fmt.Errorf("AddVar %q [%g, %g]: %w", name, lb, ub, ErrInvalidBounds)
	}
	if kind == Binary && (lb < 0 || ub > 1) {
		return -1, fmt.Errorf("AddVar %q binary [%g, %g]: %w", name, lb, ub, ErrInvalidBounds)
	}
	if kind == Integer && math.Ceil(lb) > math.Floor(ub) {
		return -1, fmt.Errorf("AddVar %q integer [%g, %g]: %w", name, lb, ub, ErrInvalidBounds)
	}
	m.vars = append(m.vars, variable{name: name, lb: lb, ub: ub, kind: kind})

	return Var(len(m.vars) - 1), nil
}

// AddBinary appends a {0,1} variable.
func (m *Model) AddBinary(name string) Var {
	m.vars = append(m.vars, variable{name: name, lb: 0, ub: 1, kind: Binary})

	return Var(len(m.vars) - 1)
}

// AddContinuous appends a continuous variable with bounds [lb, ub].
func (m *Model) AddContinuous(name string, lb, ub float64) (Var, error) {
	return m.AddVar(name, lb, ub, Continuous)
}

// AddConstraint appends the row "e sense rhs".
//
// Errors: ErrUnknownVariable, ErrNaN (wrapped with the constraint name).
// Complexity: O(len(e)).
func (m *Model) AddConstraint(name string, e Expr, sense Sense, rhs float64) error {
	if math.IsNaN(rhs) || math.IsInf(rhs, 0) {
		return fmt.Errorf("AddConstraint %q: rhs: %w", name, ErrNaN)
	}
	if sense < LessEq || sense > Equal {
		return fmt.Errorf("AddConstraint %q: sense %v: %w", name, sense, ErrInvalidParams)
	}
	terms, err := m.normalize(e)
	if err != nil {
		return fmt.Errorf("AddConstraint %q: %w", name, err)
	}
	m.cons = append(m.cons, constraint{name: name, terms: terms, sense: sense, rhs: rhs})

	return nil
}

// Minimize sets the objective to minimize e, replacing any previous objective.
func (m *Model) Minimize(e Expr) error {
	return m.setObjective(e, false)
}

// Maximize sets the objective to maximize e, replacing any previous objective.
func (m *Model) Maximize(e Expr) error {
	return m.setObjective(e, true)
}

// SetHint records a starting value for v. When every variable has a hint and
// the hinted point is feasible, Solve adopts it as the first incumbent.
func (m *Model) SetHint(v Var, value float64) error {
	if !m.owns(v) {
		return fmt.Errorf("SetHint %d: %w", v, ErrUnknownVariable)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("SetHint %q: %w", m.vars[v].name, ErrNaN)
	}
	if m.hint == nil {
		m.hint = make(map[Var]float64, len(m.vars))
	}
	m.hint[v] = value

	return nil
}

func (m *Model) setObjective(e Expr, maximize bool) error {
	terms, err := m.normalize(e)
	if err != nil {
		return fmt.Errorf("objective: %w", err)
	}
	m.obj = terms
	m.maximize = maximize

	return nil
}

func (m *Model) owns(v Var) bool {
	return v >= 0 && int(v) < len(m.vars)
}

// normalize merges repeated variables (first-appearance order) and drops
// zero coefficients.
func (m *Model) normalize(e Expr) (Expr, error) {
	pos := make(map[Var]int, len(e))
	out := make(Expr, 0, len(e))
	for _, t := range e {
		if !m.owns(t.Var) {
			return nil, fmt.Errorf("var %d: %w", t.Var, ErrUnknownVariable)
		}
		if math.IsNaN(t.Coef) || math.IsInf(t.Coef, 0) {
			return nil, fmt.Errorf("coef of %q: %w", m.vars[t.Var].name, ErrNaN)
		}
		if i, ok := pos[t.Var]; ok {
			out[i].Coef += t.Coef
			continue
		}
		pos[t.Var] = len(out)
		out = append(out, t)
	}
	kept := out[:0]
	for _, t := range out {
		if t.Coef != 0 {
			kept = append(kept, t)
		}
	}

	return kept, nil
}

// evaluate returns Σ coef·x over e.
func evaluate(e Expr, x []float64) float64 {
	var s float64
	for _, t := range e {
		s += t.Coef * x[t.Var]
	}

	return s
}

// feasible reports whether x satisfies every bound, integrality and row of m
// within tol.
func (m *Model) feasible(x []float64, tol float64) bool {
	if len(x) != len(m.vars) {
		return false
	}
	for j, v := range m.vars {
		if x[j] < v.lb-tol || x[j] > v.ub+tol {
			return false
		}
		if v.kind != Continuous && math.Abs(x[j]-math.Round(x[j])) > tol {
			return false
		}
	}
	for _, c := range m.cons {
		lhs := evaluate(c.terms, x)
		switch c.sense {
		case LessEq:
			if lhs > c.rhs+tol {
				return false
			}
		case GreaterEq:
			if lhs < c.rhs-tol {
				return false
			}
		case Equal:
			if math.Abs(lhs-c.rhs) > tol {
				return false
			}
		}
	}

	return true
}
