// SPDX-License-Identifier: MIT

package mip

import (
	"fmt"
	"math"
	"time"
)

// TerminationReason is the outcome category of a solve.
type TerminationReason int

const (
	// Unspecified is the zero value; Solve never returns it.
	Unspecified TerminationReason = iota
	// Optimal: the incumbent is proven optimal within the configured gap.
	Optimal
	// Feasible: a limit stopped the search with an incumbent whose
	// optimality is not proven.
	Feasible
	// Infeasible: the search proved no integer-feasible point exists.
	Infeasible
	// Unbounded: the LP relaxation is unbounded in the objective direction.
	Unbounded
	// NoSolutionFound: a limit stopped the search before any incumbent.
	NoSolutionFound
	// NumericalError: the root LP relaxation could not be solved, or failed
	// relaxations left the search without an incumbent.
	NumericalError
)

// String implements fmt.Stringer.
func (r TerminationReason) String() string {
	switch r {
	case Unspecified:
		return "UNSPECIFIED"
	case Optimal:
		return "OPTIMAL"
	case Feasible:
		return "FEASIBLE"
	case Infeasible:
		return "INFEASIBLE"
	case Unbounded:
		return "UNBOUNDED"
	case NoSolutionFound:
		return "NO_SOLUTION_FOUND"
	case NumericalError:
		return "NUMERICAL_ERROR"
	default:
		return fmt.Sprintf("TerminationReason(%d)", int(r))
	}
}

// Limit names the limit that stopped a search early.
type Limit int

const (
	// LimitNone: the search ran to completion.
	LimitNone Limit = iota
	// LimitTime: Params.TimeLimit or the context deadline expired.
	LimitTime
	// LimitNodes: Params.NodeLimit was reached.
	LimitNodes
	// LimitInterrupted: the context was canceled.
	LimitInterrupted
)

// String implements fmt.Stringer.
func (l Limit) String() string {
	switch l {
	case LimitNone:
		return "NONE"
	case LimitTime:
		return "TIME"
	case LimitNodes:
		return "NODES"
	case LimitInterrupted:
		return "INTERRUPTED"
	default:
		return fmt.Sprintf("Limit(%d)", int(l))
	}
}

// Termination describes why a solve stopped.
type Termination struct {
	Reason TerminationReason
	Limit  Limit
	Detail string
}

// String renders "REASON (limit=L): detail", omitting empty parts.
func (t Termination) String() string {
	s := t.Reason.String()
	if t.Limit != LimitNone {
		s += " (limit=" + t.Limit.String() + ")"
	}
	if t.Detail != "" {
		s += ": " + t.Detail
	}

	return s
}

// Result is the outcome of Solve.
type Result struct {
	Termination Termination

	// ObjectiveValue of the incumbent, in the model's own sense.
	// NaN when HasSolution is false.
	ObjectiveValue float64

	// BestBound is the best proven bound on the optimum: a lower bound when
	// minimizing, an upper bound when maximizing. Equal to ObjectiveValue
	// (within the gap) when Optimal.
	BestBound float64

	// Nodes is the number of LP relaxations solved.
	Nodes int

	// Elapsed is the wall-clock duration of the solve.
	Elapsed time.Duration

	values []float64
}

// HasSolution reports whether an incumbent is available (Optimal or Feasible).
func (r *Result) HasSolution() bool {
	return r.Termination.Reason == Optimal || r.Termination.Reason == Feasible
}

// Value returns the incumbent's value of v, or 0 when there is no incumbent
// or v is out of range.
func (r *Result) Value(v Var) float64 {
	if v < 0 || int(v) >= len(r.values) {
		return 0
	}

	return r.values[v]
}

// Values returns a copy of the incumbent, indexed by Var.
func (r *Result) Values() []float64 {
	out := make([]float64, len(r.values))
	copy(out, r.values)

	return out
}

// Gap returns |ObjectiveValue − BestBound| / max(1, |ObjectiveValue|), or +Inf
// when there is no incumbent.
func (r *Result) Gap() float64 {
	if !r.HasSolution() {
		return math.Inf(1)
	}

	return math.Abs(r.ObjectiveValue-r.BestBound) / math.Max(1, math.Abs(r.ObjectiveValue))
}
