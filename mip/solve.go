// SPDX-License-Identifier: MIT

// Package mip - branch-and-bound.
//
// Solve explores a tree of bound-restricted copies of the model. Every node
// is evaluated by its LP relaxation (relax.go):
//
//  1. Infeasible relaxation ⇒ prune.
//  2. Relaxation no better than the incumbent (within the gap) ⇒ prune.
//  3. Integral relaxation ⇒ new incumbent.
//  4. Otherwise branch on the most fractional integer variable (lowest index
//     on ties): x ≤ ⌊v⌋ and x ≥ ⌈v⌉, diving first into the nearer side.
//
// The search dives depth-first until it holds an incumbent, then always
// expands the open node with the smallest bound (newest first on ties).
//
// Limits (time, context, node count) are checked before each node, and the
// context is polled inside every relaxation. When a limit fires, the best
// bound is the minimum of the incumbent, the parent bounds of every node
// still open and the bounds of subtrees lost to numerical failures, so a
// time-limited answer still carries a valid lower bound.
//
// Complexity: exponential in the number of integer variables in the worst
// case; each node costs one dense simplex solve.

package mip

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/golang/glog"
)

// bbNode is one open subproblem.
type bbNode struct {
	lb, ub []float64
	bound  float64 // parent relaxation objective (minimization sense)
	depth  int
}

// relaxFunc evaluates one node.
type relaxFunc func(ctx context.Context, nd bbNode) lpResult

// bbEngine holds the search state of one Solve call.
type bbEngine struct {
	model  *Model
	params Params
	c      []float64 // objective in minimization sense
	sign   float64   // +1 minimize, −1 maximize
	relax  relaxFunc

	stack []bbNode
	nodes int

	// Incumbent (minimization sense).
	best    []float64
	bestObj float64

	// Subtrees dropped after a failed relaxation: optimality cannot be
	// claimed and lost bounds their parents' relaxations.
	numerics bool
	lost     float64
}

// Solve runs branch-and-bound on m under p. ctx may carry its own deadline or
// be canceled; p.TimeLimit adds a further wall-clock budget.
//
// The returned error is non-nil only for malformed input (ErrEmptyModel,
// ErrInvalidParams). Every search outcome, including infeasibility and
// limits, is reported in Result.Termination.
func Solve(ctx context.Context, m *Model, p Params) (*Result, error) {
	return solve(ctx, m, p, nil)
}

// solve is Solve with an optional wrapper around the node relaxation.
func solve(ctx context.Context, m *Model, p Params, wrap func(relaxFunc) relaxFunc) (*Result, error) {
	if m == nil || len(m.vars) == 0 {
		return nil, ErrEmptyModel
	}
	p, err := p.resolve()
	if err != nil {
		return nil, err
	}
	started := time.Now()
	if p.TimeLimit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.TimeLimit)
		defer cancel()
	}

	e := newEngine(m, p)
	if wrap != nil {
		e.relax = wrap(e.relax)
	}
	if p.EnableOutput {
		glog.Infof("mip: model %q: %d vars, %d constraints, time limit %v",
			m.name, len(m.vars), len(m.cons), p.TimeLimit)
	}
	res := e.run(ctx)
	res.Elapsed = time.Since(started)
	if p.EnableOutput {
		glog.Infof("mip: model %q: %s after %d nodes in %v, objective %g, bound %g",
			m.name, res.Termination, res.Nodes, res.Elapsed, res.ObjectiveValue, res.BestBound)
	}

	return res, nil
}

func newEngine(m *Model, p Params) *bbEngine {
	e := &bbEngine{
		model:   m,
		params:  p,
		c:       make([]float64, len(m.vars)),
		sign:    1,
		bestObj: math.Inf(1),
		lost:    math.Inf(1),
	}
	e.relax = func(ctx context.Context, nd bbNode) lpResult {
		return relax(ctx, e.model, e.c, nd.lb, nd.ub)
	}
	if m.maximize {
		e.sign = -1
	}
	for _, t := range m.obj {
		e.c[t.Var] += e.sign * t.Coef
	}

	return e
}

// run executes the search and packages the outcome.
func (e *bbEngine) run(ctx context.Context) *Result {
	e.tryHint()

	root := bbNode{
		lb:    make([]float64, len(e.model.vars)),
		ub:    make([]float64, len(e.model.vars)),
		bound: math.Inf(-1),
	}
	for j, v := range e.model.vars {
		root.lb[j], root.ub[j] = v.lb, v.ub
		if v.kind != Continuous {
			root.lb[j] = math.Ceil(v.lb - e.params.IntegralityTolerance)
			root.ub[j] = math.Floor(v.ub + e.params.IntegralityTolerance)
		}
	}
	e.stack = append(e.stack, root)

	for len(e.stack) > 0 {
		if lim := e.limitHit(ctx); lim != LimitNone {
			return e.stopped(lim)
		}
		nd := e.next()
		if e.prunable(nd.bound) {
			continue
		}

		rel := e.relax(ctx, nd)
		if rel.status == lpCanceled {
			e.stack = append(e.stack, nd)
			return e.stopped(ctxLimit(ctx))
		}
		e.nodes++
		switch rel.status {
		case lpInfeasible:
			continue
		case lpUnbounded:
			return e.finish(Termination{Reason: Unbounded, Detail: "LP relaxation is unbounded"})
		case lpFailed:
			if nd.depth == 0 {
				return e.finish(Termination{Reason: NumericalError, Detail: errDetail(rel.err)})
			}
			e.numerics = true
			e.lost = math.Min(e.lost, nd.bound)
			if e.params.EnableOutput {
				glog.Warningf("mip: node %d at depth %d dropped: %v", e.nodes, nd.depth, rel.err)
			}
			continue
		}
		if e.prunable(rel.obj) {
			continue
		}

		j := e.branchVar(rel.x)
		if j < 0 {
			e.accept(rel.x, rel.obj)
			continue
		}
		e.branch(nd, j, rel.x[j], rel.obj)

		if e.params.EnableOutput && e.nodes%e.params.LogEvery == 0 {
			glog.Infof("mip: %d nodes, %d open, incumbent %g, depth %d",
				e.nodes, len(e.stack), e.sign*e.bestObj, nd.depth)
		}
	}

	if e.best == nil {
		if e.numerics {
			return e.finish(Termination{Reason: NumericalError, Detail: "no incumbent; some relaxations failed numerically"})
		}
		return e.finish(Termination{Reason: Infeasible})
	}
	if e.numerics {
		return e.finish(Termination{Reason: Feasible, Detail: "some relaxations failed numerically"})
	}

	return e.finish(Termination{Reason: Optimal})
}

// next removes and returns the node to evaluate: the newest one while there
// is no incumbent, then the one with the smallest bound, newest first on ties.
func (e *bbEngine) next() bbNode {
	k := len(e.stack) - 1
	if e.best != nil {
		for i := k - 1; i >= 0; i-- {
			if e.stack[i].bound < e.stack[k].bound {
				k = i
			}
		}
	}
	nd := e.stack[k]
	e.stack = append(e.stack[:k], e.stack[k+1:]...)

	return nd
}

// limitHit checks node and context limits.
func (e *bbEngine) limitHit(ctx context.Context) Limit {
	if e.params.NodeLimit > 0 && e.nodes >= e.params.NodeLimit {
		return LimitNodes
	}

	return ctxLimit(ctx)
}

// ctxLimit maps the context's state to a Limit.
func ctxLimit(ctx context.Context) Limit {
	switch err := ctx.Err(); {
	case err == nil:
		return LimitNone
	case errors.Is(err, context.DeadlineExceeded):
		return LimitTime
	default:
		return LimitInterrupted
	}
}

// prunable reports whether a subproblem bounded below by bound cannot improve
// the incumbent by more than the configured gap.
func (e *bbEngine) prunable(bound float64) bool {
	if e.best == nil {
		return false
	}
	tol := math.Max(e.params.AbsoluteGap, e.params.RelativeGap*math.Abs(e.bestObj))

	return bound >= e.bestObj-tol
}

// branchVar returns the most fractional integer variable of x, or −1 if x is
// integral within tolerance.
func (e *bbEngine) branchVar(x []float64) int {
	best, bestFrac := -1, e.params.IntegralityTolerance
	for j, v := range e.model.vars {
		if v.kind == Continuous {
			continue
		}
		f := x[j] - math.Floor(x[j])
		frac := math.Min(f, 1-f)
		if frac > bestFrac {
			best, bestFrac = j, frac
		}
	}

	return best
}

// branch pushes the two children of nd on x_j = v, nearer side on top.
func (e *bbEngine) branch(nd bbNode, j int, v, bound float64) {
	down := bbNode{lb: nd.lb, ub: cloneWith(nd.ub, j, math.Floor(v)), bound: bound, depth: nd.depth + 1}
	up := bbNode{lb: cloneWith(nd.lb, j, math.Ceil(v)), ub: nd.ub, bound: bound, depth: nd.depth + 1}
	if v-math.Floor(v) >= 0.5 {
		e.stack = append(e.stack, down, up)
		return
	}
	e.stack = append(e.stack, up, down)
}

func cloneWith(src []float64, j int, val float64) []float64 {
	out := make([]float64, len(src))
	copy(out, src)
	out[j] = val

	return out
}

// accept records x as the incumbent, snapping integer variables.
func (e *bbEngine) accept(x []float64, obj float64) {
	if obj >= e.bestObj {
		return
	}
	sol := make([]float64, len(x))
	copy(sol, x)
	for j, v := range e.model.vars {
		if v.kind != Continuous {
			sol[j] = math.Round(sol[j])
		}
	}
	e.best, e.bestObj = sol, obj
	if e.params.EnableOutput {
		glog.Infof("mip: node %d: new incumbent %g", e.nodes, e.sign*obj)
	}
}

// tryHint adopts the model's hint as the first incumbent when it is complete
// and feasible.
func (e *bbEngine) tryHint() {
	h := e.model.hint
	if len(h) != len(e.model.vars) {
		return
	}
	x := make([]float64, len(e.model.vars))
	for v, val := range h {
		x[v] = val
	}
	if !e.model.feasible(x, e.params.IntegralityTolerance) {
		if e.params.EnableOutput {
			glog.Infof("mip: model %q: hint rejected as infeasible", e.model.name)
		}
		return
	}
	var obj float64
	for j := range x {
		obj += e.c[j] * x[j]
	}
	e.accept(x, obj)
}

// stopped packages a limit-interrupted search.
func (e *bbEngine) stopped(lim Limit) *Result {
	bound := math.Min(e.bestObj, e.lost)
	for _, nd := range e.stack {
		bound = math.Min(bound, nd.bound)
	}
	t := Termination{Reason: NoSolutionFound, Limit: lim}
	if e.best != nil {
		t.Reason = Feasible
	}
	t.Detail = fmt.Sprintf("%d nodes explored, %d open", e.nodes, len(e.stack))
	res := e.finish(t)
	res.BestBound = e.sign * bound

	return res
}

// finish converts the engine state into a Result in the model's own sense.
func (e *bbEngine) finish(t Termination) *Result {
	res := &Result{
		Termination:    t,
		ObjectiveValue: math.NaN(),
		BestBound:      e.sign * math.Inf(-1),
		Nodes:          e.nodes,
	}
	switch t.Reason {
	case Optimal, Feasible:
		res.ObjectiveValue = e.sign * e.bestObj
		res.BestBound = e.sign * math.Min(e.bestObj, e.lost)
		res.values = e.best
	case Infeasible:
		res.BestBound = e.sign * math.Inf(1)
	case NumericalError:
		if e.numerics {
			res.BestBound = e.sign * e.lost
		}
	}

	return res
}

func errDetail(err error) string {
	if err == nil {
		return "LP relaxation failed"
	}

	return err.Error()
}
