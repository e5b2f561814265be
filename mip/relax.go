// SPDX-License-Identifier: MIT

// Package mip - LP relaxation of a branch-and-bound node.
//
// reduce rewrites the model under node-local bounds:
//
//  1. Variables with lb == ub are substituted by their value.
//  2. Every other variable is shifted, y = x − lb ∈ [0, ub − lb].
//  3. Rows left without free columns are checked and dropped.
//
// The reduced LP goes to boundedSimplex (simplex.go), which keeps the bounds
// out of the rows. If that fails numerically, the same LP is rewritten into
// gonum's standard form
//
//	minimize cᵀy  s.t.  A·y = b,  y ≥ 0
//
// which needs full row rank and explicit bound rows, and handed to
// lp.Simplex as a fallback.

package mip

import (
	"context"
	"errors"
	"math"

	"github.com/golang/glog"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// lpStatus classifies a relaxation outcome.
type lpStatus int

const (
	lpOptimal lpStatus = iota
	lpInfeasible
	lpUnbounded
	lpFailed
	lpCanceled
)

// lpResult is the solution of one relaxation in model space (x, not y).
type lpResult struct {
	status lpStatus
	obj    float64   // minimization-sense objective
	x      []float64 // len == NumVars when status == lpOptimal
	err    error     // cause when status is lpFailed or lpCanceled
}

// sparseRow is a row over shifted free columns.
type sparseRow struct {
	idx   []int
	val   []float64
	sense Sense
	rhs   float64
}

// reducedLP is a node relaxation over its free columns.
type reducedLP struct {
	col   []int     // model var -> free column, −1 when fixed
	shift []float64 // lb, or the fixed value
	span  []float64 // ub − lb per free column, may be +Inf
	cost  []float64 // objective per free column
	eq    []sparseRow
	ineq  []sparseRow
}

// relax solves the LP relaxation of m with objective c (minimization sense)
// under bounds lb/ub. It returns lpCanceled as soon as ctx ends.
func relax(ctx context.Context, m *Model, c, lb, ub []float64) lpResult {
	p, st := reduce(m, c, lb, ub)
	if st != lpOptimal {
		return lpResult{status: st}
	}
	y, st, err := p.solveBounded(ctx)
	if st == lpFailed {
		glog.V(2).Infof("mip: model %q: bounded simplex: %v; retrying with lp.Simplex", m.name, err)
		y, st, err = p.solveStandard(ctx)
	}
	if st != lpOptimal {
		return lpResult{status: st, err: err}
	}

	x := make([]float64, len(p.col))
	var obj float64
	for j := range x {
		x[j] = p.shift[j]
		if k := p.col[j]; k >= 0 {
			x[j] += y[k]
		}
		obj += c[j] * x[j]
	}

	return lpResult{status: lpOptimal, obj: obj, x: x}
}

// reduce fixes, shifts and checks; the status is lpOptimal unless a fixed
// row or a crossed bound already proves the node infeasible.
//
// Complexity: O(vars + nonzeros).
func reduce(m *Model, c, lb, ub []float64) (*reducedLP, lpStatus) {
	nv := len(m.vars)
	p := &reducedLP{col: make([]int, nv), shift: make([]float64, nv)}
	for j := 0; j < nv; j++ {
		if lb[j] > ub[j]+feasTol {
			return nil, lpInfeasible
		}
		p.shift[j] = lb[j]
		if ub[j]-lb[j] <= feasTol {
			p.col[j] = -1
			continue
		}
		p.col[j] = len(p.span)
		p.span = append(p.span, ub[j]-lb[j])
		p.cost = append(p.cost, c[j])
	}

	for _, cn := range m.cons {
		r := sparseRow{sense: cn.sense, rhs: cn.rhs}
		for _, t := range cn.terms {
			r.rhs -= t.Coef * p.shift[t.Var]
			if k := p.col[t.Var]; k >= 0 {
				r.idx = append(r.idx, k)
				r.val = append(r.val, t.Coef)
			}
		}
		if len(r.idx) == 0 {
			if !constantRowHolds(r) {
				return nil, lpInfeasible
			}
			continue
		}
		if r.sense == Equal {
			p.eq = append(p.eq, r)
		} else {
			p.ineq = append(p.ineq, r)
		}
	}

	return p, lpOptimal
}

// solveBounded runs boundedSimplex with one slack column per inequality.
func (p *reducedLP) solveBounded(ctx context.Context) ([]float64, lpStatus, error) {
	nFree := len(p.span)
	rows := len(p.eq) + len(p.ineq)
	if rows == 0 {
		return p.boundsOnly()
	}
	cols := nFree + len(p.ineq)
	A := mat.NewDense(rows, cols, nil)
	b := make([]float64, rows)
	u := make([]float64, cols)
	copy(u, p.span)
	for k := nFree; k < cols; k++ {
		u[k] = math.Inf(1)
	}
	pos := make([]int, nFree)
	for k := range pos {
		pos[k] = k
	}
	loadRows(A, b, p.eq, p.ineq, pos, nFree)

	y, st, err := boundedSimplex(ctx, A, b, p.cost, u)
	if st != lpOptimal {
		return nil, st, err
	}

	return y[:nFree], lpOptimal, nil
}

// boundsOnly solves a relaxation without rows: each column goes to its
// cheaper bound.
func (p *reducedLP) boundsOnly() ([]float64, lpStatus, error) {
	y := make([]float64, len(p.span))
	for k, ck := range p.cost {
		if ck >= -feasTol {
			continue
		}
		if math.IsInf(p.span[k], 1) {
			return nil, lpUnbounded, nil
		}
		y[k] = p.span[k]
	}

	return y, lpOptimal, nil
}

// solveStandard runs lp.Simplex, which cannot be interrupted, on its own
// goroutine and gives up waiting when ctx ends.
func (p *reducedLP) solveStandard(ctx context.Context) ([]float64, lpStatus, error) {
	type outcome struct {
		y   []float64
		st  lpStatus
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		y, st, err := p.standardForm()
		done <- outcome{y: y, st: st, err: err}
	}()
	select {
	case <-ctx.Done():
		return nil, lpCanceled, ctx.Err()
	case o := <-done:
		return o.y, o.st, o.err
	}
}

// standardForm reduces == rows to an independent subset, turns finite spans
// into rows unless an all-positive == row implies them, drops unused
// columns and calls lp.Simplex.
//
// Complexity: dominated by gonum's dense simplex, which refactorizes the
// basis on every iteration.
func (p *reducedLP) standardForm() ([]float64, lpStatus, error) {
	nFree := len(p.span)
	eqRows := p.eq
	if len(eqRows) > 0 {
		aug := make([][]float64, len(eqRows))
		for i, r := range eqRows {
			aug[i] = make([]float64, nFree+1)
			for k, j := range r.idx {
				aug[i][j] = r.val[k]
			}
			aug[i][nFree] = r.rhs
		}
		keep, ok := independentRows(aug, feasTol)
		if !ok {
			return nil, lpInfeasible, nil
		}
		eqRows = make([]sparseRow, len(keep))
		for i, k := range keep {
			eqRows[i] = p.eq[k]
		}
	}

	ineqRows := append([]sparseRow(nil), p.ineq...)
	implied := make([]bool, nFree)
	for _, r := range eqRows {
		if r.rhs < 0 || !allPositive(r.val) {
			continue
		}
		for t, k := range r.idx {
			if r.rhs/r.val[t] <= p.span[k]+feasTol {
				implied[k] = true
			}
		}
	}
	for k := 0; k < nFree; k++ {
		if math.IsInf(p.span[k], 1) || implied[k] {
			continue
		}
		ineqRows = append(ineqRows, sparseRow{idx: []int{k}, val: []float64{1}, sense: LessEq, rhs: p.span[k]})
	}

	used := make([]bool, nFree)
	for _, rs := range [][]sparseRow{eqRows, ineqRows} {
		for _, r := range rs {
			for _, k := range r.idx {
				used[k] = true
			}
		}
	}
	y := make([]float64, nFree)
	pos := make([]int, nFree)
	nCols := 0
	for k := 0; k < nFree; k++ {
		if used[k] {
			pos[k] = nCols
			nCols++
			continue
		}
		pos[k] = -1
		if p.cost[k] < -feasTol {
			// Unused and unbounded above.
			return nil, lpUnbounded, nil
		}
	}

	rows := len(eqRows) + len(ineqRows)
	if rows == 0 {
		return y, lpOptimal, nil
	}
	cols := nCols + len(ineqRows)
	A := mat.NewDense(rows, cols, nil)
	b := make([]float64, rows)
	cc := make([]float64, cols)
	for k := 0; k < nFree; k++ {
		if pos[k] >= 0 {
			cc[pos[k]] = p.cost[k]
		}
	}
	loadRows(A, b, eqRows, ineqRows, pos, nCols)

	_, opt, err := lp.Simplex(cc, A, b, simplexTol, nil)
	switch {
	case errors.Is(err, lp.ErrInfeasible):
		return nil, lpInfeasible, nil
	case errors.Is(err, lp.ErrUnbounded):
		return nil, lpUnbounded, nil
	case err != nil:
		return nil, lpFailed, err
	}
	for k := 0; k < nFree; k++ {
		if pos[k] >= 0 {
			y[k] = math.Max(0, opt[pos[k]])
		}
	}

	return y, lpOptimal, nil
}

// loadRows writes eq rows, then ineq rows with a slack (<=) or surplus (>=)
// column starting at slack0, into A and b. pos maps free columns to A's
// columns.
func loadRows(A *mat.Dense, b []float64, eq, ineq []sparseRow, pos []int, slack0 int) {
	for i, r := range eq {
		for t, k := range r.idx {
			A.Set(i, pos[k], r.val[t])
		}
		b[i] = r.rhs
	}
	for i, r := range ineq {
		row := len(eq) + i
		for t, k := range r.idx {
			A.Set(row, pos[k], r.val[t])
		}
		if r.sense == LessEq {
			A.Set(row, slack0+i, 1)
		} else {
			A.Set(row, slack0+i, -1)
		}
		b[row] = r.rhs
	}
}

// constantRowHolds checks a row with no free columns: 0 sense rhs.
func constantRowHolds(r sparseRow) bool {
	switch r.sense {
	case LessEq:
		return r.rhs >= -feasTol
	case GreaterEq:
		return r.rhs <= feasTol
	default:
		return math.Abs(r.rhs) <= feasTol
	}
}

func allPositive(v []float64) bool {
	for _, a := range v {
		if a <= 0 {
			return false
		}
	}

	return true
}
