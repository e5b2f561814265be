// SPDX-License-Identifier: MIT

// Package mip - bounded-variable primal simplex.
//
// boundedSimplex solves
//
//	minimize cᵀy  s.t.  A·y = b,  0 ≤ y ≤ u
//
// on a dense tableau held in a gonum mat.Dense. A nonbasic variable sits at
// 0 or at its upper bound, so finite bounds are enforced by the ratio test
// and cost no rows. Phase 1 starts from unit (slack) columns where a row has
// one and from an artificial column elsewhere; a redundant equality row keeps
// its artificial basic at zero, so the system needs no rank reduction.
//
// Pricing is Dantzig's rule, switching to Bland's rule after blandAfter
// consecutive degenerate pivots until the objective moves again.
//
// Complexity: O(m·(n+m)) per pivot. ctx is polled every ctxPollEvery pivots.

package mip

import (
	"context"
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const (
	// pivotTol is the smallest |tableau entry| accepted as a pivot.
	pivotTol = 1e-9

	// costTol is the reduced-cost threshold for an improving column.
	costTol = 1e-9

	// phase1Tol scales with ‖b‖∞: a larger leftover artificial sum means
	// the rows are infeasible under the bounds.
	phase1Tol = 1e-7

	// residualTol scales with ‖b‖∞: a larger final row residual means the
	// tableau drifted and the answer is discarded.
	residualTol = 1e-6

	ctxPollEvery = 32
	blandAfter   = 50
)

var (
	errIterationLimit = errors.New("mip: simplex iteration limit reached")
	errResidual       = errors.New("mip: simplex solution violates its rows")
	errPhase1         = errors.New("mip: phase 1 objective unbounded")
)

// tableau is the state of one boundedSimplex call. Columns [0, n) are
// structural, column n+i is the artificial of row i.
type tableau struct {
	m, n, cols int
	t          *mat.Dense // B⁻¹·[A | I], m × cols
	beta       []float64  // values of the basic variables, by row
	basis      []int      // row -> basic column
	where      []int      // column -> row, −1 when nonbasic
	upper      []float64
	atUpper    []bool
	banned     []bool    // never enters again
	d          []float64 // reduced costs

	bland bool
	degen int
	iters int
}

// boundedSimplex returns an optimal y (len n) with status lpOptimal, or the
// status that stopped it: lpInfeasible, lpUnbounded, lpCanceled when ctx
// ended, lpFailed with errIterationLimit or errResidual.
//
// A must have at least one row; b may hold negative entries.
func boundedSimplex(ctx context.Context, A *mat.Dense, b, c, u []float64) ([]float64, lpStatus, error) {
	tb := newTableau(A, b, u)
	limit := 50*tb.cols + 1000
	cost := make([]float64, tb.cols)

	var phase1 bool
	for _, j := range tb.basis {
		if j >= tb.n {
			cost[j] = 1
			phase1 = true
		}
	}
	bScale := math.Max(1, floats.Norm(b, math.Inf(1)))
	if phase1 {
		tb.price(cost)
		st, err := tb.iterate(ctx, limit)
		switch st {
		case lpOptimal:
		case lpUnbounded:
			return nil, lpFailed, errPhase1
		default:
			return nil, st, err
		}
		var left float64
		for i, j := range tb.basis {
			if j >= tb.n {
				left += tb.beta[i]
			}
		}
		if left > phase1Tol*bScale {
			return nil, lpInfeasible, nil
		}
	}

	// Phase 2: artificials are pinned at zero and never re-enter.
	for j := tb.n; j < tb.cols; j++ {
		tb.upper[j], tb.banned[j], cost[j] = 0, true, 0
		if r := tb.where[j]; r >= 0 {
			tb.beta[r] = 0
		}
	}
	copy(cost, c)
	tb.price(cost)
	if st, err := tb.iterate(ctx, limit); st != lpOptimal {
		return nil, st, err
	}

	y := tb.primal()
	for i := 0; i < tb.m; i++ {
		if r := floats.Dot(A.RawRowView(i), y) - b[i]; math.Abs(r) > residualTol*bScale {
			return nil, lpFailed, errResidual
		}
	}

	return y, lpOptimal, nil
}

// newTableau copies A into a tableau with every row sign-normalized to
// b ≥ 0 and picks the starting basis. All nonbasic variables start at 0.
func newTableau(A *mat.Dense, b, u []float64) *tableau {
	m, n := A.Dims()
	tb := &tableau{
		m:       m,
		n:       n,
		cols:    n + m,
		t:       mat.NewDense(m, n+m, nil),
		beta:    make([]float64, m),
		basis:   make([]int, m),
		where:   make([]int, n+m),
		upper:   make([]float64, n+m),
		atUpper: make([]bool, n+m),
		banned:  make([]bool, n+m),
		d:       make([]float64, n+m),
	}
	copy(tb.upper, u)

	nnz := make([]int, n)
	last := make([]int, n)
	for i := 0; i < m; i++ {
		src, dst := A.RawRowView(i), tb.t.RawRowView(i)
		sgn := 1.0
		if b[i] < 0 {
			sgn = -1
		}
		for j, a := range src {
			if a == 0 {
				continue
			}
			dst[j] = sgn * a
			nnz[j]++
			last[j] = i
		}
		tb.beta[i] = sgn * b[i]
		tb.basis[i] = -1
	}
	for j := range tb.where {
		tb.where[j] = -1
	}
	for j := 0; j < n; j++ {
		r := last[j]
		if nnz[j] != 1 || tb.basis[r] >= 0 || tb.t.At(r, j) != 1 || u[j] < tb.beta[r] {
			continue
		}
		tb.basis[r], tb.where[j] = j, r
	}
	for i := 0; i < m; i++ {
		a := n + i
		if tb.basis[i] >= 0 {
			tb.banned[a] = true
			continue
		}
		tb.t.Set(i, a, 1)
		tb.basis[i], tb.where[a] = a, i
		tb.upper[a] = math.Inf(1)
	}

	return tb
}

// price sets d = cost − c_Bᵀ·T.
func (tb *tableau) price(cost []float64) {
	copy(tb.d, cost)
	for i, j := range tb.basis {
		if cb := cost[j]; cb != 0 {
			floats.AddScaled(tb.d, -cb, tb.t.RawRowView(i))
		}
	}
}

// iterate pivots until no column improves the current objective.
func (tb *tableau) iterate(ctx context.Context, limit int) (lpStatus, error) {
	for {
		if tb.iters%ctxPollEvery == 0 {
			if err := ctx.Err(); err != nil {
				return lpCanceled, err
			}
		}
		if tb.iters >= limit {
			return lpFailed, errIterationLimit
		}
		tb.iters++

		q, dir := tb.entering()
		if q < 0 {
			return lpOptimal, nil
		}
		r, step, toUpper := tb.leaving(q, dir)
		if math.IsInf(step, 1) {
			return lpUnbounded, nil
		}
		tb.move(q, dir, r, step, toUpper)
	}
}

// entering picks an improving nonbasic column and its direction (+1 up from
// 0, −1 down from the upper bound), or −1 when the basis is optimal.
func (tb *tableau) entering() (int, float64) {
	q, dir, best := -1, 0.0, costTol
	for j := 0; j < tb.cols; j++ {
		if tb.where[j] >= 0 || tb.banned[j] || tb.upper[j] <= 0 {
			continue
		}
		var s float64
		switch dj := tb.d[j]; {
		case !tb.atUpper[j] && dj < -costTol:
			s = 1
		case tb.atUpper[j] && dj > costTol:
			s = -1
		default:
			continue
		}
		if tb.bland {
			return j, s
		}
		if a := math.Abs(tb.d[j]); a > best {
			q, dir, best = j, s, a
		}
	}

	return q, dir
}

// leaving runs the bounded ratio test for column q moving in direction dir.
// row is −1 when q reaches its own opposite bound first; step is +Inf when
// nothing blocks. toUpper tells whether the leaving variable exits at its
// upper bound.
func (tb *tableau) leaving(q int, dir float64) (row int, step float64, toUpper bool) {
	row, step = -1, tb.upper[q]
	var bestAlpha float64
	for i := 0; i < tb.m; i++ {
		alpha := dir * tb.t.At(i, q)
		var (
			lim float64
			up  bool
		)
		switch {
		case alpha > pivotTol:
			lim = tb.beta[i] / alpha
		case alpha < -pivotTol:
			ub := tb.upper[tb.basis[i]]
			if math.IsInf(ub, 1) {
				continue
			}
			lim, up = (ub-tb.beta[i])/-alpha, true
		default:
			continue
		}
		lim = math.Max(lim, 0)
		a := math.Abs(alpha)
		switch {
		case lim < step-pivotTol:
		case lim <= step+pivotTol && row >= 0 &&
			((tb.bland && tb.basis[i] < tb.basis[row]) || (!tb.bland && a > bestAlpha)):
		default:
			continue
		}
		row, step, toUpper, bestAlpha = i, lim, up, a
	}

	return row, step, toUpper
}

// move advances column q by step and, when row ≥ 0, pivots it into the basis.
func (tb *tableau) move(q int, dir float64, row int, step float64, toUpper bool) {
	if step > 0 {
		for i := 0; i < tb.m; i++ {
			tb.beta[i] -= dir * tb.t.At(i, q) * step
		}
	}
	if step <= pivotTol {
		tb.degen++
	} else {
		tb.degen = 0
	}
	tb.bland = tb.degen >= blandAfter

	if row < 0 {
		tb.atUpper[q] = !tb.atUpper[q]
		tb.clamp()
		return
	}

	val := dir * step
	if tb.atUpper[q] {
		val += tb.upper[q]
	}
	out := tb.basis[row]
	tb.pivot(row, q)
	tb.beta[row] = val
	tb.basis[row], tb.where[q], tb.atUpper[q] = q, row, false
	tb.where[out], tb.atUpper[out] = -1, toUpper
	if out >= tb.n {
		tb.banned[out] = true
	}
	tb.clamp()
}

// pivot makes column q the unit vector of row r in T and zeroes d[q].
func (tb *tableau) pivot(r, q int) {
	prow := tb.t.RawRowView(r)
	floats.Scale(1/prow[q], prow)
	for i := 0; i < tb.m; i++ {
		if i == r {
			continue
		}
		row := tb.t.RawRowView(i)
		if f := row[q]; f != 0 {
			floats.AddScaled(row, -f, prow)
			row[q] = 0
		}
	}
	if f := tb.d[q]; f != 0 {
		floats.AddScaled(tb.d, -f, prow)
		tb.d[q] = 0
	}
}

// clamp pulls basic values that drifted past a bound back onto it.
func (tb *tableau) clamp() {
	for i, j := range tb.basis {
		tb.beta[i] = math.Min(math.Max(tb.beta[i], 0), tb.upper[j])
	}
}

// primal returns the structural part of the current vertex.
func (tb *tableau) primal() []float64 {
	y := make([]float64, tb.n)
	for j := range y {
		switch r := tb.where[j]; {
		case r >= 0:
			y[j] = tb.beta[r]
		case tb.atUpper[j]:
			y[j] = tb.upper[j]
		}
	}

	return y
}
