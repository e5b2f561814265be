// SPDX-License-Identifier: MIT

package mip

import (
	"context"
	"errors"

	"gonum.org/v1/gonum/mat"
)

// IndependentRows exposes independentRows to the external test package.
var IndependentRows = independentRows

// ErrRelaxationFailed is what SolveFailingFromDepth reports for its nodes.
var ErrRelaxationFailed = errors.New("mip: relaxation failed")

// SolveFailingFromDepth runs Solve with every relaxation at depth >= depth
// failing numerically.
func SolveFailingFromDepth(ctx context.Context, m *Model, p Params, depth int) (*Result, error) {
	return solve(ctx, m, p, func(next relaxFunc) relaxFunc {
		return func(ctx context.Context, nd bbNode) lpResult {
			if nd.depth >= depth {
				return lpResult{status: lpFailed, err: ErrRelaxationFailed}
			}
			return next(ctx, nd)
		}
	})
}

// BoundedSimplex exposes boundedSimplex on row-major input. status is one
// of "optimal", "infeasible", "unbounded", "failed", "canceled".
func BoundedSimplex(ctx context.Context, rows [][]float64, b, c, u []float64) (y []float64, status string, err error) {
	A := mat.NewDense(len(rows), len(rows[0]), nil)
	for i, r := range rows {
		A.SetRow(i, r)
	}
	y, st, err := boundedSimplex(ctx, A, b, c, u)

	return y, [...]string{"optimal", "infeasible", "unbounded", "failed", "canceled"}[st], err
}

// SolveStallingAfter runs Solve with every relaxation after the first k
// blocking until ctx ends.
func SolveStallingAfter(ctx context.Context, m *Model, p Params, k int) (*Result, error) {
	calls := 0
	return solve(ctx, m, p, func(next relaxFunc) relaxFunc {
		return func(ctx context.Context, nd bbNode) lpResult {
			if calls++; calls > k {
				<-ctx.Done()
				return lpResult{status: lpCanceled, err: ctx.Err()}
			}
			return next(ctx, nd)
		}
	})
}
