// Package tsp - exact solver.
//
// SolveExact formulates the instance as a mixed-integer program with the
// Gavish-Graves single-commodity flow subtour elimination and hands it to the
// mip branch-and-bound solver.
//
// Model over N cities (self-loops are not modelled):
//
//	x[i,j] ∈ {0,1}        edge i→j is used,             i != j
//	f[i,j] ∈ [0, N]       flow carried on edge i→j,      i != j
//
//	Σ_j x[i,j] = 1                      for every i    (one outgoing edge)
//	Σ_i x[i,j] = 1                      for every j    (one incoming edge)
//	Σ_j f[i,j] − Σ_j f[j,i] = 1         for i = 1..N−1 (each city emits one unit)
//	f[i,j] ≤ (N−1)·x[i,j]               for i != j     (flow only on used edges)
//
//	minimize Σ d[i,j]·x[i,j]
//
// A subtour that avoids city 0 cannot satisfy the flow rows: its cities emit
// a net |S| units with nowhere to send them. Variable count is 2N(N−1),
// constraint count 2N + (N−1) + N(N−1).
//
// Pipeline:
//  1. VALIDATE  - prefetch the matrix (N >= 2, finite, non-negative).
//  2. BUILD     - construct the model (optionally hinted with a greedy tour).
//  3. SOLVE     - mip.Solve under the time limit and the caller's context.
//  4. EXTRACT   - follow x > 0.5 from city 0.
package tsp

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/golang/glog"

	"github.com/katalvlaran/tspkit/matrix"
	"github.com/katalvlaran/tspkit/mip"
)

// noVar marks the absent diagonal entries of the variable grids.
const noVar mip.Var = -1

// tspModel is the Gavish-Graves model plus the handles needed to read it back.
type tspModel struct {
	model *mip.Model
	n     int
	x     [][]mip.Var // x[i][j] edge indicators, noVar on the diagonal
	f     [][]mip.Var // f[i][j] flow variables, noVar on the diagonal
}

// SolveExact computes a minimum-cost tour with the mixed-integer solver.
//
// The returned Cost is the solver's best objective bound, floored at 0. When
// the solve is proven optimal it equals the tour's length (also reported as
// TourCost); when the time limit stops the search after an incumbent was
// found, Termination is FEASIBLE and Cost may lie below TourCost. The tour always starts and
// ends at city 0; Options.StartVertex is ignored.
//
// Errors:
//   - ErrInvalidInput: malformed matrix or N < 2;
//   - *SolveError (ErrSolve): no incumbent (time limit, infeasible, numerics);
//   - *ExtractionError (ErrExtraction): the solution is not a single tour.
//
// Complexity: exponential worst case; each node solves an LP with O(N²) rows
// and columns.
func SolveExact(ctx context.Context, dist matrix.Matrix, opts ...Option) (ExactResult, error) {
	o := gatherOptions(opts...)
	if o.TimeLimit < 0 {
		return ExactResult{}, fmt.Errorf("SolveExact: time limit %v: %w", o.TimeLimit, ErrInvalidInput)
	}

	// 1. VALIDATE
	w, n, err := prefetch("SolveExact", dist, 2)
	if err != nil {
		return ExactResult{}, err
	}

	// 2. BUILD
	tm, err := buildModel(w, n)
	if err != nil {
		return ExactResult{}, fmt.Errorf("SolveExact: build model: %w", err)
	}
	if o.WarmStart {
		hint, _ := nearestNeighbor(w, n, 0)
		if err = tm.setTourHint(hint); err != nil {
			return ExactResult{}, fmt.Errorf("SolveExact: warm start: %w", err)
		}
	}

	// 3. SOLVE
	started := time.Now()
	res, err := mip.Solve(ctx, tm.model, mip.Params{
		TimeLimit:    o.TimeLimit,
		EnableOutput: o.SolverOutput,
	})
	elapsed := time.Since(started)
	if err != nil {
		return ExactResult{}, fmt.Errorf("SolveExact: %w", err)
	}
	glog.V(1).Infof("tsp: exact solve over %d cities took %v: %s, %d nodes",
		n, elapsed, res.Termination, res.Nodes)
	if !res.HasSolution() {
		return ExactResult{}, &SolveError{Termination: res.Termination}
	}

	// 4. EXTRACT
	tour, err := extractTour(n, tm.edgeValue(res))
	if err != nil {
		return ExactResult{}, err
	}
	glog.V(1).Infof("tsp: exact tour: bound=%.6f objective=%.6f tour=%v",
		res.BestBound, res.ObjectiveValue, tour)

	// Distances are non-negative, so 0 bounds any tour when the search
	// stopped before the root relaxation was solved.
	bound := math.Max(res.BestBound, 0)

	return ExactResult{
		TSResult:    TSResult{Tour: tour, Cost: bound},
		TourCost:    tourCostRowMajor(w, n, tour),
		Termination: res.Termination,
		Nodes:       res.Nodes,
		Elapsed:     elapsed,
	}, nil
}

// buildModel constructs the Gavish-Graves model for a validated matrix.
//
// Complexity: O(N²) variables and constraints, O(N²) terms overall.
func buildModel(w []float64, n int) (*tspModel, error) {
	var (
		m    = mip.NewModel(fmt.Sprintf("tsp-gg-%d", n))
		tm   = &tspModel{model: m, n: n, x: newVarGrid(n), f: newVarGrid(n)}
		i, j int
		err  error
		load = float64(n - 1)
	)

	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if i == j {
				continue
			}
			tm.x[i][j] = m.AddBinary(fmt.Sprintf("x[%d,%d]", i, j))
			if tm.f[i][j], err = m.AddContinuous(fmt.Sprintf("f[%d,%d]", i, j), 0, float64(n)); err != nil {
				return nil, err
			}
		}
	}

	// Degree rows.
	var out, in mip.Expr
	for i = 0; i < n; i++ {
		out, in = make(mip.Expr, 0, n-1), make(mip.Expr, 0, n-1)
		for j = 0; j < n; j++ {
			if i == j {
				continue
			}
			out = out.Plus(tm.x[i][j], 1)
			in = in.Plus(tm.x[j][i], 1)
		}
		if err = m.AddConstraint(fmt.Sprintf("out[%d]", i), out, mip.Equal, 1); err != nil {
			return nil, err
		}
		if err = m.AddConstraint(fmt.Sprintf("in[%d]", i), in, mip.Equal, 1); err != nil {
			return nil, err
		}
	}

	// Flow conservation: every city except the root emits one unit.
	var flow mip.Expr
	for i = 1; i < n; i++ {
		flow = make(mip.Expr, 0, 2*(n-1))
		for j = 0; j < n; j++ {
			if i == j {
				continue
			}
			flow = flow.Plus(tm.f[i][j], 1).Plus(tm.f[j][i], -1)
		}
		if err = m.AddConstraint(fmt.Sprintf("flow[%d]", i), flow, mip.Equal, 1); err != nil {
			return nil, err
		}
	}

	// Linking: flow only along selected edges.
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if i == j {
				continue
			}
			link := mip.Expr{{Var: tm.f[i][j], Coef: 1}, {Var: tm.x[i][j], Coef: -load}}
			if err = m.AddConstraint(fmt.Sprintf("link[%d,%d]", i, j), link, mip.LessEq, 0); err != nil {
				return nil, err
			}
		}
	}

	obj := make(mip.Expr, 0, n*(n-1))
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if i != j {
				obj = obj.Plus(tm.x[i][j], w[i*n+j])
			}
		}
	}
	if err = m.Minimize(obj); err != nil {
		return nil, err
	}

	return tm, nil
}

// setTourHint hints a closed tour that starts at city 0. Along the tour the
// k-th edge carries flow k: every non-root city receives k−1 units and emits
// k, and the edge back into 0 carries N−1.
func (tm *tspModel) setTourHint(tour []int) error {
	if err := ValidateTour(tour, tm.n, 0); err != nil {
		return err
	}
	var (
		i, j, k int
		err     error
	)
	for i = 0; i < tm.n; i++ {
		for j = 0; j < tm.n; j++ {
			if i == j {
				continue
			}
			if err = tm.model.SetHint(tm.x[i][j], 0); err != nil {
				return err
			}
			if err = tm.model.SetHint(tm.f[i][j], 0); err != nil {
				return err
			}
		}
	}
	for k = 0; k < tm.n; k++ {
		i, j = tour[k], tour[k+1]
		if err = tm.model.SetHint(tm.x[i][j], 1); err != nil {
			return err
		}
		if err = tm.model.SetHint(tm.f[i][j], float64(k)); err != nil {
			return err
		}
	}

	return nil
}

// edgeValue reads x[i,j] from a solver result; the diagonal reads as 0.
func (tm *tspModel) edgeValue(res *mip.Result) func(i, j int) float64 {
	return func(i, j int) float64 {
		if i == j {
			return 0
		}
		return res.Value(tm.x[i][j])
	}
}

// newVarGrid returns an n×n grid filled with noVar.
func newVarGrid(n int) [][]mip.Var {
	g := make([][]mip.Var, n)
	for i := range g {
		g[i] = make([]mip.Var, n)
		for j := range g[i] {
			g[i][j] = noVar
		}
	}

	return g
}
