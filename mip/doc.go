// SPDX-License-Identifier: MIT

// Package mip is a small general-purpose mixed-integer linear solver.
//
// It supports:
//
//   - Continuous, integer and binary variables with finite lower bounds and
//     finite or infinite upper bounds.
//   - Linear constraints (<=, >=, ==) and a linear objective (min or max).
//   - A wall-clock time limit (Params.TimeLimit and/or a context deadline),
//     a node limit, and cancellation through context.Context.
//   - A solution hint that seeds the incumbent.
//   - Termination reasons in the style of commercial solvers (OPTIMAL,
//     FEASIBLE, INFEASIBLE, UNBOUNDED, NO_SOLUTION_FOUND, NUMERICAL_ERROR)
//     together with the best objective bound.
//
// The search is a deterministic branch-and-bound, depth-first until the first
// incumbent and best-bound after it. LP relaxations are solved by a
// bounded-variable simplex on gonum matrices that polls the context between
// pivots, with gonum's lp.Simplex (gonum.org/v1/gonum/optimize/convex/lp) as
// a fallback when it runs into numerical trouble.
// It is sized for models with a few hundred variables, e.g. exact TSP
// formulations on tens of cities.
//
// Typical use:
//
//	m := mip.NewModel("knapsack")
//	a, b := m.AddBinary("a"), m.AddBinary("b")
//	_ = m.AddConstraint("cap", mip.Expr{{a, 2}, {b, 3}}, mip.LessEq, 4)
//	_ = m.Maximize(mip.Expr{{a, 3}, {b, 4}})
//	res, err := mip.Solve(ctx, m, mip.DefaultParams())
//
// Logging goes through glog and is off unless Params.EnableOutput is set.
package mip
