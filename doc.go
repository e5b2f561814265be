// Package tspkit is a small Travelling Salesman toolkit: build a Euclidean
// distance matrix from planar points, then tour it greedily or solve it
// exactly as a mixed-integer program.
//
// Everything is organized under three subpackages and one command:
//
//	matrix/        - dense float64 matrices and shape/value validators
//	mip/           - mixed-integer linear models and a branch-and-bound solver
//	                 over gonum's simplex, with time and node limits
//	tsp/           - BuildDistanceMatrix, SolveGreedy (nearest neighbour),
//	                 SolveExact (Gavish-Graves flow formulation) and tour helpers
//	cmd/tspsolve/  - runs both solvers on a seeded random instance
//
// Quick start:
//
//	coords, _ := tsp.GenerateInstance(8, 42)
//	dist, _ := tsp.BuildDistanceMatrix(coords)
//	greedy, _ := tsp.SolveGreedy(dist)
//	exact, err := tsp.SolveExact(ctx, dist, tsp.WithTimeLimit(10*time.Second))
//
// Pure Go: no cgo, no native solver libraries.
package tspkit
