// Package tsp provides Travelling Salesman Problem solvers over a distance
// matrix (matrix.Matrix, typically a *matrix.Dense).
//
// Three operations form the core:
//
//   - BuildDistanceMatrix: N planar points → symmetric Euclidean N×N matrix.
//
//   - SolveGreedy: nearest-neighbour construction from a start city.
//
//   - Complexity: O(N²)
//
//   - Ties: lowest city index wins
//
//   - SolveExact: mixed-integer program with Gavish-Graves flow subtour
//     elimination, solved by package mip under a wall-clock time limit.
//
//   - Complexity: exponential worst case; practical for N ≲ 10
//
//   - Result: OPTIMAL, or FEASIBLE when the time limit stopped the search
//
// Supporting helpers: GenerateInstance (seeded uniform points), TourCost,
// ValidateTour and EqualToursModuloDirection.
//
// Conventions:
//   - A tour over N cities has N+1 entries and Tour[0] == Tour[N].
//   - Distances must be finite and non-negative with a zero diagonal;
//     asymmetric matrices are accepted by both solvers.
//   - Each call works on its own prefetched copy of the matrix, so solvers
//     may run concurrently on the same input.
//
// Errors are classified by ErrInvalidInput, ErrSolve (*SolveError) and
// ErrExtraction (*ExtractionError); see errors.go.
//
// Logging uses glog at verbosity 1 (timings and tours); enable it with -v=1.
package tsp
