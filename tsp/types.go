package tsp

import (
	"time"

	"github.com/katalvlaran/tspkit/mip"
)

// TSResult holds the outcome of a TSP solver.
type TSResult struct {
	// Tour is the sequence of vertex indices, starting and ending at the same
	// vertex. For n vertices, len(Tour) == n+1 and Tour[0] == Tour[n].
	Tour []int

	// Cost is the objective value. For SolveGreedy it is the total distance
	// of Tour; for SolveExact it is the solver's best objective bound.
	Cost float64
}

// ExactResult is the outcome of SolveExact.
type ExactResult struct {
	TSResult

	// TourCost is the total distance of Tour, recomputed from the matrix.
	// It equals Cost when the solve is proven optimal; when a time limit
	// stopped the search (Termination.Reason == mip.Feasible) Cost may be a
	// strictly smaller lower bound.
	TourCost float64

	// Termination is the solver's outcome (OPTIMAL or FEASIBLE on success).
	Termination mip.Termination

	// Nodes is the number of LP relaxations the solver evaluated.
	Nodes int

	// Elapsed is the wall-clock time of the solve step.
	Elapsed time.Duration
}

// Optimal reports whether the tour is proven optimal.
func (r ExactResult) Optimal() bool {
	return r.Termination.Reason == mip.Optimal
}
