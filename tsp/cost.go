// Package tsp - tour cost.
//
// TourCost sums d[tour[k]][tour[k+1]] over consecutive pairs. It backs the
// TourCost field of ExactResult and lets callers price tours from any source.
package tsp

import (
	"fmt"
	"math"

	"github.com/katalvlaran/tspkit/matrix"
)

// TourCost returns the total length of a closed tour.
//
// Contract:
//   - dist is non-nil and square;
//   - len(tour) >= 2 and every index is in [0, n);
//   - every traversed entry is finite and non-negative.
//
// The tour's shape (permutation, closing vertex) is not checked here; use
// ValidateTour for that.
//
// Errors: ErrInvalidInput (wrapped with the offending edge).
// Complexity: O(len(tour)).
func TourCost(dist matrix.Matrix, tour []int) (float64, error) {
	if err := matrix.ValidateSquare(dist); err != nil {
		return 0, fmt.Errorf("TourCost: %w: %w", ErrInvalidInput, err)
	}
	if len(tour) < 2 {
		return 0, fmt.Errorf("TourCost: tour of length %d: %w", len(tour), ErrInvalidInput)
	}

	var (
		n    = dist.Rows()
		sum  float64
		k    int
		u, v int
		w    float64
		err  error
	)
	for k = 0; k+1 < len(tour); k++ {
		u, v = tour[k], tour[k+1]
		if u < 0 || u >= n || v < 0 || v >= n {
			return 0, fmt.Errorf("TourCost: edge %d->%d outside [0,%d): %w", u, v, n, ErrInvalidInput)
		}
		if w, err = dist.At(u, v); err != nil {
			return 0, fmt.Errorf("TourCost: %w: %w", ErrInvalidInput, err)
		}
		if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
			return 0, fmt.Errorf("TourCost: d[%d][%d]=%v: %w", u, v, w, ErrInvalidInput)
		}
		sum += w
	}

	return sum, nil
}

// tourCostRowMajor is TourCost over a prefetched matrix; no checks.
func tourCostRowMajor(w []float64, n int, tour []int) float64 {
	var sum float64
	for k := 0; k+1 < len(tour); k++ {
		sum += w[tour[k]*n+tour[k+1]]
	}

	return sum
}
