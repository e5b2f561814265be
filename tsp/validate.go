// Package tsp - input validation shared by the solvers.
//
// Every check wraps ErrInvalidInput together with the most specific cause
// available (a matrix sentinel where one applies), so callers can match
// either errors.Is(err, ErrInvalidInput) or errors.Is(err, matrix.ErrNonSquare).
package tsp

import (
	"fmt"

	"github.com/katalvlaran/tspkit/matrix"
)

// symTol is the structural tolerance for the zero-diagonal check.
const symTol = 1e-12

// prefetch validates dist and copies it into a row-major buffer so the
// solvers' hot loops avoid interface calls and error returns.
//
// Contract:
//   - dist is non-nil, square, of order n >= minN;
//   - every entry is finite and non-negative;
//   - |dist[i][i]| <= symTol.
//
// Complexity: O(n²) time and space.
func prefetch(op string, dist matrix.Matrix, minN int) ([]float64, int, error) {
	var (
		n   int
		err error
	)
	if err = matrix.ValidateSquare(dist); err != nil {
		return nil, 0, fmt.Errorf("%s: %w: %w", op, ErrInvalidInput, err)
	}
	n = dist.Rows()
	if n < minN {
		return nil, 0, fmt.Errorf("%s: %d cities, need at least %d: %w", op, n, minN, ErrInvalidInput)
	}

	if err = matrix.ValidateFinite(dist); err != nil {
		return nil, 0, fmt.Errorf("%s: %w: %w", op, ErrInvalidInput, err)
	}
	if err = matrix.ValidateZeroDiagonal(dist, symTol); err != nil {
		return nil, 0, fmt.Errorf("%s: %w: %w", op, ErrInvalidInput, err)
	}

	w := make([]float64, n*n)
	var (
		i, j int
		v    float64
	)
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if v, err = dist.At(i, j); err != nil {
				return nil, 0, fmt.Errorf("%s: %w: %w", op, ErrInvalidInput, err)
			}
			if v < 0 {
				return nil, 0, fmt.Errorf("%s: d[%d][%d]=%v negative: %w", op, i, j, v, ErrInvalidInput)
			}
			w[i*n+j] = v
		}
	}

	return w, n, nil
}

// validateStartVertex verifies start ∈ [0, n).
//
// Complexity: O(1).
func validateStartVertex(op string, n, start int) error {
	if start < 0 || start >= n {
		return fmt.Errorf("%s: start %d not in [0,%d): %w", op, start, n, ErrInvalidInput)
	}

	return nil
}
