package tsp

import (
	"fmt"
	"math"

	"github.com/katalvlaran/tspkit/matrix"
)

// BuildDistanceMatrix returns the symmetric Euclidean distance matrix of
// N planar points given as an N×2 coordinate list.
//
// Contract:
//   - N >= 2 and every row holds exactly two finite coordinates.
//   - The result has a zero diagonal and d[i][j] == d[j][i] bit for bit:
//     each pair is computed once and mirrored.
//
// Errors: ErrInvalidInput (wrapped with the offending row).
// Complexity: O(N²) time and space.
func BuildDistanceMatrix(coords [][]float64) (*matrix.Dense, error) {
	var n = len(coords)
	if n < 2 {
		return nil, fmt.Errorf("BuildDistanceMatrix: %d cities, need at least 2: %w", n, ErrInvalidInput)
	}
	var i, j int
	for i = 0; i < n; i++ {
		if len(coords[i]) != 2 {
			return nil, fmt.Errorf("BuildDistanceMatrix: row %d has %d coordinates, want 2: %w",
				i, len(coords[i]), ErrInvalidInput)
		}
		for j = 0; j < 2; j++ {
			if math.IsNaN(coords[i][j]) || math.IsInf(coords[i][j], 0) {
				return nil, fmt.Errorf("BuildDistanceMatrix: row %d: non-finite coordinate: %w", i, ErrInvalidInput)
			}
		}
	}

	d, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, fmt.Errorf("BuildDistanceMatrix: %w", err)
	}
	var dist float64
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			dist = math.Hypot(coords[i][0]-coords[j][0], coords[i][1]-coords[j][1])
			// Indices are in range by construction.
			_ = d.Set(i, j, dist)
			_ = d.Set(j, i, dist)
		}
	}

	return d, nil
}
