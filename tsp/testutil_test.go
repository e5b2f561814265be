// Package tsp_test provides helpers shared across *_test.go files: matrix
// constructors, a Held-Karp optimum oracle and tour shape assertions.
package tsp_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tspkit/matrix"
	"github.com/katalvlaran/tspkit/tsp"
)

const (
	// epsCost is the tolerance for costs that pass through LP arithmetic.
	epsCost = 1e-6

	// epsTiny is the tolerance for costs summed in the same order twice.
	epsTiny = 1e-12
)

// mustDense builds a *matrix.Dense from literal rows.
func mustDense(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	d, err := matrix.NewDenseFrom(rows)
	require.NoError(t, err)

	return d
}

// randomInstance returns the Euclidean matrix of n seeded uniform points.
func randomInstance(t *testing.T, n int, seed int64) *matrix.Dense {
	t.Helper()
	coords, err := tsp.GenerateInstance(n, seed)
	require.NoError(t, err)
	d, err := tsp.BuildDistanceMatrix(coords)
	require.NoError(t, err)

	return d
}

// at reads d[i][j], failing the test on error.
func at(t *testing.T, d matrix.Matrix, i, j int) float64 {
	t.Helper()
	v, err := d.At(i, j)
	require.NoError(t, err)

	return v
}

// rowMajor flattens d for the white-box helpers.
func rowMajor(t *testing.T, d matrix.Matrix) []float64 {
	t.Helper()
	n := d.Rows()
	w := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			w[i*n+j] = at(t, d, i, j)
		}
	}

	return w
}

// heldKarp returns the optimal tour cost by dynamic programming over subsets
// of {1..n-1}. Intended for n <= 12.
//
// Complexity: O(n²·2ⁿ) time, O(n·2ⁿ) space.
func heldKarp(t *testing.T, d matrix.Matrix) float64 {
	t.Helper()
	var (
		n    = d.Rows()
		full = 1 << (n - 1)
		dp   = make([][]float64, full)
		mask int
		k, m int
		c    float64
	)
	for mask = range dp {
		dp[mask] = make([]float64, n-1)
		for k = range dp[mask] {
			dp[mask][k] = math.Inf(1)
		}
	}
	// Bit k of mask stands for city k+1; dp[mask][k] ends at city k+1.
	for k = 0; k < n-1; k++ {
		dp[1<<k][k] = at(t, d, 0, k+1)
	}
	for mask = 1; mask < full; mask++ {
		for k = 0; k < n-1; k++ {
			if mask&(1<<k) == 0 || math.IsInf(dp[mask][k], 1) {
				continue
			}
			for m = 0; m < n-1; m++ {
				if mask&(1<<m) != 0 {
					continue
				}
				c = dp[mask][k] + at(t, d, k+1, m+1)
				if c < dp[mask|1<<m][m] {
					dp[mask|1<<m][m] = c
				}
			}
		}
	}
	best := math.Inf(1)
	for k = 0; k < n-1; k++ {
		best = math.Min(best, dp[full-1][k]+at(t, d, k+1, 0))
	}

	return best
}

// requireClosedTour asserts the Hamiltonian-cycle shape of tour.
func requireClosedTour(t *testing.T, tour []int, n, start int) {
	t.Helper()
	require.NoError(t, tsp.ValidateTour(tour, n, start), "tour=%v", tour)
}
