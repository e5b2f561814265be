// Package tsp - random instances.
//
// GenerateInstance produces reproducible benchmark inputs for the solvers
// and the tspsolve command.
package tsp

import (
	"fmt"
	"math/rand"
)

// defaultRNGSeed is used when callers pass seed==0.
const defaultRNGSeed int64 = 1

// rngFromSeed returns a deterministic *rand.Rand; seed==0 maps to
// defaultRNGSeed.
//
// Complexity: O(1).
func rngFromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultRNGSeed
	}

	return rand.New(rand.NewSource(seed))
}

// GenerateInstance returns n points drawn uniformly from the unit square
// [0,1)², as an n×2 list accepted by BuildDistanceMatrix. The same seed
// always yields the same points.
//
// Errors: ErrInvalidInput if n < 1.
// Complexity: O(n).
func GenerateInstance(n int, seed int64) ([][]float64, error) {
	if n < 1 {
		return nil, fmt.Errorf("GenerateInstance: n=%d: %w", n, ErrInvalidInput)
	}
	var (
		rng    = rngFromSeed(seed)
		coords = make([][]float64, n)
		i      int
	)
	for i = 0; i < n; i++ {
		coords[i] = []float64{rng.Float64(), rng.Float64()}
	}

	return coords, nil
}
