package tsp

import (
	"context"

	"github.com/katalvlaran/tspkit/mip"
)

// ExtractTour exposes extractTour to the external test package.
var ExtractTour = extractTour

// BuildModelSize builds the exact model for a validated n×n matrix and
// reports its variable and constraint counts.
func BuildModelSize(w []float64, n int) (vars, cons int, err error) {
	tm, err := buildModel(w, n)
	if err != nil {
		return 0, 0, err
	}

	return tm.model.NumVars(), tm.model.NumConstraints(), nil
}

// SolveModelWithTourHint builds the exact model, hints tour and solves under
// an already canceled context, so only the hint can produce an incumbent.
func SolveModelWithTourHint(w []float64, n int, tour []int) (*mip.Result, error) {
	tm, err := buildModel(w, n)
	if err != nil {
		return nil, err
	}
	if err = tm.setTourHint(tour); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	return mip.Solve(ctx, tm.model, mip.Params{})
}
