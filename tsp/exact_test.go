package tsp_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tspkit/matrix"
	"github.com/katalvlaran/tspkit/mip"
	"github.com/katalvlaran/tspkit/tsp"
)

// exactBudget keeps small exact solves far from the time limit on slow CI.
const exactBudget = 2 * time.Minute

func TestSolveExact_ThreeCities(t *testing.T) {
	res, err := tsp.SolveExact(context.Background(), mustDense(t, threeCities))
	require.NoError(t, err)
	assert.True(t, res.Optimal())
	assert.Equal(t, mip.Optimal, res.Termination.Reason)
	assert.True(t, tsp.EqualToursModuloDirection([]int{0, 1, 2, 0}, res.Tour), "tour=%v", res.Tour)
	assert.InDelta(t, 6.0, res.Cost, epsCost)
	assert.InDelta(t, 6.0, res.TourCost, epsTiny)
	assert.Positive(t, res.Nodes)
}

func TestSolveExact_TwoCities(t *testing.T) {
	res, err := tsp.SolveExact(context.Background(), mustDense(t, [][]float64{{0, 2}, {3, 0}}))
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 0}, res.Tour)
	assert.InDelta(t, 5.0, res.Cost, epsCost)
	assert.Equal(t, 5.0, res.TourCost)
}

func TestSolveExact_MatchesHeldKarp(t *testing.T) {
	for _, seed := range []int64{1, 2, 3} {
		d := randomInstance(t, 5, seed)
		want := heldKarp(t, d)

		res, err := tsp.SolveExact(context.Background(), d, tsp.WithTimeLimit(exactBudget))
		require.NoError(t, err, "seed=%d", seed)
		require.True(t, res.Optimal(), "seed=%d: %s", seed, res.Termination)
		requireClosedTour(t, res.Tour, 5, 0)
		assert.InDelta(t, want, res.Cost, epsCost, "seed=%d", seed)
		assert.InDelta(t, want, res.TourCost, epsCost, "seed=%d", seed)
	}
}

func TestSolveExact_Asymmetric(t *testing.T) {
	// The cheap direction 0→1→2→3→0 costs 4; the reverse costs 40.
	d := mustDense(t, [][]float64{
		{0, 1, 10, 10},
		{10, 0, 1, 10},
		{10, 10, 0, 1},
		{1, 10, 10, 0},
	})
	res, err := tsp.SolveExact(context.Background(), d)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 0}, res.Tour)
	assert.InDelta(t, 4.0, res.Cost, epsCost)
	assert.InDelta(t, heldKarp(t, d), res.Cost, epsCost)
}

func TestSolveExact_NotAboveGreedy(t *testing.T) {
	for _, seed := range []int64{11, 12} {
		d := randomInstance(t, 6, seed)
		greedy, err := tsp.SolveGreedy(d)
		require.NoError(t, err)

		exact, err := tsp.SolveExact(context.Background(), d, tsp.WithTimeLimit(exactBudget))
		require.NoError(t, err, "seed=%d", seed)
		assert.LessOrEqual(t, exact.Cost, greedy.Cost+epsCost, "seed=%d", seed)
		assert.LessOrEqual(t, exact.TourCost, greedy.Cost+epsCost, "seed=%d", seed)
	}
}

func TestSolveExact_WarmStart(t *testing.T) {
	d := randomInstance(t, 5, 21)
	res, err := tsp.SolveExact(context.Background(), d,
		tsp.WithWarmStart(true), tsp.WithTimeLimit(exactBudget))
	require.NoError(t, err)
	require.True(t, res.Optimal())
	assert.InDelta(t, heldKarp(t, d), res.Cost, epsCost)
}

func TestSolveExact_CanceledWithoutIncumbent(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := tsp.SolveExact(ctx, randomInstance(t, 4, 3), tsp.WithWarmStart(false))
	require.ErrorIs(t, err, tsp.ErrSolve)

	var se *tsp.SolveError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, mip.NoSolutionFound, se.Reason())
	assert.Equal(t, mip.LimitInterrupted, se.Termination.Limit)
	assert.Contains(t, se.Error(), "NO_SOLUTION_FOUND")
}

func TestSolveExact_CanceledWithWarmStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d := randomInstance(t, 6, 8)
	greedy, err := tsp.SolveGreedy(d)
	require.NoError(t, err)

	res, err := tsp.SolveExact(ctx, d, tsp.WithWarmStart(true))
	require.NoError(t, err)
	assert.Equal(t, mip.Feasible, res.Termination.Reason)
	assert.False(t, res.Optimal())
	assert.Equal(t, greedy.Tour, res.Tour)
	assert.InDelta(t, greedy.Cost, res.TourCost, epsTiny)
	// No relaxation was solved, so the only bound is the trivial one.
	assert.Equal(t, 0.0, res.Cost)
	assert.LessOrEqual(t, res.Cost, res.TourCost)
}

func TestSolveExact_CanceledWithWarmStartDefault(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d := randomInstance(t, 5, 9)
	greedy, err := tsp.SolveGreedy(d)
	require.NoError(t, err)

	res, err := tsp.SolveExact(ctx, d)
	require.NoError(t, err)
	assert.Equal(t, mip.Feasible, res.Termination.Reason)
	assert.Equal(t, greedy.Tour, res.Tour)
}

func TestSolveExact_TenCitiesWithinDefaultLimit(t *testing.T) {
	if testing.Short() {
		t.Skip("runs up to tsp.DefaultTimeLimit")
	}
	d := randomInstance(t, 10, 5)
	greedy, err := tsp.SolveGreedy(d)
	require.NoError(t, err)

	started := time.Now()
	res, err := tsp.SolveExact(context.Background(), d)
	wall := time.Since(started)
	require.NoError(t, err)
	requireClosedTour(t, res.Tour, 10, 0)
	assert.LessOrEqual(t, res.Cost, res.TourCost+epsCost)
	assert.LessOrEqual(t, res.Cost, greedy.Cost+epsCost)
	assert.LessOrEqual(t, res.TourCost, greedy.Cost+epsCost)
	assert.Less(t, res.Elapsed, tsp.DefaultTimeLimit+time.Second)
	assert.Less(t, wall, tsp.DefaultTimeLimit+2*time.Second)
	if res.Optimal() {
		assert.InDelta(t, res.TourCost, res.Cost, epsCost)
	}
}

func TestSolveExact_TimeLimitStopsLargeSolve(t *testing.T) {
	const limit = 300 * time.Millisecond
	d := randomInstance(t, 25, 6)
	greedy, err := tsp.SolveGreedy(d)
	require.NoError(t, err)

	started := time.Now()
	res, err := tsp.SolveExact(context.Background(), d, tsp.WithTimeLimit(limit))
	wall := time.Since(started)
	require.NoError(t, err)
	assert.Equal(t, mip.Feasible, res.Termination.Reason, "%s", res.Termination)
	assert.Equal(t, mip.LimitTime, res.Termination.Limit)
	requireClosedTour(t, res.Tour, 25, 0)
	assert.LessOrEqual(t, res.TourCost, greedy.Cost+epsCost)
	assert.LessOrEqual(t, res.Cost, res.TourCost+epsCost)
	assert.GreaterOrEqual(t, res.Elapsed, limit)
	assert.Less(t, res.Elapsed, limit+time.Second)
	assert.Less(t, wall, limit+2*time.Second)
}

func TestSolveExact_InvalidInput(t *testing.T) {
	nonSquare, err := matrix.NewDense(3, 2)
	require.NoError(t, err)

	cases := map[string]matrix.Matrix{
		"nil matrix":     nil,
		"single city":    mustDense(t, [][]float64{{0}}),
		"non-square":     nonSquare,
		"negative entry": mustDense(t, [][]float64{{0, 1}, {-1, 0}}),
		"diagonal":       mustDense(t, [][]float64{{0, 1}, {1, 2}}),
	}
	for name, d := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := tsp.SolveExact(context.Background(), d)
			require.ErrorIs(t, err, tsp.ErrInvalidInput)
		})
	}
}

func TestBuildModel_Size(t *testing.T) {
	for n := 2; n <= 6; n++ {
		vars, cons, err := tsp.BuildModelSize(make([]float64, n*n), n)
		require.NoError(t, err)
		assert.Equal(t, 2*n*(n-1), vars, "n=%d", n)
		assert.Equal(t, 2*n+(n-1)+n*(n-1), cons, "n=%d", n)
	}
}

func TestSetTourHint_FeasibleFlows(t *testing.T) {
	d := randomInstance(t, 5, 4)
	w := rowMajor(t, d)
	tour := []int{0, 3, 1, 4, 2, 0}
	want, err := tsp.TourCost(d, tour)
	require.NoError(t, err)

	res, err := tsp.SolveModelWithTourHint(w, 5, tour)
	require.NoError(t, err)
	require.Equal(t, mip.Feasible, res.Termination.Reason, "%s", res.Termination)
	assert.InDelta(t, want, res.ObjectiveValue, epsTiny)
	assert.Equal(t, 0, res.Nodes)

	_, err = tsp.SolveModelWithTourHint(w, 5, []int{1, 0, 2, 3, 4, 1})
	require.ErrorIs(t, err, tsp.ErrInvalidInput)
}
