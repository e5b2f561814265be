// Command tspsolve generates a seeded random instance and solves it with both
// the nearest-neighbour heuristic and the exact mixed-integer solver, side by
// side, printing each tour and its cost.
//
// Settings come from TSP_* environment variables (optionally loaded from a
// .env file) and are overridden by flags:
//
//	tspsolve -n 10 -seed 7 -time-limit 1m -v=1
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/golang/glog"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/tspkit/tsp"
)

func main() {
	if err := godotenv.Load(); err != nil {
		glog.V(1).Info("no .env file found, using environment variables")
	}
	cfg, err := configFromEnv()
	if err != nil {
		glog.Exitf("tspsolve: %v", err)
	}
	cfg.registerFlags(flag.CommandLine)
	flag.Parse()
	defer glog.Flush()

	if err = cfg.validate(); err != nil {
		glog.Exitf("tspsolve: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err = run(ctx, cfg, os.Stdout); err != nil {
		glog.Errorf("tspsolve: %v", err)
		glog.Flush()
		os.Exit(1)
	}
}

// run solves one instance with both solvers concurrently. Each solver gets
// its own copy of the matrix.
func run(ctx context.Context, cfg config, out io.Writer) error {
	coords, err := tsp.GenerateInstance(cfg.Cities, cfg.Seed)
	if err != nil {
		return err
	}
	dist, err := tsp.BuildDistanceMatrix(coords)
	if err != nil {
		return err
	}
	glog.V(1).Infof("tspsolve: %d cities, seed %d", cfg.Cities, cfg.Seed)
	glog.V(2).Infof("tspsolve: distance matrix:\n%v", dist)

	var (
		greedy     tsp.TSResult
		exact      tsp.ExactResult
		greedyDist = dist.Clone()
		exactDist  = dist.Clone()
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res, err := tsp.SolveGreedy(greedyDist, tsp.WithStartVertex(cfg.Start))
		if err != nil {
			return fmt.Errorf("greedy: %w", err)
		}
		greedy = res
		return nil
	})
	g.Go(func() error {
		res, err := tsp.SolveExact(gctx, exactDist,
			tsp.WithTimeLimit(cfg.TimeLimit),
			tsp.WithSolverOutput(cfg.SolverOutput),
			tsp.WithWarmStart(cfg.WarmStart),
		)
		if err != nil {
			return fmt.Errorf("exact: %w", err)
		}
		exact = res
		return nil
	})
	if err = g.Wait(); err != nil {
		return err
	}

	fmt.Fprintf(out, "instance: %d cities, seed %d\n", cfg.Cities, cfg.Seed)
	fmt.Fprintf(out, "greedy:   cost=%.6f tour=%v\n", greedy.Cost, greedy.Tour)
	fmt.Fprintf(out, "exact:    cost=%.6f tour_cost=%.6f status=%s nodes=%d elapsed=%v tour=%v\n",
		exact.Cost, exact.TourCost, exact.Termination.Reason, exact.Nodes, exact.Elapsed, exact.Tour)
	if gap, ok := gapPercent(greedy.Cost, exact.Cost); ok {
		fmt.Fprintf(out, "gap:      greedy is %.2f%% above the exact bound\n", gap)
	}

	return nil
}

// gapPercent is (greedy − exact) / exact × 100. ok is false when exact is not
// positive and the ratio has no meaning.
func gapPercent(greedy, exact float64) (gap float64, ok bool) {
	if exact <= 0 {
		return 0, false
	}

	return 100 * (greedy - exact) / exact, true
}
