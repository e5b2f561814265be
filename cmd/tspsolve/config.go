package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/katalvlaran/tspkit/tsp"
)

// Environment variables read by configFromEnv. Flags override them.
const (
	envCities    = "TSP_CITIES"
	envSeed      = "TSP_SEED"
	envStart     = "TSP_START"
	envTimeLimit = "TSP_TIME_LIMIT"
	envWarmStart = "TSP_WARM_START"
)

// Instance sizes. The exact model grows as 2n(n−1) variables, so larger
// instances would only ever report the time limit.
const (
	defaultCities = 10
	maxCities     = 50
)

// config is the command's resolved settings.
type config struct {
	Cities       int
	Seed         int64
	Start        int
	TimeLimit    time.Duration
	SolverOutput bool
	WarmStart    bool
}

// configFromEnv starts from the defaults and applies any TSP_* variables.
func configFromEnv() (config, error) {
	cfg := config{
		Cities:    defaultCities,
		Seed:      1,
		Start:     tsp.DefaultStartVertex,
		TimeLimit: tsp.DefaultTimeLimit,
		WarmStart: tsp.DefaultWarmStart,
	}
	var err error
	if v, ok := lookup(envCities); ok {
		if cfg.Cities, err = strconv.Atoi(v); err != nil {
			return cfg, fmt.Errorf("%s=%q: %w", envCities, v, err)
		}
	}
	if v, ok := lookup(envSeed); ok {
		if cfg.Seed, err = strconv.ParseInt(v, 10, 64); err != nil {
			return cfg, fmt.Errorf("%s=%q: %w", envSeed, v, err)
		}
	}
	if v, ok := lookup(envStart); ok {
		if cfg.Start, err = strconv.Atoi(v); err != nil {
			return cfg, fmt.Errorf("%s=%q: %w", envStart, v, err)
		}
	}
	if v, ok := lookup(envTimeLimit); ok {
		if cfg.TimeLimit, err = time.ParseDuration(v); err != nil {
			return cfg, fmt.Errorf("%s=%q: %w", envTimeLimit, v, err)
		}
	}
	if v, ok := lookup(envWarmStart); ok {
		if cfg.WarmStart, err = strconv.ParseBool(v); err != nil {
			return cfg, fmt.Errorf("%s=%q: %w", envWarmStart, v, err)
		}
	}

	return cfg, nil
}

// lookup returns a trimmed, non-empty environment value.
func lookup(key string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(key))

	return v, v != ""
}

// registerFlags binds the command-line flags to cfg's current values.
func (c *config) registerFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.Cities, "n", c.Cities, "number of random cities (env "+envCities+")")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "instance seed; 0 selects the default (env "+envSeed+")")
	fs.IntVar(&c.Start, "start", c.Start, "greedy start city (env "+envStart+")")
	fs.DurationVar(&c.TimeLimit, "time-limit", c.TimeLimit, "exact solver time limit, 0 for none (env "+envTimeLimit+")")
	fs.BoolVar(&c.SolverOutput, "solver-output", c.SolverOutput, "log branch-and-bound progress")
	fs.BoolVar(&c.WarmStart, "warm-start", c.WarmStart, "seed the exact solver with the greedy tour (env "+envWarmStart+")")
}

// validate rejects settings the solvers would reject later, before any work.
func (c config) validate() error {
	switch {
	case c.Cities < 2:
		return fmt.Errorf("need at least 2 cities, got %d", c.Cities)
	case c.Cities > maxCities:
		return fmt.Errorf("at most %d cities, got %d", maxCities, c.Cities)
	case c.Start < 0 || c.Start >= c.Cities:
		return fmt.Errorf("start %d not in [0,%d)", c.Start, c.Cities)
	case c.TimeLimit < 0:
		return fmt.Errorf("negative time limit %v", c.TimeLimit)
	}

	return nil
}
