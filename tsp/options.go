// Package tsp - solver options.
//
// Options follow the functional-options pattern: every solver accepts
// ...Option and starts from DefaultOptions. Option constructors panic only on
// values that can never be meaningful (negative durations); values that
// depend on the instance (a start vertex beyond n) are reported as
// ErrInvalidInput by the solver that receives them.
package tsp

import (
	"fmt"
	"time"
)

const (
	// DefaultStartVertex is the city every tour starts and ends at.
	DefaultStartVertex = 0

	// DefaultTimeLimit bounds SolveExact's wall-clock time.
	DefaultTimeLimit = 30 * time.Second

	// DefaultSolverOutput keeps the branch-and-bound progress log quiet.
	DefaultSolverOutput = false

	// DefaultWarmStart seeds the exact solver with the greedy tour, so a
	// time-limited solve always has a tour to return.
	DefaultWarmStart = true
)

// Options configures SolveGreedy and SolveExact.
type Options struct {
	// StartVertex is the first and last city of a greedy tour.
	// SolveExact always decodes its tour from city 0.
	StartVertex int

	// TimeLimit caps the exact solve; 0 disables the limit.
	TimeLimit time.Duration

	// SolverOutput enables the mip solver's progress log (glog, INFO).
	SolverOutput bool

	// WarmStart seeds the exact solver with the greedy tour from city 0.
	WarmStart bool
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns the options every solver starts from.
func DefaultOptions() Options {
	return Options{
		StartVertex:  DefaultStartVertex,
		TimeLimit:    DefaultTimeLimit,
		SolverOutput: DefaultSolverOutput,
		WarmStart:    DefaultWarmStart,
	}
}

// WithStartVertex sets the greedy start city.
func WithStartVertex(v int) Option {
	return func(o *Options) { o.StartVertex = v }
}

// WithTimeLimit sets the exact solver's time limit. Panics if d < 0.
func WithTimeLimit(d time.Duration) Option {
	if d < 0 {
		panic(fmt.Sprintf("tsp: WithTimeLimit(%v): negative duration", d))
	}

	return func(o *Options) { o.TimeLimit = d }
}

// WithSolverOutput toggles the solver's own progress log.
func WithSolverOutput(on bool) Option {
	return func(o *Options) { o.SolverOutput = on }
}

// WithWarmStart toggles seeding the exact solver with a greedy tour.
func WithWarmStart(on bool) Option {
	return func(o *Options) { o.WarmStart = on }
}

// gatherOptions applies opts over DefaultOptions.
func gatherOptions(opts ...Option) Options {
	o := DefaultOptions()
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
