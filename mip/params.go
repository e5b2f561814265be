// SPDX-License-Identifier: MIT

package mip

import (
	"fmt"
	"time"
)

// Defaults - single source of truth for zero-value Params fields.
const (
	// DefaultIntegralityTolerance is the distance to the nearest integer under
	// which an integer variable's LP value counts as integral.
	DefaultIntegralityTolerance = 1e-6

	// DefaultAbsoluteGap prunes a node whose bound is within this distance of
	// the incumbent.
	DefaultAbsoluteGap = 1e-9

	// DefaultRelativeGap prunes a node whose bound is within this fraction of
	// |incumbent| of the incumbent.
	DefaultRelativeGap = 1e-9

	// DefaultLogEvery is the node interval between progress lines when
	// EnableOutput is set.
	DefaultLogEvery = 1000

	// simplexTol is the pivot tolerance handed to gonum's lp.Simplex.
	simplexTol = 1e-10

	// feasTol is the row/bound tolerance of presolve and hint checks.
	feasTol = 1e-9
)

// Params controls one Solve call.
type Params struct {
	// TimeLimit bounds the wall-clock time of the search. 0 means no limit
	// beyond the context's own deadline. The limit is checked between nodes
	// and every few simplex pivots inside a relaxation.
	TimeLimit time.Duration

	// EnableOutput turns on progress logging through glog.
	EnableOutput bool

	// NodeLimit stops the search after this many LP relaxations (0 = unlimited).
	NodeLimit int

	// IntegralityTolerance, AbsoluteGap, RelativeGap: 0 selects the default.
	IntegralityTolerance float64
	AbsoluteGap          float64
	RelativeGap          float64

	// LogEvery is the node interval between progress lines (0 = DefaultLogEvery).
	LogEvery int
}

// DefaultParams returns Params with every default filled in and no time limit.
func DefaultParams() Params {
	return Params{
		IntegralityTolerance: DefaultIntegralityTolerance,
		AbsoluteGap:          DefaultAbsoluteGap,
		RelativeGap:          DefaultRelativeGap,
		LogEvery:             DefaultLogEvery,
	}
}

// resolve validates p and fills zero fields with defaults.
func (p Params) resolve() (Params, error) {
	if p.TimeLimit < 0 || p.NodeLimit < 0 || p.LogEvery < 0 ||
		p.IntegralityTolerance < 0 || p.AbsoluteGap < 0 || p.RelativeGap < 0 {
		return p, fmt.Errorf("Params %+v: %w", p, ErrInvalidParams)
	}
	if p.IntegralityTolerance == 0 {
		p.IntegralityTolerance = DefaultIntegralityTolerance
	}
	if p.AbsoluteGap == 0 {
		p.AbsoluteGap = DefaultAbsoluteGap
	}
	if p.RelativeGap == 0 {
		p.RelativeGap = DefaultRelativeGap
	}
	if p.LogEvery == 0 {
		p.LogEvery = DefaultLogEvery
	}

	return p, nil
}
