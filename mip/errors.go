// SPDX-License-Identifier: MIT
// Package mip: sentinel error set.
// Model-building and parameter errors are returned as these sentinels,
// optionally wrapped with the offending name via %w. Solve outcomes
// (infeasible, time limit, ...) are NOT errors: they are reported through
// Result.Termination so callers can decide what a usable answer is.

package mip

import "errors"

var (
	// ErrInvalidBounds is returned when a variable's bounds are NaN, the lower
	// bound is infinite, lb > ub, or a binary variable leaves [0,1].
	ErrInvalidBounds = errors.New("mip: invalid variable bounds")

	// ErrUnknownVariable is returned when an expression references a Var that
	// does not belong to the model.
	ErrUnknownVariable = errors.New("mip: unknown variable")

	// ErrNaN is returned when a coefficient, right-hand side or hint value is NaN or ±Inf.
	ErrNaN = errors.New("mip: non-finite coefficient")

	// ErrEmptyModel is returned by Solve when the model has no variables.
	ErrEmptyModel = errors.New("mip: model has no variables")

	// ErrInvalidParams is returned by Solve for negative limits or tolerances.
	ErrInvalidParams = errors.New("mip: invalid solve parameters")
)
