// Package tsp - error taxonomy.
//
// Three sentinels classify every failure of the package:
//
//   - ErrInvalidInput: malformed coordinates, distance matrix, start vertex
//     or tour. Returned immediately; retrying with the same input is useless.
//   - ErrSolve: the mixed-integer solver stopped without a usable solution.
//     The concrete *SolveError carries the solver's termination; callers
//     may retry with a larger time limit.
//   - ErrExtraction: the solver reported success but its edge selection does
//     not decode into one Hamiltonian cycle. This is a defect, not retried.
//
// Call sites attach context with fmt.Errorf("Op: ...: %w", ErrX); callers
// match with errors.Is and, for the typed errors, errors.As.
package tsp

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/tspkit/mip"
)

var (
	// ErrInvalidInput is returned for malformed shapes, sizes or indices.
	ErrInvalidInput = errors.New("tsp: invalid input")

	// ErrSolve is matched by every *SolveError.
	ErrSolve = errors.New("tsp: solver returned no usable solution")

	// ErrExtraction is matched by every *ExtractionError.
	ErrExtraction = errors.New("tsp: cannot decode tour from solver solution")
)

// SolveError reports an unsuccessful mixed-integer solve.
type SolveError struct {
	Termination mip.Termination
}

// Error implements error.
func (e *SolveError) Error() string {
	return fmt.Sprintf("%v: %s", ErrSolve, e.Termination)
}

// Unwrap lets errors.Is(err, ErrSolve) match.
func (e *SolveError) Unwrap() error { return ErrSolve }

// Reason is a shorthand for e.Termination.Reason.
func (e *SolveError) Reason() mip.TerminationReason { return e.Termination.Reason }

// ExtractionError reports an edge selection that is not a single tour.
type ExtractionError struct {
	// City is the city whose outgoing edge could not be followed.
	City int
	// Visited is the number of cities appended before the failure.
	Visited int
	// Detail says what was wrong with City's outgoing edges.
	Detail string
}

// Error implements error.
func (e *ExtractionError) Error() string {
	return fmt.Sprintf("%v: city %d after %d visited: %s", ErrExtraction, e.City, e.Visited, e.Detail)
}

// Unwrap lets errors.Is(err, ErrExtraction) match.
func (e *ExtractionError) Unwrap() error { return ErrExtraction }
