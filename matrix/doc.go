// SPDX-License-Identifier: MIT

// Package matrix provides the dense numeric storage used by the tsp solvers.
//
// The matrix package provides:
//
//   - Matrix, a small interface (Rows/Cols/At/Set/Clone) that solvers accept,
//     so callers can plug in their own storage.
//   - Dense, a row-major implementation with bounds-checked accessors that
//     return sentinel errors instead of panicking.
//   - Validators (ValidateNotNil, ValidateSquare, ValidateZeroDiagonal,
//     ValidateFinite) that return plain sentinels for callers to wrap.
//
// Distance matrices for TSP are small (tens of cities), so O(n²) storage and
// O(n²) validation are always acceptable here.
package matrix
