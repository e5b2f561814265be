// SPDX-License-Identifier: MIT

package mip

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// independentRows selects a maximal linearly independent subset of the
// augmented rows [a | b] (last entry is the right-hand side), scanning in
// input order. gonum's simplex needs a full-row-rank equality system, and
// degree-type constraints are routinely rank deficient by one.
//
// A row whose coefficient part reduces to ~0 is dropped; if its reduced
// right-hand side is not ~0 as well, the system is inconsistent and ok is
// false.
//
// Rows are not modified. Complexity: O(m²·n) for m rows of width n.
func independentRows(rows [][]float64, tol float64) (keep []int, ok bool) {
	type pivotRow struct {
		col int
		row []float64
	}
	var (
		basis []pivotRow
		r     []float64
		i     int
	)
	for i = range rows {
		n := len(rows[i]) - 1
		r = append(r[:0], rows[i]...)
		scale := math.Max(1, floats.Norm(rows[i][:n], math.Inf(1)))
		for _, p := range basis {
			if f := r[p.col]; f != 0 {
				floats.AddScaled(r, -f/p.row[p.col], p.row)
			}
		}
		col, best := -1, tol*scale
		for j := 0; j < n; j++ {
			if a := math.Abs(r[j]); a > best {
				col, best = j, a
			}
		}
		if col < 0 {
			if math.Abs(r[n]) > tol*scale {
				return nil, false
			}
			continue
		}
		basis = append(basis, pivotRow{col: col, row: append([]float64(nil), r...)})
		keep = append(keep, i)
	}

	return keep, true
}
