// Package tsp - tour utilities.
//
// Helpers that operate on tour structure only (index sequences), without a
// distance matrix.
package tsp

import "fmt"

// ValidateTour checks that tour is a closed Hamiltonian cycle over n cities
// starting and ending at start: len(tour) == n+1, tour[0] == tour[n] == start,
// and tour[:n] is a permutation of {0..n-1}.
//
// Errors: ErrInvalidInput (wrapped with the first violation found).
// Complexity: O(n) time and space.
func ValidateTour(tour []int, n, start int) error {
	if n <= 0 {
		return fmt.Errorf("ValidateTour: n=%d: %w", n, ErrInvalidInput)
	}
	if len(tour) != n+1 {
		return fmt.Errorf("ValidateTour: length %d, want %d: %w", len(tour), n+1, ErrInvalidInput)
	}
	if tour[0] != start || tour[n] != start {
		return fmt.Errorf("ValidateTour: endpoints %d,%d, want %d: %w", tour[0], tour[n], start, ErrInvalidInput)
	}
	var (
		seen = make([]bool, n)
		i, v int
	)
	for i = 0; i < n; i++ {
		v = tour[i]
		if v < 0 || v >= n {
			return fmt.Errorf("ValidateTour: position %d: city %d outside [0,%d): %w", i, v, n, ErrInvalidInput)
		}
		if seen[v] {
			return fmt.Errorf("ValidateTour: position %d: city %d repeated: %w", i, v, ErrInvalidInput)
		}
		seen[v] = true
	}

	return nil
}

// EqualToursModuloDirection reports whether two closed tours describe the
// same cycle, allowing any rotation and either direction of travel.
// Both arguments use the closed form (first == last).
//
// Complexity: O(n²) worst case, O(n) typical.
func EqualToursModuloDirection(a, b []int) bool {
	if len(a) != len(b) || len(a) < 2 {
		return false
	}
	if a[0] != a[len(a)-1] || b[0] != b[len(b)-1] {
		return false
	}
	var (
		n     = len(a) - 1
		shift int
	)
	for shift = 0; shift < n; shift++ {
		if b[shift] != a[0] {
			continue
		}
		if cyclicMatch(a[:n], b[:n], shift, 1) || cyclicMatch(a[:n], b[:n], shift, -1) {
			return true
		}
	}

	return false
}

// cyclicMatch compares a[k] with b[shift + dir·k mod n] for every k.
func cyclicMatch(a, b []int, shift, dir int) bool {
	n := len(a)
	for k := 0; k < n; k++ {
		if a[k] != b[((shift+dir*k)%n+n)%n] {
			return false
		}
	}

	return true
}
