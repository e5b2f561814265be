package tsp

import "fmt"

// edgeThreshold separates selected (x > 0.5) from unselected binary edges.
const edgeThreshold = 0.5

// extractTour decodes a successor structure into a closed tour from city 0.
// edge(i, j) returns the solver's value of x[i,j] for i != j.
//
// From the current city the first j (in index order) with edge > 0.5 is
// taken. Decoding fails when a city has no selected outgoing edge, when the
// chosen successor was already visited (a subtour), or when the last city
// does not lead back to 0.
//
// Errors: *ExtractionError.
// Complexity: O(n²) edge evaluations.
func extractTour(n int, edge func(i, j int) float64) ([]int, error) {
	var (
		tour = make([]int, 0, n+1)
		seen = make([]bool, n)
		cur  = 0
		next int
		j    int
	)
	tour = append(tour, 0)
	seen[0] = true

	for len(tour) < n {
		next = -1
		for j = 0; j < n; j++ {
			if j != cur && edge(cur, j) > edgeThreshold {
				next = j
				break
			}
		}
		if next < 0 {
			return nil, &ExtractionError{City: cur, Visited: len(tour), Detail: "no selected outgoing edge"}
		}
		if seen[next] {
			return nil, &ExtractionError{
				City:    cur,
				Visited: len(tour),
				Detail:  fmt.Sprintf("successor %d already visited", next),
			}
		}
		seen[next] = true
		tour = append(tour, next)
		cur = next
	}
	if n > 1 && edge(cur, 0) <= edgeThreshold {
		return nil, &ExtractionError{City: cur, Visited: len(tour), Detail: "last city does not return to 0"}
	}
	tour = append(tour, 0)

	return tour, nil
}
