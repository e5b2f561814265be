package tsp

import (
	"math"
	"time"

	"github.com/golang/glog"

	"github.com/katalvlaran/tspkit/matrix"
)

// SolveGreedy builds a tour by repeatedly moving to the nearest unvisited
// city, starting from Options.StartVertex (default 0), then returning to the
// start.
//
// Ties are broken towards the lowest city index, so the result is fully
// determined by the matrix. The matrix need not be symmetric; the greedy step
// reads d[current][candidate]. A single city yields the tour [s, s] of cost 0.
//
// Errors: ErrInvalidInput for a malformed matrix or start vertex.
// Complexity: O(N²) time, O(N²) space for the prefetched matrix.
func SolveGreedy(dist matrix.Matrix, opts ...Option) (TSResult, error) {
	o := gatherOptions(opts...)
	w, n, err := prefetch("SolveGreedy", dist, 1)
	if err != nil {
		return TSResult{}, err
	}
	if err = validateStartVertex("SolveGreedy", n, o.StartVertex); err != nil {
		return TSResult{}, err
	}

	started := time.Now()
	tour, cost := nearestNeighbor(w, n, o.StartVertex)
	glog.V(1).Infof("tsp: greedy tour over %d cities in %v: cost=%.6f tour=%v",
		n, time.Since(started), cost, tour)

	return TSResult{Tour: tour, Cost: cost}, nil
}

// nearestNeighbor runs the greedy construction on a validated row-major
// matrix. The returned cost is the literal sum of the traversed edges.
func nearestNeighbor(w []float64, n, start int) ([]int, float64) {
	var (
		visited = make([]bool, n)
		tour    = make([]int, 0, n+1)
		cur     = start
		total   float64
		step, v int
		next    int
		best, d float64
	)
	tour = append(tour, start)
	visited[start] = true

	for step = 1; step < n; step++ {
		next, best = -1, math.Inf(1)
		for v = 0; v < n; v++ {
			if visited[v] {
				continue
			}
			// Strict < keeps the lowest index among equal distances.
			if d = w[cur*n+v]; d < best {
				next, best = v, d
			}
		}
		visited[next] = true
		tour = append(tour, next)
		total += best
		cur = next
	}
	total += w[cur*n+start]
	tour = append(tour, start)

	return tour, total
}
