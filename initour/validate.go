package initour

import "github.com/chainedlk/clktsp/geom"

// Validate walks an edge set as an adjacency multiset and returns the
// induced cycle (as a permutation of [0, n) starting at node 0) iff every
// node has degree exactly 2 and the walk covers every node exactly once
// before returning to the start (spec.md §4.4).
func Validate(edges []geom.Edge, n int) ([]int, error) {
	adj := make([][2]int, n)
	for i := range adj {
		adj[i] = [2]int{-1, -1}
	}
	degree := make([]int, n)

	addHalf := func(node, other int) error {
		if degree[node] >= 2 {
			return ErrInvalidEdgeSet
		}
		adj[node][degree[node]] = other
		degree[node]++
		return nil
	}

	for _, e := range edges {
		a, b := e.Lo(), e.Hi()
		if a < 0 || a >= n || b < 0 || b >= n {
			return nil, ErrInvalidEdgeSet
		}
		if err := addHalf(a, b); err != nil {
			return nil, err
		}
		if err := addHalf(b, a); err != nil {
			return nil, err
		}
	}

	for id := 0; id < n; id++ {
		if degree[id] != 2 {
			return nil, ErrInvalidEdgeSet
		}
	}

	cycle := make([]int, 0, n)
	visited := make([]bool, n)
	cycle = append(cycle, 0)
	visited[0] = true
	prev, cur := 0, adj[0][0]
	for cur != 0 {
		if visited[cur] {
			return nil, ErrInvalidEdgeSet
		}
		cycle = append(cycle, cur)
		visited[cur] = true

		next := adj[cur][0]
		if next == prev {
			next = adj[cur][1]
		}
		prev, cur = cur, next
	}

	if len(cycle) != n {
		return nil, ErrInvalidEdgeSet
	}
	return cycle, nil
}
