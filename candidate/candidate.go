// Package candidate builds the sparse candidate-edge graph that bounds the
// Lin–Kernighan search space (spec.md §4.3). It is built once per run, from
// the k-d tree, and is immutable thereafter — every lookup in package lk
// reads through the Set without ever mutating it.
package candidate

import (
	"sort"

	"github.com/chainedlk/clktsp/geom"
	"github.com/chainedlk/clktsp/kdtree"
)

// DefaultK is the default quadrant-nearest parameter (spec.md §6, CLI flag
// -q/--quadrant-nearest-count).
const DefaultK = 2

// Set is a per-node sorted list of "good neighbours", symmetric: b in
// Set[a] iff a in Set[b]. Each list has length >= 1 and is sorted ascending
// by distance from its owner.
type Set map[int][]kdtree.Neighbor

// Build constructs the candidate set for every node in ns, using tree for
// quadrant-nearest queries (spec.md §4.3):
//
//  1. For each node q, collect QuadrantNearest(q, k).
//  2. Take the first min(4k, len) results and add each endpoint to both
//     endpoints' lists (so the graph is symmetric by construction).
//  3. Sort every list by ascending distance from its owner.
//  4. Run MakeSymmetric defensively, in case step 2's insertion missed a
//     back-edge (e.g. ties at the 4k cutoff breaking differently from the
//     two endpoints' perspectives).
//
// Complexity: O(n log n) expected (dominated by n QuadrantNearest calls).
func Build(ns *geom.NodeSet, tree *kdtree.Tree, k int) Set {
	if k <= 0 {
		k = DefaultK
	}
	limit := 4 * k

	set := make(Set, ns.Len())
	for q := 0; q < ns.Len(); q++ {
		neighbors := tree.QuadrantNearest(q, k)
		if len(neighbors) > limit {
			neighbors = neighbors[:limit]
		}
		for _, nb := range neighbors {
			addNeighbor(set, q, kdtree.Neighbor{ID: nb.ID, Dist: nb.Dist})
			addNeighbor(set, nb.ID, kdtree.Neighbor{ID: q, Dist: nb.Dist})
		}
	}

	for q := range set {
		sortByDistance(set[q])
	}

	MakeSymmetric(set, ns)

	return set
}

// addNeighbor appends nb to a's list unless a already has nb.ID present.
func addNeighbor(set Set, a int, nb kdtree.Neighbor) {
	for _, existing := range set[a] {
		if existing.ID == nb.ID {
			return
		}
	}
	set[a] = append(set[a], nb)
}

// MakeSymmetric is the defensive second pass described in spec.md §4.3:
// for every y in set[x], ensure x is present in set[y] (inserted in sorted
// position, not merely appended).
func MakeSymmetric(set Set, ns *geom.NodeSet) {
	for x, neighbors := range set {
		for _, nb := range neighbors {
			y := nb.ID
			if hasNeighbor(set[y], x) {
				continue
			}
			set[y] = append(set[y], kdtree.Neighbor{ID: x, Dist: ns.Dist(y, x)})
			sortByDistance(set[y])
		}
	}
}

func hasNeighbor(list []kdtree.Neighbor, id int) bool {
	for _, nb := range list {
		if nb.ID == id {
			return true
		}
	}
	return false
}

func sortByDistance(list []kdtree.Neighbor) {
	sort.Slice(list, func(i, j int) bool {
		if list[i].Dist != list[j].Dist {
			return list[i].Dist < list[j].Dist
		}
		return list[i].ID < list[j].ID
	})
}
