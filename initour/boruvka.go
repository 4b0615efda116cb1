package initour

import (
	"math"
	"sort"

	"github.com/chainedlk/clktsp/geom"
	"github.com/chainedlk/clktsp/kdtree"
)

// noTail marks a node with no recorded open-path endpoint yet.
const noTail = -1

// tailTracker maintains, for every node currently at degree < 2, the other
// open endpoint of the path fragment it belongs to ("tail"), so a greedy
// nearest-neighbour pass never closes a sub-cycle before every node has
// been connected (spec.md §4.4: "tracking segment tails to avoid forming
// sub-cycles prematurely").
//
// Grounded on the tails map/array in
// initial_tour/boruvka.rs and initial_tour/quick_boruvka.rs.
type tailTracker struct {
	tail []int
}

func newTailTracker(n int) *tailTracker {
	t := make([]int, n)
	for i := range t {
		t[i] = noTail
	}
	return &tailTracker{tail: t}
}

// link records that a and b were just joined by a new edge, merging their
// path fragments and updating both fragments' open endpoints.
func (t *tailTracker) link(a, b int) {
	aTail, bTail := t.tail[a], t.tail[b]
	switch {
	case aTail == noTail && bTail == noTail:
		t.tail[a], t.tail[b] = b, a
	case aTail == noTail:
		t.tail[a] = bTail
		t.tail[bTail] = a
	case bTail == noTail:
		t.tail[b] = aTail
		t.tail[aTail] = b
	default:
		t.tail[aTail] = bTail
		t.tail[bTail] = aTail
	}
}

// eligibleNeighbor finds the single nearest enabled node to id, temporarily
// disabling id's own tail (if any) so the query never reconnects a
// fragment to itself and closes a premature sub-cycle.
func eligibleNeighbor(tree *kdtree.Tree, tt *tailTracker, id int) (int, bool) {
	tail := tt.tail[id]
	if tail != noTail {
		mustToggle(tree.Disable(tail))
		defer func() { mustToggle(tree.Enable(tail)) }()
	}
	nbrs := tree.Nearests(id, 1, kdtree.Unbounded())
	if len(nbrs) == 0 {
		return 0, false
	}
	return nbrs[0].ID, true
}

// mustToggle panics on a k-d tree Enable/Disable error: every ID passed
// through this package comes from the node set the tree was built over, so
// ErrIDOutOfRange here means an invariant of the builder itself is broken.
func mustToggle(err error) {
	if err != nil {
		panic("initour: " + err.Error())
	}
}

// QuickBoruvka builds an initial tour by repeatedly sweeping nodes in a
// single, fixed ascending-x order, connecting each still-open node (degree
// < 2) to its nearest eligible k-d-tree neighbour, until exactly one edge
// short of a full cycle; the two remaining degree-1 endpoints are then
// joined to close it (spec.md §4.4).
//
// Grounded on initial_tour/quick_boruvka.rs.
func QuickBoruvka(ns *geom.NodeSet, tree *kdtree.Tree) ([]geom.Edge, error) {
	n := ns.Len()
	if n < 3 {
		return nil, ErrTooFewNodes
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		return ns.Pos(order[i]).X < ns.Pos(order[j]).X
	})

	degree := make([]int, n)
	tt := newTailTracker(n)
	edges := make([]geom.Edge, 0, n)

	for len(edges)+1 < n {
		progressed := false
		for _, id := range order {
			if degree[id] >= 2 {
				continue
			}
			nb, ok := eligibleNeighbor(tree, tt, id)
			if !ok {
				continue
			}

			if degree[id] > 0 {
				mustToggle(tree.Disable(id))
			}
			if degree[nb] > 0 {
				mustToggle(tree.Disable(nb))
			}
			degree[id]++
			degree[nb]++
			edges = append(edges, geom.NewEdge(id, nb))
			tt.link(id, nb)
			progressed = true
		}
		if !progressed {
			return nil, ErrIncompleteConstruction
		}
	}

	return closeWithLonelyPair(ns, edges, degree)
}

// Boruvka builds an initial tour the same way as QuickBoruvka, except each
// outer round recomputes every still-open node's nearest-neighbour
// distance first and processes that round's nodes in ascending
// nearest-distance order rather than a fixed x order (spec.md §4.4: "Any
// of {Random shuffle; Borůvka; Quick-Borůvka}").
//
// Grounded on initial_tour/boruvka.rs.
func Boruvka(ns *geom.NodeSet, tree *kdtree.Tree) ([]geom.Edge, error) {
	n := ns.Len()
	if n < 3 {
		return nil, ErrTooFewNodes
	}

	degree := make([]int, n)
	tt := newTailTracker(n)
	edges := make([]geom.Edge, 0, n)

	for len(edges)+1 < n {
		type candidate struct {
			id, nb int
			dist   float64
		}
		remaining := make([]candidate, 0, n)
		for id := 0; id < n; id++ {
			if degree[id] >= 2 {
				continue
			}
			nb, ok := eligibleNeighbor(tree, tt, id)
			dist := math.Inf(1)
			if ok {
				dist = ns.Dist(id, nb)
			}
			remaining = append(remaining, candidate{id: id, nb: nb, dist: dist})
		}
		sort.Slice(remaining, func(i, j int) bool {
			return remaining[i].dist < remaining[j].dist
		})

		progressed := false
		for _, c := range remaining {
			if degree[c.id] >= 2 || math.IsInf(c.dist, 1) {
				continue
			}
			if degree[c.nb] >= 2 {
				continue
			}
			if tt.tail[c.id] == c.nb {
				continue
			}

			if degree[c.id] > 0 {
				mustToggle(tree.Disable(c.id))
			}
			if degree[c.nb] > 0 {
				mustToggle(tree.Disable(c.nb))
			}
			degree[c.id]++
			degree[c.nb]++
			edges = append(edges, geom.NewEdge(c.id, c.nb))
			tt.link(c.id, c.nb)
			progressed = true
		}
		if !progressed {
			return nil, ErrIncompleteConstruction
		}
	}

	return closeWithLonelyPair(ns, edges, degree)
}

// closeWithLonelyPair joins the exactly-two remaining degree-1 nodes,
// completing the Hamiltonian cycle.
func closeWithLonelyPair(ns *geom.NodeSet, edges []geom.Edge, degree []int) ([]geom.Edge, error) {
	lonely := make([]int, 0, 2)
	for id, d := range degree {
		if d < 2 {
			lonely = append(lonely, id)
		}
	}
	if len(lonely) != 2 {
		return nil, ErrIncompleteConstruction
	}
	edges = append(edges, geom.NewEdge(lonely[0], lonely[1]))
	return edges, nil
}
