package lk

import (
	"math"
	"math/rand"
	"testing"

	"github.com/chainedlk/clktsp/candidate"
	"github.com/chainedlk/clktsp/geom"
	"github.com/chainedlk/clktsp/kdtree"
	"github.com/chainedlk/clktsp/tourstate"
	"gonum.org/v1/gonum/spatial/r2"
)

// octagonNodeSet lays out 8 nodes evenly around a circle.
func octagonNodeSet(t *testing.T) *geom.NodeSet {
	t.Helper()
	nodes := make([]geom.Node, 8)
	for i := range nodes {
		theta := 2 * math.Pi * float64(i) / float64(len(nodes))
		nodes[i] = geom.Node{ID: i, Pos: r2.Vec{X: 10 * math.Cos(theta), Y: 10 * math.Sin(theta)}}
	}
	ns, err := geom.NewNodeSet(nodes)
	if err != nil {
		t.Fatalf("NewNodeSet: %v", err)
	}
	return ns
}

// TestAlternateStepLeavesNoStaleMarks calls AlternateStep for every ordered
// (t1, t2) tour-edge pair on a crossed tour over octagonNodeSet, with gain
// 0.0. Every candidate edge is longer than that gain, so
// AlternateLookAhead1 prunes them all and each call returns before any
// flip. AlternateStep must still return with the shared EdgeMarks table
// back to empty: a stale mark here would corrupt every later
// Step/AlternateStep call's pruning for the rest of the pass.
func TestAlternateStepLeavesNoStaleMarks(t *testing.T) {
	ns := octagonNodeSet(t)
	tree := kdtree.Build(ns, rand.New(rand.NewSource(11)))
	cand := candidate.Build(ns, tree, candidate.DefaultK)

	// A scrambled, heavily self-crossing cycle.
	crossed, err := tourstate.New([]int{0, 4, 1, 5, 2, 6, 3, 7})
	if err != nil {
		t.Fatalf("tourstate.New: %v", err)
	}

	s := NewSearcher(ns, crossed, cand)

	for t1 := 0; t1 < ns.Len(); t1++ {
		for _, t2 := range []int{s.flip.Next(t1), s.flip.Prev(t1)} {
			s.AlternateStep(t1, t2, 0.0)
			assertNoLiveMarks(t, s.marks, t1, t2)
		}
	}
}

// assertNoLiveMarks fails the test if any edge in m is still ADDED or
// DELETED. UnmarkAdded/UnmarkDeleted set an entry back to markNone rather
// than deleting its map key, so an empty-map check would not catch a
// mark left live by mistake — every entry must be inspected by value.
func assertNoLiveMarks(t *testing.T, m *EdgeMarks, t1, t2 int) {
	t.Helper()
	for edge, state := range m.state {
		if state != markNone {
			t.Fatalf("AlternateStep(%d, %d) left edge %v in state %v instead of unmarked", t1, t2, edge, state)
		}
	}
}
