package lk_test

import (
	"math/rand"
	"testing"

	"github.com/chainedlk/clktsp/candidate"
	"github.com/chainedlk/clktsp/geom"
	"github.com/chainedlk/clktsp/kdtree"
	"github.com/chainedlk/clktsp/lk"
	"github.com/chainedlk/clktsp/tourstate"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestEdgeMarksRoundTrip(t *testing.T) {
	m := lk.NewEdgeMarks()
	if m.IsAdded(1, 2) || m.IsDeleted(1, 2) {
		t.Fatalf("fresh marks table should report no marks")
	}

	m.MarkAdded(1, 2)
	if !m.IsAdded(1, 2) || !m.IsAdded(2, 1) {
		t.Fatalf("MarkAdded should be order-independent")
	}
	m.UnmarkAdded(1, 2)
	if m.IsAdded(1, 2) {
		t.Fatalf("UnmarkAdded should clear the mark")
	}

	m.MarkDeleted(3, 4)
	if !m.IsDeleted(4, 3) {
		t.Fatalf("MarkDeleted should be order-independent")
	}
}

func TestWeirdMarksRoundsExpire(t *testing.T) {
	w := lk.NewWeirdMarks()
	w.NextRound()
	w.Mark(5)
	if !w.IsMarked(5) {
		t.Fatalf("node marked this round should report marked")
	}
	w.NextRound()
	if w.IsMarked(5) {
		t.Fatalf("advancing the round should implicitly clear previous marks")
	}
}

func TestQueueDedupsPendingNodes(t *testing.T) {
	q := lk.NewQueue()
	q.Push(1)
	q.Push(2)
	q.Push(1)
	if q.Len() != 2 {
		t.Fatalf("Queue.Len() = %d, want 2 after pushing a duplicate", q.Len())
	}

	id, ok := q.Pop()
	if !ok || id != 1 {
		t.Fatalf("expected FIFO order, got (%d, %v)", id, ok)
	}

	q.Push(1) // no longer pending: re-pushable
	if q.Len() != 2 {
		t.Fatalf("Queue.Len() = %d, want 2 after re-pushing a popped node", q.Len())
	}
}

// squareNodeSet lays out 4 nodes at the corners of a unit square, in an
// order (0,1,2,3 going around the square) whose Euclidean tour is already
// optimal — used as a quick sanity instance for Searcher plumbing.
func squareNodeSet(t *testing.T) *geom.NodeSet {
	t.Helper()
	nodes := []geom.Node{
		{ID: 0, Pos: r2.Vec{X: 0, Y: 0}},
		{ID: 1, Pos: r2.Vec{X: 1, Y: 0}},
		{ID: 2, Pos: r2.Vec{X: 1, Y: 1}},
		{ID: 3, Pos: r2.Vec{X: 0, Y: 1}},
	}
	ns, err := geom.NewNodeSet(nodes)
	if err != nil {
		t.Fatalf("NewNodeSet: %v", err)
	}
	return ns
}

func TestPassNeverWorsensACrossedTour(t *testing.T) {
	ns := squareNodeSet(t)
	tree := kdtree.Build(ns, rand.New(rand.NewSource(7)))
	cand := candidate.Build(ns, tree, candidate.DefaultK)

	// 0 -> 2 -> 1 -> 3 -> 0 crosses itself; the optimal cycle visits the
	// square's corners in order and is strictly shorter.
	crossed, err := tourstate.New([]int{0, 2, 1, 3})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	before := crossed.Cost(ns.Dist)

	searcher := lk.NewSearcher(ns, crossed, cand)
	cycle, after := searcher.Pass([]int{0, 1, 2, 3})

	if after > before {
		t.Fatalf("Pass worsened the tour: before=%v after=%v", before, after)
	}

	seen := make([]bool, ns.Len())
	for _, id := range cycle {
		if seen[id] {
			t.Fatalf("Pass produced a cycle with a repeated node: %v", cycle)
		}
		seen[id] = true
	}
	if len(cycle) != ns.Len() {
		t.Fatalf("Pass produced a cycle of length %d, want %d", len(cycle), ns.Len())
	}
}

func TestBreadthNarrowsWithDepth(t *testing.T) {
	ns := squareNodeSet(t)
	tree := kdtree.Build(ns, rand.New(rand.NewSource(9)))
	cand := candidate.Build(ns, tree, candidate.DefaultK)
	searcher := lk.NewSearcher(ns, mustFlipper(t, []int{0, 1, 2, 3}), cand)

	// breadth() itself is unexported, but LKOrdering's truncation behavior
	// is observable indirectly: deeper levels never return more candidates
	// than shallower ones for the same (first, last, gain).
	shallow := searcher.LKOrdering(0, 1, 0, 1e9)
	deep := searcher.LKOrdering(0, 1, 10, 1e9)
	if len(deep) > len(shallow) {
		t.Fatalf("expected deeper levels to never return more candidates than shallow ones")
	}
}

func mustFlipper(t *testing.T, cycle []int) *tourstate.Flipper {
	t.Helper()
	f, err := tourstate.New(cycle)
	if err != nil {
		t.Fatalf("tourstate.New: %v", err)
	}
	return f
}
