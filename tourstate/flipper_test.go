package tourstate_test

import (
	"testing"

	"github.com/chainedlk/clktsp/geom"
	"github.com/chainedlk/clktsp/tourstate"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestNewRejectsEmptyAndMalformedCycles(t *testing.T) {
	if _, err := tourstate.New(nil); err != tourstate.ErrInvalidCycle {
		t.Fatalf("expected ErrInvalidCycle for empty cycle, got %v", err)
	}
	if _, err := tourstate.New([]int{0, 1, 1}); err != tourstate.ErrInvalidCycle {
		t.Fatalf("expected ErrInvalidCycle for repeated id, got %v", err)
	}
	if _, err := tourstate.New([]int{0, 1, 3}); err != tourstate.ErrInvalidCycle {
		t.Fatalf("expected ErrInvalidCycle for out-of-range id, got %v", err)
	}
}

func TestAsCycleRoundTripsTheInitialOrder(t *testing.T) {
	f, err := tourstate.New([]int{0, 1, 2, 3, 4, 5})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got := f.AsCycle()
	want := []int{0, 1, 2, 3, 4, 5}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("AsCycle = %v, want %v", got, want)
		}
	}
}

func TestNextPrevAreInverses(t *testing.T) {
	f, err := tourstate.New([]int{0, 1, 2, 3, 4, 5})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for id := 0; id < f.Len(); id++ {
		if f.Prev(f.Next(id)) != id {
			t.Fatalf("Prev(Next(%d)) != %d", id, id)
		}
		if f.Next(f.Prev(id)) != id {
			t.Fatalf("Next(Prev(%d)) != %d", id, id)
		}
	}
}

func assertIsPermutation(t *testing.T, cycle []int, n int) {
	t.Helper()
	seen := make([]bool, n)
	for _, id := range cycle {
		if id < 0 || id >= n || seen[id] {
			t.Fatalf("AsCycle is not a valid permutation: %v", cycle)
		}
		seen[id] = true
	}
	if len(cycle) != n {
		t.Fatalf("AsCycle length = %d, want %d", len(cycle), n)
	}
}

// TestFlipThenUnflipIsIdentity is the round-trip invariant: after Flip(x,y)
// followed by Unflip(x,y), AsCycle equals the pre-call cycle element-wise.
func TestFlipThenUnflipIsIdentity(t *testing.T) {
	f, err := tourstate.New([]int{0, 1, 2, 3, 4, 5})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	before := f.AsCycle()
	f.Flip(0, 3)
	assertIsPermutation(t, f.AsCycle(), 6)

	f.Unflip(0, 3)
	got := f.AsCycle()
	for i := range before {
		if got[i] != before[i] {
			t.Fatalf("Flip(0,3) then Unflip(0,3): AsCycle = %v, want %v", got, before)
		}
	}
}

func TestUnflipRequiresLIFOOrder(t *testing.T) {
	f, err := tourstate.New([]int{0, 1, 2, 3, 4, 5})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	f.Flip(0, 3)

	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected Unflip with mismatched args to panic")
		}
	}()
	f.Unflip(1, 4)
}

// TestSequence mirrors the documented scenario: cycle [0,1,2,3,4,5],
// sequence(0,2,4) is true, sequence(0,4,2) is false.
func TestSequence(t *testing.T) {
	f, err := tourstate.New([]int{0, 1, 2, 3, 4, 5})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !f.Sequence(0, 2, 4) {
		t.Fatalf("Sequence(0,2,4) = false, want true")
	}
	if f.Sequence(0, 4, 2) {
		t.Fatalf("Sequence(0,4,2) = true, want false")
	}
}

func TestCostSumsAroundTheCycle(t *testing.T) {
	nodes := []geom.Node{
		{ID: 0, Pos: r2.Vec{X: 0, Y: 0}},
		{ID: 1, Pos: r2.Vec{X: 3, Y: 0}},
		{ID: 2, Pos: r2.Vec{X: 3, Y: 4}},
	}
	ns, err := geom.NewNodeSet(nodes)
	if err != nil {
		t.Fatalf("NewNodeSet: %v", err)
	}
	f, err := tourstate.New([]int{0, 1, 2})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got := f.Cost(ns.Dist)
	expected := ns.Dist(0, 1) + ns.Dist(1, 2) + ns.Dist(2, 0)
	if got != expected {
		t.Fatalf("Cost = %v, want %v", got, expected)
	}
}

func TestAdjacentCaseFlip(t *testing.T) {
	f, err := tourstate.New([]int{0, 1, 2, 3, 4, 5})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	// next(2) == 3, so Flip(2,3) hits the adjacent/single-node splice path.
	f.Flip(2, 3)
	cycle := f.AsCycle()
	if len(cycle) != 6 {
		t.Fatalf("AsCycle length changed after adjacent flip: %v", cycle)
	}
	f.Unflip(2, 3)
	got := f.AsCycle()
	want := []int{0, 1, 2, 3, 4, 5}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("after Unflip(2,3): AsCycle = %v, want %v", got, want)
		}
	}
}
