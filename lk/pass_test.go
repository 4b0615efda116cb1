package lk

import (
	"math/rand"
	"testing"

	"github.com/chainedlk/clktsp/candidate"
	"github.com/chainedlk/clktsp/geom"
	"github.com/chainedlk/clktsp/tourstate"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestMarkTourEdgesAddedPrimesAndClearsStaleMarks(t *testing.T) {
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
	flip, err := tourstate.New([]int{0, 1, 2, 3})
	if err != nil {
		t.Fatalf("tourstate.New: %v", err)
	}

	s := NewSearcher(ns, flip, candidate.Set{})

	// A mark left over from some earlier, unrelated round must not survive
	// MarkTourEdgesAdded's clear.
	s.marks.MarkDeleted(0, 2)

	s.MarkTourEdgesAdded([]int{0, 1, 2, 3})

	if s.marks.IsDeleted(0, 2) {
		t.Fatalf("MarkTourEdgesAdded should clear marks left by a previous round")
	}
	for _, e := range [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}} {
		if !s.marks.IsAdded(e[0], e[1]) {
			t.Fatalf("expected tour edge (%d,%d) to be marked added", e[0], e[1])
		}
	}
	// Only the cycle's own edges should be primed.
	if s.marks.IsAdded(0, 2) || s.marks.IsAdded(1, 3) {
		t.Fatalf("MarkTourEdgesAdded should not mark non-tour edges")
	}
}
