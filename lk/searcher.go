package lk

import (
	"github.com/chainedlk/clktsp/candidate"
	"github.com/chainedlk/clktsp/geom"
	"github.com/chainedlk/clktsp/kdtree"
	"github.com/chainedlk/clktsp/tourstate"
)

// Searcher bundles everything a Lin-Kernighan pass needs: the node set, the
// live tour (Flipper), the sparse candidate-edge graph to search over, and
// the per-pass bookkeeping (edge marks, weird marks, work queue).
//
// Grounded on BBData in bb_data.rs, which plays the same role for the
// original implementation (it owns the flipper, the sparse edge map, the
// node queue and both marking tables as fields of one struct).
type Searcher struct {
	ns    *geom.NodeSet
	flip  *tourstate.Flipper
	cand  candidate.Set
	marks *EdgeMarks
	weird *WeirdMarks
	queue *Queue
}

// NewSearcher builds a Searcher over an already-constructed tour and
// candidate graph. The caller owns flip and keeps using it after a Pass
// returns — Pass mutates it in place via repeated Flip/Unflip calls.
func NewSearcher(ns *geom.NodeSet, flip *tourstate.Flipper, cand candidate.Set) *Searcher {
	return &Searcher{
		ns:    ns,
		flip:  flip,
		cand:  cand,
		marks: NewEdgeMarks(),
		weird: NewWeirdMarks(),
		queue: NewQueue(),
	}
}

// Flipper exposes the tour this Searcher operates on.
func (s *Searcher) Flipper() *tourstate.Flipper { return s.flip }

// dist is a shorthand for the node set's distance oracle.
func (s *Searcher) dist(a, b int) float64 { return s.ns.Dist(a, b) }

// neighbors returns the sparse candidate list of id, already sorted
// ascending by distance by candidate.Build.
func (s *Searcher) neighbors(id int) []kdtree.Neighbor {
	return s.cand[id]
}
