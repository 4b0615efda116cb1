// Package clk implements chained Lin-Kernighan: the outer loop that
// alternates a double-bridge perturbation ("kick") with a Lin-Kernighan
// pass (package lk) over a live tour (package tourstate), keeping whichever
// tour is shortest seen so far.
package clk

import (
	"math/rand"

	"github.com/chainedlk/clktsp/candidate"
	"github.com/chainedlk/clktsp/geom"
	"github.com/chainedlk/clktsp/lk"
	"github.com/chainedlk/clktsp/tourstate"
)

// walkSteps is how many random candidate-edge hops the walk kick takes
// between each of its three sampled cut points.
const walkSteps = 50

// markDepth is how many tour neighbors outward from a kicked node are
// re-queued for the next Lin-Kernighan pass.
const markDepth = 10

// Kicker perturbs a live tour with the "walk" double-bridge move: the
// default (and only) kick CONCORDE/this implementation supports.
//
// Grounded on heuristic/kick.rs's EKickType::WALK path.
type Kicker struct {
	ns   *geom.NodeSet
	flip *tourstate.Flipper
	cand candidate.Set
	rng  *rand.Rand
}

// NewKicker returns a Kicker operating on flip, using cand's sparse edges
// to pick the random walk's steps.
func NewKicker(ns *geom.NodeSet, flip *tourstate.Flipper, cand candidate.Set, rng *rand.Rand) *Kicker {
	return &Kicker{ns: ns, flip: flip, cand: cand, rng: rng}
}

// Kick applies one double-bridge perturbation to the tour and pushes every
// touched node (plus a short run of its tour neighbors and candidate
// neighbors in both directions) onto queue so the next Lin-Kernighan pass
// re-examines the disturbed area first.
//
// Grounded on BBData::kick in heuristic/kick.rs.
func (k *Kicker) Kick(queue *lk.Queue) {
	// The double bridge needs eight distinct tour nodes; a smaller tour is
	// left unchanged.
	if k.ns.Len() < 8 {
		return
	}

	t1, t2, t3, t4, t5, t6, t7, t8 := k.walkKick()

	if !k.flip.Sequence(t1, t3, t5) {
		t3, t5 = t5, t3
		t4, t6 = t6, t4
	}
	if !k.flip.Sequence(t1, t5, t7) {
		t5, t7 = t7, t5
		t6, t8 = t8, t6
		if !k.flip.Sequence(t1, t3, t5) {
			t3, t5 = t5, t3
			t4, t6 = t6, t4
		}
	}

	k.flip.Flip(t2, t5)
	k.flip.Flip(t3, t7)
	k.flip.Flip(t5, t6)

	k.queueNodeAndNeighbors(queue, t1, false)
	k.queueNodeAndNeighbors(queue, t2, true)
	k.queueNodeAndNeighbors(queue, t3, false)
	k.queueNodeAndNeighbors(queue, t4, true)
	k.queueNodeAndNeighbors(queue, t5, false)
	k.queueNodeAndNeighbors(queue, t6, true)
	k.queueNodeAndNeighbors(queue, t7, false)
	k.queueNodeAndNeighbors(queue, t8, true)
}

// queueNodeAndNeighbors queues tx, then markDepth tour neighbors reached by
// repeatedly stepping toward next (toNext) or prev, then every one of tx's
// sparse candidate neighbors.
func (k *Kicker) queueNodeAndNeighbors(queue *lk.Queue, tx int, toNext bool) {
	queue.Push(tx)

	node := tx
	for i := 0; i < markDepth; i++ {
		if toNext {
			node = k.flip.Next(node)
		} else {
			node = k.flip.Prev(node)
		}
		queue.Push(node)
	}

	for _, nb := range k.cand[tx] {
		queue.Push(nb.ID)
	}
}

// walkKick samples 8 tour positions by taking a continuous random walk over
// the candidate graph, cutting it into three segments of walkSteps hops
// each; it retries the whole walk if any of the 8 sampled nodes collide.
//
// Grounded on BBData::walk_kick in heuristic/kick.rs.
func (k *Kicker) walkKick() (s1, s2, s3, s4, s5, s6, s7, s8 int) {
	s1, s2 = k.firstKicker()

	for {
		old := -1
		n := s2

		advance := func() {
			for i := 0; i < walkSteps; i++ {
				nbrs := k.cand[n]
				j := k.rng.Intn(len(nbrs))
				if old != nbrs[j].ID {
					old = n
					n = nbrs[j].ID
				}
			}
		}

		advance()
		s3 = n
		s4 = k.flip.Next(s3)
		n = s4

		advance()
		s5 = n
		s6 = k.flip.Next(s5)
		n = s6

		advance()
		s7 = n
		s8 = k.flip.Next(s7)

		if allDistinct(s1, s2, s3, s4, s5, s6, s7, s8) {
			return s1, s2, s3, s4, s5, s6, s7, s8
		}
	}
}

func allDistinct(ids ...int) bool {
	seen := make(map[int]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return false
		}
		seen[id] = true
	}
	return true
}

// firstKicker picks the starting edge (t1, t2) for the walk kick: it samples
// a handful of random tour edges and keeps whichever looks most "kickable" —
// the edge whose length exceeds its owner's best candidate edge by the
// widest margin.
//
// Grounded on BBData::first_kicker in heuristic/kick.rs, including its
// documented quirk that `best` is only ever set from the very first sample;
// later samples are compared against that fixed baseline, not updated to
// their own.
func (k *Kicker) firstKicker() (t1, t2 int) {
	n := k.ns.Len()

	pick := func(try int) (a, b int, margin float64) {
		next := k.flip.Next(try)
		prev := k.flip.Prev(try)
		toNext := k.ns.Dist(try, next)
		toPrev := k.ns.Dist(try, prev)
		if toNext >= toPrev {
			a, b = try, next
			margin = toNext - k.ns.Dist(try, k.cand[try][0].ID)
		} else {
			a, b = prev, try
			margin = toPrev - k.ns.Dist(try, k.cand[try][0].ID)
		}
		return a, b, margin
	}

	try1 := k.rng.Intn(n)
	t1, t2, best := pick(try1)

	extraTries := int(float64(n)*0.001) + 10
	for i := 0; i < extraTries; i++ {
		try1 = k.rng.Intn(n)
		a, b, margin := pick(try1)
		if margin > best {
			t1, t2 = a, b
		}
	}

	return t1, t2
}
