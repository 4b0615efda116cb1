package lk

// Improve tries to find an improving Lin-Kernighan move rooted at the tour
// edge (base, next(base)): it deletes that edge, searches for a gainful
// reconnection via Step (falling back to AlternateStep if Step finds
// nothing), then restores the deletion mark. Nodes touched by an accepted
// move are queued for re-processing.
//
// Grounded on BBData::improve in heuristic/main_heuristic.rs.
func (s *Searcher) Improve(base int) float64 {
	baseNext := s.flip.Next(base)
	gain := s.dist(base, baseNext)

	s.marks.MarkDeleted(base, baseNext)

	hit, gStar := s.Step(base, baseNext, 0, gain, 0.0)
	if hit == 0 {
		gStar = s.AlternateStep(base, baseNext, gain)
	}

	s.marks.UnmarkDeleted(base, baseNext)

	if gStar > epsilon {
		s.queue.Push(base)
		s.queue.Push(baseNext)
	}
	return gStar
}

// Seed replaces the work queue's contents with order. Used once, before the
// first Drain of a CLK round; subsequent rounds feed the queue via a kick
// instead (a kick pushes onto whatever the previous Drain left behind,
// which is always empty, without clearing it first).
func (s *Searcher) Seed(order []int) { s.queue.Seed(order) }

// MarkTourEdgesAdded clears the edge-marking table and marks every edge of
// cycle ADDED, priming IsAdded so the first Drain of a CLK round cannot
// immediately re-add an edge the tour already has.
//
// Grounded on chained_lin_kernighan's edge_markings.clear() followed by its
// mark_edge_as_added loop over the initial tour's edges, both of which run
// once per CLK round, before the round's first lin_kernighan() call.
func (s *Searcher) MarkTourEdgesAdded(cycle []int) {
	s.marks.Clear()
	for i, id := range cycle {
		next := cycle[(i+1)%len(cycle)]
		s.marks.MarkAdded(id, next)
	}
}

// Queue exposes the work queue so a kick (package clk) can push the nodes
// it disturbed onto it directly, ahead of the next Drain.
func (s *Searcher) Queue() *Queue { return s.queue }

// Drain calls Improve on every queued node until none remain — Improve
// re-queues every node touched by an accepted move, so the queue keeps
// growing with fresh work until the tour reaches a local optimum under this
// neighborhood — then reports the resulting tour and its cost.
//
// Grounded on BBData::lin_kernighan in heuristic/main_heuristic.rs.
func (s *Searcher) Drain() ([]int, float64) {
	for {
		id, ok := s.queue.Pop()
		if !ok {
			break
		}
		s.Improve(id)
	}

	cycle := s.flip.AsCycle()
	cost := s.flip.Cost(s.ns.Dist)
	return cycle, cost
}

// Pass is a convenience wrapper combining Seed and Drain for standalone use
// (e.g. a single LK pass with no surrounding kick loop).
func (s *Searcher) Pass(seed []int) ([]int, float64) {
	s.Seed(seed)
	return s.Drain()
}
