package lk

// backtrackLimit is the recursion depth at which Step stops trying every
// candidate in LKOrdering and falls back to StepNoBacktrack's single best
// choice (with Mak-Morton support).
const backtrackLimit = 4

// maxDepth bounds how deep a Step/StepNoBacktrack recursion is allowed to
// go before it must accept whatever gain it has found so far.
const maxDepth = 25

// epsilon is the minimum gain improvement worth acting on; anything at or
// below this is treated as numerical noise rather than a real improvement.
const epsilon = 1.0e-8

// Step performs one level of the backtracking Lin-Kernighan search rooted at
// edge (first, last): it ranks continuations via LKOrdering, tentatively
// applies each as a flip, recurses one level deeper, and undoes the flip if
// neither this level nor any deeper one found an improving close.
//
// Returns a hit count (nonzero iff an accepting move was found somewhere in
// this subtree) and the best gain seen so far along the accepted path.
//
// Grounded on BBData::step in heuristic/main_heuristic.rs, itself citing
// Applegate/Bixby/Chvatal/Cook p.430.
func (s *Searcher) Step(first, last, level int, oldGain, oldGStar float64) (int, float64) {
	if level >= backtrackLimit {
		return s.StepNoBacktrack(first, last, level, oldGain, oldGStar)
	}

	hits := 0
	gStar := oldGStar

	for _, c := range s.LKOrdering(first, last, level, oldGain) {
		this, newLast := c.This, c.NewLast

		gain := oldGain - c.Diff
		val := gain - s.dist(newLast, first)
		if val > gStar {
			gStar = val
			hits++
		}

		s.flip.Flip(last, newLast)

		if level < maxDepth {
			s.marks.MarkAdded(last, this)
			s.marks.MarkDeleted(this, newLast)

			h, g := s.Step(first, newLast, level+1, gain, gStar)
			hits += h
			gStar = g

			s.marks.UnmarkAdded(last, this)
			s.marks.UnmarkDeleted(this, newLast)
		}

		if hits > 0 {
			s.queue.Push(this)
			s.queue.Push(newLast)
			return 1, gStar
		}
		s.flip.Unflip(last, newLast)
	}

	return 0, gStar
}

// StepNoBacktrack is Step's tail end once backtrackLimit has been reached:
// it commits to the single best continuation LKOrderingNoBacktrack finds,
// which may be an ordinary extension from `last` or a Mak-Morton move that
// extends from `first` instead.
//
// Grounded on BBData::step_no_backtracking in heuristic/main_heuristic.rs.
func (s *Searcher) StepNoBacktrack(first, last, level int, oldGain, oldGStar float64) (int, float64) {
	gStar := oldGStar

	cand, makMorton, ok := s.LKOrderingNoBacktrack(first, last)
	if !ok {
		return 0, gStar
	}

	hit := 0
	this, newOther := cand.This, cand.NewLast
	gain := oldGain - cand.Diff

	closeTo := first
	if makMorton {
		closeTo = last
	}
	val := gain - s.dist(newOther, closeTo)
	if val > gStar {
		gStar = val
		hit = 1
	}

	var addedA, addedB, delA, delB int
	if makMorton {
		s.flip.Flip(newOther, first)
		addedA, addedB = first, this
		delA, delB = this, newOther
	} else {
		s.flip.Flip(last, newOther)
		addedA, addedB = last, this
		delA, delB = this, newOther
	}

	if level < maxDepth {
		s.marks.MarkAdded(addedA, addedB)
		s.marks.MarkDeleted(delA, delB)

		var h int
		var g float64
		if makMorton {
			h, g = s.StepNoBacktrack(newOther, last, level+1, gain, gStar)
		} else {
			h, g = s.StepNoBacktrack(first, newOther, level+1, gain, gStar)
		}
		hit += h
		gStar = g

		s.marks.UnmarkAdded(addedA, addedB)
		s.marks.UnmarkDeleted(delA, delB)
	}

	if hit > 0 {
		s.queue.Push(this)
		s.queue.Push(newOther)
		return 1, gStar
	}

	if makMorton {
		s.flip.Unflip(newOther, first)
	} else {
		s.flip.Unflip(last, newOther)
	}
	return 0, gStar
}

// AlternateStep is the secondary recursion improve falls back to when Step
// finds nothing: a fixed-shape 3-or-4-opt move (the "weird" second step)
// tried before giving up on the base edge entirely.
//
// Note this mirrors the original's exact fallthrough behavior: if no
// candidate at any stage ever accepts (hit stays 0 all the way through),
// the function returns 0 even though gStar may have been updated to a
// positive value while only scoring candidates, never committing to one.
//
// Grounded on BBData::alternate_step in heuristic/main_heuristic.rs.
func (s *Searcher) AlternateStep(t1, t2 int, gain float64) float64 {
	gStar := 0.0

	for _, c1 := range s.AlternateLookAhead1(gain, t1, t2) {
		t3, t4 := c1.This, c1.NewLast
		oldGain := gain - c1.Diff
		t4next := s.flip.Next(t4)

		s.marks.MarkAdded(t2, t3)
		s.marks.MarkDeleted(t3, t4)

		s.weird.NextRound()
		s.weird.Mark(t1)
		s.weird.Mark(t2)
		s.weird.Mark(t3)
		s.weird.Mark(t4next)

		if done, result := s.alternateStepStage2(t1, t2, t3, t4, oldGain, gStar); done {
			return result
		}

		s.marks.UnmarkAdded(t2, t3)
		s.marks.UnmarkDeleted(t3, t4)
	}

	return 0.0
}

// alternateStepStage2 implements AlternateLookAhead2's inner loop (the t5/t6
// candidates) plus, when a candidate does not lie in sequence, the deeper
// t7/t8 fallback via alternateStepStage3. Returns (true, gain) iff an
// accepting move was committed, in which case it has already cleared every
// mark it and AlternateStep laid down (t2,t3), (t3,t4), and (t4,t5) before
// returning, so the caller must return immediately without unmarking again.
func (s *Searcher) alternateStepStage2(t1, t2, t3, t4 int, oldGain, gStarIn float64) (bool, float64) {
	gStar := gStarIn

	for _, c2 := range s.AlternateLookAhead2(oldGain, t2, t3, t4) {
		t5, t6 := c2.T5, c2.T6
		s.marks.MarkAdded(t4, t5)

		if c2.Seq {
			gain := oldGain - c2.Diff
			val := gain - s.dist(t6, t1)
			if val > gStar {
				gStar = val
			}

			if !c2.Side {
				s.flip.Flip(t2, t6)
				s.flip.Flip(t5, t3)
			} else {
				s.flip.Flip(t2, t3)
				s.flip.Flip(t5, t2)
				s.flip.Flip(t3, t6)
			}

			s.marks.MarkDeleted(t5, t6)
			hit, g := s.Step(t1, t6, 2, gain, gStar)
			gStar = g
			s.marks.UnmarkDeleted(t5, t6)

			if hit == 0 && gStar > 0.0 {
				hit = 1
			}

			if hit == 0 {
				if !c2.Side {
					s.flip.Unflip(t5, t3)
					s.flip.Unflip(t2, t6)
				} else {
					s.flip.Unflip(t3, t6)
					s.flip.Unflip(t5, t2)
					s.flip.Unflip(t2, t3)
				}
			} else {
				s.marks.UnmarkAdded(t4, t5)
				s.marks.UnmarkAdded(t2, t3)
				s.marks.UnmarkDeleted(t3, t4)
				s.queue.Push(t3)
				s.queue.Push(t4)
				s.queue.Push(t5)
				s.queue.Push(t6)
				return true, gStar
			}
		} else {
			tG := oldGain - c2.Diff
			s.marks.MarkDeleted(t5, t6)

			done, result := s.alternateStepStage3(t1, t2, t3, t4, t5, t6, tG, gStar)
			gStar = result
			s.marks.UnmarkDeleted(t5, t6)
			if done {
				return true, gStar
			}
		}

		s.marks.UnmarkAdded(t4, t5)
	}

	return false, gStar
}

// alternateStepStage3 implements AlternateLookAhead3's inner loop (the t7/t8
// candidates), the deepest level AlternateStep reaches. Returns (true, gain)
// iff an accepting move was committed, in which case it has already cleared
// every mark laid down by stage1, stage2, and itself.
func (s *Searcher) alternateStepStage3(t1, t2, t3, t4, t5, t6 int, tG, gStarIn float64) (bool, float64) {
	gStar := gStarIn

	for _, c3 := range s.AlternateLookAhead3(tG, t2, t3, t6) {
		t7, t8 := c3.T7, c3.T8
		gain := tG - c3.Diff
		val := gain - s.dist(t8, t1)
		if val > gStar {
			gStar = val
		}

		if !c3.Side {
			s.flip.Flip(t2, t8)
			s.flip.Flip(t7, t3)
			s.flip.Flip(t4, t6)
		} else {
			s.flip.Flip(t2, t6)
			s.flip.Flip(t6, t8)
			s.flip.Flip(t4, t2)
		}

		s.marks.MarkAdded(t6, t7)
		s.marks.MarkDeleted(t7, t8)

		hit, g := s.Step(t1, t8, 3, gain, gStar)
		gStar = g

		s.marks.UnmarkAdded(t6, t7)
		s.marks.UnmarkDeleted(t7, t8)

		if hit == 0 && gStar > 0.0 {
			hit = 1
		}

		if hit == 0 {
			if !c3.Side {
				s.flip.Unflip(t4, t6)
				s.flip.Unflip(t7, t3)
				s.flip.Unflip(t2, t8)
			} else {
				s.flip.Unflip(t4, t2)
				s.flip.Unflip(t6, t8)
				s.flip.Unflip(t2, t6)
			}
			continue
		}

		s.marks.UnmarkAdded(t4, t5)
		s.marks.UnmarkAdded(t2, t3)
		s.marks.UnmarkDeleted(t5, t6)
		s.marks.UnmarkDeleted(t3, t4)

		s.queue.Push(t3)
		s.queue.Push(t4)
		s.queue.Push(t5)
		s.queue.Push(t6)
		s.queue.Push(t7)
		s.queue.Push(t8)
		return true, gStar
	}

	return false, gStar
}
