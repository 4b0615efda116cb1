package lk

import (
	"math"
	"sort"
)

// breadth bounds how many candidate continuations Step considers at each
// recursion level: wide at the shallowest levels, narrowing to one beyond
// level 3, and closed off entirely from maxDepth on (spec.md §4.6).
//
// Grounded on heuristic/breadth.rs, itself citing Applegate/Bixby/Chvatal/
// Cook p.452 and linkern.c's backtrack_count table.
func breadth(level int) int {
	switch {
	case level == 0:
		return 4
	case level == 1, level == 2:
		return 3
	case level == 3:
		return 2
	case level < maxDepth:
		return 1
	default:
		return 0
	}
}

// Candidate is one ranked continuation produced by LKOrdering or
// AlternateLookAhead1: the node that would be re-joined into the tour
// (This), the tour neighbor that edge replaces (NewLast), and the marginal
// gain delta this continuation contributes (smaller is better — it is
// subtracted from the running gain, so continuations are returned sorted
// ascending by Diff).
type Candidate struct {
	This    int
	NewLast int
	Diff    float64
}

// LKOrdering ranks the candidates for extending a Step recursion from
// (first, last) at the given level: for every sparse neighbor `this` of
// `last` not already excluded, it considers breaking the tour edge
// (this, prev(this)) and re-joining last-this, then keeps the breadth(level)
// best by gain delta.
//
// Grounded on BBData::lk_ordering in heuristic/ordering.rs, itself citing
// CONCORDE's look_ahead in linkern.c.
func (s *Searcher) LKOrdering(first, last, level int, gain float64) []Candidate {
	var out []Candidate

	for _, nb := range s.neighbors(last) {
		this := nb.ID
		edgeWeight := nb.Dist
		if edgeWeight > gain {
			break
		}
		if s.marks.IsDeleted(last, this) || this == first || this == s.flip.Next(last) {
			continue
		}

		prev := s.flip.Prev(this)
		if s.marks.IsAdded(this, prev) {
			continue
		}

		otherWeight := s.dist(this, prev)
		out = append(out, Candidate{This: this, NewLast: prev, Diff: edgeWeight - otherWeight})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Diff < out[j].Diff })
	if b := breadth(level); len(out) > b {
		out = out[:b]
	}
	return out
}

// LKOrderingNoBacktrack picks the single best continuation once backtracking
// is no longer allowed (level >= backtrackLimit): it considers both the
// usual extension from `last` and, symmetrically, extending from `first`
// (a Mak-Morton move, reported via the makMorton bool), and returns whichever
// of the two has the smaller gain delta.
//
// Grounded on BBData::lk_ordering_no_backtracking in heuristic/ordering.rs.
func (s *Searcher) LKOrderingNoBacktrack(first, last int) (cand Candidate, makMorton bool, ok bool) {
	diff := math.MaxFloat64

	for _, nb := range s.neighbors(last) {
		this := nb.ID
		if s.marks.IsDeleted(this, last) || this == first || this == s.flip.Next(last) {
			continue
		}
		prev := s.flip.Prev(this)
		if s.marks.IsAdded(this, prev) {
			continue
		}
		val := nb.Dist - s.dist(this, prev)
		if val < diff {
			diff = val
			cand = Candidate{This: this, NewLast: prev, Diff: val}
			makMorton = false
			ok = true
		}
	}

	firstPrev := s.flip.Prev(first)
	for _, nb := range s.neighbors(first) {
		this := nb.ID
		if s.marks.IsDeleted(this, first) || this == first || this == firstPrev {
			continue
		}
		next := s.flip.Next(this)
		if s.marks.IsAdded(this, next) {
			continue
		}
		val := nb.Dist - s.dist(this, next)
		if val < diff {
			diff = val
			cand = Candidate{This: this, NewLast: next, Diff: val}
			makMorton = true
			ok = true
		}
	}

	return cand, makMorton, ok
}

// alaBreadth1/2/3 bound how many continuations each alternate look-ahead
// stage returns, independent of the regular breadth table.
const (
	alaBreadth1 = 4
	alaBreadth2 = 3
	alaBreadth3 = 3
)

// AlternateLookAhead1 ranks candidates for the first step of AlternateStep:
// every sparse neighbor `this` of t2 (other than t1) paired with its tour
// successor.
//
// Grounded on BBData::alternate_look_ahead_1 in heuristic/ordering.rs.
func (s *Searcher) AlternateLookAhead1(gain float64, t1, t2 int) []Candidate {
	var out []Candidate
	for _, nb := range s.neighbors(t2) {
		this := nb.ID
		if this == t1 {
			continue
		}
		if nb.Dist > gain {
			break
		}
		next := s.flip.Next(this)
		out = append(out, Candidate{This: this, NewLast: next, Diff: nb.Dist - s.dist(this, next)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Diff < out[j].Diff })
	if len(out) > alaBreadth1 {
		out = out[:alaBreadth1]
	}
	return out
}

// ALA2Candidate is one ranked continuation from AlternateLookAhead2: the
// candidate edge (T5, T6), its gain delta, whether t5 lies between t2 and t3
// on the tour (Seq), and, when Seq is true, which of two symmetric flip
// orientations applies (Side).
type ALA2Candidate struct {
	T5, T6 int
	Diff   float64
	Seq    bool
	Side   bool
}

// AlternateLookAhead2 ranks the second-stage candidates of AlternateStep.
// For every unmarked sparse neighbor t5 of t4, it considers t6 := prev(t5);
// when t5 falls within the open arc (t2, t3) it additionally considers the
// mirrored choice t6 := next(t5) (Side == true).
//
// Grounded on BBData::alternate_look_ahead_2 in heuristic/ordering.rs.
func (s *Searcher) AlternateLookAhead2(gain float64, t2, t3, t4 int) []ALA2Candidate {
	var out []ALA2Candidate
	for _, nb := range s.neighbors(t4) {
		t5 := nb.ID
		if s.weird.IsMarked(t5) {
			continue
		}
		if nb.Dist > gain {
			break
		}

		t6 := s.flip.Prev(t5)
		if t2 == t6 || t3 == t6 {
			continue
		}
		seq := s.flip.Sequence(t2, t5, t3)
		out = append(out, ALA2Candidate{T5: t5, T6: t6, Diff: nb.Dist - s.dist(t5, t6), Seq: seq})

		if seq {
			t6alt := s.flip.Next(t5)
			if t2 == t6alt || t3 == t6alt {
				continue
			}
			out = append(out, ALA2Candidate{T5: t5, T6: t6alt, Diff: nb.Dist - s.dist(t5, t6alt), Seq: seq, Side: true})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Diff < out[j].Diff })
	if len(out) > alaBreadth2 {
		out = out[:alaBreadth2]
	}
	return out
}

// ALA3Candidate is one ranked continuation from AlternateLookAhead3: the
// candidate edge (T7, T8), its gain delta, and which of the two tour
// neighbors of t7 was chosen as T8 (Side selects next(t7) over prev(t7)).
type ALA3Candidate struct {
	T7, T8 int
	Diff   float64
	Side   bool
}

// AlternateLookAhead3 ranks the third-stage candidates of AlternateStep. For
// every unmarked sparse neighbor t7 of t6 that lies within the open arc
// (t2, t3), both of t7's tour neighbors are offered as t8 (excluding t2/t3).
//
// Grounded on BBData::alternate_look_ahead_3 in heuristic/ordering.rs.
func (s *Searcher) AlternateLookAhead3(gain float64, t2, t3, t6 int) []ALA3Candidate {
	var out []ALA3Candidate
	for _, nb := range s.neighbors(t6) {
		t7 := nb.ID
		if nb.Dist > gain {
			break
		}
		if s.weird.IsMarked(t7) || !s.flip.Sequence(t2, t7, t3) {
			continue
		}

		if prev := s.flip.Prev(t7); t2 != prev && t3 != prev {
			out = append(out, ALA3Candidate{T7: t7, T8: prev, Diff: nb.Dist - s.dist(t7, prev)})
		}
		if next := s.flip.Next(t7); t2 != next && t3 != next {
			out = append(out, ALA3Candidate{T7: t7, T8: next, Diff: nb.Dist - s.dist(t7, next), Side: true})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Diff < out[j].Diff })
	if len(out) > alaBreadth3 {
		out = out[:alaBreadth3]
	}
	return out
}
