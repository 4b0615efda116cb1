// Package tourstate implements the live tour representation LK mutates
// during search: a doubly linked cyclic tour with O(1) next/prev, O(segment
// length) segment reversal ("flip"), and undo via a strict LIFO flip stack;
// an undo re-runs the reversal, so it also costs O(segment length)
// (spec.md §4.5, §9 "Cyclic neighbour graph in the flipper").
//
// Design:
//   - All N node records live in one contiguous arena indexed by node ID
//     (dense, so the ID doubles as the array index — spec.md §9's
//     recommended re-architecture away from the original's shared-ownership
//     handles and weak back-pointers).
//   - Each record stores two neighbour references ("left"/"right") and a
//     reversed flag; the flag decides which reference is logically "next"
//     vs "prev", letting Flip toggle orientation on O(segment length) nodes
//     instead of physically moving them.
//   - No logging; invariant violations (flip/unflip mismatch, isolated-node
//     Sequence call) are programmer errors and panic, per spec.md §7.
package tourstate

import (
	"fmt"

	"github.com/chainedlk/clktsp/geom"
)

// record is one node's position in the cyclic tour. left/right are node
// IDs, not pointers — the arena is the Flipper's own rec slice.
type record struct {
	left, right int
	reversed    bool
}

// flipEntry is one undo-stack entry: the (x, y) pair passed to Flip.
type flipEntry struct {
	x, y int
}

// Flipper is the live tour representation during LK. Build with New.
type Flipper struct {
	recs  []record
	stack []flipEntry
}

// New builds a Flipper from a cycle: a permutation of [0, N). Every
// record's right/left is set to the tour's successor/predecessor in the
// given order; all records start with reversed = false; the flip stack
// starts empty.
func New(cycle []int) (*Flipper, error) {
	n := len(cycle)
	if err := validatePermutation(cycle, n); err != nil {
		return nil, err
	}

	recs := make([]record, n)
	for i, id := range cycle {
		succ := cycle[(i+1)%n]
		pred := cycle[(i-1+n)%n]
		recs[id] = record{left: pred, right: succ, reversed: false}
	}

	return &Flipper{recs: recs}, nil
}

func validatePermutation(cycle []int, n int) error {
	if n == 0 {
		return ErrInvalidCycle
	}
	seen := make([]bool, n)
	for _, id := range cycle {
		if id < 0 || id >= n || seen[id] {
			return ErrInvalidCycle
		}
		seen[id] = true
	}
	return nil
}

// Len returns the number of nodes in the tour.
func (f *Flipper) Len() int { return len(f.recs) }

// Next returns the O(1) successor of id under the live orientation.
func (f *Flipper) Next(id int) int {
	r := &f.recs[id]
	if r.reversed {
		return r.left
	}
	return r.right
}

// Prev returns the O(1) predecessor of id under the live orientation.
func (f *Flipper) Prev(id int) int {
	r := &f.recs[id]
	if r.reversed {
		return r.right
	}
	return r.left
}

func (f *Flipper) setNext(id, v int) {
	r := &f.recs[id]
	if r.reversed {
		r.left = v
	} else {
		r.right = v
	}
}

func (f *Flipper) setPrev(id, v int) {
	r := &f.recs[id]
	if r.reversed {
		r.right = v
	} else {
		r.left = v
	}
}

func (f *Flipper) toggle(id int) {
	f.recs[id].reversed = !f.recs[id].reversed
}

// Sequence starts from a and walks forward; it returns true if b is
// encountered before c, false if c is encountered before b. It panics if a
// is seen again first — the caller must guarantee b and c are both
// distinct nodes actually present in the cycle (spec.md §4.5).
func (f *Flipper) Sequence(a, b, c int) bool {
	cur := f.Next(a)
	for {
		if cur == a {
			panic(fmt.Sprintf("tourstate: Sequence(%d,%d,%d): walked the whole cycle without matching either endpoint", a, b, c))
		}
		if cur == b {
			return true
		}
		if cur == c {
			return false
		}
		cur = f.Next(cur)
	}
}

// Flip reverses the segment from x through y (inclusive) along the current
// forward orientation — when x and y are tour neighbours, in either order,
// it swaps the two — and pushes (x, y) onto the flip stack for Unflip
// (spec.md §4.5).
func (f *Flipper) Flip(x, y int) {
	f.stack = append(f.stack, flipEntry{x: x, y: y})
	f.internalFlip(x, y)
}

// Unflip asserts the top of the flip stack equals (x, y), pops it, and
// restores the prior state by performing the inverse operation. Panics on
// a stack mismatch — an unbalanced flip/unflip pair corrupts subsequent
// search (spec.md §5, §7).
func (f *Flipper) Unflip(x, y int) {
	if len(f.stack) == 0 {
		panic("tourstate: Unflip called on an empty flip stack")
	}
	top := f.stack[len(f.stack)-1]
	if top.x != x || top.y != y {
		panic(fmt.Sprintf("tourstate: Unflip(%d,%d) does not match top of stack (%d,%d)", x, y, top.x, top.y))
	}
	f.stack = f.stack[:len(f.stack)-1]
	f.internalFlip(y, x)
}

// internalFlip performs the structural reversal described in spec.md §4.5:
//
//  1. Adjacent case: next(x)==y or next(y)==x — swap the two nodes by
//     restitching their links; no reversed bit changes.
//  2. General case: walk from next(x) forward to y, toggling every
//     traversed node's reversed bit, then toggle x's and y's bits and
//     restitch the four boundary neighbours.
//
// Grounded directly on the original implementation's internal_flip (see
// DESIGN.md): same two cases, same restitching order.
func (f *Flipper) internalFlip(x, y int) {
	if x == y {
		panic("tourstate: Flip(x, x) is not a valid move")
	}

	if f.Next(x) == y || f.Next(y) == x {
		start, end := x, y
		if f.Next(x) != y {
			start, end = y, x
		}

		startPrev := f.Prev(start)
		endNext := f.Next(end)

		f.setNext(start, endNext)
		f.setPrev(start, end)

		f.setPrev(end, startPrev)
		f.setNext(end, start)

		f.setNext(startPrev, end)
		f.setPrev(endNext, start)
		return
	}

	cur := f.Next(x)
	for cur != y {
		f.toggle(cur)
		// cur's next/prev meaning just swapped; Prev(cur) now yields the
		// node that was next(cur) before the toggle.
		cur = f.Prev(cur)
	}

	xPrev := f.Prev(x)
	yNext := f.Next(y)

	f.toggle(x)
	f.toggle(y)

	f.setNext(x, yNext)
	f.setPrev(y, xPrev)

	f.setNext(xPrev, y)
	f.setPrev(yNext, x)
}

// AsCycle materialises the current permutation as an ordered sequence of
// node IDs starting from node 0.
func (f *Flipper) AsCycle() []int {
	n := len(f.recs)
	cycle := make([]int, 0, n)
	cycle = append(cycle, 0)
	cur := f.Next(0)
	for cur != 0 {
		cycle = append(cycle, cur)
		cur = f.Next(cur)
	}
	if len(cycle) != n {
		panic(fmt.Sprintf("tourstate: AsCycle visited %d nodes, want %d — flipper invariant violated", len(cycle), n))
	}
	return cycle
}

// Cost sums the distance oracle along the current cycle.
func (f *Flipper) Cost(d geom.DistanceFunc) float64 {
	cycle := f.AsCycle()
	n := len(cycle)
	var total float64
	for i := 0; i < n; i++ {
		total += d(cycle[i], cycle[(i+1)%n])
	}
	return round1e9(total)
}

// DebugString returns a compact printable representation for tests and
// debugging, in the teacher's "[0 3 1 2]" style (tsp/tour.go DebugString),
// adapted here for an open (non-re-closed) cycle.
func (f *Flipper) DebugString() string {
	cycle := f.AsCycle()
	s := "["
	for i, id := range cycle {
		if i > 0 {
			s += " "
		}
		s += fmt.Sprintf("%d", id)
	}
	s += "]"
	return s
}
