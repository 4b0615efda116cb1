package kdtree

import (
	"math"
	"sort"
)

// Neighbor is a query result: a node ID and its distance from the query
// point, used throughout candidate/lk/clk wherever "nearby nodes" are
// needed.
type Neighbor struct {
	ID   int
	Dist float64
}

// Bounds is an axis-aligned rectangle; unbounded sides use ±Inf. Used by
// Nearests directly, and built internally by QuadrantNearest to restrict
// each of the four quadrant queries (spec.md §4.2).
type Bounds struct {
	XLo, XHi float64
	YLo, YHi float64
}

// unbounded covers the whole plane — the common case for QuadrantNearest's
// per-axis half-plane restriction and for ad hoc unbounded k-NN queries.
var unbounded = Bounds{
	XLo: math.Inf(-1), XHi: math.Inf(1),
	YLo: math.Inf(-1), YHi: math.Inf(1),
}

// Unbounded returns the whole-plane bounds rectangle.
func Unbounded() Bounds { return unbounded }

func (b Bounds) contains(x, y float64) bool {
	return x >= b.XLo && x <= b.XHi && y >= b.YLo && y <= b.YHi
}

// bestHeap is a bounded max-heap keyed on Dist, so the farthest of the
// current top-`count` candidates sits at [0] and can be evicted in O(log k)
// when a strictly closer candidate arrives.
type bestHeap struct {
	items []Neighbor
	cap   int
}

func newBestHeap(capacity int) *bestHeap {
	return &bestHeap{items: make([]Neighbor, 0, capacity), cap: capacity}
}

func (h *bestHeap) full() bool { return len(h.items) >= h.cap }

func (h *bestHeap) worst() float64 {
	if len(h.items) == 0 {
		return math.Inf(1)
	}
	return h.items[0].Dist
}

func (h *bestHeap) consider(n Neighbor) {
	if h.cap == 0 {
		return
	}
	if !h.full() {
		h.items = append(h.items, n)
		h.up(len(h.items) - 1)
		return
	}
	if n.Dist < h.items[0].Dist {
		h.items[0] = n
		h.down(0)
	}
}

func (h *bestHeap) up(i int) {
	for i > 0 {
		p := (i - 1) / 2
		if h.items[p].Dist >= h.items[i].Dist {
			break
		}
		h.items[p], h.items[i] = h.items[i], h.items[p]
		i = p
	}
}

func (h *bestHeap) down(i int) {
	n := len(h.items)
	for {
		l, r, largest := 2*i+1, 2*i+2, i
		if l < n && h.items[l].Dist > h.items[largest].Dist {
			largest = l
		}
		if r < n && h.items[r].Dist > h.items[largest].Dist {
			largest = r
		}
		if largest == i {
			break
		}
		h.items[i], h.items[largest] = h.items[largest], h.items[i]
		i = largest
	}
}

func (h *bestHeap) sorted() []Neighbor {
	out := make([]Neighbor, len(h.items))
	copy(out, h.items)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Dist != out[j].Dist {
			return out[i].Dist < out[j].Dist
		}
		return out[i].ID < out[j].ID // deterministic tie-break
	})
	return out
}

// Nearests returns up to count enabled nodes (excluding q itself) whose
// coordinates lie within bounds, sorted by distance from q ascending
// (spec.md §4.2). The result is always total: an empty slice is legal.
func (t *Tree) Nearests(q int, count int, bounds Bounds) []Neighbor {
	if count <= 0 {
		return nil
	}
	qPos := t.ns.Pos(q)
	h := newBestHeap(count)

	var visit func(n *node)
	visit = func(n *node) {
		if n == nil {
			return
		}
		if n.leaf {
			for _, id := range n.bucket {
				t.consider(id, q, qPos.X, qPos.Y, bounds, h)
			}
			return
		}

		t.consider(n.pivot, q, qPos.X, qPos.Y, bounds, h)

		var qv, pv float64
		if n.ax == axisX {
			qv, pv = qPos.X, t.coord(n.pivot, axisX)
		} else {
			qv, pv = qPos.Y, t.coord(n.pivot, axisY)
		}

		near, far := n.left, n.right
		if qv >= pv {
			near, far = n.right, n.left
		}
		visit(near)

		// Prune the far side unless: the heap isn't full yet (not enough
		// in-bounds results gathered), or the splitting plane is within
		// the current worst-known distance — the far side might still
		// hold a closer point (spec.md §4.2 Nearests pruning rule).
		diff := qv - pv
		if diff < 0 {
			diff = -diff
		}
		if !h.full() || diff <= h.worst() {
			visit(far)
		}
	}
	visit(t.root)

	return h.sorted()
}

func (t *Tree) consider(id, q int, qx, qy float64, bounds Bounds, h *bestHeap) {
	if id == q || !t.enabled[id] {
		return
	}
	p := t.ns.Pos(id)
	if !bounds.contains(p.X, p.Y) {
		return
	}
	dx, dy := p.X-qx, p.Y-qy
	h.consider(Neighbor{ID: id, Dist: math.Hypot(dx, dy)})
}

// QuadrantNearest runs Nearests four times, once per quadrant of the plane
// centred at q (each quadrant bounds both coordinates with <= or >= q's
// coordinates), concatenates, deduplicates by node ID, and sorts by distance
// ascending (spec.md §4.2).
func (t *Tree) QuadrantNearest(q int, k int) []Neighbor {
	qPos := t.ns.Pos(q)
	quadrants := [4]Bounds{
		{XLo: qPos.X, XHi: math.Inf(1), YLo: qPos.Y, YHi: math.Inf(1)},  // x>=qx, y>=qy
		{XLo: math.Inf(-1), XHi: qPos.X, YLo: qPos.Y, YHi: math.Inf(1)}, // x<=qx, y>=qy
		{XLo: math.Inf(-1), XHi: qPos.X, YLo: math.Inf(-1), YHi: qPos.Y}, // x<=qx, y<=qy
		{XLo: qPos.X, XHi: math.Inf(1), YLo: math.Inf(-1), YHi: qPos.Y},  // x>=qx, y<=qy
	}

	seen := make(map[int]Neighbor)
	for _, b := range quadrants {
		for _, n := range t.Nearests(q, k, b) {
			if _, ok := seen[n.ID]; !ok {
				seen[n.ID] = n
			}
		}
	}

	out := make([]Neighbor, 0, len(seen))
	for _, n := range seen {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Dist != out[j].Dist {
			return out[i].Dist < out[j].Dist
		}
		return out[i].ID < out[j].ID
	})
	return out
}
