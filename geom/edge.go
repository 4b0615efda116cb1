package geom

// Edge is an unordered pair of distinct node IDs. Equality and hashing are
// endpoint-order-independent: NewEdge(a,b) == NewEdge(b,a). The normalizing
// constructor always stores the smaller endpoint first (spec.md §9 "Edge
// identity"), so Edge is directly usable as a map key without a custom Hash.
//
// Weight is not carried on Edge itself: callers needing a cached weight pair
// it externally (e.g. candidate.Neighbor). Edge is a pure marker/identity
// key, used as-is for the ADDED/DELETED marking map in package lk.
type Edge struct {
	lo, hi int
}

// NewEdge returns the normalized identity key for the unordered pair {a, b}.
// Panics are never used here; a self-loop (a == b) is a caller bug and is
// deliberately NOT special-cased — callers (lk, tourstate) never form one.
func NewEdge(a, b int) Edge {
	if a <= b {
		return Edge{lo: a, hi: b}
	}
	return Edge{lo: b, hi: a}
}

// Lo and Hi return the normalized endpoints (Lo <= Hi).
func (e Edge) Lo() int { return e.lo }
func (e Edge) Hi() int { return e.hi }

// Other returns the endpoint of e that is not v. Caller must guarantee v is
// one of e's endpoints.
func (e Edge) Other(v int) int {
	if e.lo == v {
		return e.hi
	}
	return e.lo
}
