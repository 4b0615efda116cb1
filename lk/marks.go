// Package lk implements the Lin-Kernighan local search: the bounded-depth,
// gain-guided sequential edge exchange that chained Lin-Kernighan repeatedly
// re-runs between kicks.
package lk

import "github.com/chainedlk/clktsp/geom"

// mark is the state an edge can be in while a Step recursion is in flight:
// an edge just added to the tentative tour, one just deleted from it, or
// untouched.
type mark int

const (
	markNone mark = iota
	markAdded
	markDeleted
)

// EdgeMarks tracks which edges an improve/Step recursion has tentatively
// added to or removed from the tour, so later levels of the same recursion
// don't reintroduce an edge that an earlier level just tore out
// (spec.md §4.6). It also holds the ADDED marks that
// Searcher.MarkTourEdgesAdded lays on the starting tour's edges, which
// stay in place for the whole CLK round.
//
// Grounded on BBData's edge_markings map in bb_data.rs, which stores the
// same three-state marking keyed by an undirected edge.
type EdgeMarks struct {
	state map[geom.Edge]mark
}

// NewEdgeMarks returns an empty marking table.
func NewEdgeMarks() *EdgeMarks {
	return &EdgeMarks{state: make(map[geom.Edge]mark)}
}

// MarkAdded records that edge (a, b) was just added to the tentative tour.
func (m *EdgeMarks) MarkAdded(a, b int) { m.state[geom.NewEdge(a, b)] = markAdded }

// UnmarkAdded clears a previous MarkAdded, restoring the edge to markNone.
func (m *EdgeMarks) UnmarkAdded(a, b int) { m.state[geom.NewEdge(a, b)] = markNone }

// MarkDeleted records that edge (a, b) was just removed from the tentative tour.
func (m *EdgeMarks) MarkDeleted(a, b int) { m.state[geom.NewEdge(a, b)] = markDeleted }

// UnmarkDeleted clears a previous MarkDeleted, restoring the edge to markNone.
func (m *EdgeMarks) UnmarkDeleted(a, b int) { m.state[geom.NewEdge(a, b)] = markNone }

// IsAdded reports whether edge (a, b) is currently marked added.
func (m *EdgeMarks) IsAdded(a, b int) bool { return m.state[geom.NewEdge(a, b)] == markAdded }

// IsDeleted reports whether edge (a, b) is currently marked deleted.
func (m *EdgeMarks) IsDeleted(a, b int) bool { return m.state[geom.NewEdge(a, b)] == markDeleted }

// Clear empties the marking table, e.g. between independent LK passes.
func (m *EdgeMarks) Clear() { m.state = make(map[geom.Edge]mark) }
