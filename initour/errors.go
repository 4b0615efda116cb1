package initour

import "errors"

// ErrTooFewNodes indicates a node set with fewer than 3 nodes — no
// Hamiltonian cycle is possible (spec.md §4.4).
var ErrTooFewNodes = errors.New("initour: need at least 3 nodes to form a cycle")

// ErrIncompleteConstruction indicates a greedy builder could not connect
// every node to degree exactly 2 (e.g. a k-d tree query unexpectedly
// returned no eligible neighbour before the tour closed). This is treated
// as a fatal construction-time error, not a recoverable one.
var ErrIncompleteConstruction = errors.New("initour: construction did not complete a single cycle")

// ErrInvalidEdgeSet indicates Validate found a degree other than 2 for some
// node, or fewer distinct nodes reachable than the adjacency set's size.
var ErrInvalidEdgeSet = errors.New("initour: edge set is not a single Hamiltonian cycle")
