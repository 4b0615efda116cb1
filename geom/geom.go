// Package geom defines the node set and the Euclidean distance oracle shared
// by every other package in this module: the k-d tree, the candidate-edge
// builder, the flipper, and the Lin–Kernighan engine all consume node IDs and
// call back into a NodeSet for coordinates and distances — never the other
// way around.
//
// Design:
//   - Nodes are immutable once a NodeSet is built; IDs are dense indices
//     into NodeSet.Nodes, so callers may use them directly as slice indices.
//   - Distance is a pure function of two node IDs: deterministic, symmetric,
//     no hidden state. Implementations may cache per-pair values, but this
//     package does not (the candidate graph already bounds the hot set).
//   - No logging, no panics on well-formed input — only sentinel errors.
package geom

import (
	"errors"

	"gonum.org/v1/gonum/spatial/r2"
)

// ErrEmptyNodeSet indicates an attempt to build a NodeSet from zero nodes.
var ErrEmptyNodeSet = errors.New("geom: empty node set")

// ErrDuplicateID indicates two input nodes share the same ID.
var ErrDuplicateID = errors.New("geom: duplicate node id")

// ErrIDOutOfRange indicates a node ID outside [0, N).
var ErrIDOutOfRange = errors.New("geom: node id out of range")

// Node is a single point: a dense identifier in [0, N) and its 2D position.
type Node struct {
	ID  int
	Pos r2.Vec
}

// NodeSet is an immutable array of nodes, indexed by ID. Construct with
// NewNodeSet; the zero value is not meaningful.
type NodeSet struct {
	nodes []Node
}

// NewNodeSet validates that ids are a dense permutation of [0, len(nodes))
// and returns an immutable NodeSet. The input slice is copied defensively.
//
// Complexity: O(n) time, O(n) space.
func NewNodeSet(nodes []Node) (*NodeSet, error) {
	n := len(nodes)
	if n == 0 {
		return nil, ErrEmptyNodeSet
	}

	seen := make([]bool, n)
	for _, nd := range nodes {
		if nd.ID < 0 || nd.ID >= n {
			return nil, ErrIDOutOfRange
		}
		if seen[nd.ID] {
			return nil, ErrDuplicateID
		}
		seen[nd.ID] = true
	}

	out := make([]Node, n)
	for _, nd := range nodes {
		out[nd.ID] = nd
	}

	return &NodeSet{nodes: out}, nil
}

// Len returns the number of nodes (N).
func (ns *NodeSet) Len() int { return len(ns.nodes) }

// Pos returns the position of node id. Caller must guarantee 0 <= id < Len().
func (ns *NodeSet) Pos(id int) r2.Vec { return ns.nodes[id].Pos }

// Node returns the Node record for id. Caller must guarantee 0 <= id < Len().
func (ns *NodeSet) Node(id int) Node { return ns.nodes[id] }

// Dist returns the Euclidean distance between nodes a and b. Deterministic
// and symmetric: Dist(a,b) == Dist(b,a).
//
// Complexity: O(1).
func (ns *NodeSet) Dist(a, b int) float64 {
	pa, pb := ns.nodes[a].Pos, ns.nodes[b].Pos
	return r2.Norm(pa.Sub(pb))
}

// DistanceFunc is the distance-oracle signature taken by
// tourstate.Flipper.Cost, so a tour's cost can be summed with any distance
// function of two node IDs, such as NodeSet.Dist (spec.md §4.1).
type DistanceFunc func(a, b int) float64
