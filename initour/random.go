package initour

import (
	"math/rand"

	"github.com/chainedlk/clktsp/geom"
)

// Random produces a cycle by a uniform Fisher-Yates shuffle of [0, N)
// (spec.md §4.4: "Random shuffle"). Node 0 is fixed at position 0 so the
// resulting cycle is always reported starting from node 0, matching the
// convention used by Flipper.AsCycle.
func Random(ns *geom.NodeSet, rng *rand.Rand) ([]int, error) {
	n := ns.Len()
	if n < 3 {
		return nil, ErrTooFewNodes
	}

	cycle := make([]int, n)
	for i := range cycle {
		cycle[i] = i
	}
	for i := n - 1; i > 1; i-- {
		j := 1 + rng.Intn(i)
		cycle[i], cycle[j] = cycle[j], cycle[i]
	}
	return cycle, nil
}
