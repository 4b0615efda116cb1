package tourstate

import "math"

// round1e9 stabilizes a summed cost to 1e-9 absolute precision, avoiding
// cross-platform floating-point drift when two tours are compared for
// equality (mirrors the teacher's tsp/cost.go convention).
func round1e9(x float64) float64 {
	const scale = 1e9
	return math.Round(x*scale) / scale
}
