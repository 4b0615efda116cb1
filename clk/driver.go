package clk

import (
	"math/rand"
	"time"

	"github.com/chainedlk/clktsp/candidate"
	"github.com/chainedlk/clktsp/geom"
	"github.com/chainedlk/clktsp/lk"
	"github.com/chainedlk/clktsp/tourstate"
)

// stallCount bounds how many un-improving kicks in a row the driver accepts
// before giving up; Run further caps that bound at the node count.
const stallCount = 10_000_000

// Round captures one kick-then-LK iteration's timing, for diagnostic
// output (spec.md §6's "CLK runtime" line).
type Round struct {
	Runtime time.Duration
}

// Result is one chained Lin-Kernighan run's outcome.
type Result struct {
	Cycle   []int
	Cost    float64
	Rounds  []Round
	Runtime time.Duration
}

// Driver runs one full chained Lin-Kernighan round: an initial Lin-Kernighan
// pass over a fresh tour, then a loop of kick-and-reoptimize, keeping the
// best tour found.
//
// Grounded on BBData::chained_lin_kernighan in heuristic/main_heuristic.rs.
type Driver struct {
	ns          *geom.NodeSet
	cand        candidate.Set
	rng         *rand.Rand
	timeLimit   time.Duration
	lengthLimit float64
}

// NewDriver builds a Driver. lengthLimit <= 0 means no length bound; the
// loop still honors timeLimit and the internal stall/round-count bounds.
func NewDriver(ns *geom.NodeSet, cand candidate.Set, rng *rand.Rand, timeLimit time.Duration, lengthLimit float64) *Driver {
	return &Driver{ns: ns, cand: cand, rng: rng, timeLimit: timeLimit, lengthLimit: lengthLimit}
}

// Run performs one chained Lin-Kernighan run starting from initialCycle,
// returning the best tour found and per-round timing.
//
// Preserves the original's `round += quitcount` loop-advance verbatim
// rather than the more obviously intended `round += 1`: see this package's
// DESIGN.md entry for why.
func (d *Driver) Run(initialCycle []int) (Result, error) {
	start := time.Now()

	flip, err := tourstate.New(initialCycle)
	if err != nil {
		return Result{}, err
	}
	searcher := lk.NewSearcher(d.ns, flip, d.cand)
	kicker := NewKicker(d.ns, flip, d.cand, d.rng)

	n := d.ns.Len()
	searcher.Seed(shuffledOrder(n, d.rng))
	searcher.MarkTourEdgesAdded(initialCycle)
	cycle, cost := searcher.Drain()

	best := Result{Cycle: cycle, Cost: cost}

	numberOfKicks := n
	quitcount := min(stallCount, numberOfKicks)
	round := 0

	for round < quitcount {
		roundStart := time.Now()

		kicker.Kick(searcher.Queue())
		cycle, cost = searcher.Drain()

		if cost < best.Cost {
			best.Cycle, best.Cost = cycle, cost
			quitcount = min(round+stallCount, numberOfKicks)
		}

		best.Rounds = append(best.Rounds, Round{Runtime: time.Since(roundStart)})

		if d.timeLimit > 0 && time.Since(start) >= d.timeLimit {
			break
		}
		if d.lengthLimit > 0 && best.Cost <= d.lengthLimit {
			break
		}

		round += quitcount
	}

	best.Runtime = time.Since(start)
	return best, nil
}

// shuffledOrder returns a Fisher-Yates shuffle of [0, n), the initial node
// queue order for the first Lin-Kernighan pass of a CLK round.
//
// Grounded on chained_lin_kernighan's shuffled_node_ids setup.
func shuffledOrder(n int, rng *rand.Rand) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		order[i], order[j] = order[j], order[i]
	}
	return order
}
