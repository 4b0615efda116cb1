package clk

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/chainedlk/clktsp/candidate"
	"github.com/chainedlk/clktsp/geom"
	"github.com/chainedlk/clktsp/initour"
	"github.com/chainedlk/clktsp/kdtree"
)

// InitMethod selects which initour constructor an Orchestrator uses to
// build its one initial tour.
type InitMethod byte

const (
	// InitQuickBoruvka is the default: initour.QuickBoruvka.
	InitQuickBoruvka InitMethod = 'q'
	// InitBoruvka selects initour.Boruvka.
	InitBoruvka InitMethod = 'b'
	// InitRandom selects initour.Random.
	InitRandom InitMethod = 'r'
)

// Orchestrator binds a node set to the k-d tree, candidate graph, and
// initial tour built from it, then runs a chained Lin-Kernighan Driver
// against that same tour and candidate graph for however many repeats the
// caller asks for.
//
// Grounded on BBData::main_heuristic (heuristic/main_heuristic.rs), which
// calls create_initial_tour() and sparse_edge_map() exactly once before its
// number_of_runs loop, then repeats only chained_lin_kernighan() — the
// initial tour and sparse edge map are never rebuilt between repeats.
type Orchestrator struct {
	ns           *geom.NodeSet
	cand         candidate.Set
	initialCycle []int
	rng          *rand.Rand
	timeLimit    time.Duration
	lengthLimit  float64
}

// NewOrchestrator builds the k-d tree, candidate graph, and initial tour
// once, drawing from rng, and keeps that same rng (not reseeded) for every
// later Run. method's first byte dispatches the
// initial-tour algorithm; an unrecognized byte falls back to Quick-Borůvka,
// same as cmd/clktsp's CLI flag.
//
// When verbose is true, it prints the same "KD Tree Build Time" / "Initial
// tour length" / "Initial tour creation runtime" diagnostic lines the
// original prints from construct_kd_tree and create_initial_tour.
func NewOrchestrator(ns *geom.NodeSet, rng *rand.Rand, method InitMethod, quadrantNearest int, timeLimit time.Duration, lengthLimit float64, verbose bool) (*Orchestrator, error) {
	treeStart := time.Now()
	tree := kdtree.Build(ns, rng)
	if verbose {
		fmt.Printf("KD Tree Build Time : %v\n", time.Since(treeStart).Seconds())
	}

	cand := candidate.Build(ns, tree, quadrantNearest)

	tourStart := time.Now()
	cycle, err := buildInitialTour(ns, tree, rng, method)
	if err != nil {
		return nil, err
	}
	if verbose {
		var length float64
		for i, id := range cycle {
			length += ns.Dist(id, cycle[(i+1)%len(cycle)])
		}
		fmt.Printf("Initial tour length: %v\n", length)
		fmt.Printf("Initial tour creation runtime : %v\n", time.Since(tourStart).Seconds())
	}

	return &Orchestrator{
		ns:           ns,
		cand:         cand,
		initialCycle: cycle,
		rng:          rng,
		timeLimit:    timeLimit,
		lengthLimit:  lengthLimit,
	}, nil
}

// InitialCycle returns the tour NewOrchestrator built. Every Run starts
// from this same cycle; it is never rebuilt or mutated in place.
func (o *Orchestrator) InitialCycle() []int { return o.initialCycle }

// Candidates returns the candidate graph NewOrchestrator built, shared by
// every Run.
func (o *Orchestrator) Candidates() candidate.Set { return o.cand }

// Run performs one chained Lin-Kernighan run over the orchestrator's
// reused initial tour and candidate graph.
//
// Grounded on main_heuristic's `for _ in 0..number_of_runs { self.
// chained_lin_kernighan(); }` loop body.
func (o *Orchestrator) Run() (Result, error) {
	driver := NewDriver(o.ns, o.cand, o.rng, o.timeLimit, o.lengthLimit)
	return driver.Run(o.initialCycle)
}

// buildInitialTour dispatches on method, validating the edge set returned
// by the two Borůvka variants into a cycle.
//
// Grounded on initial_tour/create.rs's EInitialTourMethod dispatch.
func buildInitialTour(ns *geom.NodeSet, tree *kdtree.Tree, rng *rand.Rand, method InitMethod) ([]int, error) {
	switch method {
	case InitRandom:
		return initour.Random(ns, rng)
	case InitBoruvka:
		edges, err := initour.Boruvka(ns, tree)
		if err != nil {
			return nil, err
		}
		return initour.Validate(edges, ns.Len())
	default:
		edges, err := initour.QuickBoruvka(ns, tree)
		if err != nil {
			return nil, err
		}
		return initour.Validate(edges, ns.Len())
	}
}
