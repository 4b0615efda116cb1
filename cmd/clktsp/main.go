// Command clktsp runs chained Lin-Kernighan over a TSPLIB95 instance.
//
// Usage:
//
//	clktsp -i burma14.tsp [flags]
//
// See -h for the full flag list (spec.md §6 / cli.rs's CliArgs).
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/chainedlk/clktsp/candidate"
	"github.com/chainedlk/clktsp/clk"
	"github.com/chainedlk/clktsp/tsplib"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("clktsp", flag.ContinueOnError)
	inputPath := fs.String("i", "", "TSPLIB input file (required)")
	initMethod := fs.String("c", "q", "initial tour method: r=random, b=boruvka, q=quick-boruvka")
	verbose := fs.Bool("v", false, "verbose timing output")
	timeLimit := fs.Uint64("t", 1_000_000, "time limit in seconds")
	lengthLimit := fs.Float64("l", 0.0, "tour length limit")
	seedFlag := fs.Uint64("s", 0, "RNG seed (0 derives from wall-clock)")
	numberOfRuns := fs.Uint64("r", 0, "number of CLK runs (0 means 1)")
	quadrantNearest := fs.Int("q", candidate.DefaultK, "quadrant-nearest count for the candidate graph")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *inputPath == "" {
		return fmt.Errorf("clktsp: -i <path> is required")
	}

	seed := *seedFlag
	if seed == 0 {
		seed = uint64(time.Now().Unix())
	}
	fmt.Printf("Seed : %d\n", seed)
	rng := rand.New(rand.NewSource(int64(seed)))

	ns, err := tsplib.ReadFile(*inputPath)
	if err != nil {
		return fmt.Errorf("clktsp: %w", err)
	}
	fmt.Printf("Number of nodes : %d\n", ns.Len())

	runs := *numberOfRuns
	if runs == 0 {
		runs = 1
	}

	overallStart := time.Now()

	// The k-d tree, candidate graph, and initial tour are built exactly
	// once and reused across every repeat, matching main_heuristic's
	// create_initial_tour()+sparse_edge_map() calls sitting outside its
	// number_of_runs loop.
	orchestrator, err := clk.NewOrchestrator(ns, rng, initTourMethod(*initMethod), *quadrantNearest, time.Duration(*timeLimit)*time.Second, *lengthLimit, *verbose)
	if err != nil {
		return fmt.Errorf("clktsp: %w", err)
	}

	var best *clk.Result
	for i := uint64(0); i < runs; i++ {
		result, err := orchestrator.Run()
		if err != nil {
			return fmt.Errorf("clktsp: %w", err)
		}
		if *verbose {
			for _, round := range result.Rounds {
				fmt.Printf("CLK runtime : %v\n", round.Runtime.Seconds())
			}
		}
		if best == nil || result.Cost < best.Cost {
			best = &result
		}
	}

	fmt.Printf("Final tour length : %v\n", best.Cost)
	fmt.Printf("Total runtime : %v\n", time.Since(overallStart).Seconds())
	return nil
}

// initTourMethod maps the -c flag's first character to a clk.InitMethod,
// defaulting to Quick-Borůvka for an empty or unrecognized value.
func initTourMethod(flagValue string) clk.InitMethod {
	if len(flagValue) == 0 {
		return clk.InitQuickBoruvka
	}

	switch flagValue[0] {
	case 'r', 'R':
		return clk.InitRandom
	case 'b', 'B':
		return clk.InitBoruvka
	default:
		return clk.InitQuickBoruvka
	}
}
