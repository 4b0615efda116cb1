package main

import (
	"os"
	"path/filepath"
	"testing"
)

const squareInstance = `NAME : square
TYPE : TSP
DIMENSION : 4
EDGE_WEIGHT_TYPE : EUC_2D
NODE_COORD_SECTION
1 0.0 0.0
2 1.0 0.0
3 1.0 1.0
4 0.0 1.0
EOF
`

func writeInstance(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "square.tsp")
	if err := os.WriteFile(path, []byte(squareInstance), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestRunCompletesOnASmallInstance(t *testing.T) {
	path := writeInstance(t)
	args := []string{"-i", path, "-s", "1", "-t", "1", "-c", "r"}
	if err := run(args); err != nil {
		t.Fatalf("run: %v", err)
	}
}

func TestRunRejectsMissingInputFlag(t *testing.T) {
	if err := run(nil); err == nil {
		t.Fatal("expected an error when -i is omitted")
	}
}

func TestRunRejectsUnreadableInstance(t *testing.T) {
	args := []string{"-i", filepath.Join(t.TempDir(), "missing.tsp")}
	if err := run(args); err == nil {
		t.Fatal("expected an error for a nonexistent input file")
	}
}

func TestBuildInitialTourDispatchesOnMethod(t *testing.T) {
	path := writeInstance(t)
	args := []string{"-i", path, "-s", "1", "-t", "1", "-c", "b"}
	if err := run(args); err != nil {
		t.Fatalf("run with boruvka method: %v", err)
	}

	args = []string{"-i", path, "-s", "1", "-t", "1", "-c", "q"}
	if err := run(args); err != nil {
		t.Fatalf("run with quick-boruvka method: %v", err)
	}
}
