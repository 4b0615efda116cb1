package tsplib_test

import (
	"strings"
	"testing"

	"github.com/chainedlk/clktsp/tsplib"
)

const burma14Like = `NAME : sample
TYPE : TSP
COMMENT : synthetic instance for testing
DIMENSION : 4
EDGE_WEIGHT_TYPE : EUC_2D
NODE_COORD_SECTION
1 0.0 0.0
2 1.0 0.0
3 1.0 1.0
4 0.0 1.0
EOF
`

func TestReadParsesANodeCoordInstance(t *testing.T) {
	ns, err := tsplib.Read(strings.NewReader(burma14Like))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if ns.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", ns.Len())
	}
	if got := ns.Pos(0); got.X != 0 || got.Y != 0 {
		t.Fatalf("node 0 position = %v, want (0,0)", got)
	}
	if got := ns.Pos(2); got.X != 1 || got.Y != 1 {
		t.Fatalf("node 2 position = %v, want (1,1)", got)
	}
}

func TestReadRejectsWrongType(t *testing.T) {
	bad := strings.Replace(burma14Like, "TYPE : TSP", "TYPE : ATSP", 1)
	if _, err := tsplib.Read(strings.NewReader(bad)); err != tsplib.ErrUnsupportedType {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}
}

func TestReadRejectsNonEuclideanWeightType(t *testing.T) {
	bad := strings.Replace(burma14Like, "EDGE_WEIGHT_TYPE : EUC_2D", "EDGE_WEIGHT_TYPE : GEO", 1)
	if _, err := tsplib.Read(strings.NewReader(bad)); err != tsplib.ErrUnsupportedEdgeWeightType {
		t.Fatalf("expected ErrUnsupportedEdgeWeightType, got %v", err)
	}
}

func TestReadRejectsDimensionMismatch(t *testing.T) {
	bad := strings.Replace(burma14Like, "DIMENSION : 4", "DIMENSION : 5", 1)
	if _, err := tsplib.Read(strings.NewReader(bad)); err != tsplib.ErrDimensionMismatch {
		t.Fatalf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestReadRejectsUnsupportedSections(t *testing.T) {
	bad := strings.Replace(burma14Like, "NODE_COORD_SECTION", "EDGE_WEIGHT_SECTION", 1)
	if _, err := tsplib.Read(strings.NewReader(bad)); err != tsplib.ErrUnsupportedSection {
		t.Fatalf("expected ErrUnsupportedSection, got %v", err)
	}
}

func TestReadRejectsUnrecognizedLines(t *testing.T) {
	// Insert a garbage keyword line before EOF so parsing reaches it.
	bad := strings.Replace(burma14Like, "EOF", "GARBAGE_KEYWORD\nEOF", 1)
	if _, err := tsplib.Read(strings.NewReader(bad)); err != tsplib.ErrUnrecognizedLine {
		t.Fatalf("expected ErrUnrecognizedLine, got %v", err)
	}
}
