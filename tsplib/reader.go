// Package tsplib reads the subset of the TSPLIB95 .tsp format this module
// supports: 2D Euclidean node-coordinate instances (EDGE_WEIGHT_TYPE
// EUC_2D). Explicit edge-weight matrices, fixed-edge sections, and any
// non-Euclidean distance measure are out of scope and rejected outright
// rather than silently mishandled.
//
// See http://comopt.ifi.uni-heidelberg.de/software/TSPLIB95/tsp95.pdf.
package tsplib

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chainedlk/clktsp/geom"
	"gonum.org/v1/gonum/spatial/r2"
)

func vec(x, y float64) r2.Vec { return r2.Vec{X: x, Y: y} }

// ReadFile opens path and parses it as a TSPLIB instance.
func ReadFile(path string) (*geom.NodeSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

// Read parses a TSPLIB instance from r.
//
// Grounded on tsp_lib/reader.rs's read_tsplib_file: the same keyword
// dispatch (NAME/TYPE/COMMENT/DIMENSION/EDGE_WEIGHT_TYPE/
// EDGE_WEIGHT_FORMAT/NODE_COORD_SECTION/EDGE_WEIGHT_SECTION/
// FIXED_EDGES_SECTION/EOF), generalized from panics to returned sentinel
// errors and from a 2-pass counted array to an append-as-you-go slice (Go
// has no equivalent to the original's pre-sized "dimension" pass, so nodes
// are collected in file order and checked against DIMENSION at the end).
func Read(r io.Reader) (*geom.NodeSet, error) {
	scanner := bufio.NewScanner(r)

	var (
		dimension      int
		sawDimension   bool
		sawNodeSection bool
		nodes          []geom.Node
	)

	for scanner.Scan() {
		raw := strings.ReplaceAll(scanner.Text(), ":", " ")
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		keyword := fields[0]

		switch {
		case strings.HasPrefix(keyword, "NAME"):
			// Ignored.

		case strings.HasPrefix(line, "TYPE"):
			if len(fields) < 2 || fields[1] != "TSP" {
				return nil, ErrUnsupportedType
			}

		case strings.HasPrefix(line, "COMMENT"):
			// Ignored.

		case strings.HasPrefix(line, "DIMENSION"):
			if len(fields) < 2 {
				return nil, ErrDimensionMismatch
			}
			d, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, ErrDimensionMismatch
			}
			dimension = d
			sawDimension = true

		case strings.HasPrefix(line, "EDGE_WEIGHT_TYPE"):
			if len(fields) < 2 || fields[1] != "EUC_2D" {
				return nil, ErrUnsupportedEdgeWeightType
			}

		case strings.HasPrefix(line, "EDGE_WEIGHT_FORMAT"):
			return nil, ErrUnsupportedSection

		case strings.HasPrefix(line, "NODE_COORD_SECTION"):
			if sawNodeSection {
				return nil, ErrDuplicateSection
			}
			sawNodeSection = true

		case strings.HasPrefix(line, "EDGE_WEIGHT_SECTION"),
			strings.HasPrefix(line, "FIXED_EDGES_SECTION"):
			return nil, ErrUnsupportedSection

		case strings.HasPrefix(line, "EOF"):
			return finish(nodes, dimension, sawDimension)

		case isNodeCoordLine(line):
			node, err := parseNodeCoordLine(fields, len(nodes))
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, node)

		default:
			return nil, ErrUnrecognizedLine
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return finish(nodes, dimension, sawDimension)
}

func finish(nodes []geom.Node, dimension int, sawDimension bool) (*geom.NodeSet, error) {
	if sawDimension && len(nodes) != dimension {
		return nil, ErrDimensionMismatch
	}
	return geom.NewNodeSet(nodes)
}

// isNodeCoordLine reports whether line contains only characters that can
// appear in a whitespace-separated run of integers/floats: digits, a
// decimal point, an exponent marker, a sign, or whitespace itself.
func isNodeCoordLine(line string) bool {
	for _, c := range line {
		switch {
		case c >= '0' && c <= '9':
		case c == '.' || c == 'e' || c == 'E' || c == '-' || c == '+':
		case c == ' ' || c == '\t':
		default:
			return false
		}
	}
	return true
}

// parseNodeCoordLine parses "<fileID> <x> <y>" into a Node. The file's own
// node numbering is validated (must be a positive integer) but discarded:
// nodes are renumbered densely in file order, matching geom.NodeSet's
// contiguous-ID contract.
func parseNodeCoordLine(fields []string, internalID int) (geom.Node, error) {
	if len(fields) < 3 {
		return geom.Node{}, ErrMalformedNode
	}
	fileID, err := strconv.Atoi(fields[0])
	if err != nil || fileID <= 0 {
		return geom.Node{}, ErrMalformedNode
	}
	x, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return geom.Node{}, ErrMalformedNode
	}
	y, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return geom.Node{}, ErrMalformedNode
	}
	return geom.Node{ID: internalID, Pos: vec(x, y)}, nil
}
