package tsplib

import "errors"

// ErrUnsupportedType indicates a TYPE other than TSP.
var ErrUnsupportedType = errors.New("tsplib: TYPE is not TSP")

// ErrUnsupportedEdgeWeightType indicates an EDGE_WEIGHT_TYPE other than the
// one format this reader understands (EUC_2D).
var ErrUnsupportedEdgeWeightType = errors.New("tsplib: only EDGE_WEIGHT_TYPE EUC_2D is supported")

// ErrUnsupportedSection indicates a section this reader deliberately does
// not implement (explicit edge weights or fixed edges).
var ErrUnsupportedSection = errors.New("tsplib: unsupported section")

// ErrDuplicateSection indicates a second NODE_COORD_SECTION in one file.
var ErrDuplicateSection = errors.New("tsplib: duplicate NODE_COORD_SECTION")

// ErrMalformedNode indicates a NODE_COORD_SECTION line that could not be
// parsed as "<id> <x> <y>", or whose id is not a positive integer.
var ErrMalformedNode = errors.New("tsplib: malformed node coordinate line")

// ErrUnrecognizedLine indicates a non-blank line that matches none of the
// known TSPLIB keywords and does not look like a coordinate line either.
var ErrUnrecognizedLine = errors.New("tsplib: unrecognized line")

// ErrDimensionMismatch indicates the DIMENSION keyword's value does not
// match the number of nodes actually read.
var ErrDimensionMismatch = errors.New("tsplib: DIMENSION does not match node count")
