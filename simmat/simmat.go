// Package simmat holds the substitution-matrix view consumed by the
// column divergence engine: a 26-entry character-to-index lookup over
// 'A'..'Z' and a dense index-by-index distance table. Loading matrices
// from files is out of scope here; callers construct matrices directly or
// start from Identity.
package simmat

import (
	"errors"
	"fmt"
)

// AlphabetSize is the number of entries in the character lookup, one per
// uppercase ASCII letter.
const AlphabetSize = 26

// Undefined marks a letter with no entry in the distance table.
const Undefined = -1

var errNotSquare = errors.New("simmat: distance table is not square")

// Matrix maps an ordered pair of residue indices to a non-negative
// distance. Immutable after construction.
type Matrix struct {
	lookup [AlphabetSize]int8
	dist   [][]float64
}

// New validates and wraps a lookup table and distance table. Every
// defined lookup entry must index a row of dist, dist must be square, and
// all distances must be non-negative.
func New(lookup [AlphabetSize]int8, dist [][]float64) (*Matrix, error) {
	n := len(dist)
	for i, row := range dist {
		if len(row) != n {
			return nil, fmt.Errorf("%w: row %d has %d entries, want %d", errNotSquare, i, len(row), n)
		}
		for j, d := range row {
			if d < 0 {
				return nil, fmt.Errorf("simmat: negative distance %v at (%d, %d)", d, i, j)
			}
		}
	}
	for c, idx := range lookup {
		if idx != Undefined && (idx < 0 || int(idx) >= n) {
			return nil, fmt.Errorf("simmat: lookup entry for %c is %d, outside the %dx%d table",
				'A'+c, idx, n, n)
		}
	}
	return &Matrix{lookup: lookup, dist: dist}, nil
}

// Identity builds a matrix over the given residue letters where identical
// residues are at distance 0 and distinct residues at distance 1. Letters
// must be uppercase ASCII; it panics otherwise (the argument is always a
// program literal).
func Identity(residues string) *Matrix {
	var lookup [AlphabetSize]int8
	for i := range lookup {
		lookup[i] = Undefined
	}
	for i := 0; i < len(residues); i++ {
		c := residues[i]
		if c < 'A' || c > 'Z' {
			panic(fmt.Sprintf("simmat: Identity residue %q outside A..Z", c))
		}
		lookup[c-'A'] = int8(i)
	}
	dist := make([][]float64, len(residues))
	for i := range dist {
		dist[i] = make([]float64, len(residues))
		for j := range dist[i] {
			if i != j {
				dist[i][j] = 1
			}
		}
	}
	m, err := New(lookup, dist)
	if err != nil {
		panic(err)
	}
	return m
}

// Size returns the number of residue indices in the distance table.
func (m *Matrix) Size() int { return len(m.dist) }

// Index returns the residue index for an uppercase letter, or Undefined.
// The caller must pass a byte in 'A'..'Z'.
func (m *Matrix) Index(letter byte) int {
	return int(m.lookup[letter-'A'])
}

// Distance returns the distance between two residue indices.
func (m *Matrix) Distance(i, j int) float64 {
	return m.dist[i][j]
}
