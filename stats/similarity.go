package stats

import (
	"math"

	"github.com/aligntools/trimstats/align"
	"github.com/aligntools/trimstats/simmat"
	"github.com/aligntools/trimstats/vec"
)

// gapCutThreshold is the gap ratio at or above which a column is assigned
// divergence 0 outright when gap pruning is requested.
const gapCutThreshold = 0.8

// matrixState tracks the identity matrix cache through its lifecycle.
type matrixState uint8

const (
	matrixEmpty matrixState = iota
	matrixBuilt
	matrixReleased
)

// identityMatrix is the engine-owned cache of pairwise divergence values.
// It is built lazily, consumed exactly once by the divergence pass, and
// released afterwards; building it again after release recomputes it.
type identityMatrix struct {
	vals  [][]float64
	state matrixState
}

func (m *identityMatrix) release() {
	m.vals = nil
	m.state = matrixReleased
}

// Similarity computes the pairwise identity matrix over the kept
// sequences of an alignment and, from it and a substitution matrix, the
// per-column divergence vector (MDK).
//
// A Similarity instance is not reentrant: concurrent calls on the same
// instance while the identity matrix is being built are undefined. Use
// one instance per goroutine.
type Similarity struct {
	alig   *align.Alignment
	mat    *simmat.Matrix
	kernel vec.Kernel

	identity   identityMatrix
	degenerate []Pair
}

// NewSimilarity builds a similarity engine over the alignment. mat may be
// nil if only the identity matrix is needed; CalculateVectors then fails
// with ErrNoSubstMatrix. A nil kernel selects the process-wide active
// kernel.
func NewSimilarity(alig *align.Alignment, mat *simmat.Matrix, kernel vec.Kernel) *Similarity {
	if kernel == nil {
		kernel = vec.Active()
	}
	return &Similarity{alig: alig, mat: mat, kernel: kernel}
}

// MatrixIdentity returns the pairwise divergence matrix, building it if
// necessary. The matrix is indexed by original sequence indices; rows of
// excluded sequences are nil and the diagonal is zero. Entry (i, j) is
// 1 - matching/informative over the jointly informative positions of the
// pair, or 0 for a degenerate pair with no such position (recorded in
// DegeneratePairs).
//
// The matrix stays owned by the engine: it is released when
// CalculateVectors consumes it, after which the returned slices must not
// be used.
func (s *Similarity) MatrixIdentity() [][]float64 {
	if s.identity.state == matrixBuilt {
		return s.identity.vals
	}

	n := s.alig.NumSequences()
	kept := s.alig.SequenceMask().Kept()
	indet := s.alig.Type().Indeterminate()

	vals := make([][]float64, n)
	for _, i := range kept {
		vals[i] = make([]float64, n)
	}
	s.degenerate = s.degenerate[:0]

	for x, i := range kept {
		datai := s.alig.Sequence(i)
		for _, j := range kept[x+1:] {
			sum, length := s.kernel.PairStats(datai, s.alig.Sequence(j), indet)

			var d float64
			if length == 0 {
				// Defined-zero fallback; see the degenerate pair notes in
				// the package documentation.
				s.degenerate = append(s.degenerate, Pair{i, j})
			} else {
				d = 1.0 - float64(sum)/float64(length)
			}
			vals[i][j] = d
			vals[j][i] = d
		}
	}

	s.identity.vals = vals
	s.identity.state = matrixBuilt
	return vals
}

// CalculateVectors computes one divergence value per original column.
//
// Columns excluded by the alignment's residue mask score 0 without
// further inspection. When cutByGap is set, gapRatio must hold one value
// per original column and any column at or above the 0.8 threshold also
// scores 0 directly. For each remaining column, residues of the kept
// sequences are case-folded and resolved through the substitution
// matrix's lookup; a residue outside 'A'..'Z' or absent from the lookup
// aborts the whole computation with a *SymbolError. The column score is
// exp(-Q) with Q the identity-weighted mean substitution distance over
// informative pairs, clamped to 1 when Q is negative and defined as 0
// when the column has at most one informative residue.
//
// The identity matrix cache is consumed and released on success.
func (s *Similarity) CalculateVectors(gapRatio []float64, cutByGap bool) ([]float64, error) {
	if s.mat == nil {
		return nil, ErrNoSubstMatrix
	}
	residues := s.alig.NumResidues()
	if cutByGap && len(gapRatio) < residues {
		return nil, ErrNoGapStats
	}

	idn := s.MatrixIdentity()

	kept := s.alig.SequenceMask().Kept()
	colMask := s.alig.ResidueMask()
	indet := s.alig.Type().Indeterminate()

	colgap := make([]bool, s.alig.NumSequences())
	colnum := make([]int, s.alig.NumSequences())
	mdk := make([]float64, residues)

	for i := 0; i < residues; i++ {
		if !colMask.Keeps(i) {
			continue
		}
		if cutByGap && gapRatio[i] >= gapCutThreshold {
			continue
		}

		// Classify the column and resolve residue indices, validating
		// every character against the matrix's alphabet.
		for _, j := range kept {
			letter := toUpper(s.alig.Sequence(j)[i])
			if letter == indet || letter == align.Gap {
				colgap[j] = true
				continue
			}
			colgap[j] = false
			if letter < 'A' || letter > 'Z' {
				return nil, &SymbolError{Symbol: letter, Column: i, err: ErrIncorrectSymbol}
			}
			num := s.mat.Index(letter)
			if num == simmat.Undefined {
				return nil, &SymbolError{Symbol: letter, Column: i, err: ErrUndefinedSymbol}
			}
			colnum[j] = num
		}

		var num, den float64
		for x, j := range kept {
			if colgap[j] {
				continue
			}
			identityRow := idn[j]
			numA := colnum[j]
			for _, k := range kept[x+1:] {
				if colgap[k] {
					continue
				}
				num += identityRow[k] * s.mat.Distance(numA, colnum[k])
				den += identityRow[k]
			}
		}

		// A column with at most one informative residue scores 0.
		if den == 0 {
			continue
		}
		q := num / den
		if q < 0 {
			// exp(-Q) would exceed 1; clamp without evaluating it.
			mdk[i] = 1.0
		} else {
			mdk[i] = math.Exp(-q)
		}
	}

	s.identity.release()
	return mdk, nil
}

// DegeneratePairs returns the sequence pairs that had no jointly
// informative position during the last identity matrix construction.
func (s *Similarity) DegeneratePairs() []Pair {
	return s.degenerate
}

func toUpper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}
