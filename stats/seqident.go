package stats

import (
	"github.com/aligntools/trimstats/align"
	"github.com/aligntools/trimstats/vec"
)

// SeqIdentity computes pairwise sequence similarity while honoring a
// per-column skip mask derived from the alignment's residue keep mask:
// a column that is already excluded contributes to no pair, whatever its
// gap status.
//
// The skip mask is captured at construction; build a new engine after
// re-filtering the alignment. Instances are not reentrant.
type SeqIdentity struct {
	alig   *align.Alignment
	kernel vec.Kernel

	// skip has one byte per original column: 0xFF for excluded columns,
	// 0 for kept ones.
	skip []byte

	degenerate []Pair
}

// NewSeqIdentity builds the engine and its skip-residue mask. A nil
// kernel selects the process-wide active kernel.
func NewSeqIdentity(alig *align.Alignment, kernel vec.Kernel) *SeqIdentity {
	if kernel == nil {
		kernel = vec.Active()
	}
	residues := alig.NumResidues()
	skip := make([]byte, residues)
	colMask := alig.ResidueMask()
	for i := 0; i < residues; i++ {
		if !colMask.Keeps(i) {
			skip[i] = 0xFF
		}
	}
	return &SeqIdentity{alig: alig, kernel: kernel, skip: skip}
}

// Identities returns the pairwise similarity matrix over the kept
// sequences, indexed by original sequence indices; rows of excluded
// sequences are nil and the diagonal is zero. Entry (i, j) is
// matching/informative over the non-skipped columns where at least one of
// the two residues is informative. A pair with no such column scores 0
// and is recorded in DegeneratePairs.
//
// Ownership of the returned matrix passes to the caller; each call
// computes a fresh matrix.
func (e *SeqIdentity) Identities() [][]float64 {
	n := e.alig.NumSequences()
	kept := e.alig.SequenceMask().Kept()
	indet := e.alig.Type().Indeterminate()

	ids := make([][]float64, n)
	for _, i := range kept {
		ids[i] = make([]float64, n)
	}
	e.degenerate = e.degenerate[:0]

	for x, i := range kept {
		datai := e.alig.Sequence(i)
		for _, j := range kept[x+1:] {
			hit, dst := e.kernel.MaskedPairStats(datai, e.alig.Sequence(j), e.skip, indet)

			var v float64
			if dst == 0 {
				e.degenerate = append(e.degenerate, Pair{i, j})
			} else {
				// The identity score of two sequences is the ratio of
				// identical residues over their common and non-common
				// residues.
				v = float64(hit) / float64(dst)
			}
			ids[i][j] = v
			ids[j][i] = v
		}
	}
	return ids
}

// DegeneratePairs returns the sequence pairs that had no jointly
// comparable, non-skipped column during the last Identities call.
func (e *SeqIdentity) DegeneratePairs() []Pair {
	return e.degenerate
}
