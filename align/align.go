// Package align holds the read-only alignment view consumed by the
// statistics engines: the residue matrix, the alignment type selecting
// the indeterminate character, and the sequence and residue keep masks.
//
// The residue data is fixed at construction and never reallocated;
// filtering is purely logical, through the masks. Engines address
// sequences and columns in the original index space and use the masks to
// decide what participates.
package align

import (
	"errors"
	"fmt"
)

// Gap is the alignment gap character.
const Gap = '-'

// Type distinguishes amino-acid from nucleotide alignments. The zero
// value is AminoAcids.
type Type uint8

const (
	AminoAcids Type = iota
	Nucleotides
)

// Indeterminate returns the placeholder residue treated like a gap for
// statistics purposes: 'X' for amino acids, 'N' for nucleotides.
func (t Type) Indeterminate() byte {
	if t == Nucleotides {
		return 'N'
	}
	return 'X'
}

func (t Type) String() string {
	if t == Nucleotides {
		return "nt"
	}
	return "aa"
}

var (
	// ErrEmpty is returned when an alignment has no sequences or no columns.
	ErrEmpty = errors.New("align: alignment has no residue data")

	// ErrRagged is returned when the sequences do not all have the same length.
	ErrRagged = errors.New("align: sequences have differing lengths")
)

// Alignment is a read-only view of a multiple sequence alignment. The
// residue slices passed to New are retained, not copied; callers must not
// mutate them while any engine holds the view.
type Alignment struct {
	seqs [][]byte
	typ  Type

	seqMask *Mask
	colMask *Mask
}

// New builds an alignment view over the given residue matrix. Every
// sequence must have the same nonzero length. Both keep masks start with
// everything kept.
func New(seqs [][]byte, typ Type) (*Alignment, error) {
	if len(seqs) == 0 || len(seqs[0]) == 0 {
		return nil, ErrEmpty
	}
	width := len(seqs[0])
	for i, s := range seqs {
		if len(s) != width {
			return nil, fmt.Errorf("%w: sequence 0 has %d residues, sequence %d has %d",
				ErrRagged, width, i, len(s))
		}
	}
	return &Alignment{
		seqs:    seqs,
		typ:     typ,
		seqMask: AllKept(len(seqs)),
		colMask: AllKept(width),
	}, nil
}

// NewFromStrings is New for string sequences; the strings are copied.
func NewFromStrings(seqs []string, typ Type) (*Alignment, error) {
	bs := make([][]byte, len(seqs))
	for i, s := range seqs {
		bs[i] = []byte(s)
	}
	return New(bs, typ)
}

// NumSequences returns the original number of sequences, before any
// filtering.
func (a *Alignment) NumSequences() int { return len(a.seqs) }

// NumResidues returns the original number of residues per sequence,
// before any filtering.
func (a *Alignment) NumResidues() int { return len(a.seqs[0]) }

// Sequence returns the residue string of sequence i in the original
// index space. The returned slice is shared and must not be modified.
func (a *Alignment) Sequence(i int) []byte { return a.seqs[i] }

// Type returns the alignment type.
func (a *Alignment) Type() Type { return a.typ }

// SequenceMask returns the keep mask over sequences.
func (a *Alignment) SequenceMask() *Mask { return a.seqMask }

// ResidueMask returns the keep mask over columns.
func (a *Alignment) ResidueMask() *Mask { return a.colMask }

// SetSequenceMask replaces the sequence keep mask. keep must have one
// entry per original sequence. Engines constructed before the call keep
// using the old mask; construct new engines after re-filtering.
func (a *Alignment) SetSequenceMask(keep []bool) error {
	if len(keep) != len(a.seqs) {
		return fmt.Errorf("align: sequence mask has %d entries, alignment has %d sequences",
			len(keep), len(a.seqs))
	}
	a.seqMask = NewMask(keep)
	return nil
}

// SetResidueMask replaces the column keep mask. keep must have one entry
// per original column.
func (a *Alignment) SetResidueMask(keep []bool) error {
	if len(keep) != a.NumResidues() {
		return fmt.Errorf("align: residue mask has %d entries, alignment has %d columns",
			len(keep), a.NumResidues())
	}
	a.colMask = NewMask(keep)
	return nil
}
