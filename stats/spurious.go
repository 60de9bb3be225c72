package stats

import (
	"fmt"
	"math"

	"github.com/aligntools/trimstats/align"
	"github.com/aligntools/trimstats/vec"
)

// foldEvery is the number of compared sequences after which the narrow
// per-column support counters are folded into the wide ones. One below
// the 8-bit maximum keeps a full headroom step before any lane could
// saturate.
const foldEvery = 255

// Spurious computes, per sequence, the fraction of columns whose residue
// is supported by enough other sequences. A column supports sequence i
// against sequence j when the two residues agree, or when both are
// informative: information presence counts as overlap evidence even
// without agreement.
//
// The per-column counters are reused across sequences, so instances are
// not reentrant.
type Spurious struct {
	alig   *align.Alignment
	kernel vec.Kernel

	hits  []uint32
	hits8 []byte
}

// NewSpurious builds the engine and its counter buffers. A nil kernel
// selects the process-wide active kernel.
func NewSpurious(alig *align.Alignment, kernel vec.Kernel) *Spurious {
	if kernel == nil {
		kernel = vec.Active()
	}
	return &Spurious{
		alig:   alig,
		kernel: kernel,
		hits:   make([]uint32, alig.NumResidues()),
		hits8:  make([]byte, alig.NumResidues()),
	}
}

// Scores returns one overlap score per original sequence. A kept sequence
// scores the fraction of columns where at least
// ceil(overlap * (kept - 1)) of the other kept sequences support it;
// excluded sequences score 0. Lowering overlap never lowers any score.
func (e *Spurious) Scores(overlap float64) ([]float64, error) {
	if overlap < 0 || overlap > 1 {
		return nil, fmt.Errorf("stats: overlap fraction %v outside [0, 1]", overlap)
	}

	residues := e.alig.NumResidues()
	kept := e.alig.SequenceMask().Kept()
	indet := e.alig.Type().Indeterminate()

	required := uint32(math.Ceil(overlap * float64(len(kept)-1)))
	scores := make([]float64, e.alig.NumSequences())

	for _, i := range kept {
		clear(e.hits)
		clear(e.hits8)

		datai := e.alig.Sequence(i)
		pending := 0
		for _, j := range kept {
			if j == i {
				continue
			}
			e.kernel.AddSupport(e.hits8, datai, e.alig.Sequence(j), indet)

			// Fold the 8-bit counters before any column can overflow.
			if pending++; pending == foldEvery {
				e.fold()
				pending = 0
			}
		}
		e.fold()

		good := 0
		for k := 0; k < residues; k++ {
			if e.hits[k] >= required {
				good++
			}
		}
		scores[i] = float64(good) / float64(residues)
	}
	return scores, nil
}

func (e *Spurious) fold() {
	for k, h := range e.hits8 {
		e.hits[k] += uint32(h)
		e.hits8[k] = 0
	}
}
