package stats

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSubstMatrix is returned when a divergence computation is
	// requested without a substitution matrix configured.
	ErrNoSubstMatrix = errors.New("stats: no substitution matrix configured")

	// ErrIncorrectSymbol marks a residue outside the recognized 'A'..'Z'
	// alphabet (after case folding).
	ErrIncorrectSymbol = errors.New("symbol outside the recognized alphabet")

	// ErrUndefinedSymbol marks a residue letter with no entry in the
	// substitution matrix's lookup table.
	ErrUndefinedSymbol = errors.New("symbol not defined in the substitution matrix")

	// ErrNoGapStats is returned when gap-based column pruning is requested
	// without per-column gap ratios.
	ErrNoGapStats = errors.New("stats: gap pruning requested without per-column gap ratios")
)

// SymbolError reports the residue that aborted a divergence computation
// and the column it was found in. It wraps ErrIncorrectSymbol or
// ErrUndefinedSymbol.
type SymbolError struct {
	Symbol byte
	Column int
	err    error
}

func (e *SymbolError) Error() string {
	return fmt.Sprintf("stats: residue %q in column %d: %v", e.Symbol, e.Column, e.err)
}

func (e *SymbolError) Unwrap() error { return e.err }

// Pair identifies a sequence pair, in original sequence indices, that hit
// a degenerate condition: no jointly informative (and, for SeqIdentity,
// non-skipped) column. Such pairs score zero and the computation
// continues; the engines record them for diagnosis.
type Pair struct {
	I, J int
}

func (p Pair) String() string {
	return fmt.Sprintf("(%d, %d)", p.I, p.J)
}
