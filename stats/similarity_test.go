package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aligntools/trimstats/align"
	"github.com/aligntools/trimstats/simmat"
	"github.com/aligntools/trimstats/vec"
)

// fixture is the six-sequence alignment from trimAl's test data.
var fixture = []string{
	"-----GLGKVIV-YGIVLGTKSDQFSNWVVWLFPWNGLQIHMMGII",
	"-------DPAVL-FVIMLGTIT-KFS--SEWFFAWLGLEINMMVII",
	"AAAAAAAAALLTYLGLFLGTDYENFA--AAAANAWLGLEINMMAQI",
	"-----ASGAILT-LGIYLFTLCAVIS--VSWYLAWLGLEINMMAII",
	"--FAYTAPDLL-LIGFLLKTVA-TFG--DTWFQLWQGLDLNKMPVF",
	"-------PTILNIAGLHMETDI-NFS--LAWFQAWGGLEINKQAIL",
}

const aaResidues = "ACDEFGHIKLMNPQRSTVWY"

func fixtureAlignment(t *testing.T) *align.Alignment {
	t.Helper()
	a, err := align.NewFromStrings(fixture, align.AminoAcids)
	require.NoError(t, err)
	return a
}

func TestMatrixIdentityIdenticalSequences(t *testing.T) {
	a, err := align.NewFromStrings([]string{"GIVLVWLFPW", "GIVLVWLFPW"}, align.AminoAcids)
	require.NoError(t, err)

	s := NewSimilarity(a, nil, nil)
	idn := s.MatrixIdentity()

	assert.Equal(t, 0.0, idn[0][1])
	assert.Equal(t, 0.0, idn[1][0])
	assert.Empty(t, s.DegeneratePairs())
}

func TestMatrixIdentityDegeneratePair(t *testing.T) {
	a, err := align.NewFromStrings([]string{"GIVLVWLFPW", "----------"}, align.AminoAcids)
	require.NoError(t, err)

	s := NewSimilarity(a, nil, nil)
	idn := s.MatrixIdentity()

	// One informative side is enough for the denominator, so an all-gap
	// partner is not degenerate: length = 10, sum = 0, divergence 1.
	assert.Equal(t, 1.0, idn[0][1])
	assert.Empty(t, s.DegeneratePairs())

	// Two all-gap sequences have no informative position at all: that is
	// the degenerate, defined-zero path.
	b, err := align.NewFromStrings([]string{"----------", "----------"}, align.AminoAcids)
	require.NoError(t, err)
	s2 := NewSimilarity(b, nil, nil)
	idn2 := s2.MatrixIdentity()
	assert.Equal(t, 0.0, idn2[0][1])
	assert.Equal(t, []Pair{{0, 1}}, s2.DegeneratePairs())
}

func TestMatrixIdentitySymmetryAndRange(t *testing.T) {
	a := fixtureAlignment(t)
	s := NewSimilarity(a, nil, nil)
	idn := s.MatrixIdentity()

	n := a.NumSequences()
	for i := 0; i < n; i++ {
		assert.Equal(t, 0.0, idn[i][i])
		for j := i + 1; j < n; j++ {
			assert.Equal(t, idn[i][j], idn[j][i], "asymmetric at (%d, %d)", i, j)
			assert.GreaterOrEqual(t, idn[i][j], 0.0)
			assert.LessOrEqual(t, idn[i][j], 1.0)
		}
	}
}

func TestMatrixIdentityKernelParity(t *testing.T) {
	a := fixtureAlignment(t)
	want := NewSimilarity(a, nil, vec.Kernels()[0]).MatrixIdentity()

	for _, k := range vec.Kernels()[1:] {
		got := NewSimilarity(a, nil, k).MatrixIdentity()
		assert.Equal(t, want, got, "kernel %s disagrees with scalar", k.Name())
	}
}

func TestMatrixIdentityRespectsSequenceMask(t *testing.T) {
	a := fixtureAlignment(t)
	require.NoError(t, a.SetSequenceMask([]bool{true, true, false, true, true, true}))

	idn := NewSimilarity(a, nil, nil).MatrixIdentity()
	assert.Nil(t, idn[2])
	assert.NotNil(t, idn[0])
	assert.Equal(t, 0.0, idn[0][2], "excluded sequence must not be scored")
}

func TestCalculateVectorsNoMatrix(t *testing.T) {
	a := fixtureAlignment(t)
	_, err := NewSimilarity(a, nil, nil).CalculateVectors(nil, false)
	assert.ErrorIs(t, err, ErrNoSubstMatrix)
}

func TestCalculateVectorsHandComputed(t *testing.T) {
	a, err := align.NewFromStrings([]string{"AC", "AG"}, align.AminoAcids)
	require.NoError(t, err)

	s := NewSimilarity(a, simmat.Identity(aaResidues), nil)
	mdk, err := s.CalculateVectors(nil, false)
	require.NoError(t, err)
	require.Len(t, mdk, 2)

	// Pair divergence is 0.5 (one match over two informative columns).
	// Column 0 (A, A): Q = 0/0.5 = 0, so exp(-0) = 1.
	// Column 1 (C, G): Q = 0.5/0.5 = 1, so exp(-1).
	assert.InDelta(t, 1.0, mdk[0], 1e-12)
	assert.InDelta(t, math.Exp(-1), mdk[1], 1e-12)
}

func TestCalculateVectorsIdenticalSequences(t *testing.T) {
	// Two identical gap-free sequences have pair divergence 0, so every
	// column's denominator is 0 and every divergence is 0.
	a, err := align.NewFromStrings([]string{"GIVLVWLFPW", "GIVLVWLFPW"}, align.AminoAcids)
	require.NoError(t, err)

	mdk, err := NewSimilarity(a, simmat.Identity(aaResidues), nil).CalculateVectors(nil, false)
	require.NoError(t, err)
	for i, v := range mdk {
		assert.Equal(t, 0.0, v, "column %d", i)
	}
}

func TestCalculateVectorsAllGapColumn(t *testing.T) {
	// A fully gap/indeterminate column must score 0 without tripping the
	// alphabet validation.
	a, err := align.NewFromStrings([]string{"-AC", "XAG", "-AT"}, align.AminoAcids)
	require.NoError(t, err)

	mdk, err := NewSimilarity(a, simmat.Identity(aaResidues), nil).CalculateVectors(nil, false)
	require.NoError(t, err)
	assert.Equal(t, 0.0, mdk[0])
}

func TestCalculateVectorsRangeAndParity(t *testing.T) {
	a := fixtureAlignment(t)
	mat := simmat.Identity(aaResidues)

	want, err := NewSimilarity(a, mat, vec.Kernels()[0]).CalculateVectors(nil, false)
	require.NoError(t, err)
	for i, v := range want {
		assert.GreaterOrEqual(t, v, 0.0, "column %d", i)
		assert.LessOrEqual(t, v, 1.0, "column %d", i)
	}

	for _, k := range vec.Kernels()[1:] {
		got, err := NewSimilarity(a, mat, k).CalculateVectors(nil, false)
		require.NoError(t, err)
		assert.Equal(t, want, got, "kernel %s disagrees with scalar", k.Name())
	}
}

func TestCalculateVectorsIncorrectSymbol(t *testing.T) {
	a, err := align.NewFromStrings([]string{"A1", "AC"}, align.AminoAcids)
	require.NoError(t, err)

	_, err = NewSimilarity(a, simmat.Identity(aaResidues), nil).CalculateVectors(nil, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIncorrectSymbol)

	var symErr *SymbolError
	require.ErrorAs(t, err, &symErr)
	assert.Equal(t, byte('1'), symErr.Symbol)
	assert.Equal(t, 1, symErr.Column)
}

func TestCalculateVectorsUndefinedSymbol(t *testing.T) {
	// 'L' is in the alphabet but absent from a nucleotide-only matrix.
	a, err := align.NewFromStrings([]string{"AL", "AC"}, align.AminoAcids)
	require.NoError(t, err)

	_, err = NewSimilarity(a, simmat.Identity("ACGT"), nil).CalculateVectors(nil, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUndefinedSymbol)
}

func TestCalculateVectorsLowercaseResidues(t *testing.T) {
	a, err := align.NewFromStrings([]string{"ac", "ag"}, align.AminoAcids)
	require.NoError(t, err)

	mdk, err := NewSimilarity(a, simmat.Identity(aaResidues), nil).CalculateVectors(nil, false)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, mdk[0], 1e-12)
}

func TestCalculateVectorsGapCut(t *testing.T) {
	a, err := align.NewFromStrings([]string{"AC", "AG"}, align.AminoAcids)
	require.NoError(t, err)
	mat := simmat.Identity(aaResidues)

	_, err = NewSimilarity(a, mat, nil).CalculateVectors(nil, true)
	assert.ErrorIs(t, err, ErrNoGapStats)

	mdk, err := NewSimilarity(a, mat, nil).CalculateVectors([]float64{0.9, 0.5}, true)
	require.NoError(t, err)
	assert.Equal(t, 0.0, mdk[0], "column at gap threshold must be pruned")
	assert.InDelta(t, math.Exp(-1), mdk[1], 1e-12)
}

func TestCalculateVectorsExcludedColumn(t *testing.T) {
	// The excluded column holds a symbol that would otherwise abort the
	// computation; masked columns are never inspected.
	a, err := align.NewFromStrings([]string{"A?", "AC"}, align.AminoAcids)
	require.NoError(t, err)
	require.NoError(t, a.SetResidueMask([]bool{true, false}))

	mdk, err := NewSimilarity(a, simmat.Identity(aaResidues), nil).CalculateVectors(nil, false)
	require.NoError(t, err)
	assert.Equal(t, 0.0, mdk[1])
}

func TestIdentityMatrixLifecycle(t *testing.T) {
	a := fixtureAlignment(t)
	s := NewSimilarity(a, simmat.Identity(aaResidues), nil)

	first := s.MatrixIdentity()
	assert.Same(t, &first[0][0], &s.MatrixIdentity()[0][0], "second call must reuse the cache")

	_, err := s.CalculateVectors(nil, false)
	require.NoError(t, err)

	// The cache was released; asking again rebuilds it from scratch.
	rebuilt := s.MatrixIdentity()
	require.NotNil(t, rebuilt)
	assert.Equal(t, first, rebuilt)
}
