package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aligntools/trimstats/align"
	"github.com/aligntools/trimstats/vec"
)

func TestScoresHandComputed(t *testing.T) {
	// With every other sequence required as support (overlap 1, so 2 of
	// 2), the gap columns of the short sequences are supported only by
	// each other: one agreeing gap is not enough.
	a, err := align.NewFromStrings([]string{"AA--", "AA--", "AAAA"}, align.AminoAcids)
	require.NoError(t, err)

	scores, err := NewSpurious(a, nil).Scores(1.0)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 0.5, 0.5}, scores)

	// With no support required, every column is good.
	scores, err = NewSpurious(a, nil).Scores(0.0)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1, 1}, scores)
}

func TestScoresOverlapValidation(t *testing.T) {
	a := fixtureAlignment(t)
	e := NewSpurious(a, nil)

	_, err := e.Scores(-0.1)
	assert.Error(t, err)
	_, err = e.Scores(1.5)
	assert.Error(t, err)
}

func TestScoresRange(t *testing.T) {
	a := fixtureAlignment(t)
	scores, err := NewSpurious(a, nil).Scores(0.75)
	require.NoError(t, err)
	require.Len(t, scores, a.NumSequences())
	for i, v := range scores {
		assert.GreaterOrEqual(t, v, 0.0, "sequence %d", i)
		assert.LessOrEqual(t, v, 1.0, "sequence %d", i)
	}
}

func TestScoresMonotonicInOverlap(t *testing.T) {
	// Lowering the overlap fraction only relaxes the support threshold,
	// so no score may decrease.
	a := fixtureAlignment(t)
	e := NewSpurious(a, nil)

	fractions := []float64{1.0, 0.9, 0.75, 0.5, 0.25, 0.0}
	prev, err := e.Scores(fractions[0])
	require.NoError(t, err)
	for _, f := range fractions[1:] {
		cur, err := e.Scores(f)
		require.NoError(t, err)
		for i := range cur {
			assert.GreaterOrEqual(t, cur[i], prev[i], "overlap %v, sequence %d", f, i)
		}
		prev = cur
	}
}

func TestScoresRespectsSequenceMask(t *testing.T) {
	a := fixtureAlignment(t)
	require.NoError(t, a.SetSequenceMask([]bool{true, true, true, true, false, true}))

	scores, err := NewSpurious(a, nil).Scores(0.5)
	require.NoError(t, err)
	assert.Equal(t, 0.0, scores[4], "excluded sequence must not be scored")
}

func TestScoresFoldBoundary(t *testing.T) {
	// 300 identical sequences push every per-column support count past
	// the 8-bit fold interval; a missing or broken fold would truncate
	// the counts to 299 mod 256 and fail the threshold.
	const n = 300
	seqs := make([]string, n)
	for i := range seqs {
		seqs[i] = "LLLLLLLLLLLLLLLLLLLLLLLLLLLLLLLLLLLLLLLL"
	}
	a, err := align.NewFromStrings(seqs, align.AminoAcids)
	require.NoError(t, err)

	scores, err := NewSpurious(a, nil).Scores(1.0)
	require.NoError(t, err)
	for i, v := range scores {
		require.Equal(t, 1.0, v, "sequence %d", i)
	}
}

func TestScoresKernelParity(t *testing.T) {
	a := fixtureAlignment(t)
	want, err := NewSpurious(a, vec.Kernels()[0]).Scores(0.66)
	require.NoError(t, err)

	for _, k := range vec.Kernels()[1:] {
		got, err := NewSpurious(a, k).Scores(0.66)
		require.NoError(t, err)
		assert.Equal(t, want, got, "kernel %s disagrees with scalar", k.Name())
	}
}
