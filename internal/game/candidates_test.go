package game

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

func smallCorpus(t *testing.T) *words.Corpus {
	t.Helper()
	c, err := words.NewCorpus([]string{"crane", "trace", "react", "cater", "trice"})
	require.NoError(t, err)
	return c
}

func TestCandidateSetFilter(t *testing.T) {
	t.Parallel()
	c := smallCorpus(t)
	full := FullSet(c)
	require.Equal(t, 5, full.Len())

	o := Score(w("crane"), w("trace"))
	got := full.Filter(w("crane"), o)
	require.Equal(t, []words.Word{w("trace")}, got.Words())
	require.True(t, got.Contains(w("trace")))
	require.False(t, got.Contains(w("crane")))

	// the source set is untouched
	require.Equal(t, 5, full.Len())
}

func TestCandidateSetMatchesSliceFilter(t *testing.T) {
	t.Parallel()
	c := smallCorpus(t)
	full := FullSet(c)
	for _, g := range c.Words() {
		for o := 0; o < NumOutcomes; o++ {
			set := full.Filter(g, Outcome(o))
			require.Equal(t, Filter(c.Words(), g, Outcome(o)), set.Words())
			require.True(t, set.Equal(set.Filter(g, Outcome(o))), "filter must be idempotent")
			require.LessOrEqual(t, set.Len(), full.Len())
		}
	}
}

func TestCandidateSetEmptyAndFirst(t *testing.T) {
	t.Parallel()
	c := smallCorpus(t)
	empty := FullSet(c).Filter(w("zzzzz"), Solved)
	require.Equal(t, 0, empty.Len())
	_, ok := empty.First()
	require.False(t, ok)

	first, ok := FullSet(c).First()
	require.True(t, ok)
	require.Equal(t, w("cater"), first)
}

func TestNewSetIgnoresUnknownWords(t *testing.T) {
	t.Parallel()
	c := smallCorpus(t)
	s := NewSet(c, []words.Word{w("trace"), w("zzzzz"), w("crane")})
	require.Equal(t, []words.Word{w("crane"), w("trace")}, s.Words())
}
