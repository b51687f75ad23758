package solver

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

func corpusOf(t *testing.T, list ...string) *words.Corpus {
	t.Helper()
	c, err := words.NewCorpus(list)
	require.NoError(t, err)
	return c
}

func newRanker(t *testing.T, workers, cache int) *Ranker {
	t.Helper()
	r, err := NewRanker(RankerConfig{Workers: workers, CacheSize: cache})
	require.NoError(t, err)
	return r
}

var five = []string{"crane", "trace", "react", "cater", "trice"}

func TestBestMaximizesEntropy(t *testing.T) {
	t.Parallel()
	c := corpusOf(t, five...)
	full := game.FullSet(c)

	// crane separates all five words; cater cannot tell react from trace.
	assert.InDelta(t, math.Log2(5), Entropy(words.MustParse("crane"), c.Words()), 1e-12)
	assert.Less(t, Entropy(words.MustParse("cater"), c.Words()), math.Log2(5))

	got, err := newRanker(t, 0, 0).Best(context.Background(), full, full)
	require.NoError(t, err)
	require.Equal(t, "crane", got.String())
}

func TestBestTieBreaksLexicographically(t *testing.T) {
	t.Parallel()
	c := corpusOf(t, "zzzzz", "fghij", "abcde")
	full := game.FullSet(c)
	cands := game.NewSet(c, []words.Word{words.MustParse("fghij"), words.MustParse("abcde")})

	for _, workers := range []int{1, 2, 3, 16} {
		got, err := newRanker(t, workers, 0).Best(context.Background(), cands, full)
		require.NoError(t, err)
		require.Equal(t, "abcde", got.String(), "workers=%d", workers)
	}
}

func TestBestDeterministic(t *testing.T) {
	t.Parallel()
	c, err := words.LoadCorpus("")
	require.NoError(t, err)
	full := game.FullSet(c)
	cands := full.Filter(words.MustParse("arise"), game.Score(words.MustParse("arise"), words.MustParse("trace")))
	require.Greater(t, cands.Len(), 1)

	want, err := newRanker(t, 1, 0).Best(context.Background(), cands, full)
	require.NoError(t, err)
	for _, workers := range []int{2, 4, 7} {
		r := newRanker(t, workers, 8)
		for i := 0; i < 3; i++ {
			got, err := r.Best(context.Background(), cands, full)
			require.NoError(t, err)
			require.Equal(t, want, got)
		}
	}
}

func TestBestSingleCandidateSkipsScoring(t *testing.T) {
	t.Parallel()
	c := corpusOf(t, five...)
	one := game.NewSet(c, []words.Word{words.MustParse("trice")})

	// A cancelled context would abort any scoring pass.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	got, err := newRanker(t, 0, 0).Best(ctx, one, game.FullSet(c))
	require.NoError(t, err)
	require.Equal(t, "trice", got.String())
}

func TestBestEmptyCandidates(t *testing.T) {
	t.Parallel()
	c := corpusOf(t, five...)
	empty := game.NewSet(c, nil)
	_, err := newRanker(t, 0, 0).Best(context.Background(), empty, game.FullSet(c))
	require.ErrorIs(t, err, ErrContradiction)

	_, err = newRanker(t, 0, 0).Rank(context.Background(), empty, game.FullSet(c), 3)
	require.ErrorIs(t, err, ErrContradiction)
}

func TestBestNoAllowedGuesses(t *testing.T) {
	t.Parallel()
	c := corpusOf(t, five...)
	_, err := newRanker(t, 0, 0).Best(context.Background(), game.FullSet(c), game.NewSet(c, nil))
	require.ErrorIs(t, err, ErrNoGuesses)
}

func TestBestHonorsCancellation(t *testing.T) {
	t.Parallel()
	c := corpusOf(t, five...)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newRanker(t, 2, 0).Best(ctx, game.FullSet(c), game.FullSet(c))
	require.ErrorIs(t, err, context.Canceled)
}

func TestBestCache(t *testing.T) {
	t.Parallel()
	c := corpusOf(t, five...)
	full := game.FullSet(c)
	r := newRanker(t, 0, 4)

	first, err := r.Best(context.Background(), full, full)
	require.NoError(t, err)
	require.Equal(t, 1, r.cache.Len())

	second, err := r.Best(context.Background(), full, full)
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, 1, r.cache.Len())

	// a different allowed set is a different key
	_, err = r.Best(context.Background(), full, game.NewSet(c, []words.Word{words.MustParse("cater")}))
	require.NoError(t, err)
	require.Equal(t, 2, r.cache.Len())
}

func TestRank(t *testing.T) {
	t.Parallel()
	c := corpusOf(t, append([]string{"zzzzz"}, five...)...)
	full := game.FullSet(c)
	cands := game.NewSet(c, words5(five))

	top, err := newRanker(t, 3, 0).Rank(context.Background(), cands, full, 3)
	require.NoError(t, err)
	require.Len(t, top, 3)
	require.Equal(t, "crane", top[0].Word.String())
	require.True(t, top[0].Candidate)
	for i := 1; i < len(top); i++ {
		require.GreaterOrEqual(t, top[i-1].Entropy+tieTolerance, top[i].Entropy)
	}

	all, err := newRanker(t, 3, 0).Rank(context.Background(), cands, full, 0)
	require.NoError(t, err)
	require.Len(t, all, 6)
	last := all[len(all)-1]
	require.Equal(t, "zzzzz", last.Word.String())
	require.False(t, last.Candidate)
	require.Zero(t, last.Entropy)
}

func words5(list []string) []words.Word {
	out := make([]words.Word, len(list))
	for i, s := range list {
		out[i] = words.MustParse(s)
	}
	return out
}
