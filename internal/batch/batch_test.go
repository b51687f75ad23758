package batch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

func engine(t *testing.T, c *words.Corpus, opening string) *solver.Engine {
	t.Helper()
	r, err := solver.NewRanker(solver.RankerConfig{CacheSize: 64})
	require.NoError(t, err)
	e, err := solver.NewEngine(c, r, solver.Config{Opening: words.MustParse(opening)})
	require.NoError(t, err)
	return e
}

func TestSimulate(t *testing.T) {
	t.Parallel()
	c, err := words.NewCorpus([]string{"crane", "trace", "react", "cater", "trice"})
	require.NoError(t, err)
	e := engine(t, c, "crane")

	g, err := Simulate(context.Background(), e, words.MustParse("trace"))
	require.NoError(t, err)
	require.True(t, g.Solved)
	require.Equal(t, 2, g.Guesses)
	require.Equal(t, "crane trace", g.Path())
}

func TestEvaluateBaseline(t *testing.T) {
	t.Parallel()
	c, err := words.NewCorpus([]string{"crane", "trace", "react", "cater", "trice"})
	require.NoError(t, err)
	e := engine(t, c, "crane")

	// crane gives a distinct outcome for every other word, so each one is
	// solved on the second guess.
	sum, err := Evaluate(context.Background(), e, c.Words(), Options{})
	require.NoError(t, err)
	require.Equal(t, 5, sum.Total)
	require.Equal(t, 5, sum.Solved)
	require.Equal(t, 9, sum.TotalGuesses)
	require.Equal(t, map[int]int{1: 1, 2: 4}, sum.Distribution)
	require.Empty(t, sum.Failures)
	require.InDelta(t, 1.8, sum.AverageGuesses(), 1e-12)
	require.Equal(t, 1.0, sum.SuccessRate())
}

// Every game here reaches at least one ranked guess with several candidates
// left, so the numbers pin entropy scoring and the smallest-word tie-break.
func TestEvaluateEmbeddedBaseline(t *testing.T) {
	t.Parallel()
	c, err := words.LoadCorpus("")
	require.NoError(t, err)
	answers, err := words.LoadAnswers("")
	require.NoError(t, err)
	answers = answers[:50]

	for _, cfg := range []solver.RankerConfig{{Workers: 1}, {Workers: 4, CacheSize: 128}} {
		r, err := solver.NewRanker(cfg)
		require.NoError(t, err)
		e, err := solver.NewEngine(c, r, solver.Config{Opening: words.MustParse("arise"), MaxRounds: 6})
		require.NoError(t, err)

		sum, err := Evaluate(context.Background(), e, answers, Options{Workers: 4})
		require.NoError(t, err)
		require.Equal(t, 50, sum.Solved)
		require.Equal(t, 149, sum.TotalGuesses)
		require.Equal(t, map[int]int{2: 6, 3: 39, 4: 5}, sum.Distribution)
		require.Empty(t, sum.Failures)
	}
}

func TestEvaluateIsScheduleIndependent(t *testing.T) {
	t.Parallel()
	c, err := words.LoadCorpus("")
	require.NoError(t, err)
	answers, err := words.LoadAnswers("")
	require.NoError(t, err)
	answers = answers[:24]

	serial, err := Evaluate(context.Background(), engine(t, c, "arise"), answers, Options{Workers: 1})
	require.NoError(t, err)

	calls := 0
	parallel, err := Evaluate(context.Background(), engine(t, c, "arise"), answers, Options{
		Workers:  6,
		Progress: func(Game) { calls++ },
	})
	require.NoError(t, err)
	require.Equal(t, len(answers), calls)

	require.Equal(t, serial.Solved, parallel.Solved)
	require.Equal(t, serial.TotalGuesses, parallel.TotalGuesses)
	require.Equal(t, serial.Distribution, parallel.Distribution)
	require.Equal(t, serial.Failures, parallel.Failures)
	for i := range answers {
		require.Equal(t, serial.Games[i].Path(), parallel.Games[i].Path())
	}
}

func TestEvaluateUnknownAnswerFails(t *testing.T) {
	t.Parallel()
	c, err := words.NewCorpus([]string{"crane", "trace", "react"})
	require.NoError(t, err)
	e := engine(t, c, "crane")

	sum, err := Evaluate(context.Background(), e, []words.Word{words.MustParse("trace"), words.MustParse("zzzzz")}, Options{})
	require.NoError(t, err)
	require.Equal(t, 1, sum.Solved)
	require.Equal(t, []words.Word{words.MustParse("zzzzz")}, sum.Failures)
	require.Equal(t, solver.ReasonContradiction, sum.Games[1].Reason)
}

func TestEvaluateCancelled(t *testing.T) {
	t.Parallel()
	c, err := words.LoadCorpus("")
	require.NoError(t, err)
	answers, err := words.LoadAnswers("")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Evaluate(ctx, engine(t, c, "arise"), answers, Options{})
	require.ErrorIs(t, err, context.Canceled)
}
