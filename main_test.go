package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/go-solver/internal/batch"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

func testEngine(t *testing.T, opening string) *solver.Engine {
	t.Helper()
	corpus, err := words.NewCorpus([]string{"crane", "trace", "react", "cater", "trice"})
	require.NoError(t, err)
	ranker, err := solver.NewRanker(solver.RankerConfig{Workers: 1})
	require.NoError(t, err)
	e, err := solver.NewEngine(corpus, ranker, solver.Config{Opening: words.MustParse(opening), MaxRounds: 6})
	require.NoError(t, err)
	return e
}

func TestPlaySolves(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader("bogus\nYGGBG\nggggg\n")
	require.NoError(t, play(context.Background(), testEngine(t, "crane"), in, &out, playOptions{}))

	s := out.String()
	require.Contains(t, s, "guess 1: CRANE")
	require.Contains(t, s, "invalid outcome")
	require.Contains(t, s, "guess 2: TRACE")
	require.Contains(t, s, "Solved in 2: TRACE")
}

func TestPlayShowsSuggestions(t *testing.T) {
	var out bytes.Buffer
	// cater cannot tell react from trace.
	in := strings.NewReader("yyyyy\n")
	require.NoError(t, play(context.Background(), testEngine(t, "cater"), in, &out, playOptions{Suggestions: 3}))

	s := out.String()
	require.Contains(t, s, "2 candidates left")
	require.Contains(t, s, "* REACT")
	require.Contains(t, s, "guess 2: CRANE")
}

func TestPlayContradiction(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, play(context.Background(), testEngine(t, "crane"), strings.NewReader("bbbbb\n"), &out, playOptions{}))
	require.Contains(t, out.String(), "No word in the corpus fits")
}

func TestPlayRoundTimeoutReprompts(t *testing.T) {
	corpus, err := words.LoadCorpus("")
	require.NoError(t, err)
	ranker, err := solver.NewRanker(solver.RankerConfig{Workers: 1})
	require.NoError(t, err)
	e, err := solver.NewEngine(corpus, ranker, solver.Config{Opening: words.MustParse("arise"), MaxRounds: 6})
	require.NoError(t, err)

	// bbbbb leaves dozens of candidates, so the next guess must be ranked.
	var out bytes.Buffer
	in := strings.NewReader("bbbbb\n")
	require.NoError(t, play(context.Background(), e, in, &out, playOptions{RoundTimeout: time.Nanosecond}))

	s := out.String()
	require.Contains(t, s, "round timed out")
	require.Equal(t, 2, strings.Count(s, "guess 1: ARISE"))
	require.NotContains(t, s, "candidates left")
}

func TestPrintSummary(t *testing.T) {
	e := testEngine(t, "crane")
	answers := e.Corpus().Words()
	sum, err := batch.Evaluate(context.Background(), e, answers, batch.Options{Workers: 2})
	require.NoError(t, err)

	var out bytes.Buffer
	printSummary(&out, sum, time.Second)
	require.Contains(t, out.String(), "(solved, total_guesses) = (5, 9)")
	require.Contains(t, out.String(), "  2: 4")
	require.NotContains(t, out.String(), "failures")
}
