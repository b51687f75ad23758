// internal/batch/batch.go
//
// Simulation mode: outcomes come from scoring the current guess against a
// known hidden answer.
// Responsibilities:
//   - Simulate: run one session to a terminal state for a single answer.
//   - Evaluate: simulate many answers in parallel and summarize the results
//     (success count, total guesses, guess distribution, failures).
//
// Summaries depend only on the engine and the answers list, never on
// scheduling: games are collected into per-answer slots and reduced in
// answer order.
package batch

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

// Game is the record of one simulated solve.
type Game struct {
	Answer  words.Word        `json:"answer"`
	Solved  bool              `json:"solved"`
	Guesses int               `json:"guesses"`
	Reason  solver.FailReason `json:"reason,omitempty"`
	History []solver.Round    `json:"history"`
}

// Path renders the guesses of a game, e.g. "arise crane trace".
func (g Game) Path() string {
	var b []byte
	for i, r := range g.History {
		if i > 0 {
			b = append(b, ' ')
		}
		b = append(b, r.Guess.String()...)
	}
	return string(b)
}

// Simulate solves answer with a fresh session of e.
func Simulate(ctx context.Context, e *solver.Engine, answer words.Word) (Game, error) {
	s := e.NewSession("sim-" + answer.String())
	for s.Status() == solver.StatusActive {
		if _, err := s.Apply(ctx, game.Score(s.Guess(), answer)); err != nil {
			return Game{}, fmt.Errorf("simulate %s: %w", answer, err)
		}
	}
	snap := s.Snapshot()
	return Game{
		Answer:  answer,
		Solved:  snap.Status == solver.StatusSolved,
		Guesses: snap.Round,
		Reason:  snap.Reason,
		History: snap.History,
	}, nil
}

// Options tunes Evaluate.
type Options struct {
	Workers  int        // concurrent games; <= 0 means GOMAXPROCS
	Progress func(Game) // called once per finished game; calls are serialized
}

// Summary aggregates an evaluation run.
type Summary struct {
	Total        int          `json:"total"`
	Solved       int          `json:"solved"`
	TotalGuesses int          `json:"totalGuesses"` // over every game, solved or not
	Distribution map[int]int  `json:"distribution"` // guesses → solved games
	Failures     []words.Word `json:"failures"`
	Games        []Game       `json:"-"`
}

// SuccessRate returns Solved/Total.
func (s Summary) SuccessRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Solved) / float64(s.Total)
}

// AverageGuesses returns the mean number of guesses of solved games.
func (s Summary) AverageGuesses() float64 {
	if s.Solved == 0 {
		return 0
	}
	sum := 0
	for n, c := range s.Distribution {
		sum += n * c
	}
	return float64(sum) / float64(s.Solved)
}

// Evaluate simulates every answer and summarizes the run.
func Evaluate(ctx context.Context, e *solver.Engine, answers []words.Word, opts Options) (Summary, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	games := make([]Game, len(answers))

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, a := range answers {
		i, a := i, a
		g.Go(func() error {
			res, err := Simulate(ctx, e, a)
			if err != nil {
				return err
			}
			games[i] = res
			if opts.Progress != nil {
				mu.Lock()
				opts.Progress(res)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}
	return Summarize(games), nil
}

// Summarize reduces games, in order, into a Summary.
func Summarize(games []Game) Summary {
	sum := Summary{Total: len(games), Distribution: map[int]int{}, Games: games}
	for _, g := range games {
		sum.TotalGuesses += g.Guesses
		if g.Solved {
			sum.Solved++
			sum.Distribution[g.Guesses]++
		} else {
			sum.Failures = append(sum.Failures, g.Answer)
		}
	}
	return sum
}
