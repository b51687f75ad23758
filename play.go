package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
)

var playSuggestions int

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Solve a live game by typing the colours Wordle shows",
	Long: `play proposes a guess, reads the feedback you got for it, and proposes the
next one until the puzzle is solved or the rounds run out.

Feedback is five letters: b (grey), y (yellow), g (green), e.g. "bygbb".
An empty line quits. Each round's search is bounded by ROUND_TIMEOUT.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return play(cmd.Context(), mustEngine(), cmd.InOrStdin(), cmd.OutOrStdout(), playOptions{
			Suggestions:  playSuggestions,
			RoundTimeout: cfg.RoundTimeout,
		})
	},
}

func init() {
	playCmd.Flags().IntVarP(&playSuggestions, "suggestions", "s", 5, "alternative guesses to show each round (0 hides them)")
}

type playOptions struct {
	Suggestions  int           // alternatives shown after each round; 0 hides them
	RoundTimeout time.Duration // bound on each round's ranking; <= 0 means none
}

// play runs the interactive loop, reading one outcome per line from in.
// A round whose ranking runs out of time leaves the session as it was and
// asks for the same feedback again.
func play(ctx context.Context, e *solver.Engine, in io.Reader, out io.Writer, opt playOptions) error {
	sess := e.NewSession(uuid.NewString())
	sc := bufio.NewScanner(in)

	for sess.Status() == solver.StatusActive {
		fmt.Fprintf(out, "\nguess %d: %s\nfeedback> ", sess.Snapshot().Round+1, sess.Guess().Upper())
		if !sc.Scan() {
			return sc.Err()
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			return nil
		}
		o, err := game.ParseOutcome(line)
		if errors.Is(err, game.ErrInvalidOutcome) {
			fmt.Fprintf(out, "  %v\n", err)
			continue
		}
		if err != nil {
			return err
		}

		rctx, cancel := roundContext(ctx, opt.RoundTimeout)
		st, err := sess.Apply(rctx, o)
		cancel()
		if errors.Is(err, context.DeadlineExceeded) {
			fmt.Fprintf(out, "  round timed out after %s, try again\n", opt.RoundTimeout)
			continue
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "  %d candidates left\n", st.Remaining)
		if st.Status == solver.StatusActive && opt.Suggestions > 0 && st.Remaining > 1 {
			if err := printSuggestions(ctx, out, sess, opt); err != nil {
				return err
			}
		}
	}

	snap := sess.Snapshot()
	switch {
	case snap.Status == solver.StatusSolved:
		fmt.Fprintf(out, "\nSolved in %d: %s\n", snap.Round, snap.NextGuess)
	case snap.Reason == solver.ReasonContradiction:
		fmt.Fprintln(out, "\nNo word in the corpus fits that feedback.")
	default:
		fmt.Fprintf(out, "\nOut of guesses with %d candidates left.\n", snap.Remaining)
	}
	return nil
}

// roundContext bounds one round by d, or only by ctx when d <= 0.
func roundContext(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

// printSuggestions lists the best alternatives; a timeout skips the list.
func printSuggestions(ctx context.Context, out io.Writer, sess *solver.Session, opt playOptions) error {
	rctx, cancel := roundContext(ctx, opt.RoundTimeout)
	defer cancel()
	top, err := sess.Suggestions(rctx, opt.Suggestions)
	if errors.Is(err, context.DeadlineExceeded) {
		fmt.Fprintln(out, "  (suggestions timed out)")
		return nil
	}
	if err != nil {
		return err
	}
	for _, s := range top {
		mark := " "
		if s.Candidate {
			mark = "*"
		}
		fmt.Fprintf(out, "  %s %s  %.3f bits\n", mark, s.Word.Upper(), s.Entropy)
	}
	return nil
}
