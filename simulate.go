package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/go-solver/internal/batch"
	"github.com/robalobadob/wordle/apps/go-solver/internal/daily"
	"github.com/robalobadob/wordle/apps/go-solver/internal/results"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

var (
	simulateDate string

	batchWorkers int
	batchLimit   int

	runsLimit int
	runsBest  bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate [answer]",
	Short: "Solve a known answer and print every round",
	Long: `simulate plays the solver against a hidden answer, scoring each guess itself.
Without an answer, the answer of the day is picked from the answers list
(HMAC of DAILY_SALT and the UTC date).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSimulate,
}

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Evaluate the solver over the whole answers list",
	Long: `batch simulates every answer in the answers list and reports
(solved, total guesses), the guess distribution and the failures.
With DB_PATH set, the run is stored for later comparison.`,
	Args: cobra.NoArgs,
	RunE: runBatch,
}

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List stored batch runs (requires DB_PATH)",
	Args:  cobra.NoArgs,
	RunE:  runRuns,
}

func init() {
	simulateCmd.Flags().StringVar(&simulateDate, "date", "", "pick the answer of this UTC day (YYYY-MM-DD) instead of today")
	batchCmd.Flags().IntVarP(&batchWorkers, "workers", "w", 0, "concurrent games (default GOMAXPROCS)")
	batchCmd.Flags().IntVarP(&batchLimit, "limit", "n", 0, "only evaluate the first n answers")
	runsCmd.Flags().IntVarP(&runsLimit, "limit", "n", 20, "runs to list")
	runsCmd.Flags().BoolVar(&runsBest, "best", false, "order by solved count, then fewest guesses")
}

// ------------------------------- simulate ----------------------------------

func runSimulate(cmd *cobra.Command, args []string) error {
	e := mustEngine()

	var answer words.Word
	if len(args) == 1 {
		w, err := words.ParseWord(args[0])
		if err != nil {
			return err
		}
		answer = w
	} else {
		w, err := answerOfTheDay(simulateDate)
		if err != nil {
			return err
		}
		answer = w
	}

	g, err := batch.Simulate(cmd.Context(), e, answer)
	if err != nil {
		return err
	}
	printGame(cmd.OutOrStdout(), g)
	return nil
}

// answerOfTheDay picks the daily answer for date (YYYY-MM-DD, empty for today).
func answerOfTheDay(date string) (words.Word, error) {
	day := time.Now()
	if date != "" {
		d, err := time.Parse("2006-01-02", date)
		if err != nil {
			return words.Word{}, fmt.Errorf("--date: %w", err)
		}
		day = d
	}
	answers, err := words.LoadAnswers(cfg.AnswersFile)
	if err != nil {
		return words.Word{}, err
	}
	w, ok := daily.Answer(day, cfg.DailySalt, answers)
	if !ok {
		return words.Word{}, errors.New("answers list is empty")
	}
	log.Info().Str("date", daily.DateKey(day)).Msg("answer of the day")
	return w, nil
}

func printGame(out io.Writer, g batch.Game) {
	for i, r := range g.History {
		fmt.Fprintf(out, "%d. %s  %s  %d left\n", i+1, r.Guess.Upper(), r.Outcome, r.Remaining)
	}
	if g.Solved {
		fmt.Fprintf(out, "solved %s in %d\n", g.Answer.Upper(), g.Guesses)
		return
	}
	fmt.Fprintf(out, "failed on %s after %d (%s)\n", g.Answer.Upper(), g.Guesses, g.Reason)
}

// -------------------------------- batch ------------------------------------

func runBatch(cmd *cobra.Command, args []string) error {
	e := mustEngine()
	answers, err := words.LoadAnswers(cfg.AnswersFile)
	if err != nil {
		return err
	}
	if batchLimit > 0 && batchLimit < len(answers) {
		answers = answers[:batchLimit]
	}

	bar := progressbar.Default(int64(len(answers)))
	start := time.Now()
	sum, err := batch.Evaluate(cmd.Context(), e, answers, batch.Options{
		Workers:  batchWorkers,
		Progress: func(batch.Game) { _ = bar.Add(1) },
	})
	_ = bar.Finish()
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	printSummary(cmd.OutOrStdout(), sum, elapsed)
	if cfg.DBPath == "" {
		return nil
	}
	return saveRun(cmd.Context(), e, sum, elapsed)
}

func printSummary(out io.Writer, sum batch.Summary, elapsed time.Duration) {
	fmt.Fprintf(out, "\n(solved, total_guesses) = (%d, %d)\n", sum.Solved, sum.TotalGuesses)
	fmt.Fprintf(out, "success %.2f%%  average %.3f guesses  %d games in %s\n",
		100*sum.SuccessRate(), sum.AverageGuesses(), sum.Total, elapsed.Round(time.Millisecond))

	keys := make([]int, 0, len(sum.Distribution))
	for k := range sum.Distribution {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	for _, k := range keys {
		fmt.Fprintf(out, "  %d: %d\n", k, sum.Distribution[k])
	}
	if len(sum.Failures) > 0 {
		fmt.Fprintf(out, "failures (%d):", len(sum.Failures))
		for _, w := range sum.Failures {
			fmt.Fprintf(out, " %s", w)
		}
		fmt.Fprintln(out)
	}
}

func saveRun(ctx context.Context, e *solver.Engine, sum batch.Summary, elapsed time.Duration) error {
	rs, err := results.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer rs.Close()

	run := results.NewRun(e.Config(), e.Corpus().Len(), sum, elapsed)
	if err := rs.InsertRun(ctx, &run, sum.Games); err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	log.Info().Str("run", run.ID).Str("db", cfg.DBPath).Msg("run saved")
	return nil
}

// --------------------------------- runs ------------------------------------

func runRuns(cmd *cobra.Command, args []string) error {
	if cfg.DBPath == "" {
		return errors.New("DB_PATH is not set")
	}
	rs, err := results.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer rs.Close()

	var runs []results.Run
	if runsBest {
		runs, err = rs.BestRuns(cmd.Context(), runsLimit)
	} else {
		runs, err = rs.RecentRuns(cmd.Context(), runsLimit)
	}
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tOPENING\tROUNDS\tCANDIDATES ONLY\tSOLVED\tGUESSES\tMS")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%t\t%d/%d\t%d\t%d\n",
			r.ID, r.CreatedAt, r.Opening, r.MaxRounds, r.CandidatesOnly, r.Solved, r.Total, r.TotalGuesses, r.ElapsedMs)
	}
	return tw.Flush()
}
