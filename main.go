// main.go
//
// Entry point for go-solver.
// Responsibilities:
//   - Load .env, then environment configuration (internal/config).
//   - Apply global flags over the environment.
//   - Configure zerolog: level from LOG_LEVEL, console output for CLI commands.
//   - Dispatch subcommands: serve, play, simulate, batch, runs.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/go-solver/internal/config"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

var (
	// cfg is the effective configuration, set before any subcommand runs.
	cfg config.Config

	// Global flags
	flagWords          string
	flagAnswers        string
	flagOpening        string
	flagMaxRounds      int
	flagCandidatesOnly bool
	flagLogLevel       string
)

var rootCmd = &cobra.Command{
	Use:   "go-solver",
	Short: "Entropy-maximizing Wordle solver",
	Long: `go-solver proposes Wordle guesses that maximize the expected information
gained from the colour feedback, narrowing the candidate answers each round.

Feedback is written as five letters: b (grey), y (yellow), g (green).`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return err
		}
		applyFlags(cmd, &c)
		if err := c.Validate(); err != nil {
			return err
		}
		cfg = c

		if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
			zerolog.SetGlobalLevel(lvl)
		}
		if cmd.Name() != "serve" {
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
		}
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagWords, "words", "", "corpus file (default: embedded list, or WORDS_FILE)")
	pf.StringVar(&flagAnswers, "answers", "", "answers file for simulate/batch (default: embedded list, or ANSWERS_FILE)")
	pf.StringVar(&flagOpening, "opening", "", "first guess (default: OPENING_GUESS or arise)")
	pf.IntVar(&flagMaxRounds, "max-rounds", 0, "guesses per game (default: MAX_ROUNDS or 6)")
	pf.BoolVar(&flagCandidatesOnly, "candidates-only", false, "only guess words that can still be the answer")
	pf.StringVar(&flagLogLevel, "log-level", "", "zerolog level (default: LOG_LEVEL or info)")

	rootCmd.AddCommand(serveCmd, playCmd, simulateCmd, batchCmd, runsCmd)
}

// applyFlags overrides c with the global flags set on the command line.
func applyFlags(cmd *cobra.Command, c *config.Config) {
	f := cmd.Flags()
	if f.Changed("words") {
		c.WordsFile = flagWords
	}
	if f.Changed("answers") {
		c.AnswersFile = flagAnswers
	}
	if f.Changed("opening") {
		c.Opening = flagOpening
	}
	if f.Changed("max-rounds") {
		c.MaxRounds = flagMaxRounds
	}
	if f.Changed("candidates-only") {
		c.CandidatesOnly = flagCandidatesOnly
	}
	if f.Changed("log-level") {
		c.LogLevel = flagLogLevel
	}
}

// mustEngine loads the corpus and builds the solver engine.
// A corpus that cannot be loaded is fatal.
func mustEngine() *solver.Engine {
	corpus, err := words.LoadCorpus(cfg.WordsFile)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.WordsFile).Msg("failed to load word corpus")
	}
	ranker, err := solver.NewRanker(cfg.RankerConfig())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build ranker")
	}
	sc := cfg.SolverConfig()
	if !corpus.Contains(sc.Opening) {
		log.Warn().Stringer("opening", sc.Opening).Msg("opening guess is not in the corpus")
	}
	e, err := solver.NewEngine(corpus, ranker, sc)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build solver")
	}
	log.Debug().Int("corpus", corpus.Len()).Stringer("opening", sc.Opening).Int("maxRounds", sc.MaxRounds).Msg("solver ready")
	return e
}

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("go-solver")
		stop()
		os.Exit(1)
	}
}
