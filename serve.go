package main

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/go-solver/internal/httpserver"
	"github.com/robalobadob/wordle/apps/go-solver/internal/results"
	"github.com/robalobadob/wordle/apps/go-solver/internal/store"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP solver service",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	e := mustEngine()

	answers, err := words.LoadAnswers(cfg.AnswersFile)
	if err != nil {
		log.Warn().Err(err).Msg("answers list unavailable")
	}

	// /runs is mounted only with a database; a nil *results.Store must not
	// become a non-nil RunStore.
	var runs httpserver.RunStore
	if cfg.DBPath != "" {
		rs, err := results.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer rs.Close()
		runs = rs
	}

	srv := httpserver.New(e, store.NewMemoryStore(), runs, httpserver.Options{
		SessionSecret: cfg.SessionSecret,
		SessionTTL:    cfg.SessionTTL,
		RoundTimeout:  cfg.RoundTimeout,
		ClientOrigin:  cfg.ClientOrigin,
		SecureCookie:  os.Getenv("NODE_ENV") == "production",
		AnswersCount:  len(answers),
	})

	log.Info().
		Str("port", cfg.Port).
		Int("corpus", e.Corpus().Len()).
		Str("opening", e.Config().Opening.String()).
		Bool("runs", runs != nil).
		Msg("starting go-solver")
	return srv.Start(cmd.Context(), ":"+cfg.Port)
}
