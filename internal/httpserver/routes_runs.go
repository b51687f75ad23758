// internal/httpserver/routes_runs.go
//
// Read-only views of persisted batch evaluations:
//   - GET /runs?limit= → most recent runs first
//   - GET /runs/{id}   → one run with its per-answer games

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-solver/internal/results"
)

// mountRuns registers all /runs routes.
func (s *Server) mountRuns() {
	s.r.Route("/runs", func(r chi.Router) {
		r.Get("/", s.handleRuns)
		r.Get("/{id}", s.handleRun)
	})
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryInt(w, r, "limit", 20)
	if !ok {
		return
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	runs, err := s.runs.RecentRuns(r.Context(), limit)
	if err != nil {
		log.Error().Err(err).Msg("list runs")
		writeError(w, http.StatusInternalServerError, "db_error", "")
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"runs": runs})
}

type runRes struct {
	Run   results.Run       `json:"run"`
	Games []results.GameRow `json:"games"`
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	run, games, err := s.runs.Run(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, results.ErrNotFound) {
		writeError(w, http.StatusNotFound, "unknown_run", "")
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("load run")
		writeError(w, http.StatusInternalServerError, "db_error", "")
		return
	}
	if games == nil {
		games = []results.GameRow{}
	}
	_ = json.NewEncoder(w).Encode(runRes{Run: run, Games: games})
}
