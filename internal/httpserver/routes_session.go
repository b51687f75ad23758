// internal/httpserver/routes_session.go
//
// HTTP routes for solver sessions.
// Exposes:
//   - POST   /session/reset       → create or reinitialize the caller's session
//   - POST   /session/advance     → apply the b/y/g feedback for the current guess
//   - GET    /session             → snapshot with history
//   - GET    /session/candidates  → remaining candidate words
//   - GET    /session/suggestions → top-n ranked guesses
//   - DELETE /session             → drop the session
//
// Legacy single-page endpoints share the same sessions:
//   - POST /reset_game    → {word}
//   - POST /get_next_word → {word, candidates_remaining}; starts a session
//     when the caller has none.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
	"github.com/robalobadob/wordle/apps/go-solver/internal/store"
)

// errorWord is the legacy next word of a session with no consistent candidates.
const errorWord = "ERROR"

const (
	defaultCandidatesLimit = 100
	defaultSuggestions     = 10
	maxSuggestions         = 50
)

// mountSession registers all /session routes.
func (s *Server) mountSession() {
	s.r.Route("/session", func(r chi.Router) {
		r.Post("/reset", s.handleReset)
		r.Post("/advance", s.handleAdvance)
		r.Get("/", s.handleSnapshot)
		r.Get("/candidates", s.handleCandidates)
		r.Get("/suggestions", s.handleSuggestions)
		r.Delete("/", s.handleDelete)
	})
}

// mountLegacy registers the original single-page endpoints.
func (s *Server) mountLegacy() {
	s.r.Post("/reset_game", s.handleLegacyReset)
	s.r.Post("/get_next_word", s.handleLegacyNext)
}

// -----------------------------------------------------------------------------
// session lookup

// lookup resolves the caller's session, writing 401/404 on failure.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*solver.Session, bool) {
	sid, err := s.tokens.sessionID(r)
	switch {
	case errors.Is(err, errNoToken):
		writeError(w, http.StatusUnauthorized, "missing_token", "")
		return nil, false
	case err != nil:
		writeError(w, http.StatusUnauthorized, "invalid_token", "")
		return nil, false
	}
	sess, err := s.store.Get(r.Context(), sid)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "unknown_session", "")
		return nil, false
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "store_failed", "")
		return nil, false
	}
	return sess, true
}

// resetOrCreate reinitializes the caller's session, or creates one when the
// request carries no usable token. It always (re)issues the token cookie.
func (s *Server) resetOrCreate(w http.ResponseWriter, r *http.Request) (*solver.Session, string, bool) {
	var sess *solver.Session
	if sid, err := s.tokens.sessionID(r); err == nil {
		if found, err := s.store.Get(r.Context(), sid); err == nil {
			sess = found
			sess.Reset()
		}
	}
	if sess == nil {
		var ok bool
		if sess, ok = s.create(w, r); !ok {
			return nil, "", false
		}
	}
	tok, exp, err := s.tokens.sign(sess.ID())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "sign_failed", "")
		return nil, "", false
	}
	s.tokens.setCookie(w, tok, exp)
	return sess, tok, true
}

// create starts and stores a fresh session.
func (s *Server) create(w http.ResponseWriter, r *http.Request) (*solver.Session, bool) {
	sess := s.engine.NewSession(uuid.NewString())
	if err := s.store.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save session")
		writeError(w, http.StatusInternalServerError, "save_failed", "")
		return nil, false
	}
	log.Debug().Str("session", sess.ID()).Msg("session created")
	return sess, true
}

// parseFeedback decodes {"feedback": "..."} into an outcome, writing 400 on failure.
func parseFeedback(w http.ResponseWriter, r *http.Request) (game.Outcome, bool) {
	var req struct {
		Feedback string `json:"feedback"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_feedback", "bad json")
		return 0, false
	}
	o, err := game.ParseOutcome(strings.TrimSpace(req.Feedback))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_feedback", err.Error())
		return 0, false
	}
	return o, true
}

// nextWord renders the guess to show after step.
func nextWord(st solver.Step) string {
	if st.Status == solver.StatusFailed && st.Reason == solver.ReasonContradiction {
		return errorWord
	}
	if st.Guess.IsZero() {
		return ""
	}
	return st.Guess.Upper()
}

// -----------------------------------------------------------------------------
// /session/reset

type resetRes struct {
	SessionID           string `json:"sessionId"`
	Token               string `json:"token"`
	NextGuess           string `json:"nextGuess"`
	CandidatesRemaining int    `json:"candidatesRemaining"`
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	sess, tok, ok := s.resetOrCreate(w, r)
	if !ok {
		return
	}
	st := sess.Snapshot()
	_ = json.NewEncoder(w).Encode(resetRes{
		SessionID:           sess.ID(),
		Token:               tok,
		NextGuess:           st.NextGuess,
		CandidatesRemaining: st.Remaining,
	})
}

// -----------------------------------------------------------------------------
// /session/advance

type advanceRes struct {
	NextGuess           string            `json:"nextGuess"`
	CandidatesRemaining int               `json:"candidatesRemaining"`
	Status              solver.Status     `json:"status"`
	Round               int               `json:"round"`
	Reason              solver.FailReason `json:"reason,omitempty"`
}

// handleAdvance applies one round. A finished session answers 409; a ranking
// cut short by the request deadline answers 503 and changes nothing.
func (s *Server) handleAdvance(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	o, ok := parseFeedback(w, r)
	if !ok {
		return
	}
	st, err := sess.Apply(r.Context(), o)
	if err != nil {
		writeRankError(w, r, err)
		return
	}
	_ = json.NewEncoder(w).Encode(advanceRes{
		NextGuess:           nextWord(st),
		CandidatesRemaining: st.Remaining,
		Status:              st.Status,
		Round:               st.Round,
		Reason:              st.Reason,
	})
}

// -----------------------------------------------------------------------------
// read-only views

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	_ = json.NewEncoder(w).Encode(sess.Snapshot())
}

type candidatesRes struct {
	Count      int      `json:"count"`
	Candidates []string `json:"candidates"`
}

func (s *Server) handleCandidates(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	limit, ok := queryInt(w, r, "limit", defaultCandidatesLimit)
	if !ok {
		return
	}
	set := sess.Candidates()
	ws := set.Words()
	if limit > 0 && limit < len(ws) {
		ws = ws[:limit]
	}
	out := candidatesRes{Count: set.Len(), Candidates: make([]string, len(ws))}
	for i, c := range ws {
		out.Candidates[i] = c.String()
	}
	_ = json.NewEncoder(w).Encode(out)
}

func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	n, ok := queryInt(w, r, "n", defaultSuggestions)
	if !ok {
		return
	}
	if n <= 0 || n > maxSuggestions {
		n = maxSuggestions
	}
	scored, err := sess.Suggestions(r.Context(), n)
	if err != nil {
		writeRankError(w, r, err)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"suggestions": scored})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	if err := s.store.Delete(r.Context(), sess.ID()); err != nil && !errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusInternalServerError, "store_failed", "")
		return
	}
	s.tokens.clearCookie(w)
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// -----------------------------------------------------------------------------
// legacy

func (s *Server) handleLegacyReset(w http.ResponseWriter, r *http.Request) {
	sess, _, ok := s.resetOrCreate(w, r)
	if !ok {
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]string{"word": sess.Guess().Upper()})
}

type legacyNextRes struct {
	Word                string `json:"word"`
	CandidatesRemaining int    `json:"candidates_remaining"`
}

// handleLegacyNext advances the caller's session, starting one on the fly
// for callers without a usable token.
func (s *Server) handleLegacyNext(w http.ResponseWriter, r *http.Request) {
	o, ok := parseFeedback(w, r)
	if !ok {
		return
	}

	var sess *solver.Session
	if sid, err := s.tokens.sessionID(r); err == nil {
		sess, _ = s.store.Get(r.Context(), sid)
	}
	if sess == nil {
		if sess, ok = s.create(w, r); !ok {
			return
		}
		tok, exp, err := s.tokens.sign(sess.ID())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "sign_failed", "")
			return
		}
		s.tokens.setCookie(w, tok, exp)
	}

	// A finished session keeps answering with its final step, so a
	// contradiction keeps reporting the ERROR sentinel until reset.
	st, err := sess.Apply(r.Context(), o)
	if err != nil && !errors.Is(err, solver.ErrSessionFinished) {
		writeRankError(w, r, err)
		return
	}
	_ = json.NewEncoder(w).Encode(legacyNextRes{Word: nextWord(st), CandidatesRemaining: st.Remaining})
}

// queryInt reads an optional integer query parameter, writing 400 on garbage.
func queryInt(w http.ResponseWriter, r *http.Request, key string, def int) (int, bool) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def, true
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_"+key, "")
		return 0, false
	}
	return n, true
}
