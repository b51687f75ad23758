// internal/httpserver/server.go
//
// HTTP server wiring for the solver service.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, request log).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Session endpoints (token required except on reset): mounted under /session.
//   - Legacy single-page endpoints: POST /reset_game, POST /get_next_word.
//   - Persisted batch runs: /runs, mounted only when a run store is configured.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so cookies work).
//   - The Timeout middleware bounds every request; a ranking cut short by the
//     deadline answers 503 and leaves the session unchanged.
//   - Start serves until its context is cancelled, then drains in-flight requests.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-solver/internal/results"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
	"github.com/robalobadob/wordle/apps/go-solver/internal/store"
)

// RunStore is the read side of the batch run database.
type RunStore interface {
	RecentRuns(ctx context.Context, limit int) ([]results.Run, error)
	Run(ctx context.Context, id string) (results.Run, []results.GameRow, error)
}

// Options configures a Server.
type Options struct {
	SessionSecret string
	SessionTTL    time.Duration
	RoundTimeout  time.Duration
	ClientOrigin  string
	SecureCookie  bool
	AnswersCount  int             // reported by /debug/words
	Logger        *zerolog.Logger // request logger; defaults to the global logger
}

// Server bundles router, solver engine, session table and optional run store.
type Server struct {
	r       *chi.Mux
	engine  *solver.Engine
	store   store.Store
	runs    RunStore
	tokens  tokens
	answers int
}

// New constructs a Server, installs middleware, and registers routes.
// runs may be nil.
func New(e *solver.Engine, st store.Store, runs RunStore, opt Options) *Server {
	if opt.RoundTimeout <= 0 {
		opt.RoundTimeout = 10 * time.Second
	}
	if opt.SessionTTL <= 0 {
		opt.SessionTTL = 24 * time.Hour
	}
	logger := log.Logger
	if opt.Logger != nil {
		logger = *opt.Logger
	}
	s := &Server{
		r:       chi.NewRouter(),
		engine:  e,
		store:   st,
		runs:    runs,
		tokens:  tokens{secret: []byte(opt.SessionSecret), ttl: opt.SessionTTL, secure: opt.SecureCookie},
		answers: opt.AnswersCount,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(hlog.NewHandler(logger))         // per-request logger in the context
	s.r.Use(requestIDField)                  // tag it with the request id
	s.r.Use(hlog.AccessHandler(accessLog))   // one log line per request
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(opt.RoundTimeout)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(cors(opt.ClientOrigin))          // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"wordle-solver","endpoints":["/health","POST /session/reset","POST /session/advance","GET /session","/runs"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]int{"corpus": s.engine.Corpus().Len(), "answers": s.answers})
	})

	s.mountSession()
	s.mountLegacy()
	if s.runs != nil {
		s.mountRuns()
	}

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", r.URL.Path)
	})

	return s
}

// shutdownGrace bounds how long in-flight requests may finish after ctx ends.
const shutdownGrace = 15 * time.Second

// Start serves HTTP on addr until ctx is cancelled, then shuts down
// gracefully. It returns nil after a clean shutdown.
func (s *Server) Start(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.serve(ctx, ln)
}

func (s *Server) serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.r,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Info().Str("addr", ln.Addr().String()).Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// requestIDField adds chi's request id to the request logger as reqId.
func requestIDField(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := chimw.GetReqID(r.Context()); id != "" {
			zerolog.Ctx(r.Context()).UpdateContext(func(c zerolog.Context) zerolog.Context {
				return c.Str("reqId", id)
			})
		}
		next.ServeHTTP(w, r)
	})
}

func accessLog(r *http.Request, status, size int, took time.Duration) {
	hlog.FromRequest(r).Info().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Int("size", size).
		Dur("took", took).
		Msg("http")
}

// ------------------------------- helpers -----------------------------------

// writeError writes {"error":code} (plus an optional detail) with status.
func writeError(w http.ResponseWriter, status int, code, detail string) {
	body := map[string]string{"error": code}
	if detail != "" {
		body["detail"] = detail
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeRankError maps a failed ranking to a response.
func writeRankError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		writeError(w, http.StatusServiceUnavailable, "round_timeout", "")
	case errors.Is(err, solver.ErrSessionFinished):
		writeError(w, http.StatusConflict, "session_finished", "")
	case errors.Is(err, solver.ErrContradiction):
		writeError(w, http.StatusConflict, "contradiction", "")
	default:
		hlog.FromRequest(r).Error().Err(err).Msg("rank")
		writeError(w, http.StatusInternalServerError, "rank_failed", "")
	}
}
