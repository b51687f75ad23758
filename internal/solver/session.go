// internal/solver/session.go
//
// Round-based solve loop.
// Responsibilities:
//   - Hold one session's state: candidates, history, current guess, status.
//   - Apply one outcome per round and advance the state machine:
//       active → active | solved | failed (solved/failed are terminal).
//   - Serialize concurrent callers on the same session.
//
// Notes:
//   - Round 1 always plays the configured opening guess; it is never ranked.
//   - Round() is the number of guesses whose outcome has been applied, so a
//     session makes at most MaxRounds guesses.
//   - A transition is atomic: if ranking the next guess fails (e.g. deadline),
//     the session is left exactly as it was.
package solver

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

const (
	DefaultMaxRounds = 6
	DefaultOpening   = "arise"
)

// Status is the coarse state of a session.
type Status int

const (
	StatusActive Status = iota
	StatusSolved
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusSolved:
		return "solved"
	case StatusFailed:
		return "failed"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// MarshalText renders the status for JSON.
func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// FailReason explains a failed session.
type FailReason string

const (
	ReasonNone          FailReason = ""
	ReasonContradiction FailReason = "contradiction" // no corpus word fits the outcomes
	ReasonExhausted     FailReason = "exhausted"     // round limit reached
)

// Config fixes the rules shared by every session of an Engine.
type Config struct {
	Opening        words.Word // round 1 guess
	MaxRounds      int        // guesses per session
	CandidatesOnly bool       // rank only remaining candidates instead of the corpus
}

// DefaultConfig returns the standard six-round game opening with "arise".
func DefaultConfig() Config {
	return Config{Opening: words.MustParse(DefaultOpening), MaxRounds: DefaultMaxRounds}
}

// Engine binds a corpus, a ranker and the game rules, and creates sessions.
type Engine struct {
	corpus *words.Corpus
	ranker *Ranker
	cfg    Config
	full   *game.CandidateSet
}

// NewEngine validates cfg, filling zero values with defaults.
func NewEngine(corpus *words.Corpus, ranker *Ranker, cfg Config) (*Engine, error) {
	if corpus == nil || corpus.Len() == 0 {
		return nil, fmt.Errorf("solver: %w", words.ErrCorpusLoad)
	}
	if ranker == nil {
		return nil, fmt.Errorf("solver: nil ranker")
	}
	if cfg.Opening.IsZero() {
		cfg.Opening = words.MustParse(DefaultOpening)
	}
	if cfg.MaxRounds <= 0 {
		cfg.MaxRounds = DefaultMaxRounds
	}
	return &Engine{corpus: corpus, ranker: ranker, cfg: cfg, full: game.FullSet(corpus)}, nil
}

// Corpus returns the engine's corpus.
func (e *Engine) Corpus() *words.Corpus { return e.corpus }

// Config returns the engine's rules.
func (e *Engine) Config() Config { return e.cfg }

// NewSession starts a session in its initial state.
func (e *Engine) NewSession(id string) *Session {
	s := &Session{id: id, engine: e, createdAt: time.Now().UTC()}
	s.resetLocked()
	return s
}

// Round is one applied (guess, outcome) pair.
type Round struct {
	Guess     words.Word   `json:"guess"`
	Outcome   game.Outcome `json:"outcome"`
	Remaining int          `json:"remaining"` // candidates left after this round
}

// Step is the result of one transition.
type Step struct {
	Status    Status
	Reason    FailReason
	Guess     words.Word // next guess when active, the answer when solved, zero when failed
	Remaining int
	Round     int
}

// Snapshot is a point-in-time copy of a session for rendering.
type Snapshot struct {
	ID        string     `json:"sessionId"`
	Status    Status     `json:"status"`
	Reason    FailReason `json:"reason,omitempty"`
	Round     int        `json:"round"`
	NextGuess string     `json:"nextGuess,omitempty"`
	Remaining int        `json:"candidatesRemaining"`
	History   []Round    `json:"history"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Session is one run of the solve loop. All methods are safe for concurrent
// use; calls on the same session are mutually exclusive.
type Session struct {
	mu         sync.Mutex
	id         string
	engine     *Engine
	candidates *game.CandidateSet
	history    []Round
	guess      words.Word
	status     Status
	reason     FailReason
	createdAt  time.Time
	updatedAt  time.Time
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Guess returns the guess the next outcome refers to.
func (s *Session) Guess() words.Word {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.guess
}

// Status returns the current status.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Candidates returns the current candidate set. The set is immutable.
func (s *Session) Candidates() *game.CandidateSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.candidates
}

// Apply feeds the outcome of the current guess into the state machine.
// Terminal states are reported through Step.Status, not as errors.
func (s *Session) Apply(ctx context.Context, outcome game.Outcome) (Step, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusActive {
		return s.stepLocked(), ErrSessionFinished
	}

	next := s.candidates.Filter(s.guess, outcome)
	played := len(s.history) + 1
	status, reason := StatusActive, ReasonNone
	var guess words.Word

	switch {
	case outcome.IsSolved():
		status, guess = StatusSolved, s.guess
	case next.Len() == 0:
		status, reason = StatusFailed, ReasonContradiction
	case played >= s.engine.cfg.MaxRounds:
		status, reason = StatusFailed, ReasonExhausted
	default:
		allowed := s.engine.full
		if s.engine.cfg.CandidatesOnly {
			allowed = next
		}
		g, err := s.engine.ranker.Best(ctx, next, allowed)
		if err != nil {
			return s.stepLocked(), fmt.Errorf("rank guess %d: %w", played+1, err)
		}
		guess = g
	}

	s.history = append(s.history, Round{Guess: s.guess, Outcome: outcome, Remaining: next.Len()})
	s.candidates = next
	s.guess = guess
	s.status = status
	s.reason = reason
	s.updatedAt = time.Now().UTC()

	log.Debug().
		Str("session", s.id).
		Int("round", played).
		Str("outcome", outcome.String()).
		Int("remaining", next.Len()).
		Stringer("status", status).
		Msg("solver: round applied")

	return s.stepLocked(), nil
}

// Suggestions ranks the top n guesses for the current candidates.
func (s *Session) Suggestions(ctx context.Context, n int) ([]Scored, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	allowed := s.engine.full
	if s.engine.cfg.CandidatesOnly {
		allowed = s.candidates
	}
	return s.engine.ranker.Rank(ctx, s.candidates, allowed, n)
}

// Reset returns the session to its initial state.
func (s *Session) Reset() Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
	return s.stepLocked()
}

// Snapshot copies the session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{
		ID:        s.id,
		Status:    s.status,
		Reason:    s.reason,
		Round:     len(s.history),
		Remaining: s.candidates.Len(),
		History:   append([]Round(nil), s.history...),
		CreatedAt: s.createdAt,
		UpdatedAt: s.updatedAt,
	}
	if !s.guess.IsZero() {
		snap.NextGuess = s.guess.Upper()
	}
	return snap
}

func (s *Session) resetLocked() {
	s.candidates = s.engine.full
	s.history = nil
	s.guess = s.engine.cfg.Opening
	s.status = StatusActive
	s.reason = ReasonNone
	s.updatedAt = time.Now().UTC()
}

func (s *Session) stepLocked() Step {
	return Step{
		Status:    s.status,
		Reason:    s.reason,
		Guess:     s.guess,
		Remaining: s.candidates.Len(),
		Round:     len(s.history),
	}
}
