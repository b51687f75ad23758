// internal/results/store.go
//
// Persisted batch evaluation runs.
// A run row stores the engine settings and the (solved, total guesses)
// baseline; run_games stores one row per simulated answer.

package results

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/robalobadob/wordle/apps/go-solver/internal/batch"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
)

// createdAtLayout sorts lexicographically in time order.
const createdAtLayout = "2006-01-02T15:04:05.000000Z"

// ErrNotFound is returned by Run for unknown run IDs.
var ErrNotFound = errors.New("run not found")

// Run is one persisted evaluation.
type Run struct {
	ID             string `json:"id"`
	CreatedAt      string `json:"createdAt"`
	Opening        string `json:"opening"`
	MaxRounds      int    `json:"maxRounds"`
	CandidatesOnly bool   `json:"candidatesOnly"`
	CorpusSize     int    `json:"corpusSize"`
	Total          int    `json:"total"`
	Solved         int    `json:"solved"`
	TotalGuesses   int    `json:"totalGuesses"`
	ElapsedMs      int64  `json:"elapsedMs"`
}

// GameRow is one answer of a persisted run.
type GameRow struct {
	Answer  string `json:"answer"`
	Solved  bool   `json:"solved"`
	Guesses int    `json:"guesses"`
	Reason  string `json:"reason,omitempty"`
	Path    string `json:"path"`
}

// NewRun describes a finished evaluation of engine settings cfg.
func NewRun(cfg solver.Config, corpusSize int, sum batch.Summary, elapsed time.Duration) Run {
	return Run{
		Opening:        cfg.Opening.String(),
		MaxRounds:      cfg.MaxRounds,
		CandidatesOnly: cfg.CandidatesOnly,
		CorpusSize:     corpusSize,
		Total:          sum.Total,
		Solved:         sum.Solved,
		TotalGuesses:   sum.TotalGuesses,
		ElapsedMs:      elapsed.Milliseconds(),
	}
}

type Store struct{ db *sql.DB }

// Open opens the database at dsn and applies migrations.
func Open(dsn string) (*Store, error) {
	db, err := openDB(dsn)
	if err != nil {
		return nil, err
	}
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// InsertRun stores r and its games in one transaction, assigning r.ID and
// r.CreatedAt.
func (s *Store) InsertRun(ctx context.Context, r *Run, games []batch.Game) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	r.CreatedAt = time.Now().UTC().Format(createdAtLayout)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
        INSERT INTO runs
            (id, created_at, opening, max_rounds, candidates_only, corpus_size, total, solved, total_guesses, elapsed_ms)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.CreatedAt, r.Opening, r.MaxRounds, r.CandidatesOnly, r.CorpusSize,
		r.Total, r.Solved, r.TotalGuesses, r.ElapsedMs,
	); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
        INSERT OR IGNORE INTO run_games (run_id, answer, solved, guesses, reason, path)
        VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, g := range games {
		if _, err := stmt.ExecContext(ctx, r.ID, g.Answer.String(), g.Solved, g.Guesses, string(g.Reason), g.Path()); err != nil {
			return err
		}
	}
	return tx.Commit()
}

const runColumns = `id, created_at, opening, max_rounds, candidates_only, corpus_size, total, solved, total_guesses, elapsed_ms`

func scanRun(row interface{ Scan(...any) error }) (Run, error) {
	var r Run
	err := row.Scan(&r.ID, &r.CreatedAt, &r.Opening, &r.MaxRounds, &r.CandidatesOnly, &r.CorpusSize,
		&r.Total, &r.Solved, &r.TotalGuesses, &r.ElapsedMs)
	return r, err
}

// RecentRuns lists runs, newest first. Default limit is 20.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	return s.queryRuns(ctx, `ORDER BY created_at DESC, rowid DESC`, limit)
}

// BestRuns lists runs by solved count, then fewest total guesses.
func (s *Store) BestRuns(ctx context.Context, limit int) ([]Run, error) {
	return s.queryRuns(ctx, `ORDER BY solved DESC, total_guesses ASC, created_at ASC`, limit)
}

func (s *Store) queryRuns(ctx context.Context, order string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `SELECT `+runColumns+` FROM runs `+order+` LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Run, 0, limit)
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Run loads one run and its games, ordered by answer.
func (s *Store) Run(ctx context.Context, id string) (Run, []GameRow, error) {
	r, err := scanRun(s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id=?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, nil, ErrNotFound
	}
	if err != nil {
		return Run{}, nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
        SELECT answer, solved, guesses, reason, path
        FROM run_games WHERE run_id=? ORDER BY answer`, id)
	if err != nil {
		return Run{}, nil, err
	}
	defer rows.Close()
	var games []GameRow
	for rows.Next() {
		var g GameRow
		if err := rows.Scan(&g.Answer, &g.Solved, &g.Guesses, &g.Reason, &g.Path); err != nil {
			return Run{}, nil, err
		}
		games = append(games, g)
	}
	return r, games, rows.Err()
}
