// internal/store/memory.go
//
// In-memory session table for the solver service.
//
// Characteristics:
//   - Stores *solver.Session objects keyed by session ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//     The table lock only guards the map; each session serializes its own
//     rounds.
//   - Sessions live until deleted; there is no implicit expiry.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"sync"

	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
)

// ErrNotFound is returned by Get and Delete for unknown session IDs.
var ErrNotFound = errors.New("session not found")

// Store defines the session table.
// Implementations may be backed by memory (this package), Redis, SQL, etc.
type Store interface {
	// Save adds or replaces a session under its ID.
	Save(ctx context.Context, s *solver.Session) error

	// Get retrieves a session by ID.
	Get(ctx context.Context, id string) (*solver.Session, error)

	// Delete removes a session by ID.
	Delete(ctx context.Context, id string) error

	// Len reports the number of live sessions.
	Len() int
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex               // guards sessions map
	sessions map[string]*solver.Session // keyed by Session.ID()
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*solver.Session)}
}

// Save adds or updates the session in the map.
func (m *memory) Save(ctx context.Context, s *solver.Session) error {
	if s.ID() == "" {
		return errors.New("session has no id")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID()] = s
	return nil
}

// Get looks up a session by ID.
func (m *memory) Get(ctx context.Context, id string) (*solver.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, ErrNotFound
}

// Delete drops a session.
func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(m.sessions, id)
	return nil
}

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
