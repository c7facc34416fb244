// internal/store/memory.go
//
// In-memory implementation of the Store interface.
// Holds live interactive sessions; state is lost when the process restarts.
//
// Characteristics:
//   - Sessions keyed by ID in a map guarded by an RWMutex.
//   - Each entry carries its own mutex so Update runs one writer per session
//     while other sessions proceed in parallel.
//   - Errors are returned for missing IDs.

package store

import (
	"context"
	"errors"
	"sync"

	"github.com/robalobadob/wordguesser/internal/session"
)

var ErrNotFound = errors.New("store: session not found")

// Store defines the interface for live sessions.
type Store interface {
	// Save adds or replaces a session.
	Save(ctx context.Context, s *session.Session) error

	// Get returns the view of a session.
	Get(ctx context.Context, id string) (session.View, error)

	// Update runs fn with exclusive access to the session.
	Update(ctx context.Context, id string, fn func(*session.Session) error) error

	// Delete drops a session. Missing IDs are not an error.
	Delete(ctx context.Context, id string) error

	// Len reports how many sessions are held.
	Len() int
}

type entry struct {
	mu sync.Mutex
	s  *session.Session
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex      // guards sessions map
	sessions map[string]*entry // keyed by Session.ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*entry)}
}

func (m *memory) Save(ctx context.Context, s *session.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = &entry{s: s}
	return nil
}

func (m *memory) lookup(id string) (*entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.sessions[id]; ok {
		return e, nil
	}
	return nil, ErrNotFound
}

// Get takes the session lock so a view is never read mid-update.
func (m *memory) Get(ctx context.Context, id string) (session.View, error) {
	e, err := m.lookup(id)
	if err != nil {
		return session.View{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.s.View(), nil
}

func (m *memory) Update(ctx context.Context, id string, fn func(*session.Session) error) error {
	e, err := m.lookup(id)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.s)
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
