package session

import (
	"fmt"
	"sync"

	"github.com/fairyhunter13/ai-interview-prep/internal/domain"
)

// Store is the process-wide session registry. It is the only in-memory
// persistence the service has; sessions live until process exit.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewStore constructs an empty Store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// Create registers and returns a new session.
func (st *Store) Create() *Session {
	s := New()
	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	return s
}

// Get returns the session with id, or ErrNotFound.
func (st *Store) Get(id string) (*Session, error) {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: session %s", domain.ErrNotFound, id)
	}
	return s, nil
}

// GetOrCreate resolves id when present, otherwise creates a new session.
func (st *Store) GetOrCreate(id string) (*Session, error) {
	if id == "" {
		return st.Create(), nil
	}
	return st.Get(id)
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
