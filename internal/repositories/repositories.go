// package repositories provides session persistence implementations.
//
// Both stores implement [models.SessionStore]. The in-memory store backs
// tests and single-process development; the SQLite store survives restarts.
package repositories

import (
	"sync"
	"time"

	"github.com/desertthunder/watchlog/internal/models"
	"github.com/desertthunder/watchlog/internal/shared"
)

var (
	_ models.SessionStore = (*MemorySessionStore)(nil)
	_ models.SessionStore = (*SQLiteSessionStore)(nil)
)

// MemorySessionStore keeps sessions in a mutex-guarded map.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]models.Session
}

// NewMemorySessionStore creates an empty in-memory store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]models.Session)}
}

// Create inserts a new session.
func (m *MemorySessionStore) Create(session *models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}
	m.sessions[session.ID] = *session
	return nil
}

// Get retrieves a session by ID.
func (m *MemorySessionStore) Get(id string) (*models.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, ok := m.sessions[id]
	if !ok {
		return nil, shared.ErrSessionNotFound
	}
	return &session, nil
}

// Update replaces an existing session.
func (m *MemorySessionStore) Update(session *models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[session.ID]; !ok {
		return shared.ErrSessionNotFound
	}
	m.sessions[session.ID] = *session
	return nil
}

// Delete removes a session by ID.
func (m *MemorySessionStore) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return shared.ErrSessionNotFound
	}
	delete(m.sessions, id)
	return nil
}

// Purge removes sessions expired as of now, returning the count removed.
func (m *MemorySessionStore) Purge(now time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, session := range m.sessions {
		if session.Expired(now) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed, nil
}

// Count returns the number of live sessions.
func (m *MemorySessionStore) Count() (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions), nil
}
