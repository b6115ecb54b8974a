package service

import (
	"sync"

	"souschef/internal/domain"
)

// SessionRegistry keeps one in-memory session per transport user id.
// Sessions are never evicted.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session
}

// NewSessionRegistry creates an empty registry
func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{sessions: make(map[string]*domain.Session)}
}

// GetOrCreate returns the session for userID, creating it on first contact
func (r *SessionRegistry) GetOrCreate(userID string) *domain.Session {
	r.mu.RLock()
	s, ok := r.sessions[userID]
	r.mu.RUnlock()
	if ok {
		return s
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[userID]; ok {
		return s
	}
	s = domain.NewSession(userID)
	r.sessions[userID] = s
	return s
}

// Len returns the number of known sessions
func (r *SessionRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
