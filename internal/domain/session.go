package domain

import "sync"

// Session holds one user's in-memory dialogue state.
// Callers hold Lock for the duration of a turn.
type Session struct {
	mu sync.Mutex

	UserID         string
	User           *Entity
	Context        DialogueContext
	PendingSubject *Entity
	Candidates     []RecipeCandidate
	// Started is set by the first turn of a conversation cycle that reaches the engine
	Started bool
}

// NewSession creates an empty session for a transport user id
func NewSession(userID string) *Session {
	return &Session{UserID: userID}
}

// Lock acquires exclusive access for a turn
func (s *Session) Lock() {
	s.mu.Lock()
}

// Unlock releases the turn lock
func (s *Session) Unlock() {
	s.mu.Unlock()
}

// Clear resets the conversation cycle. The user record is kept.
func (s *Session) Clear() {
	s.Context = nil
	s.PendingSubject = nil
	s.Candidates = nil
	s.Started = false
}

// Present records a candidate list shown to the user
func (s *Session) Present(subject *Entity, candidates []RecipeCandidate) {
	s.PendingSubject = subject
	s.Candidates = candidates
	if s.Context == nil {
		s.Context = DialogueContext{}
	}
	s.Context[ContextRecipes] = candidates
}
