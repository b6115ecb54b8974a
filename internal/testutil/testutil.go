package testutil

import (
	"strconv"
	"time"

	"souschef/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestUser creates a stored user entity
func NewTestUser(id int64, userID string) *domain.Entity {
	u := domain.NewUser(userID)
	u.ID = id
	u.CreatedAt = time.Now()
	return u
}

// NewTestCandidates creates n recipe candidates with ids "1".."n"
func NewTestCandidates(n int) []domain.RecipeCandidate {
	out := make([]domain.RecipeCandidate, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, domain.RecipeCandidate{
			ID:    strconv.Itoa(i),
			Title: "Recipe " + strconv.Itoa(i),
		})
	}
	return out
}

// Stored returns a copy of candidate with a database id assigned
func Stored(candidate *domain.Entity, id int64) *domain.Entity {
	e := *candidate
	e.ID = id
	e.CreatedAt = time.Now()
	return &e
}

// DialogueReply builds an engine response
func DialogueReply(dctx domain.DialogueContext, output ...string) *domain.DialogueResponse {
	if dctx == nil {
		dctx = domain.DialogueContext{}
	}
	return &domain.DialogueResponse{Context: dctx, Output: output}
}
