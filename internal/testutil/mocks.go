package testutil

import (
	"context"

	"souschef/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockRecipeStore is a mock for RecipeStore
type MockRecipeStore struct {
	mock.Mock
}

func (m *MockRecipeStore) FindEntity(ctx context.Context, kind domain.EntityKind, key string) (*domain.Entity, error) {
	args := m.Called(ctx, kind, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entity), args.Error(1)
}

func (m *MockRecipeStore) UpsertEntity(ctx context.Context, candidate *domain.Entity) (*domain.Entity, error) {
	args := m.Called(ctx, candidate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entity), args.Error(1)
}

func (m *MockRecipeStore) RecordUsage(ctx context.Context, target, user, parent *domain.Entity) error {
	args := m.Called(ctx, target, user, parent)
	return args.Error(0)
}

func (m *MockRecipeStore) TopFavorites(ctx context.Context, user *domain.Entity, n int) ([]domain.RecipeCount, error) {
	args := m.Called(ctx, user, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RecipeCount), args.Error(1)
}

// MockStatsRepository is a mock for StatsRepository
type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) PopularityByEntity(ctx context.Context, kind domain.EntityKind) ([]domain.Popularity, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Popularity), args.Error(1)
}

func (m *MockStatsRepository) PopularityByDayOfWeek(ctx context.Context, kind domain.EntityKind) ([]domain.Popularity, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Popularity), args.Error(1)
}

// MockDialogueEngine is a mock for the dialogue engine client
type MockDialogueEngine struct {
	mock.Mock
}

func (m *MockDialogueEngine) Message(ctx context.Context, text string, dctx domain.DialogueContext) (*domain.DialogueResponse, error) {
	args := m.Called(ctx, text, dctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DialogueResponse), args.Error(1)
}

// MockRecipeLookup is a mock for the recipe API client
type MockRecipeLookup struct {
	mock.Mock
}

func (m *MockRecipeLookup) FindByIngredients(ctx context.Context, ingredients string) ([]domain.RecipeCandidate, error) {
	args := m.Called(ctx, ingredients)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RecipeCandidate), args.Error(1)
}

func (m *MockRecipeLookup) FindByCuisine(ctx context.Context, cuisine string) ([]domain.RecipeCandidate, error) {
	args := m.Called(ctx, cuisine)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RecipeCandidate), args.Error(1)
}

func (m *MockRecipeLookup) GetInfo(ctx context.Context, recipeID string) (*domain.RecipeInfo, error) {
	args := m.Called(ctx, recipeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecipeInfo), args.Error(1)
}

func (m *MockRecipeLookup) GetSteps(ctx context.Context, recipeID string) ([]domain.Instruction, error) {
	args := m.Called(ctx, recipeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Instruction), args.Error(1)
}
