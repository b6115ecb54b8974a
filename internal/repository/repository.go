package repository

import (
	"context"

	"souschef/internal/domain"
)

// RecipeStore defines cache and usage ledger operations
type RecipeStore interface {
	FindEntity(ctx context.Context, kind domain.EntityKind, key string) (*domain.Entity, error)
	UpsertEntity(ctx context.Context, candidate *domain.Entity) (*domain.Entity, error)
	RecordUsage(ctx context.Context, target, user, parent *domain.Entity) error
	TopFavorites(ctx context.Context, user *domain.Entity, n int) ([]domain.RecipeCount, error)
}

// StatsRepository defines read access to the popularity views
type StatsRepository interface {
	PopularityByEntity(ctx context.Context, kind domain.EntityKind) ([]domain.Popularity, error)
	PopularityByDayOfWeek(ctx context.Context, kind domain.EntityKind) ([]domain.Popularity, error)
}
