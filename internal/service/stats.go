package service

import (
	"context"
	"errors"
	"fmt"

	"souschef/internal/domain"
	"souschef/internal/repository"

	"go.uber.org/zap"
)

// ErrUnknownKind is returned for popularity queries on a kind that has no usage records
var ErrUnknownKind = errors.New("unknown entity kind")

// StatsService serves the popularity aggregates
type StatsService struct {
	statsRepo repository.StatsRepository
	logger    *zap.Logger
}

// NewStatsService creates a new stats service
func NewStatsService(statsRepo repository.StatsRepository, logger *zap.Logger) *StatsService {
	return &StatsService{
		statsRepo: statsRepo,
		logger:    logger,
	}
}

// PopularityByEntity returns how often each entity of kind was requested
func (s *StatsService) PopularityByEntity(ctx context.Context, kind string) ([]domain.Popularity, error) {
	k, err := parseKind(kind)
	if err != nil {
		return nil, err
	}

	result, err := s.statsRepo.PopularityByEntity(ctx, k)
	if err != nil {
		s.logger.Error("Failed to load popularity by entity", zap.String("kind", kind), zap.Error(err))
		return nil, err
	}
	return result, nil
}

// PopularityByDayOfWeek returns request counts for kind grouped by weekday
func (s *StatsService) PopularityByDayOfWeek(ctx context.Context, kind string) ([]domain.Popularity, error) {
	k, err := parseKind(kind)
	if err != nil {
		return nil, err
	}

	result, err := s.statsRepo.PopularityByDayOfWeek(ctx, k)
	if err != nil {
		s.logger.Error("Failed to load popularity by day of week", zap.String("kind", kind), zap.Error(err))
		return nil, err
	}
	return result, nil
}

func parseKind(kind string) (domain.EntityKind, error) {
	switch k := domain.EntityKind(kind); k {
	case domain.KindIngredient, domain.KindCuisine, domain.KindRecipe:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}
