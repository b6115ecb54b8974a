package postgres

import (
	"context"
	"database/sql"

	"souschef/internal/domain"
)

// StatsRepo implements repository.StatsRepository over the popularity views
type StatsRepo struct {
	db *sql.DB
}

// NewStatsRepo creates a new stats repository
func NewStatsRepo(db *sql.DB) *StatsRepo {
	return &StatsRepo{db: db}
}

// PopularityByEntity returns request totals per entity name, most requested first
func (r *StatsRepo) PopularityByEntity(ctx context.Context, kind domain.EntityKind) ([]domain.Popularity, error) {
	query := `
		SELECT kind, name, requests
		FROM popularity_by_entity
		WHERE kind = $1
		ORDER BY requests DESC, name ASC
	`
	return r.queryPopularity(ctx, "popularity by entity", query, kind)
}

// PopularityByDayOfWeek returns request totals per weekday, Sunday first
func (r *StatsRepo) PopularityByDayOfWeek(ctx context.Context, kind domain.EntityKind) ([]domain.Popularity, error) {
	query := `
		SELECT kind, day_of_week, requests
		FROM popularity_by_day_of_week
		WHERE kind = $1
		ORDER BY day_number ASC
	`
	return r.queryPopularity(ctx, "popularity by day of week", query, kind)
}

func (r *StatsRepo) queryPopularity(ctx context.Context, op, query string, kind domain.EntityKind) ([]domain.Popularity, error) {
	rows, err := r.db.QueryContext(ctx, query, string(kind))
	if err != nil {
		return nil, storeErr(op, err)
	}
	defer rows.Close()

	var result []domain.Popularity
	for rows.Next() {
		var p domain.Popularity
		if err := rows.Scan(&p.Kind, &p.Label, &p.Requests); err != nil {
			return nil, storeErr(op, err)
		}
		result = append(result, p)
	}

	if err := rows.Err(); err != nil {
		return nil, storeErr(op, err)
	}
	return result, nil
}
