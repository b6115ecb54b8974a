package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"

	"souschef/internal/domain"

	"go.uber.org/zap"
)

// RecordUsage bumps the user's embedded counter for target and appends a usage record.
// The counter update is a plain read-modify-write: concurrent requests for the same user
// can both read the same count and one increment is lost.
func (r *RecipeRepo) RecordUsage(ctx context.Context, target, user, parent *domain.Entity) error {
	latest, err := r.getEntity(ctx, user.ID)
	if err != nil {
		return err
	}

	latest.IncrementUsage(target)

	payload, err := json.Marshal(latest.Payload)
	if err != nil {
		return fmt.Errorf("marshal user payload: %w", err)
	}

	update := `
		UPDATE entities
		SET payload = $1
		WHERE id = $2
	`
	if _, err := r.db.ExecContext(ctx, update, string(payload), latest.ID); err != nil {
		return storeErr("update user counters", err)
	}

	var parentID sql.NullInt64
	var parentName sql.NullString
	if parent != nil {
		parentID = sql.NullInt64{Int64: parent.ID, Valid: true}
		parentName = sql.NullString{String: parent.DisplayName(), Valid: true}
	}

	insert := `
		INSERT INTO usage_records (kind, user_id, user_name, entity_id, entity_name, parent_id, parent_name)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = r.db.ExecContext(ctx, insert,
		string(target.Kind),
		latest.ID,
		latest.DisplayName(),
		target.ID,
		target.DisplayName(),
		parentID,
		parentName,
	)
	if err != nil {
		return storeErr("insert usage record", err)
	}

	r.logger.Debug("Recorded usage",
		zap.String("kind", string(target.Kind)),
		zap.String("key", target.Key),
		zap.String("user", latest.Key),
	)
	return nil
}

// TopFavorites returns up to n of the user's recipes ordered by request count, highest first.
// Ties keep the stored order.
func (r *RecipeRepo) TopFavorites(ctx context.Context, user *domain.Entity, n int) ([]domain.RecipeCount, error) {
	latest, err := r.getEntity(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return topRecipes(latest.Payload.RecipeUsage, n), nil
}

func topRecipes(counts []domain.RecipeCount, n int) []domain.RecipeCount {
	sorted := append([]domain.RecipeCount(nil), counts...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Count > sorted[j].Count
	})
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
