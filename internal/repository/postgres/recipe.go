package postgres

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"

	"souschef/internal/domain"

	"github.com/golang-migrate/migrate/v4"
	postgresdb "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// RecipeRepo implements repository.RecipeStore
type RecipeRepo struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewRecipeRepo creates a new recipe repository
func NewRecipeRepo(db *sql.DB, logger *zap.Logger) *RecipeRepo {
	return &RecipeRepo{db: db, logger: logger}
}

// EnsureSchema applies the embedded migrations.
// Tables and popularity views are created once; already-applied versions are skipped.
func (r *RecipeRepo) EnsureSchema() error {
	src, err := migrationSource()
	if err != nil {
		return storeErr("open migrations", err)
	}

	driver, err := postgresdb.WithInstance(r.db, &postgresdb.Config{})
	if err != nil {
		return storeErr("create migration driver", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return storeErr("create migration instance", err)
	}

	return r.applyMigrations(m)
}

// migrator is the part of *migrate.Migrate that EnsureSchema drives
type migrator interface {
	Up() error
}

func migrationSource() (source.Driver, error) {
	return iofs.New(migrationsFS, "migrations")
}

// applyMigrations runs pending migrations; an already current schema is not an error
func (r *RecipeRepo) applyMigrations(m migrator) error {
	err := m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		r.logger.Info("Schema is up to date")
		return nil
	}
	if err != nil {
		return storeErr("run migrations", err)
	}

	r.logger.Info("Schema migrations applied")
	return nil
}

// FindEntity returns the entity for (kind, key), or nil if none exists
func (r *RecipeRepo) FindEntity(ctx context.Context, kind domain.EntityKind, key string) (*domain.Entity, error) {
	query := `
		SELECT id, kind, unique_key, payload, created_at
		FROM entities
		WHERE kind = $1 AND unique_key = $2
	`
	e, err := scanEntity(r.db.QueryRowContext(ctx, query, string(kind), key))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr("find entity", err)
	}
	return e, nil
}

// getEntity reads an entity by id
func (r *RecipeRepo) getEntity(ctx context.Context, id int64) (*domain.Entity, error) {
	query := `
		SELECT id, kind, unique_key, payload, created_at
		FROM entities
		WHERE id = $1
	`
	e, err := scanEntity(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, storeErr("get entity", err)
	}
	return e, nil
}

// UpsertEntity returns the stored entity for the candidate's (kind, key), creating it if absent.
// An existing entity is returned unchanged: the first writer's payload wins.
func (r *RecipeRepo) UpsertEntity(ctx context.Context, candidate *domain.Entity) (*domain.Entity, error) {
	existing, err := r.FindEntity(ctx, candidate.Kind, candidate.Key)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		r.logger.Debug("Returning existing entity",
			zap.String("kind", string(candidate.Kind)),
			zap.String("key", candidate.Key),
		)
		return existing, nil
	}

	payload, err := json.Marshal(candidate.Payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	query := `
		INSERT INTO entities (kind, unique_key, payload)
		VALUES ($1, $2, $3)
		ON CONFLICT (kind, unique_key) DO NOTHING
		RETURNING id, created_at
	`
	created := *candidate
	err = r.db.QueryRowContext(ctx, query, string(candidate.Kind), candidate.Key, string(payload)).
		Scan(&created.ID, &created.CreatedAt)

	if err == sql.ErrNoRows {
		// Another writer created the same key between our read and insert
		winner, err := r.FindEntity(ctx, candidate.Kind, candidate.Key)
		if err != nil {
			return nil, err
		}
		if winner == nil {
			return nil, storeErr("upsert entity", fmt.Errorf("%s %q vanished after conflict", candidate.Kind, candidate.Key))
		}
		return winner, nil
	}
	if err != nil {
		return nil, storeErr("insert entity", err)
	}

	r.logger.Info("Created entity",
		zap.String("kind", string(created.Kind)),
		zap.String("key", created.Key),
		zap.Int64("id", created.ID),
	)
	return &created, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntity(row rowScanner) (*domain.Entity, error) {
	var (
		e       domain.Entity
		kind    string
		payload []byte
	)
	if err := row.Scan(&e.ID, &kind, &e.Key, &payload, &e.CreatedAt); err != nil {
		return nil, err
	}
	e.Kind = domain.EntityKind(kind)
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &e.Payload); err != nil {
			return nil, fmt.Errorf("decode payload of entity %d: %w", e.ID, err)
		}
	}
	return &e, nil
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStoreUnavailable, err)
}
