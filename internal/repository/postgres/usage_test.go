package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	"souschef/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const getEntityQuery = "SELECT id, kind, unique_key, payload, created_at FROM entities WHERE id = \\$1"

func userRow(t *testing.T, payload domain.Payload) *sqlmock.Rows {
	return sqlmock.NewRows(entityColumns).
		AddRow(1, "user", "U1", []byte(mustJSON(t, payload)), time.Now())
}

func TestRecipeRepo_RecordUsage_Ingredient(t *testing.T) {
	repo, mock := newTestRepo(t)

	user := &domain.Entity{ID: 1, Kind: domain.KindUser, Key: "U1", Payload: domain.Payload{Name: "U1"}}
	ingredient := &domain.Entity{ID: 7, Kind: domain.KindIngredient, Key: "onion,tomato"}

	expected := domain.Payload{
		Name:        "U1",
		Ingredients: []domain.NameCount{{Name: "onion,tomato", Count: 1}},
	}

	mock.ExpectQuery(getEntityQuery).WithArgs(int64(1)).WillReturnRows(userRow(t, domain.Payload{Name: "U1"}))
	mock.ExpectExec("UPDATE entities SET payload = \\$1 WHERE id = \\$2").
		WithArgs(mustJSON(t, expected), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO usage_records").
		WithArgs("ingredient", int64(1), "U1", int64(7), "onion,tomato", nil, nil).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.RecordUsage(context.Background(), ingredient, user, nil)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecipeRepo_RecordUsage_RecipeWithParent(t *testing.T) {
	repo, mock := newTestRepo(t)

	user := &domain.Entity{ID: 1, Kind: domain.KindUser, Key: "U1"}
	cuisine := &domain.Entity{ID: 3, Kind: domain.KindCuisine, Key: "thai"}
	recipe := &domain.Entity{ID: 20, Kind: domain.KindRecipe, Key: "715538", Payload: domain.Payload{Title: "Green Curry"}}

	prior := domain.Payload{
		Name:        "U1",
		RecipeUsage: []domain.RecipeCount{{ID: "715538", Title: "Green Curry", Count: 1}},
	}
	expected := domain.Payload{
		Name:        "U1",
		RecipeUsage: []domain.RecipeCount{{ID: "715538", Title: "Green Curry", Count: 2}},
	}

	mock.ExpectQuery(getEntityQuery).WithArgs(int64(1)).WillReturnRows(userRow(t, prior))
	mock.ExpectExec("UPDATE entities").
		WithArgs(mustJSON(t, expected), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO usage_records").
		WithArgs("recipe", int64(1), "U1", int64(20), "Green Curry", int64(3), "thai").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.RecordUsage(context.Background(), recipe, user, cuisine)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Two requests that read the user record before either writes it back both store the
// same incremented value. The lost increment is accepted: favorites are advisory.
func TestRecipeRepo_RecordUsage_CounterIncrementIsNotAtomic(t *testing.T) {
	repo, mock := newTestRepo(t)

	user := &domain.Entity{ID: 1, Kind: domain.KindUser, Key: "U1"}
	cuisine := &domain.Entity{ID: 3, Kind: domain.KindCuisine, Key: "thai"}

	prior := domain.Payload{Name: "U1", Cuisines: []domain.NameCount{{Name: "thai", Count: 1}}}
	afterOne := domain.Payload{Name: "U1", Cuisines: []domain.NameCount{{Name: "thai", Count: 2}}}

	for i := 0; i < 2; i++ {
		// both requests observe the same prior state
		mock.ExpectQuery(getEntityQuery).WithArgs(int64(1)).WillReturnRows(userRow(t, prior))
		mock.ExpectExec("UPDATE entities").
			WithArgs(mustJSON(t, afterOne), int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO usage_records").
			WithArgs("cuisine", int64(1), "U1", int64(3), "thai", nil, nil).
			WillReturnResult(sqlmock.NewResult(int64(i+1), 1))
	}

	require.NoError(t, repo.RecordUsage(context.Background(), cuisine, user, nil))
	require.NoError(t, repo.RecordUsage(context.Background(), cuisine, user, nil))

	// two usage records, but the counter only moved from 1 to 2
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecipeRepo_RecordUsage_Errors(t *testing.T) {
	user := &domain.Entity{ID: 1, Kind: domain.KindUser, Key: "U1"}
	target := &domain.Entity{ID: 3, Kind: domain.KindCuisine, Key: "thai"}

	tests := []struct {
		name  string
		setup func(mock sqlmock.Sqlmock)
	}{
		{
			name: "user read fails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(getEntityQuery).WillReturnError(fmt.Errorf("timeout"))
			},
		},
		{
			name: "counter update fails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(getEntityQuery).WillReturnRows(userRow(t, domain.Payload{Name: "U1"}))
				mock.ExpectExec("UPDATE entities").WillReturnError(fmt.Errorf("timeout"))
			},
		},
		{
			name: "usage insert fails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(getEntityQuery).WillReturnRows(userRow(t, domain.Payload{Name: "U1"}))
				mock.ExpectExec("UPDATE entities").WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec("INSERT INTO usage_records").WillReturnError(fmt.Errorf("timeout"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestRepo(t)
			tt.setup(mock)

			err := repo.RecordUsage(context.Background(), target, user, nil)

			assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRecipeRepo_TopFavorites(t *testing.T) {
	repo, mock := newTestRepo(t)

	payload := domain.Payload{
		Name: "U1",
		RecipeUsage: []domain.RecipeCount{
			{ID: "a", Title: "A", Count: 3},
			{ID: "b", Title: "B", Count: 5},
			{ID: "c", Title: "C", Count: 1},
		},
	}
	mock.ExpectQuery(getEntityQuery).WithArgs(int64(1)).WillReturnRows(userRow(t, payload))

	favorites, err := repo.TopFavorites(context.Background(), &domain.Entity{ID: 1}, 5)

	require.NoError(t, err)
	require.Len(t, favorites, 3)
	assert.Equal(t, "B", favorites[0].Title)
	assert.Equal(t, "A", favorites[1].Title)
	assert.Equal(t, "C", favorites[2].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecipeRepo_TopFavorites_NoRecipes(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery(getEntityQuery).WithArgs(int64(1)).WillReturnRows(userRow(t, domain.Payload{Name: "U1"}))

	favorites, err := repo.TopFavorites(context.Background(), &domain.Entity{ID: 1}, 5)

	assert.NoError(t, err)
	assert.Empty(t, favorites)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTopRecipes(t *testing.T) {
	counts := []domain.RecipeCount{
		{ID: "1", Count: 2},
		{ID: "2", Count: 7},
		{ID: "3", Count: 2},
		{ID: "4", Count: 9},
		{ID: "5", Count: 2},
		{ID: "6", Count: 1},
	}

	tests := []struct {
		name     string
		n        int
		expected []string
	}{
		{name: "top five, ties keep stored order", n: 5, expected: []string{"4", "2", "1", "3", "5"}},
		{name: "top two", n: 2, expected: []string{"4", "2"}},
		{name: "more than available", n: 10, expected: []string{"4", "2", "1", "3", "5", "6"}},
		{name: "zero", n: 0, expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids := []string{}
			for _, c := range topRecipes(counts, tt.n) {
				ids = append(ids, c.ID)
			}
			assert.Equal(t, tt.expected, ids)
		})
	}

	// input untouched
	assert.Equal(t, "1", counts[0].ID)
}
