package auth_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladamisici/food-analyzer-sub001/internal/apperrors"
	"github.com/vladamisici/food-analyzer-sub001/internal/auth"
	"github.com/vladamisici/food-analyzer-sub001/internal/goals"
	"github.com/vladamisici/food-analyzer-sub001/internal/history"
	"github.com/vladamisici/food-analyzer-sub001/internal/nutrition"
	"github.com/vladamisici/food-analyzer-sub001/internal/store"
)

type userRepoFixture func(t *testing.T) auth.UserRepository

func sqliteFixture(t *testing.T) auth.UserRepository {
	t.Helper()
	m, err := store.Open(context.Background(), store.Config{
		Path:        filepath.Join(t.TempDir(), "users.db"),
		BusyTimeout: 5 * time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { m.Close() })
	return auth.NewSQLiteUserRepository(m)
}

func memoryFixture(t *testing.T) auth.UserRepository {
	t.Helper()
	return auth.NewMemoryUserRepository()
}

func fixtures() map[string]userRepoFixture {
	return map[string]userRepoFixture{
		"sqlite": sqliteFixture,
		"memory": memoryFixture,
	}
}

func sampleUser(id string) auth.User {
	return auth.User{
		ID:        id,
		Email:     id + "@example.com",
		FirstName: "Ana",
		LastName:  "Popescu",
		CreatedAt: time.Date(2025, 3, 10, 8, 30, 0, 0, time.UTC),
	}
}

func TestUserRepository_UpsertAndFind(t *testing.T) {
	for name, fixture := range fixtures() {
		t.Run(name, func(t *testing.T) {
			repo := fixture(t)
			ctx := context.Background()
			user := sampleUser("usr_1")

			require.NoError(t, repo.Upsert(ctx, user))

			got, err := repo.FindByID(ctx, "usr_1")
			require.NoError(t, err)
			assert.Equal(t, user, *got)
		})
	}
}

func TestUserRepository_UpsertReplacesExisting(t *testing.T) {
	for name, fixture := range fixtures() {
		t.Run(name, func(t *testing.T) {
			repo := fixture(t)
			ctx := context.Background()
			user := sampleUser("usr_1")
			require.NoError(t, repo.Upsert(ctx, user))

			age := 40
			user.FirstName = "Maria"
			user.Profile = &auth.Profile{Age: &age, ActivityLevel: "active"}
			require.NoError(t, repo.Upsert(ctx, user))

			got, err := repo.FindByID(ctx, "usr_1")
			require.NoError(t, err)
			assert.Equal(t, "Maria", got.FirstName)
			require.NotNil(t, got.Profile)
			require.NotNil(t, got.Profile.Age)
			assert.Equal(t, 40, *got.Profile.Age)
		})
	}
}

func TestUserRepository_FindMissing(t *testing.T) {
	for name, fixture := range fixtures() {
		t.Run(name, func(t *testing.T) {
			repo := fixture(t)

			_, err := repo.FindByID(context.Background(), "usr_missing")
			assert.ErrorIs(t, err, auth.ErrUserNotFound)
		})
	}
}

func TestUserRepository_DuplicateEmailIsUserExists(t *testing.T) {
	repo := sqliteFixture(t)
	ctx := context.Background()
	require.NoError(t, repo.Upsert(ctx, sampleUser("usr_1")))

	dup := sampleUser("usr_2")
	dup.Email = "usr_1@example.com"
	err := repo.Upsert(ctx, dup)
	assert.Equal(t, apperrors.KindUserExists, apperrors.KindOf(err))
}

func TestUserRepository_DeleteIsIdempotent(t *testing.T) {
	for name, fixture := range fixtures() {
		t.Run(name, func(t *testing.T) {
			repo := fixture(t)
			ctx := context.Background()
			require.NoError(t, repo.Upsert(ctx, sampleUser("usr_1")))

			require.NoError(t, repo.Delete(ctx, "usr_1"))
			require.NoError(t, repo.Delete(ctx, "usr_1"))

			_, err := repo.FindByID(ctx, "usr_1")
			assert.ErrorIs(t, err, auth.ErrUserNotFound)
		})
	}
}

func TestUserRepository_DeleteCascadesToOwnedRows(t *testing.T) {
	ctx := context.Background()
	m, err := store.Open(ctx, store.Config{
		Path:        filepath.Join(t.TempDir(), "cascade.db"),
		BusyTimeout: 5 * time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { m.Close() })

	users := auth.NewSQLiteUserRepository(m)
	hist := history.NewSQLiteRepository(m)
	gls := goals.NewSQLiteRepository(m)

	require.NoError(t, users.Upsert(ctx, sampleUser("usr_1")))
	require.NoError(t, hist.Save(ctx, history.FoodAnalysisRecord{
		ID:        "rec_1",
		UserID:    "usr_1",
		FoodName:  "toast",
		Nutrition: nutrition.Info{Calories: 250},
		CreatedAt: time.Now().UTC(),
	}))
	_, err = gls.UpsertGoal(ctx, "usr_1",
		nutrition.Targets{Calories: 2000, Protein: 120, Carbs: 220, Fat: 70, Fiber: 30},
		goals.ActivityModerate)
	require.NoError(t, err)

	require.NoError(t, users.Delete(ctx, "usr_1"))

	for _, table := range []string{"food_analyses", "nutrition_goals"} {
		var n int
		require.NoError(t, m.Read().QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
		assert.Zero(t, n, table)
	}
}
