package history_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladamisici/food-analyzer-sub001/internal/history"
	"github.com/vladamisici/food-analyzer-sub001/internal/nutrition"
	"github.com/vladamisici/food-analyzer-sub001/internal/store"
)

// repoFixture builds a Repository variant with the users it needs in place.
type repoFixture func(t *testing.T, userIDs ...string) history.Repository

func sqliteFixture(t *testing.T, userIDs ...string) history.Repository {
	t.Helper()
	m, err := store.Open(context.Background(), store.Config{
		Path:        filepath.Join(t.TempDir(), "history.db"),
		BusyTimeout: 5 * time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { m.Close() })

	for _, id := range userIDs {
		err := m.WithWriteScope(context.Background(), func(s *store.Scope) error {
			_, err := s.Exec(context.Background(),
				`INSERT INTO users (id, email, created_at) VALUES (?, ?, ?)`,
				id, id+"@example.com", time.Now().UTC())
			return err
		})
		require.NoError(t, err)
	}
	return history.NewSQLiteRepository(m)
}

func memoryFixture(t *testing.T, _ ...string) history.Repository {
	t.Helper()
	return history.NewInMemoryRepository()
}

func fixtures() map[string]repoFixture {
	return map[string]repoFixture{
		"sqlite": sqliteFixture,
		"memory": memoryFixture,
	}
}

func newRecord(id, userID string, at time.Time, calories float64) history.FoodAnalysisRecord {
	return history.FoodAnalysisRecord{
		ID:          id,
		UserID:      userID,
		FoodName:    "meal " + id,
		Nutrition:   nutrition.Info{Calories: calories, Protein: 10, Carbs: 20, Fat: 5},
		Confidence:  0.9,
		Ingredients: []string{"one", "two"},
		CreatedAt:   at,
	}
}

func TestRepository_SaveAndFetchNewestFirst(t *testing.T) {
	base := time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)

	for name, fixture := range fixtures() {
		t.Run(name, func(t *testing.T) {
			repo := fixture(t, "usr_1", "usr_2")
			ctx := context.Background()

			for i := 0; i < 3; i++ {
				rec := newRecord(fmt.Sprintf("rec_%d", i), "usr_1", base.Add(time.Duration(i)*time.Hour), 300)
				require.NoError(t, repo.Save(ctx, rec))
			}
			require.NoError(t, repo.Save(ctx, newRecord("rec_other", "usr_2", base, 500)))

			got, err := repo.FetchByUser(ctx, "usr_1", time.Time{}, time.Time{})
			require.NoError(t, err)
			require.Len(t, got, 3)
			assert.Equal(t, "rec_2", got[0].ID, "newest first")
			assert.Equal(t, "rec_0", got[2].ID)
			assert.Equal(t, []string{"one", "two"}, got[0].Ingredients)
		})
	}
}

func TestRepository_FetchDateRangeIsHalfOpen(t *testing.T) {
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	for name, fixture := range fixtures() {
		t.Run(name, func(t *testing.T) {
			repo := fixture(t, "usr_1")
			ctx := context.Background()

			require.NoError(t, repo.Save(ctx, newRecord("rec_before", "usr_1", day.Add(-time.Minute), 100)))
			require.NoError(t, repo.Save(ctx, newRecord("rec_start", "usr_1", day, 200)))
			require.NoError(t, repo.Save(ctx, newRecord("rec_mid", "usr_1", day.Add(12*time.Hour), 300)))
			require.NoError(t, repo.Save(ctx, newRecord("rec_end", "usr_1", day.Add(24*time.Hour), 400)))

			got, err := repo.FetchByUser(ctx, "usr_1", day, day.Add(24*time.Hour))
			require.NoError(t, err)
			require.Len(t, got, 2)
			assert.Equal(t, "rec_mid", got[0].ID)
			assert.Equal(t, "rec_start", got[1].ID)
		})
	}
}

func TestRepository_Rename(t *testing.T) {
	for name, fixture := range fixtures() {
		t.Run(name, func(t *testing.T) {
			repo := fixture(t, "usr_1")
			ctx := context.Background()
			require.NoError(t, repo.Save(ctx, newRecord("rec_1", "usr_1", time.Now().UTC(), 100)))

			require.NoError(t, repo.Rename(ctx, "rec_1", "Corrected Name"))

			got, err := repo.FetchByUser(ctx, "usr_1", time.Time{}, time.Time{})
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, "Corrected Name", got[0].FoodName)

			assert.ErrorIs(t, repo.Rename(ctx, "rec_missing", "x"), history.ErrRecordNotFound)
		})
	}
}

func TestRepository_DeleteIsIdempotent(t *testing.T) {
	for name, fixture := range fixtures() {
		t.Run(name, func(t *testing.T) {
			repo := fixture(t, "usr_1")
			ctx := context.Background()
			require.NoError(t, repo.Save(ctx, newRecord("rec_1", "usr_1", time.Now().UTC(), 100)))

			require.NoError(t, repo.Delete(ctx, "rec_1"))
			require.NoError(t, repo.Delete(ctx, "rec_1"))

			got, err := repo.FetchByUser(ctx, "usr_1", time.Time{}, time.Time{})
			require.NoError(t, err)
			assert.Empty(t, got)
		})
	}
}

func TestRepository_DeleteAllForUserLeavesOthers(t *testing.T) {
	for name, fixture := range fixtures() {
		t.Run(name, func(t *testing.T) {
			repo := fixture(t, "usr_1", "usr_2")
			ctx := context.Background()
			now := time.Now().UTC()
			require.NoError(t, repo.Save(ctx, newRecord("rec_1", "usr_1", now, 100)))
			require.NoError(t, repo.Save(ctx, newRecord("rec_2", "usr_1", now, 200)))
			require.NoError(t, repo.Save(ctx, newRecord("rec_3", "usr_2", now, 300)))

			require.NoError(t, repo.DeleteAllForUser(ctx, "usr_1"))

			mine, err := repo.FetchByUser(ctx, "usr_1", time.Time{}, time.Time{})
			require.NoError(t, err)
			assert.Empty(t, mine)

			theirs, err := repo.FetchByUser(ctx, "usr_2", time.Time{}, time.Time{})
			require.NoError(t, err)
			assert.Len(t, theirs, 1)
		})
	}
}

func TestRepository_DailyProgressScenario(t *testing.T) {
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	goal := nutrition.Targets{Calories: 1200, Protein: 100, Carbs: 150, Fat: 40, Fiber: 25}

	for name, fixture := range fixtures() {
		t.Run(name, func(t *testing.T) {
			repo := fixture(t, "usr_1")
			ctx := context.Background()

			for i, cals := range []float64{300, 400, 500} {
				rec := newRecord(fmt.Sprintf("rec_%d", i), "usr_1", day.Add(time.Duration(6+i*4)*time.Hour), cals)
				require.NoError(t, repo.Save(ctx, rec))
			}

			records, err := repo.FetchByUser(ctx, "usr_1", time.Time{}, time.Time{})
			require.NoError(t, err)

			progress := nutrition.Daily(history.Samples(records), day, goal)
			assert.Equal(t, 1200.0, progress.Totals.Calories)
			assert.Equal(t, 1.0, progress.Ratios.Calories)
		})
	}
}
