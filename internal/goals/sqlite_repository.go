package goals

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vladamisici/food-analyzer-sub001/internal/apperrors"
	"github.com/vladamisici/food-analyzer-sub001/internal/nutrition"
	"github.com/vladamisici/food-analyzer-sub001/internal/store"
)

// SQLiteRepository is the store-backed Repository.
type SQLiteRepository struct {
	manager *store.Manager
	now     Clock
}

// NewSQLiteRepository creates a store-backed goals repository.
func NewSQLiteRepository(manager *store.Manager) *SQLiteRepository {
	return &SQLiteRepository{manager: manager, now: func() time.Time { return time.Now().UTC() }}
}

// WithClock overrides the timestamp source. Test use.
func (r *SQLiteRepository) WithClock(now Clock) *SQLiteRepository {
	r.now = now
	return r
}

const goalColumns = `id, user_id, calories, protein_g, carbs_g, fat_g, fiber_g,
	activity_level, is_active, created_at, updated_at`

// ActiveGoal queries the read context only.
func (r *SQLiteRepository) ActiveGoal(ctx context.Context, userID string) (*NutritionGoal, error) {
	row := r.manager.Read().QueryRowContext(ctx, `
SELECT `+goalColumns+` FROM nutrition_goals
WHERE user_id = ? AND is_active = 1
ORDER BY updated_at DESC LIMIT 1`, userID)

	goal, err := scanGoal(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.Storage(apperrors.KindDecodingFailed, fmt.Errorf("query active goal: %w", err))
	}
	return goal, nil
}

// UpsertGoal runs lookup-then-write inside one write scope so concurrent
// upserts for the same user serialize at the store and converge on a
// single active goal (last commit wins).
func (r *SQLiteRepository) UpsertGoal(ctx context.Context, userID string, targets nutrition.Targets, activity ActivityLevel) (*NutritionGoal, error) {
	var result NutritionGoal

	err := r.manager.WithWriteScope(ctx, func(s *store.Scope) error {
		now := r.now()

		row := s.QueryRow(ctx, `
SELECT `+goalColumns+` FROM nutrition_goals
WHERE user_id = ? AND is_active = 1
ORDER BY updated_at DESC LIMIT 1`, userID)

		existing, err := scanGoal(row)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			// First goal for this user; or every prior goal was switched
			// off. Either way a fresh active goal is created.
			result = NutritionGoal{
				ID:        "goal_" + uuid.New().String()[:22],
				UserID:    userID,
				Targets:   targets,
				Activity:  activity,
				IsActive:  true,
				CreatedAt: now,
				UpdatedAt: now,
			}
			rec := toRecord(result)
			if _, err := s.Exec(ctx, `
INSERT INTO nutrition_goals (`+goalColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				rec.ID, rec.UserID, rec.Calories, rec.ProteinG, rec.CarbsG,
				rec.FatG, rec.FiberG, rec.ActivityLevel, rec.IsActive,
				rec.CreatedAt, rec.UpdatedAt); err != nil {
				return apperrors.Storage(apperrors.KindPersistFailed, fmt.Errorf("insert goal: %w", err))
			}
			s.Changed(store.KindGoal, store.OpCreate, rec.ID)
			return nil

		case err != nil:
			return apperrors.Storage(apperrors.KindDecodingFailed, fmt.Errorf("lookup goal: %w", err))
		}

		// Update in place, never re-create. A stale second active goal
		// (should not happen, the same scope that activates deactivates)
		// is swept here as well.
		if _, err := s.Exec(ctx,
			`UPDATE nutrition_goals SET is_active = 0 WHERE user_id = ? AND id != ?`,
			userID, existing.ID); err != nil {
			return apperrors.Storage(apperrors.KindPersistFailed, fmt.Errorf("deactivate prior goals: %w", err))
		}

		existing.Targets = targets
		existing.Activity = activity
		existing.UpdatedAt = now
		rec := toRecord(*existing)
		if _, err := s.Exec(ctx, `
UPDATE nutrition_goals
SET calories = ?, protein_g = ?, carbs_g = ?, fat_g = ?, fiber_g = ?,
    activity_level = ?, is_active = 1, updated_at = ?
WHERE id = ?`,
			rec.Calories, rec.ProteinG, rec.CarbsG, rec.FatG, rec.FiberG,
			rec.ActivityLevel, rec.UpdatedAt, rec.ID); err != nil {
			return apperrors.Storage(apperrors.KindPersistFailed, fmt.Errorf("update goal: %w", err))
		}
		s.Changed(store.KindGoal, store.OpUpdate, rec.ID)
		result = *existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteAllForUser removes every goal owned by the user.
func (r *SQLiteRepository) DeleteAllForUser(ctx context.Context, userID string) error {
	return r.manager.WithWriteScope(ctx, func(s *store.Scope) error {
		if _, err := s.Exec(ctx, `DELETE FROM nutrition_goals WHERE user_id = ?`, userID); err != nil {
			return apperrors.Storage(apperrors.KindPersistFailed, fmt.Errorf("delete user goals: %w", err))
		}
		s.Changed(store.KindGoal, store.OpDelete, "*")
		return nil
	})
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanGoal(row rowScanner) (*NutritionGoal, error) {
	var rec goalRecord
	if err := row.Scan(
		&rec.ID, &rec.UserID, &rec.Calories, &rec.ProteinG, &rec.CarbsG,
		&rec.FatG, &rec.FiberG, &rec.ActivityLevel, &rec.IsActive,
		&rec.CreatedAt, &rec.UpdatedAt,
	); err != nil {
		return nil, err
	}
	goal := toDomain(rec)
	return &goal, nil
}

var _ Repository = (*SQLiteRepository)(nil)
