package history

import (
	"context"
	"fmt"
	"time"

	"github.com/vladamisici/food-analyzer-sub001/internal/apperrors"
	"github.com/vladamisici/food-analyzer-sub001/internal/store"
)

// SQLiteRepository is the store-backed Repository.
type SQLiteRepository struct {
	manager *store.Manager
}

// NewSQLiteRepository creates a store-backed history repository.
func NewSQLiteRepository(manager *store.Manager) *SQLiteRepository {
	return &SQLiteRepository{manager: manager}
}

const analysisColumns = `id, user_id, food_name, calories, protein_g, carbs_g, fat_g,
	fiber_g, sugar_g, sodium_mg, confidence, serving_size, ingredients, image, created_at`

// Save persists a new record inside one write scope.
func (r *SQLiteRepository) Save(ctx context.Context, record FoodAnalysisRecord) error {
	rec := toRecord(record)
	return r.manager.WithWriteScope(ctx, func(s *store.Scope) error {
		_, err := s.Exec(ctx, `
INSERT INTO food_analyses (`+analysisColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			rec.ID, rec.UserID, rec.FoodName,
			rec.Calories, rec.ProteinG, rec.CarbsG, rec.FatG,
			rec.FiberG, rec.SugarG, rec.SodiumMg,
			rec.Confidence, rec.ServingSize, rec.Ingredients, rec.Image, rec.CreatedAt)
		if err != nil {
			return apperrors.Storage(apperrors.KindPersistFailed, fmt.Errorf("insert analysis: %w", err))
		}
		s.Changed(store.KindFoodAnalysis, store.OpCreate, rec.ID)
		return nil
	})
}

// FetchByUser queries the read context only.
func (r *SQLiteRepository) FetchByUser(ctx context.Context, userID string, from, to time.Time) ([]FoodAnalysisRecord, error) {
	query := `SELECT ` + analysisColumns + ` FROM food_analyses WHERE user_id = ?`
	args := []any{userID}
	if !from.IsZero() {
		query += ` AND created_at >= ?`
		args = append(args, from.UTC())
	}
	if !to.IsZero() {
		query += ` AND created_at < ?`
		args = append(args, to.UTC())
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.manager.Read().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Storage(apperrors.KindDecodingFailed, fmt.Errorf("query analyses: %w", err))
	}
	defer rows.Close()

	records := make([]FoodAnalysisRecord, 0)
	for rows.Next() {
		var rec analysisRecord
		if err := rows.Scan(
			&rec.ID, &rec.UserID, &rec.FoodName,
			&rec.Calories, &rec.ProteinG, &rec.CarbsG, &rec.FatG,
			&rec.FiberG, &rec.SugarG, &rec.SodiumMg,
			&rec.Confidence, &rec.ServingSize, &rec.Ingredients, &rec.Image, &rec.CreatedAt,
		); err != nil {
			return nil, apperrors.Storage(apperrors.KindDecodingFailed, fmt.Errorf("scan analysis: %w", err))
		}
		records = append(records, toDomain(rec))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Storage(apperrors.KindDecodingFailed, fmt.Errorf("iterate analyses: %w", err))
	}
	return records, nil
}

// Rename corrects a record's food name.
func (r *SQLiteRepository) Rename(ctx context.Context, id, foodName string) error {
	return r.manager.WithWriteScope(ctx, func(s *store.Scope) error {
		res, err := s.Exec(ctx, `UPDATE food_analyses SET food_name = ? WHERE id = ?`, foodName, id)
		if err != nil {
			return apperrors.Storage(apperrors.KindPersistFailed, fmt.Errorf("rename analysis: %w", err))
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return ErrRecordNotFound
		}
		s.Changed(store.KindFoodAnalysis, store.OpUpdate, id)
		return nil
	})
}

// Delete removes one record. Deleting an absent id is a no-op success.
func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	return r.manager.WithWriteScope(ctx, func(s *store.Scope) error {
		if _, err := s.Exec(ctx, `DELETE FROM food_analyses WHERE id = ?`, id); err != nil {
			return apperrors.Storage(apperrors.KindPersistFailed, fmt.Errorf("delete analysis: %w", err))
		}
		s.Changed(store.KindFoodAnalysis, store.OpDelete, id)
		return nil
	})
}

// DeleteAllForUser removes every record owned by the user.
func (r *SQLiteRepository) DeleteAllForUser(ctx context.Context, userID string) error {
	return r.manager.WithWriteScope(ctx, func(s *store.Scope) error {
		if _, err := s.Exec(ctx, `DELETE FROM food_analyses WHERE user_id = ?`, userID); err != nil {
			return apperrors.Storage(apperrors.KindPersistFailed, fmt.Errorf("delete user analyses: %w", err))
		}
		s.Changed(store.KindFoodAnalysis, store.OpDelete, "*")
		return nil
	})
}

var _ Repository = (*SQLiteRepository)(nil)
