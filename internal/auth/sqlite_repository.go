package auth

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/vladamisici/food-analyzer-sub001/internal/apperrors"
	"github.com/vladamisici/food-analyzer-sub001/internal/store"
)

const userColumns = `id, email, first_name, last_name, age, gender, height_cm,
	weight_kg, activity_level, dietary_preferences, health_goals, created_at`

// SQLiteUserRepository persists users through the shared store manager.
type SQLiteUserRepository struct {
	mgr *store.Manager
}

func NewSQLiteUserRepository(mgr *store.Manager) *SQLiteUserRepository {
	return &SQLiteUserRepository{mgr: mgr}
}

func (r *SQLiteUserRepository) Upsert(ctx context.Context, user User) error {
	rec := toRecord(user)
	return r.mgr.WithWriteScope(ctx, func(sc *store.Scope) error {
		res, err := sc.Exec(ctx, `
			UPDATE users SET email = ?, first_name = ?, last_name = ?, age = ?,
				gender = ?, height_cm = ?, weight_kg = ?, activity_level = ?,
				dietary_preferences = ?, health_goals = ?
			WHERE id = ?`,
			rec.Email, rec.FirstName, rec.LastName, rec.Age, rec.Gender,
			rec.HeightCm, rec.WeightKg, rec.ActivityLevel,
			rec.DietaryPreferences, rec.HealthGoals, rec.ID)
		if err != nil {
			return mapEmailConflict(err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return apperrors.Storage(apperrors.KindPersistFailed, err)
		}
		if n > 0 {
			sc.Changed(store.KindUser, store.OpUpdate, rec.ID)
			return nil
		}
		_, err = sc.Exec(ctx, `
			INSERT INTO users (`+userColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			rec.ID, rec.Email, rec.FirstName, rec.LastName, rec.Age, rec.Gender,
			rec.HeightCm, rec.WeightKg, rec.ActivityLevel,
			rec.DietaryPreferences, rec.HealthGoals, rec.CreatedAt)
		if err != nil {
			return mapEmailConflict(err)
		}
		sc.Changed(store.KindUser, store.OpCreate, rec.ID)
		return nil
	})
}

// mapEmailConflict surfaces the store's UNIQUE email index as
// authentication/user_exists; every other write failure stays a storage
// error.
func mapEmailConflict(err error) error {
	if strings.Contains(err.Error(), "users.email") {
		return apperrors.Authentication(apperrors.KindUserExists)
	}
	return apperrors.Storage(apperrors.KindPersistFailed, err)
}

func (r *SQLiteUserRepository) FindByID(ctx context.Context, id string) (*User, error) {
	row := r.mgr.Read().QueryRowContext(ctx, `
		SELECT `+userColumns+` FROM users WHERE id = ?`, id)

	var rec userRecord
	err := row.Scan(&rec.ID, &rec.Email, &rec.FirstName, &rec.LastName,
		&rec.Age, &rec.Gender, &rec.HeightCm, &rec.WeightKg,
		&rec.ActivityLevel, &rec.DietaryPreferences, &rec.HealthGoals,
		&rec.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, apperrors.Storage(apperrors.KindDecodingFailed, err)
	}
	user := toDomain(rec)
	return &user, nil
}

func (r *SQLiteUserRepository) Delete(ctx context.Context, id string) error {
	return r.mgr.WithWriteScope(ctx, func(sc *store.Scope) error {
		if _, err := sc.Exec(ctx, `DELETE FROM users WHERE id = ?`, id); err != nil {
			return apperrors.Storage(apperrors.KindPersistFailed, err)
		}
		sc.Changed(store.KindUser, store.OpDelete, id)
		return nil
	})
}
