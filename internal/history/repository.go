package history

import (
	"context"
	"time"

	"github.com/vladamisici/food-analyzer-sub001/internal/apperrors"
)

// ErrRecordNotFound is returned when a record id does not exist.
var ErrRecordNotFound = apperrors.Storage(apperrors.KindKeyNotFound, nil)

// Repository defines the food-analysis persistence contract. Callers hold
// this interface only; the backing variants are the SQLite store and the
// in-memory implementation used in tests.
type Repository interface {
	// Save persists a new record.
	Save(ctx context.Context, record FoodAnalysisRecord) error

	// FetchByUser returns the user's records inside [from, to), newest
	// first. A zero from/to leaves that bound open; two zero values return
	// everything.
	FetchByUser(ctx context.Context, userID string, from, to time.Time) ([]FoodAnalysisRecord, error)

	// Rename corrects a record's food name. The only permitted mutation.
	Rename(ctx context.Context, id, foodName string) error

	// Delete removes one record by id.
	Delete(ctx context.Context, id string) error

	// DeleteAllForUser removes every record owned by the user.
	DeleteAllForUser(ctx context.Context, userID string) error
}
