package auth

import (
	"context"

	"github.com/vladamisici/food-analyzer-sub001/internal/apperrors"
)

// ErrUserNotFound is returned when a user id does not exist locally.
var ErrUserNotFound = apperrors.Authentication(apperrors.KindUserNotFound)

// UserRepository defines the local user-profile persistence contract.
type UserRepository interface {
	// Upsert writes the profile, replacing any existing row for the id.
	Upsert(ctx context.Context, user User) error

	// FindByID returns the profile for id.
	FindByID(ctx context.Context, id string) (*User, error)

	// Delete removes the profile. The store cascades the user's analyses
	// and goals.
	Delete(ctx context.Context, id string) error
}
