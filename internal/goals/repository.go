package goals

import (
	"context"
	"time"

	"github.com/vladamisici/food-analyzer-sub001/internal/nutrition"
)

// Clock supplies the current time for created/updated stamps. Injected so
// tests control it.
type Clock func() time.Time

// Repository defines the goals persistence contract.
type Repository interface {
	// ActiveGoal returns the user's active goal, or nil when none exists.
	ActiveGoal(ctx context.Context, userID string) (*NutritionGoal, error)

	// UpsertGoal creates or updates the user's goal in a single atomic
	// write scope: an existing goal gets the new targets and a bumped
	// UpdatedAt; otherwise a fresh active goal is created. Any previously
	// active goal for the user is deactivated in the same scope, so at
	// most one active goal per user survives even under concurrent calls.
	UpsertGoal(ctx context.Context, userID string, targets nutrition.Targets, activity ActivityLevel) (*NutritionGoal, error)

	// DeleteAllForUser removes every goal owned by the user.
	DeleteAllForUser(ctx context.Context, userID string) error
}
