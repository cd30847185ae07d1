// Package goals persists per-user nutrition goals and enforces the
// single-active-goal rule through its upsert-by-user write scope.
package goals

import (
	"time"

	"github.com/vladamisici/food-analyzer-sub001/internal/nutrition"
)

// ActivityLevel describes the user's typical activity for goal derivation.
type ActivityLevel string

// Activity levels.
const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

// NutritionGoal is a user's macro target set. At most one goal per user is
// active at a time; the repository enforces this on write rather than the
// store schema.
type NutritionGoal struct {
	// ID is the unique goal identifier (format: goal_XXXX).
	ID string

	// UserID is the owning user.
	UserID string

	// Targets holds the per-macro targets. All must be positive for the
	// goal to be valid.
	Targets nutrition.Targets

	// Activity is the activity level the targets were derived for.
	Activity ActivityLevel

	// IsActive marks the goal used for progress ratios.
	IsActive bool

	// CreatedAt is when the goal was first created.
	CreatedAt time.Time

	// UpdatedAt bumps on every target change.
	UpdatedAt time.Time
}

// Valid reports whether every target is positive.
func (g NutritionGoal) Valid() bool {
	return g.Targets.Valid()
}
