package goals

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vladamisici/food-analyzer-sub001/internal/nutrition"
)

// InMemoryRepository is an in-memory Repository for tests.
type InMemoryRepository struct {
	mu    sync.Mutex
	goals map[string]NutritionGoal
	now   Clock
}

// NewInMemoryRepository creates an empty in-memory goals repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		goals: make(map[string]NutritionGoal),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the timestamp source. Test use.
func (r *InMemoryRepository) WithClock(now Clock) *InMemoryRepository {
	r.now = now
	return r
}

// ActiveGoal returns the user's active goal, or nil when none exists.
func (r *InMemoryRepository) ActiveGoal(_ context.Context, userID string) (*NutritionGoal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, g := range r.goals {
		if g.UserID == userID && g.IsActive {
			goal := g
			return &goal, nil
		}
	}
	return nil, nil
}

// UpsertGoal mirrors the SQLite variant's single-scope semantics: the whole
// lookup-then-write runs under one lock.
func (r *InMemoryRepository) UpsertGoal(_ context.Context, userID string, targets nutrition.Targets, activity ActivityLevel) (*NutritionGoal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()

	for id, g := range r.goals {
		if g.UserID != userID || !g.IsActive {
			continue
		}
		g.Targets = targets
		g.Activity = activity
		g.UpdatedAt = now
		r.goals[id] = g
		goal := g
		return &goal, nil
	}

	goal := NutritionGoal{
		ID:        "goal_" + uuid.New().String()[:22],
		UserID:    userID,
		Targets:   targets,
		Activity:  activity,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.goals[goal.ID] = goal
	return &goal, nil
}

// DeleteAllForUser removes every goal owned by the user.
func (r *InMemoryRepository) DeleteAllForUser(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, g := range r.goals {
		if g.UserID == userID {
			delete(r.goals, id)
		}
	}
	return nil
}

var _ Repository = (*InMemoryRepository)(nil)
