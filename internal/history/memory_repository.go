package history

import (
	"context"
	"sort"
	"sync"
	"time"
)

// InMemoryRepository is an in-memory Repository for tests.
type InMemoryRepository struct {
	mu      sync.RWMutex
	records map[string]FoodAnalysisRecord
}

// NewInMemoryRepository creates an empty in-memory history repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{records: make(map[string]FoodAnalysisRecord)}
}

// Save persists a new record.
func (r *InMemoryRepository) Save(_ context.Context, record FoodAnalysisRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[record.ID] = record
	return nil
}

// FetchByUser returns the user's records inside [from, to), newest first.
func (r *InMemoryRepository) FetchByUser(_ context.Context, userID string, from, to time.Time) ([]FoodAnalysisRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]FoodAnalysisRecord, 0)
	for _, rec := range r.records {
		if rec.UserID != userID {
			continue
		}
		if !from.IsZero() && rec.CreatedAt.Before(from) {
			continue
		}
		if !to.IsZero() && !rec.CreatedAt.Before(to) {
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Rename corrects a record's food name.
func (r *InMemoryRepository) Rename(_ context.Context, id, foodName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[id]
	if !ok {
		return ErrRecordNotFound
	}
	rec.FoodName = foodName
	r.records[id] = rec
	return nil
}

// Delete removes one record. Deleting an absent id is a no-op success.
func (r *InMemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.records, id)
	return nil
}

// DeleteAllForUser removes every record owned by the user.
func (r *InMemoryRepository) DeleteAllForUser(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, rec := range r.records {
		if rec.UserID == userID {
			delete(r.records, id)
		}
	}
	return nil
}

var _ Repository = (*InMemoryRepository)(nil)
