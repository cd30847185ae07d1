// Package history persists food analysis records and serves the
// date-ranged queries the aggregation engine consumes.
package history

import (
	"time"

	"github.com/vladamisici/food-analyzer-sub001/internal/nutrition"
)

// FoodAnalysisRecord is one completed food analysis owned by a user.
// Records are immutable after creation except for name correction.
type FoodAnalysisRecord struct {
	// ID is the unique record identifier (format: rec_XXXX).
	ID string

	// UserID is the owning user.
	UserID string

	// FoodName is the analyzed food's display name.
	FoodName string

	// Nutrition holds the per-serving macro values.
	Nutrition nutrition.Info

	// Confidence is the analysis confidence in [0, 1].
	Confidence float64

	// ServingSize is an optional free-text serving description.
	ServingSize string

	// Ingredients is an optional ingredient list. A nil slice and an empty
	// slice are both "no ingredients".
	Ingredients []string

	// Image is the optional captured source image.
	Image []byte

	// CreatedAt is when the analysis completed.
	CreatedAt time.Time
}

// Sample converts the record into an aggregation-engine sample.
func (r FoodAnalysisRecord) Sample() nutrition.Sample {
	return nutrition.Sample{At: r.CreatedAt, Info: r.Nutrition}
}

// Samples converts a query result for the aggregation engine.
func Samples(records []FoodAnalysisRecord) []nutrition.Sample {
	samples := make([]nutrition.Sample, len(records))
	for i, r := range records {
		samples[i] = r.Sample()
	}
	return samples
}
