package goals

import (
	"time"

	"github.com/vladamisici/food-analyzer-sub001/internal/nutrition"
)

// goalRecord is the flat storage row shape for a NutritionGoal.
type goalRecord struct {
	ID            string
	UserID        string
	Calories      float64
	ProteinG      float64
	CarbsG        float64
	FatG          float64
	FiberG        float64
	ActivityLevel string
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// toRecord converts a domain goal into its storage row. Pure.
func toRecord(g NutritionGoal) goalRecord {
	return goalRecord{
		ID:            g.ID,
		UserID:        g.UserID,
		Calories:      g.Targets.Calories,
		ProteinG:      g.Targets.Protein,
		CarbsG:        g.Targets.Carbs,
		FatG:          g.Targets.Fat,
		FiberG:        g.Targets.Fiber,
		ActivityLevel: string(g.Activity),
		IsActive:      g.IsActive,
		CreatedAt:     g.CreatedAt.UTC(),
		UpdatedAt:     g.UpdatedAt.UTC(),
	}
}

// toDomain converts a storage row back into a domain goal. Pure.
func toDomain(rec goalRecord) NutritionGoal {
	return NutritionGoal{
		ID:     rec.ID,
		UserID: rec.UserID,
		Targets: nutrition.Targets{
			Calories: rec.Calories,
			Protein:  rec.ProteinG,
			Carbs:    rec.CarbsG,
			Fat:      rec.FatG,
			Fiber:    rec.FiberG,
		},
		Activity:  ActivityLevel(rec.ActivityLevel),
		IsActive:  rec.IsActive,
		CreatedAt: rec.CreatedAt.UTC(),
		UpdatedAt: rec.UpdatedAt.UTC(),
	}
}
