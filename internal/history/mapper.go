package history

import (
	"database/sql"
	"strings"
	"time"

	"github.com/vladamisici/food-analyzer-sub001/internal/nutrition"
)

// ingredientDelimiter separates ingredient entries in the stored column.
const ingredientDelimiter = "|"

// analysisRecord is the flat storage row shape for a FoodAnalysisRecord.
type analysisRecord struct {
	ID          string
	UserID      string
	FoodName    string
	Calories    float64
	ProteinG    float64
	CarbsG      float64
	FatG        float64
	FiberG      float64
	SugarG      float64
	SodiumMg    float64
	Confidence  float64
	ServingSize sql.NullString
	Ingredients sql.NullString
	Image       []byte
	CreatedAt   time.Time
}

// toRecord converts a domain value into its storage row. Pure.
func toRecord(r FoodAnalysisRecord) analysisRecord {
	return analysisRecord{
		ID:          r.ID,
		UserID:      r.UserID,
		FoodName:    r.FoodName,
		Calories:    r.Nutrition.Calories,
		ProteinG:    r.Nutrition.Protein,
		CarbsG:      r.Nutrition.Carbs,
		FatG:        r.Nutrition.Fat,
		FiberG:      r.Nutrition.Fiber,
		SugarG:      r.Nutrition.Sugar,
		SodiumMg:    r.Nutrition.Sodium,
		Confidence:  r.Confidence,
		ServingSize: encodeOptionalText(r.ServingSize),
		Ingredients: encodeList(r.Ingredients),
		Image:       r.Image,
		CreatedAt:   r.CreatedAt.UTC(),
	}
}

// toDomain converts a storage row back into its domain value. Pure.
func toDomain(rec analysisRecord) FoodAnalysisRecord {
	return FoodAnalysisRecord{
		ID:       rec.ID,
		UserID:   rec.UserID,
		FoodName: rec.FoodName,
		Nutrition: nutrition.Info{
			Calories: rec.Calories,
			Protein:  rec.ProteinG,
			Carbs:    rec.CarbsG,
			Fat:      rec.FatG,
			Fiber:    rec.FiberG,
			Sugar:    rec.SugarG,
			Sodium:   rec.SodiumMg,
		},
		Confidence:  rec.Confidence,
		ServingSize: rec.ServingSize.String,
		Ingredients: decodeList(rec.Ingredients),
		Image:       rec.Image,
		CreatedAt:   rec.CreatedAt.UTC(),
	}
}

func encodeOptionalText(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// encodeList joins entries with the fixed delimiter. An empty list is
// stored as an absent value, never as an empty string.
func encodeList(items []string) sql.NullString {
	kept := make([]string, 0, len(items))
	for _, item := range items {
		if item != "" {
			kept = append(kept, item)
		}
	}
	if len(kept) == 0 {
		return sql.NullString{}
	}
	return sql.NullString{String: strings.Join(kept, ingredientDelimiter), Valid: true}
}

// decodeList splits on the fixed delimiter and drops empty segments.
// NULL and "" both decode to an empty list.
func decodeList(stored sql.NullString) []string {
	if !stored.Valid || stored.String == "" {
		return nil
	}
	parts := strings.Split(stored.String, ingredientDelimiter)
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			items = append(items, p)
		}
	}
	if len(items) == 0 {
		return nil
	}
	return items
}
