package httpapi

import (
	"time"

	"github.com/vladamisici/food-analyzer-sub001/internal/apiclient"
	"github.com/vladamisici/food-analyzer-sub001/internal/goals"
	"github.com/vladamisici/food-analyzer-sub001/internal/history"
	"github.com/vladamisici/food-analyzer-sub001/internal/nutrition"
)

// historyItem is one analysis record on the wire. The raw image bytes are
// deliberately omitted.
type historyItem struct {
	ID          string         `json:"id"`
	FoodName    string         `json:"foodName"`
	Nutrition   nutrition.Info `json:"nutrition"`
	Confidence  float64        `json:"confidence"`
	ServingSize string         `json:"servingSize,omitempty"`
	Ingredients []string       `json:"ingredients,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
}

func toHistoryItem(rec history.FoodAnalysisRecord) historyItem {
	return historyItem{
		ID:          rec.ID,
		FoodName:    rec.FoodName,
		Nutrition:   rec.Nutrition,
		Confidence:  rec.Confidence,
		ServingSize: rec.ServingSize,
		Ingredients: rec.Ingredients,
		CreatedAt:   rec.CreatedAt,
	}
}

type historyListResponse struct {
	Items []historyItem `json:"items"`
}

type saveAnalysisRequest struct {
	FoodName    string         `json:"foodName"`
	Nutrition   nutrition.Info `json:"nutrition"`
	Confidence  float64        `json:"confidence"`
	ServingSize string         `json:"servingSize"`
	Ingredients []string       `json:"ingredients"`
	CreatedAt   *time.Time     `json:"createdAt,omitempty"`
}

type renameRequest struct {
	FoodName string `json:"foodName"`
}

type goalResponse struct {
	ID        string              `json:"id"`
	Targets   nutrition.Targets   `json:"targets"`
	Activity  goals.ActivityLevel `json:"activityLevel"`
	IsActive  bool                `json:"isActive"`
	CreatedAt time.Time           `json:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt"`
}

func toGoalResponse(g goals.NutritionGoal) goalResponse {
	return goalResponse{
		ID:        g.ID,
		Targets:   g.Targets,
		Activity:  g.Activity,
		IsActive:  g.IsActive,
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
}

type upsertGoalRequest struct {
	Targets  nutrition.Targets   `json:"targets"`
	Activity goals.ActivityLevel `json:"activityLevel"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type analyzeRequest struct {
	// Image holds the raw image bytes, base64-encoded on the wire.
	Image []byte `json:"image"`
}

type analysisResponse struct {
	FoodName    string         `json:"foodName"`
	Nutrition   nutrition.Info `json:"nutrition"`
	Confidence  float64        `json:"confidence"`
	ServingSize string         `json:"servingSize,omitempty"`
	Ingredients []string       `json:"ingredients,omitempty"`
	HealthScore int            `json:"healthScore"`
}

func toAnalysisResponse(res apiclient.AnalysisResult) analysisResponse {
	return analysisResponse{
		FoodName:    res.FoodName,
		Nutrition:   res.Nutrition,
		Confidence:  res.Confidence,
		ServingSize: res.ServingSize,
		Ingredients: res.Ingredients,
		HealthScore: res.HealthScore,
	}
}
