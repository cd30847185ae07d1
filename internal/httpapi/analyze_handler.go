package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/vladamisici/food-analyzer-sub001/internal/apiclient"
)

// FoodAnalyzer analyzes a food image through the remote food service.
type FoodAnalyzer interface {
	Analyze(ctx context.Context, image []byte) (*apiclient.AnalysisResult, error)
}

// AnalyzeHandler serves the analysis passthrough. Persisting the result is
// the client's call, via POST /v1/history.
type AnalyzeHandler struct {
	food FoodAnalyzer
}

func NewAnalyzeHandler(food FoodAnalyzer) *AnalyzeHandler {
	return &AnalyzeHandler{food: food}
}

// Analyze handles POST /v1/analyze. The image rides base64 in the JSON
// body; an absent token surfaces as 401 from the remote client.
func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, r, "invalid JSON body")
		return
	}
	if len(req.Image) == 0 {
		writeBadRequest(w, r, "image is required")
		return
	}

	result, err := h.food.Analyze(r.Context(), req.Image)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toAnalysisResponse(*result))
}
