package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/vladamisici/food-analyzer-sub001/internal/history"
)

// SessionResolver yields the signed-in user's id from local state.
type SessionResolver interface {
	CurrentUserID(ctx context.Context) (string, error)
}

// HistoryHandler serves the analysis-history endpoints.
type HistoryHandler struct {
	repo    history.Repository
	session SessionResolver
}

func NewHistoryHandler(repo history.Repository, session SessionResolver) *HistoryHandler {
	return &HistoryHandler{repo: repo, session: session}
}

// List handles GET /v1/history. Optional `from` and `to` query parameters
// (RFC 3339) bound the window; the range is half-open.
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := h.session.CurrentUserID(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	from, ok := parseTimeParam(w, r, "from")
	if !ok {
		return
	}
	to, ok := parseTimeParam(w, r, "to")
	if !ok {
		return
	}

	records, err := h.repo.FetchByUser(r.Context(), userID, from, to)
	if err != nil {
		writeError(w, r, err)
		return
	}

	items := make([]historyItem, 0, len(records))
	for _, rec := range records {
		items = append(items, toHistoryItem(rec))
	}
	writeJSON(w, r, http.StatusOK, historyListResponse{Items: items})
}

// Save handles POST /v1/history.
func (h *HistoryHandler) Save(w http.ResponseWriter, r *http.Request) {
	userID, err := h.session.CurrentUserID(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req saveAnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, r, "invalid JSON body")
		return
	}
	if req.FoodName == "" {
		writeBadRequest(w, r, "foodName is required")
		return
	}

	createdAt := time.Now().UTC()
	if req.CreatedAt != nil {
		createdAt = req.CreatedAt.UTC()
	}
	rec := history.FoodAnalysisRecord{
		ID:          "rec_" + uuid.New().String()[:22],
		UserID:      userID,
		FoodName:    req.FoodName,
		Nutrition:   req.Nutrition,
		Confidence:  req.Confidence,
		ServingSize: req.ServingSize,
		Ingredients: req.Ingredients,
		CreatedAt:   createdAt,
	}
	if err := h.repo.Save(r.Context(), rec); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, toHistoryItem(rec))
}

// Rename handles PATCH /v1/history/{id}. The food name is the only field
// a client may correct after the fact.
func (h *HistoryHandler) Rename(w http.ResponseWriter, r *http.Request) {
	var req renameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, r, "invalid JSON body")
		return
	}
	if req.FoodName == "" {
		writeBadRequest(w, r, "foodName is required")
		return
	}

	if err := h.repo.Rename(r.Context(), chi.URLParam(r, "id"), req.FoodName); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusNoContent, nil)
}

// Delete handles DELETE /v1/history/{id}. Deleting an absent record
// succeeds.
func (h *HistoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusNoContent, nil)
}

// parseTimeParam reads an optional RFC 3339 query parameter. The zero time
// means unbounded.
func parseTimeParam(w http.ResponseWriter, r *http.Request, name string) (time.Time, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return time.Time{}, true
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		writeBadRequest(w, r, name+" must be an RFC 3339 timestamp")
		return time.Time{}, false
	}
	return t, true
}
