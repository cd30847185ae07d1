package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/vladamisici/food-analyzer-sub001/internal/apperrors"
	"github.com/vladamisici/food-analyzer-sub001/internal/goals"
)

// GoalsHandler serves the nutrition-goal endpoints.
type GoalsHandler struct {
	repo    goals.Repository
	session SessionResolver
}

func NewGoalsHandler(repo goals.Repository, session SessionResolver) *GoalsHandler {
	return &GoalsHandler{repo: repo, session: session}
}

// Get handles GET /v1/goal, returning the active goal or 404 when none is
// set.
func (h *GoalsHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := h.session.CurrentUserID(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	goal, err := h.repo.ActiveGoal(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if goal == nil {
		writeError(w, r, apperrors.Storage(apperrors.KindKeyNotFound, nil))
		return
	}
	writeJSON(w, r, http.StatusOK, toGoalResponse(*goal))
}

// Upsert handles PUT /v1/goal.
func (h *GoalsHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	userID, err := h.session.CurrentUserID(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req upsertGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, r, "invalid JSON body")
		return
	}
	if !req.Targets.Valid() {
		writeBadRequest(w, r, "every target must be positive")
		return
	}

	goal, err := h.repo.UpsertGoal(r.Context(), userID, req.Targets, req.Activity)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toGoalResponse(*goal))
}
