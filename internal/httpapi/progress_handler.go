package httpapi

import (
	"net/http"
	"time"

	"github.com/vladamisici/food-analyzer-sub001/internal/goals"
	"github.com/vladamisici/food-analyzer-sub001/internal/history"
	"github.com/vladamisici/food-analyzer-sub001/internal/nutrition"
)

// ProgressHandler serves the daily and weekly aggregation endpoints. All
// aggregation is recomputed from the store on every request; nothing here
// caches.
type ProgressHandler struct {
	history history.Repository
	goals   goals.Repository
	session SessionResolver
	now     func() time.Time
}

func NewProgressHandler(hist history.Repository, gls goals.Repository, session SessionResolver) *ProgressHandler {
	return &ProgressHandler{history: hist, goals: gls, session: session, now: time.Now}
}

// Daily handles GET /v1/progress/daily?date=2006-01-02. The date defaults
// to today in UTC.
func (h *ProgressHandler) Daily(w http.ResponseWriter, r *http.Request) {
	userID, err := h.session.CurrentUserID(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	day, ok := parseDateParam(w, r, "date", h.now().UTC())
	if !ok {
		return
	}

	samples, targets, err := h.load(r, userID, nutrition.StartOfDay(day), nutrition.StartOfDay(day).AddDate(0, 0, 1))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, nutrition.Daily(samples, day, targets))
}

// Weekly handles GET /v1/progress/weekly?end=2006-01-02, aggregating the
// seven days ending at `end` (defaults to today in UTC).
func (h *ProgressHandler) Weekly(w http.ResponseWriter, r *http.Request) {
	userID, err := h.session.CurrentUserID(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	end, ok := parseDateParam(w, r, "end", h.now().UTC())
	if !ok {
		return
	}

	from := nutrition.StartOfDay(end).AddDate(0, 0, -(nutrition.DaysPerWeek - 1))
	samples, targets, err := h.load(r, userID, from, nutrition.StartOfDay(end).AddDate(0, 0, 1))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, nutrition.WeekContaining(samples, end, targets))
}

// load fetches the window's samples and the active goal's targets. A user
// without a goal aggregates against zero targets, which reports all
// ratios as zero rather than failing.
func (h *ProgressHandler) load(r *http.Request, userID string, from, to time.Time) ([]nutrition.Sample, nutrition.Targets, error) {
	records, err := h.history.FetchByUser(r.Context(), userID, from, to)
	if err != nil {
		return nil, nutrition.Targets{}, err
	}

	var targets nutrition.Targets
	if goal, err := h.goals.ActiveGoal(r.Context(), userID); err != nil {
		return nil, nutrition.Targets{}, err
	} else if goal != nil {
		targets = goal.Targets
	}
	return history.Samples(records), targets, nil
}

// parseDateParam reads an optional 2006-01-02 query parameter.
func parseDateParam(w http.ResponseWriter, r *http.Request, name string, fallback time.Time) (time.Time, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, true
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		writeBadRequest(w, r, name+" must be a 2006-01-02 date")
		return time.Time{}, false
	}
	return t, true
}
