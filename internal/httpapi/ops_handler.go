package httpapi

import (
	"net/http"
	"time"
)

// OpsHandler serves the health endpoint.
type OpsHandler struct {
	version string
	started time.Time
}

func NewOpsHandler(version string) *OpsHandler {
	return &OpsHandler{version: version, started: time.Now()}
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
}

// Health handles GET /v1/ops/health.
func (h *OpsHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, healthResponse{
		Status:  "ok",
		Version: h.version,
		Uptime:  time.Since(h.started).Round(time.Second).String(),
	})
}
