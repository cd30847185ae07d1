package httpapi

import (
	"encoding/json"
	"net/http"
)

// writeJSON writes a JSON response with the request id mirrored for
// correlation.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	if requestID := GetRequestID(r.Context()); requestID != "" {
		w.Header().Set("X-Request-Id", requestID)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// writeError renders a taxonomy error as problem+json.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	p := problemFromError(err, GetRequestID(r.Context()))
	p.Instance = r.URL.Path
	p.write(w)
}

// writeBadRequest renders a plain 400 for malformed request bodies and
// parameters that never reach the domain layer.
func writeBadRequest(w http.ResponseWriter, r *http.Request, detail string) {
	p := newProblem(problemTypeValidation, "Validation error", http.StatusBadRequest,
		GetRequestID(r.Context()))
	p.Detail = detail
	p.Instance = r.URL.Path
	p.write(w)
}
