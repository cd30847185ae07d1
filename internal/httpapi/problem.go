package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vladamisici/food-analyzer-sub001/internal/apperrors"
)

// problem is an RFC7807-style error body. Type and Title identify the
// class of failure; Kind carries the taxonomy kind so the UI can branch
// the same way in-process callers do.
type problem struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
	Kind     string `json:"kind,omitempty"`
	TraceID  string `json:"traceId"`
}

const (
	problemTypeValidation      = "https://foodtrack.app/problems/validation-error"
	problemTypeUnauthorized    = "https://foodtrack.app/problems/unauthorized"
	problemTypeNotFound        = "https://foodtrack.app/problems/not-found"
	problemTypeConflict        = "https://foodtrack.app/problems/conflict"
	problemTypeTooManyRequests = "https://foodtrack.app/problems/too-many-requests"
	problemTypeUpstream        = "https://foodtrack.app/problems/upstream-error"
	problemTypeInternal        = "https://foodtrack.app/problems/internal-error"
)

func newProblem(problemType, title string, status int, traceID string) *problem {
	return &problem{Type: problemType, Title: title, Status: status, TraceID: traceID}
}

func (p *problem) write(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.Header().Set("X-Request-Id", p.TraceID)
	w.WriteHeader(p.Status)
	_ = json.NewEncoder(w).Encode(p)
}

// problemFromError maps a taxonomy error onto the wire: validation kinds
// become 400, authentication 401 (409 for user_exists), missing records
// 404, upstream networking failures 502, and everything else 500.
func problemFromError(err error, traceID string) *problem {
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		p := newProblem(problemTypeInternal, "Internal error", http.StatusInternalServerError, traceID)
		p.Detail = "an unexpected error occurred"
		return p
	}

	var p *problem
	switch {
	case appErr.Kind == apperrors.KindUserExists:
		p = newProblem(problemTypeConflict, "Conflict", http.StatusConflict, traceID)
	case appErr.Kind == apperrors.KindKeyNotFound:
		p = newProblem(problemTypeNotFound, "Not found", http.StatusNotFound, traceID)
	case appErr.Domain == apperrors.DomainValidation:
		p = newProblem(problemTypeValidation, "Validation error", http.StatusBadRequest, traceID)
	case appErr.Domain == apperrors.DomainAuthentication:
		p = newProblem(problemTypeUnauthorized, "Unauthorized", http.StatusUnauthorized, traceID)
	case appErr.Domain == apperrors.DomainNetworking:
		p = newProblem(problemTypeUpstream, "Upstream error", http.StatusBadGateway, traceID)
	default:
		p = newProblem(problemTypeInternal, "Internal error", http.StatusInternalServerError, traceID)
	}
	p.Detail = appErr.Message()
	p.Kind = string(appErr.Kind)
	return p
}
