package httpapi

import (
	"net/http"
	"runtime/debug"

	"github.com/rs/zerolog"
)

// Recovery returns a middleware that turns panics into a 500 problem.
func Recovery(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					requestID := GetRequestID(r.Context())
					log.Error().
						Str("request_id", requestID).
						Interface("error", err).
						Str("stack", string(debug.Stack())).
						Msg("panic recovered")

					problem := newProblem(problemTypeInternal, "Internal error",
						http.StatusInternalServerError, requestID)
					problem.Detail = "an unexpected error occurred"
					problem.Instance = r.URL.Path
					problem.write(w)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
