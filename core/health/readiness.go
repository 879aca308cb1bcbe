package health

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/actionproxy/core/logger"
)

// Check reports whether one dependency is usable.
type Check func(context.Context) error

// Readiness verifies every dependency check passes.
// Returns "READY" if all checks pass, 503 Service Unavailable if any fail.
// With no checks it always reports ready.
//
// Example:
//
//	mux.Handle("GET /health/ready", health.Readiness(log,
//		redisaction.Healthcheck(client),
//	))
func Readiness(log *slog.Logger, checks ...Check) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")

		for _, check := range checks {
			if err := check(r.Context()); err != nil {
				log.ErrorContext(r.Context(), "readiness check failed", logger.Error(err))
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("NOT READY"))
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("READY"))
	})
}
