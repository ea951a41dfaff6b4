package httpserver

import (
	"context"
	"log/slog"
	"net/http"
	"sort"

	"github.com/dmitrymomot/notifykit/pkg/logger"
)

// Check probes one dependency.
type Check func(context.Context) error

// LivenessHandler always answers 200 "ALIVE".
func LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ALIVE"))
	}
}

// ReadinessHandler runs every named check with the request context and
// answers 200 "READY" when all pass, or 503 "NOT_READY" on the first failure.
// Checks run in name order so failures are reported deterministically.
func ReadinessHandler(log *slog.Logger, checks map[string]Check) http.HandlerFunc {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(w http.ResponseWriter, r *http.Request) {
		for _, name := range names {
			if err := checks[name](r.Context()); err != nil {
				log.ErrorContext(r.Context(), "readiness check failed",
					slog.String("dependency", name),
					logger.Error(err),
				)
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("NOT_READY"))
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("READY"))
	}
}
