package httpserver

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/ibankit/pkg/logger"
)

// HealthCheckHandler returns "ALIVE" when no checks are given, otherwise
// runs each check and answers "READY" or 503 "NOT_READY".
func HealthCheckHandler(log *slog.Logger, checks ...func() error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if len(checks) == 0 {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ALIVE"))
			return
		}
		for _, check := range checks {
			if err := check(); err != nil {
				log.ErrorContext(r.Context(), "readiness check failed", logger.Error(err))
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("NOT_READY"))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("READY"))
	}
}
