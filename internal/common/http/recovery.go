package http

import (
	"errors"
	"net/http"
	"runtime/debug"
	"strconv"

	"github.com/WooodHead/everpost-backend/internal/common/httpmetrics"
	"github.com/WooodHead/everpost-backend/internal/common/logger"
	"github.com/WooodHead/everpost-backend/internal/observability/metrics"
)

// RecoveryMiddleware turns a handler panic into the 500 envelope.
// http.ErrAbortHandler is re-raised so net/http can drop the connection.
func RecoveryMiddleware(log *logger.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(rec)
				}

				log.WithFields(r.Context(), logger.Fields{
					"action": "panic_recovered",
					"path":   r.URL.Path,
					"method": r.Method,
				}).Criticalf("panic recovered: %v\n%s", rec, debug.Stack())

				metrics.HTTPErrorsTotal.WithLabelValues(
					strconv.Itoa(http.StatusInternalServerError),
					httpmetrics.NormalizePath(r.URL.Path),
					r.Method,
				).Inc()

				WriteErrorEnvelope(w, http.StatusInternalServerError, CodeInternal, "internal server error", nil, TraceIDFromContext(r.Context()))
			}()
			next.ServeHTTP(w, r)
		})
	}
}
