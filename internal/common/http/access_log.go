package http

import (
	"net/http"
	"time"

	"github.com/WooodHead/everpost-backend/internal/common/logger"
)

type loggingResponseWriter struct {
	http.ResponseWriter
	status int
}

func (w *loggingResponseWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// AccessLogMiddleware writes one line per request. It must run inside
// TraceIDMiddleware so the line carries the trace id.
func AccessLogMiddleware(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			lw := &loggingResponseWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(lw, r)

			entry := log.WithFields(r.Context(), logger.Fields{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      lw.status,
				"duration_ms": time.Since(start).Milliseconds(),
				"client_ip":   GetClientIP(r),
			})
			if lw.status >= http.StatusInternalServerError {
				entry.Warn("request completed")
				return
			}
			entry.Info("request completed")
		})
	}
}
