package http

import (
	"net/http"

	"github.com/WooodHead/everpost-backend/internal/common/constants"
	"github.com/WooodHead/everpost-backend/internal/common/httpmetrics"
	"github.com/WooodHead/everpost-backend/internal/common/logger"
)

// BuildBaseHandler wraps the router with the middleware every route shares.
// Outermost first: security headers, CSP, CORS, trace id, panic recovery,
// access log, body limit, request metrics.
func BuildBaseHandler(log *logger.Logger, corsOrigin string, handler http.Handler) http.Handler {
	collector := httpmetrics.New()

	h := collector.Wrap(handler)
	h = MaxRequestSizeMiddleware(constants.DefaultMaxRequestSize)(h)
	h = AccessLogMiddleware(log)(h)
	h = RecoveryMiddleware(log)(h)
	h = TraceIDMiddleware(h)
	h = CORSMiddleware(corsOrigin)(h)
	h = ContentSecurityPolicyMiddleware("")(h)
	return SecurityHeadersMiddleware(h)
}
