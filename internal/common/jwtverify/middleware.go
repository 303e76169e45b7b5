package jwtverify

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	commonerrors "github.com/WooodHead/everpost-backend/internal/common/errors"
	commonhttp "github.com/WooodHead/everpost-backend/internal/common/http"
	"github.com/WooodHead/everpost-backend/internal/common/logger"
	"github.com/WooodHead/everpost-backend/internal/observability/metrics"
)

// Claims is the token payload: id and email plus iat and exp.
type Claims struct {
	UserID int64  `json:"id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

type contextKey string

const claimsKey contextKey = "jwt_claims"

var errMissingIdentity = errors.New("token carries no id or email")

func Middleware(secret string, log *logger.Logger) func(next http.Handler) http.Handler {
	secretBytes := []byte(secret)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			traceID := commonhttp.TraceIDFromContext(r.Context())

			raw := r.Header.Get("Authorization")
			if raw == "" || !strings.HasPrefix(raw, "Bearer ") {
				log.WithFields(r.Context(), logger.Fields{
					"action": "jwt_auth",
					"path":   r.URL.Path,
				}).Warn("missing or invalid authorization header")
				commonhttp.WriteErrorEnvelope(w, http.StatusUnauthorized, commonhttp.CodeMissingAuthorization, "missing or invalid authorization", nil, traceID)
				return
			}

			claims, err := ParseToken(strings.TrimPrefix(raw, "Bearer "), secretBytes, time.Now)
			if err != nil {
				log.WithFields(r.Context(), logger.Fields{
					"action": "jwt_auth",
					"path":   r.URL.Path,
				}).Warnf("token rejected: %v", err)
				commonhttp.WriteErrorEnvelope(w, http.StatusUnauthorized, commonhttp.CodeInvalidToken, "invalid token", nil, traceID)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

func WithClaims(ctx context.Context, claims Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

func FromContext(ctx context.Context) (Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(Claims)
	return claims, ok
}

// ParseToken verifies an HS512 token signed with secret. Every failure,
// including expiry, is reported as commonerrors.ErrInvalidToken.
func ParseToken(tokenString string, secret []byte, now func() time.Time) (Claims, error) {
	metrics.JWTValidationsTotal.Inc()

	if now == nil {
		now = time.Now
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(
		tokenString,
		&claims,
		func(token *jwt.Token) (any, error) {
			return secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(now),
	)
	if err == nil && (claims.UserID <= 0 || claims.Email == "") {
		err = errMissingIdentity
	}
	if err != nil {
		metrics.JWTValidationsFailed.Inc()
		return Claims{}, commonerrors.ErrInvalidToken.WithCause(err)
	}

	return claims, nil
}
