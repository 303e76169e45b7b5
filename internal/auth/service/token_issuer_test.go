package service_test

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/WooodHead/everpost-backend/internal/auth/service"
	"github.com/WooodHead/everpost-backend/internal/common/clock"
	"github.com/WooodHead/everpost-backend/internal/common/constants"
	commonerrors "github.com/WooodHead/everpost-backend/internal/common/errors"
)

func newIssuer(t *testing.T, secret string, c clock.Clock) *service.TokenIssuer {
	t.Helper()
	issuer, err := service.NewTokenIssuer(secret, constants.AccessTokenTTL, c)
	if err != nil {
		t.Fatalf("new token issuer: %v", err)
	}
	return issuer
}

func TestTokenIssuer_IssueAndVerify(t *testing.T) {
	mockClock := clock.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	issuer := newIssuer(t, testSecret, mockClock)

	token, err := issuer.Issue(42, "a@b.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := issuer.Verify(token.AccessToken)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != 42 || claims.Email != "a@b.com" {
		t.Errorf("expected {42, a@b.com}, got {%d, %s}", claims.UserID, claims.Email)
	}
	if !token.ExpiresAt.Equal(mockClock.Now().Add(7 * 24 * time.Hour)) {
		t.Errorf("unexpected expiry %v", token.ExpiresAt)
	}
}

func TestTokenIssuer_Payload(t *testing.T) {
	issuer := newIssuer(t, testSecret, clock.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)))

	token, err := issuer.Issue(42, "a@b.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	parts := strings.Split(token.AccessToken, ".")
	if len(parts) != 3 {
		t.Fatalf("expected compact JWS, got %d parts", len(parts))
	}

	header, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		t.Fatalf("decode header: %v", err)
	}
	var h map[string]any
	if err := json.Unmarshal(header, &h); err != nil {
		t.Fatalf("unmarshal header: %v", err)
	}
	if h["alg"] != "HS512" {
		t.Errorf("expected HS512, got %v", h["alg"])
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	var p map[string]any
	if err := json.Unmarshal(payload, &p); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}

	for _, key := range []string{"id", "email", "iat", "exp"} {
		if _, ok := p[key]; !ok {
			t.Errorf("missing claim %s", key)
		}
	}
	if len(p) != 4 {
		t.Errorf("expected exactly 4 claims, got %v", p)
	}
	if exp, iat := p["exp"].(float64), p["iat"].(float64); exp-iat != (7 * 24 * time.Hour).Seconds() {
		t.Errorf("expected 7 day lifetime, got %v seconds", exp-iat)
	}
}

func TestTokenIssuer_WrongSecret(t *testing.T) {
	c := clock.NewMockClock(time.Now())
	issuer := newIssuer(t, testSecret, c)
	other := newIssuer(t, "another-secret-key-that-is-32-bytes-long", c)

	token, err := issuer.Issue(42, "a@b.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	_, err = other.Verify(token.AccessToken)
	if !errors.Is(err, commonerrors.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
	if !commonerrors.IsCategory(err, commonerrors.CategoryUnauthorized) {
		t.Errorf("expected unauthorized category, got %v", err)
	}
}

func TestTokenIssuer_Expired(t *testing.T) {
	start := time.Now()
	c := clock.NewMockClock(start)
	issuer := newIssuer(t, testSecret, c)

	token, err := issuer.Issue(42, "a@b.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	c.SetTime(start.Add(7*24*time.Hour - time.Minute))
	if _, err := issuer.Verify(token.AccessToken); err != nil {
		t.Fatalf("token should still be valid: %v", err)
	}

	c.SetTime(start.Add(7*24*time.Hour + time.Second))
	if _, err := issuer.Verify(token.AccessToken); !errors.Is(err, commonerrors.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken after expiry, got %v", err)
	}
}

func TestTokenIssuer_Malformed(t *testing.T) {
	issuer := newIssuer(t, testSecret, clock.NewRealClock())

	if _, err := issuer.Verify("definitely-not-a-jwt"); !errors.Is(err, commonerrors.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestNewTokenIssuer_EmptySecret(t *testing.T) {
	_, err := service.NewTokenIssuer("", constants.AccessTokenTTL, clock.NewRealClock())
	if !errors.Is(err, service.ErrMissingJWTSecret) {
		t.Fatalf("expected ErrMissingJWTSecret, got %v", err)
	}
}
