package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/WooodHead/everpost-backend/internal/common/constants"
	commonerrors "github.com/WooodHead/everpost-backend/internal/common/errors"
	"github.com/WooodHead/everpost-backend/internal/common/logger"
)

func newTestLogger() *logger.Logger {
	return logger.NewWithWriter(&bytes.Buffer{}, "test", "debug")
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) ErrorEnvelope {
	t.Helper()
	var env ErrorEnvelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return env
}

func TestErrorHandler_DomainError(t *testing.T) {
	h := NewErrorHandler(newTestLogger())
	req := httptest.NewRequest(http.MethodGet, "/users/7", nil)
	req = req.WithContext(context.WithValue(req.Context(), constants.TraceIDKey, "trace-1"))
	rec := httptest.NewRecorder()

	h.HandleError(rec, req, commonerrors.ErrUserNotFound.WithCause(errors.New("no rows")))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Code != "USER_NOT_FOUND" {
		t.Errorf("expected code USER_NOT_FOUND, got %s", env.Code)
	}
	if env.Message != "User not found" {
		t.Errorf("unexpected message %q", env.Message)
	}
	if env.TraceID != "trace-1" {
		t.Errorf("expected trace id trace-1, got %q", env.TraceID)
	}
}

func TestErrorHandler_UnknownErrorHidesDetails(t *testing.T) {
	h := NewErrorHandler(newTestLogger())
	req := httptest.NewRequest(http.MethodPost, "/posts", nil)
	rec := httptest.NewRecorder()

	h.HandleError(rec, req, errors.New("failed to create post: connection refused"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Message != "internal server error" {
		t.Errorf("internal details leaked: %q", env.Message)
	}
}

func TestErrorHandler_NilErrorWritesNothing(t *testing.T) {
	h := NewErrorHandler(newTestLogger())
	rec := httptest.NewRecorder()

	h.HandleError(rec, httptest.NewRequest(http.MethodGet, "/", nil), nil)

	if rec.Body.Len() != 0 {
		t.Errorf("expected empty body, got %q", rec.Body.String())
	}
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	t.Run("valid", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"name":"a"}`))
		var p payload
		if err := DecodeJSON(req, &p); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Name != "a" {
			t.Errorf("expected name a, got %q", p.Name)
		}
	})

	t.Run("malformed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{`))
		var p payload
		err := DecodeJSON(req, &p)
		if !errors.Is(err, ErrInvalidJSON) {
			t.Fatalf("expected ErrInvalidJSON, got %v", err)
		}
	})

	t.Run("unknown field", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"name":"a","admin":true}`))
		var p payload
		if err := DecodeJSON(req, &p); !errors.Is(err, ErrInvalidJSON) {
			t.Fatalf("expected ErrInvalidJSON, got %v", err)
		}
	})

	t.Run("unknown field ignored", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"name":"a","admin":true}`))
		var p payload
		if err := DecodeJSONIgnoreUnknown(req, &p); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Name != "a" {
			t.Errorf("expected name a, got %q", p.Name)
		}
	})
}
