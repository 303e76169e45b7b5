package http

import (
	"net/http"
	"strconv"

	commonerrors "github.com/WooodHead/everpost-backend/internal/common/errors"
)

var (
	ErrInvalidIDFormat = commonerrors.NewValidationError(CodeInvalidIDFormat, "id must be a positive integer")
	ErrInvalidQuery    = commonerrors.NewValidationError(CodeInvalidQuery, "query parameter must be a non-negative integer")
)

// PathID reads a numeric {name} wildcard registered on the mux pattern.
func PathID(r *http.Request, name string) (int64, error) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidIDFormat
	}
	return id, nil
}

// QueryInt returns fallback when the parameter is absent.
func QueryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, ErrInvalidQuery
	}
	return v, nil
}
