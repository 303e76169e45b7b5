package commonerrors

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCategory string

const (
	CategoryValidation   ErrorCategory = "VALIDATION"
	CategoryNotFound     ErrorCategory = "NOT_FOUND"
	CategoryConflict     ErrorCategory = "CONFLICT"
	CategoryUnauthorized ErrorCategory = "UNAUTHORIZED"
	CategoryForbidden    ErrorCategory = "FORBIDDEN"
	CategoryInternal     ErrorCategory = "INTERNAL"
)

type DomainError interface {
	error
	Code() string
	Category() ErrorCategory
	HTTPStatus() int
	Message() string
	TraceID() string
	Unwrap() error
	WithCause(cause error) DomainError
	WithTraceID(traceID string) DomainError
	Is(target error) bool
}

type domainError struct {
	code     string
	category ErrorCategory
	status   int
	message  string
	traceID  string
	cause    error
}

func (e *domainError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *domainError) Code() string {
	return e.code
}

func (e *domainError) Category() ErrorCategory {
	return e.category
}

func (e *domainError) HTTPStatus() int {
	return e.status
}

func (e *domainError) Message() string {
	return e.message
}

func (e *domainError) TraceID() string {
	return e.traceID
}

func (e *domainError) Unwrap() error {
	return e.cause
}

// Is matches on code so that errors.Is keeps working after WithCause or
// WithTraceID returned a copy of a sentinel.
func (e *domainError) Is(target error) bool {
	var other *domainError
	if !errors.As(target, &other) {
		return false
	}
	return e.code == other.code
}

func (e *domainError) WithCause(cause error) DomainError {
	cp := *e
	cp.cause = cause
	return &cp
}

func (e *domainError) WithTraceID(traceID string) DomainError {
	cp := *e
	cp.traceID = traceID
	return &cp
}

func NewDomainError(code string, category ErrorCategory, status int, message string) DomainError {
	return &domainError{
		code:     code,
		category: category,
		status:   status,
		message:  message,
	}
}

func NewValidationError(code, message string) DomainError {
	return NewDomainError(code, CategoryValidation, http.StatusBadRequest, message)
}

func NewConflictError(code, message string) DomainError {
	return NewDomainError(code, CategoryConflict, http.StatusConflict, message)
}

func NewNotFoundError(code, message string) DomainError {
	return NewDomainError(code, CategoryNotFound, http.StatusNotFound, message)
}

func NewUnauthorizedError(code, message string) DomainError {
	return NewDomainError(code, CategoryUnauthorized, http.StatusUnauthorized, message)
}

func NewForbiddenError(code, message string) DomainError {
	return NewDomainError(code, CategoryForbidden, http.StatusForbidden, message)
}

func IsDomainError(err error) bool {
	var de DomainError
	return errors.As(err, &de)
}

func AsDomainError(err error) (DomainError, bool) {
	var de DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

func IsCategory(err error, category ErrorCategory) bool {
	de, ok := AsDomainError(err)
	return ok && de.Category() == category
}

var (
	ErrMissingRequiredEnv = errors.New("missing required environment variable")
	ErrInvalidEnv         = errors.New("invalid environment variable")
	ErrInvalidJWTSecret   = errors.New("JWT_SECRET must be at least 32 bytes")

	ErrEmailAlreadyExists = errors.New("email already exists")

	ErrInvalidToken = NewUnauthorizedError(
		"INVALID_TOKEN",
		"token is not valid",
	)

	ErrEmailTaken = NewConflictError(
		"EMAIL_TAKEN",
		"email already exists",
	)

	ErrValidationEmail = NewValidationError(
		"VALIDATION_EMAIL",
		"email must be a valid address",
	)

	ErrValidationUsernameLength = NewValidationError(
		"VALIDATION_USERNAME_LENGTH",
		"username must be at most 64 characters",
	)

	ErrUserNotFound = NewNotFoundError(
		"USER_NOT_FOUND",
		"User not found",
	)

	ErrInternalError = NewDomainError(
		"INTERNAL_ERROR",
		CategoryInternal,
		http.StatusInternalServerError,
		"internal server error",
	)
)
