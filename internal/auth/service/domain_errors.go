package service

import (
	"net/http"

	commonerrors "github.com/WooodHead/everpost-backend/internal/common/errors"
)

// Public message shared by every failed login so that callers cannot tell an
// unknown email from a wrong password.
const wrongCredentialsMessage = "Email or password is wrong"

var (
	ErrValidationPasswordLength = commonerrors.NewValidationError(
		"VALIDATION_PASSWORD_LENGTH",
		"password must be at least 8 characters and at most 72 bytes",
	)

	ErrValidationEmail          = commonerrors.ErrValidationEmail
	ErrValidationUsernameLength = commonerrors.ErrValidationUsernameLength
	ErrEmailTaken               = commonerrors.ErrEmailTaken

	ErrAccountNotFound = commonerrors.NewDomainError(
		"ACCOUNT_NOT_FOUND",
		commonerrors.CategoryNotFound,
		http.StatusUnauthorized,
		wrongCredentialsMessage,
	)

	ErrCredentialNotFound = commonerrors.NewDomainError(
		"CREDENTIAL_NOT_FOUND",
		commonerrors.CategoryNotFound,
		http.StatusUnauthorized,
		wrongCredentialsMessage,
	)

	ErrInvalidCredentials = commonerrors.NewUnauthorizedError(
		"INVALID_CREDENTIALS",
		wrongCredentialsMessage,
	)
)
