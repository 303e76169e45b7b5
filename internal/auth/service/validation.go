package service

import (
	"fmt"
	"strings"

	"github.com/WooodHead/everpost-backend/internal/common/constants"
	"github.com/WooodHead/everpost-backend/internal/common/validation"
)

type registerRules struct {
	Email    string `validate:"required,email,max=255"`
	Username string `validate:"max=64"`
	Password string `validate:"min=8"`
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(email)
}

func validateRegistration(input RegisterInput) error {
	fe, err := validation.Struct(registerRules{
		Email:    input.Email,
		Username: input.Username,
		Password: input.Password,
	})
	if err != nil {
		return fmt.Errorf("validate registration: %w", err)
	}
	if fe != nil {
		switch fe.Field {
		case "Email":
			return ErrValidationEmail
		case "Username":
			return ErrValidationUsernameLength
		default:
			return ErrValidationPasswordLength
		}
	}

	// bcrypt only looks at the first 72 bytes
	if len(input.Password) > constants.PasswordMaxLength {
		return ErrValidationPasswordLength
	}
	return nil
}
