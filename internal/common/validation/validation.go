// Package validation wraps a shared go-playground validator instance.
package validation

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// FieldError names the first rule that failed.
type FieldError struct {
	Field string
	Tag   string
}

// Struct validates v against its `validate` tags. It returns nil when v is
// valid, the first failing field otherwise, and an error only when v cannot
// be validated at all.
func Struct(v any) (*FieldError, error) {
	err := validate.Struct(v)
	if err == nil {
		return nil, nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return &FieldError{Field: verrs[0].Field(), Tag: verrs[0].Tag()}, nil
	}
	return nil, err
}
