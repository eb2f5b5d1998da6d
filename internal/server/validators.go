// file: internal/server/validators.go
// version: 2.0.0
// guid: 9b0c1d2e-3f4a-5b6c-7d8e-9f0a1b2c3d4e

package server

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jdfalk/user-service/internal/models"
)

// ValidationError carries the ordered field violations of a rejected payload
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, fmt.Sprintf("%s: %s", v.Field, v.Error))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// UserValidator checks user payloads before they reach the store
type UserValidator struct {
	validate *validator.Validate
}

// NewUserValidator builds a validator that reports fields by their JSON name
func NewUserValidator() *UserValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// notblank treats whitespace-only strings as missing
	if err := v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	}); err != nil {
		panic(fmt.Sprintf("failed to register notblank validation: %v", err))
	}
	return &UserValidator{validate: v}
}

// Validate returns the violations of in, in field order; nil means valid.
// Each field reports at most its first failing rule.
func (uv *UserValidator) Validate(in models.UserInput) []Violation {
	err := uv.validate.Struct(in)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []Violation{{Field: "body", Error: err.Error()}}
	}

	violations := make([]Violation, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		violations = append(violations, Violation{
			Field: fe.Field(),
			Error: violationMessage(fe),
		})
	}
	return violations
}

// Check wraps Validate as an error for the service layer
func (uv *UserValidator) Check(in models.UserInput) error {
	if violations := uv.Validate(in); len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}

func violationMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required", "notblank":
		return field + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "email":
		return field + " must be a valid email address"
	default:
		return fmt.Sprintf("%s failed the %q rule", field, fe.Tag())
	}
}
