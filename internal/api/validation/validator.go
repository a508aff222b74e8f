package validation

import (
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// RegisterValidators registers custom validators
func RegisterValidators(v *validator.Validate) {
	v.RegisterValidation("email", validateEmail)
	v.RegisterValidation("iso8601", validateISO8601)
}

// IsValidEmail checks if the email is valid
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// validateEmail checks if the email is valid
func validateEmail(fl validator.FieldLevel) bool {
	return IsValidEmail(fl.Field().String())
}

// validateISO8601 checks if the field is an ISO-8601 datetime
func validateISO8601(fl validator.FieldLevel) bool {
	_, err := time.Parse(time.RFC3339, fl.Field().String())
	return err == nil
}

// ValidationError represents a validation error.
// Only the field path and failing rule are recorded, never the value,
// so validation failures can be logged without leaking payload content.
type ValidationError struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
}

// FormatValidationError formats validation errors into loggable field paths
func FormatValidationError(err error) []ValidationError {
	var errors []ValidationError
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			errors = append(errors, ValidationError{
				Field: e.Namespace(),
				Tag:   e.Tag(),
			})
		}
	}
	return errors
}
