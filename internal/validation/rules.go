// Package validation holds the jellydator rules shared by the user, project and
// session packages and the glue that turns rule failures into ErrInvalidInput.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	validation "github.com/jellydator/validation"

	apperrors "github.com/codecollab/server/internal/errors"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// WrapValidationError marks err as ErrInvalidInput. validation.Errors stays in the
// chain so FieldErrors can still read the per-field messages.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", apperrors.ErrInvalidInput, err)
}

// FieldErrors returns the per-field messages carried by a validation error chain.
func FieldErrors(err error) map[string]string {
	var verrs validation.Errors
	if !apperrors.As(err, &verrs) || len(verrs) == 0 {
		return nil
	}
	details := make(map[string]string, len(verrs))
	for field, fieldErr := range verrs {
		if fieldErr != nil {
			details[field] = fieldErr.Error()
		}
	}
	return details
}

// NormalizeEmail trims and lowercases an email address before validation and storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// PasswordLength bounds a password by characters. A zero Max means unbounded.
type PasswordLength struct {
	Min int
	Max int
}

// Validate implements validation.Rule.
func (p PasswordLength) Validate(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_password_type", "password must be a string")
	}

	n := utf8.RuneCountInString(s)
	if n < p.Min {
		return validation.NewError(
			"validation_password_min_length",
			fmt.Sprintf("password must be at least %d characters", p.Min),
		)
	}
	if p.Max > 0 && n > p.Max {
		return validation.NewError(
			"validation_password_max_length",
			fmt.Sprintf("password must be at most %d characters", p.Max),
		)
	}
	return nil
}

// Email validates the address format.
var Email = validation.NewStringRuleWithError(
	func(s string) bool {
		return emailRegex.MatchString(s)
	},
	validation.NewError("validation_email_format", "must be a valid email address"),
)

// NoWhitespace rejects leading or trailing whitespace.
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// NotBlank rejects strings that are empty after trimming.
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)
