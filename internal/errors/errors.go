// Package errors defines the error categories shared by the user, project and
// session modules. Use cases wrap one of the sentinels; handlers and metrics map
// the category, never the concrete cause.
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the addressed user or project does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict means a unique value is already taken.
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput means the request failed validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized means the credentials or session token were rejected.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden means the caller is authenticated but may not act on the resource.
	ErrForbidden = errors.New("forbidden")

	// ErrUnavailable means a backing store did not answer in time. Retrying later may succeed.
	ErrUnavailable = errors.New("unavailable")
)

// kinds is checked in order; the first sentinel found in the chain wins.
var kinds = []struct {
	err  error
	name string
}{
	{ErrInvalidInput, "invalid_input"},
	{ErrUnauthorized, "unauthorized"},
	{ErrForbidden, "forbidden"},
	{ErrNotFound, "not_found"},
	{ErrConflict, "conflict"},
	{ErrUnavailable, "unavailable"},
}

// New creates an error with the given message.
func New(message string) error {
	return errors.New(message)
}

// Wrap prefixes err with message, keeping it in the chain. A nil err stays nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Kind returns the snake_case category of err: "invalid_input", "unauthorized",
// "forbidden", "not_found", "conflict" or "unavailable". Errors outside those
// categories are "internal" and nil is "".
func Kind(err error) string {
	if err == nil {
		return ""
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.name
		}
	}
	return "internal"
}
