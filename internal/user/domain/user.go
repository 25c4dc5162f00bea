// Package domain defines the core user domain entities and types.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/codecollab/server/internal/errors"
	sessionDomain "github.com/codecollab/server/internal/session/domain"
)

// User is a registered account. Email is the login identifier, stored trimmed and
// lowercased. Password holds the encoded hash, never the plain secret.
type User struct {
	ID        uuid.UUID
	Email     string
	Password  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AuthResult is returned by register and login: the account and its new session.
type AuthResult struct {
	User    *User
	Session *sessionDomain.IssuedToken
}

// Domain-specific errors for user operations.
var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.Wrap(errors.ErrNotFound, "user not found")

	// ErrUserAlreadyExists indicates a user with the same email already exists.
	ErrUserAlreadyExists = errors.Wrap(errors.ErrConflict, "user already exists")

	// ErrInvalidCredentials is returned by login for unknown emails and wrong passwords alike.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid credentials")

	// ErrUnsupportedPasswordHash indicates an imported hash is neither Argon2id nor bcrypt.
	ErrUnsupportedPasswordHash = errors.Wrap(errors.ErrInvalidInput, "unsupported password hash")
)
