// Package usecase implements the user business logic: registration, login, logout,
// profile lookups and the bulk import of accounts from the legacy store.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/codecollab/server/internal/user/domain"
)

// RegisterUserInput contains the credentials submitted at registration or login.
type RegisterUserInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginInput contains the credentials submitted at login.
type LoginInput = RegisterUserInput

// ImportUserInput is one account exported from the legacy store. PasswordHash must
// already be an Argon2id or bcrypt hash.
type ImportUserInput struct {
	Email        string `json:"email"`
	PasswordHash string `json:"password"`
}

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// ListExcept returns users ordered by email, skipping the one with the given email.
	ListExcept(ctx context.Context, email string, offset, limit int) ([]*domain.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string, updatedAt time.Time) error
}

// UseCase defines the interface for user business logic operations.
type UseCase interface {
	// Register creates an account and opens its first session.
	Register(ctx context.Context, input RegisterUserInput) (*domain.AuthResult, error)

	// Login checks credentials and opens a new session. Unknown emails and wrong
	// passwords both return ErrInvalidCredentials.
	Login(ctx context.Context, input LoginInput) (*domain.AuthResult, error)

	// Logout revokes the session token.
	Logout(ctx context.Context, token string) error

	// Profile returns the account of an authenticated identifier.
	Profile(ctx context.Context, email string) (*domain.User, error)

	// ListOthers returns every account except the caller's.
	ListOthers(ctx context.Context, email string, offset, limit int) ([]*domain.User, error)

	// CreateUser creates an account without opening a session.
	CreateUser(ctx context.Context, input RegisterUserInput) (*domain.User, error)

	// ImportUser creates an account from an existing password hash.
	ImportUser(ctx context.Context, input ImportUserInput) (*domain.User, error)
}
