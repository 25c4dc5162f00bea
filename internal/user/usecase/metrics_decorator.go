package usecase

import (
	"context"
	"time"

	"github.com/codecollab/server/internal/metrics"
	"github.com/codecollab/server/internal/user/domain"
)

// userUseCaseWithMetrics decorates UseCase with metrics instrumentation.
type userUseCaseWithMetrics struct {
	next    UseCase
	metrics metrics.BusinessMetrics
}

// NewUserUseCaseWithMetrics wraps a UseCase with metrics recording.
func NewUserUseCaseWithMetrics(useCase UseCase, m metrics.BusinessMetrics) UseCase {
	return &userUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (u *userUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	metrics.Observe(ctx, u.metrics, metrics.DomainUser, operation, start, err)
}

// Register records metrics for registrations.
func (u *userUseCaseWithMetrics) Register(
	ctx context.Context,
	input RegisterUserInput,
) (*domain.AuthResult, error) {
	start := time.Now()
	result, err := u.next.Register(ctx, input)
	u.record(ctx, "register", start, err)
	return result, err
}

// Login records metrics for logins.
func (u *userUseCaseWithMetrics) Login(ctx context.Context, input LoginInput) (*domain.AuthResult, error) {
	start := time.Now()
	result, err := u.next.Login(ctx, input)
	u.record(ctx, "login", start, err)
	return result, err
}

// Logout records metrics for logouts.
func (u *userUseCaseWithMetrics) Logout(ctx context.Context, token string) error {
	start := time.Now()
	err := u.next.Logout(ctx, token)
	u.record(ctx, "logout", start, err)
	return err
}

// Profile records metrics for profile lookups.
func (u *userUseCaseWithMetrics) Profile(ctx context.Context, email string) (*domain.User, error) {
	start := time.Now()
	user, err := u.next.Profile(ctx, email)
	u.record(ctx, "profile", start, err)
	return user, err
}

// ListOthers records metrics for user listings.
func (u *userUseCaseWithMetrics) ListOthers(
	ctx context.Context,
	email string,
	offset, limit int,
) ([]*domain.User, error) {
	start := time.Now()
	users, err := u.next.ListOthers(ctx, email, offset, limit)
	u.record(ctx, "list", start, err)
	return users, err
}

// CreateUser records metrics for accounts created from the CLI.
func (u *userUseCaseWithMetrics) CreateUser(ctx context.Context, input RegisterUserInput) (*domain.User, error) {
	start := time.Now()
	user, err := u.next.CreateUser(ctx, input)
	u.record(ctx, "create", start, err)
	return user, err
}

// ImportUser records metrics for imported accounts.
func (u *userUseCaseWithMetrics) ImportUser(ctx context.Context, input ImportUserInput) (*domain.User, error) {
	start := time.Now()
	user, err := u.next.ImportUser(ctx, input)
	u.record(ctx, "import", start, err)
	return user, err
}
