// Package mocks provides mock implementations of the session use case and its
// revocation store for testing.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	sessionDomain "github.com/codecollab/server/internal/session/domain"
)

// MockSessionUseCase is a mock implementation of SessionUseCase.
type MockSessionUseCase struct {
	mock.Mock
}

// Issue mocks the Issue method.
func (m *MockSessionUseCase) Issue(ctx context.Context, identifier string) (*sessionDomain.IssuedToken, error) {
	args := m.Called(ctx, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sessionDomain.IssuedToken), args.Error(1)
}

// Validate mocks the Validate method.
func (m *MockSessionUseCase) Validate(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

// Revoke mocks the Revoke method.
func (m *MockSessionUseCase) Revoke(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

// Ready mocks the Ready method.
func (m *MockSessionUseCase) Ready(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockRevocationStore is a mock implementation of RevocationStore.
type MockRevocationStore struct {
	mock.Mock
}

// Revoke mocks the Revoke method.
func (m *MockRevocationStore) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	args := m.Called(ctx, token, ttl)
	return args.Error(0)
}

// IsRevoked mocks the IsRevoked method.
func (m *MockRevocationStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	args := m.Called(ctx, token)
	return args.Bool(0), args.Error(1)
}

// Ping mocks the Ping method.
func (m *MockRevocationStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockRevocationCleaner is a mock implementation of RevocationCleaner.
type MockRevocationCleaner struct {
	mock.Mock
}

// DeleteExpired mocks the DeleteExpired method.
func (m *MockRevocationCleaner) DeleteExpired(ctx context.Context, now time.Time, dryRun bool) (int64, error) {
	args := m.Called(ctx, now, dryRun)
	return args.Get(0).(int64), args.Error(1)
}
