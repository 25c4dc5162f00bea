// Package mocks provides mock implementations of the user use case and repository for testing.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/codecollab/server/internal/user/domain"
	"github.com/codecollab/server/internal/user/usecase"
)

// MockUserUseCase is a mock implementation of usecase.UseCase.
type MockUserUseCase struct {
	mock.Mock
}

func authResult(args mock.Arguments) (*domain.AuthResult, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthResult), args.Error(1)
}

func user(args mock.Arguments) (*domain.User, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// Register mocks the Register method.
func (m *MockUserUseCase) Register(
	ctx context.Context,
	input usecase.RegisterUserInput,
) (*domain.AuthResult, error) {
	return authResult(m.Called(ctx, input))
}

// Login mocks the Login method.
func (m *MockUserUseCase) Login(ctx context.Context, input usecase.LoginInput) (*domain.AuthResult, error) {
	return authResult(m.Called(ctx, input))
}

// Logout mocks the Logout method.
func (m *MockUserUseCase) Logout(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

// Profile mocks the Profile method.
func (m *MockUserUseCase) Profile(ctx context.Context, email string) (*domain.User, error) {
	return user(m.Called(ctx, email))
}

// ListOthers mocks the ListOthers method.
func (m *MockUserUseCase) ListOthers(
	ctx context.Context,
	email string,
	offset, limit int,
) ([]*domain.User, error) {
	args := m.Called(ctx, email, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

// CreateUser mocks the CreateUser method.
func (m *MockUserUseCase) CreateUser(
	ctx context.Context,
	input usecase.RegisterUserInput,
) (*domain.User, error) {
	return user(m.Called(ctx, input))
}

// ImportUser mocks the ImportUser method.
func (m *MockUserUseCase) ImportUser(
	ctx context.Context,
	input usecase.ImportUserInput,
) (*domain.User, error) {
	return user(m.Called(ctx, input))
}

// MockUserRepository is a mock implementation of usecase.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

// Create mocks the Create method.
func (m *MockUserRepository) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

// GetByID mocks the GetByID method.
func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return user(m.Called(ctx, id))
}

// GetByEmail mocks the GetByEmail method.
func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return user(m.Called(ctx, email))
}

// ListExcept mocks the ListExcept method.
func (m *MockUserRepository) ListExcept(
	ctx context.Context,
	email string,
	offset, limit int,
) ([]*domain.User, error) {
	args := m.Called(ctx, email, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

// UpdatePassword mocks the UpdatePassword method.
func (m *MockUserRepository) UpdatePassword(
	ctx context.Context,
	id uuid.UUID,
	passwordHash string,
	updatedAt time.Time,
) error {
	args := m.Called(ctx, id, passwordHash, updatedAt)
	return args.Error(0)
}
