// Package mocks provides mock implementations of the project use case and repository for testing.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/codecollab/server/internal/project/domain"
	"github.com/codecollab/server/internal/project/usecase"
)

func project(args mock.Arguments) (*domain.Project, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}

func projects(args mock.Arguments) ([]*domain.Project, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Project), args.Error(1)
}

// MockProjectUseCase is a mock implementation of usecase.UseCase.
type MockProjectUseCase struct {
	mock.Mock
}

// Create mocks the Create method.
func (m *MockProjectUseCase) Create(
	ctx context.Context,
	callerEmail string,
	input usecase.CreateProjectInput,
) (*domain.Project, error) {
	return project(m.Called(ctx, callerEmail, input))
}

// List mocks the List method.
func (m *MockProjectUseCase) List(
	ctx context.Context,
	callerEmail string,
	offset, limit int,
) ([]*domain.Project, error) {
	return projects(m.Called(ctx, callerEmail, offset, limit))
}

// AddUsers mocks the AddUsers method.
func (m *MockProjectUseCase) AddUsers(
	ctx context.Context,
	callerEmail string,
	input usecase.AddUsersInput,
) (*domain.Project, error) {
	return project(m.Called(ctx, callerEmail, input))
}

// Get mocks the Get method.
func (m *MockProjectUseCase) Get(
	ctx context.Context,
	callerEmail string,
	projectID uuid.UUID,
) (*domain.Project, error) {
	return project(m.Called(ctx, callerEmail, projectID))
}

// MockProjectRepository is a mock implementation of usecase.ProjectRepository.
type MockProjectRepository struct {
	mock.Mock
}

// Create mocks the Create method.
func (m *MockProjectRepository) Create(ctx context.Context, p *domain.Project) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

// AddMembers mocks the AddMembers method.
func (m *MockProjectRepository) AddMembers(
	ctx context.Context,
	projectID uuid.UUID,
	userIDs []uuid.UUID,
	now time.Time,
) error {
	args := m.Called(ctx, projectID, userIDs, now)
	return args.Error(0)
}

// GetByID mocks the GetByID method.
func (m *MockProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	return project(m.Called(ctx, id))
}

// ListByUser mocks the ListByUser method.
func (m *MockProjectRepository) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	offset, limit int,
) ([]*domain.Project, error) {
	return projects(m.Called(ctx, userID, offset, limit))
}

// MockTxManager runs the function inline unless an error is configured.
type MockTxManager struct {
	mock.Mock
}

// WithTx mocks the WithTx method.
func (m *MockTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx)
}
