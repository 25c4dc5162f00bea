// Package usecase implements project creation and membership management.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/codecollab/server/internal/project/domain"
	userDomain "github.com/codecollab/server/internal/user/domain"
)

// CreateProjectInput is the request to create a project.
type CreateProjectInput struct {
	Name string `json:"name"`
}

// AddUsersInput is the request to add members to a project.
type AddUsersInput struct {
	ProjectID uuid.UUID   `json:"projectId"`
	UserIDs   []uuid.UUID `json:"users"`
}

// ProjectRepository defines project persistence operations.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	// AddMembers inserts memberships, ignoring users that already belong to the project.
	AddMembers(ctx context.Context, projectID uuid.UUID, userIDs []uuid.UUID, now time.Time) error
	// GetByID returns the project with its members ordered by email.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	// ListByUser returns the projects userID belongs to ordered by name, without members.
	ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*domain.Project, error)
}

// UserFinder resolves the authenticated identifier to a user.
type UserFinder interface {
	GetByEmail(ctx context.Context, email string) (*userDomain.User, error)
}

// UseCase defines project business operations. Every operation acts on behalf of
// the authenticated caller identified by email.
type UseCase interface {
	Create(ctx context.Context, callerEmail string, input CreateProjectInput) (*domain.Project, error)
	List(ctx context.Context, callerEmail string, offset, limit int) ([]*domain.Project, error)
	AddUsers(ctx context.Context, callerEmail string, input AddUsersInput) (*domain.Project, error)
	Get(ctx context.Context, callerEmail string, projectID uuid.UUID) (*domain.Project, error)
}
