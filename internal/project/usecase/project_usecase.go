package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	"github.com/codecollab/server/internal/database"
	apperrors "github.com/codecollab/server/internal/errors"
	"github.com/codecollab/server/internal/project/domain"
	userDomain "github.com/codecollab/server/internal/user/domain"
	appValidation "github.com/codecollab/server/internal/validation"
)

const maxNameLength = 100

func requiredUUID(value interface{}) error {
	if id, ok := value.(uuid.UUID); !ok || id == uuid.Nil {
		return validation.NewError("validation_uuid_required", "must be a valid id")
	}
	return nil
}

type projectUseCase struct {
	txManager   database.TxManager
	projectRepo ProjectRepository
	users       UserFinder
}

// NewProjectUseCase creates a new project UseCase.
func NewProjectUseCase(
	txManager database.TxManager,
	projectRepo ProjectRepository,
	users UserFinder,
) UseCase {
	return &projectUseCase{
		txManager:   txManager,
		projectRepo: projectRepo,
		users:       users,
	}
}

// caller resolves the authenticated identifier. A token whose account vanished is
// treated like any other invalid credential.
func (uc *projectUseCase) caller(ctx context.Context, email string) (*userDomain.User, error) {
	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.Is(err, userDomain.ErrUserNotFound) {
			return nil, userDomain.ErrInvalidCredentials
		}
		return nil, err
	}
	return user, nil
}

// Create stores the project and makes the caller its first member.
func (uc *projectUseCase) Create(
	ctx context.Context,
	callerEmail string,
	input CreateProjectInput,
) (*domain.Project, error) {
	input.Name = strings.ToLower(strings.TrimSpace(input.Name))
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, maxNameLength),
		),
	)
	if err != nil {
		return nil, appValidation.WrapValidationError(err)
	}

	owner, err := uc.caller(ctx, callerEmail)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	project := &domain.Project{
		ID:        uuid.Must(uuid.NewV7()),
		Name:      input.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := uc.projectRepo.Create(ctx, project); err != nil {
			return err
		}
		return uc.projectRepo.AddMembers(ctx, project.ID, []uuid.UUID{owner.ID}, now)
	})
	if err != nil {
		if apperrors.Is(err, domain.ErrProjectAlreadyExists) {
			return nil, appValidation.WrapValidationError(validation.Errors{
				"name": validation.NewError("validation_name_taken", "project name already exists"),
			})
		}
		return nil, err
	}

	project.Members = []domain.Member{{ID: owner.ID, Email: owner.Email}}
	return project, nil
}

// List returns the projects the caller belongs to.
func (uc *projectUseCase) List(
	ctx context.Context,
	callerEmail string,
	offset, limit int,
) ([]*domain.Project, error) {
	user, err := uc.caller(ctx, callerEmail)
	if err != nil {
		return nil, err
	}
	return uc.projectRepo.ListByUser(ctx, user.ID, offset, limit)
}

// AddUsers adds members to a project the caller belongs to. Users already in the
// project are left untouched.
func (uc *projectUseCase) AddUsers(
	ctx context.Context,
	callerEmail string,
	input AddUsersInput,
) (*domain.Project, error) {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.ProjectID, validation.By(requiredUUID)),
		validation.Field(&input.UserIDs,
			validation.Required.Error("users must contain at least one user id"),
			validation.Each(validation.By(requiredUUID)),
		),
	)
	if err != nil {
		return nil, appValidation.WrapValidationError(err)
	}

	user, err := uc.caller(ctx, callerEmail)
	if err != nil {
		return nil, err
	}

	err = uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := uc.requireMember(ctx, input.ProjectID, user.ID); err != nil {
			return err
		}
		return uc.projectRepo.AddMembers(ctx, input.ProjectID, input.UserIDs, time.Now().UTC())
	})
	if err != nil {
		return nil, err
	}

	return uc.projectRepo.GetByID(ctx, input.ProjectID)
}

// Get returns a project with its members. Only members may read it.
func (uc *projectUseCase) Get(
	ctx context.Context,
	callerEmail string,
	projectID uuid.UUID,
) (*domain.Project, error) {
	user, err := uc.caller(ctx, callerEmail)
	if err != nil {
		return nil, err
	}

	project, err := uc.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !project.HasMember(user.ID) {
		return nil, domain.ErrNotProjectMember
	}
	return project, nil
}

func (uc *projectUseCase) requireMember(ctx context.Context, projectID, userID uuid.UUID) error {
	project, err := uc.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	if !project.HasMember(userID) {
		return domain.ErrNotProjectMember
	}
	return nil
}
