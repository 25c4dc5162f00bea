package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	apperrors "github.com/codecollab/server/internal/errors"
	sessionUseCase "github.com/codecollab/server/internal/session/usecase"
	"github.com/codecollab/server/internal/user/domain"
	userService "github.com/codecollab/server/internal/user/service"
	appValidation "github.com/codecollab/server/internal/validation"
)

const (
	emailMinLength    = 6
	emailMaxLength    = 25
	passwordMinLength = 6
	passwordMaxLength = 128
)

// UserUseCase handles user-related business logic.
type UserUseCase struct {
	userRepo       UserRepository
	sessions       sessionUseCase.SessionUseCase
	passwordHasher userService.PasswordHasher
	logger         *slog.Logger
	// dummyHash is verified against when the email is unknown so both login
	// failures cost the same.
	dummyHash string
}

// NewUserUseCase creates a new UserUseCase.
func NewUserUseCase(
	userRepo UserRepository,
	sessions sessionUseCase.SessionUseCase,
	passwordHasher userService.PasswordHasher,
	logger *slog.Logger,
) (*UserUseCase, error) {
	dummyHash, err := passwordHasher.Hash(uuid.NewString())
	if err != nil {
		return nil, err
	}

	return &UserUseCase{
		userRepo:       userRepo,
		sessions:       sessions,
		passwordHasher: passwordHasher,
		logger:         logger,
		dummyHash:      dummyHash,
	}, nil
}

func validateCredentials(input RegisterUserInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Email,
			validation.Required.Error("email is required"),
			appValidation.NotBlank,
			validation.Length(emailMinLength, emailMaxLength),
			appValidation.Email,
		),
		validation.Field(&input.Password,
			validation.Required.Error("password is required"),
			appValidation.PasswordLength{Min: passwordMinLength, Max: passwordMaxLength},
		),
	)
	return appValidation.WrapValidationError(err)
}

// emailTaken reports a duplicate registration as a field error on email.
func emailTaken() error {
	return appValidation.WrapValidationError(validation.Errors{
		"email": validation.NewError("validation_email_taken", "email is already registered"),
	})
}

// Register validates the credentials, stores the account and issues a session.
func (uc *UserUseCase) Register(ctx context.Context, input RegisterUserInput) (*domain.AuthResult, error) {
	user, err := uc.CreateUser(ctx, input)
	if err != nil {
		return nil, err
	}

	issued, err := uc.sessions.Issue(ctx, user.Email)
	if err != nil {
		return nil, err
	}

	return &domain.AuthResult{User: user, Session: issued}, nil
}

// CreateUser validates the credentials and stores the account.
func (uc *UserUseCase) CreateUser(ctx context.Context, input RegisterUserInput) (*domain.User, error) {
	input.Email = appValidation.NormalizeEmail(input.Email)
	if err := validateCredentials(input); err != nil {
		return nil, err
	}

	hashedPassword, err := uc.passwordHasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user, err := uc.create(ctx, input.Email, hashedPassword)
	if apperrors.Is(err, domain.ErrUserAlreadyExists) {
		return nil, emailTaken()
	}
	return user, err
}

// ImportUser stores an account from the legacy store keeping its password hash.
// A duplicate email returns ErrUserAlreadyExists so imports can skip it.
func (uc *UserUseCase) ImportUser(ctx context.Context, input ImportUserInput) (*domain.User, error) {
	input.Email = appValidation.NormalizeEmail(input.Email)

	err := validation.ValidateStruct(&input,
		validation.Field(&input.Email,
			validation.Required.Error("email is required"),
			validation.Length(emailMinLength, emailMaxLength),
			appValidation.Email,
		),
		validation.Field(&input.PasswordHash, validation.Required.Error("password hash is required")),
	)
	if err != nil {
		return nil, appValidation.WrapValidationError(err)
	}
	if !uc.passwordHasher.IsSupported(input.PasswordHash) {
		return nil, domain.ErrUnsupportedPasswordHash
	}

	return uc.create(ctx, input.Email, input.PasswordHash)
}

func (uc *UserUseCase) create(ctx context.Context, email, passwordHash string) (*domain.User, error) {
	now := time.Now().UTC()
	user := &domain.User{
		ID:        uuid.Must(uuid.NewV7()),
		Email:     email,
		Password:  passwordHash,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies the credentials and issues a session. Legacy bcrypt hashes are
// replaced by Argon2id after a successful verification.
func (uc *UserUseCase) Login(ctx context.Context, input LoginInput) (*domain.AuthResult, error) {
	email := appValidation.NormalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.Is(err, domain.ErrUserNotFound) {
			uc.passwordHasher.Verify(input.Password, uc.dummyHash)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	ok, needsRehash := uc.passwordHasher.Verify(input.Password, user.Password)
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}

	if needsRehash {
		uc.upgradePassword(ctx, user, input.Password)
	}

	issued, err := uc.sessions.Issue(ctx, user.Email)
	if err != nil {
		return nil, err
	}

	return &domain.AuthResult{User: user, Session: issued}, nil
}

// upgradePassword rehashes a legacy password. Failures are logged and the login proceeds.
func (uc *UserUseCase) upgradePassword(ctx context.Context, user *domain.User, password string) {
	hash, err := uc.passwordHasher.Hash(password)
	if err == nil {
		now := time.Now().UTC()
		err = uc.userRepo.UpdatePassword(ctx, user.ID, hash, now)
		if err == nil {
			user.Password = hash
			user.UpdatedAt = now
			return
		}
	}

	if uc.logger != nil {
		uc.logger.Warn("failed to upgrade legacy password hash",
			slog.String("user_id", user.ID.String()),
			slog.Any("error", err),
		)
	}
}

// Logout revokes the session token.
func (uc *UserUseCase) Logout(ctx context.Context, token string) error {
	return uc.sessions.Revoke(ctx, token)
}

// Profile returns the account behind an authenticated identifier.
func (uc *UserUseCase) Profile(ctx context.Context, email string) (*domain.User, error) {
	return uc.userRepo.GetByEmail(ctx, email)
}

// ListOthers returns every account except the caller's.
func (uc *UserUseCase) ListOthers(ctx context.Context, email string, offset, limit int) ([]*domain.User, error) {
	return uc.userRepo.ListExcept(ctx, email, offset, limit)
}
