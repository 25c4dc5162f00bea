package usecase_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/codecollab/server/internal/errors"
	sessionDomain "github.com/codecollab/server/internal/session/domain"
	sessionMocks "github.com/codecollab/server/internal/session/usecase/mocks"
	"github.com/codecollab/server/internal/user/domain"
	"github.com/codecollab/server/internal/user/usecase"
	"github.com/codecollab/server/internal/user/usecase/mocks"
	"github.com/codecollab/server/internal/validation"
)

// fakeHasher prefixes passwords instead of hashing them. Hashes starting with
// "$2a$" are treated as legacy and ask for a rehash.
type fakeHasher struct {
	hashErr error
}

func (f *fakeHasher) Hash(password string) (string, error) {
	if f.hashErr != nil {
		return "", f.hashErr
	}
	return "$argon2id$" + password, nil
}

func (f *fakeHasher) Verify(password, hash string) (bool, bool) {
	if legacy, ok := strings.CutPrefix(hash, "$2a$"); ok {
		return legacy == password, legacy == password
	}
	return hash == "$argon2id$"+password, false
}

func (f *fakeHasher) IsSupported(hash string) bool {
	return strings.HasPrefix(hash, "$2a$") || strings.HasPrefix(hash, "$argon2id$")
}

type fixture struct {
	repo     *mocks.MockUserRepository
	sessions *sessionMocks.MockSessionUseCase
	hasher   *fakeHasher
	uc       *usecase.UserUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		repo:     &mocks.MockUserRepository{},
		sessions: &sessionMocks.MockSessionUseCase{},
		hasher:   &fakeHasher{},
	}
	uc, err := usecase.NewUserUseCase(
		f.repo,
		f.sessions,
		f.hasher,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	require.NoError(t, err)
	f.uc = uc
	return f
}

func (f *fixture) assertExpectations(t *testing.T) {
	f.repo.AssertExpectations(t)
	f.sessions.AssertExpectations(t)
}

func TestUserUseCase_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_NormalizesEmailAndIssuesSession", func(t *testing.T) {
		f := newFixture(t)
		issued := &sessionDomain.IssuedToken{Token: "jwt", Identifier: "user@test.io"}

		f.repo.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Email == "user@test.io" && u.Password == "$argon2id$abcdef" && u.ID != uuid.Nil
		})).Return(nil).Once()
		f.sessions.On("Issue", ctx, "user@test.io").Return(issued, nil).Once()

		result, err := f.uc.Register(ctx, usecase.RegisterUserInput{Email: "  User@Test.IO ", Password: "abcdef"})

		require.NoError(t, err)
		assert.Equal(t, "user@test.io", result.User.Email)
		assert.Equal(t, issued, result.Session)
		assert.False(t, result.User.CreatedAt.IsZero())
		f.assertExpectations(t)
	})

	t.Run("Error_ShortPassword", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.uc.Register(ctx, usecase.RegisterUserInput{Email: "user@test.io", Password: "abc"})

		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
		assert.Contains(t, validation.FieldErrors(err), "password")
		f.assertExpectations(t)
	})

	t.Run("Error_EmailTooLong", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.uc.Register(ctx, usecase.RegisterUserInput{
			Email:    "a-very-long-address@example.com",
			Password: "abcdef",
		})

		require.Error(t, err)
		assert.Contains(t, validation.FieldErrors(err), "email")
	})

	t.Run("Error_InvalidEmail", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.uc.Register(ctx, usecase.RegisterUserInput{Email: "not-an-email", Password: "abcdef"})

		require.Error(t, err)
		assert.Contains(t, validation.FieldErrors(err), "email")
	})

	t.Run("Error_DuplicateEmail", func(t *testing.T) {
		f := newFixture(t)
		f.repo.On("Create", ctx, mock.Anything).Return(domain.ErrUserAlreadyExists).Once()

		_, err := f.uc.Register(ctx, usecase.RegisterUserInput{Email: "user@test.io", Password: "abcdef"})

		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
		assert.Equal(t, "email is already registered", validation.FieldErrors(err)["email"])
		f.assertExpectations(t)
	})

	t.Run("Error_SessionIssueFails", func(t *testing.T) {
		f := newFixture(t)
		f.repo.On("Create", ctx, mock.Anything).Return(nil).Once()
		f.sessions.On("Issue", ctx, "user@test.io").Return(nil, errors.New("boom")).Once()

		_, err := f.uc.Register(ctx, usecase.RegisterUserInput{Email: "user@test.io", Password: "abcdef"})

		require.Error(t, err)
		f.assertExpectations(t)
	})

	t.Run("Error_HashFails", func(t *testing.T) {
		f := newFixture(t)
		f.hasher.hashErr = errors.New("hash failed")

		_, err := f.uc.Register(ctx, usecase.RegisterUserInput{Email: "user@test.io", Password: "abcdef"})

		require.Error(t, err)
		f.assertExpectations(t)
	})
}

func TestUserUseCase_Login(t *testing.T) {
	ctx := context.Background()
	stored := func() *domain.User {
		return &domain.User{ID: uuid.Must(uuid.NewV7()), Email: "user@test.io", Password: "$argon2id$abcdef"}
	}

	t.Run("Success", func(t *testing.T) {
		f := newFixture(t)
		u := stored()
		issued := &sessionDomain.IssuedToken{Token: "jwt", Identifier: u.Email}
		f.repo.On("GetByEmail", ctx, "user@test.io").Return(u, nil).Once()
		f.sessions.On("Issue", ctx, "user@test.io").Return(issued, nil).Once()

		result, err := f.uc.Login(ctx, usecase.LoginInput{Email: "USER@test.io", Password: "abcdef"})

		require.NoError(t, err)
		assert.Equal(t, u, result.User)
		assert.Equal(t, "jwt", result.Session.Token)
		f.assertExpectations(t)
	})

	t.Run("Success_UpgradesLegacyHash", func(t *testing.T) {
		f := newFixture(t)
		u := stored()
		u.Password = "$2a$abcdef"
		f.repo.On("GetByEmail", ctx, "user@test.io").Return(u, nil).Once()
		f.repo.On("UpdatePassword", ctx, u.ID, "$argon2id$abcdef", mock.AnythingOfType("time.Time")).
			Return(nil).
			Once()
		f.sessions.On("Issue", ctx, "user@test.io").
			Return(&sessionDomain.IssuedToken{Token: "jwt"}, nil).
			Once()

		result, err := f.uc.Login(ctx, usecase.LoginInput{Email: "user@test.io", Password: "abcdef"})

		require.NoError(t, err)
		assert.Equal(t, "$argon2id$abcdef", result.User.Password)
		f.assertExpectations(t)
	})

	t.Run("Success_RehashFailureDoesNotBlockLogin", func(t *testing.T) {
		f := newFixture(t)
		u := stored()
		u.Password = "$2a$abcdef"
		f.repo.On("GetByEmail", ctx, "user@test.io").Return(u, nil).Once()
		f.repo.On("UpdatePassword", ctx, u.ID, mock.Anything, mock.Anything).
			Return(errors.New("db down")).
			Once()
		f.sessions.On("Issue", ctx, "user@test.io").
			Return(&sessionDomain.IssuedToken{Token: "jwt"}, nil).
			Once()

		_, err := f.uc.Login(ctx, usecase.LoginInput{Email: "user@test.io", Password: "abcdef"})

		require.NoError(t, err)
		f.assertExpectations(t)
	})

	t.Run("Error_WrongPassword", func(t *testing.T) {
		f := newFixture(t)
		f.repo.On("GetByEmail", ctx, "user@test.io").Return(stored(), nil).Once()

		_, err := f.uc.Login(ctx, usecase.LoginInput{Email: "user@test.io", Password: "wrong-password"})

		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		f.assertExpectations(t)
	})

	t.Run("Error_UnknownEmail", func(t *testing.T) {
		f := newFixture(t)
		f.repo.On("GetByEmail", ctx, "ghost@test.io").Return(nil, domain.ErrUserNotFound).Once()

		_, err := f.uc.Login(ctx, usecase.LoginInput{Email: "ghost@test.io", Password: "abcdef"})

		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		f.assertExpectations(t)
	})

	t.Run("Error_MissingFields", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.uc.Login(ctx, usecase.LoginInput{Email: "user@test.io"})

		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		f.assertExpectations(t)
	})

	t.Run("Error_RepositoryFailure", func(t *testing.T) {
		f := newFixture(t)
		f.repo.On("GetByEmail", ctx, "user@test.io").Return(nil, errors.New("db down")).Once()

		_, err := f.uc.Login(ctx, usecase.LoginInput{Email: "user@test.io", Password: "abcdef"})

		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}

func TestUserUseCase_Logout(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newFixture(t)
		f.sessions.On("Revoke", ctx, "jwt").Return(nil).Once()

		require.NoError(t, f.uc.Logout(ctx, "jwt"))
		f.assertExpectations(t)
	})

	t.Run("Error_StoreUnavailable", func(t *testing.T) {
		f := newFixture(t)
		f.sessions.On("Revoke", ctx, "jwt").Return(sessionDomain.ErrStoreUnavailable).Once()

		err := f.uc.Logout(ctx, "jwt")

		assert.ErrorIs(t, err, apperrors.ErrUnavailable)
		f.assertExpectations(t)
	})
}

func TestUserUseCase_ProfileAndListOthers(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := &domain.User{ID: uuid.Must(uuid.NewV7()), Email: "user@test.io"}
	others := []*domain.User{{ID: uuid.Must(uuid.NewV7()), Email: "other@test.io"}}

	f.repo.On("GetByEmail", ctx, "user@test.io").Return(u, nil).Once()
	f.repo.On("ListExcept", ctx, "user@test.io", 0, 50).Return(others, nil).Once()

	profile, err := f.uc.Profile(ctx, "user@test.io")
	require.NoError(t, err)
	assert.Equal(t, u, profile)

	list, err := f.uc.ListOthers(ctx, "user@test.io", 0, 50)
	require.NoError(t, err)
	assert.Equal(t, others, list)
	f.assertExpectations(t)
}

func TestUserUseCase_ImportUser(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_KeepsLegacyHash", func(t *testing.T) {
		f := newFixture(t)
		f.repo.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Email == "legacy@test.io" && u.Password == "$2a$secret"
		})).Return(nil).Once()

		u, err := f.uc.ImportUser(ctx, usecase.ImportUserInput{Email: "Legacy@test.io", PasswordHash: "$2a$secret"})

		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().UTC(), u.CreatedAt, time.Minute)
		f.assertExpectations(t)
	})

	t.Run("Error_UnsupportedHash", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.uc.ImportUser(ctx, usecase.ImportUserInput{Email: "legacy@test.io", PasswordHash: "plaintext"})

		assert.ErrorIs(t, err, domain.ErrUnsupportedPasswordHash)
		f.assertExpectations(t)
	})

	t.Run("Error_MissingHash", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.uc.ImportUser(ctx, usecase.ImportUserInput{Email: "legacy@test.io"})

		require.Error(t, err)
		assert.Contains(t, validation.FieldErrors(err), "password")
	})

	t.Run("Error_AlreadyExists", func(t *testing.T) {
		f := newFixture(t)
		f.repo.On("Create", ctx, mock.Anything).Return(domain.ErrUserAlreadyExists).Once()

		_, err := f.uc.ImportUser(ctx, usecase.ImportUserInput{Email: "legacy@test.io", PasswordHash: "$2a$secret"})

		assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)
		f.assertExpectations(t)
	})
}
