package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jellydator/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	sessionDomain "github.com/codecollab/server/internal/session/domain"
	sessionHTTP "github.com/codecollab/server/internal/session/http"
	"github.com/codecollab/server/internal/user/domain"
	"github.com/codecollab/server/internal/user/http/dto"
	"github.com/codecollab/server/internal/user/usecase"
	"github.com/codecollab/server/internal/user/usecase/mocks"
	appValidation "github.com/codecollab/server/internal/validation"
)

func setupTestHandler(t *testing.T) (*UserHandler, *mocks.MockUserUseCase) {
	t.Helper()
	mockUseCase := &mocks.MockUserUseCase{}
	t.Cleanup(func() {
		mockUseCase.AssertExpectations(t)
	})
	return NewUserHandler(mockUseCase, slog.New(slog.NewTextHandler(io.Discard, nil))), mockUseCase
}

func createTestContext(method, path string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var bodyReader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		bodyReader = strings.NewReader(b)
	default:
		bodyBytes, _ := json.Marshal(b)
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req := httptest.NewRequest(method, path, bodyReader)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	return c, w
}

func authenticate(c *gin.Context, email, token string) {
	c.Request = c.Request.WithContext(sessionHTTP.WithIdentity(c.Request.Context(), email, token))
}

func testAuthResult() *domain.AuthResult {
	now := time.Now().UTC()
	return &domain.AuthResult{
		User: &domain.User{
			ID:        uuid.Must(uuid.NewV7()),
			Email:     "user@test.io",
			Password:  "$argon2id$hash",
			CreatedAt: now,
			UpdatedAt: now,
		},
		Session: &sessionDomain.IssuedToken{
			Token:      "header.payload.sig",
			Identifier: "user@test.io",
			IssuedAt:   now,
			ExpiresAt:  now.Add(sessionDomain.TokenLifetime),
		},
	}
}

func TestUserHandler_RegisterHandler(t *testing.T) {
	t.Run("Success_Created", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		input := usecase.RegisterUserInput{Email: "user@test.io", Password: "abcdef"}
		mockUseCase.On("Register", mock.Anything, input).Return(testAuthResult(), nil).Once()

		c, w := createTestContext(http.MethodPost, "/users/register", dto.CredentialsRequest{
			Email:    "user@test.io",
			Password: "abcdef",
		})
		handler.RegisterHandler(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		var response dto.AuthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "header.payload.sig", response.Token)
		assert.Equal(t, "user@test.io", response.User.Email)
		assert.NotContains(t, w.Body.String(), "argon2id")
	})

	t.Run("Error_MalformedJSON", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		c, w := createTestContext(http.MethodPost, "/users/register", "{not json")
		handler.RegisterHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Error_ValidationDetails", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		verr := appValidation.WrapValidationError(validation.Errors{
			"email": validation.NewError("validation_email_taken", "email is already registered"),
		})
		mockUseCase.On("Register", mock.Anything, mock.Anything).Return(nil, verr).Once()

		c, w := createTestContext(http.MethodPost, "/users/register", dto.CredentialsRequest{
			Email:    "user@test.io",
			Password: "abcdef",
		})
		handler.RegisterHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "email is already registered")
	})
}

func TestUserHandler_LoginHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		mockUseCase.On("Login", mock.Anything, usecase.LoginInput{Email: "user@test.io", Password: "abcdef"}).
			Return(testAuthResult(), nil).
			Once()

		c, w := createTestContext(http.MethodPost, "/users/login", dto.CredentialsRequest{
			Email:    "user@test.io",
			Password: "abcdef",
		})
		handler.LoginHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"token":"header.payload.sig"`)
	})

	t.Run("Error_InvalidCredentialsGenericBody", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		mockUseCase.On("Login", mock.Anything, mock.Anything).Return(nil, domain.ErrInvalidCredentials).Once()

		c, w := createTestContext(http.MethodPost, "/users/login", dto.CredentialsRequest{
			Email:    "user@test.io",
			Password: "wrong-password",
		})
		handler.LoginHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"invalid_credentials","message":"Invalid Credentials"}`, w.Body.String())
	})

	t.Run("Error_MalformedJSON", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		c, w := createTestContext(http.MethodPost, "/users/login", "[")
		handler.LoginHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid Credentials")
	})

	t.Run("Error_Internal", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		mockUseCase.On("Login", mock.Anything, mock.Anything).Return(nil, errors.New("db down")).Once()

		c, w := createTestContext(http.MethodPost, "/users/login", dto.CredentialsRequest{
			Email:    "user@test.io",
			Password: "abcdef",
		})
		handler.LoginHandler(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "db down")
	})
}

func TestUserHandler_ProfileHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		result := testAuthResult()
		mockUseCase.On("Profile", mock.Anything, "user@test.io").Return(result.User, nil).Once()

		c, w := createTestContext(http.MethodGet, "/users/profile", nil)
		authenticate(c, "user@test.io", "jwt")
		handler.ProfileHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		var response dto.ProfileResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, result.User.ID, response.User.ID)
	})

	t.Run("Error_NoIdentity", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		c, w := createTestContext(http.MethodGet, "/users/profile", nil)
		handler.ProfileHandler(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestUserHandler_LogoutHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		mockUseCase.On("Logout", mock.Anything, "jwt").Return(nil).Once()

		c, w := createTestContext(http.MethodGet, "/users/logout", nil)
		authenticate(c, "user@test.io", "jwt")
		handler.LogoutHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message":"Logged out successfully"}`, w.Body.String())
	})

	t.Run("Error_StoreUnavailable", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		mockUseCase.On("Logout", mock.Anything, "jwt").Return(sessionDomain.ErrStoreUnavailable).Once()

		c, w := createTestContext(http.MethodGet, "/users/logout", nil)
		authenticate(c, "user@test.io", "jwt")
		handler.LogoutHandler(c)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, "5", w.Header().Get("Retry-After"))
	})
}

func TestUserHandler_ListHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		other := &domain.User{ID: uuid.Must(uuid.NewV7()), Email: "other@test.io"}
		mockUseCase.On("ListOthers", mock.Anything, "user@test.io", 10, 5).
			Return([]*domain.User{other}, nil).
			Once()

		c, w := createTestContext(http.MethodGet, "/users/all?offset=10&limit=5", nil)
		authenticate(c, "user@test.io", "jwt")
		handler.ListHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "other@test.io")
	})

	t.Run("Error_InvalidPagination", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		c, w := createTestContext(http.MethodGet, "/users/all?limit=1000", nil)
		authenticate(c, "user@test.io", "jwt")
		handler.ListHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

