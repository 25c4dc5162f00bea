// Package http provides HTTP handlers for user-related operations.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/codecollab/server/internal/errors"
	"github.com/codecollab/server/internal/httputil"
	sessionHTTP "github.com/codecollab/server/internal/session/http"
	"github.com/codecollab/server/internal/user/domain"
	"github.com/codecollab/server/internal/user/http/dto"
	"github.com/codecollab/server/internal/user/usecase"
)

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	userUseCase usecase.UseCase
	logger      *slog.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userUseCase usecase.UseCase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
		logger:      logger,
	}
}

// RegisterHandler creates an account and returns it with a session token.
// POST /users/register - Returns 201 Created.
func (h *UserHandler) RegisterHandler(c *gin.Context) {
	var req dto.CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	result, err := h.userUseCase.Register(c.Request.Context(), dto.ToRegisterUserInput(req))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.ToAuthResponse(result))
}

// LoginHandler checks credentials and returns a new session token.
// POST /users/login - Returns 200 OK, or 400 with a generic body on bad credentials.
func (h *UserHandler) LoginHandler(c *gin.Context) {
	var req dto.CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleInvalidCredentialsGin(c, h.logger)
		return
	}

	result, err := h.userUseCase.Login(c.Request.Context(), dto.ToRegisterUserInput(req))
	if err != nil {
		if apperrors.Is(err, domain.ErrInvalidCredentials) {
			httputil.HandleInvalidCredentialsGin(c, h.logger)
			return
		}
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToAuthResponse(result))
}

// ProfileHandler returns the authenticated user.
// GET /users/profile
func (h *UserHandler) ProfileHandler(c *gin.Context) {
	email, ok := sessionHTTP.GetIdentity(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	user, err := h.userUseCase.Profile(c.Request.Context(), email)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ProfileResponse{User: dto.ToUserResponse(user)})
}

// LogoutHandler revokes the token that authenticated the request.
// GET /users/logout
func (h *UserHandler) LogoutHandler(c *gin.Context) {
	token, ok := sessionHTTP.GetToken(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	if err := h.userUseCase.Logout(c.Request.Context(), token); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Logged out successfully"})
}

// ListHandler returns every user except the caller.
// GET /users/all?offset=0&limit=50
func (h *UserHandler) ListHandler(c *gin.Context) {
	email, ok := sessionHTTP.GetIdentity(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	page, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	users, err := h.userUseCase.ListOthers(c.Request.Context(), email, page.Offset, page.Limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToListUsersResponse(users))
}
