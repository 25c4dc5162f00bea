// Package http provides HTTP handlers for project operations.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/codecollab/server/internal/errors"
	"github.com/codecollab/server/internal/httputil"
	"github.com/codecollab/server/internal/project/http/dto"
	"github.com/codecollab/server/internal/project/usecase"
	sessionHTTP "github.com/codecollab/server/internal/session/http"
)

// ProjectHandler handles project HTTP requests. Every route is protected.
type ProjectHandler struct {
	projectUseCase usecase.UseCase
	logger         *slog.Logger
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectUseCase usecase.UseCase, logger *slog.Logger) *ProjectHandler {
	return &ProjectHandler{
		projectUseCase: projectUseCase,
		logger:         logger,
	}
}

func (h *ProjectHandler) identity(c *gin.Context) (string, bool) {
	email, ok := sessionHTTP.GetIdentity(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
	}
	return email, ok
}

// CreateHandler creates a project owned by the caller.
// POST /projects/create - Returns 201 Created.
func (h *ProjectHandler) CreateHandler(c *gin.Context) {
	email, ok := h.identity(c)
	if !ok {
		return
	}

	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	project, err := h.projectUseCase.Create(c.Request.Context(), email, usecase.CreateProjectInput{Name: req.Name})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.ProjectEnvelope{Project: dto.ToProjectResponse(project)})
}

// ListHandler returns the caller's projects.
// GET /projects/all?offset=0&limit=50
func (h *ProjectHandler) ListHandler(c *gin.Context) {
	email, ok := h.identity(c)
	if !ok {
		return
	}

	page, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	projects, err := h.projectUseCase.List(c.Request.Context(), email, page.Offset, page.Limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToListProjectsResponse(projects))
}

// AddUsersHandler adds members to a project the caller belongs to.
// PUT /projects/add-user
func (h *ProjectHandler) AddUsersHandler(c *gin.Context) {
	email, ok := h.identity(c)
	if !ok {
		return
	}

	var req dto.AddUsersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	project, err := h.projectUseCase.AddUsers(c.Request.Context(), email, req.ToAddUsersInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ProjectEnvelope{Project: dto.ToProjectResponse(project)})
}

// GetHandler returns a project with its members.
// GET /projects/get-project/:projectId
func (h *ProjectHandler) GetHandler(c *gin.Context) {
	email, ok := h.identity(c)
	if !ok {
		return
	}

	projectID, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		httputil.HandleBadRequestGin(c, apperrors.New("invalid project id format: must be a valid UUID"), h.logger)
		return
	}

	project, err := h.projectUseCase.Get(c.Request.Context(), email, projectID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ProjectEnvelope{Project: dto.ToProjectResponse(project)})
}
