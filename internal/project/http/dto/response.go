package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/codecollab/server/internal/project/domain"
)

// MemberResponse is a project member.
type MemberResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

// ProjectResponse represents a project. Users is omitted in listings.
type ProjectResponse struct {
	ID        uuid.UUID        `json:"id"`
	Name      string           `json:"name"`
	Users     []MemberResponse `json:"users,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// ProjectEnvelope wraps a single project.
type ProjectEnvelope struct {
	Project ProjectResponse `json:"project"`
}

// ListProjectsResponse wraps a page of projects.
type ListProjectsResponse struct {
	Projects []ProjectResponse `json:"projects"`
}

// ToProjectResponse converts a domain project.
func ToProjectResponse(project *domain.Project) ProjectResponse {
	response := ProjectResponse{
		ID:        project.ID,
		Name:      project.Name,
		CreatedAt: project.CreatedAt,
		UpdatedAt: project.UpdatedAt,
	}
	for _, m := range project.Members {
		response.Users = append(response.Users, MemberResponse{ID: m.ID, Email: m.Email})
	}
	return response
}

// ToListProjectsResponse converts a page of projects.
func ToListProjectsResponse(projects []*domain.Project) ListProjectsResponse {
	items := make([]ProjectResponse, 0, len(projects))
	for _, p := range projects {
		items = append(items, ToProjectResponse(p))
	}
	return ListProjectsResponse{Projects: items}
}
