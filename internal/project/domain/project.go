// Package domain defines projects and their membership.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/codecollab/server/internal/errors"
)

// Project is a named workspace shared by its members. Name is stored trimmed and lowercased.
type Project struct {
	ID        uuid.UUID
	Name      string
	Members   []Member
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Member is the public view of a user that belongs to a project.
type Member struct {
	ID    uuid.UUID
	Email string
}

// HasMember reports whether userID is among the loaded members.
func (p *Project) HasMember(userID uuid.UUID) bool {
	for _, m := range p.Members {
		if m.ID == userID {
			return true
		}
	}
	return false
}

var (
	// ErrProjectNotFound indicates the project does not exist.
	ErrProjectNotFound = errors.Wrap(errors.ErrNotFound, "project not found")

	// ErrProjectAlreadyExists indicates another project already uses the name.
	ErrProjectAlreadyExists = errors.Wrap(errors.ErrConflict, "project already exists")

	// ErrNotProjectMember is returned when the caller does not belong to the project.
	ErrNotProjectMember = errors.Wrap(errors.ErrForbidden, "not a project member")

	// ErrMemberNotFound indicates one of the users to add does not exist.
	ErrMemberNotFound = errors.Wrap(errors.ErrNotFound, "user not found")
)
