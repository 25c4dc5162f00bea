// Package dto provides data transfer objects for the project HTTP layer.
package dto

import (
	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	"github.com/codecollab/server/internal/project/usecase"
	appValidation "github.com/codecollab/server/internal/validation"
)

// CreateProjectRequest is the body of POST /projects/create.
type CreateProjectRequest struct {
	Name string `json:"name"`
}

// AddUsersRequest is the body of PUT /projects/add-user.
type AddUsersRequest struct {
	ProjectID string   `json:"projectId"`
	Users     []string `json:"users"`
}

var isUUID = validation.By(func(value interface{}) error {
	s, _ := value.(string)
	if _, err := uuid.Parse(s); err != nil {
		return validation.NewError("validation_uuid", "must be a valid UUID")
	}
	return nil
})

// Validate checks the identifiers before they reach the use case.
func (r *AddUsersRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.ProjectID, validation.Required.Error("project id is required"), isUUID),
		validation.Field(&r.Users,
			validation.Required.Error("users must contain at least one user id"),
			validation.Each(validation.Required, isUUID),
		),
	)
	return appValidation.WrapValidationError(err)
}

// ToAddUsersInput converts a validated request to a use case input.
func (r *AddUsersRequest) ToAddUsersInput() usecase.AddUsersInput {
	input := usecase.AddUsersInput{
		ProjectID: uuid.MustParse(r.ProjectID),
		UserIDs:   make([]uuid.UUID, 0, len(r.Users)),
	}
	for _, id := range r.Users {
		input.UserIDs = append(input.UserIDs, uuid.MustParse(id))
	}
	return input
}
