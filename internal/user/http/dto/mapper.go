package dto

import (
	"github.com/codecollab/server/internal/user/domain"
	"github.com/codecollab/server/internal/user/usecase"
)

// ToRegisterUserInput converts a CredentialsRequest DTO to a use case input.
func ToRegisterUserInput(req CredentialsRequest) usecase.RegisterUserInput {
	return usecase.RegisterUserInput{
		Email:    req.Email,
		Password: req.Password,
	}
}

// ToUserResponse converts a domain User model to a UserResponse DTO.
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// ToAuthResponse converts a register or login result to an AuthResponse DTO.
func ToAuthResponse(result *domain.AuthResult) AuthResponse {
	return AuthResponse{
		User:      ToUserResponse(result.User),
		Token:     result.Session.Token,
		ExpiresAt: result.Session.ExpiresAt,
	}
}

// ToListUsersResponse converts a page of users.
func ToListUsersResponse(users []*domain.User) ListUsersResponse {
	items := make([]UserResponse, 0, len(users))
	for _, user := range users {
		items = append(items, ToUserResponse(user))
	}
	return ListUsersResponse{Users: items}
}
