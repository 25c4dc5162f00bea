// Package dto provides data transfer objects for the user HTTP layer.
package dto

// CredentialsRequest is the body of POST /users/register and POST /users/login.
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
