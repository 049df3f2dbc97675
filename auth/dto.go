// Package auth, as part of the authentication module.
// This file defines the request and response payloads for registration and
// login. Validation rules live on the `validate` tags; the per-field messages
// are supplied by the handlers.
package auth

// RegisterRequest represents the registration request payload.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required" example:"Alice"`
	Email    string `json:"email" validate:"required,email" example:"alice@example.com"`
	Password string `json:"password" validate:"required,min=6" example:"strongpassword123"`
}

// LoginRequest represents the login request payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" example:"alice@example.com"`
	Password string `json:"password" validate:"required" example:"strongpassword123"`
}

// TokenResponse carries the signed token returned on registration and login.
type TokenResponse struct {
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}
