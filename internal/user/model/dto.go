package model

import (
	"strings"

	"github.com/festy23/team_tasks/pkg/validation"
)

// RegisterRequest represents the request to create an account.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// Normalize trims whitespace and lowercases the email.
func (r *RegisterRequest) Normalize() {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

// Validate checks field constraints.
func (r *RegisterRequest) Validate() error {
	return validation.Struct(r)
}

// LoginRequest represents the credentials exchanged for a token.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Validate checks field constraints.
func (r *LoginRequest) Validate() error {
	return validation.Struct(r)
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
