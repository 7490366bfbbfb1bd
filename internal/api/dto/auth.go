package dto

import (
	ierr "github.com/pulseboard/pulseboard/internal/errors"
	"github.com/pulseboard/pulseboard/internal/validator"
)

// SignupRequest registers a new account
type SignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Validate validates the signup request
func (r *SignupRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if len(r.Password) < 6 {
		return ierr.NewError("password must be at least 6 characters").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// LoginRequest authenticates an existing account
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Validate validates the login request
func (r *LoginRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// AuthResponse carries the access token and the authenticated user
type AuthResponse struct {
	Token string       `json:"token"`
	User  *UserResponse `json:"user"`
}
