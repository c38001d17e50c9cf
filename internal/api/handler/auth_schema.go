package handler

import "github.com/urbanrenew/renewal-platform/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

type signUpRequest struct {
	Email    string `json:"email"     validate:"required,email"`
	Password string `json:"password"  validate:"required"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	IDNumber string `json:"id_number"`
	Role     string `json:"role"      validate:"omitempty,oneof=admin resident developer professional authority"`
}

type signInRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// signInIDRequest mirrors the frontend's login-id contract; the field names
// are camelCase on the wire.
type signInIDRequest struct {
	IDNumber string `json:"idNumber" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type resetPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type updateProfileRequest struct {
	Email    *string `json:"email"     validate:"omitempty,email"`
	FullName *string `json:"full_name"`
	Phone    *string `json:"phone"`
	IDNumber *string `json:"id_number"`
	Role     *string `json:"role"      validate:"omitempty,oneof=admin resident developer professional authority"`
}

type sessionResponse struct {
	SessionID string            `json:"session_id"`
	User      *domain.Principal `json:"user"`
	Message   string            `json:"message,omitempty"`
}

// loginIDResponse is the contract of POST /auth/login-id.
type loginIDResponse struct {
	AccessToken string            `json:"accessToken"`
	SessionID   string            `json:"session_id"`
	User        *domain.Principal `json:"user"`
}

type messageResponse struct {
	Message string `json:"message"`
}
