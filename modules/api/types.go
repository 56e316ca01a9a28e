package api

import (
	"time"

	domain "github.com/example/todo-app/domain/user"
)

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the authenticated user and their bearer token.
type LoginResponse struct {
	User  domain.Profile `json:"user"`
	Token string         `json:"token"`
}

// MessageResponse is a simple confirmation payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// TaskRequest is the body for task creation and update.
type TaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// TaskResponse represents a task in API responses.
type TaskResponse struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ErrorResponse represents an error response. Errors carries
// per-field validation messages when the failure is a validation one.
type ErrorResponse struct {
	Error   string              `json:"error"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}
