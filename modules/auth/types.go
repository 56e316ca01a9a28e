package auth

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

// RegisterResponse represents a user registration response.
type RegisterResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the authenticated user and their session token.
type LoginResponse struct {
	User  domain.Profile `json:"user"`
	Token string         `json:"token"`
}

// LogoutRequest represents a logout request for a presented token.
type LogoutRequest struct {
	Token string `json:"token"`
}

// LogoutResponse confirms token revocation.
type LogoutResponse struct {
	Revoked bool `json:"revoked"`
}

// ResolveTokenRequest represents a token resolution request.
type ResolveTokenRequest struct {
	Token string `json:"token"`
}

// ResolveTokenResponse represents a token resolution response.
type ResolveTokenResponse struct {
	Valid bool           `json:"valid"`
	User  domain.Profile `json:"user,omitempty"`
	Error string         `json:"error,omitempty"`
}

// CurrentUserRequest represents a current-user lookup.
type CurrentUserRequest struct {
	Token string `json:"token"`
}

// CurrentUserResponse is the public profile of the token's owner.
type CurrentUserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
