package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	domain "github.com/example/todo-app/domain/user"
	"github.com/google/uuid"
)

// MinPasswordLength matches the registration rule of the original API.
const MinPasswordLength = 6

// MaxNameLength is the upper bound on account names.
const MaxNameLength = 255

var (
	// ErrInvalidCredentials is returned when login fails. Unknown email
	// and wrong password yield the same error to avoid user enumeration.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidEmail is returned when the email format is invalid.
	ErrInvalidEmail = errors.New("invalid email format")
	// ErrWeakPassword is returned when the password is too short.
	ErrWeakPassword = errors.New("password must be at least 6 characters")
	// ErrPasswordMismatch is returned when the confirmation does not match.
	ErrPasswordMismatch = errors.New("password confirmation does not match")
	// ErrNameRequired is returned when the name is missing or blank.
	ErrNameRequired = errors.New("name is required")
	// ErrNameTooLong is returned when the name exceeds the length bound.
	ErrNameTooLong = errors.New("name must be at most 255 characters")
)

// AuthService handles registration, login and session token lifecycle.
type AuthService struct {
	users  *UserRepository
	tokens *TokenRepository
	hasher *PasswordHasher
	issuer *TokenIssuer
}

// NewAuthService creates a new AuthService.
func NewAuthService(users *UserRepository, tokens *TokenRepository, hasher *PasswordHasher, issuer *TokenIssuer) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		hasher: hasher,
		issuer: issuer,
	}
}

// Register creates a new user account. No session is issued; the
// caller must log in separately.
func (s *AuthService) Register(_ context.Context, name, email, password, confirmation string) (*domain.User, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrNameRequired
	}
	// Lengths count characters, not bytes, so multibyte names are
	// measured the way users see them.
	if utf8.RuneCountInString(name) > MaxNameLength {
		return nil, ErrNameTooLong
	}

	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}

	if utf8.RuneCountInString(password) < MinPasswordLength {
		return nil, ErrWeakPassword
	}
	if password != confirmation {
		return nil, ErrPasswordMismatch
	}

	exists, err := s.users.EmailExists(email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, ErrEmailTaken
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(user); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login authenticates a user and issues a fresh opaque session token.
func (s *AuthService) Login(_ context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to find user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token := &domain.SessionToken{
		Token:    s.issuer.Issue(),
		UserID:   user.ID,
		IssuedAt: time.Now(),
	}
	if err := s.tokens.Create(token); err != nil {
		return nil, "", fmt.Errorf("failed to store token: %w", err)
	}

	return user, token.Token, nil
}

// Logout revokes exactly the presented token. A second logout with the
// same token fails because the token no longer resolves.
func (s *AuthService) Logout(_ context.Context, token string) error {
	return s.tokens.Revoke(token)
}

// ResolveToken maps an opaque token to its owning user. Revoked and
// unknown tokens fail identically.
func (s *AuthService) ResolveToken(_ context.Context, token string) (*domain.User, error) {
	st, err := s.tokens.FindActive(token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(st.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load token owner: %w", err)
	}
	return user, nil
}

// CurrentUser returns the public profile of the token's owner.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (domain.Profile, error) {
	user, err := s.ResolveToken(ctx, token)
	if err != nil {
		return domain.Profile{}, err
	}
	return user.PublicProfile(), nil
}
