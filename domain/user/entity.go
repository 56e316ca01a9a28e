package user

import (
	"time"
)

// User represents a registered account.
type User struct {
	ID           string `gorm:"primaryKey;type:text"`
	Name         string `gorm:"not null;type:text"`
	Email        string `gorm:"uniqueIndex;not null;type:text"`
	PasswordHash string `gorm:"not null;type:text"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName returns the table name for the User entity.
func (User) TableName() string {
	return "users"
}

// SessionToken is a revocable opaque credential bound to one user.
// Tokens carry no expiry; revocation is the only termination path.
type SessionToken struct {
	Token     string `gorm:"primaryKey;type:text"`
	UserID    string `gorm:"index;not null;type:text"`
	IssuedAt  time.Time
	RevokedAt *time.Time `gorm:"index"`
}

// TableName returns the table name for the SessionToken entity.
func (SessionToken) TableName() string {
	return "session_tokens"
}

// Revoked reports whether the token has been revoked.
func (t *SessionToken) Revoked() bool {
	return t.RevokedAt != nil
}

// Profile is the public view of a user, safe to return to clients.
type Profile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// PublicProfile returns the user's public view.
func (u *User) PublicProfile() Profile {
	return Profile{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
