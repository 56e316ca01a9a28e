package auth

import (
	"errors"
	"testing"
	"time"

	domain "github.com/example/todo-app/domain/user"
	"github.com/google/uuid"
)

func newTestUser(email string) *domain.User {
	now := time.Now()
	return &domain.User{
		ID:           uuid.New().String(),
		Name:         "Test User",
		Email:        email,
		PasswordHash: "not-a-real-hash",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestUserRepository_Create(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	user := newTestUser("alice@example.com")
	if err := repo.Create(user); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	found, err := repo.FindByEmail("alice@example.com")
	if err != nil {
		t.Fatalf("FindByEmail() error = %v", err)
	}
	if found.ID != user.ID {
		t.Errorf("found.ID = %q, want %q", found.ID, user.ID)
	}
}

func TestUserRepository_CreateDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	if err := repo.Create(newTestUser("dup@example.com")); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// The unique index rejects a second insert even without the
	// service-level existence check.
	err := repo.Create(newTestUser("dup@example.com"))
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("Create() error = %v, want %v", err, ErrEmailTaken)
	}
}

func TestUserRepository_FindByEmail_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	_, err := repo.FindByEmail("nobody@example.com")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("FindByEmail() error = %v, want %v", err, ErrUserNotFound)
	}
}

func TestUserRepository_EmailExists(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	if err := repo.Create(newTestUser("alice@example.com")); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	exists, err := repo.EmailExists("alice@example.com")
	if err != nil {
		t.Fatalf("EmailExists() error = %v", err)
	}
	if !exists {
		t.Error("EmailExists() = false, want true")
	}

	exists, err = repo.EmailExists("nobody@example.com")
	if err != nil {
		t.Fatalf("EmailExists() error = %v", err)
	}
	if exists {
		t.Error("EmailExists() = true, want false")
	}
}
