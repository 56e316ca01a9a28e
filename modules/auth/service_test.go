package auth

import (
	"context"
	"errors"
	"strings"
	"testing"

	domain "github.com/example/todo-app/domain/user"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&domain.User{}, &domain.SessionToken{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func newTestService(t *testing.T) *AuthService {
	t.Helper()

	db := setupTestDB(t)
	issuer, err := NewTokenIssuer()
	if err != nil {
		t.Fatalf("NewTokenIssuer() error = %v", err)
	}
	return NewAuthService(
		NewUserRepository(db),
		NewTokenRepository(db),
		NewPasswordHasher(),
		issuer,
	)
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name         string
		userName     string
		email        string
		password     string
		confirmation string
		wantErr      error
	}{
		{
			name:         "valid registration",
			userName:     "Alice",
			email:        "alice@example.com",
			password:     "secret123",
			confirmation: "secret123",
			wantErr:      nil,
		},
		{
			name:         "invalid email",
			userName:     "Bob",
			email:        "not-an-email",
			password:     "secret123",
			confirmation: "secret123",
			wantErr:      ErrInvalidEmail,
		},
		{
			name:         "password too short",
			userName:     "Bob",
			email:        "bob@example.com",
			password:     "12345",
			confirmation: "12345",
			wantErr:      ErrWeakPassword,
		},
		{
			name:         "password exactly at minimum",
			userName:     "Bob",
			email:        "bob@example.com",
			password:     "123456",
			confirmation: "123456",
			wantErr:      nil,
		},
		{
			name:         "confirmation mismatch",
			userName:     "Bob",
			email:        "bob2@example.com",
			password:     "secret123",
			confirmation: "secret124",
			wantErr:      ErrPasswordMismatch,
		},
		{
			name:         "missing name",
			userName:     "",
			email:        "noname@example.com",
			password:     "secret123",
			confirmation: "secret123",
			wantErr:      ErrNameRequired,
		},
		{
			name:         "blank name",
			userName:     "   ",
			email:        "blank@example.com",
			password:     "secret123",
			confirmation: "secret123",
			wantErr:      ErrNameRequired,
		},
		{
			name:         "name too long",
			userName:     strings.Repeat("a", 256),
			email:        "long@example.com",
			password:     "secret123",
			confirmation: "secret123",
			wantErr:      ErrNameTooLong,
		},
		{
			// 255 characters is within bounds even when each character
			// is several bytes long.
			name:         "multibyte name at the limit",
			userName:     strings.Repeat("名", 255),
			email:        "multibyte@example.com",
			password:     "secret123",
			confirmation: "secret123",
			wantErr:      nil,
		},
		{
			name:         "multibyte password below minimum",
			userName:     "Bob",
			email:        "shortpw@example.com",
			password:     "密码测试五",
			confirmation: "密码测试五",
			wantErr:      ErrWeakPassword,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t)

			user, err := svc.Register(context.Background(), tt.userName, tt.email, tt.password, tt.confirmation)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Register() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Register() error = %v", err)
			}

			if user.ID == "" {
				t.Error("Register() returned user without ID")
			}
			if user.PasswordHash == tt.password {
				t.Error("password stored in plaintext")
			}
		})
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "Alice", "alice@example.com", "secret123", "secret123"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	_, err := svc.Register(ctx, "Alice Again", "alice@example.com", "secret456", "secret456")
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("Register() error = %v, want %v", err, ErrEmailTaken)
	}
}

func TestAuthService_Login(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "Alice", "alice@example.com", "secret123", "secret123"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	t.Run("valid credentials", func(t *testing.T) {
		user, token, err := svc.Login(ctx, "alice@example.com", "secret123")
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		if user.Email != "alice@example.com" {
			t.Errorf("user.Email = %q, want %q", user.Email, "alice@example.com")
		}
		if len(token) != TokenLength {
			t.Errorf("token length = %d, want %d", len(token), TokenLength)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "alice@example.com", "wrongpassword")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Login() error = %v, want %v", err, ErrInvalidCredentials)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "nobody@example.com", "secret123")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Login() error = %v, want %v", err, ErrInvalidCredentials)
		}
	})

	// Unknown email and wrong password must not be distinguishable.
	t.Run("failure errors are identical", func(t *testing.T) {
		_, _, errWrongPass := svc.Login(ctx, "alice@example.com", "wrongpassword")
		_, _, errUnknown := svc.Login(ctx, "nobody@example.com", "secret123")
		if errWrongPass == nil || errUnknown == nil {
			t.Fatal("expected both logins to fail")
		}
		if errWrongPass.Error() != errUnknown.Error() {
			t.Errorf("error messages differ: %q vs %q", errWrongPass, errUnknown)
		}
	})

	t.Run("each login issues a distinct token", func(t *testing.T) {
		_, token1, err := svc.Login(ctx, "alice@example.com", "secret123")
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		_, token2, err := svc.Login(ctx, "alice@example.com", "secret123")
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		if token1 == token2 {
			t.Error("two logins issued the same token")
		}
	})
}

func TestAuthService_ResolveToken(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "Alice", "alice@example.com", "secret123", "secret123"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	registered, token, err := svc.Login(ctx, "alice@example.com", "secret123")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	t.Run("valid token", func(t *testing.T) {
		user, err := svc.ResolveToken(ctx, token)
		if err != nil {
			t.Fatalf("ResolveToken() error = %v", err)
		}
		if user.ID != registered.ID {
			t.Errorf("user.ID = %q, want %q", user.ID, registered.ID)
		}
	})

	t.Run("unknown token", func(t *testing.T) {
		_, err := svc.ResolveToken(ctx, "no-such-token")
		if !errors.Is(err, ErrTokenNotFound) {
			t.Errorf("ResolveToken() error = %v, want %v", err, ErrTokenNotFound)
		}
	})
}

func TestAuthService_Logout(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "Alice", "alice@example.com", "secret123", "secret123"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	_, token, err := svc.Login(ctx, "alice@example.com", "secret123")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if err := svc.Logout(ctx, token); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}

	t.Run("revoked token no longer resolves", func(t *testing.T) {
		_, err := svc.ResolveToken(ctx, token)
		if !errors.Is(err, ErrTokenNotFound) {
			t.Errorf("ResolveToken() error = %v, want %v", err, ErrTokenNotFound)
		}
	})

	t.Run("second logout fails", func(t *testing.T) {
		err := svc.Logout(ctx, token)
		if !errors.Is(err, ErrTokenNotFound) {
			t.Errorf("Logout() error = %v, want %v", err, ErrTokenNotFound)
		}
	})

	t.Run("other sessions stay valid", func(t *testing.T) {
		_, token2, err := svc.Login(ctx, "alice@example.com", "secret123")
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		if err := svc.Logout(ctx, token2); err != nil {
			t.Fatalf("Logout() error = %v", err)
		}

		_, token3, err := svc.Login(ctx, "alice@example.com", "secret123")
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		if _, err := svc.ResolveToken(ctx, token3); err != nil {
			t.Errorf("ResolveToken() error = %v", err)
		}
	})
}

func TestAuthService_CurrentUser(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "Alice", "alice@example.com", "secret123", "secret123"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	_, token, err := svc.Login(ctx, "alice@example.com", "secret123")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	profile, err := svc.CurrentUser(ctx, token)
	if err != nil {
		t.Fatalf("CurrentUser() error = %v", err)
	}
	if profile.Name != "Alice" {
		t.Errorf("profile.Name = %q, want %q", profile.Name, "Alice")
	}
	if profile.Email != "alice@example.com" {
		t.Errorf("profile.Email = %q, want %q", profile.Email, "alice@example.com")
	}
}
