package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestFieldErrors_RequireString(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "non-empty value", value: "hello", wantErr: false},
		{name: "empty value", value: "", wantErr: true},
		{name: "blank value", value: "   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := newFieldErrors()
			fields.requireString("title", tt.value)

			if tt.wantErr && fields.empty() {
				t.Error("expected a field error, got none")
			}
			if !tt.wantErr && !fields.empty() {
				t.Errorf("unexpected field errors: %v", fields.errors)
			}
		})
	}
}

func TestFieldErrors_Respond(t *testing.T) {
	app := fiber.New()
	app.Post("/test", func(c *fiber.Ctx) error {
		fields := newFieldErrors()
		fields.requireString("email", "")
		fields.requireString("password", "")
		return fields.respond(c)
	})

	req := httptest.NewRequest("POST", "/test", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("status = %v, want %v", resp.StatusCode, http.StatusUnprocessableEntity)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("io.ReadAll() error = %v", err)
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}

	if errResp.Message != "The given data was invalid." {
		t.Errorf("message = %q, want %q", errResp.Message, "The given data was invalid.")
	}
	if len(errResp.Errors["email"]) != 1 {
		t.Errorf("expected 1 email error, got %v", errResp.Errors["email"])
	}
	if len(errResp.Errors["password"]) != 1 {
		t.Errorf("expected 1 password error, got %v", errResp.Errors["password"])
	}
	if got := errResp.Errors["email"][0]; got != "The email field is required." {
		t.Errorf("email error = %q, want %q", got, "The email field is required.")
	}
}

func TestValidationError(t *testing.T) {
	app := fiber.New()
	app.Post("/test", func(c *fiber.Ctx) error {
		return validationError(c, "title", "The title field is required.")
	})

	req := httptest.NewRequest("POST", "/test", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("status = %v, want %v", resp.StatusCode, http.StatusUnprocessableEntity)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("io.ReadAll() error = %v", err)
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if got := errResp.Errors["title"]; len(got) != 1 || got[0] != "The title field is required." {
		t.Errorf("title errors = %v, want single required message", got)
	}
}
