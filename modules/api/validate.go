package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// fieldErrors accumulates per-field validation messages in the order
// fields are checked.
type fieldErrors struct {
	errors map[string][]string
}

func newFieldErrors() *fieldErrors {
	return &fieldErrors{errors: make(map[string][]string)}
}

func (f *fieldErrors) add(field, message string) {
	f.errors[field] = append(f.errors[field], message)
}

// requireString adds a required-field error when the value is empty or
// blank.
func (f *fieldErrors) requireString(field, value string) {
	if strings.TrimSpace(value) == "" {
		f.add(field, "The "+field+" field is required.")
	}
}

func (f *fieldErrors) empty() bool {
	return len(f.errors) == 0
}

// respond writes a 422 validation error response.
func (f *fieldErrors) respond(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse{
		Error:   "validation_error",
		Message: "The given data was invalid.",
		Errors:  f.errors,
	})
}

// validationError writes a 422 response with a single field message.
func validationError(c *fiber.Ctx, field, message string) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse{
		Error:   "validation_error",
		Message: message,
		Errors:  map[string][]string{field: {message}},
	})
}
