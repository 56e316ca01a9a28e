package api

import (
	"strings"

	"github.com/example/todo-app/modules/auth"
	"github.com/gofiber/fiber/v2"
)

const (
	// UserContextKey is the key used to store the resolved user profile
	// in the Fiber context.
	UserContextKey = "user"
	// TokenContextKey is the key used to store the raw bearer token in
	// the Fiber context. Logout needs the presented token itself.
	TokenContextKey = "token"
)

// AuthMiddleware creates a middleware that resolves opaque bearer
// tokens before the underlying handler runs.
func AuthMiddleware(authAdapter auth.AuthPort) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Error:   "unauthorized",
				Message: "Authorization header is required",
			})
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Error:   "unauthorized",
				Message: "Invalid authorization header format. Use: Bearer <token>",
			})
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Error:   "unauthorized",
				Message: "Token is required",
			})
		}

		profile, err := authAdapter.ResolveToken(c.UserContext(), token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Error:   "unauthorized",
				Message: "Invalid or revoked token",
			})
		}

		c.Locals(UserContextKey, profile)
		c.Locals(TokenContextKey, token)

		return c.Next()
	}
}
