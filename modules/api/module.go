package api

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/example/todo-app/middleware/ratelimit"
	"github.com/example/todo-app/modules/auth"
	"github.com/go-monolith/mono"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// APIModule is the HTTP gateway binding auth and task services to
// routes and enforcing bearer authentication on protected ones.
type APIModule struct {
	app            *fiber.App
	authContainer  mono.ServiceContainer
	tasksContainer mono.ServiceContainer
	authAdapter    auth.AuthPort
	throttle       *ratelimit.Throttle
	port           string
}

// Compile-time interface checks.
var _ mono.Module = (*APIModule)(nil)
var _ mono.DependentModule = (*APIModule)(nil)
var _ mono.HealthCheckableModule = (*APIModule)(nil)

// NewModule creates a new APIModule.
func NewModule() *APIModule {
	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	return &APIModule{
		port:     port,
		throttle: throttleFromEnv(),
	}
}

// throttleFromEnv builds the auth endpoint throttle from environment
// variables. Rate limiting stays off unless REDIS_ADDR is set.
func throttleFromEnv() *ratelimit.Throttle {
	opts := []ratelimit.Option{
		ratelimit.WithRedisAddr(os.Getenv("REDIS_ADDR")),
		ratelimit.WithRedisPassword(os.Getenv("REDIS_PASSWORD")),
	}
	if v := os.Getenv("AUTH_RATE_LIMIT"); v != "" {
		if attempts, err := strconv.Atoi(v); err == nil && attempts > 0 {
			opts = append(opts, ratelimit.WithAttempts(attempts, time.Minute))
		}
	}
	return ratelimit.New(opts...)
}

// Name returns the module name.
func (m *APIModule) Name() string {
	return "api"
}

// Dependencies returns the list of module dependencies.
func (m *APIModule) Dependencies() []string {
	return []string{"auth", "tasks"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *APIModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "auth":
		m.authContainer = container
		m.authAdapter = auth.NewAuthAdapter(container)
	case "tasks":
		m.tasksContainer = container
	}
}

// Start initializes the Fiber HTTP server.
func (m *APIModule) Start(ctx context.Context) error {
	if m.authContainer == nil {
		return fmt.Errorf("auth dependency not set")
	}
	if m.tasksContainer == nil {
		return fmt.Errorf("tasks dependency not set")
	}

	if m.throttle.Enabled() {
		if err := m.throttle.Connect(ctx); err != nil {
			return err
		}
		log.Println("[api] Auth endpoint rate limiting enabled")
	}

	m.app = fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          customErrorHandler,
	})

	m.app.Use(recover.New())
	m.app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	m.app.Use(cors.New())

	m.setupRoutes()

	go func() {
		if err := m.app.Listen(":" + m.port); err != nil {
			log.Printf("[api] HTTP server error: %v", err)
		}
	}()

	log.Printf("[api] HTTP server started on :%s", m.port)
	return nil
}

// Stop shuts down the Fiber HTTP server.
func (m *APIModule) Stop(_ context.Context) error {
	if m.throttle != nil {
		m.throttle.Close()
	}
	if m.app == nil {
		return nil
	}
	log.Println("[api] Shutting down HTTP server...")
	return m.app.Shutdown()
}

// Health returns the health status of the module.
func (m *APIModule) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: m.app != nil,
		Message: "operational",
		Details: map[string]any{
			"port": m.port,
		},
	}
}

// setupRoutes configures all API routes.
func (m *APIModule) setupRoutes() {
	handlers := NewHandlers(m.authContainer, m.tasksContainer, m.authAdapter)

	m.app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"module": "api",
		})
	})

	// Public routes. Login and registration are throttled per client
	// IP when a Redis address is configured.
	if m.throttle.Enabled() {
		limited := m.throttle.Handler()
		m.app.Post("/register", limited, handlers.Register)
		m.app.Post("/login", limited, handlers.Login)
	} else {
		m.app.Post("/register", handlers.Register)
		m.app.Post("/login", handlers.Login)
	}

	// Protected routes require a valid bearer token. The group is
	// registered after the public routes so the middleware never sees
	// them.
	protected := m.app.Group("", AuthMiddleware(m.authAdapter))
	protected.Post("/logout", handlers.Logout)
	protected.Get("/user", handlers.CurrentUser)
	protected.Get("/tasks", handlers.ListTasks)
	protected.Post("/tasks", handlers.CreateTask)
	protected.Put("/tasks/:id", handlers.UpdateTask)
	protected.Delete("/tasks/:id", handlers.DeleteTask)
	protected.Patch("/tasks/:id/toggle", handlers.ToggleTask)
}

// customErrorHandler handles Fiber errors.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(ErrorResponse{
		Error:   "server_error",
		Message: message,
	})
}
