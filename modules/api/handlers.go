package api

import (
	"encoding/json"
	"log"
	"strings"

	domain "github.com/example/todo-app/domain/user"
	"github.com/example/todo-app/modules/auth"
	"github.com/example/todo-app/modules/tasks"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/gofiber/fiber/v2"
)

// Handlers contains HTTP handlers for the API.
type Handlers struct {
	authContainer  mono.ServiceContainer
	tasksContainer mono.ServiceContainer
	authAdapter    auth.AuthPort
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(authContainer, tasksContainer mono.ServiceContainer, authAdapter auth.AuthPort) *Handlers {
	return &Handlers{
		authContainer:  authContainer,
		tasksContainer: tasksContainer,
		authAdapter:    authAdapter,
	}
}

// Register handles user registration. No session is issued; the caller
// logs in separately.
func (h *Handlers) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	fields := newFieldErrors()
	fields.requireString("name", req.Name)
	fields.requireString("email", req.Email)
	fields.requireString("password", req.Password)
	fields.requireString("password_confirmation", req.PasswordConfirmation)
	if !fields.empty() {
		return fields.respond(c)
	}

	authReq := auth.RegisterRequest{
		Name:                 req.Name,
		Email:                req.Email,
		Password:             req.Password,
		PasswordConfirmation: req.PasswordConfirmation,
	}
	var resp auth.RegisterResponse

	if err := helper.CallRequestReplyService(
		c.UserContext(),
		h.authContainer,
		"register",
		json.Marshal,
		json.Unmarshal,
		&authReq,
		&resp,
	); err != nil {
		return h.handleAuthError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(MessageResponse{
		Message: "User registered successfully",
	})
}

// Login handles user login and issues a fresh session token.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	fields := newFieldErrors()
	fields.requireString("email", req.Email)
	fields.requireString("password", req.Password)
	if !fields.empty() {
		return fields.respond(c)
	}

	authReq := auth.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
	}
	var resp auth.LoginResponse

	if err := helper.CallRequestReplyService(
		c.UserContext(),
		h.authContainer,
		"login",
		json.Marshal,
		json.Unmarshal,
		&authReq,
		&resp,
	); err != nil {
		return h.handleAuthError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(LoginResponse{
		User:  resp.User,
		Token: resp.Token,
	})
}

// Logout revokes the presented token. The token was already resolved
// by the middleware, so failures here mean it raced with another
// logout.
func (h *Handlers) Logout(c *fiber.Ctx) error {
	token, ok := c.Locals(TokenContextKey).(string)
	if !ok || token == "" {
		return unauthorized(c, "User not authenticated")
	}

	if err := h.authAdapter.Logout(c.UserContext(), token); err != nil {
		return h.handleAuthError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(MessageResponse{
		Message: "Logged out successfully",
	})
}

// CurrentUser returns the authenticated user's public profile.
func (h *Handlers) CurrentUser(c *fiber.Ctx) error {
	profile, ok := c.Locals(UserContextKey).(*domain.Profile)
	if !ok {
		return unauthorized(c, "User not authenticated")
	}
	return c.Status(fiber.StatusOK).JSON(profile)
}

// ListTasks returns every task as a bare JSON array.
func (h *Handlers) ListTasks(c *fiber.Ctx) error {
	var resp tasks.ListTasksResponse
	if err := helper.CallRequestReplyService(
		c.UserContext(),
		h.tasksContainer,
		"list",
		json.Marshal,
		json.Unmarshal,
		&tasks.ListTasksRequest{},
		&resp,
	); err != nil {
		return h.handleTaskError(c, err)
	}

	list := make([]TaskResponse, 0, len(resp.Tasks))
	for _, t := range resp.Tasks {
		list = append(list, TaskResponse(t))
	}
	return c.Status(fiber.StatusOK).JSON(list)
}

// CreateTask creates a new task.
func (h *Handlers) CreateTask(c *fiber.Ctx) error {
	var req TaskRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	var resp tasks.TaskResponse
	if err := helper.CallRequestReplyService(
		c.UserContext(),
		h.tasksContainer,
		"create",
		json.Marshal,
		json.Unmarshal,
		&tasks.CreateTaskRequest{Title: req.Title, Description: req.Description},
		&resp,
	); err != nil {
		return h.handleTaskError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(TaskResponse(resp))
}

// UpdateTask overwrites title and description of an existing task.
func (h *Handlers) UpdateTask(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return notFound(c, "Task not found")
	}

	var req TaskRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	var resp tasks.TaskResponse
	if err := helper.CallRequestReplyService(
		c.UserContext(),
		h.tasksContainer,
		"update",
		json.Marshal,
		json.Unmarshal,
		&tasks.UpdateTaskRequest{ID: uint(id), Title: req.Title, Description: req.Description},
		&resp,
	); err != nil {
		return h.handleTaskError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(TaskResponse(resp))
}

// DeleteTask removes a task.
func (h *Handlers) DeleteTask(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return notFound(c, "Task not found")
	}

	var resp tasks.DeleteTaskResponse
	if err := helper.CallRequestReplyService(
		c.UserContext(),
		h.tasksContainer,
		"delete",
		json.Marshal,
		json.Unmarshal,
		&tasks.DeleteTaskRequest{ID: uint(id)},
		&resp,
	); err != nil {
		return h.handleTaskError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(MessageResponse{
		Message: "Task deleted successfully",
	})
}

// ToggleTask flips a task's completed flag.
func (h *Handlers) ToggleTask(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return notFound(c, "Task not found")
	}

	var resp tasks.TaskResponse
	if err := helper.CallRequestReplyService(
		c.UserContext(),
		h.tasksContainer,
		"toggle",
		json.Marshal,
		json.Unmarshal,
		&tasks.ToggleTaskRequest{ID: uint(id)},
		&resp,
	); err != nil {
		return h.handleTaskError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(TaskResponse(resp))
}

// handleAuthError maps auth service errors to HTTP responses by
// matching known error messages, without exposing internals.
func (h *Handlers) handleAuthError(c *fiber.Ctx, err error) error {
	errStr := err.Error()

	switch {
	case strings.Contains(errStr, "invalid credentials"):
		return unauthorized(c, "Invalid credentials")
	case strings.Contains(errStr, "email already registered"):
		return validationError(c, "email", "The email has already been taken.")
	case strings.Contains(errStr, "invalid email format"):
		return validationError(c, "email", "The email must be a valid email address.")
	case strings.Contains(errStr, "password must be at least"):
		return validationError(c, "password", "The password must be at least 6 characters.")
	case strings.Contains(errStr, "password confirmation does not match"):
		return validationError(c, "password", "The password confirmation does not match.")
	case strings.Contains(errStr, "name is required"):
		return validationError(c, "name", "The name field is required.")
	case strings.Contains(errStr, "name must be at most"):
		return validationError(c, "name", "The name may not be greater than 255 characters.")
	case strings.Contains(errStr, "token not found"):
		return unauthorized(c, "Invalid or revoked token")
	default:
		log.Printf("[api] Internal error: %v", err)
		return internalError(c)
	}
}

// handleTaskError maps task service errors to HTTP responses.
func (h *Handlers) handleTaskError(c *fiber.Ctx, err error) error {
	errStr := err.Error()

	switch {
	case strings.Contains(errStr, "task not found"):
		return notFound(c, "Task not found")
	case strings.Contains(errStr, "title is required"):
		return validationError(c, "title", "The title field is required.")
	case strings.Contains(errStr, "title must be at most"):
		return validationError(c, "title", "The title may not be greater than 255 characters.")
	default:
		log.Printf("[api] Internal error: %v", err)
		return internalError(c)
	}
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error:   "bad_request",
		Message: message,
	})
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
		Error:   "unauthorized",
		Message: message,
	})
}

func notFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
		Error:   "not_found",
		Message: message,
	})
}

func internalError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error:   "internal_error",
		Message: "An internal error occurred",
	})
}
