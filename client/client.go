package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

const requestTimeout = 10 * time.Second

// Client talks to the todo API over HTTP, attaching the stored bearer
// token to every request.
type Client struct {
	baseURL string
	store   TokenStore
	http    *http.Client
}

// New creates a Client for the given server URL.
func New(baseURL string, store TokenStore) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		store:   store,
		http:    &http.Client{Timeout: requestTimeout},
	}
}

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
	Errors     map[string][]string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return http.StatusText(e.StatusCode)
}

// IsUnauthorized reports whether err is a 401 response.
func IsUnauthorized(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.StatusCode == http.StatusUnauthorized
}

type registerPayload struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResult struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type taskPayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Register creates a new account. No session is established; call
// Login afterwards.
func (c *Client) Register(ctx context.Context, name, email, password, confirmation string) error {
	payload := registerPayload{
		Name:                 name,
		Email:                email,
		Password:             password,
		PasswordConfirmation: confirmation,
	}
	return c.do(ctx, http.MethodPost, "/register", payload, nil)
}

// Login authenticates and persists the returned session token.
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	var res loginResult
	if err := c.do(ctx, http.MethodPost, "/login", loginPayload{Email: email, Password: password}, &res); err != nil {
		return nil, err
	}
	if err := c.store.Save(res.Token); err != nil {
		return nil, fmt.Errorf("failed to save session token: %w", err)
	}
	return &res.User, nil
}

// Logout revokes the current session token and clears it locally.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, "/logout", nil, nil); err != nil {
		return err
	}
	return c.store.Clear()
}

// CurrentUser fetches the authenticated user's profile.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/user", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListTasks fetches the full task list.
func (c *Client) ListTasks(ctx context.Context) ([]Task, error) {
	var tasks []Task
	if err := c.do(ctx, http.MethodGet, "/tasks", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CreateTask creates a task and returns the server copy.
func (c *Client) CreateTask(ctx context.Context, title, description string) (*Task, error) {
	var task Task
	if err := c.do(ctx, http.MethodPost, "/tasks", taskPayload{Title: title, Description: description}, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTask overwrites a task's title and description.
func (c *Client) UpdateTask(ctx context.Context, id uint, title, description string) (*Task, error) {
	var task Task
	path := fmt.Sprintf("/tasks/%d", id)
	if err := c.do(ctx, http.MethodPut, path, taskPayload{Title: title, Description: description}, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteTask removes a task.
func (c *Client) DeleteTask(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/tasks/%d", id), nil, nil)
}

// ToggleTask flips a task's completed flag and returns the server copy.
func (c *Client) ToggleTask(ctx context.Context, id uint) (*Task, error) {
	var task Task
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/tasks/%d/toggle", id), nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// do performs one request. Any 401 clears the stored token, since the
// session it came from is no longer usable.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	token, err := c.store.Load()
	if err != nil {
		return fmt.Errorf("failed to load session token: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		if clearErr := c.store.Clear(); clearErr != nil {
			log.Printf("[client] Failed to clear stored token: %v", clearErr)
		}
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return parseAPIError(resp.StatusCode, data)
	}

	if out != nil && len(data) > 0 {
		return json.Unmarshal(data, out)
	}
	return nil
}

func parseAPIError(status int, data []byte) error {
	apiErr := &APIError{StatusCode: status}

	var body struct {
		Message string              `json:"message"`
		Errors  map[string][]string `json:"errors"`
	}
	if err := json.Unmarshal(data, &body); err == nil {
		apiErr.Message = body.Message
		apiErr.Errors = body.Errors
	}
	return apiErr
}
