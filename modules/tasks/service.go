package tasks

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	domain "github.com/example/todo-app/domain/task"
)

var (
	// ErrTitleRequired is returned when the title is missing or blank.
	ErrTitleRequired = errors.New("title is required")
	// ErrTitleTooLong is returned when the title exceeds the length bound.
	ErrTitleTooLong = errors.New("title must be at most 255 characters")
)

// TaskService performs CRUD and completion-toggle on the shared task
// list. Callers are expected to have been authenticated already; the
// service itself is ownership-agnostic.
type TaskService struct {
	repo *Repository
}

// NewTaskService creates a new TaskService.
func NewTaskService(repo *Repository) *TaskService {
	return &TaskService{repo: repo}
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrTitleRequired
	}
	// The bound counts characters, not bytes, so multibyte titles are
	// measured the way users see them.
	if utf8.RuneCountInString(title) > domain.MaxTitleLength {
		return ErrTitleTooLong
	}
	return nil
}

// List returns all tasks in insertion order.
func (s *TaskService) List(_ context.Context) ([]*domain.Task, error) {
	return s.repo.FindAll()
}

// Get returns a single task by ID.
func (s *TaskService) Get(_ context.Context, id uint) (*domain.Task, error) {
	return s.repo.FindByID(id)
}

// Create validates the title and persists a new task.
func (s *TaskService) Create(_ context.Context, title, description string) (*domain.Task, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}

	task := &domain.Task{
		Title:       title,
		Description: description,
	}
	if err := s.repo.Create(task); err != nil {
		return nil, err
	}
	return task, nil
}

// Update overwrites title and description of an existing task.
// Not-found is checked before validation so unknown IDs report 404
// regardless of the body.
func (s *TaskService) Update(_ context.Context, id uint, title, description string) (*domain.Task, error) {
	task, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if err := validateTitle(title); err != nil {
		return nil, err
	}

	task.Title = title
	task.Description = description
	if err := s.repo.Update(task); err != nil {
		return nil, err
	}
	return task, nil
}

// Delete removes a task by ID.
func (s *TaskService) Delete(_ context.Context, id uint) error {
	return s.repo.Delete(id)
}

// Toggle flips the completed flag and leaves every other field intact.
// Applied twice it restores the original state.
func (s *TaskService) Toggle(_ context.Context, id uint) (*domain.Task, error) {
	task, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	task.Completed = !task.Completed
	if err := s.repo.Update(task); err != nil {
		return nil, err
	}
	return task, nil
}
