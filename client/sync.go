package client

import (
	"context"
	"strings"
	"sync"
)

// State is the lifecycle state of the synced task list.
type State int

const (
	StateLoading State = iota
	StateReady
	StateError
)

// Filter selects which tasks are visible by completion status.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// TaskAPI is the server surface the sync controller needs.
type TaskAPI interface {
	ListTasks(ctx context.Context) ([]Task, error)
	CreateTask(ctx context.Context, title, description string) (*Task, error)
	UpdateTask(ctx context.Context, id uint, title, description string) (*Task, error)
	DeleteTask(ctx context.Context, id uint) error
	ToggleTask(ctx context.Context, id uint) (*Task, error)
}

var _ TaskAPI = (*Client)(nil)

// SyncController maintains a local copy of the task list. Toggle and
// Delete apply their change locally before the server confirms it and
// restore a snapshot when the call fails. Filtering and search are
// pure projections over the local copy and never touch the network.
type SyncController struct {
	mu      sync.Mutex
	api     TaskAPI
	state   State
	tasks   []Task
	filter  Filter
	search  string
	lastErr error
}

// NewSyncController creates a controller over the given API.
func NewSyncController(api TaskAPI) *SyncController {
	return &SyncController{
		api:    api,
		state:  StateLoading,
		filter: FilterAll,
	}
}

// Refresh replaces the local list with the server's.
func (s *SyncController) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.state = StateLoading
	s.mu.Unlock()

	tasks, err := s.api.ListTasks(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = StateError
		s.lastErr = err
		return err
	}
	s.state = StateReady
	s.lastErr = nil
	s.tasks = tasks
	return nil
}

// Create adds a task. Creation is not optimistic; the task appears
// once the server has assigned it an ID.
func (s *SyncController) Create(ctx context.Context, title, description string) (*Task, error) {
	created, err := s.api.CreateTask(ctx, title, description)
	if err != nil {
		s.fail(err)
		return nil, err
	}
	s.mu.Lock()
	s.tasks = append(s.tasks, *created)
	s.lastErr = nil
	s.mu.Unlock()
	return created, nil
}

// Update overwrites a task's title and description.
func (s *SyncController) Update(ctx context.Context, id uint, title, description string) (*Task, error) {
	updated, err := s.api.UpdateTask(ctx, id, title, description)
	if err != nil {
		s.fail(err)
		return nil, err
	}
	s.replace(*updated)
	return updated, nil
}

// Toggle optimistically flips the task's completed flag, then confirms
// with the server. On failure the flag reverts to its previous value.
func (s *SyncController) Toggle(ctx context.Context, id uint) error {
	return s.mutate(ctx,
		func(tasks []Task) []Task {
			for i := range tasks {
				if tasks[i].ID == id {
					tasks[i].Completed = !tasks[i].Completed
				}
			}
			return tasks
		},
		func(ctx context.Context) error {
			updated, err := s.api.ToggleTask(ctx, id)
			if err != nil {
				return err
			}
			s.replace(*updated)
			return nil
		},
	)
}

// Delete optimistically removes the task, then confirms with the
// server. On failure the previous list is restored as-is, position
// included.
func (s *SyncController) Delete(ctx context.Context, id uint) error {
	return s.mutate(ctx,
		func(tasks []Task) []Task {
			remaining := make([]Task, 0, len(tasks))
			for _, t := range tasks {
				if t.ID != id {
					remaining = append(remaining, t)
				}
			}
			return remaining
		},
		func(ctx context.Context) error {
			return s.api.DeleteTask(ctx, id)
		},
	)
}

// mutate is the shared optimistic-update mechanism: snapshot, apply
// locally, call the server, restore the snapshot on failure.
func (s *SyncController) mutate(ctx context.Context, apply func([]Task) []Task, call func(context.Context) error) error {
	s.mu.Lock()
	snapshot := make([]Task, len(s.tasks))
	copy(snapshot, s.tasks)
	s.tasks = apply(s.tasks)
	s.mu.Unlock()

	if err := call(ctx); err != nil {
		s.mu.Lock()
		s.tasks = snapshot
		s.lastErr = err
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	s.lastErr = nil
	s.mu.Unlock()
	return nil
}

// replace swaps in the server copy of a task, if still present.
func (s *SyncController) replace(task Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == task.ID {
			s.tasks[i] = task
		}
	}
}

func (s *SyncController) fail(err error) {
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
}

// SetFilter changes the completion-status filter.
func (s *SyncController) SetFilter(f Filter) {
	s.mu.Lock()
	s.filter = f
	s.mu.Unlock()
}

// Filter returns the current completion-status filter.
func (s *SyncController) Filter() Filter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

// SetSearch changes the free-text search term.
func (s *SyncController) SetSearch(term string) {
	s.mu.Lock()
	s.search = term
	s.mu.Unlock()
}

// Search returns the current search term.
func (s *SyncController) Search() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.search
}

// State returns the current lifecycle state.
func (s *SyncController) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Err returns the most recent error, cleared by the next successful
// operation.
func (s *SyncController) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Tasks returns a copy of the full local list.
func (s *SyncController) Tasks() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Visible applies the status filter and search term to the local list.
// The search matches case-insensitively against title and description.
func (s *SyncController) Visible() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	term := strings.ToLower(s.search)
	out := make([]Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		switch s.filter {
		case FilterActive:
			if t.Completed {
				continue
			}
		case FilterCompleted:
			if !t.Completed {
				continue
			}
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(t.Title), term) &&
			!strings.Contains(strings.ToLower(t.Description), term) {
			continue
		}
		out = append(out, t)
	}
	return out
}
