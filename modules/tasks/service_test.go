package tasks

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func newTestService(t *testing.T) *TaskService {
	t.Helper()
	return NewTaskService(NewRepository(setupTestDB(t)))
}

func TestTaskService_Create(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		description string
		wantErr     error
	}{
		{
			name:        "valid task",
			title:       "Buy milk",
			description: "Two liters",
			wantErr:     nil,
		},
		{
			name:    "empty title",
			title:   "",
			wantErr: ErrTitleRequired,
		},
		{
			name:    "blank title",
			title:   "   ",
			wantErr: ErrTitleRequired,
		},
		{
			name:    "title at the limit",
			title:   strings.Repeat("a", 255),
			wantErr: nil,
		},
		{
			name:    "title too long",
			title:   strings.Repeat("a", 256),
			wantErr: ErrTitleTooLong,
		},
		{
			// 255 characters is within bounds even when each character
			// is several bytes long.
			name:    "multibyte title at the limit",
			title:   strings.Repeat("待", 255),
			wantErr: nil,
		},
		{
			name:    "multibyte title too long",
			title:   strings.Repeat("待", 256),
			wantErr: ErrTitleTooLong,
		},
		{
			name:        "empty description is fine",
			title:       "No description",
			description: "",
			wantErr:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t)

			task, err := svc.Create(context.Background(), tt.title, tt.description)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Create() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Create() error = %v", err)
			}

			if task.ID == 0 {
				t.Error("Create() returned task without ID")
			}
			if task.Completed {
				t.Error("new task should not be completed")
			}
		})
	}
}

func TestTaskService_Get(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "Readable", "details")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	t.Run("existing task", func(t *testing.T) {
		task, err := svc.Get(ctx, created.ID)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if task.Title != "Readable" {
			t.Errorf("title = %q, want %q", task.Title, "Readable")
		}
	})

	t.Run("non-existent task", func(t *testing.T) {
		_, err := svc.Get(ctx, 9999)
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("Get() error = %v, want %v", err, ErrNotFound)
		}
	})
}

func TestTaskService_Update(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	task, err := svc.Create(ctx, "Original", "desc")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	t.Run("overwrites title and description", func(t *testing.T) {
		updated, err := svc.Update(ctx, task.ID, "New title", "")
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if updated.Title != "New title" {
			t.Errorf("title = %q, want %q", updated.Title, "New title")
		}
		if updated.Description != "" {
			t.Errorf("description = %q, want empty", updated.Description)
		}
	})

	t.Run("invalid title", func(t *testing.T) {
		_, err := svc.Update(ctx, task.ID, "", "desc")
		if !errors.Is(err, ErrTitleRequired) {
			t.Errorf("Update() error = %v, want %v", err, ErrTitleRequired)
		}
	})

	// Unknown IDs report not-found even when the body is also invalid.
	t.Run("not-found wins over validation", func(t *testing.T) {
		_, err := svc.Update(ctx, 9999, "", "")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("Update() error = %v, want %v", err, ErrNotFound)
		}
	})
}

func TestTaskService_Toggle(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	task, err := svc.Create(ctx, "Toggle me", "")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	t.Run("flips completed", func(t *testing.T) {
		toggled, err := svc.Toggle(ctx, task.ID)
		if err != nil {
			t.Fatalf("Toggle() error = %v", err)
		}
		if !toggled.Completed {
			t.Error("completed = false, want true")
		}
	})

	t.Run("toggling twice restores the original state", func(t *testing.T) {
		toggled, err := svc.Toggle(ctx, task.ID)
		if err != nil {
			t.Fatalf("Toggle() error = %v", err)
		}
		if toggled.Completed {
			t.Error("completed = true, want false")
		}
		if toggled.Title != task.Title {
			t.Errorf("title changed on toggle: %q", toggled.Title)
		}
	})

	t.Run("non-existent task", func(t *testing.T) {
		_, err := svc.Toggle(ctx, 9999)
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("Toggle() error = %v, want %v", err, ErrNotFound)
		}
	})
}

func TestTaskService_Delete(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, "first", "")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := svc.Create(ctx, "second", ""); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := svc.Delete(ctx, first.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 task after delete, got %d", len(list))
	}
	if list[0].Title != "second" {
		t.Errorf("remaining task = %q, want %q", list[0].Title, "second")
	}

	t.Run("non-existent task", func(t *testing.T) {
		err := svc.Delete(ctx, first.ID)
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("Delete() error = %v, want %v", err, ErrNotFound)
		}
	})
}
