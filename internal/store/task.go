package store

import (
	"context"

	"github.com/phrazzld/task-api/internal/domain"
)

// TaskFilter narrows a task listing. Zero values mean the filter is not applied;
// when both are set a task must satisfy both.
type TaskFilter struct {
	// Completed keeps only tasks whose completion status equals *Completed.
	Completed *bool

	// Search keeps only tasks whose title or description contains Search,
	// compared case-insensitively.
	Search string
}

// TaskStore defines the interface for task data storage.
// Every returned task is a copy; mutating it never changes stored state.
type TaskStore interface {
	// Create validates the draft, assigns or checks its ID and appends it.
	// Returns a *domain.ValidationError if the draft is invalid and
	// ErrDuplicateID if a client-supplied ID is already in use.
	Create(ctx context.Context, draft domain.TaskDraft) (*domain.Task, error)

	// List returns the tasks matching filter in insertion order.
	// Returns an empty slice if nothing matches.
	List(ctx context.Context, filter TaskFilter) ([]*domain.Task, error)

	// Get retrieves a task by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	Get(ctx context.Context, id int64) (*domain.Task, error)

	// Update replaces the whole task identified by id, keeping its ID,
	// creation time and position.
	// Returns ErrTaskNotFound if the task does not exist and a
	// *domain.ValidationError if the replacement is invalid.
	Update(ctx context.Context, id int64, draft domain.TaskDraft) (*domain.Task, error)

	// Delete removes the task identified by id.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id int64) error
}
