package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/store"
)

// IDPolicy decides where a new task's ID comes from.
type IDPolicy string

const (
	// IDPolicyAutoAssign ignores any client ID and hands out the next value of
	// a counter that only ever grows, so IDs are never reused.
	IDPolicyAutoAssign IDPolicy = "auto"

	// IDPolicyClientSupplied requires the client to supply a positive ID that
	// no stored task already has.
	IDPolicyClientSupplied IDPolicy = "client"
)

// MismatchPolicy decides what Update does when the replacement names a
// different ID than the task being replaced.
type MismatchPolicy string

const (
	// MismatchPolicyForce overwrites the replacement's ID with the target ID.
	MismatchPolicyForce MismatchPolicy = "force"

	// MismatchPolicyReject fails the update with domain.ErrIDMismatch.
	MismatchPolicyReject MismatchPolicy = "reject"
)

// ParseIDPolicy converts a configuration value into an IDPolicy.
func ParseIDPolicy(s string) (IDPolicy, error) {
	switch p := IDPolicy(s); p {
	case IDPolicyAutoAssign, IDPolicyClientSupplied:
		return p, nil
	default:
		return "", fmt.Errorf("unknown id policy %q", s)
	}
}

// ParseMismatchPolicy converts a configuration value into a MismatchPolicy.
func ParseMismatchPolicy(s string) (MismatchPolicy, error) {
	switch p := MismatchPolicy(s); p {
	case MismatchPolicyForce, MismatchPolicyReject:
		return p, nil
	default:
		return "", fmt.Errorf("unknown id mismatch policy %q", s)
	}
}

// Option configures a TaskStore.
type Option func(*TaskStore)

// WithIDPolicy sets the ID assignment policy. The default is IDPolicyAutoAssign.
func WithIDPolicy(p IDPolicy) Option {
	return func(s *TaskStore) { s.idPolicy = p }
}

// WithMismatchPolicy sets the update ID mismatch policy. The default is
// MismatchPolicyForce.
func WithMismatchPolicy(p MismatchPolicy) Option {
	return func(s *TaskStore) { s.mismatchPolicy = p }
}

// WithClock replaces time.Now as the source of creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *TaskStore) { s.now = now }
}

// TaskStore implements store.TaskStore on an in-process slice.
//
// Tasks are kept in insertion order and found with linear scans. All writes
// and the ID counter share one mutex; reads take the read lock and copy.
type TaskStore struct {
	mu     sync.RWMutex
	tasks  []*domain.Task
	nextID int64

	idPolicy       IDPolicy
	mismatchPolicy MismatchPolicy
	now            func() time.Time
}

var _ store.TaskStore = (*TaskStore)(nil)

// NewTaskStore creates an empty TaskStore.
func NewTaskStore(opts ...Option) *TaskStore {
	s := &TaskStore{
		tasks:          make([]*domain.Task, 0),
		nextID:         1,
		idPolicy:       IDPolicyAutoAssign,
		mismatchPolicy: MismatchPolicyForce,
		now:            func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create validates draft and appends it as a new task.
func (s *TaskStore) Create(ctx context.Context, draft domain.TaskDraft) (*domain.Task, error) {
	log := logger.FromContext(ctx)

	normalized, err := draft.Normalize()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var id int64
	switch s.idPolicy {
	case IDPolicyClientSupplied:
		if normalized.ID == nil {
			return nil, domain.NewValidationError("id", "is required", domain.ErrInvalidID)
		}
		id = *normalized.ID
		if s.indexOf(id) >= 0 {
			return nil, store.NewStoreError("task", "create",
				fmt.Sprintf("id %d already exists", id), store.ErrDuplicateID)
		}
	default:
		id = s.nextID
		s.nextID++
	}

	task := &domain.Task{
		ID:          id,
		Title:       normalized.Title,
		Description: normalized.Description,
		Completed:   normalized.Completed,
		CreatedAt:   s.now(),
	}
	s.tasks = append(s.tasks, task)

	log.Debug("task stored", "task_id", id, "task_count", len(s.tasks))
	return task.Clone(), nil
}

// List returns copies of the tasks matching filter, in insertion order.
func (s *TaskStore) List(_ context.Context, filter store.TaskFilter) ([]*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if filter.Completed != nil && t.Completed != *filter.Completed {
			continue
		}
		if !t.Matches(filter.Search) {
			continue
		}
		out = append(out, t.Clone())
	}
	return out, nil
}

// Get returns a copy of the task with the given ID.
func (s *TaskStore) Get(_ context.Context, id int64) (*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, store.ErrTaskNotFound
	}
	return s.tasks[i].Clone(), nil
}

// Update replaces the task with the given ID, keeping its position and
// creation time.
func (s *TaskStore) Update(ctx context.Context, id int64, draft domain.TaskDraft) (*domain.Task, error) {
	log := logger.FromContext(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, store.ErrTaskNotFound
	}

	normalized, err := draft.Normalize()
	if err != nil {
		return nil, err
	}

	if normalized.ID != nil && *normalized.ID != id && s.mismatchPolicy == MismatchPolicyReject {
		return nil, domain.NewValidationError(
			"id",
			fmt.Sprintf("%d does not match path id %d", *normalized.ID, id),
			domain.ErrIDMismatch,
		)
	}

	replacement := &domain.Task{
		ID:          id,
		Title:       normalized.Title,
		Description: normalized.Description,
		Completed:   normalized.Completed,
		CreatedAt:   s.tasks[i].CreatedAt,
	}
	s.tasks[i] = replacement

	log.Debug("task replaced", "task_id", id, "position", i)
	return replacement.Clone(), nil
}

// Delete removes the task with the given ID.
func (s *TaskStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return store.ErrTaskNotFound
	}

	copy(s.tasks[i:], s.tasks[i+1:])
	s.tasks[len(s.tasks)-1] = nil
	s.tasks = s.tasks[:len(s.tasks)-1]

	log.Debug("task removed", "task_id", id, "task_count", len(s.tasks))
	return nil
}

// indexOf returns the slice position of the task with the given ID, or -1.
// Callers must hold s.mu.
func (s *TaskStore) indexOf(id int64) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
