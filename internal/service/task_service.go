package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/events"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/store"
)

// TaskService provides task-related operations for the transport layer.
type TaskService interface {
	// CreateTask validates draft and stores it as a new task.
	CreateTask(ctx context.Context, draft domain.TaskDraft) (*domain.Task, error)

	// ListTasks returns the tasks matching filter in insertion order.
	ListTasks(ctx context.Context, filter store.TaskFilter) ([]*domain.Task, error)

	// GetTask retrieves a task by its ID.
	GetTask(ctx context.Context, id int64) (*domain.Task, error)

	// UpdateTask replaces the task with the given ID.
	UpdateTask(ctx context.Context, id int64, draft domain.TaskDraft) (*domain.Task, error)

	// DeleteTask removes the task with the given ID.
	DeleteTask(ctx context.Context, id int64) error
}

// TaskServiceError wraps unexpected errors from the task service with context.
type TaskServiceError struct {
	// Operation is the operation that failed (e.g., "create_task", "delete_task")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for TaskServiceError.
func (e *TaskServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("task service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("task service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *TaskServiceError) Unwrap() error {
	return e.Err
}

// NewTaskServiceError creates a new TaskServiceError.
// Expected outcomes (validation, not found, duplicate) are returned unchanged
// so callers can keep matching them with errors.Is.
func NewTaskServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	if isExpected(err) {
		return err
	}

	return &TaskServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

func isExpected(err error) bool {
	return errors.Is(err, domain.ErrValidation) ||
		store.IsNotFoundError(err) ||
		store.IsDuplicateError(err)
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	tasks        store.TaskStore
	eventEmitter events.EventEmitter
	logger       *slog.Logger
}

// NewTaskService creates a new TaskService.
// It returns an error if any of the required dependencies are nil.
func NewTaskService(
	tasks store.TaskStore,
	eventEmitter events.EventEmitter,
	logger *slog.Logger,
) (TaskService, error) {
	if tasks == nil {
		return nil, &TaskServiceError{
			Operation: "create_service",
			Message:   "task store cannot be nil",
		}
	}
	if eventEmitter == nil {
		return nil, &TaskServiceError{
			Operation: "create_service",
			Message:   "eventEmitter cannot be nil",
		}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		tasks:        tasks,
		eventEmitter: eventEmitter,
		logger:       logger.With("component", "task_service"),
	}, nil
}

// log prefers the request-scoped logger carried by ctx, tagged with this
// service's component name.
func (s *taskServiceImpl) log(ctx context.Context) *slog.Logger {
	l := logger.FromContextOrDefault(ctx, nil)
	if l == nil {
		return s.logger
	}
	return l.With("component", "task_service")
}

// CreateTask validates draft, stores it and emits task.created.
func (s *taskServiceImpl) CreateTask(
	ctx context.Context,
	draft domain.TaskDraft,
) (*domain.Task, error) {
	log := s.log(ctx).With("operation", "create_task")

	task, err := s.tasks.Create(ctx, draft)
	if err != nil {
		return nil, s.fail(ctx, log, "create_task", "failed to create task", err)
	}

	log.Info("task created", "task_id", task.ID)
	s.emit(ctx, log, events.TypeTaskCreated, task)

	return task, nil
}

// ListTasks returns the tasks matching filter.
func (s *taskServiceImpl) ListTasks(
	ctx context.Context,
	filter store.TaskFilter,
) ([]*domain.Task, error) {
	log := s.log(ctx).With("operation", "list_tasks")

	tasks, err := s.tasks.List(ctx, filter)
	if err != nil {
		return nil, s.fail(ctx, log, "list_tasks", "failed to list tasks", err)
	}

	log.Debug("tasks listed",
		"count", len(tasks),
		"completed_filter", filter.Completed != nil,
		"search_filter", filter.Search != "")
	return tasks, nil
}

// GetTask retrieves a task by its ID.
func (s *taskServiceImpl) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	log := s.log(ctx).With("operation", "get_task", "task_id", id)

	task, err := s.tasks.Get(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, log, "get_task", "failed to retrieve task", err)
	}

	log.Debug("task retrieved")
	return task, nil
}

// UpdateTask replaces the task with the given ID and emits task.updated.
func (s *taskServiceImpl) UpdateTask(
	ctx context.Context,
	id int64,
	draft domain.TaskDraft,
) (*domain.Task, error) {
	log := s.log(ctx).With("operation", "update_task", "task_id", id)

	task, err := s.tasks.Update(ctx, id, draft)
	if err != nil {
		return nil, s.fail(ctx, log, "update_task", "failed to update task", err)
	}

	log.Info("task updated", "completed", task.Completed)
	s.emit(ctx, log, events.TypeTaskUpdated, task)

	return task, nil
}

// DeleteTask removes the task with the given ID and emits task.deleted.
func (s *taskServiceImpl) DeleteTask(ctx context.Context, id int64) error {
	log := s.log(ctx).With("operation", "delete_task", "task_id", id)

	if err := s.tasks.Delete(ctx, id); err != nil {
		return s.fail(ctx, log, "delete_task", "failed to delete task", err)
	}

	log.Info("task deleted")
	s.emit(ctx, log, events.TypeTaskDeleted, events.DeletedPayload{ID: id})

	return nil
}

// fail logs err at a level matching how surprising it is and returns the
// error callers should see.
func (s *taskServiceImpl) fail(
	ctx context.Context,
	log *slog.Logger,
	operation, message string,
	err error,
) error {
	if isExpected(err) {
		log.DebugContext(ctx, "task operation rejected", "reason", err.Error())
		return err
	}

	log.ErrorContext(ctx, message, "error", err)
	return NewTaskServiceError(operation, message, err)
}

// emit publishes a lifecycle event. Failures are logged only; the mutation
// has already happened.
func (s *taskServiceImpl) emit(
	ctx context.Context,
	log *slog.Logger,
	eventType string,
	payload interface{},
) {
	event, err := events.NewEvent(eventType, payload)
	if err != nil {
		log.ErrorContext(ctx, "failed to create task event", "error", err, "event_type", eventType)
		return
	}

	if err := s.eventEmitter.EmitEvent(ctx, event); err != nil {
		log.WarnContext(ctx, "failed to emit task event",
			"error", err,
			"event_id", event.ID,
			"event_type", eventType)
		return
	}

	log.DebugContext(ctx, "task event emitted", "event_id", event.ID, "event_type", eventType)
}
