package api

import (
	"time"

	"github.com/phrazzld/task-api/internal/domain"
)

// TaskRequest is the body of POST /tasks and PUT /tasks/{id}.
// Trimming and length limits are enforced by the domain, not by these tags.
type TaskRequest struct {
	ID          *int64  `json:"id,omitempty" validate:"omitempty,gt=0"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Completed   bool    `json:"completed"`
}

// ToDraft converts the request into the domain's creation/replacement input.
func (r TaskRequest) ToDraft() domain.TaskDraft {
	return domain.TaskDraft{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Completed:   r.Completed,
	}
}

// TaskResponse is the JSON representation of a task.
type TaskResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
}

// taskToResponse converts a domain.Task to a TaskResponse
func taskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Completed:   task.Completed,
		CreatedAt:   task.CreatedAt,
	}
}

// tasksToResponse converts a slice of tasks, never returning nil so an empty
// listing encodes as [].
func tasksToResponse(tasks []*domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, taskToResponse(t))
	}
	return out
}
