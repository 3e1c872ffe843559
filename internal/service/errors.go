package service

import "github.com/phrazzld/task-api/internal/store"

// Sentinel errors surfaced by the service layer.
// Callers match them with errors.Is; the API layer maps them to HTTP status
// codes.
var (
	// ErrTaskNotFound indicates that no task has the requested ID.
	// API layer should map this to HTTP 404 Not Found.
	ErrTaskNotFound = store.ErrTaskNotFound

	// ErrDuplicateTaskID indicates that a client-supplied ID is already taken.
	// API layer should map this to HTTP 400 Bad Request.
	ErrDuplicateTaskID = store.ErrDuplicateID
)
