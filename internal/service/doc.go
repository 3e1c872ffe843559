// Package service contains the application-specific use cases for tasks. It
// sits between the HTTP handlers and the storage interfaces defined in
// internal/store.
//
// Error handling:
//   - Expected outcomes (validation failures, missing tasks, duplicate IDs)
//     are returned as errors matchable with errors.Is
//   - Anything else is wrapped in a *TaskServiceError and logged at ERROR
//
// Successful mutations publish task lifecycle events through an
// events.EventEmitter. A failed emission is logged and never undoes or fails
// the mutation.
package service
