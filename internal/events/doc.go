// Package events carries task lifecycle notifications from the service layer
// to interested handlers.
//
// The primary components are:
// - Event: a task.created, task.updated or task.deleted notification
// - EventEmitter: publishes events; InMemoryEventEmitter dispatches in process
// - EventHandler: consumes events; AuditHandler logs and counts them
package events
