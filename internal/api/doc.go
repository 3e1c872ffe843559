// Package api handles incoming HTTP requests, request validation and
// response formatting for the task endpoints. It acts as an adapter between
// external clients and the task service, and is the only layer that knows
// about HTTP status codes.
package api
