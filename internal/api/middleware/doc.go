// Package middleware provides the HTTP middleware applied to every route:
// trace IDs with request-scoped loggers, request logging, Prometheus metrics
// and security headers.
package middleware
