package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/service"
)

// Messages returned to clients for errors that carry no field detail.
const (
	msgTaskNotFound   = "Task not found"
	msgDuplicateID    = "Task ID already exists"
	msgInvalidRequest = "Invalid request format"
	msgUnexpected     = "An unexpected error occurred"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var fieldErrs validator.ValidationErrors

	switch {
	case err == nil:
		return http.StatusInternalServerError

	// Not found errors
	case errors.Is(err, service.ErrTaskNotFound):
		return http.StatusNotFound

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, service.ErrDuplicateTaskID),
		errors.As(err, &fieldErrs):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return msgUnexpected
	}

	var validationErr *domain.ValidationError
	var fieldErrs validator.ValidationErrors

	switch {
	case errors.Is(err, service.ErrTaskNotFound):
		return msgTaskNotFound

	case errors.Is(err, service.ErrDuplicateTaskID):
		return msgDuplicateID

	case errors.As(err, &validationErr):
		return fmt.Sprintf("Invalid %s: %s", validationErr.Field, validationErr.Message)

	case errors.As(err, &fieldErrs):
		return SanitizeValidationError(fieldErrs)

	case errors.Is(err, domain.ErrValidation):
		return "Validation error"

	default:
		return msgUnexpected
	}
}

// SanitizeValidationError turns struct validation failures into a message
// naming the first offending field, e.g. "Invalid id: must be greater than 0".
func SanitizeValidationError(err error) string {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return fmt.Sprintf("Invalid %s: %s", fe.Field(), getValidationTagMessage(fe.Tag()))
	}

	// Fall back to a generic validation error message
	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "gt":
		return "must be greater than 0"
	case "min":
		return "too short"
	case "max":
		return "too long"
	default:
		return "validation failed"
	}
}

// HandleAPIError writes the error response for err. Expected failures get a
// message naming what went wrong; anything else is logged in full and
// answered with a generic message. A non-empty fallback replaces the generic
// message for 500 responses.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := MapErrorToStatusCode(err)

	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && fallback != "" {
		message = fallback
	}

	shared.RespondWithErrorAndLog(w, r, status, message, err)
}
