package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/store"
)

// getPathID extracts a task ID from the URL path parameters.
//
// Returns:
//   - (id, nil): The parsed ID
//   - (0, error): A ValidationError if the parameter is missing or not an integer
func getPathID(r *http.Request, paramName string) (int64, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return 0, domain.NewValidationError(paramName, "is required", domain.ErrInvalidID)
	}

	id, err := strconv.ParseInt(pathParam, 10, 64)
	if err != nil {
		return 0, domain.NewValidationError(paramName, "must be an integer", domain.ErrInvalidID)
	}

	return id, nil
}

// getTaskFilter reads the optional completed and search query parameters.
// search is passed through untouched; an empty value applies no filter.
func getTaskFilter(r *http.Request) (store.TaskFilter, error) {
	query := r.URL.Query()
	filter := store.TaskFilter{Search: query.Get("search")}

	if raw := query.Get("completed"); raw != "" {
		completed, err := strconv.ParseBool(raw)
		if err != nil {
			return store.TaskFilter{}, domain.NewValidationError(
				"completed", "must be a boolean", domain.ErrValidation)
		}
		filter.Completed = &completed
	}

	return filter, nil
}
