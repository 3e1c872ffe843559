package shared

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAndGetTraceID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetTraceID(ctx), "Expected empty trace ID in original context")

	ctxWithTrace := SetTraceID(ctx)

	traceID := GetTraceID(ctxWithTrace)
	_, err := uuid.Parse(traceID)
	assert.NoError(t, err, "trace ID should be a UUID")
	assert.Empty(t, GetTraceID(ctx), "Expected original context to remain unchanged")

	assert.NotEqual(t, traceID, GetTraceID(SetTraceID(ctx)), "trace IDs should differ per call")
}

func TestGetTraceIDWithInvalidContext(t *testing.T) {
	ctx := context.WithValue(context.Background(), TraceIDKey, 123) // Not a string

	assert.Empty(t, GetTraceID(ctx))
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Title string `json:"title" validate:"required"`
	}

	t.Run("valid body", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":"x"}`))
		var p payload
		require.NoError(t, DecodeJSON(httptest.NewRecorder(), r, &p))
		assert.Equal(t, "x", p.Title)
		assert.NoError(t, ValidateRequest(p))
	})

	t.Run("malformed body", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":`))
		var p payload
		assert.Error(t, DecodeJSON(httptest.NewRecorder(), r, &p))
	})

	t.Run("trailing data", func(t *testing.T) {
		for _, body := range []string{`{"title":"x"} trailing`, `{"title":"x"}{}`} {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
			var p payload
			assert.ErrorIs(t, DecodeJSON(httptest.NewRecorder(), r, &p), ErrTrailingData, body)
		}
	})

	t.Run("trailing whitespace is allowed", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{\"title\":\"x\"}\n  "))
		var p payload
		assert.NoError(t, DecodeJSON(httptest.NewRecorder(), r, &p))
	})

	t.Run("oversized body", func(t *testing.T) {
		body := `{"title":"` + strings.Repeat("a", MaxRequestBodyBytes) + `"}`
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		var p payload
		assert.Error(t, DecodeJSON(httptest.NewRecorder(), r, &p))
	})

	t.Run("struct validation", func(t *testing.T) {
		assert.Error(t, ValidateRequest(payload{}))
	})
}

func TestRespondWithJSON(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/tasks", nil)

	RespondWithJSON(w, r, http.StatusCreated, MessageResponse{Message: "ok"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"message":"ok"}`, w.Body.String())
}

func TestRespondWithErrorAndLog(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		err       error
		wantLevel string
	}{
		{name: "client error logged at debug", status: http.StatusNotFound, wantLevel: "DEBUG"},
		{
			name:      "server error logged at error",
			status:    http.StatusInternalServerError,
			err:       errors.New("store exploded"),
			wantLevel: "ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, buf := logger.NewTestLogger(t)
			ctx := logger.WithLogger(WithTraceID(context.Background(), "trace-1"), log)
			r := httptest.NewRequest(http.MethodGet, "/tasks/1", nil).WithContext(ctx)
			w := httptest.NewRecorder()

			RespondWithErrorAndLog(w, r, tt.status, "Safe message", tt.err)

			assert.Equal(t, tt.status, w.Code)
			var body ErrorResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
			assert.Equal(t, "Safe message", body.Error)
			assert.Equal(t, "trace-1", body.TraceID)

			entries, err := buf.GetLogEntries()
			require.NoError(t, err)
			require.Len(t, entries, 1)
			assert.Equal(t, tt.wantLevel, entries[0]["level"])
			assert.EqualValues(t, tt.status, entries[0]["status_code"])
			if tt.err != nil {
				assert.Equal(t, tt.err.Error(), entries[0]["error"])
				assert.NotContains(t, body.Error, tt.err.Error(), "internal detail must not leak")
			}
		})
	}
}
