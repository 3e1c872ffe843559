package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	type testPayload struct {
		ID    int64  `json:"id"`
		Title string `json:"title"`
	}

	payload := testPayload{ID: 3, Title: "Buy milk"}

	event, err := NewEvent(TypeTaskCreated, payload)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, event.ID)
	assert.Equal(t, TypeTaskCreated, event.Type)
	assert.WithinDuration(t, time.Now(), event.CreatedAt, 2*time.Second)

	var decoded testPayload
	require.NoError(t, event.UnmarshalPayload(&decoded))
	assert.Equal(t, payload, decoded)
}

func TestNewEventUnmarshalablePayload(t *testing.T) {
	event, err := NewEvent(TypeTaskCreated, make(chan int))

	assert.Error(t, err)
	assert.Nil(t, event)
}

// MockEventHandler implements the EventHandler interface for testing
type MockEventHandler struct {
	// The last event received by this handler
	LastEvent *Event
	// Error to return from HandleEvent
	HandlerError error
	// Count of events handled
	HandledCount int
}

// HandleEvent implements the EventHandler interface
func (h *MockEventHandler) HandleEvent(ctx context.Context, event *Event) error {
	h.LastEvent = event
	h.HandledCount++
	return h.HandlerError
}

func TestEventHandlerFunc(t *testing.T) {
	var got *Event
	handler := EventHandlerFunc(func(_ context.Context, e *Event) error {
		got = e
		return errors.New("boom")
	})

	event, err := NewEvent(TypeTaskDeleted, DeletedPayload{ID: 1})
	require.NoError(t, err)

	err = handler.HandleEvent(context.Background(), event)
	assert.EqualError(t, err, "boom")
	assert.Same(t, event, got)
}
