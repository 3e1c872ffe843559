package events

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryEventEmitter(t *testing.T) {
	// Create a minimal logger that discards output
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("emit event with no handlers", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(logger)
		event, err := NewEvent(TypeTaskCreated, map[string]int64{"id": 1})
		require.NoError(t, err)

		err = emitter.EmitEvent(context.Background(), event)
		assert.NoError(t, err)
	})

	t.Run("emit event with successful handlers", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(logger)

		handler1 := &MockEventHandler{}
		handler2 := &MockEventHandler{}
		emitter.RegisterHandler(handler1)
		emitter.RegisterHandler(handler2)

		event, err := NewEvent(TypeTaskUpdated, map[string]int64{"id": 1})
		require.NoError(t, err)

		err = emitter.EmitEvent(context.Background(), event)
		assert.NoError(t, err)

		assert.Equal(t, 1, handler1.HandledCount)
		assert.Equal(t, 1, handler2.HandledCount)
		assert.Same(t, event, handler1.LastEvent)
		assert.Same(t, event, handler2.LastEvent)
	})

	t.Run("emit event with failing handlers", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(logger)

		errFirst := errors.New("first handler error")
		errLast := errors.New("last handler error")
		failingHandler := &MockEventHandler{HandlerError: errFirst}
		successHandler := &MockEventHandler{}
		lastHandler := &MockEventHandler{HandlerError: errLast}

		emitter.RegisterHandler(failingHandler)
		emitter.RegisterHandler(successHandler)
		emitter.RegisterHandler(lastHandler)

		event, err := NewEvent(TypeTaskDeleted, DeletedPayload{ID: 2})
		require.NoError(t, err)

		err = emitter.EmitEvent(context.Background(), event)
		require.Error(t, err)
		assert.ErrorIs(t, err, errFirst)
		assert.ErrorIs(t, err, errLast)

		// Every handler still receives the event
		assert.Equal(t, 1, failingHandler.HandledCount)
		assert.Equal(t, 1, successHandler.HandledCount)
		assert.Equal(t, 1, lastHandler.HandledCount)
	})
}
