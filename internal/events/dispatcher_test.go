package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishInvokesAllSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var first, second []Event
	d.Subscribe(EventUserRegistered, func(_ context.Context, e Event) error {
		first = append(first, e)
		return nil
	})
	d.Subscribe(EventUserRegistered, func(_ context.Context, e Event) error {
		second = append(second, e)
		return nil
	})

	event := Event{ID: "evt-1", Type: EventUserRegistered, UserID: "user-1"}
	require.NoError(t, d.Publish(context.Background(), event))

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, "evt-1", first[0].ID)
}

func TestPublishContinuesPastFailingHandler(t *testing.T) {
	d := NewInMemoryDispatcher()

	reached := false
	d.Subscribe(EventVerificationResent, func(context.Context, Event) error {
		return errors.New("handler blew up")
	})
	d.Subscribe(EventVerificationResent, func(context.Context, Event) error {
		reached = true
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventVerificationResent}))
	assert.True(t, reached)
}

func TestPublishWithoutSubscribersIsNoop(t *testing.T) {
	d := NewInMemoryDispatcher()
	assert.NoError(t, d.Publish(context.Background(), Event{Type: EventPasswordResetRequested}))
}

func TestEventTypeIsolation(t *testing.T) {
	d := NewInMemoryDispatcher()

	calls := 0
	d.Subscribe(EventUserRegistered, func(context.Context, Event) error {
		calls++
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventPasswordResetRequested}))
	assert.Zero(t, calls)
}
