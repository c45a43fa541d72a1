package event_bus

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBus_Publish(t *testing.T) {
	t.Run("should deliver typed payloads in subscription order", func(t *testing.T) {
		bus := NewEventBus()
		var received []string
		SubscribeTyped[AvailabilitySubmitted](bus, AvailabilitySubmittedType, func(e EventT[AvailabilitySubmitted]) error {
			received = append(received, "first:"+e.Data.ParticipantName)
			return nil
		})
		SubscribeTyped[AvailabilitySubmitted](bus, AvailabilitySubmittedType, func(e EventT[AvailabilitySubmitted]) error {
			received = append(received, "second:"+e.Data.ParticipantName)
			return nil
		})

		err := bus.Publish(NewEvent(context.Background(), AvailabilitySubmittedType, AvailabilitySubmitted{EventId: "e1", ParticipantName: "Alice"}))

		require.NoError(t, err)
		assert.Equal(t, []string{"first:Alice", "second:Alice"}, received)
	})

	t.Run("should skip handlers of a different payload type", func(t *testing.T) {
		bus := NewEventBus()
		called := false
		SubscribeTyped[EventCreated](bus, AvailabilitySubmittedType, func(e EventT[EventCreated]) error {
			called = true
			return nil
		})

		err := bus.Publish(NewEvent(context.Background(), AvailabilitySubmittedType, AvailabilitySubmitted{}))

		require.NoError(t, err)
		assert.False(t, called)
	})

	t.Run("should collect handler errors and panics", func(t *testing.T) {
		bus := NewEventBus()
		boom := errors.New("boom")
		bus.Subscribe(EventCreatedType, func(e Event) error { return boom })
		bus.Subscribe(EventCreatedType, func(e Event) error { panic("bad handler") })
		delivered := false
		bus.Subscribe(EventCreatedType, func(e Event) error {
			delivered = true
			return nil
		})

		err := bus.Publish(NewEvent(context.Background(), EventCreatedType, EventCreated{EventId: "e1"}))

		require.Error(t, err)
		assert.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "2 handler(s) failed")
		assert.True(t, delivered)
	})

	t.Run("should stop on cancelled context", func(t *testing.T) {
		bus := NewEventBus()
		called := false
		bus.Subscribe(EventCreatedType, func(e Event) error {
			called = true
			return nil
		})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := bus.Publish(NewEvent(ctx, EventCreatedType, EventCreated{}))

		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, called)
	})

	t.Run("should not call unsubscribed handlers", func(t *testing.T) {
		bus := NewEventBus()
		called := false
		unsubscribe := bus.Subscribe(EventCreatedType, func(e Event) error {
			called = true
			return nil
		})
		unsubscribe()

		err := bus.Publish(NewEvent(context.Background(), EventCreatedType, EventCreated{}))

		require.NoError(t, err)
		assert.False(t, called)
	})
}
