package events

import (
	"testing"
	"time"

	"auxin/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishReachesAllSubscribers(t *testing.T) {
	bus := NewBus()

	ch1, cancel1 := bus.Subscribe()
	ch2, cancel2 := bus.Subscribe()
	defer cancel1()
	defer cancel2()

	bus.Publish(AuthEvent{Kind: KindGoogleAuthSuccess, User: models.AuthUser{ID: "u1", Email: "a@b.c"}})

	for _, ch := range []<-chan AuthEvent{ch1, ch2} {
		select {
		case ev := <-ch:
			assert.Equal(t, KindGoogleAuthSuccess, ev.Kind)
			assert.Equal(t, "u1", ev.User.ID)
		case <-time.After(time.Second):
			t.Fatal("subscriber did not receive event")
		}
	}
}

func TestCancelledSubscriberStopsReceiving(t *testing.T) {
	bus := NewBus()

	ch, cancel := bus.Subscribe()
	cancel()
	cancel() // idempotent

	_, open := <-ch
	require.False(t, open)

	// Publishing after cancel must not panic.
	bus.Publish(AuthEvent{Kind: KindSignedOut})
}

func TestPublishDoesNotBlockOnSlowSubscriber(t *testing.T) {
	bus := NewBus()

	_, cancel := bus.Subscribe()
	defer cancel()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			bus.Publish(AuthEvent{Kind: KindGoogleAuthError, Error: "e"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on an unread subscriber")
	}
}
