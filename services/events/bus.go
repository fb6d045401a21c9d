// Package events carries sign-in state transitions to interested listeners
// without coupling them to the auth service.
package events

import (
	"sync"

	"auxin/models"
)

// Event kinds published on the bus.
const (
	KindGoogleAuthSuccess = "googleAuthSuccess"
	KindGoogleAuthError   = "googleAuthError"
	KindSignedOut         = "signedOut"
)

// AuthEvent is a sign-in state transition.
type AuthEvent struct {
	Kind  string
	User  models.AuthUser
	Error string
}

// Bus is a small in-process pub/sub for auth events. Publish never blocks;
// a subscriber that has fallen behind misses events rather than stalling the
// resolving goroutine.
type Bus struct {
	mu   sync.Mutex
	subs map[int]chan AuthEvent
	next int
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[int]chan AuthEvent)}
}

// Subscribe registers a listener and returns its channel plus a cancel
// function. Cancel is safe to call more than once.
func (b *Bus) Subscribe() (<-chan AuthEvent, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.next
	b.next++
	ch := make(chan AuthEvent, 8)
	b.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if sub, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(sub)
			}
		})
	}
	return ch, cancel
}

// Publish delivers the event to every current subscriber.
func (b *Bus) Publish(ev AuthEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
