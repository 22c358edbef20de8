package event

import (
	"sync"

	"github.com/postling-dev/postling/internal/domain"
	"github.com/postling-dev/postling/internal/logger"
)

// Listener consumes a signup event. A returned error means the listener's
// own work failed; it never affects the already-committed signup.
type Listener interface {
	Handle(event domain.SignupEvent) error
}

// Bus is an explicit in-process observer list. Publish dispatches
// synchronously on the caller's goroutine, in subscription order. By the
// time Publish returns, every listener has run.
type Bus struct {
	mu        sync.RWMutex
	listeners []Listener
}

func NewBus() *Bus {
	return &Bus{}
}

func (b *Bus) Subscribe(l Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners = append(b.listeners, l)
}

// Publish delivers the event to every listener. Listener failures are
// logged and swallowed: the user account is already committed and signup
// must not be rolled back or reported as failed because of them.
func (b *Bus) Publish(event domain.SignupEvent) {
	b.mu.RLock()
	listeners := b.listeners
	b.mu.RUnlock()

	for _, l := range listeners {
		if err := l.Handle(event); err != nil {
			logger.Log.Error("signup event listener failed",
				"user_id", event.User.Id,
				"email", event.User.Email,
				"error", err)
		}
	}
}
