package event

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/postling-dev/postling/internal/domain"
)

type recordingListener struct {
	name   string
	calls  *[]string
	events []domain.SignupEvent
	err    error
}

func (l *recordingListener) Handle(event domain.SignupEvent) error {
	*l.calls = append(*l.calls, l.name)
	l.events = append(l.events, event)
	return l.err
}

func TestBusDispatchOrder(t *testing.T) {
	bus := NewBus()
	var calls []string
	first := &recordingListener{name: "first", calls: &calls}
	second := &recordingListener{name: "second", calls: &calls}
	bus.Subscribe(first)
	bus.Subscribe(second)

	event := domain.SignupEvent{User: domain.User{Id: 1, Email: "a@x.com"}, RequestBaseURL: "http://localhost"}
	bus.Publish(event)

	assert.Equal(t, []string{"first", "second"}, calls)
	assert.Equal(t, []domain.SignupEvent{event}, first.events)
	assert.Equal(t, []domain.SignupEvent{event}, second.events)
}

func TestBusSwallowsListenerErrors(t *testing.T) {
	bus := NewBus()
	var calls []string
	failing := &recordingListener{name: "failing", calls: &calls, err: errors.New("smtp down")}
	after := &recordingListener{name: "after", calls: &calls}
	bus.Subscribe(failing)
	bus.Subscribe(after)

	// must not panic or stop dispatch
	bus.Publish(domain.SignupEvent{User: domain.User{Id: 2}})

	assert.Equal(t, []string{"failing", "after"}, calls)
}

func TestBusNoListeners(t *testing.T) {
	bus := NewBus()
	bus.Publish(domain.SignupEvent{User: domain.User{Id: 3}})
}
