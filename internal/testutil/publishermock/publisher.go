package publishermock

import (
	"context"
	"sync"

	"agrocredito/internal/domain/event"
)

var _ event.Publisher = (*Publisher)(nil)

// Publisher records every published event. PublishFn, when set, decides the result.
type Publisher struct {
	PublishFn func(ctx context.Context, e event.Event) (string, error)

	mu     sync.Mutex
	events []event.Event
}

func (m *Publisher) Publish(ctx context.Context, e event.Event) (string, error) {
	m.mu.Lock()
	m.events = append(m.events, e)
	m.mu.Unlock()
	if m.PublishFn != nil {
		return m.PublishFn(ctx, e)
	}
	return "0-1", nil
}

func (m *Publisher) Events() []event.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]event.Event(nil), m.events...)
}
