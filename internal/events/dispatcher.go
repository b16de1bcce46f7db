package events

import (
	"context"
	"sync"
)

// Handler consumes a published event. Handler errors never abort
// publication; notification delivery is fire-and-forget.
type Handler func(context.Context, Event) error

// Dispatcher decouples the engine, which only decides that a notification
// is warranted, from the sinks that deliver it.
type Dispatcher interface {
	Publish(ctx context.Context, event Event)
	Subscribe(eventType EventType, handler Handler)
}

type memoryDispatcher struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewDispatcher creates a synchronous in-process dispatcher.
func NewDispatcher() Dispatcher {
	return &memoryDispatcher{handlers: make(map[EventType][]Handler)}
}

func (d *memoryDispatcher) Publish(ctx context.Context, event Event) {
	d.mu.RLock()
	subscribed := append([]Handler(nil), d.handlers[event.Type]...)
	d.mu.RUnlock()

	for _, handle := range subscribed {
		_ = handle(ctx, event)
	}
}

func (d *memoryDispatcher) Subscribe(eventType EventType, handler Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[eventType] = append(d.handlers[eventType], handler)
}
