// Package event is a small synchronous event dispatcher. Services fire domain
// events after a successful commit; listeners (metrics, audit logging)
// subscribe at boot.
package event

import (
	"context"
	"sync"
)

// Name identifies an event, e.g. "order.created".
type Name string

// Handler receives the payload of a fired event.
type Handler func(ctx context.Context, payload any)

// Dispatcher fans events out to listeners in registration order.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[Name][]Handler
}

func New() *Dispatcher {
	return &Dispatcher{handlers: map[Name][]Handler{}}
}

// Listen registers h for name.
func (d *Dispatcher) Listen(name Name, h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[name] = append(d.handlers[name], h)
}

// Fire calls every listener for name synchronously. A nil dispatcher is a
// no-op so services can be built without one in tests.
func (d *Dispatcher) Fire(ctx context.Context, name Name, payload any) {
	if d == nil {
		return
	}
	d.mu.RLock()
	hs := append([]Handler(nil), d.handlers[name]...)
	d.mu.RUnlock()

	for _, h := range hs {
		h(ctx, payload)
	}
}
