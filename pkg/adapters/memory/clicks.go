package memory

import (
	"context"
	"sync"

	"github.com/aretw0/walkthrough/pkg/ports"
)

type subscription struct {
	id      int
	handler ports.ClickHandler
}

// ClickBus implements ports.ClickSource. Click dispatches synchronously,
// in subscription order.
type ClickBus struct {
	mu     sync.Mutex
	nextID int
	subs   []subscription
}

// NewClickBus creates an empty bus.
func NewClickBus() *ClickBus {
	return &ClickBus{}
}

// Subscribe registers a handler.
func (b *ClickBus) Subscribe(handler ports.ClickHandler) ports.UnsubscribeFunc {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, handler: handler})

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			for i, s := range b.subs {
				if s.id == id {
					b.subs = append(b.subs[:i], b.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// Click delivers one click to every current subscriber.
// Handlers may unsubscribe while being called.
func (b *ClickBus) Click(ctx context.Context) {
	b.mu.Lock()
	subs := append([]subscription(nil), b.subs...)
	b.mu.Unlock()

	for _, s := range subs {
		s.handler(ctx)
	}
}

// Subscribers returns the number of active handlers.
func (b *ClickBus) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
