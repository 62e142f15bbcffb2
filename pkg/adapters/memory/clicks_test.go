package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/walkthrough/pkg/adapters/memory"
	"github.com/stretchr/testify/assert"
)

func TestClickBus(t *testing.T) {
	bus := memory.NewClickBus()
	ctx := context.Background()

	var order []string
	unsubA := bus.Subscribe(func(context.Context) { order = append(order, "a") })
	var unsubB func()
	unsubB = bus.Subscribe(func(context.Context) {
		order = append(order, "b")
		unsubB() // unsubscribing from inside a handler must not deadlock
	})
	assert.Equal(t, 2, bus.Subscribers())

	bus.Click(ctx)
	assert.Equal(t, []string{"a", "b"}, order)
	assert.Equal(t, 1, bus.Subscribers())

	unsubA()
	unsubA()
	bus.Click(ctx)
	assert.Equal(t, []string{"a", "b"}, order)
	assert.Zero(t, bus.Subscribers())
}
