package memory

import (
	"context"
	"sync"
)

// Blocker implements ports.UIBlocker as a plain flag, recording every transition.
type Blocker struct {
	mu      sync.Mutex
	blocked bool
	history []bool
}

// NewBlocker creates an unblocked Blocker.
func NewBlocker() *Blocker {
	return &Blocker{}
}

// SetBlocked sets the flag.
func (b *Blocker) SetBlocked(ctx context.Context, blocked bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.blocked = blocked
	b.history = append(b.history, blocked)
	return nil
}

// Blocked returns the current flag.
func (b *Blocker) Blocked() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.blocked
}

// Releases counts how many times the UI was unblocked.
func (b *Blocker) Releases() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, v := range b.history {
		if !v {
			n++
		}
	}
	return n
}

// History returns a copy of every value passed to SetBlocked.
func (b *Blocker) History() []bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]bool(nil), b.history...)
}
