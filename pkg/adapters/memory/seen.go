package memory

import (
	"context"
	"sync"
	"time"
)

// SeenStore implements ports.SeenStore in memory.
// Safe for concurrent use.
type SeenStore struct {
	mu     sync.RWMutex
	data   map[string]time.Time // expiry; zero means no expiry
	now    func() time.Time
	writes int
}

// SeenOption configures a SeenStore.
type SeenOption func(*SeenStore)

// WithClock overrides the time source used for expiry.
func WithClock(now func() time.Time) SeenOption {
	return func(s *SeenStore) {
		s.now = now
	}
}

// NewSeenStore creates a new in-memory seen store.
func NewSeenStore(opts ...SeenOption) *SeenStore {
	s := &SeenStore{
		data: make(map[string]time.Time),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MarkSeen records the flag.
func (s *SeenStore) MarkSeen(ctx context.Context, key string, ttl time.Duration) error {
	var expiry time.Time
	if ttl > 0 {
		expiry = s.now().Add(ttl)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = expiry
	s.writes++
	return nil
}

// Seen reports whether an unexpired flag exists.
func (s *SeenStore) Seen(ctx context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	expiry, ok := s.data[key]
	if !ok {
		return false, nil
	}
	return expiry.IsZero() || s.now().Before(expiry), nil
}

// Forget removes the flag.
func (s *SeenStore) Forget(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// Writes returns how many times MarkSeen was called.
func (s *SeenStore) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}
