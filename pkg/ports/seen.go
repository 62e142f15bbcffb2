package ports

import (
	"context"
	"time"
)

// SeenStore persists the flag recording that a user completed the tour.
type SeenStore interface {
	// MarkSeen records the flag under key. It expires after ttl (0 means never).
	MarkSeen(ctx context.Context, key string, ttl time.Duration) error

	// Seen reports whether an unexpired flag exists under key.
	Seen(ctx context.Context, key string) (bool, error)

	// Forget removes the flag. Forgetting a missing key is not an error.
	Forget(ctx context.Context, key string) error
}
