package redis

import (
	"context"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"
)

// SeenStore implements ports.SeenStore using Redis keys with native expiry.
type SeenStore struct {
	client *backend.Client
	prefix string
}

type Option func(*SeenStore)

// WithPrefix sets the key prefix for flags.
func WithPrefix(prefix string) Option {
	return func(s *SeenStore) {
		s.prefix = prefix
	}
}

// New creates a new Redis seen store with options.
func New(address, password string, db int, opts ...Option) *SeenStore {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis seen store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *SeenStore {
	store := &SeenStore{
		client: client,
		prefix: "walkthrough:seen:",
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (s *SeenStore) key(k string) string {
	return s.prefix + k
}

// MarkSeen sets the flag. A zero ttl keeps it forever.
func (s *SeenStore) MarkSeen(ctx context.Context, key string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(key), "true", ttl).Err(); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Seen reports whether the flag exists. Redis drops expired keys itself.
func (s *SeenStore) Seen(ctx context.Context, key string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(key)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to query redis: %w", err)
	}
	return n > 0, nil
}

// Forget removes the flag.
func (s *SeenStore) Forget(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete from redis: %w", err)
	}
	return nil
}

// Ping checks connectivity.
func (s *SeenStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the redis client.
func (s *SeenStore) Close() error {
	return s.client.Close()
}
