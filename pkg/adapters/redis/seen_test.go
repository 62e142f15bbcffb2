package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/walkthrough/pkg/adapters/redis"
	"github.com/aretw0/walkthrough/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisSeenStore_Contract(t *testing.T) {
	// Setup miniredis
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	defer mr.Close()

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})

	store := redis.NewFromClient(client)
	ports.RunSeenStoreContract(t, store)
}

func TestRedisSeenStore_TTL_Expiration(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	store := redis.New(mr.Addr(), "", 0, redis.WithPrefix("annot:"))
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Ping(ctx))
	require.NoError(t, store.MarkSeen(ctx, "skipTutorial:alice", 365*24*time.Hour))
	assert.True(t, mr.Exists("annot:skipTutorial:alice"))

	ttl := mr.TTL("annot:skipTutorial:alice")
	assert.Equal(t, 365*24*time.Hour, ttl)

	// Fast Forward time in miniredis (for Key Expiration)
	mr.FastForward(366 * 24 * time.Hour)

	seen, err := store.Seen(ctx, "skipTutorial:alice")
	require.NoError(t, err)
	assert.False(t, seen)
}

func TestRedisSeenStore_Unavailable(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	store := redis.New(mr.Addr(), "", 0)
	mr.Close()

	_, err = store.Seen(context.Background(), "skipTutorial")
	assert.Error(t, err)
}
