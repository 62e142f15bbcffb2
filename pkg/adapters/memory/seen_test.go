package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/walkthrough/pkg/adapters/memory"
	"github.com/aretw0/walkthrough/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySeenStore_Contract(t *testing.T) {
	ports.RunSeenStoreContract(t, memory.NewSeenStore())
}

func TestMemorySeenStore_Expiry(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	store := memory.NewSeenStore(memory.WithClock(func() time.Time { return now }))
	ctx := context.Background()

	require.NoError(t, store.MarkSeen(ctx, "skipTutorial", 365*24*time.Hour))

	now = now.Add(364 * 24 * time.Hour)
	seen, err := store.Seen(ctx, "skipTutorial")
	require.NoError(t, err)
	assert.True(t, seen)

	now = now.Add(2 * 24 * time.Hour)
	seen, err = store.Seen(ctx, "skipTutorial")
	require.NoError(t, err)
	assert.False(t, seen, "flag should expire after its ttl")

	assert.Equal(t, 1, store.Writes())
}
