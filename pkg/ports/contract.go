package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSeenStoreContract runs a suite of tests to verify that a SeenStore implementation
// adheres to the defined interface contract.
func RunSeenStoreContract(t *testing.T, store SeenStore) {
	ctx := context.Background()
	key := "contract-skipTutorial-" + time.Now().Format("20060102150405.000000")

	t.Run("Unknown key is unseen", func(t *testing.T) {
		seen, err := store.Seen(ctx, "missing-"+key)
		require.NoError(t, err)
		assert.False(t, seen)
	})

	t.Run("MarkSeen then Seen", func(t *testing.T) {
		require.NoError(t, store.MarkSeen(ctx, key, 365*24*time.Hour))

		seen, err := store.Seen(ctx, key)
		require.NoError(t, err)
		assert.True(t, seen)
	})

	t.Run("MarkSeen is idempotent", func(t *testing.T) {
		require.NoError(t, store.MarkSeen(ctx, key, 365*24*time.Hour))
		require.NoError(t, store.MarkSeen(ctx, key, 0))

		seen, err := store.Seen(ctx, key)
		require.NoError(t, err)
		assert.True(t, seen)
	})

	t.Run("Forget", func(t *testing.T) {
		require.NoError(t, store.Forget(ctx, key))

		seen, err := store.Seen(ctx, key)
		require.NoError(t, err)
		assert.False(t, seen, "Seen after Forget should be false")

		assert.NoError(t, store.Forget(ctx, key), "Forget of a missing key should not fail")
	})

	t.Run("Keys are isolated", func(t *testing.T) {
		a, b := key+"-a", key+"-b"
		defer func() {
			_ = store.Forget(ctx, a)
			_ = store.Forget(ctx, b)
		}()

		require.NoError(t, store.MarkSeen(ctx, a, 0))

		seen, err := store.Seen(ctx, b)
		require.NoError(t, err)
		assert.False(t, seen)
	})
}
