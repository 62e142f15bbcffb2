package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/walkthrough/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteSeenStore_Contract(t *testing.T) {
	store, err := Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	ports.RunSeenStoreContract(t, store)
}

func TestSQLiteSeenStore_FileAndPrune(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state", "seen.db")

	store, err := Open(path)
	require.NoError(t, err)

	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	require.NoError(t, store.MarkSeen(ctx, "skipTutorial:a", time.Hour))
	require.NoError(t, store.MarkSeen(ctx, "skipTutorial:b", 0))
	require.NoError(t, store.Close())

	store, err = Open(path)
	require.NoError(t, err)
	defer store.Close()
	store.now = func() time.Time { return now.Add(2 * time.Hour) }

	seen, err := store.Seen(ctx, "skipTutorial:a")
	require.NoError(t, err)
	assert.False(t, seen, "expired")

	seen, err = store.Seen(ctx, "skipTutorial:b")
	require.NoError(t, err)
	assert.True(t, seen, "no expiry survives reopen")

	n, err := store.Prune(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
