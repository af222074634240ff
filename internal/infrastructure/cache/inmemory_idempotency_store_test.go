package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryStoreMarkProcessed(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()
	ctx := context.Background()

	fresh, err := store.MarkProcessed(ctx, "key-1", time.Minute)
	require.NoError(t, err)
	assert.True(t, fresh)

	replay, err := store.MarkProcessed(ctx, "key-1", time.Minute)
	require.NoError(t, err)
	assert.False(t, replay)

	other, err := store.MarkProcessed(ctx, "key-2", time.Minute)
	require.NoError(t, err)
	assert.True(t, other)
}

func TestInMemoryStoreIsProcessed(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()
	ctx := context.Background()

	known, err := store.IsProcessed(ctx, "key-1")
	require.NoError(t, err)
	assert.False(t, known)

	_, err = store.MarkProcessed(ctx, "key-1", time.Minute)
	require.NoError(t, err)

	known, err = store.IsProcessed(ctx, "key-1")
	require.NoError(t, err)
	assert.True(t, known)
}

func TestInMemoryStoreExpiry(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()
	ctx := context.Background()

	_, err := store.MarkProcessed(ctx, "key-1", 10*time.Millisecond)
	require.NoError(t, err)

	time.Sleep(20 * time.Millisecond)

	known, err := store.IsProcessed(ctx, "key-1")
	require.NoError(t, err)
	assert.False(t, known)

	// an expired key can be claimed again
	fresh, err := store.MarkProcessed(ctx, "key-1", time.Minute)
	require.NoError(t, err)
	assert.True(t, fresh)
}

func TestInMemoryStoreCloseTwice(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	require.NoError(t, store.Close())
	require.NoError(t, store.Close())
}
