package di

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryCache_SetGet(t *testing.T) {
	cache := NewInMemoryCache()
	defer cache.Close()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "key", "value", 60))

	got, ok := cache.Get(ctx, "key")
	require.True(t, ok)
	assert.Equal(t, "value", got)

	_, ok = cache.Get(ctx, "missing")
	assert.False(t, ok)
}

func TestInMemoryCache_ExpiredItemIsMiss(t *testing.T) {
	cache := NewInMemoryCache()
	defer cache.Close()
	ctx := context.Background()

	// A negative TTL puts the item in the past without sleeping
	require.NoError(t, cache.Set(ctx, "key", "value", -1))

	_, ok := cache.Get(ctx, "key")
	assert.False(t, ok)
}

func TestInMemoryCache_DeleteAndFlush(t *testing.T) {
	cache := NewInMemoryCache()
	defer cache.Close()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "a", 1, 60))
	require.NoError(t, cache.Set(ctx, "b", 2, 60))

	require.NoError(t, cache.Delete(ctx, "a"))
	_, ok := cache.Get(ctx, "a")
	assert.False(t, ok)

	cache.Flush(ctx)
	_, ok = cache.Get(ctx, "b")
	assert.False(t, ok)
}

func TestInMemoryCache_CloseIsIdempotent(t *testing.T) {
	cache := NewInMemoryCache()

	cache.Close()
	// A second Close must not panic on the already-closed stop channel
	cache.Close()

	// The cache still serves reads and writes after Close; only the
	// background sweep is gone
	ctx := context.Background()
	require.NoError(t, cache.Set(ctx, "key", "value", 60))
	got, ok := cache.Get(ctx, "key")
	require.True(t, ok)
	assert.Equal(t, "value", got)
}
