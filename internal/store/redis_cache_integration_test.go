//go:build integration

package store_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rapid-url/rapid-url/internal/store"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getRedisAddr() string {
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		return addr
	}

	return "localhost:6379"
}

func TestRedisCacheStoreIntegration(t *testing.T) {
	ctx := context.Background()

	client := redis.NewClient(&redis.Options{Addr: getRedisAddr()})
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	t.Run("serves cached lookups after the backing store is cleared", func(t *testing.T) {
		memStore := store.NewMemoryStore()
		cached := store.NewRedisCacheStore(memStore, client, time.Minute)

		require.NoError(t, cached.Insert(ctx, "https://example.com", "cach01", uuid.New()))

		// Drop the record from the backing store only; the cache still has it.
		require.NoError(t, memStore.DeleteAll(ctx))

		originalURL, err := cached.Lookup(ctx, "cach01")
		require.NoError(t, err)
		assert.Equal(t, "https://example.com", originalURL)

		require.NoError(t, cached.DeleteAll(ctx))
	})

	t.Run("falls back to the store on a cache miss", func(t *testing.T) {
		memStore := store.NewMemoryStore()
		cached := store.NewRedisCacheStore(memStore, client, time.Minute)

		require.NoError(t, memStore.Insert(ctx, "https://fallback.example", "cach02", uuid.New()))

		originalURL, err := cached.Lookup(ctx, "cach02")
		require.NoError(t, err)
		assert.Equal(t, "https://fallback.example", originalURL)

		require.NoError(t, cached.DeleteAll(ctx))
	})
}
