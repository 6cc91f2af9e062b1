package store_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rapid-url/rapid-url/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimitMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("counts requests within the window", func(t *testing.T) {
		rlStore := store.NewRateLimitMemoryStore()

		for want := int64(1); want <= 3; want++ {
			count, err := rlStore.Record(ctx, "client", time.Minute)
			require.NoError(t, err)
			assert.Equal(t, want, count)
		}
	})

	t.Run("prunes entries outside the window", func(t *testing.T) {
		rlStore := store.NewRateLimitMemoryStore()

		_, err := rlStore.Record(ctx, "client", 10*time.Millisecond)
		require.NoError(t, err)

		time.Sleep(20 * time.Millisecond)

		count, err := rlStore.Record(ctx, "client", 10*time.Millisecond)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("tracks keys independently", func(t *testing.T) {
		rlStore := store.NewRateLimitMemoryStore()

		_, err := rlStore.Record(ctx, "a", time.Minute)
		require.NoError(t, err)

		count, err := rlStore.Record(ctx, "b", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("is safe under concurrent access", func(t *testing.T) {
		rlStore := store.NewRateLimitMemoryStore()

		var wg sync.WaitGroup

		for i := 0; i < 50; i++ {
			wg.Add(1)

			go func() {
				defer wg.Done()

				_, err := rlStore.Record(ctx, "shared", time.Minute)
				assert.NoError(t, err)
			}()
		}

		wg.Wait()

		count, err := rlStore.Record(ctx, "shared", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, int64(51), count)
	})
}
