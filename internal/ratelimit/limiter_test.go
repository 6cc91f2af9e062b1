package ratelimit_test

import (
	"context"
	"testing"
	"time"

	"github.com/rapid-url/rapid-url/internal/ratelimit"
	"github.com/rapid-url/rapid-url/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindowLimiter(t *testing.T) {
	ctx := context.Background()

	t.Run("allows up to the limit and rejects beyond it", func(t *testing.T) {
		limiter := ratelimit.NewWindowLimiter(store.NewRateLimitMemoryStore())
		limits := []ratelimit.LimitConfig{{Window: time.Minute, Max: 2}}

		for i := 0; i < 2; i++ {
			allowed, err := limiter.Allow(ctx, "client", limits)
			require.NoError(t, err)
			assert.True(t, allowed)
		}

		allowed, err := limiter.Allow(ctx, "client", limits)
		require.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("the tightest of several limits wins", func(t *testing.T) {
		limiter := ratelimit.NewWindowLimiter(store.NewRateLimitMemoryStore())
		limits := []ratelimit.LimitConfig{
			{Window: time.Minute, Max: 1},
			{Window: time.Hour, Max: 100},
		}

		allowed, err := limiter.Allow(ctx, "client", limits)
		require.NoError(t, err)
		assert.True(t, allowed)

		allowed, err = limiter.Allow(ctx, "client", limits)
		require.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("clients are tracked independently", func(t *testing.T) {
		limiter := ratelimit.NewWindowLimiter(store.NewRateLimitMemoryStore())
		limits := []ratelimit.LimitConfig{{Window: time.Minute, Max: 1}}

		allowed, err := limiter.Allow(ctx, "a", limits)
		require.NoError(t, err)
		assert.True(t, allowed)

		allowed, err = limiter.Allow(ctx, "b", limits)
		require.NoError(t, err)
		assert.True(t, allowed)
	})
}
