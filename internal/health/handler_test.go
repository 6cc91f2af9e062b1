package health_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rapid-url/rapid-url/internal/health"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChecker struct {
	err error
}

func (f *fakeChecker) Ping(context.Context) error {
	return f.err
}

func TestCheck(t *testing.T) {
	ctx := context.Background()

	t.Run("reports ok when all dependencies answer", func(t *testing.T) {
		handler := health.NewHandler(&fakeChecker{}, &fakeChecker{})

		resp, err := handler.Check(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, "ok", resp.Body.Status)
		assert.Equal(t, "healthy", resp.Body.Database)
		assert.Equal(t, "healthy", resp.Body.Redis)
	})

	t.Run("reports degraded when the database is down", func(t *testing.T) {
		handler := health.NewHandler(&fakeChecker{err: errors.New("down")}, nil)

		resp, err := handler.Check(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, "degraded", resp.Body.Status)
		assert.Equal(t, "unhealthy", resp.Body.Database)
	})

	t.Run("reports degraded when the cache is down", func(t *testing.T) {
		handler := health.NewHandler(&fakeChecker{}, &fakeChecker{err: errors.New("down")})

		resp, err := handler.Check(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, "degraded", resp.Body.Status)
		assert.Equal(t, "unhealthy", resp.Body.Redis)
	})

	t.Run("skips redis when not configured", func(t *testing.T) {
		handler := health.NewHandler(&fakeChecker{}, nil)

		resp, err := handler.Check(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, "ok", resp.Body.Status)
		assert.Empty(t, resp.Body.Redis)
	})
}
