// Package ratelimit provides per-client request limiting with per-endpoint
// limits declared in operation metadata.
package ratelimit

import (
	"context"
	"fmt"
	"time"
)

// MetadataKey is the operation metadata key holding an EndpointConfig.
const MetadataKey = "ratelimit"

// LimitConfig is a single window/max pair.
type LimitConfig struct {
	Window time.Duration
	Max    int64
}

// EndpointConfig declares the limits applied to one operation. Every limit
// must hold for a request to pass.
type EndpointConfig struct {
	Limits []LimitConfig
}

// Limiter defines the interface for rate limiting.
type Limiter interface {
	// Allow checks whether a request from the given client key passes every
	// configured limit.
	Allow(ctx context.Context, key string, limits []LimitConfig) (allowed bool, err error)
}

// WindowLimiter enforces fixed-window limits backed by a Store.
type WindowLimiter struct {
	store Store
}

// NewWindowLimiter creates a limiter on top of the given store.
func NewWindowLimiter(store Store) *WindowLimiter {
	return &WindowLimiter{store: store}
}

func (l *WindowLimiter) Allow(ctx context.Context, key string, limits []LimitConfig) (bool, error) {
	for _, limit := range limits {
		// Each window is tracked independently per client.
		windowKey := fmt.Sprintf("%s:%d", key, limit.Window.Milliseconds())

		count, err := l.store.Record(ctx, windowKey, limit.Window)
		if err != nil {
			return false, err
		}

		if count > limit.Max {
			return false, nil
		}
	}

	return true, nil
}
