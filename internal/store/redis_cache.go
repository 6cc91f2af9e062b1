package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rapid-url/rapid-url/internal/shortener"
	"github.com/redis/go-redis/v9"
)

// RedisCacheStore wraps a Repository with Redis caching on the lookup path.
// Cache failures degrade to the underlying store; they never fail a request.
type RedisCacheStore struct {
	store  shortener.Repository
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisCacheStore creates a Redis-cached repository decorator.
func NewRedisCacheStore(store shortener.Repository, client *redis.Client, ttl time.Duration) *RedisCacheStore {
	return &RedisCacheStore{
		store:  store,
		client: client,
		prefix: "url:",
		ttl:    ttl,
	}
}

// Insert persists through the underlying store and primes the cache.
func (r *RedisCacheStore) Insert(ctx context.Context, originalURL string, code shortener.Code, owner uuid.UUID) error {
	if err := r.store.Insert(ctx, originalURL, code, owner); err != nil {
		return err
	}

	r.client.Set(ctx, r.prefix+string(code), originalURL, r.ttl)

	return nil
}

// Lookup checks the cache first and falls back to the underlying store,
// repopulating the cache on a store hit.
func (r *RedisCacheStore) Lookup(ctx context.Context, code shortener.Code) (string, error) {
	key := r.prefix + string(code)

	cached, err := r.client.Get(ctx, key).Result()
	if err == nil {
		return cached, nil
	}

	// redis.Nil is a miss; anything else means the cache is unavailable.
	// Either way the store still answers.
	originalURL, err := r.store.Lookup(ctx, code)
	if err != nil {
		return "", err
	}

	r.client.Set(ctx, key, originalURL, r.ttl)

	return originalURL, nil
}

// DeleteAll clears the underlying store and flushes cached entries.
func (r *RedisCacheStore) DeleteAll(ctx context.Context) error {
	if err := r.store.DeleteAll(ctx); err != nil {
		return err
	}

	iter := r.client.Scan(ctx, 0, r.prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		r.client.Del(ctx, iter.Val())
	}

	return iter.Err()
}

var _ shortener.Repository = (*RedisCacheStore)(nil)
