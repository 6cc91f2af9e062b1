package shortener_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rapid-url/rapid-url/internal/shortener"
	"github.com/rapid-url/rapid-url/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// conflictingRepo rejects the first n inserts with ErrCodeConflict before
// delegating to the wrapped repository.
type conflictingRepo struct {
	shortener.Repository
	conflicts int
	inserts   int
}

func (r *conflictingRepo) Insert(ctx context.Context, originalURL string, code shortener.Code, owner uuid.UUID) error {
	r.inserts++
	if r.inserts <= r.conflicts {
		return shortener.ErrCodeConflict
	}

	return r.Repository.Insert(ctx, originalURL, code, owner)
}

func newTestService(repo shortener.Repository) *shortener.Service {
	generate, _ := shortener.NewCodeGenerator()

	return shortener.NewService(repo, generate, "sho.rt", zap.NewNop())
}

func TestShorten(t *testing.T) {
	t.Run("shorten then resolve round trips the original url", func(t *testing.T) {
		memStore := store.NewMemoryStore()
		service := newTestService(memStore)
		owner := uuid.New()

		shortURL, err := service.Shorten(context.Background(), owner, "https://example.com/very/long/path")
		require.NoError(t, err)
		assert.Regexp(t, `^https://sho\.rt/[0-9A-Za-z]{6}$`, shortURL)

		code := shortURL[len(shortURL)-shortener.CodeLength:]

		originalURL, err := service.Resolve(context.Background(), shortener.Code(code))
		require.NoError(t, err)
		assert.Equal(t, "https://example.com/very/long/path", originalURL)
	})

	t.Run("retries with a fresh code on collision", func(t *testing.T) {
		repo := &conflictingRepo{Repository: store.NewMemoryStore(), conflicts: 2}
		service := newTestService(repo)

		shortURL, err := service.Shorten(context.Background(), uuid.New(), "https://example.com")
		require.NoError(t, err)
		assert.NotEmpty(t, shortURL)
		assert.Equal(t, 3, repo.inserts)
	})

	t.Run("gives up after the retry budget is exhausted", func(t *testing.T) {
		repo := &conflictingRepo{Repository: store.NewMemoryStore(), conflicts: 100}
		service := newTestService(repo)

		_, err := service.Shorten(context.Background(), uuid.New(), "https://example.com")
		assert.ErrorIs(t, err, shortener.ErrCodeConflict)
		assert.Equal(t, 3, repo.inserts)
	})

	t.Run("surfaces store failures without retrying", func(t *testing.T) {
		repo := &failingRepo{err: errors.New("connection refused")}
		service := newTestService(repo)

		_, err := service.Shorten(context.Background(), uuid.New(), "https://example.com")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, shortener.ErrCodeConflict)
		assert.Equal(t, 1, repo.inserts)
	})
}

func TestResolve(t *testing.T) {
	t.Run("returns ErrNotFound for a never-inserted code", func(t *testing.T) {
		service := newTestService(store.NewMemoryStore())

		_, err := service.Resolve(context.Background(), "zzz999")
		assert.ErrorIs(t, err, shortener.ErrNotFound)
	})
}

// failingRepo fails every insert with a fixed error.
type failingRepo struct {
	err     error
	inserts int
}

func (r *failingRepo) Insert(context.Context, string, shortener.Code, uuid.UUID) error {
	r.inserts++

	return r.err
}

func (r *failingRepo) Lookup(context.Context, shortener.Code) (string, error) {
	return "", r.err
}

func (r *failingRepo) DeleteAll(context.Context) error {
	return r.err
}
