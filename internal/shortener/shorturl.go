package shortener

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no record exists for a short code.
var ErrNotFound = errors.New("short url not found")

// ErrCodeConflict is returned when an insert collides with an existing short code.
var ErrCodeConflict = errors.New("short code already exists")

// Code represents a short URL code.
type Code string

// ShortURL represents a shortened URL record.
type ShortURL struct {
	ID          int64
	Code        Code
	OriginalURL string
	CreatedOn   time.Time
	OwnerID     uuid.UUID
}

// Repository defines the interface for short URL storage operations.
type Repository interface {
	// Insert persists a new (code, url, owner) record. The store is the sole
	// arbiter of code uniqueness; a collision surfaces as ErrCodeConflict.
	Insert(ctx context.Context, originalURL string, code Code, owner uuid.UUID) error

	// Lookup returns the original URL for a code. A miss returns ErrNotFound,
	// never a plain error.
	Lookup(ctx context.Context, code Code) (string, error)

	// DeleteAll removes every record. Administrative use only.
	DeleteAll(ctx context.Context) error
}

// UserRepository resolves account identities for token minting.
type UserRepository interface {
	UserIDByUsername(ctx context.Context, username string) (uuid.UUID, error)
}
