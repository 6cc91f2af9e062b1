package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rapid-url/rapid-url/internal/shortener"
)

// uniqueViolation is the SQLSTATE for a unique constraint violation.
const uniqueViolation = "23505"

// PostgresStore is a PostgreSQL implementation of shortener.Repository.
// Every operation is a single auto-committed statement.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL-backed URL store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (p *PostgresStore) Insert(ctx context.Context, originalURL string, code shortener.Code, owner uuid.UUID) error {
	query := `
		INSERT INTO short_url (original_url, short_url, created_on, user_id)
		VALUES ($1, $2, $3, $4)
	`

	_, err := p.pool.Exec(ctx, query,
		originalURL,
		string(code),
		time.Now().UTC(),
		owner,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return shortener.ErrCodeConflict
		}

		return fmt.Errorf("insert short url: %w", err)
	}

	return nil
}

func (p *PostgresStore) Lookup(ctx context.Context, code shortener.Code) (string, error) {
	query := `
		SELECT original_url
		FROM short_url
		WHERE short_url = $1
	`

	var originalURL string

	err := p.pool.QueryRow(ctx, query, string(code)).Scan(&originalURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", shortener.ErrNotFound
		}

		return "", fmt.Errorf("lookup short url: %w", err)
	}

	return originalURL, nil
}

func (p *PostgresStore) DeleteAll(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, `DELETE FROM short_url`); err != nil {
		return fmt.Errorf("delete short urls: %w", err)
	}

	return nil
}

// UserIDByUsername resolves an account id for token minting. A missing user
// surfaces as shortener.ErrNotFound.
func (p *PostgresStore) UserIDByUsername(ctx context.Context, username string) (uuid.UUID, error) {
	query := `
		SELECT id
		FROM user_account
		WHERE username = $1
	`

	var id uuid.UUID

	err := p.pool.QueryRow(ctx, query, username).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, shortener.ErrNotFound
		}

		return uuid.Nil, fmt.Errorf("lookup user: %w", err)
	}

	return id, nil
}

// Compile-time checks.
var (
	_ shortener.Repository     = (*PostgresStore)(nil)
	_ shortener.UserRepository = (*PostgresStore)(nil)
)
