package shortener

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxInsertAttempts bounds the generate+insert retry loop on code collisions.
const maxInsertAttempts = 3

// Service orchestrates code generation, persistence, and lookup.
type Service struct {
	repo         Repository
	generateCode CodeGenerator
	domain       string
	logger       *zap.Logger
}

// NewService creates a new shortening service. The domain is the public host
// used to compose shortened addresses.
func NewService(repo Repository, generator CodeGenerator, domain string, logger *zap.Logger) *Service {
	return &Service{
		repo:         repo,
		generateCode: generator,
		domain:       domain,
		logger:       logger,
	}
}

// Shorten creates a mapping owned by the authenticated subject and returns the
// public shortened address. The original URL is stored as-is; no format
// validation or deduplication is performed.
func (s *Service) Shorten(ctx context.Context, owner uuid.UUID, originalURL string) (string, error) {
	for attempt := 1; attempt <= maxInsertAttempts; attempt++ {
		code := s.generateCode()

		err := s.repo.Insert(ctx, originalURL, code, owner)
		if err == nil {
			return fmt.Sprintf("https://%s/%s", s.domain, code), nil
		}

		if !errors.Is(err, ErrCodeConflict) {
			return "", fmt.Errorf("insert short url: %w", err)
		}

		s.logger.Warn("short code collision, retrying",
			zap.String("code", string(code)),
			zap.Int("attempt", attempt),
		)
	}

	return "", fmt.Errorf("gave up after %d colliding inserts: %w", maxInsertAttempts, ErrCodeConflict)
}

// Resolve returns the original URL for a code. A miss yields ErrNotFound.
func (s *Service) Resolve(ctx context.Context, code Code) (string, error) {
	originalURL, err := s.repo.Lookup(ctx, code)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", ErrNotFound
		}

		return "", fmt.Errorf("lookup short url: %w", err)
	}

	return originalURL, nil
}
