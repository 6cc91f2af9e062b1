package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/rapid-url/rapid-url/internal/token"
)

// AuthMetadataKey marks an operation as requiring a bearer token. Operations
// without it (the redirect path) pass through unauthenticated.
const AuthMetadataKey = "requireAuth"

type subjectKey struct{}

// ContextWithSubject attaches the authenticated subject to the context.
func ContextWithSubject(ctx context.Context, subject uuid.UUID) context.Context {
	return context.WithValue(ctx, subjectKey{}, subject)
}

// SubjectFromContext extracts the authenticated subject placed by the auth
// middleware. The second return reports whether a subject was present.
func SubjectFromContext(ctx context.Context) (uuid.UUID, bool) {
	subject, ok := ctx.Value(subjectKey{}).(uuid.UUID)

	return subject, ok
}

// Auth returns a Huma middleware that gates operations marked with
// AuthMetadataKey. It extracts the Authorization header, verifies the bearer
// token, and attaches the resolved subject to the request context. Failures
// short-circuit before the handler runs.
func Auth(api huma.API, codec *token.Codec) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		if op := ctx.Operation(); op == nil || op.Metadata[AuthMetadataKey] == nil {
			next(ctx)

			return
		}

		header := ctx.Header("Authorization")
		if header == "" {
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, "missing authorization token")

			return
		}

		// The header carries the bare token; a Bearer prefix is tolerated.
		raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))

		subject, err := codec.Verify(raw)
		if err != nil {
			message := "invalid token"
			if errors.Is(err, token.ErrExpired) {
				message = "token expired"
			}

			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, message)

			return
		}

		ctx = huma.WithContext(ctx, ContextWithSubject(ctx.Context(), subject))

		next(ctx)
	}
}
