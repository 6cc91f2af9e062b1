// Package token implements the stateless bearer credential used to gate
// write access. Tokens are HS256-signed JWTs carrying a subject UUID and a
// second-granularity expiry; they are never persisted or revoked.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrExpired is returned when a token's expiry has passed at verification time.
var ErrExpired = errors.New("token expired")

// ErrInvalid is returned for any other parse, signature, or claim failure.
var ErrInvalid = errors.New("invalid token")

// Codec issues and verifies bearer tokens with a shared signing secret.
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// Option configures a Codec.
type Option func(*Codec)

// WithClock overrides the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) {
		c.now = now
	}
}

// NewCodec creates a codec signing with the given secret and issuing tokens
// valid for ttlHours.
func NewCodec(secret []byte, ttlHours int, opts ...Option) *Codec {
	c := &Codec{
		secret: secret,
		ttl:    time.Duration(ttlHours) * time.Hour,
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Issue mints a signed token for the subject, expiring ttlHours from now.
func (c *Codec) Issue(subject uuid.UUID) (string, error) {
	now := c.now()

	claims := jwt.RegisteredClaims{
		Subject:   subject.String(),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Verify checks the signature and expiry and returns the subject UUID.
// Expiry failures yield ErrExpired; everything else yields ErrInvalid.
// No clock skew tolerance is applied.
func (c *Codec) Verify(tokenString string) (uuid.UUID, error) {
	claims := &jwt.RegisteredClaims{}

	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(_ *jwt.Token) (any, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, ErrExpired
		}

		return uuid.Nil, ErrInvalid
	}

	subject, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, ErrInvalid
	}

	return subject, nil
}
