// Package container wires the application dependencies through samber/do.
// Each *Package function registers one concern; main composes them.
package container

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor" // CBOR format support for huma
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rapid-url/rapid-url/internal/handlers"
	"github.com/rapid-url/rapid-url/internal/health"
	"github.com/rapid-url/rapid-url/internal/middleware"
	"github.com/rapid-url/rapid-url/internal/ratelimit"
	"github.com/rapid-url/rapid-url/internal/shortener"
	"github.com/rapid-url/rapid-url/internal/store"
	"github.com/rapid-url/rapid-url/internal/token"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"
)

// LoggerPackage provides the process-wide zap logger.
func LoggerPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*zap.Logger, error) {
		options := do.MustInvoke[*Options](i)

		if options.LogFormat == "json" {
			return zap.NewProduction()
		}

		return zap.NewDevelopment()
	})
}

// PostgresPackage provides the connection pool, sized once from configuration.
func PostgresPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*pgxpool.Pool, error) {
		options := do.MustInvoke[*Options](i)

		config, err := pgxpool.ParseConfig(options.DSN())
		if err != nil {
			return nil, fmt.Errorf("parse database config: %w", err)
		}

		config.MaxConns = int32(options.DBMaxConns)
		config.MinConns = int32(options.DBMinConns)
		config.ConnConfig.ConnectTimeout = time.Duration(options.DBConnectTimeout) * time.Second

		return pgxpool.NewWithConfig(context.Background(), config)
	})
}

// RedisPackage provides the Redis client, or nil when caching is not configured.
func RedisPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*redis.Client, error) {
		options := do.MustInvoke[*Options](i)

		if options.RedisAddr == "" {
			return nil, nil
		}

		return redis.NewClient(&redis.Options{Addr: options.RedisAddr}), nil
	})
}

// TokenPackage provides the bearer token codec.
func TokenPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*token.Codec, error) {
		options := do.MustInvoke[*Options](i)

		if options.JWTSecret == "" {
			return nil, errors.New("jwt secret must be configured")
		}

		return token.NewCodec([]byte(options.JWTSecret), options.JWTExpiryHours), nil
	})
}

// RepositoryPackage provides the URL repository, wrapped with the Redis cache
// when one is configured.
func RepositoryPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (shortener.Repository, error) {
		options := do.MustInvoke[*Options](i)
		pool := do.MustInvoke[*pgxpool.Pool](i)

		var repo shortener.Repository = store.NewPostgresStore(pool)

		if client := do.MustInvoke[*redis.Client](i); client != nil {
			ttl := time.Duration(options.CacheTTL) * time.Second
			repo = store.NewRedisCacheStore(repo, client, ttl)
		}

		return repo, nil
	})
}

// RateLimitPackage provides the request limiter, Redis-backed when available.
func RateLimitPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (ratelimit.Limiter, error) {
		var rlStore ratelimit.Store

		if client := do.MustInvoke[*redis.Client](i); client != nil {
			rlStore = store.NewRateLimitRedisStore(client)
		} else {
			rlStore = store.NewRateLimitMemoryStore()
		}

		return ratelimit.NewWindowLimiter(rlStore), nil
	})
}

// HTTPPackage provides the router and the API with middleware and routes wired.
func HTTPPackage(injector *do.Injector) {
	do.Provide(injector, func(_ *do.Injector) (*chi.Mux, error) {
		return chi.NewMux(), nil
	})

	do.Provide(injector, func(i *do.Injector) (huma.API, error) {
		options := do.MustInvoke[*Options](i)
		router := do.MustInvoke[*chi.Mux](i)
		logger := do.MustInvoke[*zap.Logger](i)
		pool := do.MustInvoke[*pgxpool.Pool](i)
		redisClient := do.MustInvoke[*redis.Client](i)
		codec := do.MustInvoke[*token.Codec](i)
		limiter := do.MustInvoke[ratelimit.Limiter](i)
		repo := do.MustInvoke[shortener.Repository](i)

		generator, err := shortener.NewCodeGenerator()
		if err != nil {
			return nil, fmt.Errorf("create code generator: %w", err)
		}

		service := shortener.NewService(repo, generator, options.Domain, logger)

		// Every error, framework-generated or handler-raised, renders in the
		// same envelope shape.
		huma.NewError = handlers.NewErrorEnvelope

		api := humachi.New(router, huma.DefaultConfig("Rapid URL", "1.0.0"))
		api.UseMiddleware(middleware.RateLimiter(api, limiter))
		api.UseMiddleware(middleware.Auth(api, codec))

		handlers.RegisterRoutes(api, handlers.NewURLHandler(service, logger))

		var redisChecker health.Checker
		if redisClient != nil {
			redisChecker = health.NewRedisChecker(redisClient)
		}

		health.RegisterRoutes(api, health.NewHandler(health.NewPostgresChecker(pool), redisChecker))

		return api, nil
	})
}
