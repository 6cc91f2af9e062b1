package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rapid-url/rapid-url/internal/container"
	"github.com/rapid-url/rapid-url/internal/store"
	"github.com/rapid-url/rapid-url/internal/token"
	"github.com/samber/do"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func registerPackages(injector *do.Injector, options *container.Options) {
	do.ProvideValue(injector, options)
	container.LoggerPackage(injector)
	container.RedisPackage(injector)
	container.PostgresPackage(injector)
	container.TokenPackage(injector)
	container.RepositoryPackage(injector)
	container.RateLimitPackage(injector)
	container.HTTPPackage(injector)
}

func main() {
	var injector *do.Injector

	cli := humacli.New(func(hooks humacli.Hooks, options *container.Options) {
		injector = do.New()
		registerPackages(injector, options)

		logger := do.MustInvoke[*zap.Logger](injector)

		var server *http.Server

		hooks.OnStart(func() {
			router := do.MustInvoke[*chi.Mux](injector)

			// Invoke API to trigger route registration
			_ = do.MustInvoke[huma.API](injector)

			server = &http.Server{
				Addr:              fmt.Sprintf("%s:%d", options.Host, options.Port),
				Handler:           router,
				ReadHeaderTimeout: 10 * time.Second,
			}

			logger.Info("server starting",
				zap.String("host", options.Host),
				zap.Int("port", options.Port),
			)

			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Fatal("server failed", zap.Error(err))
			}
		})

		hooks.OnStop(func() {
			logger.Info("shutting down")

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if server != nil {
				if err := server.Shutdown(ctx); err != nil {
					logger.Error("server shutdown error", zap.Error(err))
				}
			}

			do.MustInvoke[*pgxpool.Pool](injector).Close()

			if err := injector.Shutdown(); err != nil {
				logger.Error("service shutdown error", zap.Error(err))
			}

			logger.Info("shutdown complete")
		})
	})

	cli.Root().Use = "rapid-url"
	cli.Root().AddCommand(migrateCommand(), generateTokenCommand())

	cli.Run()
}

// migrateCommand provisions the database and applies the schema files.
func migrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Provision the database and apply schema migrations",
		Run: humacli.WithOptions(func(cmd *cobra.Command, _ []string, options *container.Options) {
			logger, _ := zap.NewDevelopment()
			ctx := cmd.Context()

			if err := store.CreateDatabase(ctx, options.AdminDSN(), options.DBName, logger); err != nil {
				logger.Fatal("database creation failed", zap.Error(err))
			}

			if err := store.ApplyMigrations(ctx, options.DSN(), options.MigrationsDir, logger); err != nil {
				logger.Fatal("migration failed", zap.Error(err))
			}
		}),
	}
}

// generateTokenCommand mints a bearer token for a named user and prints it to
// standard error.
func generateTokenCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "generate-token <username>",
		Aliases: []string{"generate_token"},
		Short:   "Mint a bearer token for an existing user",
		Args:    cobra.ExactArgs(1),
		Run: humacli.WithOptions(func(cmd *cobra.Command, args []string, options *container.Options) {
			logger, _ := zap.NewDevelopment()
			ctx := cmd.Context()
			username := args[0]

			if options.JWTSecret == "" {
				logger.Fatal("jwt secret must be configured")
			}

			pool, err := pgxpool.New(ctx, options.DSN())
			if err != nil {
				logger.Fatal("database connection failed", zap.Error(err))
			}
			defer pool.Close()

			userID, err := store.NewPostgresStore(pool).UserIDByUsername(ctx, username)
			if err != nil {
				logger.Fatal("user lookup failed",
					zap.String("username", username),
					zap.Error(err),
				)
			}

			codec := token.NewCodec([]byte(options.JWTSecret), options.JWTExpiryHours)

			bearer, err := codec.Issue(userID)
			if err != nil {
				logger.Fatal("token generation failed", zap.Error(err))
			}

			fmt.Fprintf(os.Stderr, "Token for %s is: %s\n", username, bearer)
		}),
	}
}
