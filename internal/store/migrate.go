package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// CreateDatabase connects to the maintenance database and creates the target
// database when it does not exist yet.
func CreateDatabase(ctx context.Context, adminDSN, name string, logger *zap.Logger) error {
	conn, err := pgx.Connect(ctx, adminDSN)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer conn.Close(ctx)

	var count int64

	err = conn.QueryRow(ctx, `SELECT count(*) FROM pg_database WHERE datname = $1`, name).Scan(&count)
	if err != nil {
		return fmt.Errorf("check database existence: %w", err)
	}

	if count > 0 {
		logger.Info("database already exists", zap.String("name", name))

		return nil
	}

	// Identifiers cannot be bound as parameters.
	if _, err := conn.Exec(ctx, fmt.Sprintf(`CREATE DATABASE %q`, name)); err != nil {
		return fmt.Errorf("create database %s: %w", name, err)
	}

	logger.Info("database created", zap.String("name", name))

	return nil
}

// ApplyMigrations applies every .sql file in dir, in filename order, statement
// by statement. Files are expected to be idempotent.
func ApplyMigrations(ctx context.Context, dsn, dir string, logger *zap.Logger) error {
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer conn.Close(ctx)

	paths, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}

	sort.Strings(paths)

	for _, path := range paths {
		contents, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", path, err)
		}

		for _, statement := range splitStatements(string(contents)) {
			if _, err := conn.Exec(ctx, statement); err != nil {
				return fmt.Errorf("apply %s: %w", filepath.Base(path), err)
			}
		}

		logger.Info("migration applied", zap.String("file", filepath.Base(path)))
	}

	return nil
}

func splitStatements(sql string) []string {
	var statements []string

	for _, statement := range strings.Split(sql, ";") {
		statement = strings.TrimSpace(statement)
		if statement == "" || strings.HasPrefix(statement, "--") {
			continue
		}

		statements = append(statements, statement)
	}

	return statements
}
