package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/wesworld/site/internal/logging"
	"github.com/wesworld/site/internal/repository"
)

const (
	dropAllFile      = "000_drop_all.sql"
	consolidatedFile = "000_consolidated.sql"
	upSuffix         = ".up.sql"
)

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: migrate [command]

Moves the contact message store (STORE_DRIVER=postgres) to the latest schema.

Commands:
  (default)   apply pending migrations
  reset       drop all tables, then recreate them from the consolidated schema
  fresh       drop all tables, then apply every migration in order`)
	os.Exit(2)
}

func main() {
	_ = godotenv.Load()
	logging.Setup(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))

	cmd := ""
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}
	if cmd != "" && cmd != "reset" && cmd != "fresh" {
		usage()
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logging.Fatal("DATABASE_URL is required")
	}

	ctx := context.Background()
	pool, err := repository.NewPool(ctx, dbURL)
	if err != nil {
		logging.Fatal("connect failed", "error", err)
	}
	defer pool.Close()

	dir, err := findMigrationDir("migrations", "../migrations")
	if err != nil {
		logging.Fatal("migrations directory not found", "error", err)
	}

	switch cmd {
	case "":
		err = runIncremental(ctx, pool, dir)
	case "reset":
		if err = runSQLFile(ctx, pool, dir, dropAllFile); err == nil {
			err = runConsolidated(ctx, pool, dir)
		}
	case "fresh":
		if err = runSQLFile(ctx, pool, dir, dropAllFile); err == nil {
			err = runIncremental(ctx, pool, dir)
		}
	}
	if err != nil {
		logging.Fatal("migrate failed", "command", cmd, "error", err)
	}
}

// findMigrationDir returns the first candidate that is a directory.
func findMigrationDir(candidates ...string) (string, error) {
	for _, dir := range candidates {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir, nil
		}
	}
	return "", fmt.Errorf("none of %v exists", candidates)
}

// collectUpFiles returns the migration names (without suffix) in apply order.
func collectUpFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), upSuffix) {
			names = append(names, strings.TrimSuffix(e.Name(), upSuffix))
		}
	}
	sort.Strings(names)
	return names, nil
}

func ensureSchemaMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		name TEXT PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`)
	return err
}

func runIncremental(ctx context.Context, pool *pgxpool.Pool, dir string) error {
	if err := ensureSchemaMigrations(ctx, pool); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}
	names, err := collectUpFiles(dir)
	if err != nil {
		return err
	}

	applied := 0
	for _, name := range names {
		var exists bool
		if err := pool.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE name=$1)", name).Scan(&exists); err != nil {
			return fmt.Errorf("check %s: %w", name, err)
		}
		if exists {
			continue
		}
		if err := applyMigration(ctx, pool, dir, name); err != nil {
			return err
		}
		applied++
		slog.Info("migration applied", "migration", name)
	}

	if applied == 0 {
		slog.Info("all migrations already applied")
	} else {
		slog.Info("migrations completed", "count", applied)
	}
	return nil
}

// applyMigration runs one migration and records it in a single transaction.
func applyMigration(ctx context.Context, pool *pgxpool.Pool, dir, name string) error {
	sql, err := os.ReadFile(filepath.Join(dir, name+upSuffix))
	if err != nil {
		return err
	}
	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, string(sql)); err != nil {
		return fmt.Errorf("migration %s: %w", name, err)
	}
	if _, err := tx.Exec(ctx, "INSERT INTO schema_migrations (name) VALUES ($1)", name); err != nil {
		return fmt.Errorf("record %s: %w", name, err)
	}
	return tx.Commit(ctx)
}

func runSQLFile(ctx context.Context, pool *pgxpool.Pool, dir, file string) error {
	slog.Info("running", "file", file)
	sql, err := os.ReadFile(filepath.Join(dir, file))
	if err != nil {
		return err
	}
	if _, err := pool.Exec(ctx, string(sql)); err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}
	return nil
}

// runConsolidated creates the schema in one step and marks every migration
// as applied.
func runConsolidated(ctx context.Context, pool *pgxpool.Pool, dir string) error {
	if err := runSQLFile(ctx, pool, dir, consolidatedFile); err != nil {
		return err
	}
	if err := ensureSchemaMigrations(ctx, pool); err != nil {
		return err
	}
	names, err := collectUpFiles(dir)
	if err != nil {
		return err
	}
	var errs []error
	for _, name := range names {
		if _, err := pool.Exec(ctx, "INSERT INTO schema_migrations (name) VALUES ($1) ON CONFLICT DO NOTHING", name); err != nil {
			errs = append(errs, fmt.Errorf("mark %s: %w", name, err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}
	slog.Info("consolidated schema applied", "migrations_marked", len(names))
	return nil
}
