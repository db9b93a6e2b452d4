// Package sqlite stores todos in an embedded SQLite database (pure Go driver).
package sqlite

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/pressly/goose/v3"
	"modernc.org/sqlite"

	"github.com/rezkam/todos/internal/application/todo"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// containsFunc is the SQL function used for search. SQLite's LIKE only folds
// ASCII, so matching goes through Go's Unicode-aware lowercasing instead.
const containsFunc = "todo_contains"

func init() {
	sqlite.MustRegisterDeterministicScalarFunction(containsFunc, 2, containsIgnoreCase)
}

func containsIgnoreCase(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	haystack, _ := args[0].(string)
	needle, _ := args[1].(string)
	if strings.Contains(strings.ToLower(haystack), strings.ToLower(needle)) {
		return int64(1), nil
	}
	return int64(0), nil
}

// Store provides the SQLite implementation of todo.Repository.
type Store struct {
	db *sql.DB
}

// Compile-time verification that Store implements the repository interface.
var _ todo.Repository = (*Store)(nil)

// NewStore opens (or creates) the database at path and applies migrations.
// Use ":memory:" for a throwaway database.
func NewStore(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// A single connection serializes writers and keeps ":memory:" databases
	// from splitting across pool connections.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to configure sqlite: %w", err)
	}

	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	migrations, err := fs.Sub(embedMigrations, "migrations")
	if err != nil {
		return fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	provider, err := goose.NewProvider(goose.DialectSQLite3, db, migrations)
	if err != nil {
		return fmt.Errorf("failed to create migration provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	for _, r := range results {
		slog.DebugContext(ctx, "applied migration", "version", r.Source.Version, "duration", r.Duration)
	}

	return nil
}

// DB returns the underlying database handle.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
