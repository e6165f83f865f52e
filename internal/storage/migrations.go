package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application expects.
// If the database cannot be migrated to this version, it's a fatal error.
const ExpectedSchemaVersion = 2

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Session and cart submission history",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS sessions (
					id INTEGER PRIMARY KEY CHECK (id = 1),
					token TEXT NOT NULL,
					username TEXT NOT NULL DEFAULT '',
					alias TEXT NOT NULL DEFAULT '',
					signed_in_at DATETIME NOT NULL
				)`,

				`CREATE TABLE IF NOT EXISTS cart_submissions (
					id TEXT PRIMARY KEY,
					idempotency_key TEXT NOT NULL,
					submitted_at DATETIME NOT NULL,
					status TEXT NOT NULL,
					error TEXT NOT NULL DEFAULT '',
					lines TEXT NOT NULL
				)`,
				`CREATE INDEX idx_cart_submissions_submitted_at ON cart_submissions(submitted_at)`,
			}

			return execAll(tx, queries)
		},
	},
	{
		Version:     2,
		Description: "Record submission owner",
		Up: func(tx *sql.Tx) error {
			return execAll(tx, []string{
				`ALTER TABLE cart_submissions ADD COLUMN owner TEXT NOT NULL DEFAULT ''`,
				`CREATE INDEX idx_cart_submissions_owner ON cart_submissions(owner)`,
			})
		},
	},
}

func execAll(tx *sql.Tx, queries []string) error {
	for _, query := range queries {
		if _, err := tx.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}
	return nil
}

// SchemaVersion reports the version recorded in the database.
func (s *SQLiteStorage) SchemaVersion(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to get schema version: %w", err)
	}
	return version, nil
}

// Migrate applies all pending database migrations.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	currentVersion, err := s.SchemaVersion(ctx)
	if err != nil {
		return err
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	finalVersion, err := s.SchemaVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}

	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}
