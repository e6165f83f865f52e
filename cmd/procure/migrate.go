package main

import (
	"fmt"
	"log/slog"

	"github.com/Veraticus/procure/internal/cli"
	"github.com/Veraticus/procure/internal/storage"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long: `Initialize or update the local database schema to the latest version.

The database keeps the signed-in session and the cart submission history.`,
		RunE: runMigrate,
	}

	cmd.Flags().Bool("status", false, "Show current migration status without applying changes")

	return cmd
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	status, _ := cmd.Flags().GetBool("status")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	slog.Info("Starting database migration",
		"database", cfg.DatabasePath,
		"status_only", status)

	store, err := storage.NewSQLiteStorage(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	current, err := store.SchemaVersion(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if status {
		_, _ = fmt.Fprintf(out, "%s\n  database: %s\n  current:  %d\n  latest:   %d\n",
			cli.FormatTitle("Database migration status"),
			cfg.DatabasePath, current, storage.ExpectedSchemaVersion)
		if current < storage.ExpectedSchemaVersion {
			_, _ = fmt.Fprintln(out, cli.FormatWarning("Pending migrations: run 'procure migrate'"))
		}
		return nil
	}

	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	_, _ = fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf(
		"Database at schema version %d (was %d)", storage.ExpectedSchemaVersion, current)))
	return nil
}
