// Package testutil provides shared test helpers: an isolated, migrated database and catalog fixtures.
package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/procure/internal/model"
	"github.com/Veraticus/procure/internal/storage"
)

// TestDB represents a test database with associated test utilities.
type TestDB struct {
	Storage *storage.SQLiteStorage
	t       *testing.T
}

// TestDBOptions provides configuration options for test database setup.
type TestDBOptions struct {
	CustomSetup    func(context.Context, *storage.SQLiteStorage) error
	Session        *model.Session
	Submissions    []model.Submission
	SkipMigrations bool
}

// SetupTestDB creates a new in-memory, migrated test database closed on cleanup.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()
	return SetupTestDBWithOptions(t, TestDBOptions{})
}

// SetupTestDBWithOptions creates a test database with custom options.
//
// Example:
//
//	db := testutil.SetupTestDBWithOptions(t, testutil.TestDBOptions{
//		Session: &model.Session{Token: "tok", Username: "kim"},
//	})
func SetupTestDBWithOptions(t *testing.T, opts TestDBOptions) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})

	ctx := context.Background()

	if !opts.SkipMigrations {
		if err := store.Migrate(ctx); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}
	}

	if opts.Session != nil {
		if err := store.SaveSession(ctx, *opts.Session); err != nil {
			t.Fatalf("failed to seed session: %v", err)
		}
	}

	for i := range opts.Submissions {
		if err := store.SaveSubmission(ctx, &opts.Submissions[i]); err != nil {
			t.Fatalf("failed to seed submission %q: %v", opts.Submissions[i].ID, err)
		}
	}

	if opts.CustomSetup != nil {
		if err := opts.CustomSetup(ctx, store); err != nil {
			t.Fatalf("custom setup failed: %v", err)
		}
	}

	return &TestDB{
		Storage: store,
		t:       t,
	}
}

// MustLoadSession returns the stored session or fails the test.
func (db *TestDB) MustLoadSession() model.Session {
	db.t.Helper()
	session, err := db.Storage.LoadSession(context.Background())
	if err != nil {
		db.t.Fatalf("failed to load session: %v", err)
	}
	return session
}
