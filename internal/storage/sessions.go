package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/procure/internal/common"
	"github.com/Veraticus/procure/internal/model"
)

// LoadSession returns the stored session, or common.ErrUnauthenticated when nobody is signed in.
func (s *SQLiteStorage) LoadSession(ctx context.Context) (model.Session, error) {
	if err := validateContext(ctx); err != nil {
		return model.Session{}, err
	}

	var session model.Session
	err := s.db.QueryRowContext(ctx, `
		SELECT token, username, alias, signed_in_at
		FROM sessions
		WHERE id = 1
	`).Scan(
		&session.Token,
		&session.Username,
		&session.Alias,
		&session.SignedInAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return model.Session{}, common.ErrUnauthenticated
	}
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to load session: %w", err)
	}

	return session, nil
}

// SaveSession replaces the stored session.
func (s *SQLiteStorage) SaveSession(ctx context.Context, session model.Session) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateSession(session); err != nil {
		return err
	}

	if session.SignedInAt.IsZero() {
		session.SignedInAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, token, username, alias, signed_in_at)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			token = excluded.token,
			username = excluded.username,
			alias = excluded.alias,
			signed_in_at = excluded.signed_in_at
	`, session.Token, session.Username, session.Alias, session.SignedInAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// ClearSession removes the stored session. Clearing an empty store is not an error.
func (s *SQLiteStorage) ClearSession(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions`); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
