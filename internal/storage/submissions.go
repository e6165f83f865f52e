package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Veraticus/procure/internal/model"
	"github.com/Veraticus/procure/internal/service"
)

// SaveSubmission records a cart submission. Saving the same id twice updates the record.
func (s *SQLiteStorage) SaveSubmission(ctx context.Context, submission *model.Submission) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateSubmission(submission); err != nil {
		return err
	}

	lines, err := json.Marshal(submission.Lines)
	if err != nil {
		return fmt.Errorf("failed to encode cart lines: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO cart_submissions (id, idempotency_key, owner, submitted_at, status, error, lines)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			status = excluded.status,
			error = excluded.error
	`, submission.ID, submission.IdempotencyKey, submission.Owner, submission.SubmittedAt.UTC(),
		string(submission.Status), submission.Error, string(lines))
	if err != nil {
		return fmt.Errorf("failed to save submission: %w", err)
	}

	return nil
}

// ListSubmissions returns submissions newest first.
func (s *SQLiteStorage) ListSubmissions(ctx context.Context, filter service.SubmissionFilter) ([]model.Submission, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return s.listSubmissions(ctx, s.db, filter)
}

func (s *SQLiteStorage) listSubmissions(ctx context.Context, q queryable, filter service.SubmissionFilter) ([]model.Submission, error) {
	query := strings.Builder{}
	query.WriteString(`
		SELECT id, idempotency_key, owner, submitted_at, status, error, lines
		FROM cart_submissions
		WHERE 1 = 1`)

	var args []any
	if filter.Since != nil {
		query.WriteString(` AND submitted_at >= ?`)
		args = append(args, filter.Since.UTC())
	}
	if filter.Owner != "" {
		query.WriteString(` AND owner = ?`)
		args = append(args, filter.Owner)
	}
	query.WriteString(` ORDER BY submitted_at DESC, id`)

	if filter.Limit > 0 {
		query.WriteString(` LIMIT ? OFFSET ?`)
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := q.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query submissions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var submissions []model.Submission
	for rows.Next() {
		var (
			sub    model.Submission
			status string
			lines  string
		)
		if err := rows.Scan(&sub.ID, &sub.IdempotencyKey, &sub.Owner, &sub.SubmittedAt, &status, &sub.Error, &lines); err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		sub.Status = model.SubmissionStatus(status)
		if err := json.Unmarshal([]byte(lines), &sub.Lines); err != nil {
			return nil, fmt.Errorf("failed to decode lines of submission %s: %w", sub.ID, err)
		}
		submissions = append(submissions, sub)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating submissions: %w", err)
	}

	return submissions, nil
}
