// Package storage provides the local persistence layer: the signed-in session and the cart submission history.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/procure/internal/model"
)

// Validation errors.
var (
	ErrNilContext        = errors.New("context cannot be nil")
	ErrEmptyString       = errors.New("string parameter cannot be empty")
	ErrNilParameter      = errors.New("parameter cannot be nil")
	ErrInvalidSession    = errors.New("invalid session")
	ErrInvalidSubmission = errors.New("invalid submission")
	ErrInvalidStatus     = errors.New("invalid submission status")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

func validateSession(session model.Session) error {
	if !session.IsAuthenticated() {
		return fmt.Errorf("%w: missing token", ErrInvalidSession)
	}
	return nil
}

// validateSubmission validates a cart submission before it is recorded.
func validateSubmission(submission *model.Submission) error {
	if submission == nil {
		return fmt.Errorf("%w: submission", ErrNilParameter)
	}
	if strings.TrimSpace(submission.ID) == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidSubmission)
	}
	if submission.SubmittedAt.IsZero() {
		return fmt.Errorf("%w: missing submission time", ErrInvalidSubmission)
	}
	if len(submission.Lines) == 0 {
		return fmt.Errorf("%w: no cart lines", ErrInvalidSubmission)
	}

	switch submission.Status {
	case model.SubmissionSucceeded, model.SubmissionFailed:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidStatus, submission.Status)
	}

	for i, line := range submission.Lines {
		if strings.TrimSpace(line.ItemsID) == "" {
			return fmt.Errorf("%w: line %d has no item id", ErrInvalidSubmission, i)
		}
		if line.Quantity < 1 {
			return fmt.Errorf("%w: line %d has quantity %d", ErrInvalidSubmission, i, line.Quantity)
		}
	}
	return nil
}
