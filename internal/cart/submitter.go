// Package cart turns a catalog selection into a cart-add request and records the outcome.
package cart

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/Veraticus/procure/internal/common"
	"github.com/Veraticus/procure/internal/model"
	"github.com/Veraticus/procure/internal/service"
	"github.com/google/uuid"
)

// Message shown when the backend refuses or cannot be reached.
const failureMessage = "Could not add the selected items to the cart"

// Submitter posts cart lines through a service.CatalogAPI. At most one submission runs at a time.
type Submitter struct {
	api      service.CatalogAPI
	history  service.SubmissionStore
	now      func() time.Time
	newID    func() string
	owner    string
	inFlight atomic.Bool
}

// Option configures a Submitter.
type Option func(*Submitter)

// WithHistory records every attempt in store.
func WithHistory(store service.SubmissionStore) Option {
	return func(s *Submitter) {
		s.history = store
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Submitter) {
		s.now = now
	}
}

// WithIDGenerator overrides how submission ids and idempotency keys are made.
func WithIDGenerator(newID func() string) Option {
	return func(s *Submitter) {
		s.newID = newID
	}
}

// NewSubmitter creates a submitter posting on behalf of owner.
func NewSubmitter(api service.CatalogAPI, owner string, opts ...Option) *Submitter {
	s := &Submitter{
		api:   api,
		owner: owner,
		now:   time.Now,
		newID: func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// InFlight reports whether a submission is outstanding.
func (s *Submitter) InFlight() bool {
	return s.inFlight.Load()
}

// Submit posts lines to the cart endpoint. It fails with ErrEmptyCart for an empty selection
// and ErrSubmitInFlight while another submission is outstanding. Backend failures come back
// as a common.UserError.
func (s *Submitter) Submit(ctx context.Context, lines []model.CartLine) (*model.Submission, error) {
	if len(lines) == 0 {
		return nil, common.NewUserError("Select at least one item first", common.ErrEmptyCart)
	}

	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, common.ErrSubmitInFlight
	}
	defer s.inFlight.Store(false)

	submission := &model.Submission{
		ID:             s.newID(),
		IdempotencyKey: s.newID(),
		Owner:          s.owner,
		SubmittedAt:    s.now().UTC(),
		Lines:          append([]model.CartLine(nil), lines...),
		Status:         model.SubmissionSucceeded,
	}

	err := s.api.AddToCart(ctx, submission.Lines, submission.IdempotencyKey)
	if err != nil {
		slog.Error("Cart submission failed",
			"submission_id", submission.ID,
			"lines", len(submission.Lines),
			"error", err)
		submission.Status = model.SubmissionFailed
		submission.Error = err.Error()
	} else {
		slog.Info("Cart submission accepted",
			"submission_id", submission.ID,
			"lines", len(submission.Lines),
			"quantity", submission.TotalQuantity())
	}

	s.record(ctx, submission)

	if err != nil {
		return nil, common.NewUserError(failureMessage, fmt.Errorf("submission %s: %w", submission.ID, err))
	}
	return submission, nil
}

// record saves the attempt. History is best effort and never fails the submission.
func (s *Submitter) record(ctx context.Context, submission *model.Submission) {
	if s.history == nil {
		return
	}
	if err := s.history.SaveSubmission(context.WithoutCancel(ctx), submission); err != nil {
		slog.Warn("Failed to record cart submission",
			"submission_id", submission.ID,
			"error", err)
	}
}
