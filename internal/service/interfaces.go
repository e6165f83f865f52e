// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/procure/internal/model"
)

// CatalogAPI is the remote catalog and cart backend.
type CatalogAPI interface {
	// FetchItems returns the catalog with client defaults applied.
	FetchItems(ctx context.Context) ([]model.CatalogItem, error)
	// AddToCart posts cart lines. idempotencyKey may be empty.
	AddToCart(ctx context.Context, lines []model.CartLine, idempotencyKey string) error
}

// CartSubmitter turns a selection into a cart-add request.
type CartSubmitter interface {
	Submit(ctx context.Context, lines []model.CartLine) (*model.Submission, error)
	InFlight() bool
}

// SessionStore persists the signed-in session.
type SessionStore interface {
	LoadSession(ctx context.Context) (model.Session, error)
	SaveSession(ctx context.Context, session model.Session) error
	ClearSession(ctx context.Context) error
}

// SubmissionStore keeps the local history of cart submissions.
type SubmissionStore interface {
	SaveSubmission(ctx context.Context, submission *model.Submission) error
	ListSubmissions(ctx context.Context, filter SubmissionFilter) ([]model.Submission, error)
}

// Storage is the full local persistence layer.
type Storage interface {
	SessionStore
	SubmissionStore

	Migrate(ctx context.Context) error
	Close() error
}

// SubmissionFilter defines filtering options for submission history queries.
type SubmissionFilter struct {
	Since  *time.Time
	Owner  string
	Limit  int
	Offset int
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
