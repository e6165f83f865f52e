package model

import "time"

// SubmissionStatus records how a cart submission ended.
type SubmissionStatus string

// Submission statuses.
const (
	SubmissionSucceeded SubmissionStatus = "succeeded"
	SubmissionFailed    SubmissionStatus = "failed"
)

// Submission is one cart-add attempt as kept in the local history.
type Submission struct {
	SubmittedAt    time.Time
	ID             string
	IdempotencyKey string
	Owner          string
	Status         SubmissionStatus
	Error          string
	Lines          []CartLine
}

// TotalQuantity sums the quantities of all lines.
func (s Submission) TotalQuantity() int {
	total := 0
	for _, line := range s.Lines {
		total += line.Quantity
	}
	return total
}
