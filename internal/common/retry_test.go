package common

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Veraticus/procure/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithRetry(t *testing.T) {
	fast := service.RetryOptions{MaxAttempts: 3, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond}

	t.Run("single attempt returns the error unchanged", func(t *testing.T) {
		calls := 0
		sentinel := &StatusError{Err: ErrCatalogUnavailable, StatusCode: 503}
		err := WithRetry(context.Background(), func() error {
			calls++
			return sentinel
		}, service.RetryOptions{MaxAttempts: 1})

		assert.Equal(t, 1, calls)
		assert.Same(t, sentinel, err)
	})

	t.Run("retries server errors until success", func(t *testing.T) {
		calls := 0
		err := WithRetry(context.Background(), func() error {
			calls++
			if calls < 3 {
				return &StatusError{Err: ErrCatalogUnavailable, StatusCode: 502}
			}
			return nil
		}, fast)

		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("does not retry client errors", func(t *testing.T) {
		calls := 0
		err := WithRetry(context.Background(), func() error {
			calls++
			return &StatusError{Err: ErrCatalogUnavailable, StatusCode: 400}
		}, fast)

		require.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("gives up after max attempts", func(t *testing.T) {
		calls := 0
		err := WithRetry(context.Background(), func() error {
			calls++
			return &RetryableError{Err: errors.New("flaky"), Retryable: true}
		}, fast)

		require.ErrorIs(t, err, ErrMaxRetries)
		assert.Equal(t, 3, calls)
	})

	t.Run("stops when context is canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := WithRetry(ctx, func() error {
			return &RetryableError{Err: errors.New("flaky"), Retryable: true}
		}, service.RetryOptions{MaxAttempts: 3, InitialDelay: time.Hour, MaxDelay: time.Hour})

		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		err  error
		name string
		want bool
	}{
		{name: "server error", err: &StatusError{Err: ErrCatalogUnavailable, StatusCode: 500}, want: true},
		{name: "too many requests", err: &StatusError{Err: ErrCatalogUnavailable, StatusCode: 429}, want: true},
		{name: "not found", err: &StatusError{Err: ErrCatalogUnavailable, StatusCode: 404}, want: false},
		{name: "unauthenticated", err: fmt.Errorf("fetch: %w", ErrUnauthenticated), want: false},
		{name: "deadline", err: context.DeadlineExceeded, want: true},
		{name: "canceled", err: context.Canceled, want: false},
		{name: "plain error", err: errors.New("boom"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryable(tt.err))
		})
	}
}

func TestUserError(t *testing.T) {
	inner := fmt.Errorf("post: %w", ErrCartRejected)
	err := NewUserError("Could not add items to the cart", inner)

	assert.Equal(t, "Could not add items to the cart", UserMessage(err))
	assert.ErrorIs(t, err, ErrCartRejected)
	assert.Contains(t, err.Error(), "cart request rejected")

	wrapped := fmt.Errorf("submit: %w", err)
	assert.Equal(t, "Could not add items to the cart", UserMessage(wrapped))
	assert.Equal(t, "boom", UserMessage(errors.New("boom")))
	assert.Empty(t, UserMessage(nil))
}

func TestStatusError(t *testing.T) {
	err := &StatusError{Err: ErrCartRejected, StatusCode: 500, Body: "down"}
	assert.Equal(t, "cart request rejected: 500 - down", err.Error())
	assert.ErrorIs(t, err, ErrCartRejected)

	err = &StatusError{Err: ErrCartRejected, StatusCode: 502}
	assert.Equal(t, "cart request rejected: 502", err.Error())
}
