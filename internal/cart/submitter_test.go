package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Veraticus/procure/internal/common"
	"github.com/Veraticus/procure/internal/model"
	"github.com/Veraticus/procure/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	err     error
	release chan struct{}
	entered chan struct{}
	keys    []string
	lines   [][]model.CartLine
	mu      sync.Mutex
}

func (f *fakeAPI) FetchItems(context.Context) ([]model.CatalogItem, error) {
	return nil, nil
}

func (f *fakeAPI) AddToCart(_ context.Context, lines []model.CartLine, key string) error {
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.release != nil {
		<-f.release
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.keys = append(f.keys, key)
	f.lines = append(f.lines, lines)
	return f.err
}

type memoryHistory struct {
	err   error
	saved []model.Submission
}

func (m *memoryHistory) SaveSubmission(_ context.Context, s *model.Submission) error {
	if m.err != nil {
		return m.err
	}
	m.saved = append(m.saved, *s)
	return nil
}

func (m *memoryHistory) ListSubmissions(context.Context, service.SubmissionFilter) ([]model.Submission, error) {
	return m.saved, nil
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

var fixedTime = time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)

func TestSubmitSuccess(t *testing.T) {
	api := &fakeAPI{}
	history := &memoryHistory{}
	submitter := NewSubmitter(api, "kim",
		WithHistory(history),
		WithClock(func() time.Time { return fixedTime }),
		WithIDGenerator(sequentialIDs()))

	lines := []model.CartLine{{ItemsID: "i1", Quantity: 3}, {ItemsID: "i4", Quantity: 1}}
	sub, err := submitter.Submit(context.Background(), lines)
	require.NoError(t, err)

	assert.Equal(t, "id-1", sub.ID)
	assert.Equal(t, "id-2", sub.IdempotencyKey)
	assert.Equal(t, "kim", sub.Owner)
	assert.Equal(t, fixedTime, sub.SubmittedAt)
	assert.Equal(t, model.SubmissionSucceeded, sub.Status)
	assert.Equal(t, 4, sub.TotalQuantity())

	require.Len(t, api.lines, 1)
	assert.Equal(t, lines, api.lines[0])
	assert.Equal(t, []string{"id-2"}, api.keys)

	require.Len(t, history.saved, 1)
	assert.Equal(t, *sub, history.saved[0])
	assert.False(t, submitter.InFlight())
}

func TestSubmitEmptySelection(t *testing.T) {
	api := &fakeAPI{}
	history := &memoryHistory{}
	submitter := NewSubmitter(api, "kim", WithHistory(history))

	_, err := submitter.Submit(context.Background(), nil)
	require.ErrorIs(t, err, common.ErrEmptyCart)
	assert.Equal(t, "Select at least one item first", common.UserMessage(err))
	assert.Empty(t, api.lines)
	assert.Empty(t, history.saved)
}

func TestSubmitFailure(t *testing.T) {
	api := &fakeAPI{err: &common.StatusError{Err: common.ErrCartRejected, StatusCode: 500}}
	history := &memoryHistory{}
	submitter := NewSubmitter(api, "kim", WithHistory(history), WithIDGenerator(sequentialIDs()))

	sub, err := submitter.Submit(context.Background(), []model.CartLine{{ItemsID: "i1", Quantity: 1}})
	require.ErrorIs(t, err, common.ErrCartRejected)
	assert.Nil(t, sub)

	var userErr *common.UserError
	require.ErrorAs(t, err, &userErr)
	assert.Equal(t, failureMessage, userErr.UserMessage)

	require.Len(t, history.saved, 1)
	assert.Equal(t, model.SubmissionFailed, history.saved[0].Status)
	assert.Equal(t, "cart request rejected: 500", history.saved[0].Error)
	assert.False(t, submitter.InFlight())
}

func TestSubmitHistoryFailureDoesNotFailSubmission(t *testing.T) {
	submitter := NewSubmitter(&fakeAPI{}, "kim", WithHistory(&memoryHistory{err: errors.New("disk full")}))

	sub, err := submitter.Submit(context.Background(), []model.CartLine{{ItemsID: "i1", Quantity: 2}})
	require.NoError(t, err)
	assert.Equal(t, model.SubmissionSucceeded, sub.Status)
}

func TestSubmitRejectsConcurrentSubmission(t *testing.T) {
	api := &fakeAPI{entered: make(chan struct{}), release: make(chan struct{})}
	submitter := NewSubmitter(api, "kim")
	lines := []model.CartLine{{ItemsID: "i1", Quantity: 1}}

	done := make(chan error, 1)
	go func() {
		_, err := submitter.Submit(context.Background(), lines)
		done <- err
	}()

	<-api.entered
	assert.True(t, submitter.InFlight())

	_, err := submitter.Submit(context.Background(), lines)
	require.ErrorIs(t, err, common.ErrSubmitInFlight)

	close(api.release)
	require.NoError(t, <-done)
	assert.False(t, submitter.InFlight())
	assert.Len(t, api.lines, 1)

	// A new submission is accepted once the first has finished.
	api.entered = nil
	_, err = submitter.Submit(context.Background(), lines)
	require.NoError(t, err)
	assert.Len(t, api.lines, 2)
}

func TestSubmitGeneratesDistinctKeys(t *testing.T) {
	api := &fakeAPI{}
	submitter := NewSubmitter(api, "kim")
	lines := []model.CartLine{{ItemsID: "i1", Quantity: 1}}

	_, err := submitter.Submit(context.Background(), lines)
	require.NoError(t, err)
	_, err = submitter.Submit(context.Background(), lines)
	require.NoError(t, err)

	require.Len(t, api.keys, 2)
	assert.NotEqual(t, api.keys[0], api.keys[1])
	assert.Len(t, api.keys[0], 36)
}
