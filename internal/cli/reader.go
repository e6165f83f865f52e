package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

// ErrInputCancelled is returned when input is canceled by context.
var ErrInputCancelled = errors.New("input canceled")

// NonBlockingReader provides context-aware input reading that can be interrupted.
type NonBlockingReader struct {
	reader      *bufio.Reader
	readingLock sync.Mutex
}

// NewNonBlockingReader creates a new non-blocking reader.
func NewNonBlockingReader(reader io.Reader) *NonBlockingReader {
	if reader == nil {
		panic("reader cannot be nil")
	}

	return &NonBlockingReader{
		reader: bufio.NewReader(reader),
	}
}

// ReadString reads a string until delim, respecting context cancellation.
func (r *NonBlockingReader) ReadString(ctx context.Context, delim byte) (string, error) {
	type result struct {
		err   error
		value string
	}
	resultCh := make(chan result, 1)

	go func() {
		r.readingLock.Lock()
		defer r.readingLock.Unlock()

		value, err := r.reader.ReadString(delim)
		resultCh <- result{value: value, err: err}
	}()

	// The read goroutine outlives a canceled context; its result is dropped.
	select {
	case <-ctx.Done():
		return "", ErrInputCancelled
	case res := <-resultCh:
		return res.value, res.err
	}
}

// ReadLine reads a line, respecting context cancellation. A final line without a newline is returned as is.
func (r *NonBlockingReader) ReadLine(ctx context.Context) (string, error) {
	line, err := r.ReadString(ctx, '\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Prompt writes label to w and reads the answer. An empty answer is an error when required.
func (r *NonBlockingReader) Prompt(ctx context.Context, w io.Writer, label string, required bool) (string, error) {
	if _, err := fmt.Fprint(w, FormatPrompt(label)); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}

	answer, err := r.ReadLine(ctx)
	if err != nil {
		return "", err
	}
	if required && answer == "" {
		return "", fmt.Errorf("%s is required", strings.ToLower(label))
	}
	return answer, nil
}
