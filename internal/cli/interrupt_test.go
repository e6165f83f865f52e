package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer provides thread-safe access to a bytes.Buffer.
type syncBuffer struct {
	buf bytes.Buffer
	mu  sync.Mutex
}

func (s *syncBuffer) Write(p []byte) (n int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

func TestNewInterruptHandler(t *testing.T) {
	tests := []struct {
		writer io.Writer
		name   string
	}{
		{
			name:   "with custom writer",
			writer: &bytes.Buffer{},
		},
		{
			name:   "with nil writer",
			writer: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewInterruptHandler(tt.writer)
			assert.NotNil(t, handler)
			assert.NotNil(t, handler.writer)
			assert.False(t, handler.WasInterrupted())
		})
	}
}

func TestHandleInterrupts_Interrupt(t *testing.T) {
	output := &syncBuffer{}
	handler := NewInterruptHandler(output)

	parent, cancelParent := context.WithCancel(context.Background())
	defer cancelParent()
	ctx := handler.HandleInterrupts(parent, "Cart submission", "Run `procure cart history` to see whether it reached the server.")

	require.NoError(t, ctx.Err())

	handler.interrupt()

	<-ctx.Done()
	assert.True(t, handler.WasInterrupted())

	out := output.String()
	assert.Contains(t, out, "Cart submission interrupted")
	assert.Contains(t, out, "procure cart history")
}

func TestHandleInterrupts_OnlyOnce(t *testing.T) {
	output := &syncBuffer{}
	handler := NewInterruptHandler(output)
	ctx := handler.HandleInterrupts(context.Background(), "Catalog fetch", "")

	handler.interrupt()
	handler.interrupt()
	<-ctx.Done()

	assert.Equal(t, 1, strings.Count(output.String(), "interrupted"))
}

func TestHandleInterrupts_ParentCancel(t *testing.T) {
	output := &syncBuffer{}
	handler := NewInterruptHandler(output)

	parent, cancelParent := context.WithCancel(context.Background())
	ctx := handler.HandleInterrupts(parent, "Catalog fetch", "")
	cancelParent()
	<-ctx.Done()

	assert.False(t, handler.WasInterrupted())
	assert.Empty(t, output.String())
}
