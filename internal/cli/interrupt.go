package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// InterruptHandler turns SIGINT/SIGTERM into context cancellation and tells the user what was cut short.
type InterruptHandler struct {
	writer      io.Writer
	cancelFunc  context.CancelFunc
	operation   string
	hint        string
	interrupted bool
	mu          sync.Mutex
}

// NewInterruptHandler creates a new interrupt handler.
func NewInterruptHandler(writer io.Writer) *InterruptHandler {
	if writer == nil {
		writer = os.Stdout
	}
	return &InterruptHandler{
		writer: writer,
	}
}

// HandleInterrupts returns a context canceled on the first interrupt. operation names what
// was running and hint, if set, is printed after the notice.
func (h *InterruptHandler) HandleInterrupts(ctx context.Context, operation, hint string) context.Context {
	ctx, cancel := context.WithCancel(ctx)

	h.mu.Lock()
	h.cancelFunc = cancel
	h.operation = operation
	h.hint = hint
	h.mu.Unlock()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigChan)
		select {
		case <-sigChan:
			h.interrupt()
		case <-ctx.Done():
		}
	}()

	return ctx
}

// interrupt records the interruption once and cancels the context.
func (h *InterruptHandler) interrupt() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.interrupted {
		return
	}
	h.interrupted = true
	h.showInterruptMessage()
	if h.cancelFunc != nil {
		h.cancelFunc()
	}
}

// showInterruptMessage displays the interrupt notice. Callers hold mu.
func (h *InterruptHandler) showInterruptMessage() {
	msg := "\n" + FormatWarning(fmt.Sprintf("%s interrupted", h.operation))
	if h.hint != "" {
		msg += "\n" + FormatInfo(h.hint)
	}
	msg += "\n"

	if _, err := fmt.Fprint(h.writer, msg); err != nil {
		// Best effort - we're shutting down anyway
		fmt.Fprintf(os.Stderr, "Failed to write interrupt message: %v\n", err)
	}
}

// WasInterrupted returns true if the process was interrupted.
func (h *InterruptHandler) WasInterrupted() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.interrupted
}
