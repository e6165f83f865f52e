package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive front end and blocks until the user quits.
func Run(ctx context.Context, opts ...Option) error {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.Session.IsAuthenticated() {
		if cfg.API == nil {
			return fmt.Errorf("catalog API is required")
		}
		if cfg.Submitter == nil {
			return fmt.Errorf("cart submitter is required")
		}
	}

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Set up terminal cleanup on any exit
	cleanupTerminal := func() {
		// Ignore errors as this is best-effort cleanup
		_, _ = os.Stdout.Write([]byte("\033[?1049l")) // Exit alternate screen
		_, _ = os.Stdout.Write([]byte("\033[?25h"))   // Show cursor
		_, _ = os.Stdout.Write([]byte("\033[m"))      // Reset colors
		_, _ = os.Stdout.Write([]byte("\033[?1000l")) // Disable mouse
	}
	defer cleanupTerminal()

	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	program := tea.NewProgram(newModel(cfg), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
