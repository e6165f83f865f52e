package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/Veraticus/procure/internal/model"
	"github.com/Veraticus/procure/internal/service"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	catalogTimeout = 60 * time.Second
	submitTimeout  = 60 * time.Second
	historyTimeout = 10 * time.Second
	historyLimit   = 100
)

// loadCatalog fetches the catalog from the API.
func (m Model) loadCatalog() tea.Cmd {
	api := m.api
	return func() tea.Msg {
		if api == nil {
			return catalogLoadedMsg{err: fmt.Errorf("catalog API not configured")}
		}

		ctx, cancel := context.WithTimeout(context.Background(), catalogTimeout)
		defer cancel()

		items, err := api.FetchItems(ctx)
		return catalogLoadedMsg{items: items, err: err}
	}
}

// submitCart posts lines through the submitter.
func (m Model) submitCart(lines []model.CartLine) tea.Cmd {
	submitter := m.submitter
	return func() tea.Msg {
		if submitter == nil {
			return cartSubmittedMsg{err: fmt.Errorf("cart submitter not configured")}
		}

		ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
		defer cancel()

		submission, err := submitter.Submit(ctx, lines)
		return cartSubmittedMsg{submission: submission, err: err}
	}
}

// loadHistory reads the session owner's recent submissions.
func (m Model) loadHistory() tea.Cmd {
	store := m.storage
	owner := m.session.Owner()
	return func() tea.Msg {
		if store == nil {
			return historyLoadedMsg{}
		}

		ctx, cancel := context.WithTimeout(context.Background(), historyTimeout)
		defer cancel()

		submissions, err := store.ListSubmissions(ctx, service.SubmissionFilter{
			Owner: owner,
			Limit: historyLimit,
		})
		return historyLoadedMsg{submissions: submissions, err: err}
	}
}

// clearStatusAfter expires status message seq after d.
func clearStatusAfter(seq int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}
