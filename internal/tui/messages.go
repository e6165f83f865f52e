package tui

import (
	"github.com/Veraticus/procure/internal/model"
)

// Data loading messages.
type catalogLoadedMsg struct {
	err   error
	items []model.CatalogItem
}

type historyLoadedMsg struct {
	err         error
	submissions []model.Submission
}

// Async operation messages.
type cartSubmittedMsg struct {
	err        error
	submission *model.Submission
}

// Status bar messages.
type clearStatusMsg struct {
	seq int
}
