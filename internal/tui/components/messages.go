package components

import (
	"github.com/Veraticus/procure/internal/app"
	"github.com/Veraticus/procure/internal/model"
)

// SubmitCartMsg requests posting the selected lines to the cart.
type SubmitCartMsg struct {
	Lines []model.CartLine
}

// RefreshCatalogMsg requests fetching the catalog again.
type RefreshCatalogMsg struct{}

// NavigateMsg requests switching to another screen.
type NavigateMsg struct {
	Route app.Route
}

// StatusMsg carries a short message for the status bar.
type StatusMsg struct {
	Text    string
	IsError bool
}

// ShowHelpMsg shows the help screen.
type ShowHelpMsg struct{}
