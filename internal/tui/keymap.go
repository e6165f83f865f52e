package tui

import (
	"github.com/Veraticus/procure/internal/app"
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keyboard shortcuts.
type KeyMap struct {
	// Navigation
	Up        key.Binding
	Down      key.Binding
	PrevPage  key.Binding
	NextPage  key.Binding
	FirstPage key.Binding
	LastPage  key.Binding

	// Selection
	ToggleSelect key.Binding
	ToggleAll    key.Binding
	SelectedOnly key.Binding

	// Filtering
	Category1   key.Binding
	Category2   key.Binding
	Category3   key.Binding
	Search      key.Binding
	ClearSearch key.Binding
	PageSize    key.Binding

	// Drafts
	QuantityUp    key.Binding
	QuantityDown  key.Binding
	QuantityEdit  key.Binding
	Supplier      key.Binding
	CycleSupplier key.Binding
	LeadTime      key.Binding

	// Actions
	Submit  key.Binding
	Refresh key.Binding

	// Screens
	GoHome    key.Binding
	GoCatalog key.Binding
	GoOrders  key.Binding
	GoAccount key.Binding

	// Application
	Help        key.Binding
	Quit        key.Binding
	ForceQuit   key.Binding
	ClearScreen key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "down"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("h", "left", "pgup"),
			key.WithHelp("←/h", "previous page"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("l", "right", "pgdown"),
			key.WithHelp("→/l", "next page"),
		),
		FirstPage: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "first page"),
		),
		LastPage: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "last page"),
		),

		// Selection
		ToggleSelect: key.NewBinding(
			key.WithKeys("x", " "),
			key.WithHelp("x/Space", "toggle row"),
		),
		ToggleAll: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "toggle all rows"),
		),
		SelectedOnly: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "selected only"),
		),

		// Filtering
		Category1: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "category 1"),
		),
		Category2: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "category 2"),
		),
		Category3: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "category 3"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		ClearSearch: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "clear search"),
		),
		PageSize: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "page size"),
		),

		// Drafts
		QuantityUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "quantity up"),
		),
		QuantityDown: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "quantity down"),
		),
		QuantityEdit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "enter quantity"),
		),
		Supplier: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "choose supplier"),
		),
		CycleSupplier: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "next supplier"),
		),
		LeadTime: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "lead time"),
		),

		// Actions
		Submit: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "add to cart"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),

		// Screens
		GoHome: key.NewBinding(
			key.WithKeys("H"),
			key.WithHelp("H", "home"),
		),
		GoCatalog: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "catalog"),
		),
		GoOrders: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "orders"),
		),
		GoAccount: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "account"),
		),

		// Application
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("Ctrl+C", "force quit"),
		),
		ClearScreen: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("Ctrl+L", "clear screen"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Submit, k.Quit}
}

// FullHelp returns all key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PrevPage, k.NextPage, k.FirstPage, k.LastPage},
		{k.ToggleSelect, k.ToggleAll, k.SelectedOnly, k.Submit, k.Refresh},
		{k.Category1, k.Category2, k.Category3, k.Search, k.ClearSearch, k.PageSize},
		{k.QuantityUp, k.QuantityDown, k.QuantityEdit, k.Supplier, k.CycleSupplier, k.LeadTime},
		{k.GoHome, k.GoCatalog, k.GoOrders, k.GoAccount},
		{k.Help, k.Quit, k.ForceQuit, k.ClearScreen},
	}
}

// helpSections titles the FullHelp groups.
var helpSections = []string{"Navigation", "Selection", "Filtering", "Quantity & supplier", "Screens", "Application"}

// RouteKeys maps each screen to the key that opens it.
func (k KeyMap) RouteKeys() map[app.Route]string {
	return map[app.Route]string{
		app.RouteHome:      k.GoHome.Help().Key,
		app.RouteCatalog:   k.GoCatalog.Help().Key,
		app.RouteOrder:     k.GoOrders.Help().Key,
		app.RouteSignState: k.GoAccount.Help().Key,
	}
}
