package tui

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/Veraticus/procure/internal/app"
	"github.com/Veraticus/procure/internal/common"
	"github.com/Veraticus/procure/internal/model"
	"github.com/Veraticus/procure/internal/service"
	"github.com/Veraticus/procure/internal/tui/components"
	"github.com/Veraticus/procure/internal/tui/themes"
	"github.com/Veraticus/procure/internal/tui/viewmodel"
	tea "github.com/charmbracelet/bubbletea"
)

// State represents the current state of the TUI.
type State int

const (
	StateBrowse State = iota
	StateCartDialog
	StateHelp
)

// Model holds the main TUI state.
type Model struct {
	theme         themes.Theme
	api           service.CatalogAPI
	submitter     service.CartSubmitter
	storage       service.SubmissionStore
	router        *app.Router
	lastError     error
	catalogView   *viewmodel.CatalogView
	session       model.Session
	keymap        KeyMap
	route         app.Route
	status        string
	catalogTable  components.CatalogTableModel
	orders        components.OrderHistoryModel
	cartDialog    components.CartDialogModel
	config        Config
	statusSeq     int
	height        int
	width         int
	state         State
	appState      viewmodel.AppState
	statusIsError bool
	catalogLoaded bool
	quitting      bool
}

// newModel creates a new model with the given configuration.
func newModel(cfg Config) Model {
	router := cfg.Router
	if router == nil {
		router = app.NewRouter()
	}

	view := viewmodel.NewCatalogView(cfg.PageSize)

	m := Model{
		state:        StateBrowse,
		appState:     viewmodel.StateBrowsing,
		config:       cfg,
		keymap:       DefaultKeyMap(),
		theme:        cfg.Theme,
		api:          cfg.API,
		submitter:    cfg.Submitter,
		storage:      cfg.Storage,
		router:       router,
		session:      cfg.Session,
		catalogView:  view,
		catalogTable: components.NewCatalogTable(view, cfg.Theme),
		orders:       components.NewOrderHistory(cfg.Theme),
		width:        cfg.Width,
		height:       cfg.Height,
	}
	m.handleResize()

	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.config.AltScreen {
		cmds = append(cmds, tea.EnterAltScreen)
	}
	cmds = append(cmds, func() tea.Msg {
		return components.NavigateMsg{Route: app.Route(m.config.StartPath)}
	})
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Handle global messages
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if cmd, handled := m.handleGlobalKeys(msg); handled {
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.handleResize()
		return m, nil

	case components.NavigateMsg:
		return m, m.navigate(string(msg.Route))

	case components.StatusMsg:
		return m, m.setStatus(msg.Text, msg.IsError)

	case components.RefreshCatalogMsg:
		m.appState = viewmodel.StateLoading
		return m, m.loadCatalog()

	case components.RefreshHistoryMsg:
		return m, m.loadHistory()

	case components.SubmitCartMsg:
		return m, m.handleSubmit(msg)

	case catalogLoadedMsg:
		return m, m.handleCatalogLoaded(msg)

	case historyLoadedMsg:
		if msg.err != nil {
			return m, m.showError(msg.err)
		}
		m.orders.SetSubmissions(viewmodel.NewSubmissionViews(msg.submissions))
		return m, nil

	case cartSubmittedMsg:
		return m, m.handleSubmitted(msg)

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
			m.statusIsError = false
		}
		return m, nil
	}

	// Delegate to active component based on state
	switch m.state {
	case StateCartDialog:
		newDialog, cmd := m.cartDialog.Update(msg)
		m.cartDialog = newDialog
		cmds = append(cmds, cmd)

		if newDialog.IsComplete() {
			m.state = StateBrowse
			if newDialog.GetResult() == components.CartDialogGoToCart {
				cmds = append(cmds, m.navigate(string(app.RouteOrder)))
			}
		}

	case StateBrowse:
		switch m.route {
		case app.RouteCatalog:
			newTable, cmd := m.catalogTable.Update(msg)
			m.catalogTable = newTable
			cmds = append(cmds, cmd)
		case app.RouteOrder:
			newOrders, cmd := m.orders.Update(msg)
			m.orders = newOrders
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.route == "" {
		return m.renderLoading()
	}

	if m.state == StateHelp {
		return m.renderHelp()
	}

	// Responsive layout based on terminal size
	if m.width < 80 {
		return m.renderCompactView()
	}

	return m.renderFullView()
}

// handleGlobalKeys handles keys that work in any state.
func (m *Model) handleGlobalKeys(msg tea.KeyMsg) (tea.Cmd, bool) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return tea.Quit, true
	}

	if m.capturing() {
		return nil, false
	}

	if m.state == StateHelp {
		switch msg.String() {
		case "?", "esc", "q":
			m.state = StateBrowse
		}
		return nil, true
	}

	switch msg.String() {
	case "q":
		m.quitting = true
		return tea.Quit, true
	case "?":
		m.state = StateHelp
		return nil, true
	case "ctrl+l":
		return tea.ClearScreen, true
	}

	if !m.session.IsAuthenticated() {
		return nil, false
	}

	for route, k := range m.keymap.RouteKeys() {
		if msg.String() == k {
			return m.navigate(string(route)), true
		}
	}
	return nil, false
}

// capturing reports whether the focused component wants raw keystrokes.
func (m Model) capturing() bool {
	if m.state == StateCartDialog {
		return true
	}
	return m.state == StateBrowse && m.route == app.RouteCatalog && m.catalogTable.Capturing()
}

// handleResize adjusts component sizes when terminal resizes.
func (m *Model) handleResize() {
	// Border and status bar take 4 lines, the nav bar one more.
	height := m.height - 4
	if m.width >= 80 {
		height--
	}
	width := m.width - 4

	m.catalogTable.Resize(width, height)
	m.orders.Resize(width, height)
	m.cartDialog.Resize(m.width, m.height)
}

// navigate resolves path for the current session and switches screens.
func (m *Model) navigate(path string) tea.Cmd {
	nav, err := m.router.Resolve(path, m.session)
	if err != nil {
		slog.Debug("Navigation refused", "path", path, "error", err)
		if m.route == "" {
			m.route = app.RouteHome
		}
		if errors.Is(err, common.ErrRouteUnavailable) {
			return m.setStatus(fmt.Sprintf("%s is not available in the terminal", nav.Route.Title()), true)
		}
		return m.setStatus(fmt.Sprintf("No screen at %s", path), true)
	}

	prev := m.route
	m.route = nav.Route
	m.state = StateBrowse

	var cmds []tea.Cmd
	if nav.Redirected {
		slog.Debug("Navigation redirected", "path", path, "route", nav.Route)
	}

	switch nav.Route {
	case app.RouteCatalog:
		if prev != app.RouteCatalog {
			m.mountCatalog()
		}
		if !m.catalogLoaded && m.appState != viewmodel.StateLoading {
			m.appState = viewmodel.StateLoading
			cmds = append(cmds, m.loadCatalog())
		}
	case app.RouteOrder:
		cmds = append(cmds, m.loadHistory())
	}

	return tea.Batch(cmds...)
}

// mountCatalog gives the Catalog screen fresh filters, selection and paging.
// The catalog itself is fetched again on every mount.
func (m *Model) mountCatalog() {
	m.catalogView = viewmodel.NewCatalogView(m.config.PageSize)
	m.catalogTable = components.NewCatalogTable(m.catalogView, m.theme)
	m.catalogTable.SetSubmitting(m.appState == viewmodel.StateSubmitting)
	m.catalogLoaded = false
	m.handleResize()
}

// handleCatalogLoaded installs a freshly fetched catalog. A failed fetch empties the table.
func (m *Model) handleCatalogLoaded(msg catalogLoadedMsg) tea.Cmd {
	if msg.err != nil {
		m.catalogView.Load(nil)
		m.catalogTable.Refresh()
		m.catalogLoaded = false
		m.appState = viewmodel.StateError
		return m.showError(msg.err)
	}

	m.catalogView.Load(msg.items)
	m.catalogTable.Refresh()
	m.catalogLoaded = true
	m.appState = viewmodel.StateBrowsing
	slog.Info("Catalog loaded", "items", len(msg.items))

	return m.setStatus(fmt.Sprintf("Loaded %d items", len(msg.items)), false)
}

// handleSubmit starts a cart submission unless one is already running.
func (m *Model) handleSubmit(msg components.SubmitCartMsg) tea.Cmd {
	if m.appState == viewmodel.StateSubmitting {
		return m.setStatus("A cart request is already in progress", true)
	}
	if len(msg.Lines) == 0 {
		return m.showError(common.NewUserError("Select at least one item first", common.ErrEmptyCart))
	}

	m.appState = viewmodel.StateSubmitting
	m.catalogTable.SetSubmitting(true)

	return tea.Batch(
		m.setStatus(fmt.Sprintf("Adding %d item(s) to the cart...", len(msg.Lines)), false),
		m.submitCart(msg.Lines),
	)
}

// handleSubmitted reports the outcome of a cart submission.
func (m *Model) handleSubmitted(msg cartSubmittedMsg) tea.Cmd {
	m.appState = viewmodel.StateBrowsing
	m.catalogTable.SetSubmitting(false)

	if msg.err != nil {
		return tea.Batch(m.showError(msg.err), m.loadHistory())
	}
	if msg.submission == nil {
		return nil
	}

	m.cartDialog = components.NewCartDialogModel(*msg.submission, m.theme)
	m.cartDialog.Resize(m.width, m.height)
	m.state = StateCartDialog

	return m.loadHistory()
}

// showError records err and puts its user-facing text in the status bar.
func (m *Model) showError(err error) tea.Cmd {
	m.lastError = err
	common.LogError(err, "TUI operation failed", common.Fields{"route": string(m.route)})
	return m.setStatus(common.UserMessage(err), true)
}

// setStatus shows text in the status bar until it expires.
func (m *Model) setStatus(text string, isError bool) tea.Cmd {
	m.statusSeq++
	m.status = text
	m.statusIsError = isError
	return clearStatusAfter(m.statusSeq, m.config.StatusLifetime)
}
