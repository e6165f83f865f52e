package tui

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Veraticus/procure/internal/app"
	"github.com/Veraticus/procure/internal/cart"
	"github.com/Veraticus/procure/internal/model"
	"github.com/Veraticus/procure/internal/testutil"
	catalogtest "github.com/Veraticus/procure/internal/testutil/catalog"
	"github.com/Veraticus/procure/internal/tui/components"
	"github.com/Veraticus/procure/internal/tui/viewmodel"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	fetchErr error
	cartErr  error
	items    []model.CatalogItem
	posted   [][]model.CartLine
	fetches  int
	mu       sync.Mutex
}

func (f *fakeAPI) FetchItems(_ context.Context) ([]model.CatalogItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches++
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.items, nil
}

func (f *fakeAPI) AddToCart(_ context.Context, lines []model.CartLine, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.posted = append(f.posted, lines)
	return f.cartErr
}

var signedIn = model.Session{
	SignedInAt: time.Date(2026, 5, 1, 8, 30, 0, 0, time.UTC),
	Token:      "tok",
	Username:   "kim",
	Alias:      "Kim",
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
}

// collect runs cmd and flattens batches into the resulting messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// settle feeds msg to the model and then every application message it produces.
// Status expiry is dropped so the last status stays visible.
func settle(m Model, msg tea.Msg) Model {
	queue := []tea.Msg{msg}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]

		updated, cmd := m.Update(next)
		m = updated.(Model)

		for _, out := range collect(cmd) {
			switch out.(type) {
			case components.NavigateMsg, components.StatusMsg, components.SubmitCartMsg,
				components.RefreshCatalogMsg, components.RefreshHistoryMsg,
				catalogLoadedMsg, historyLoadedMsg, cartSubmittedMsg:
				queue = append(queue, out)
			}
		}
	}
	return m
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		m = settle(m, keyMsg(k))
	}
	return m
}

func newTestModel(t *testing.T, session model.Session, startPath string, api *fakeAPI) Model {
	t.Helper()

	db := testutil.SetupTestDB(t)
	cfg := defaultConfig()
	cfg.API = api
	cfg.Submitter = cart.NewSubmitter(api, session.Owner(), cart.WithHistory(db.Storage))
	cfg.Storage = db.Storage
	cfg.Session = session
	cfg.StartPath = startPath
	cfg.StatusLifetime = time.Millisecond
	cfg.AltScreen = false
	cfg.Width = 120
	cfg.Height = 40

	m := newModel(cfg)
	for _, msg := range collect(m.Init()) {
		m = settle(m, msg)
	}
	return m
}

func standardAPI(t *testing.T) *fakeAPI {
	t.Helper()
	return &fakeAPI{items: catalogtest.NewBuilder(t).WithFixture(catalogtest.FixtureStandard).Build()}
}

func TestModel_SignedOutLandsOnSignIn(t *testing.T) {
	m := newTestModel(t, model.Session{}, string(app.RouteCatalog), standardAPI(t))

	assert.Equal(t, app.RouteSignIn, m.route)
	assert.Contains(t, m.View(), "procure signin")

	// Screen keys are only bound once signed in.
	m = press(m, "b")
	assert.Equal(t, app.RouteSignIn, m.route)
}

func TestModel_HomeWelcome(t *testing.T) {
	m := newTestModel(t, signedIn, "/", standardAPI(t))

	assert.Equal(t, app.RouteHome, m.route)
	out := m.View()
	assert.Contains(t, out, "Welcome, Kim !")
	assert.Contains(t, out, "Catalog")
	assert.Contains(t, out, "Orders")
}

func TestModel_SignedInPublicRouteGoesHome(t *testing.T) {
	m := newTestModel(t, signedIn, string(app.RouteSignIn), standardAPI(t))

	assert.Equal(t, app.RouteHome, m.route)
}

func TestModel_RefusedNavigation(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		status string
	}{
		{name: "unknown path", path: "/nope", status: "No screen at /nope"},
		{name: "route without a terminal screen", path: "/schedule", status: "Schedule is not available in the terminal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t, signedIn, tt.path, standardAPI(t))

			assert.Equal(t, app.RouteHome, m.route)
			assert.Equal(t, tt.status, m.status)
			assert.True(t, m.statusIsError)
		})
	}
}

func TestModel_CatalogLoadsOnVisit(t *testing.T) {
	api := standardAPI(t)
	m := newTestModel(t, signedIn, "/", api)

	m = press(m, "b")
	require.Equal(t, app.RouteCatalog, m.route)
	assert.True(t, m.catalogLoaded)
	assert.Equal(t, viewmodel.StateBrowsing, m.appState)
	assert.Equal(t, 7, m.catalogView.Len())
	assert.Equal(t, "Loaded 7 items", m.status)
	assert.Contains(t, m.View(), "Copy Paper")

	// Pressing the screen key again stays on the mounted table.
	m = press(m, "b")
	assert.Equal(t, 1, api.fetches)

	m = press(m, "r")
	assert.Equal(t, 2, api.fetches)
}

func TestModel_CatalogResetsOnReturn(t *testing.T) {
	api := standardAPI(t)
	m := newTestModel(t, signedIn, string(app.RouteCatalog), api)

	m = press(m, "x", "p")
	m.catalogView.SetSearch("P")
	m.catalogView.CommitSearch()
	require.Equal(t, 1, m.catalogView.Selection().Count())
	require.Equal(t, "P", m.catalogView.Filter().SearchQuery)
	require.Equal(t, 10, m.catalogView.Page().Size)
	require.Equal(t, 1, api.fetches)

	m = press(m, "o", "b")

	require.Equal(t, app.RouteCatalog, m.route)
	assert.Equal(t, 2, api.fetches)
	assert.Equal(t, 0, m.catalogView.Selection().Count())
	assert.Empty(t, m.catalogView.Filter().SearchQuery)
	assert.Equal(t, 5, m.catalogView.Page().Size)
	assert.Equal(t, 7, m.catalogView.Len())

	// Nothing carried over, so the cart is not posted again.
	m = press(m, "c")
	assert.Empty(t, api.posted)
	assert.Equal(t, "Select at least one item first", m.status)
}

func TestModel_CatalogRefetchFailureEmptiesTable(t *testing.T) {
	api := standardAPI(t)
	m := newTestModel(t, signedIn, string(app.RouteCatalog), api)
	require.Equal(t, 7, m.catalogView.Len())

	api.fetchErr = errors.New("connection refused")
	m = press(m, "r")

	assert.Equal(t, viewmodel.StateError, m.appState)
	assert.False(t, m.catalogLoaded)
	assert.Equal(t, 0, m.catalogView.Len())
	assert.Contains(t, m.View(), "could not be loaded")
	assert.NotContains(t, m.View(), "Copy Paper")
}

func TestModel_CatalogLoadError(t *testing.T) {
	api := &fakeAPI{fetchErr: errors.New("connection refused")}
	m := newTestModel(t, signedIn, string(app.RouteCatalog), api)

	assert.Equal(t, viewmodel.StateError, m.appState)
	assert.False(t, m.catalogLoaded)
	assert.Equal(t, "connection refused", m.status)
	assert.Contains(t, m.View(), "could not be loaded")
}

func TestModel_SubmitCart(t *testing.T) {
	api := standardAPI(t)
	m := newTestModel(t, signedIn, string(app.RouteCatalog), api)

	m = press(m, "x", "c")

	require.Len(t, api.posted, 1)
	require.Len(t, api.posted[0], 1)
	assert.Equal(t, 1, api.posted[0][0].Quantity)

	assert.Equal(t, StateCartDialog, m.state)
	assert.Equal(t, viewmodel.StateBrowsing, m.appState)
	assert.Contains(t, m.View(), "Added to cart")
	assert.Equal(t, 1, m.orders.Len())

	m = press(m, "enter")
	assert.Equal(t, StateBrowse, m.state)
	assert.Equal(t, app.RouteOrder, m.route)
	assert.False(t, m.quitting)

	sel, ok := m.orders.Selected()
	require.True(t, ok)
	assert.Equal(t, "succeeded", sel.Status)
}

func TestModel_SubmitCartFailure(t *testing.T) {
	api := standardAPI(t)
	api.cartErr = errors.New("503 Service Unavailable")
	m := newTestModel(t, signedIn, string(app.RouteCatalog), api)

	m = press(m, "x", "c")

	assert.Equal(t, StateBrowse, m.state)
	assert.Equal(t, app.RouteCatalog, m.route)
	assert.Equal(t, "Could not add the selected items to the cart", m.status)
	assert.True(t, m.statusIsError)

	require.Equal(t, 1, m.orders.Len())
	sel, _ := m.orders.Selected()
	assert.True(t, sel.Failed)
}

func TestModel_SubmitEmptySelection(t *testing.T) {
	api := standardAPI(t)
	m := newTestModel(t, signedIn, string(app.RouteCatalog), api)

	m = press(m, "c")

	assert.Empty(t, api.posted)
	assert.Equal(t, "Select at least one item first", m.status)
	assert.Equal(t, viewmodel.StateBrowsing, m.appState)
}

func TestModel_SubmitWhileInFlight(t *testing.T) {
	m := newTestModel(t, signedIn, string(app.RouteCatalog), standardAPI(t))
	m.appState = viewmodel.StateSubmitting

	updated, _ := m.Update(components.SubmitCartMsg{Lines: []model.CartLine{{ItemsID: "i1", Quantity: 1}}})
	m = updated.(Model)

	assert.Equal(t, "A cart request is already in progress", m.status)
}

func TestModel_Help(t *testing.T) {
	m := newTestModel(t, signedIn, "/", standardAPI(t))

	m = press(m, "?")
	assert.Equal(t, StateHelp, m.state)
	assert.Contains(t, m.View(), "Procure - Help")

	m = press(m, "esc")
	assert.Equal(t, StateBrowse, m.state)
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(t, signedIn, "/", standardAPI(t))

	updated, cmd := m.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.True(t, updated.(Model).quitting)
	assert.Empty(t, updated.(Model).View())
}

func TestModel_QuitKeyIgnoredWhileTyping(t *testing.T) {
	m := newTestModel(t, signedIn, string(app.RouteCatalog), standardAPI(t))

	updated, _ := m.Update(keyMsg("e"))
	m = updated.(Model)
	require.True(t, m.catalogTable.Capturing())

	updated, _ = m.Update(keyMsg("q"))
	m = updated.(Model)
	assert.False(t, m.quitting)
}

func TestModel_StatusExpires(t *testing.T) {
	m := newTestModel(t, signedIn, "/", standardAPI(t))

	m.setStatus("first", false)
	seq := m.statusSeq
	m.setStatus("second", false)

	updated, _ := m.Update(clearStatusMsg{seq: seq})
	m = updated.(Model)
	assert.Equal(t, "second", m.status)

	updated, _ = m.Update(clearStatusMsg{seq: m.statusSeq})
	m = updated.(Model)
	assert.Empty(t, m.status)
}

func TestModel_AccountScreen(t *testing.T) {
	m := newTestModel(t, signedIn, "/", standardAPI(t))

	m = press(m, "w")
	require.Equal(t, app.RouteSignState, m.route)
	out := m.View()
	assert.Contains(t, out, "kim")
	assert.Contains(t, out, "procure signout")
}
