package components

import (
	"testing"

	"github.com/Veraticus/procure/internal/model"
	catalogtest "github.com/Veraticus/procure/internal/testutil/catalog"
	"github.com/Veraticus/procure/internal/tui/themes"
	"github.com/Veraticus/procure/internal/tui/viewmodel"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
}

func newTestTable(t *testing.T) (CatalogTableModel, *viewmodel.CatalogView) {
	t.Helper()
	view := viewmodel.NewCatalogView(5)
	view.Load(catalogtest.NewBuilder(t).WithFixture(catalogtest.FixtureStandard).Build())

	m := NewCatalogTable(view, themes.Default)
	m.Resize(120, 40)
	return m, view
}

func pressKeys(m CatalogTableModel, keys ...string) (CatalogTableModel, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		m, cmd = m.Update(keyMsg(k))
	}
	return m, cmd
}

func TestCatalogTable_Navigation(t *testing.T) {
	m, view := newTestTable(t)

	m, _ = pressKeys(m, "j", "j")
	assert.Equal(t, 2, view.Cursor())
	assert.Equal(t, 2, m.table.Cursor())

	m, _ = pressKeys(m, "k")
	assert.Equal(t, 1, view.Cursor())

	m, _ = pressKeys(m, "l")
	assert.Equal(t, 2, view.Page().Number)
	assert.Len(t, m.table.Rows(), 1)

	_, _ = pressKeys(m, "h")
	assert.Equal(t, 1, view.Page().Number)
}

func TestCatalogTable_Selection(t *testing.T) {
	m, view := newTestTable(t)

	m, _ = pressKeys(m, "x")
	assert.True(t, view.Selection().IsSelected("i1"))
	assert.Equal(t, "[-]", m.table.Columns()[0].Title)
	assert.Equal(t, "[x]", m.table.Rows()[0][0])

	m, _ = pressKeys(m, "a")
	assert.Equal(t, 6, view.Selection().Count())
	assert.Equal(t, "[x]", m.table.Columns()[0].Title)

	m, _ = pressKeys(m, "a")
	assert.Equal(t, 0, view.Selection().Count())
	assert.Equal(t, "[ ]", m.table.Columns()[0].Title)

	_, _ = pressKeys(m, " ")
	assert.True(t, view.Selection().IsSelected("i1"))
}

func TestCatalogTable_CategoryPicker(t *testing.T) {
	m, view := newTestTable(t)

	m, _ = pressKeys(m, "1")
	assert.Equal(t, ModePicker, m.Mode())
	assert.True(t, m.Capturing())
	assert.Contains(t, m.View(), "Category 1")

	m, _ = pressKeys(m, "3")
	assert.Equal(t, ModeNormal, m.Mode())
	assert.Equal(t, "Lab", view.Filter().Category1Name)

	m, _ = pressKeys(m, "2", "down", "enter")
	assert.Equal(t, "Glassware", view.Filter().Category2Name)

	m, _ = pressKeys(m, "1", "esc")
	assert.Equal(t, ModeNormal, m.Mode())
	assert.Equal(t, "Lab", view.Filter().Category1Name)

	_, _ = pressKeys(m, "1", "g", "enter")
	assert.Empty(t, view.Filter().Category1Name)
}

func TestCatalogTable_LowerCategoryNeedsParent(t *testing.T) {
	m, _ := newTestTable(t)

	m, cmd := pressKeys(m, "2")
	require.NotNil(t, cmd)
	msg, ok := cmd().(StatusMsg)
	require.True(t, ok)
	assert.Contains(t, msg.Text, "first-level")
	assert.Equal(t, ModeNormal, m.Mode())
}

func TestCatalogTable_LiveSearch(t *testing.T) {
	m, view := newTestTable(t)

	m, _ = pressKeys(m, "/")
	assert.Equal(t, ModeSearch, m.Mode())

	m, _ = pressKeys(m, "p", "e", "n")
	assert.Equal(t, "pen", view.Filter().SearchQuery)
	require.Len(t, view.Rows(), 1)
	assert.Equal(t, "Gel Pen", view.Rows()[0].ItemName)

	m, _ = pressKeys(m, "enter")
	assert.Equal(t, ModeNormal, m.Mode())
	assert.Equal(t, []string{"Office"}, view.Category1Options())

	_, _ = pressKeys(m, "C")
	assert.Empty(t, view.Filter().SearchQuery)
	assert.Equal(t, []string{"Office", "Lab"}, view.Category1Options())
}

func TestCatalogTable_SearchEscRestoresQuery(t *testing.T) {
	m, view := newTestTable(t)

	m, _ = pressKeys(m, "/", "x", "y", "z")
	assert.Empty(t, view.Rows())

	m, _ = pressKeys(m, "esc")
	assert.Equal(t, ModeNormal, m.Mode())
	assert.Empty(t, view.Filter().SearchQuery)
	assert.Len(t, view.Rows(), 5)
	assert.False(t, m.Capturing())
}

func TestCatalogTable_Quantity(t *testing.T) {
	m, view := newTestTable(t)

	m, _ = pressKeys(m, "+", "+")
	assert.Equal(t, 3, view.Selection().Quantity("i1"))

	m, _ = pressKeys(m, "-")
	assert.Equal(t, 2, view.Selection().Quantity("i1"))

	m, _ = pressKeys(m, "e")
	assert.Equal(t, ModeQuantity, m.Mode())
	assert.Equal(t, "2", m.quantityInput.Value())

	m, _ = pressKeys(m, "backspace", "7", "enter")
	assert.Equal(t, ModeNormal, m.Mode())
	assert.Equal(t, 7, view.Selection().Quantity("i1"))

	_, _ = pressKeys(m, "e", "backspace", "9", "esc")
	assert.Equal(t, 7, view.Selection().Quantity("i1"))
}

func TestCatalogTable_Supplier(t *testing.T) {
	m, view := newTestTable(t)

	m, _ = pressKeys(m, "s")
	assert.Equal(t, ModePicker, m.Mode())

	m, _ = pressKeys(m, "j", "enter")
	assert.Equal(t, "Zeta", view.Selection().Supplier("i1"))
	assert.Equal(t, "$ 8", m.table.Rows()[0][7])

	m, _ = pressKeys(m, "tab")
	assert.Equal(t, "Acme", view.Selection().Supplier("i1"))
	assert.Equal(t, "$ 10", m.table.Rows()[0][7])
}

func TestCatalogTable_LeadTime(t *testing.T) {
	m, _ := newTestTable(t)

	m, _ = pressKeys(m, "t")
	assert.Equal(t, ModeLeadTime, m.Mode())

	out := m.View()
	assert.Contains(t, out, "Lead time: Copy Paper")
	assert.Contains(t, out, "Acme")
	assert.Contains(t, out, "Zeta")
	assert.Contains(t, out, "1 day")

	m, _ = pressKeys(m, "esc")
	assert.Equal(t, ModeNormal, m.Mode())
}

func TestCatalogTable_SubmitAndRefresh(t *testing.T) {
	m, _ := newTestTable(t)

	m, cmd := pressKeys(m, "x", "c")
	require.NotNil(t, cmd)
	assert.Equal(t, SubmitCartMsg{Lines: []model.CartLine{{ItemsID: "i1", Quantity: 1}}}, cmd())

	m.SetSubmitting(true)
	m, cmd = pressKeys(m, "c")
	require.NotNil(t, cmd)
	assert.IsType(t, StatusMsg{}, cmd())

	_, cmd = pressKeys(m, "r")
	require.NotNil(t, cmd)
	assert.Equal(t, RefreshCatalogMsg{}, cmd())
}

func TestCatalogTable_PageSize(t *testing.T) {
	m, view := newTestTable(t)

	m, _ = pressKeys(m, "p")
	assert.Equal(t, 10, view.Page().Size)
	assert.Len(t, m.table.Rows(), 6)

	_, _ = pressKeys(m, "v")
	assert.True(t, view.Filter().ShowSelectedOnly)
}

func TestCatalogTable_View(t *testing.T) {
	m, _ := newTestTable(t)

	out := m.View()
	assert.Contains(t, out, "Catalog")
	assert.Contains(t, out, "Copy Paper")
	assert.Contains(t, out, "page 1/2")
	assert.Contains(t, out, "[c] Add to cart")

	m.Resize(80, 5)
	assert.Equal(t, "Terminal too small", m.View())
}

func TestCatalogTable_EmptyCatalog(t *testing.T) {
	m := NewCatalogTable(viewmodel.NewCatalogView(5), themes.Default)
	m.Resize(100, 30)

	assert.Contains(t, m.View(), "No items loaded")

	m, cmd := pressKeys(m, "x", "e", "s", "t")
	assert.Nil(t, cmd)
	assert.Equal(t, ModeNormal, m.Mode())
}
