package components

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Veraticus/procure/internal/tui/themes"
	"github.com/Veraticus/procure/internal/tui/viewmodel"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// TableMode represents the current mode of the catalog table.
type TableMode int

// Table modes.
const (
	ModeNormal TableMode = iota
	ModeSearch
	ModeQuantity
	ModePicker
	ModeLeadTime
)

type pickerTarget int

const (
	pickCategory1 pickerTarget = iota + 1
	pickCategory2
	pickCategory3
	pickSupplier
)

// CatalogTableModel is the interactive catalog table.
type CatalogTableModel struct {
	theme         themes.Theme
	view          *viewmodel.CatalogView
	prevQuery     string
	searchInput   textinput.Model
	quantityInput textinput.Model
	table         table.Model
	picker        PickerModel
	target        pickerTarget
	mode          TableMode
	width         int
	height        int
	submitting    bool
}

// NewCatalogTable creates the table over view.
func NewCatalogTable(view *viewmodel.CatalogView, theme themes.Theme) CatalogTableModel {
	t := table.New(
		table.WithFocused(true),
		table.WithHeight(view.Page().Size),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Bold(false)
	s.Selected = theme.Selected
	t.SetStyles(s)

	searchInput := textinput.New()
	searchInput.Placeholder = "Search items..."
	searchInput.Prompt = "/ "
	searchInput.CharLimit = 50

	quantityInput := textinput.New()
	quantityInput.Placeholder = "1"
	quantityInput.Prompt = "Quantity: "
	quantityInput.CharLimit = 6

	m := CatalogTableModel{
		view:          view,
		theme:         theme,
		table:         t,
		searchInput:   searchInput,
		quantityInput: quantityInput,
		mode:          ModeNormal,
		width:         80,
		height:        24,
	}
	m.updateColumnWidths()
	m.syncTable()

	return m
}

// Update handles messages.
func (m CatalogTableModel) Update(msg tea.Msg) (CatalogTableModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.mode {
		case ModeNormal:
			cmd = m.handleNormalMode(msg)
		case ModeSearch:
			cmd = m.handleSearchMode(msg)
		case ModeQuantity:
			cmd = m.handleQuantityMode(msg)
		case ModePicker:
			cmd = m.handlePickerMode(msg)
		case ModeLeadTime:
			switch msg.String() {
			case "esc", "enter", "t", "q":
				m.mode = ModeNormal
			}
		}

	case tea.WindowSizeMsg:
		m.Resize(msg.Width, msg.Height)
	}

	m.syncTable()
	return m, cmd
}

// handleNormalMode handles key presses in normal mode.
func (m *CatalogTableModel) handleNormalMode(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "j", "down":
		m.view.MoveCursor(1)

	case "k", "up":
		m.view.MoveCursor(-1)

	case "l", "right", "pgdown", "n":
		m.view.NextPage()

	case "h", "left", "pgup", "N":
		m.view.PrevPage()

	case "g", "home":
		m.view.SetPage(1)

	case "G", "end":
		m.view.SetPage(m.view.TotalPages())

	case "x", " ":
		m.view.ToggleCursorRow()

	case "a":
		m.view.ToggleAll()

	case "1":
		m.openPicker(pickCategory1, "Category 1", m.view.Category1Options(), m.view.Filter().Category1Name)

	case "2":
		if m.view.Filter().Category1Name == "" {
			return statusCmd("Choose a first-level category first", false)
		}
		m.openPicker(pickCategory2, "Category 2", m.view.Category2Options(), m.view.Filter().Category2Name)

	case "3":
		if m.view.Filter().Category2Name == "" {
			return statusCmd("Choose a second-level category first", false)
		}
		m.openPicker(pickCategory3, "Category 3", m.view.Category3Options(), m.view.Filter().Category3Name)

	case "/":
		m.mode = ModeSearch
		m.prevQuery = m.view.Filter().SearchQuery
		m.searchInput.SetValue(m.prevQuery)
		m.searchInput.CursorEnd()
		return m.searchInput.Focus()

	case "C":
		m.view.ClearSearch()
		m.searchInput.SetValue("")

	case "+", "=":
		m.view.AdjustQuantity(1)

	case "-":
		m.view.AdjustQuantity(-1)

	case "e":
		row, ok := m.view.CursorRow()
		if !ok {
			return nil
		}
		m.mode = ModeQuantity
		m.quantityInput.SetValue(strconv.Itoa(m.view.Selection().Quantity(row.ItemID)))
		m.quantityInput.CursorEnd()
		return m.quantityInput.Focus()

	case "s":
		row, ok := m.view.CursorRow()
		if !ok {
			return nil
		}
		m.openPicker(pickSupplier, "Supplier for "+row.ItemName, m.view.Suppliers(), m.view.Selection().Supplier(row.ItemID))

	case "tab":
		m.view.CycleSupplier()

	case "v":
		m.view.ToggleShowSelected()

	case "p":
		m.view.CyclePageSize()
		m.Resize(m.width, m.height)

	case "t":
		if _, ok := m.view.CursorRow(); ok {
			m.mode = ModeLeadTime
		}

	case "c":
		if m.submitting {
			return statusCmd("A cart request is already in progress", false)
		}
		lines := m.view.CartLines()
		return func() tea.Msg {
			return SubmitCartMsg{Lines: lines}
		}

	case "r":
		return func() tea.Msg {
			return RefreshCatalogMsg{}
		}
	}

	return nil
}

// handleSearchMode filters as the user types; Enter commits the result as the new base.
func (m *CatalogTableModel) handleSearchMode(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		m.view.SetSearch(m.searchInput.Value())
		m.view.CommitSearch()
		m.mode = ModeNormal
		m.searchInput.Blur()

	case "esc":
		m.view.SetSearch(m.prevQuery)
		m.searchInput.SetValue(m.prevQuery)
		m.mode = ModeNormal
		m.searchInput.Blur()

	default:
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		m.view.SetSearch(m.searchInput.Value())
		return cmd
	}

	return nil
}

// handleQuantityMode edits the cursor row's quantity.
func (m *CatalogTableModel) handleQuantityMode(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		m.view.SetQuantity(m.quantityInput.Value())
		m.mode = ModeNormal
		m.quantityInput.Blur()

	case "esc":
		m.mode = ModeNormal
		m.quantityInput.Blur()

	default:
		var cmd tea.Cmd
		m.quantityInput, cmd = m.quantityInput.Update(msg)
		return cmd
	}

	return nil
}

// handlePickerMode forwards keys to the open picker and applies its result.
func (m *CatalogTableModel) handlePickerMode(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if m.picker.IsCanceled() {
		m.mode = ModeNormal
		return cmd
	}
	if !m.picker.IsComplete() {
		return cmd
	}

	m.mode = ModeNormal
	choice := m.picker.GetResult()
	switch m.target {
	case pickCategory1:
		m.view.SetCategory1(choice)
	case pickCategory2:
		m.view.SetCategory2(choice)
	case pickCategory3:
		m.view.SetCategory3(choice)
	case pickSupplier:
		if err := m.view.SetSupplier(choice); err != nil {
			return statusCmd(err.Error(), true)
		}
	}
	return cmd
}

func (m *CatalogTableModel) openPicker(target pickerTarget, title string, options []string, current string) {
	m.target = target
	m.picker = NewPickerModel(title, options, current, target != pickSupplier, m.theme)
	m.picker.Resize(m.width, m.height)
	m.mode = ModePicker
}

// View renders the catalog table.
func (m CatalogTableModel) View() string {
	if m.height < 10 {
		return "Terminal too small"
	}

	switch m.mode {
	case ModePicker:
		return m.picker.View()
	case ModeLeadTime:
		return m.renderLeadTimeView()
	default:
		return m.renderTableView()
	}
}

// renderTableView renders the header, table and footer.
func (m CatalogTableModel) renderTableView() string {
	sections := []string{m.renderHeader()}

	if m.mode == ModeSearch || m.view.Filter().SearchQuery != "" {
		sections = append(sections, m.searchInput.View())
	}

	if m.view.Len() == 0 {
		sections = append(sections, m.theme.StatusPending.Render("No items loaded. Press r to fetch the catalog."))
	} else {
		sections = append(sections, m.table.View())
	}

	if m.mode == ModeQuantity {
		sections = append(sections, m.quantityInput.View())
	}
	sections = append(sections, m.renderFooter())

	// Return raw content - parent will handle borders
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHeader renders the title and the filter, selection and page summary.
func (m CatalogTableModel) renderHeader() string {
	h := m.view.Header()
	title := m.theme.Title.Render("Catalog")

	status := fmt.Sprintf("%s | %d of %d items | %d selected | page %s (size %d)",
		h.FilterSummary(),
		h.UniqueCount,
		m.view.Len(),
		h.SelectedCount,
		h.PageIndicator(),
		h.PageSize,
	)
	if m.submitting {
		status += " | " + m.theme.StatusPending.Render("submitting...")
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, m.theme.Subtitle.Render(status))
}

// renderFooter renders mode-specific key hints.
func (m CatalogTableModel) renderFooter() string {
	var hints []string

	switch m.mode {
	case ModeSearch:
		hints = []string{
			"[Enter] Apply search",
			"[Esc] Cancel",
		}
	case ModeQuantity:
		hints = []string{
			"[Enter] Set quantity",
			"[Esc] Cancel",
		}
	default:
		hints = []string{
			"[↑↓] Navigate",
			"[←→] Page",
			"[x] Select",
			"[a] All",
			"[1-3] Category",
			"[/] Search",
			"[s] Supplier",
			"[c] Add to cart",
			"[?] Help",
		}
	}

	return lipgloss.NewStyle().Foreground(m.theme.Muted).Render(strings.Join(hints, "  "))
}

// renderLeadTimeView renders the supplier offers of the cursor row.
func (m CatalogTableModel) renderLeadTimeView() string {
	row, offers, ok := m.view.CursorLeadTimes()
	if !ok {
		return m.renderTableView()
	}

	lines := make([]string, 0, len(offers)+1)
	lines = append(lines, m.theme.Bold.Render(fmt.Sprintf("%-20s %12s %10s", "Supplier", "Price", "Lead time")))
	for _, offer := range offers {
		line := fmt.Sprintf("%-20s %12s %10s",
			viewmodel.TruncateString(offer.Supplier, 20),
			offer.Price,
			fmt.Sprintf("%d %s", offer.LeadTime, plural(offer.LeadTime, "day", "days")),
		)
		if offer.IsChosen {
			line = m.theme.Highlighted.Render(line)
		}
		lines = append(lines, line)
	}

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		m.theme.Title.Render("Lead time: "+row.ItemName),
		strings.Join(lines, "\n"),
		"",
		lipgloss.NewStyle().Foreground(m.theme.Muted).Render("[Esc] Close"),
	)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		m.theme.BorderedBox.Render(content),
	)
}

// buildTableRows builds rows for the table.
func (m CatalogTableModel) buildTableRows() []table.Row {
	views := m.view.Rows()
	rows := make([]table.Row, 0, len(views))

	for _, r := range views {
		supplier := r.Supplier
		if supplier == "" {
			supplier = fmt.Sprintf("(%d)", len(r.Suppliers))
		}

		price := r.Price.Text
		if r.Price.Placeholder {
			price = m.theme.Placeholder.Render(price)
		}

		rows = append(rows, table.Row{
			viewmodel.Checkbox(r.IsSelected, false),
			r.Category1,
			r.Category2,
			r.Category3,
			r.ItemName,
			supplier,
			strconv.Itoa(r.Quantity),
			price,
		})
	}

	return rows
}

// Capturing reports whether the table is consuming raw keystrokes.
func (m CatalogTableModel) Capturing() bool {
	return m.mode != ModeNormal
}

// Mode returns the current table mode.
func (m CatalogTableModel) Mode() TableMode {
	return m.mode
}

// SetSubmitting marks whether a cart request is in flight.
func (m *CatalogTableModel) SetSubmitting(submitting bool) {
	m.submitting = submitting
}

// Refresh re-reads the view after it changed outside the table.
func (m *CatalogTableModel) Refresh() {
	m.syncTable()
}

// Resize updates the component size.
func (m *CatalogTableModel) Resize(width, height int) {
	m.width = width
	m.height = height
	m.picker.Resize(width, height)

	// Title, subtitle, column headers and footer take 5 lines.
	m.table.SetHeight(max(1, min(m.view.Page().Size+2, height-5)))
	m.updateColumnWidths()
}

func (m *CatalogTableModel) syncTable() {
	h := m.view.Header()

	columns := m.table.Columns()
	if len(columns) > 0 {
		columns[0].Title = viewmodel.Checkbox(h.Checked, h.Indeterminate)
		m.table.SetColumns(columns)
	}

	m.table.SetRows(m.buildTableRows())
	m.table.SetCursor(m.view.Cursor())
}

// updateColumnWidths dynamically adjusts column widths based on available space.
func (m *CatalogTableModel) updateColumnWidths() {
	availableWidth := max(m.width-4, 70)

	h := m.view.Header()
	columns := []table.Column{
		{Title: viewmodel.Checkbox(h.Checked, h.Indeterminate), Width: 3},
		{Title: "Category 1", Width: max(8, int(float64(availableWidth)*0.12))},
		{Title: "Category 2", Width: max(8, int(float64(availableWidth)*0.12))},
		{Title: "Category 3", Width: max(8, int(float64(availableWidth)*0.12))},
		{Title: "Item", Width: max(12, int(float64(availableWidth)*0.24))},
		{Title: "Supplier", Width: max(8, int(float64(availableWidth)*0.14))},
		{Title: "Qty", Width: 5},
		{Title: "Price", Width: max(8, int(float64(availableWidth)*0.12))},
	}

	m.table.SetColumns(columns)
}

func statusCmd(text string, isError bool) tea.Cmd {
	return func() tea.Msg {
		return StatusMsg{Text: text, IsError: isError}
	}
}
