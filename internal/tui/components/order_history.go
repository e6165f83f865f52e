package components

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Veraticus/procure/internal/tui/themes"
	"github.com/Veraticus/procure/internal/tui/viewmodel"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// RefreshHistoryMsg requests reloading the submission history.
type RefreshHistoryMsg struct{}

// OrderHistoryModel lists previous cart submissions.
type OrderHistoryModel struct {
	theme       themes.Theme
	submissions []viewmodel.SubmissionView
	table       table.Model
	width       int
	height      int
}

// NewOrderHistory creates an empty history list.
func NewOrderHistory(theme themes.Theme) OrderHistoryModel {
	t := table.New(
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Bold(false)
	s.Selected = theme.Selected
	t.SetStyles(s)

	m := OrderHistoryModel{
		theme:  theme,
		table:  t,
		width:  80,
		height: 24,
	}
	m.updateColumnWidths()

	return m
}

// SetSubmissions replaces the listed submissions.
func (m *OrderHistoryModel) SetSubmissions(submissions []viewmodel.SubmissionView) {
	m.submissions = submissions
	m.table.SetRows(m.buildTableRows())
	m.table.GotoTop()
}

// Len returns the number of listed submissions.
func (m OrderHistoryModel) Len() int {
	return len(m.submissions)
}

// Selected returns the submission under the cursor.
func (m OrderHistoryModel) Selected() (viewmodel.SubmissionView, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.submissions) {
		return viewmodel.SubmissionView{}, false
	}
	return m.submissions[i], true
}

// Update handles messages.
func (m OrderHistoryModel) Update(msg tea.Msg) (OrderHistoryModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "r" {
		return m, func() tea.Msg {
			return RefreshHistoryMsg{}
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history.
func (m OrderHistoryModel) View() string {
	title := m.theme.Title.Render("Orders")

	if len(m.submissions) == 0 {
		return lipgloss.JoinVertical(
			lipgloss.Left,
			title,
			m.theme.StatusPending.Render("No cart submissions yet. Select items in the catalog and press c."),
		)
	}

	failed := 0
	for _, s := range m.submissions {
		if s.Failed {
			failed++
		}
	}
	subtitle := m.theme.Subtitle.Render(fmt.Sprintf("%d submissions, %d failed", len(m.submissions), failed))

	sections := []string{title, subtitle, m.table.View()}
	if sel, ok := m.Selected(); ok && sel.Failed {
		sections = append(sections, m.theme.StatusError.Render(viewmodel.TruncateString(sel.Error, max(m.width-4, 20))))
	}

	hints := []string{"[↑↓] Navigate", "[r] Reload", "[b] Catalog", "[?] Help"}
	sections = append(sections, lipgloss.NewStyle().Foreground(m.theme.Muted).Render(strings.Join(hints, "  ")))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m OrderHistoryModel) buildTableRows() []table.Row {
	rows := make([]table.Row, 0, len(m.submissions))
	for _, s := range m.submissions {
		status := "✓ " + s.Status
		if s.Failed {
			status = "✗ " + s.Status
		}
		rows = append(rows, table.Row{
			s.When,
			s.ID,
			s.Owner,
			strconv.Itoa(s.Lines),
			strconv.Itoa(s.Quantity),
			status,
		})
	}
	return rows
}

// Resize updates the component size.
func (m *OrderHistoryModel) Resize(width, height int) {
	m.width = width
	m.height = height

	// Title, subtitle, error line and footer.
	m.table.SetHeight(max(1, height-6))
	m.updateColumnWidths()
}

func (m *OrderHistoryModel) updateColumnWidths() {
	availableWidth := max(m.width-4, 60)

	columns := []table.Column{
		{Title: "Submitted", Width: 16},
		{Title: "ID", Width: 10},
		{Title: "Owner", Width: max(8, int(float64(availableWidth)*0.2))},
		{Title: "Lines", Width: 6},
		{Title: "Units", Width: 6},
		{Title: "Status", Width: max(11, int(float64(availableWidth)*0.15))},
	}

	m.table.SetColumns(columns)
}
