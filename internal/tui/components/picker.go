package components

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Veraticus/procure/internal/tui/themes"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// allLabel is shown for the empty choice of an optional picker.
const allLabel = "All"

// PickerModel chooses one value from a short list: a category level or a supplier.
type PickerModel struct {
	theme    themes.Theme
	title    string
	options  []string
	cursor   int
	width    int
	height   int
	complete bool
	canceled bool
}

// NewPickerModel creates a picker positioned on current.
// When optional is set the first entry is the empty choice, labeled "All".
func NewPickerModel(title string, options []string, current string, optional bool, theme themes.Theme) PickerModel {
	opts := make([]string, 0, len(options)+1)
	if optional {
		opts = append(opts, "")
	}
	opts = append(opts, options...)

	return PickerModel{
		theme:   theme,
		title:   title,
		options: opts,
		cursor:  max(slices.Index(opts, current), 0),
		width:   80,
		height:  24,
	}
}

// Update handles messages.
func (m PickerModel) Update(msg tea.Msg) (PickerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if len(m.options) == 0 {
			m.canceled = true
			return m, nil
		}

		switch msg.String() {
		case "j", "down", "tab":
			m.cursor = (m.cursor + 1) % len(m.options)

		case "k", "up", "shift+tab":
			m.cursor = (m.cursor + len(m.options) - 1) % len(m.options)

		case "g", "home":
			m.cursor = 0

		case "G", "end":
			m.cursor = len(m.options) - 1

		case "enter", " ":
			m.complete = true

		case "esc", "q":
			m.canceled = true

		default:
			// Digits jump straight to an entry.
			if n := digit(msg.String()); n > 0 && n <= len(m.options) {
				m.cursor = n - 1
				m.complete = true
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	return m, nil
}

// View renders the picker as a centered box.
func (m PickerModel) View() string {
	lines := make([]string, 0, len(m.options))
	for i, opt := range m.options {
		label := opt
		if label == "" {
			label = allLabel
		}

		prefix := "  "
		if i < 9 {
			prefix = fmt.Sprintf("%d ", i+1)
		}
		line := prefix + label
		if i == m.cursor {
			line = m.theme.Selected.Render("> " + label)
		}
		lines = append(lines, line)
	}

	help := lipgloss.NewStyle().Foreground(m.theme.Muted).Render("[↑↓] Navigate | [Enter] Choose | [Esc] Cancel")
	content := lipgloss.JoinVertical(
		lipgloss.Left,
		m.theme.Title.Render(m.title),
		strings.Join(lines, "\n"),
		"",
		help,
	)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		m.theme.BorderedBox.Render(content),
	)
}

// IsComplete returns whether a value was chosen.
func (m PickerModel) IsComplete() bool {
	return m.complete
}

// IsCanceled returns whether the picker was dismissed without a choice.
func (m PickerModel) IsCanceled() bool {
	return m.canceled
}

// GetResult returns the chosen value; "" is the "All" choice.
func (m PickerModel) GetResult() string {
	if m.cursor < 0 || m.cursor >= len(m.options) {
		return ""
	}
	return m.options[m.cursor]
}

// Resize updates the component size.
func (m *PickerModel) Resize(width, height int) {
	m.width = width
	m.height = height
}

func digit(s string) int {
	if len(s) != 1 || s[0] < '1' || s[0] > '9' {
		return 0
	}
	return int(s[0] - '0')
}
