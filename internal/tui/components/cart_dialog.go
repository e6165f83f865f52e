package components

import (
	"fmt"
	"strings"

	"github.com/Veraticus/procure/internal/model"
	"github.com/Veraticus/procure/internal/tui/themes"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// CartDialogChoice is the button chosen in the cart dialog.
type CartDialogChoice int

// Cart dialog choices.
const (
	CartDialogGoToCart CartDialogChoice = iota
	CartDialogClose
)

var cartDialogOptions = []struct {
	label  string
	choice CartDialogChoice
}{
	{label: "Go to cart", choice: CartDialogGoToCart},
	{label: "Close", choice: CartDialogClose},
}

// CartDialogModel confirms a successful cart submission.
type CartDialogModel struct {
	theme      themes.Theme
	submission model.Submission
	cursor     int
	width      int
	height     int
	complete   bool
}

// NewCartDialogModel creates the dialog for a submission that was accepted.
func NewCartDialogModel(submission model.Submission, theme themes.Theme) CartDialogModel {
	return CartDialogModel{
		submission: submission,
		theme:      theme,
		width:      80,
		height:     24,
	}
}

// Update handles messages.
func (m CartDialogModel) Update(msg tea.Msg) (CartDialogModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down", "l", "right", "tab":
			m.cursor = (m.cursor + 1) % len(cartDialogOptions)

		case "k", "up", "h", "left", "shift+tab":
			m.cursor = (m.cursor + len(cartDialogOptions) - 1) % len(cartDialogOptions)

		case "enter":
			m.complete = true

		case "1", "g":
			m.cursor = 0
			m.complete = true

		case "2":
			m.cursor = 1
			m.complete = true

		case "esc", "q":
			m.cursor = 1
			m.complete = true
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	return m, nil
}

// View renders the dialog.
func (m CartDialogModel) View() string {
	title := m.theme.Title.Render("Added to cart")

	total := m.submission.TotalQuantity()
	summary := fmt.Sprintf("%d %s, %d %s in total",
		len(m.submission.Lines),
		plural(len(m.submission.Lines), "item", "items"),
		total,
		plural(total, "unit", "units"),
	)

	buttons := make([]string, 0, len(cartDialogOptions))
	for i, opt := range cartDialogOptions {
		label := fmt.Sprintf("[%d] %s", i+1, opt.label)
		if i == m.cursor {
			label = m.theme.Selected.Render(label)
		}
		buttons = append(buttons, label)
	}

	help := lipgloss.NewStyle().Foreground(m.theme.Muted).Render("[←→] Choose | [Enter] Confirm | [Esc] Close")

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		m.theme.StatusSuccess.Render(summary),
		"",
		strings.Join(buttons, "   "),
		"",
		help,
	)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		m.theme.RoundedBox.Render(content),
	)
}

// IsComplete returns whether a button was chosen.
func (m CartDialogModel) IsComplete() bool {
	return m.complete
}

// GetResult returns the chosen button.
func (m CartDialogModel) GetResult() CartDialogChoice {
	return cartDialogOptions[m.cursor].choice
}

// Resize updates the component size.
func (m *CartDialogModel) Resize(width, height int) {
	m.width = width
	m.height = height
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
