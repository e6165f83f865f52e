package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/procure/internal/app"
	"github.com/Veraticus/procure/internal/tui/viewmodel"
	"github.com/charmbracelet/lipgloss"
)

// renderLoading renders the loading screen.
func (m Model) renderLoading() string {
	content := lipgloss.JoinVertical(
		lipgloss.Center,
		m.theme.Title.Render("Procure"),
		"",
		lipgloss.NewStyle().Foreground(m.theme.Muted).Render("Starting..."),
	)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		content,
	)
}

// renderCompactView renders the layout for narrow terminals.
func (m Model) renderCompactView() string {
	return m.wrapWithBorder(m.renderScreen())
}

// renderFullView renders the layout with the navigation bar.
func (m Model) renderFullView() string {
	content := m.renderScreen()
	if m.session.IsAuthenticated() {
		content = lipgloss.JoinVertical(lipgloss.Left, m.renderNavBar(), content)
	}
	return m.wrapWithBorder(content)
}

// renderScreen renders the active route.
func (m Model) renderScreen() string {
	if m.state == StateCartDialog {
		return lipgloss.Place(
			m.width-4,
			m.height-5,
			lipgloss.Center,
			lipgloss.Center,
			m.cartDialog.View(),
		)
	}

	switch m.route {
	case app.RouteSignIn:
		return m.renderSignIn()
	case app.RouteCatalog:
		return m.renderCatalog()
	case app.RouteOrder:
		return m.orders.View()
	case app.RouteSignState:
		return m.renderAccount()
	default:
		return m.renderHome()
	}
}

// renderNavBar renders the screen tabs.
func (m Model) renderNavBar() string {
	home := viewmodel.NewHomeView(m.session, m.route, m.keymap.RouteKeys())

	tabs := make([]string, 0, len(home.Nav))
	for _, entry := range home.Nav {
		label := fmt.Sprintf("[%s] %s", entry.Key, entry.Title)
		if entry.IsActive {
			tabs = append(tabs, m.theme.Highlighted.Render(label))
		} else {
			tabs = append(tabs, lipgloss.NewStyle().Foreground(m.theme.Muted).Render(label))
		}
	}
	return strings.Join(tabs, "  ")
}

// renderHome renders the signed-in landing screen.
func (m Model) renderHome() string {
	home := viewmodel.NewHomeView(m.session, m.route, m.keymap.RouteKeys())

	lines := []string{
		m.theme.Title.Render(home.Welcome),
		"",
	}
	for _, entry := range home.Nav {
		if entry.Route == app.RouteHome {
			continue
		}
		lines = append(lines, fmt.Sprintf("  %s  %s",
			lipgloss.NewStyle().Foreground(m.theme.Primary).Render(entry.Key),
			m.theme.Normal.Render(entry.Title),
		))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderSignIn renders the screen shown to signed-out sessions.
func (m Model) renderSignIn() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.theme.Title.Render("Sign in"),
		"",
		m.theme.Normal.Render("You are not signed in."),
		m.theme.Normal.Render("Run this and start procure again:"),
		"",
		lipgloss.NewStyle().Foreground(m.theme.Primary).Render("  procure signin --token <token> --username <name>"),
	)
}

// renderAccount renders the signed-in session.
func (m Model) renderAccount() string {
	alias := m.session.Alias
	if alias == "" {
		alias = "-"
	}

	row := func(label, value string) string {
		return fmt.Sprintf("  %-12s %s",
			lipgloss.NewStyle().Foreground(m.theme.Muted).Render(label),
			m.theme.Normal.Render(value),
		)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.theme.Title.Render("Account"),
		"",
		row("Username", m.session.Username),
		row("Alias", alias),
		row("Signed in", viewmodel.FormatDateTime(m.session.SignedInAt)),
		"",
		lipgloss.NewStyle().Foreground(m.theme.Muted).Render("Run `procure signout` to sign out."),
	)
}

// renderCatalog renders the catalog table or its load state.
func (m Model) renderCatalog() string {
	switch {
	case m.appState == viewmodel.StateLoading && !m.catalogLoaded:
		return lipgloss.JoinVertical(
			lipgloss.Left,
			m.theme.Title.Render("Catalog"),
			"",
			lipgloss.NewStyle().Foreground(m.theme.Muted).Render("Fetching catalog..."),
		)
	case m.appState == viewmodel.StateError && !m.catalogLoaded:
		return lipgloss.JoinVertical(
			lipgloss.Left,
			m.theme.Title.Render("Catalog"),
			"",
			m.theme.StatusError.Render("The catalog could not be loaded."),
			lipgloss.NewStyle().Foreground(m.theme.Muted).Render("Press r to try again."),
		)
	}
	return m.catalogTable.View()
}

// renderHelp renders the help screen.
func (m Model) renderHelp() string {
	title := m.theme.Title.Render("Procure - Help")

	var content []string
	for i, group := range m.keymap.FullHelp() {
		if i < len(helpSections) {
			content = append(content, m.theme.Subtitle.Render(helpSections[i]))
		}

		for _, binding := range group {
			help := binding.Help()
			line := fmt.Sprintf("  %-12s %s",
				lipgloss.NewStyle().Foreground(m.theme.Primary).Render(help.Key),
				m.theme.Normal.Render(help.Desc),
			)
			content = append(content, line)
		}
		content = append(content, "")
	}

	helpText := lipgloss.JoinVertical(
		lipgloss.Left,
		content...,
	)

	footer := lipgloss.NewStyle().Foreground(m.theme.Muted).Render("Press ? or Esc to close help")

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		m.theme.BorderedBox.
			Width(60).
			MaxHeight(m.height-4).
			Render(
				lipgloss.JoinVertical(
					lipgloss.Left,
					title,
					"",
					helpText,
					footer,
				),
			),
	)
}

// wrapWithBorder adds a border around content.
func (m Model) wrapWithBorder(content string) string {
	statusBar := m.renderStatusBar()

	fullContent := lipgloss.JoinVertical(
		lipgloss.Left,
		content,
		statusBar,
	)

	return m.theme.BorderedBox.
		Width(m.width).
		Height(m.height).
		Render(fullContent)
}

// renderStatusBar renders the bottom status bar.
func (m Model) renderStatusBar() string {
	// Left: current screen and state
	left := m.route.Title()
	if m.appState != viewmodel.StateBrowsing {
		left = fmt.Sprintf("%s · %s", left, m.appState)
	}

	// Center: latest status message
	center := m.status
	centerStyle := m.theme.Normal
	if m.statusIsError {
		centerStyle = m.theme.StatusError
	}

	// Right: help hint
	right := "? Help"

	totalWidth := m.width - 4 // Account for borders
	center = viewmodel.TruncateString(center, max(0, totalWidth-lipgloss.Width(left)-lipgloss.Width(right)-2))

	spacing := max(0, totalWidth-lipgloss.Width(left)-lipgloss.Width(center)-lipgloss.Width(right))
	leftPad := spacing / 2
	rightPad := spacing - leftPad

	status := fmt.Sprintf("%s%s%s%s%s",
		m.theme.StatusInfo.Render(left),
		strings.Repeat(" ", leftPad),
		centerStyle.Render(center),
		strings.Repeat(" ", rightPad),
		lipgloss.NewStyle().Foreground(m.theme.Muted).Render(right),
	)

	return m.theme.Normal.
		Background(m.theme.Border).
		Width(m.width - 2).
		MaxWidth(m.width - 2).
		Render(status)
}
