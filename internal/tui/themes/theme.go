package themes

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the visual style for the TUI.
type Theme struct {
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Normal        lipgloss.Style
	Bold          lipgloss.Style
	Selected      lipgloss.Style
	Highlighted   lipgloss.Style
	Checked       lipgloss.Style
	Placeholder   lipgloss.Style
	Price         lipgloss.Style
	Box           lipgloss.Style
	BorderedBox   lipgloss.Style
	RoundedBox    lipgloss.Style
	StatusInfo    lipgloss.Style
	StatusError   lipgloss.Style
	StatusWarning lipgloss.Style
	StatusSuccess lipgloss.Style
	StatusPending lipgloss.Style
	Primary       lipgloss.Color
	Secondary     lipgloss.Color
	Muted         lipgloss.Color
	Border        lipgloss.Color
	Foreground    lipgloss.Color
	Background    lipgloss.Color
	Info          lipgloss.Color
	Error         lipgloss.Color
	Warning       lipgloss.Color
	Success       lipgloss.Color
}

type palette struct {
	primary, secondary, success, warning, errorC, info lipgloss.Color
	background, foreground, border, muted, subtle     lipgloss.Color
	surface                                           lipgloss.Color
}

func newTheme(p palette) Theme {
	return Theme{
		Primary:    p.primary,
		Secondary:  p.secondary,
		Success:    p.success,
		Warning:    p.warning,
		Error:      p.errorC,
		Info:       p.info,
		Background: p.background,
		Foreground: p.foreground,
		Border:     p.border,
		Muted:      p.muted,

		// Text styles
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.foreground).
			MarginBottom(1),
		Subtitle: lipgloss.NewStyle().
			Foreground(p.subtle),
		Normal: lipgloss.NewStyle().
			Foreground(p.foreground),
		Bold: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.foreground),
		Selected: lipgloss.NewStyle().
			Background(p.primary).
			Foreground(p.background).
			Bold(true),
		Highlighted: lipgloss.NewStyle().
			Background(p.surface).
			Foreground(p.foreground),

		// Table cells
		Checked: lipgloss.NewStyle().
			Foreground(p.success).
			Bold(true),
		Placeholder: lipgloss.NewStyle().
			Foreground(p.muted),
		Price: lipgloss.NewStyle().
			Foreground(p.secondary),

		// Component styles
		Box: lipgloss.NewStyle().
			Padding(1, 2),
		BorderedBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(p.border).
			Padding(1, 2),
		RoundedBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.border).
			Padding(1, 2),

		// Status styles
		StatusSuccess: lipgloss.NewStyle().
			Foreground(p.success).
			Bold(true),
		StatusWarning: lipgloss.NewStyle().
			Foreground(p.warning).
			Bold(true),
		StatusError: lipgloss.NewStyle().
			Foreground(p.errorC).
			Bold(true),
		StatusInfo: lipgloss.NewStyle().
			Foreground(p.info).
			Bold(true),
		StatusPending: lipgloss.NewStyle().
			Foreground(p.muted).
			Italic(true),
	}
}

// Default is the default theme.
var Default = newTheme(palette{
	primary:    lipgloss.Color("#7c3aed"),
	secondary:  lipgloss.Color("#a78bfa"),
	success:    lipgloss.Color("#10b981"),
	warning:    lipgloss.Color("#f59e0b"),
	errorC:     lipgloss.Color("#ef4444"),
	info:       lipgloss.Color("#3b82f6"),
	background: lipgloss.Color("#1a1a1a"),
	foreground: lipgloss.Color("#fafafa"),
	border:     lipgloss.Color("#404040"),
	muted:      lipgloss.Color("#737373"),
	subtle:     lipgloss.Color("#a3a3a3"),
	surface:    lipgloss.Color("#404040"),
})

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = newTheme(palette{
	primary:    lipgloss.Color("#cba6f7"),
	secondary:  lipgloss.Color("#f5c2e7"),
	success:    lipgloss.Color("#a6e3a1"),
	warning:    lipgloss.Color("#f9e2af"),
	errorC:     lipgloss.Color("#f38ba8"),
	info:       lipgloss.Color("#89dceb"),
	background: lipgloss.Color("#1e1e2e"),
	foreground: lipgloss.Color("#cdd6f4"),
	border:     lipgloss.Color("#45475a"),
	muted:      lipgloss.Color("#6c7086"),
	subtle:     lipgloss.Color("#a6adc8"),
	surface:    lipgloss.Color("#45475a"),
})

var byName = map[string]Theme{
	"default":          Default,
	"catppuccin-mocha": CatppuccinMocha,
}

// ByName returns a theme by its configuration name.
func ByName(name string) (Theme, bool) {
	theme, ok := byName[name]
	return theme, ok
}

// GetTheme returns a theme by name, falling back to Default.
func GetTheme(name string) Theme {
	if theme, ok := ByName(name); ok {
		return theme
	}
	return Default
}

// Names lists the known theme names.
func Names() []string {
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
