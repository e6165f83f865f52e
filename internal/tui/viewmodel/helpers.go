package viewmodel

import (
	"fmt"
	"strings"
	"time"
)

// String returns a string representation of the app state.
func (s AppState) String() string {
	switch s {
	case StateLoading:
		return "Loading"
	case StateBrowsing:
		return "Browsing"
	case StateSubmitting:
		return "Submitting"
	case StateError:
		return "Error"
	default:
		return fmt.Sprintf("Unknown(%d)", s)
	}
}

// TruncateString truncates a string to the specified number of runes with ellipsis.
func TruncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:max(maxLen, 0)])
	}
	return string(runes[:maxLen-3]) + "..."
}

// SanitizeForDisplay removes potentially problematic characters for terminal display.
func SanitizeForDisplay(s string) string {
	s = strings.Map(func(r rune) rune {
		if r < 32 && r != '\t' {
			return ' '
		}
		return r
	}, s)

	return strings.Join(strings.Fields(s), " ")
}

// FormatDate formats a date for consistent display.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// FormatDateTime formats a timestamp in local time to the minute.
func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}

// ShortID keeps the first block of a UUID.
func ShortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return TruncateString(id, 8)
}

// Checkbox renders a tri-state checkbox.
func Checkbox(checked, indeterminate bool) string {
	switch {
	case checked:
		return "[x]"
	case indeterminate:
		return "[-]"
	default:
		return "[ ]"
	}
}

// PageIndicator renders "page/total", showing at least one page.
func (h HeaderView) PageIndicator() string {
	return fmt.Sprintf("%d/%d", h.Page, max(h.TotalPages, 1))
}

// FilterSummary describes the active category path and search query.
func (h HeaderView) FilterSummary() string {
	parts := make([]string, 0, 3)
	for _, name := range []string{h.Filter.Category1Name, h.Filter.Category2Name, h.Filter.Category3Name} {
		if name == "" {
			break
		}
		parts = append(parts, name)
	}

	summary := "All categories"
	if len(parts) > 0 {
		summary = strings.Join(parts, " › ")
	}
	if h.Filter.SearchQuery != "" {
		summary += fmt.Sprintf(" · %q", h.Filter.SearchQuery)
	}
	if h.Filter.ShowSelectedOnly {
		summary += " · selected only"
	}
	return summary
}
