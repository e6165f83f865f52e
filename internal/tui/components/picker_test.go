package components

import (
	"testing"

	"github.com/Veraticus/procure/internal/tui/themes"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestNewPickerModel(t *testing.T) {
	tests := []struct {
		name       string
		current    string
		options    []string
		optional   bool
		wantCursor int
		wantResult string
	}{
		{
			name:       "optional starts on All",
			options:    []string{"Office", "Lab"},
			optional:   true,
			wantCursor: 0,
			wantResult: "",
		},
		{
			name:       "optional starts on current",
			options:    []string{"Office", "Lab"},
			current:    "Lab",
			optional:   true,
			wantCursor: 2,
			wantResult: "Lab",
		},
		{
			name:       "required starts on first",
			options:    []string{"Acme", "Zeta"},
			wantCursor: 0,
			wantResult: "Acme",
		},
		{
			name:       "unknown current",
			options:    []string{"Acme", "Zeta"},
			current:    "Nobody",
			wantCursor: 0,
			wantResult: "Acme",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewPickerModel("Pick", tt.options, tt.current, tt.optional, themes.Default)
			assert.Equal(t, tt.wantCursor, m.cursor)
			assert.Equal(t, tt.wantResult, m.GetResult())
			assert.False(t, m.IsComplete())
			assert.False(t, m.IsCanceled())
		})
	}
}

func TestPickerModel_Navigation(t *testing.T) {
	m := NewPickerModel("Pick", []string{"Office", "Lab"}, "", true, themes.Default)

	m, _ = m.Update(keyMsg("k"))
	assert.Equal(t, 2, m.cursor)

	m, _ = m.Update(keyMsg("j"))
	assert.Equal(t, 0, m.cursor)

	m, _ = m.Update(keyMsg("G"))
	assert.Equal(t, "Lab", m.GetResult())

	m, _ = m.Update(keyMsg("g"))
	assert.Empty(t, m.GetResult())

	m, _ = m.Update(keyMsg("enter"))
	assert.True(t, m.IsComplete())
}

func TestPickerModel_DigitChooses(t *testing.T) {
	m := NewPickerModel("Pick", []string{"Office", "Lab"}, "", true, themes.Default)

	m, _ = m.Update(keyMsg("9"))
	assert.False(t, m.IsComplete())

	m, _ = m.Update(keyMsg("2"))
	assert.True(t, m.IsComplete())
	assert.Equal(t, "Office", m.GetResult())
}

func TestPickerModel_Cancel(t *testing.T) {
	m := NewPickerModel("Pick", []string{"Acme"}, "", false, themes.Default)
	m, _ = m.Update(keyMsg("esc"))
	assert.True(t, m.IsCanceled())
	assert.False(t, m.IsComplete())

	empty := NewPickerModel("Pick", nil, "", false, themes.Default)
	empty, _ = empty.Update(keyMsg("enter"))
	assert.True(t, empty.IsCanceled())
	assert.Empty(t, empty.GetResult())
}

func TestPickerModel_View(t *testing.T) {
	m := NewPickerModel("Category 1", []string{"Office", "Lab"}, "Office", true, themes.Default)
	m, _ = m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})

	out := m.View()
	assert.Contains(t, out, "Category 1")
	assert.Contains(t, out, "1 All")
	assert.Contains(t, out, "> Office")
	assert.Contains(t, out, "3 Lab")
}
