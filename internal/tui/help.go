package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

// HelpOverlayStyle frames the expanded key binding list.
var HelpOverlayStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("62")).
	Padding(0, 2).
	MarginTop(1)

// HelpModel renders the key bindings as a one-line footer or an expanded overlay.
type HelpModel struct {
	help   help.Model
	keymap KeyMap
}

// NewHelpModel creates a collapsed help model.
func NewHelpModel(keymap KeyMap) HelpModel {
	return HelpModel{
		help:   help.New(),
		keymap: keymap,
	}
}

// Toggle switches between the footer and the overlay.
func (m *HelpModel) Toggle() {
	m.help.ShowAll = !m.help.ShowAll
}

// Expanded reports whether the overlay is shown.
func (m HelpModel) Expanded() bool {
	return m.help.ShowAll
}

// View renders the help for the given terminal width.
func (m HelpModel) View(width int) string {
	if !m.help.ShowAll {
		m.help.Width = width
		return HelpStyle.Render(m.help.View(m.keymap))
	}
	m.help.Width = width - 6 // Account for padding and border
	return HelpOverlayStyle.Render(m.help.View(m.keymap))
}
