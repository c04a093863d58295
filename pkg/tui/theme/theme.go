package theme

import (
	"github.com/charmbracelet/lipgloss"

	"tableflip.dev/diary/pkg/calendar"
)

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Title    lipgloss.Style
	Footer   FooterTheme
	Picker   PickerTheme
	Saved    SavedTheme
	Calendar calendar.Options
}

// FooterTheme groups styles used by the bottom status/help lines.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
}

// PickerTheme styles the framed month picker.
type PickerTheme struct {
	Frame lipgloss.Style
	Help  lipgloss.Style
}

// SavedTheme styles the row of saved dates.
type SavedTheme struct {
	Date   lipgloss.Style
	Active lipgloss.Style
	Empty  lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	accent := lipgloss.Color("94")
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	help := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	cal := calendar.DefaultOptions()
	cal.ShowTitle = true

	return Theme{
		Title: lipgloss.NewStyle().Bold(true).Foreground(accent),
		Footer: FooterTheme{
			Help:   help,
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
			Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		},
		Picker: PickerTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(accent).
				Padding(0, 1),
			Help: help,
		},
		Saved: SavedTheme{
			Date:   muted,
			Active: lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(accent),
			Empty:  muted.Italic(true),
		},
		Calendar: cal,
	}
}
