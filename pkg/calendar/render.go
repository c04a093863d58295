package calendar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const weekdayHeader = "Su Mo Tu We Th Fr Sa"

// Options controls calendar styling. Cursor, when non-zero, is a day of the
// month drawn with CursorStyle layered over its state style.
type Options struct {
	TitleStyle    lipgloss.Style
	HeaderStyle   lipgloss.Style
	EmptyStyle    lipgloss.Style
	PlainStyle    lipgloss.Style
	EntryStyle    lipgloss.Style
	TodayStyle    lipgloss.Style
	SelectedStyle lipgloss.Style
	CursorStyle   lipgloss.Style
	Cursor        int
	ShowTitle     bool
	ShowHeader    bool
}

// DefaultOptions returns the styling used for calendar rendering.
func DefaultOptions() Options {
	plain := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	entry := lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)
	return Options{
		TitleStyle:    lipgloss.NewStyle().Bold(true),
		HeaderStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Bold(true),
		EmptyStyle:    lipgloss.NewStyle(),
		PlainStyle:    plain,
		EntryStyle:    entry,
		TodayStyle:    lipgloss.NewStyle().Background(lipgloss.Color("220")).Foreground(lipgloss.Color("0")).Bold(true),
		SelectedStyle: lipgloss.NewStyle().Background(lipgloss.Color("94")).Foreground(lipgloss.Color("15")).Bold(true),
		CursorStyle:   lipgloss.NewStyle().Underline(true).Reverse(true),
		ShowTitle:     true,
		ShowHeader:    true,
	}
}

// Render draws annotated days as six week rows, optionally preceded by the
// month title and weekday header. All six rows are always drawn.
func Render(g MonthGrid, days [GridSize]Day, opts Options) string {
	lines := make([]string, 0, Rows+2)
	if opts.ShowTitle {
		title := g.Title()
		pad := (len(weekdayHeader) - len(title)) / 2
		if pad < 0 {
			pad = 0
		}
		lines = append(lines, strings.Repeat(" ", pad)+opts.TitleStyle.Render(title))
	}
	if opts.ShowHeader {
		lines = append(lines, opts.HeaderStyle.Render(weekdayHeader))
	}
	for row := 0; row < Rows; row++ {
		cells := make([]string, 0, Columns)
		for col := 0; col < Columns; col++ {
			cells = append(cells, renderDay(days[row*Columns+col], opts))
		}
		lines = append(lines, strings.Join(cells, " "))
	}
	return strings.Join(lines, "\n")
}

func renderDay(d Day, opts Options) string {
	if d.Blank() {
		return opts.EmptyStyle.Render("  ")
	}
	style := opts.StyleFor(d.State())
	if opts.Cursor != 0 && d.Day == opts.Cursor {
		style = opts.CursorStyle.Inherit(style)
	}
	return style.Render(fmt.Sprintf("%2d", d.Day))
}

// StyleFor returns the style used for a cell state.
func (o Options) StyleFor(s State) lipgloss.Style {
	switch s {
	case StateSelected:
		return o.SelectedStyle
	case StateToday:
		return o.TodayStyle
	case StateEntry:
		return o.EntryStyle
	case StatePlain:
		return o.PlainStyle
	default:
		return o.EmptyStyle
	}
}
