package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/diary/pkg/store"
)

const previewWidth = 60

type PrettyPrint struct {
	Out io.Writer
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " entry")
	default:
		_, _ = c.Fprintln(pp.out(), " entries")
	}
}

// Entry prints one day's text under its date.
func (pp *PrettyPrint) Entry(e store.Entry) {
	pp.Title(string(e.Date))
	if e.Text == "" {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), " none\n\n")
		return
	}
	_, _ = fmt.Fprintln(pp.out(), e.Text)
	pp.NewLine()
}

// Entries prints a table of dates with the first line of each entry.
func (pp *PrettyPrint) Entries(entries ...store.Entry) {
	pp.TitleWithCount("Saved", len(entries))
	if len(entries) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), " none\n\n")
		return
	}

	y := color.New(color.FgHiYellow)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = previewWidth
	for _, e := range entries {
		tbl.AddRow(y.Sprint(string(e.Date)), preview(e.Text))
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

func preview(text string) string {
	line, _, more := strings.Cut(strings.TrimSpace(text), "\n")
	if more {
		line += " …"
	}
	return line
}
