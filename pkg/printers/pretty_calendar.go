package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/diary/pkg/calendar"
)

const width = len("11 12 13 14 15 16 17") // an example week

// Calendar prints the six-row month page. Days with entries are bold, today is
// yellow and the selected day is inverted; the annotation decides which one
// wins.
func (pp *PrettyPrint) Calendar(g calendar.MonthGrid, days [calendar.GridSize]calendar.Day) {
	tf := color.New(color.FgWhite, color.Italic)

	m := g.Title()
	mid := (width - len(m)) / 2
	if mid < 0 {
		mid = 0
	}
	_, _ = tf.Fprintf(pp.out(), "%s%s\n", strings.Repeat(" ", mid), m)
	_, _ = color.New(color.Faint).Fprintln(pp.out(), "Su Mo Tu We Th Fr Sa")

	for row := 0; row < calendar.Rows; row++ {
		cells := make([]string, 0, calendar.Columns)
		for col := 0; col < calendar.Columns; col++ {
			d := days[row*calendar.Columns+col]
			if d.Blank() {
				cells = append(cells, "  ")
				continue
			}
			cells = append(cells, styleFor(d.State()).Sprintf("%2d", d.Day))
		}
		_, _ = fmt.Fprintln(pp.out(), strings.Join(cells, " "))
	}
	pp.NewLine()
}

func styleFor(s calendar.State) *color.Color {
	switch s {
	case calendar.StateSelected:
		return color.New(color.ReverseVideo, color.Bold)
	case calendar.StateToday:
		return color.New(color.FgHiYellow, color.Bold)
	case calendar.StateEntry:
		return color.New(color.Bold, color.FgHiWhite)
	default:
		return color.New(color.Faint, color.FgWhite)
	}
}
