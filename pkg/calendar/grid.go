// Package calendar computes month grids for the date picker and tracks which
// month the picker is showing.
package calendar

import (
	"strconv"
	"time"

	"tableflip.dev/diary/pkg/datekey"
)

const (
	// Columns is the number of weekday columns, Sunday first.
	Columns = 7
	// Rows is the fixed number of week rows.
	Rows = 6
	// GridSize is the number of cells in every MonthGrid.
	GridSize = Columns * Rows
)

// Cell is one grid position. Day is zero for blank cells.
type Cell struct {
	Day int
}

// Blank reports whether the cell is padding outside the month.
func (c Cell) Blank() bool { return c.Day == 0 }

// MonthGrid is a 6x7 page for one month. Column 0 is Sunday. It always has 42
// cells, even for months that fit in five rows.
type MonthGrid struct {
	Year  int
	Month int
	Cells [GridSize]Cell
}

// Grid lays out month of year.
func Grid(year, month int) MonthGrid {
	g := MonthGrid{Year: year, Month: month}
	offset := FirstWeekday(year, month)
	days := datekey.DaysIn(year, month)
	for day := 1; day <= days; day++ {
		g.Cells[offset+day-1] = Cell{Day: day}
	}
	return g
}

// FirstWeekday returns the weekday (0=Sunday) of the first of the month.
func FirstWeekday(year, month int) int {
	return int(time.Date(year, time.Month(month), 1, 12, 0, 0, 0, time.UTC).Weekday())
}

// Row returns the seven cells of week row i.
func (g MonthGrid) Row(i int) [Columns]Cell {
	var row [Columns]Cell
	copy(row[:], g.Cells[i*Columns:(i+1)*Columns])
	return row
}

// Contains reports whether day appears as a non-blank cell.
func (g MonthGrid) Contains(day int) bool {
	return day >= 1 && day <= datekey.DaysIn(g.Year, g.Month)
}

// Days returns the numbered days in grid order.
func (g MonthGrid) Days() []int {
	days := make([]int, 0, 31)
	for _, c := range g.Cells {
		if !c.Blank() {
			days = append(days, c.Day)
		}
	}
	return days
}

// Index returns the cell index holding day, or -1.
func (g MonthGrid) Index(day int) int {
	if !g.Contains(day) {
		return -1
	}
	return FirstWeekday(g.Year, g.Month) + day - 1
}

// Title is the month heading, for example "March 2024".
func (g MonthGrid) Title() string {
	return time.Month(g.Month).String() + " " + strconv.Itoa(g.Year)
}
