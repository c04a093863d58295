package calendar

import (
	"fmt"
	"time"

	"tableflip.dev/diary/pkg/datekey"
)

// Navigator holds the month a picker is displaying and whether the picker is
// open. It is not safe for concurrent use.
type Navigator struct {
	year  int
	month int
	open  bool
	now   func() time.Time
}

// NavigatorOption configures a Navigator.
type NavigatorOption func(*Navigator)

// WithClock sets the time source used for Today and the default cursor.
func WithClock(now func() time.Time) NavigatorOption {
	return func(n *Navigator) {
		if now != nil {
			n.now = now
		}
	}
}

// NewNavigator positions the cursor on selected's month, or on the current
// month when selected is empty or invalid.
func NewNavigator(selected datekey.Key, opts ...NavigatorOption) *Navigator {
	n := &Navigator{now: time.Now}
	for _, opt := range opts {
		opt(n)
	}
	if !selected.Valid() {
		selected = n.Today()
	}
	n.JumpTo(selected)
	return n
}

// Cursor returns the displayed year and month.
func (n *Navigator) Cursor() (year, month int) {
	return n.year, n.month
}

// Grid returns the grid for the displayed month.
func (n *Navigator) Grid() MonthGrid {
	return Grid(n.year, n.month)
}

// StepMonth moves the cursor by delta months, crossing year boundaries.
func (n *Navigator) StepMonth(delta int) {
	idx := n.year*12 + (n.month - 1) + delta
	year := idx / 12
	month := idx % 12
	if month < 0 {
		month += 12
		year--
	}
	n.year, n.month = year, month+1
}

// JumpTo moves the cursor to the month containing date.
func (n *Navigator) JumpTo(date datekey.Key) {
	y, m, _ := date.Components()
	if m == 0 {
		return
	}
	n.year, n.month = y, m
}

// SelectDay returns the key for day in the displayed month. day must be a
// numbered cell of the current grid; anything else is a programming error.
func (n *Navigator) SelectDay(day int) datekey.Key {
	if day < 1 || day > datekey.DaysIn(n.year, n.month) {
		panic(fmt.Sprintf("calendar: day %d outside %04d-%02d", day, n.year, n.month))
	}
	return datekey.New(n.year, n.month, day)
}

// Today returns the key for the current date. The cursor is not moved.
func (n *Navigator) Today() datekey.Key {
	return datekey.Today(n.now)
}

// IsOpen reports whether the picker is showing.
func (n *Navigator) IsOpen() bool { return n.open }

// Open shows the picker.
func (n *Navigator) Open() { n.open = true }

// Close hides the picker.
func (n *Navigator) Close() { n.open = false }

// Toggle flips the picker between open and closed.
func (n *Navigator) Toggle() { n.open = !n.open }
