// Package journal is the editing session shared by the CLI and the TUI: one
// selected date, its text buffer, and the picker that chooses the date.
package journal

import (
	"context"
	"errors"
	"sort"

	"tableflip.dev/diary/pkg/calendar"
	"tableflip.dev/diary/pkg/datekey"
	"tableflip.dev/diary/pkg/store"
)

// Confirm gates destructive operations. It returns true to proceed.
type Confirm func(date datekey.Key) bool

// Session tracks the selected date and its editable text.
type Session struct {
	Store *store.Store
	Nav   *calendar.Navigator

	date  datekey.Key
	text  string
	dirty bool
}

// New opens a session on date, or today when date is empty.
func New(s *store.Store, nav *calendar.Navigator, date datekey.Key) (*Session, error) {
	if s == nil {
		return nil, errors.New("journal: no store configured")
	}
	if nav == nil {
		nav = calendar.NewNavigator(date)
	}
	j := &Session{Store: s, Nav: nav}
	if !date.Valid() {
		date = nav.Today()
	}
	if err := j.Open(date); err != nil {
		return nil, err
	}
	return j, nil
}

// Date returns the selected date.
func (j *Session) Date() datekey.Key { return j.date }

// Text returns the current buffer.
func (j *Session) Text() string { return j.text }

// Dirty reports whether the buffer differs from what was last loaded or saved.
func (j *Session) Dirty() bool { return j.dirty }

// SetText replaces the buffer.
func (j *Session) SetText(text string) {
	if text != j.text {
		j.dirty = true
	}
	j.text = text
}

// Open selects date and loads its text, discarding any unsaved buffer.
func (j *Session) Open(date datekey.Key) error {
	if !date.Valid() {
		return datekey.ErrInvalid
	}
	text, err := j.Store.Load(date)
	if err != nil {
		return err
	}
	j.date = date
	j.text = text
	j.dirty = false
	return nil
}

// PickDay selects day of the displayed month, closes the picker and opens the
// date.
func (j *Session) PickDay(day int) error {
	date := j.Nav.SelectDay(day)
	j.Nav.Close()
	return j.Open(date)
}

// PickToday opens today and moves the picker cursor to it.
func (j *Session) PickToday() error {
	today := j.Nav.Today()
	j.Nav.JumpTo(today)
	j.Nav.Close()
	return j.Open(today)
}

// Save persists the buffer for the selected date and returns a confirmation
// message.
func (j *Session) Save() (string, error) {
	if err := j.Store.Save(j.date, j.text); err != nil {
		return "", err
	}
	j.dirty = false
	return "saved: " + string(j.date), nil
}

// Delete removes the selected date's entry when confirm agrees. It reports
// whether the entry was deleted.
func (j *Session) Delete(confirm Confirm) (bool, error) {
	if confirm != nil && !confirm(j.date) {
		return false, nil
	}
	if err := j.Store.Delete(j.date); err != nil {
		return false, err
	}
	j.text = ""
	j.dirty = false
	return true, nil
}

// SavedDates lists dates with entries, newest first.
func (j *Session) SavedDates() ([]datekey.Key, error) {
	dates, err := j.Store.ListDates()
	if err != nil {
		return nil, err
	}
	sort.Slice(dates, func(a, b int) bool { return dates[a] > dates[b] })
	return dates, nil
}

// Month annotates the picker's displayed month.
func (j *Session) Month() (calendar.MonthGrid, [calendar.GridSize]calendar.Day, error) {
	dates, err := j.Store.ListDates()
	if err != nil {
		return calendar.MonthGrid{}, [calendar.GridSize]calendar.Day{}, err
	}
	g := j.Nav.Grid()
	return g, calendar.Annotate(g, j.date, j.Nav.Today(), dates), nil
}

// Reindex rebuilds the store index.
func (j *Session) Reindex(ctx context.Context) ([]datekey.Key, error) {
	return j.Store.Reindex(ctx)
}
