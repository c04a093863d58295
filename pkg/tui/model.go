// Package tui is the interactive journal: a month picker over a text editor
// bound to a journal.Session.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/diary/pkg/calendar"
	"tableflip.dev/diary/pkg/datekey"
	"tableflip.dev/diary/pkg/journal"
	"tableflip.dev/diary/pkg/kv"
	"tableflip.dev/diary/pkg/store"
	"tableflip.dev/diary/pkg/tui/theme"
)

const maxSavedShown = 8

type savedDatesMsg struct {
	dates []datekey.Key
	err   error
}

type storeEventMsg struct {
	ok bool
}

// Model is the Bubble Tea model for the journal.
type Model struct {
	session *journal.Session
	editor  textarea.Model
	theme   theme.Theme
	events  <-chan kv.Event

	saved      []datekey.Key
	cursorDay  int
	confirming bool
	status     string
	err        error

	width  int
	height int
}

// New builds a model over session. events may be nil.
func New(session *journal.Session, events <-chan kv.Event) *Model {
	ed := textarea.New()
	ed.Placeholder = "Write today's log here..."
	ed.ShowLineNumbers = false
	ed.SetWidth(60)
	ed.SetHeight(12)
	ed.SetValue(session.Text())
	ed.Focus()

	return &Model{
		session: session,
		editor:  ed,
		theme:   theme.Default(),
		events:  events,
	}
}

// Run starts the program and blocks until the user quits or ctx is done.
func Run(ctx context.Context, session *journal.Session) error {
	events, err := session.Store.Watch(ctx)
	if err != nil && !errors.Is(err, store.ErrWatchUnsupported) {
		return err
	}
	p := tea.NewProgram(New(session, events), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.loadSaved, m.waitForEvent())
}

func (m *Model) loadSaved() tea.Msg {
	dates, err := m.session.SavedDates()
	return savedDatesMsg{dates: dates, err: err}
}

func (m *Model) waitForEvent() tea.Cmd {
	if m.events == nil {
		return nil
	}
	events := m.events
	return func() tea.Msg {
		_, ok := <-events
		return storeEventMsg{ok: ok}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if msg.Width > 4 {
			m.editor.SetWidth(msg.Width - 4)
		}
		return m, nil

	case savedDatesMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.saved = msg.dates
		return m, nil

	case storeEventMsg:
		if !msg.ok {
			m.events = nil
			return m, nil
		}
		return m, tea.Batch(m.loadSaved, m.waitForEvent())

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if m.confirming {
		m.confirming = false
		if key == "y" || key == "Y" {
			return m, m.delete()
		}
		m.status = "delete cancelled"
		return m, nil
	}

	switch key {
	case "ctrl+c":
		return m, tea.Quit
	case "ctrl+o":
		m.togglePicker()
		return m, nil
	case "ctrl+s":
		return m, m.save()
	case "ctrl+d":
		m.confirming = true
		m.status = fmt.Sprintf("delete %s? (y/n)", m.session.Date())
		return m, nil
	case "ctrl+t":
		return m, m.open(m.session.PickToday())
	}

	if m.session.Nav.IsOpen() {
		return m, m.handlePicker(key)
	}
	if key == "esc" {
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	m.session.SetText(m.editor.Value())
	return m, cmd
}

func (m *Model) handlePicker(key string) tea.Cmd {
	switch key {
	case "esc":
		m.session.Nav.Close()
		return m.editor.Focus()
	case "left", "h":
		m.moveCursor(-1)
	case "right", "l":
		m.moveCursor(1)
	case "up", "k":
		m.moveCursor(-7)
	case "down", "j":
		m.moveCursor(7)
	case "[", "pgup":
		m.session.Nav.StepMonth(-1)
		m.clampCursor()
	case "]", "pgdown":
		m.session.Nav.StepMonth(1)
		m.clampCursor()
	case "t":
		return m.open(m.session.PickToday())
	case "enter", " ":
		if !m.session.Nav.Grid().Contains(m.cursorDay) {
			return nil
		}
		return m.open(m.session.PickDay(m.cursorDay))
	}
	return nil
}

func (m *Model) togglePicker() {
	nav := m.session.Nav
	if nav.IsOpen() {
		nav.Close()
		m.editor.Focus()
		return
	}
	nav.JumpTo(m.session.Date())
	_, _, d := m.session.Date().Components()
	m.cursorDay = d
	nav.Open()
	m.editor.Blur()
}

// moveCursor moves the picker highlight by delta days, stepping the month when
// it runs off either end.
func (m *Model) moveCursor(delta int) {
	nav := m.session.Nav
	y, mo := nav.Cursor()
	day := m.cursorDay + delta
	switch {
	case day < 1:
		nav.StepMonth(-1)
		y, mo = nav.Cursor()
		day += datekey.DaysIn(y, mo)
	case day > datekey.DaysIn(y, mo):
		day -= datekey.DaysIn(y, mo)
		nav.StepMonth(1)
	}
	m.cursorDay = day
}

func (m *Model) clampCursor() {
	y, mo := m.session.Nav.Cursor()
	if n := datekey.DaysIn(y, mo); m.cursorDay > n {
		m.cursorDay = n
	}
	if m.cursorDay < 1 {
		m.cursorDay = 1
	}
}

// open finishes a date change: the editor shows the new date's text.
func (m *Model) open(err error) tea.Cmd {
	if err != nil {
		m.err = err
		return nil
	}
	m.err = nil
	m.status = ""
	m.editor.SetValue(m.session.Text())
	return m.editor.Focus()
}

func (m *Model) save() tea.Cmd {
	m.session.SetText(m.editor.Value())
	msg, err := m.session.Save()
	if err != nil {
		m.err = err
		return nil
	}
	m.err = nil
	m.status = msg
	return m.loadSaved
}

func (m *Model) delete() tea.Cmd {
	deleted, err := m.session.Delete(nil)
	if err != nil {
		m.err = err
		return nil
	}
	if deleted {
		m.editor.SetValue("")
		m.status = "deleted: " + string(m.session.Date())
	}
	m.err = nil
	return m.loadSaved
}

func (m *Model) View() string {
	var b strings.Builder

	title := "Diary · " + string(m.session.Date())
	if m.session.Dirty() {
		title += " *"
	}
	b.WriteString(m.theme.Title.Render(title))
	b.WriteString("\n\n")

	if m.session.Nav.IsOpen() {
		b.WriteString(m.theme.Picker.Frame.Render(m.renderPicker()))
		b.WriteString("\n")
		b.WriteString(m.theme.Picker.Help.Render("←↑↓→ move · [ ] month · enter pick · t today · esc close"))
		b.WriteString("\n\n")
	}

	b.WriteString(m.editor.View())
	b.WriteString("\n\n")
	b.WriteString(m.renderSaved())
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(m.theme.Footer.Error.Render("error: " + m.err.Error()))
	case m.status != "":
		b.WriteString(m.theme.Footer.Status.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(m.theme.Footer.Help.Render("ctrl+s save · ctrl+d delete · ctrl+o calendar · ctrl+t today · esc quit"))
	return b.String()
}

// pickerDays marks the displayed month against the open date. The keyboard
// cursor is drawn separately so the open date keeps its highlight.
func (m *Model) pickerDays() (calendar.MonthGrid, [calendar.GridSize]calendar.Day) {
	g := m.session.Nav.Grid()
	return g, calendar.Annotate(g, m.session.Date(), m.session.Nav.Today(), m.saved)
}

func (m *Model) renderPicker() string {
	g, days := m.pickerDays()
	opts := m.theme.Calendar
	if g.Contains(m.cursorDay) {
		opts.Cursor = m.cursorDay
	}
	return calendar.Render(g, days, opts)
}

func (m *Model) renderSaved() string {
	if len(m.saved) == 0 {
		return m.theme.Saved.Empty.Render("no saved entries yet")
	}
	shown := m.saved
	if len(shown) > maxSavedShown {
		shown = shown[:maxSavedShown]
	}
	parts := make([]string, 0, len(shown)+1)
	for _, d := range shown {
		if d == m.session.Date() {
			parts = append(parts, m.theme.Saved.Active.Render(string(d)))
			continue
		}
		parts = append(parts, m.theme.Saved.Date.Render(string(d)))
	}
	if extra := len(m.saved) - len(shown); extra > 0 {
		parts = append(parts, m.theme.Saved.Date.Render(fmt.Sprintf("+%d more", extra)))
	}
	return "saved: " + strings.Join(parts, " ")
}
