package cal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"tableflip.dev/diary/pkg/calendar"
	"tableflip.dev/diary/pkg/datekey"
	"tableflip.dev/diary/pkg/printers"
	"tableflip.dev/diary/pkg/store"
)

// Cal prints Months consecutive month grids starting at Year/Month, marking
// Selected, today and the days that have entries.
type Cal struct {
	Year     int
	Month    int
	Months   int
	Selected datekey.Key
	Now      func() time.Time
	Store    *store.Store
	Out      io.Writer
	JSON     bool
}

// jsonMonth is the machine-readable month page.
type jsonMonth struct {
	Title string     `json:"title"`
	Cells []jsonCell `json:"cells"`
}

type jsonCell struct {
	Day   int         `json:"day,omitempty"`
	Date  datekey.Key `json:"date,omitempty"`
	State string      `json:"state"`
}

func (c *Cal) Do(_ context.Context) error {
	if c.Store == nil {
		return errors.New("cal: no store configured")
	}
	saved, err := c.Store.ListDates()
	if err != nil {
		return err
	}

	start := c.Selected
	if c.Year != 0 {
		start = datekey.New(c.Year, c.Month, 1)
	}
	nav := calendar.NewNavigator(start, calendar.WithClock(c.Now))
	today := nav.Today()

	n := c.Months
	if n < 1 {
		n = 1
	}
	pp := printers.PrettyPrint{Out: c.Out}
	pages := make([]jsonMonth, 0, n)
	for i := 0; i < n; i++ {
		g := nav.Grid()
		days := calendar.Annotate(g, c.Selected, today, saved)
		if c.JSON {
			pages = append(pages, toJSON(g, days))
		} else {
			pp.Calendar(g, days)
		}
		nav.StepMonth(1)
	}
	if c.JSON {
		b, err := json.MarshalIndent(pages, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(c.Out, string(b))
		return err
	}
	return nil
}

func toJSON(g calendar.MonthGrid, days [calendar.GridSize]calendar.Day) jsonMonth {
	page := jsonMonth{Title: g.Title(), Cells: make([]jsonCell, 0, calendar.GridSize)}
	for _, d := range days {
		page.Cells = append(page.Cells, jsonCell{Day: d.Day, Date: d.Date, State: d.State().String()})
	}
	return page
}
