// Package entry runs the single-date commands: write, read and delete.
package entry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/diary/pkg/datekey"
	"tableflip.dev/diary/pkg/journal"
	"tableflip.dev/diary/pkg/printers"
	"tableflip.dev/diary/pkg/store"
)

var errNoStore = errors.New("entry: no store configured")

// Write replaces the text stored for Date.
type Write struct {
	Date  datekey.Key
	Text  string
	Store *store.Store
	Out   io.Writer
	JSON  bool
}

func (w *Write) Do(_ context.Context) error {
	if w.Store == nil {
		return errNoStore
	}
	if err := w.Store.Save(w.Date, w.Text); err != nil {
		return err
	}
	if w.JSON {
		return printJSON(w.Out, store.Entry{Date: w.Date, Text: w.Text})
	}
	_, err := fmt.Fprintf(w.Out, "saved: %s\n", w.Date)
	return err
}

// Read prints the text stored for Date.
type Read struct {
	Date  datekey.Key
	Store *store.Store
	Out   io.Writer
	JSON  bool
}

func (r *Read) Do(_ context.Context) error {
	if r.Store == nil {
		return errNoStore
	}
	text, err := r.Store.Load(r.Date)
	if err != nil {
		return err
	}
	e := store.Entry{Date: r.Date, Text: text}
	if r.JSON {
		return printJSON(r.Out, e)
	}
	pp := printers.PrettyPrint{Out: r.Out}
	pp.Entry(e)
	return nil
}

// Remove deletes the entry for Date after Confirm agrees. A nil Confirm
// deletes without asking.
type Remove struct {
	Date    datekey.Key
	Store   *store.Store
	Confirm journal.Confirm
	Out     io.Writer
	JSON    bool
}

func (r *Remove) Do(_ context.Context) error {
	if r.Store == nil {
		return errNoStore
	}
	deleted := false
	if r.Confirm == nil || r.Confirm(r.Date) {
		if err := r.Store.Delete(r.Date); err != nil {
			return err
		}
		deleted = true
	}
	if r.JSON {
		return printJSON(r.Out, map[string]interface{}{"date": r.Date, "deleted": deleted})
	}
	if !deleted {
		_, err := fmt.Fprintln(r.Out, "cancelled")
		return err
	}
	_, err := fmt.Fprintf(r.Out, "deleted: %s\n", r.Date)
	return err
}

func printJSON(out io.Writer, v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(b))
	return err
}
