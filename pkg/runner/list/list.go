package list

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"

	"tableflip.dev/diary/pkg/printers"
	"tableflip.dev/diary/pkg/store"
)

// List prints every saved date, newest first.
type List struct {
	Store *store.Store
	Out   io.Writer
	JSON  bool
}

func (l *List) Do(_ context.Context) error {
	if l.Store == nil {
		return errors.New("list: no store configured")
	}
	entries, err := l.Store.Entries()
	if err != nil {
		return err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Date > entries[j].Date })

	if l.JSON {
		b, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(l.Out, string(b))
		return err
	}
	pp := printers.PrettyPrint{Out: l.Out}
	pp.Entries(entries...)
	return nil
}
