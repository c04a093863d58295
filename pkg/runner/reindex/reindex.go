package reindex

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/diary/pkg/store"
)

// Reindex rebuilds the date index from the stored entries.
type Reindex struct {
	Store *store.Store
	Out   io.Writer
}

func (r *Reindex) Do(ctx context.Context) error {
	if r.Store == nil {
		return errors.New("reindex: no store configured")
	}
	before, err := r.Store.ListDates()
	if err != nil {
		return err
	}
	after, err := r.Store.Reindex(ctx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(r.Out, "indexed %d entries (was %d)\n", len(after), len(before))
	return err
}
