package ui

import (
	"context"
	"errors"
	"time"

	"tableflip.dev/diary/pkg/calendar"
	"tableflip.dev/diary/pkg/datekey"
	"tableflip.dev/diary/pkg/journal"
	"tableflip.dev/diary/pkg/store"
	"tableflip.dev/diary/pkg/tui"
)

// UI opens the interactive journal on Date, or today when Date is empty.
type UI struct {
	Store *store.Store
	Date  datekey.Key
	Now   func() time.Time
}

func (u *UI) Do(ctx context.Context) error {
	if u.Store == nil {
		return errors.New("ui: no store configured")
	}
	nav := calendar.NewNavigator(u.Date, calendar.WithClock(u.Now))
	session, err := journal.New(u.Store, nav, u.Date)
	if err != nil {
		return err
	}
	return tui.Run(ctx, session)
}
