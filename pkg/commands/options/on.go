package options

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/diary/pkg/datekey"
)

const (
	layoutISO      = "2006-1-2"
	layoutISOShort = "1/2"
)

// OnOptions selects the entry date.
type OnOptions struct {
	OnString string
}

func AddOnArgs(cmd *cobra.Command, o *OnOptions) {
	cmd.Flags().StringVar(&o.OnString, "on", "today",
		`Specify a date, example: --on="2024-03-05", --on="3/5" or --on=today.`)
}

// GetOn resolves the flag against now. "M/D" means that day of the current
// year.
func (o *OnOptions) GetOn(now time.Time) (datekey.Key, error) {
	s := strings.TrimSpace(o.OnString)
	if s == "" || strings.EqualFold(s, "today") {
		return datekey.FromTime(now), nil
	}
	if strings.EqualFold(s, "yesterday") {
		return datekey.FromTime(now.AddDate(0, 0, -1)), nil
	}
	if k, err := datekey.Parse(s); err == nil {
		return k, nil
	}
	t, err := time.Parse(layoutISO, s)
	if err != nil {
		t, err = time.Parse(layoutISOShort, s)
		if err != nil {
			return "", fmt.Errorf("unrecognized date %q: %w", s, datekey.ErrInvalid)
		}
		t = time.Date(now.Year(), t.Month(), t.Day(), 0, 0, 0, 0, now.Location())
		if int(t.Month()) != monthOf(s) {
			return "", fmt.Errorf("%q is not a day in %d: %w", s, now.Year(), datekey.ErrInvalid)
		}
	}
	return datekey.FromTime(t), nil
}

func monthOf(short string) int {
	var m, d int
	_, _ = fmt.Sscanf(short, "%d/%d", &m, &d)
	return m
}

// MonthOptions selects the month shown by the calendar.
type MonthOptions struct {
	Month string
	Next  int
}

func AddMonthArgs(cmd *cobra.Command, o *MonthOptions) {
	cmd.Flags().StringVar(&o.Month, "month", "",
		`Month to show, example: --month="2024-03". Defaults to the month of --on.`)
	cmd.Flags().IntVar(&o.Next, "next", 1,
		"Number of consecutive months to show.")
}

// GetMonth parses --month, returning ok=false when unset.
func (o *MonthOptions) GetMonth() (year, month int, ok bool, err error) {
	s := strings.TrimSpace(o.Month)
	if s == "" {
		return 0, 0, false, nil
	}
	t, err := time.Parse("2006-01", s)
	if err != nil {
		if t, err = time.Parse("2006-1", s); err != nil {
			return 0, 0, false, fmt.Errorf("unrecognized month %q, want YYYY-MM", s)
		}
	}
	return t.Year(), int(t.Month()), true, nil
}

// YesOptions skips confirmation prompts.
type YesOptions struct {
	Yes bool
}

func AddYesArgs(cmd *cobra.Command, o *YesOptions) {
	cmd.Flags().BoolVarP(&o.Yes, "yes", "y", false,
		"Do not ask for confirmation.")
}
