// Package datekey implements the canonical YYYY-MM-DD key used to address
// journal entries.
package datekey

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

const layoutISO = "2006-01-02"

// Key is a calendar date in canonical YYYY-MM-DD form. Keys are local calendar
// dates; no timezone conversion is ever applied.
type Key string

// ErrInvalid is wrapped by every Parse failure.
var ErrInvalid = errors.New("datekey: invalid date")

// New formats components into a Key. Components are never normalized, so
// New(2024, 2, 30) yields "2024-02-30"; use Valid to check the result.
func New(year, month, day int) Key {
	return Key(fmt.Sprintf("%04d-%02d-%02d", year, month, day))
}

// FromTime returns the key for the calendar date of t in t's own location.
func FromTime(t time.Time) Key {
	return New(t.Year(), int(t.Month()), t.Day())
}

// Today returns the key for now in the local timezone.
func Today(now func() time.Time) Key {
	if now == nil {
		now = time.Now
	}
	return FromTime(now().Local())
}

// Parse validates s and returns it as a Key.
func Parse(s string) (Key, error) {
	k := Key(s)
	if _, _, _, err := k.split(); err != nil {
		return "", err
	}
	return k, nil
}

// MustParse is Parse for literals.
func MustParse(s string) Key {
	k, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return k
}

// Components splits the key into year, month and day. It returns zeros for an
// invalid key.
func (k Key) Components() (year, month, day int) {
	y, m, d, err := k.split()
	if err != nil {
		return 0, 0, 0
	}
	return y, m, d
}

// Valid reports whether k names a real calendar day.
func (k Key) Valid() bool {
	_, _, _, err := k.split()
	return err == nil
}

// Time returns midnight of the key's date in loc.
func (k Key) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	y, m, d := k.Components()
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, loc)
}

func (k Key) String() string { return string(k) }

func (k Key) split() (year, month, day int, err error) {
	s := string(k)
	if len(s) != len(layoutISO) || s[4] != '-' || s[7] != '-' {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalid, s)
	}
	if year, err = digits(s[0:4]); err != nil {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalid, s)
	}
	if month, err = digits(s[5:7]); err != nil {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalid, s)
	}
	if day, err = digits(s[8:10]); err != nil {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalid, s)
	}
	if month < 1 || month > 12 || day < 1 || day > DaysIn(year, month) {
		return 0, 0, 0, fmt.Errorf("%w: %q out of range", ErrInvalid, s)
	}
	return year, month, day, nil
}

func digits(s string) (int, error) {
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, strconv.ErrSyntax
		}
	}
	return strconv.Atoi(s)
}

// IsLeap reports whether year is a leap year in the proleptic Gregorian
// calendar.
func IsLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysIn returns the number of days in month of year.
func DaysIn(year, month int) int {
	switch month {
	case 2:
		if IsLeap(year) {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	default:
		return 31
	}
}
