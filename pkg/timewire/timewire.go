// Package timewire composes and formats the date/time values exchanged with
// booking clients. The wire instant format carries a literal Z suffix without
// timezone conversion; the suffix is a compatibility convention of the booking
// API, not a UTC guarantee.
package timewire

import (
	"errors"
	"fmt"
	"time"
)

const (
	// WireInstant is the instant format submitted with bookings.
	WireInstant = "2006-01-02T15:04:05.000Z"

	DateOnly  = "2006-01-02"
	ClockOnly = "15:04:05"
)

var (
	ErrInvalidDate = errors.New("invalid or missing calendar date")
	ErrInvalidTime = errors.New("invalid or missing time of day")
)

// Compose merges a separately chosen calendar date and time of day into one
// wire instant. Only the date fields of date and the clock fields of timeOfDay
// are read. Zero values are rejected rather than formatted into garbage.
func Compose(date, timeOfDay time.Time) (string, error) {
	if date.IsZero() {
		return "", ErrInvalidDate
	}
	if timeOfDay.IsZero() {
		return "", ErrInvalidTime
	}
	return date.Format(DateOnly) + "T" + timeOfDay.Format(ClockOnly) + ".000Z", nil
}

// ComposeStrings is Compose over the raw strings the booking clients send:
// a YYYY-MM-DD date and an HH:mm:ss time of day.
func ComposeStrings(date, timeOfDay string) (string, error) {
	d, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	t, err := ParseClock(timeOfDay)
	if err != nil {
		return "", err
	}
	return Compose(d, t)
}

// ParseWireInstant reads a composed instant back into a time.Time.
func ParseWireInstant(s string) (time.Time, error) {
	t, err := time.Parse(WireInstant, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// ParseClock accepts a time of day with or without seconds. Time pickers
// submit HH:MM; stored instants round-trip as HH:MM:SS.
func ParseClock(s string) (time.Time, error) {
	t, err := time.Parse(ClockOnly, s)
	if err == nil {
		return t, nil
	}
	t, err = time.Parse("15:04", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	return t, nil
}

// Clock formats just the time-of-day portion of t.
func Clock(t time.Time) string {
	return t.Format(ClockOnly)
}

// SameDate reports whether a and b fall on the same calendar date,
// ignoring time of day.
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
