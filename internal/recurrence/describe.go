package recurrence

import (
	"fmt"
	"time"

	"carebook/pkg/model"
	"carebook/pkg/timewire"
)

const displayDate = "02 Jan 2006"

// Describe renders the human-readable repeat summary the booking dialogs
// show: start date, cadence and inclusive end date. The end date is start
// plus the resolved duration minus one day, so it names the last day a
// visit can fall on rather than the exclusive boundary.
func Describe(sel model.RecurrenceSelection, startDate, startTime time.Time) (string, error) {
	return DescribeWithin(sel, startDate, startTime, DefaultBounds)
}

func DescribeWithin(sel model.RecurrenceSelection, startDate, startTime time.Time, bounds Bounds) (string, error) {
	if !KnownFrequency(sel.Frequency) {
		return "", fmt.Errorf("%w: %q", ErrUnknownFrequency, sel.Frequency)
	}
	if startDate.IsZero() {
		return "", timewire.ErrInvalidDate
	}
	if startTime.IsZero() {
		return "", timewire.ErrInvalidTime
	}

	count, unit, err := resolveDuration(sel, bounds)
	if err != nil {
		return "", err
	}

	endDate := addDuration(startDate, count, unit).AddDate(0, 0, -1)
	start := startDate.Format(displayDate)
	end := endDate.Format(displayDate)
	clock := startTime.Format("15:04")

	switch sel.Frequency {
	case FrequencyDaily:
		return fmt.Sprintf("Starts from %s and repeats every day at %s up to %s", start, clock, end), nil
	case FrequencyWeekly:
		return fmt.Sprintf("Starts from %s and repeats every %s at %s up to %s", start, startDate.Weekday(), clock, end), nil
	case FrequencyFortnightly:
		return fmt.Sprintf("Starts from %s and repeats every second week on %s at %s up to %s", start, startDate.Weekday(), clock, end), nil
	default: // monthly
		return fmt.Sprintf("Starts from %s and repeats every month on the %s at %s up to %s", start, ordinal(startDate.Day()), clock, end), nil
	}
}

// EndDate resolves the inclusive end date a selection implies for a start
// date. Exposed so callers can cross-check a descriptor against the message.
func EndDate(sel model.RecurrenceSelection, startDate time.Time) (time.Time, error) {
	count, unit, err := resolveDuration(sel, DefaultBounds)
	if err != nil {
		return time.Time{}, err
	}
	return addDuration(startDate, count, unit).AddDate(0, 0, -1), nil
}

func addDuration(start time.Time, count int, unit string) time.Time {
	switch unit {
	case UnitWeek:
		return start.AddDate(0, 0, 7*count)
	case UnitMonth:
		return start.AddDate(0, count, 0)
	default: // year
		return start.AddDate(count, 0, 0)
	}
}

func ordinal(day int) string {
	suffix := "th"
	switch {
	case day%100 >= 11 && day%100 <= 13:
	case day%10 == 1:
		suffix = "st"
	case day%10 == 2:
		suffix = "nd"
	case day%10 == 3:
		suffix = "rd"
	}
	return fmt.Sprintf("%d%s", day, suffix)
}
