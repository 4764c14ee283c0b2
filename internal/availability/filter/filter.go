// Package filter decides which candidate dates and times a booking client may
// pick, given a carer's availability snapshot. It is pure: the snapshot is
// fetched elsewhere and handed in read-only.
package filter

import (
	"time"

	"carebook/pkg/model"
	"carebook/pkg/timewire"
)

const (
	slotStepMinutes  = 15
	trailingSubSlots = 3
	minutesPerDay    = 24 * 60
)

// IsTimeDisabled reports whether a candidate start time must be disabled for
// the day described by slots. Slots are assumed sorted ascending by TimeSlot.
//
// The three 15-minute increments after the last slot are suppressed rather
// than reported as missing: the last slot is the latest legitimate start, and
// the picker's 15-minute grid would otherwise surface the closing sub-slots
// as an error instead of an expected boundary.
func IsTimeDisabled(candidate time.Time, slots []model.AvailabilitySlot) bool {
	if len(slots) == 0 {
		return true
	}

	want := timewire.Clock(candidate)

	last := slots[len(slots)-1].TimeSlot
	for k := 1; k <= trailingSubSlots; k++ {
		if want == timewire.Clock(addClockMinutes(last, k*slotStepMinutes)) {
			return true
		}
	}

	for _, slot := range slots {
		if timewire.Clock(slot.TimeSlot) == want {
			return !slot.IsCarerAvailable
		}
	}
	return true
}

// IsDateDisabled reports whether a calendar date must be disabled. The
// comparison is date-only; an absent date is disabled. No trailing-window
// logic applies to dates.
func IsDateDisabled(candidate time.Time, dates []model.AvailableDate) bool {
	for _, d := range dates {
		if timewire.SameDate(d.Date, candidate) {
			return !d.IsCarerAvailable
		}
	}
	return true
}

// HasAnyAvailability reports whether at least one slot has a free carer.
// A false result is an expected state that drives the "no carer available"
// message, not an error.
func HasAnyAvailability(slots []model.AvailabilitySlot) bool {
	for _, slot := range slots {
		if slot.IsCarerAvailable {
			return true
		}
	}
	return false
}

// addClockMinutes advances only the clock portion of t, rolling minutes into
// hours and wrapping at midnight. Seconds are preserved.
func addClockMinutes(t time.Time, minutes int) time.Time {
	total := (t.Hour()*60 + t.Minute() + minutes) % minutesPerDay
	return time.Date(0, 1, 1, total/60, total%60, t.Second(), 0, time.UTC)
}
