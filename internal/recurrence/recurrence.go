// Package recurrence normalizes a booking client's repeat selection into the
// integer descriptor the booking API stores, and renders the matching display
// message. Both paths share one duration resolution so the message and the
// submitted descriptor can never disagree.
package recurrence

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"carebook/pkg/model"
)

const (
	FrequencyDaily       = "daily"
	FrequencyWeekly      = "weekly"
	FrequencyFortnightly = "fortnightly"
	FrequencyMonthly     = "monthly"

	UnitWeek  = "week"
	UnitMonth = "month"
	UnitYear  = "year"

	// OptionCustom is the sentinel duration option that switches to the
	// custom unit/count fields.
	OptionCustom = "Custom"
)

var frequencyIntervals = map[string]int{
	FrequencyDaily:       1,
	FrequencyWeekly:      2,
	FrequencyFortnightly: 3,
	FrequencyMonthly:     4,
}

var unitCodes = map[string]int{
	UnitWeek:  1,
	UnitMonth: 2,
	UnitYear:  3,
}

// DurationOptions is the fixed catalog offered by the booking dialogs,
// plus the Custom sentinel.
var DurationOptions = []string{
	"1 Week",
	"2 Week",
	"3 Week",
	"1 Month",
	"2 Month",
	"3 Month",
	"6 Month",
	"1 Year",
	OptionCustom,
}

// Bounds caps the custom duration path. The entry widgets historically capped
// at 24 weeks / 6 months while validation messages referenced 52/12; the
// widget caps are authoritative here.
type Bounds struct {
	MaxWeeks  int
	MaxMonths int
}

var DefaultBounds = Bounds{MaxWeeks: 24, MaxMonths: 6}

var (
	ErrUnknownFrequency      = errors.New("unknown recurrence frequency")
	ErrUnknownDurationOption = errors.New("unknown duration option")
	ErrMissingCustomFields   = errors.New("custom recurrence requires both a unit and a count")
	ErrCustomCountOutOfRange = errors.New("custom recurrence count out of range")
)

// Normalize converts a selection into the wire descriptor using the default
// custom-duration bounds.
func Normalize(sel model.RecurrenceSelection) (model.RecurrenceDescriptor, error) {
	return NormalizeWithin(sel, DefaultBounds)
}

// NormalizeWithin converts a selection into the wire descriptor. It is total
// over the four known frequencies and fails closed on anything else.
func NormalizeWithin(sel model.RecurrenceSelection, bounds Bounds) (model.RecurrenceDescriptor, error) {
	interval, ok := frequencyIntervals[sel.Frequency]
	if !ok {
		return model.RecurrenceDescriptor{}, fmt.Errorf("%w: %q", ErrUnknownFrequency, sel.Frequency)
	}

	count, unit, err := resolveDuration(sel, bounds)
	if err != nil {
		return model.RecurrenceDescriptor{}, err
	}

	return model.RecurrenceDescriptor{
		FrequencyInterval: interval,
		FrequencyType:     unitCodes[unit],
		FrequencyDuration: count,
	}, nil
}

// resolveDuration reduces a selection to its count and unit. Describe uses
// the same resolution, which keeps the displayed end date consistent with the
// submitted descriptor.
func resolveDuration(sel model.RecurrenceSelection, bounds Bounds) (int, string, error) {
	if sel.IsCustom() {
		if sel.CustomUnit == "" || sel.CustomCount == 0 {
			return 0, "", ErrMissingCustomFields
		}
		switch sel.CustomUnit {
		case UnitWeek:
			if sel.CustomCount < 1 || sel.CustomCount > bounds.MaxWeeks {
				return 0, "", fmt.Errorf("%w: %d weeks (1-%d)", ErrCustomCountOutOfRange, sel.CustomCount, bounds.MaxWeeks)
			}
		case UnitMonth:
			if sel.CustomCount < 1 || sel.CustomCount > bounds.MaxMonths {
				return 0, "", fmt.Errorf("%w: %d months (1-%d)", ErrCustomCountOutOfRange, sel.CustomCount, bounds.MaxMonths)
			}
		default:
			return 0, "", fmt.Errorf("%w: unit %q", ErrMissingCustomFields, sel.CustomUnit)
		}
		return sel.CustomCount, sel.CustomUnit, nil
	}

	// Catalog options are "<count> <Unit>", unit singular capitalized.
	parts := strings.Fields(sel.DurationOption)
	if len(parts) != 2 {
		return 0, "", fmt.Errorf("%w: %q", ErrUnknownDurationOption, sel.DurationOption)
	}
	count, err := strconv.Atoi(parts[0])
	if err != nil || count < 1 {
		return 0, "", fmt.Errorf("%w: %q", ErrUnknownDurationOption, sel.DurationOption)
	}
	unit := strings.ToLower(parts[1])
	if _, ok := unitCodes[unit]; !ok {
		return 0, "", fmt.Errorf("%w: %q", ErrUnknownDurationOption, sel.DurationOption)
	}
	return count, unit, nil
}

// DisplayDuration reconstructs the catalog text for a descriptor, pluralized
// for counts above one: {2, month} renders as "2 Months".
func DisplayDuration(d model.RecurrenceDescriptor) string {
	var unit string
	switch d.FrequencyType {
	case unitCodes[UnitWeek]:
		unit = "Week"
	case unitCodes[UnitMonth]:
		unit = "Month"
	case unitCodes[UnitYear]:
		unit = "Year"
	default:
		unit = "?"
	}
	if d.FrequencyDuration > 1 {
		unit += "s"
	}
	return fmt.Sprintf("%d %s", d.FrequencyDuration, unit)
}

// KnownFrequency reports whether f is one of the four supported cadences.
func KnownFrequency(f string) bool {
	_, ok := frequencyIntervals[f]
	return ok
}
