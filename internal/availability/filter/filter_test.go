package filter

import (
	"testing"
	"time"

	"carebook/pkg/model"
)

func at(h, m, s int) time.Time {
	return time.Date(2024, 6, 1, h, m, s, 0, time.UTC)
}

func slot(h, m int, available bool) model.AvailabilitySlot {
	return model.AvailabilitySlot{TimeSlot: at(h, m, 0), IsCarerAvailable: available}
}

func TestIsTimeDisabledEmptySlots(t *testing.T) {
	if !IsTimeDisabled(at(9, 0, 0), nil) {
		t.Error("expected everything disabled with no slots")
	}
	if !IsTimeDisabled(at(9, 0, 0), []model.AvailabilitySlot{}) {
		t.Error("expected everything disabled with empty slots")
	}
}

func TestIsTimeDisabledTrailingWindow(t *testing.T) {
	// A single slot at 09:00 is also the last slot, so 09:15, 09:30 and
	// 09:45 fall in the suppression window.
	slots := []model.AvailabilitySlot{slot(9, 0, true)}

	tests := []struct {
		name      string
		candidate time.Time
		want      bool
	}{
		{"exact slot enabled", at(9, 0, 0), false},
		{"last+15 suppressed", at(9, 15, 0), true},
		{"last+30 suppressed", at(9, 30, 0), true},
		{"last+45 suppressed", at(9, 45, 0), true},
		{"outside window, no slot", at(10, 0, 0), true},
		{"before any slot", at(8, 45, 0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTimeDisabled(tt.candidate, slots); got != tt.want {
				t.Errorf("IsTimeDisabled(%s) = %v, want %v", tt.candidate.Format("15:04:05"), got, tt.want)
			}
		})
	}
}

func TestIsTimeDisabledRollover(t *testing.T) {
	// Last slot 23:45: the window is 00:00, 00:15, 00:30 after wrapping.
	slots := []model.AvailabilitySlot{slot(23, 30, true), slot(23, 45, true)}

	for _, candidate := range []time.Time{at(0, 0, 0), at(0, 15, 0), at(0, 30, 0)} {
		if !IsTimeDisabled(candidate, slots) {
			t.Errorf("expected %s suppressed by wrapped trailing window", candidate.Format("15:04:05"))
		}
	}
	if IsTimeDisabled(at(23, 30, 0), slots) {
		t.Error("expected 23:30 enabled")
	}
}

func TestIsTimeDisabledUnavailableSlot(t *testing.T) {
	slots := []model.AvailabilitySlot{
		slot(9, 0, true),
		slot(9, 15, false),
		slot(9, 30, true),
	}

	if IsTimeDisabled(at(9, 0, 0), slots) {
		t.Error("expected 09:00 enabled")
	}
	if !IsTimeDisabled(at(9, 15, 0), slots) {
		t.Error("expected 09:15 disabled: carer not available")
	}
	if IsTimeDisabled(at(9, 30, 0), slots) {
		t.Error("expected 09:30 enabled")
	}
}

func TestIsTimeDisabledSecondsMustMatch(t *testing.T) {
	slots := []model.AvailabilitySlot{slot(9, 0, true), slot(10, 0, true)}

	if !IsTimeDisabled(at(9, 0, 30), slots) {
		t.Error("expected 09:00:30 disabled: comparison is at HH:mm:ss granularity")
	}
}

func TestIsDateDisabled(t *testing.T) {
	dates := []model.AvailableDate{
		{Date: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), IsCarerAvailable: false},
		{Date: time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), IsCarerAvailable: true},
	}

	tests := []struct {
		name      string
		candidate time.Time
		want      bool
	}{
		{"present but carer unavailable", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), true},
		{"absent date disabled", time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC), true},
		{"present and available", time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), false},
		{"time of day ignored", time.Date(2024, 6, 3, 18, 45, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDateDisabled(tt.candidate, dates); got != tt.want {
				t.Errorf("IsDateDisabled() = %v, want %v", got, tt.want)
			}
		})
	}

	if !IsDateDisabled(time.Now(), nil) {
		t.Error("expected everything disabled with no dates")
	}
}

func TestHasAnyAvailability(t *testing.T) {
	if HasAnyAvailability(nil) {
		t.Error("expected no availability for nil slots")
	}
	if HasAnyAvailability([]model.AvailabilitySlot{slot(9, 0, false), slot(9, 15, false)}) {
		t.Error("expected no availability when every slot is taken")
	}
	if !HasAnyAvailability([]model.AvailabilitySlot{slot(9, 0, false), slot(9, 15, true)}) {
		t.Error("expected availability with one free slot")
	}
}
