package recurrence

import (
	"errors"
	"testing"
	"time"

	"carebook/pkg/model"
	"carebook/pkg/timewire"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func clock(h, m int) time.Time {
	return time.Date(0, 1, 1, h, m, 0, 0, time.UTC)
}

func TestDescribeTemplates(t *testing.T) {
	start := date(2024, 1, 1) // a Monday
	at := clock(9, 30)

	tests := []struct {
		name string
		sel  model.RecurrenceSelection
		want string
	}{
		{
			name: "daily",
			sel:  model.RecurrenceSelection{Frequency: "daily", DurationOption: "1 Week"},
			want: "Starts from 01 Jan 2024 and repeats every day at 09:30 up to 07 Jan 2024",
		},
		{
			name: "weekly",
			sel:  model.RecurrenceSelection{Frequency: "weekly", DurationOption: "2 Month"},
			want: "Starts from 01 Jan 2024 and repeats every Monday at 09:30 up to 29 Feb 2024",
		},
		{
			name: "fortnightly",
			sel:  model.RecurrenceSelection{Frequency: "fortnightly", DurationOption: "1 Month"},
			want: "Starts from 01 Jan 2024 and repeats every second week on Monday at 09:30 up to 31 Jan 2024",
		},
		{
			name: "monthly",
			sel:  model.RecurrenceSelection{Frequency: "monthly", DurationOption: "1 Year"},
			want: "Starts from 01 Jan 2024 and repeats every month on the 1st at 09:30 up to 31 Dec 2024",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Describe(tt.sel, start, at)
			if err != nil {
				t.Fatalf("Describe() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Describe() = %q, want %q", got, tt.want)
			}
		})
	}
}

// The end date shown in the message and the end date implied by the
// normalized descriptor must come from the same duration resolution.
func TestDescribeAgreesWithDescriptor(t *testing.T) {
	tests := []struct {
		name    string
		sel     model.RecurrenceSelection
		start   time.Time
		wantEnd time.Time
	}{
		{
			name:    "two months over a leap February",
			sel:     model.RecurrenceSelection{Frequency: "weekly", DurationOption: "2 Month"},
			start:   date(2024, 1, 1),
			wantEnd: date(2024, 2, 29),
		},
		{
			name:    "two months with no leap day involved",
			sel:     model.RecurrenceSelection{Frequency: "weekly", DurationOption: "2 Month"},
			start:   date(2024, 3, 1),
			wantEnd: date(2024, 4, 30),
		},
		{
			name:    "custom six weeks",
			sel:     model.RecurrenceSelection{Frequency: "daily", DurationOption: OptionCustom, CustomUnit: "week", CustomCount: 6},
			start:   date(2024, 6, 1),
			wantEnd: date(2024, 7, 12),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			end, err := EndDate(tt.sel, tt.start)
			if err != nil {
				t.Fatalf("EndDate() unexpected error: %v", err)
			}
			if !end.Equal(tt.wantEnd) {
				t.Errorf("EndDate() = %v, want %v", end, tt.wantEnd)
			}

			// Re-derive the end date from the descriptor the same
			// selection produces and require agreement.
			d, err := Normalize(tt.sel)
			if err != nil {
				t.Fatalf("Normalize() unexpected error: %v", err)
			}
			var fromDescriptor time.Time
			switch d.FrequencyType {
			case 1:
				fromDescriptor = tt.start.AddDate(0, 0, 7*d.FrequencyDuration)
			case 2:
				fromDescriptor = tt.start.AddDate(0, d.FrequencyDuration, 0)
			case 3:
				fromDescriptor = tt.start.AddDate(d.FrequencyDuration, 0, 0)
			}
			fromDescriptor = fromDescriptor.AddDate(0, 0, -1)
			if !fromDescriptor.Equal(end) {
				t.Errorf("descriptor-implied end %v disagrees with message end %v", fromDescriptor, end)
			}
		})
	}
}

func TestDescribeRejectsBadInput(t *testing.T) {
	sel := model.RecurrenceSelection{Frequency: "daily", DurationOption: "1 Week"}

	if _, err := Describe(sel, time.Time{}, clock(9, 0)); !errors.Is(err, timewire.ErrInvalidDate) {
		t.Errorf("expected ErrInvalidDate for zero start date, got %v", err)
	}
	if _, err := Describe(sel, date(2024, 1, 1), time.Time{}); !errors.Is(err, timewire.ErrInvalidTime) {
		t.Errorf("expected ErrInvalidTime for zero start time, got %v", err)
	}

	bad := model.RecurrenceSelection{Frequency: "hourly", DurationOption: "1 Week"}
	if _, err := Describe(bad, date(2024, 1, 1), clock(9, 0)); !errors.Is(err, ErrUnknownFrequency) {
		t.Errorf("expected ErrUnknownFrequency, got %v", err)
	}
}

func TestOrdinal(t *testing.T) {
	tests := map[int]string{
		1: "1st", 2: "2nd", 3: "3rd", 4: "4th",
		11: "11th", 12: "12th", 13: "13th",
		21: "21st", 22: "22nd", 23: "23rd", 31: "31st",
	}
	for day, want := range tests {
		if got := ordinal(day); got != want {
			t.Errorf("ordinal(%d) = %q, want %q", day, got, want)
		}
	}
}
