package timewire

import (
	"errors"
	"testing"
	"time"
)

func TestCompose(t *testing.T) {
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	clock := time.Date(0, 1, 1, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		date    time.Time
		clock   time.Time
		want    string
		wantErr error
	}{
		{
			name:  "merges date and time of day",
			date:  date,
			clock: clock,
			want:  "2024-06-01T09:30:00.000Z",
		},
		{
			name:  "time fields of the date argument are ignored",
			date:  time.Date(2024, 6, 1, 23, 59, 59, 0, time.UTC),
			clock: clock,
			want:  "2024-06-01T09:30:00.000Z",
		},
		{
			name:    "zero date rejected",
			date:    time.Time{},
			clock:   clock,
			wantErr: ErrInvalidDate,
		},
		{
			name:    "zero time rejected",
			date:    date,
			clock:   time.Time{},
			wantErr: ErrInvalidTime,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compose(tt.date, tt.clock)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Compose() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Compose() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Compose() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestComposeStrings(t *testing.T) {
	got, err := ComposeStrings("2024-03-01", "14:15:00")
	if err != nil {
		t.Fatalf("ComposeStrings() unexpected error: %v", err)
	}
	if got != "2024-03-01T14:15:00.000Z" {
		t.Errorf("ComposeStrings() = %q", got)
	}

	if _, err := ComposeStrings("01/03/2024", "14:15:00"); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("expected ErrInvalidDate for slash-formatted date, got %v", err)
	}
	if _, err := ComposeStrings("2024-03-01", "2pm"); !errors.Is(err, ErrInvalidTime) {
		t.Errorf("expected ErrInvalidTime for non-clock string, got %v", err)
	}
}

func TestWireInstantRoundTrip(t *testing.T) {
	wire, err := ComposeStrings("2024-06-01", "09:00:00")
	if err != nil {
		t.Fatalf("ComposeStrings() unexpected error: %v", err)
	}

	parsed, err := ParseWireInstant(wire)
	if err != nil {
		t.Fatalf("ParseWireInstant() unexpected error: %v", err)
	}
	if parsed.Format(DateOnly) != "2024-06-01" || Clock(parsed) != "09:00:00" {
		t.Errorf("round trip mismatch: %v", parsed)
	}
}

func TestSameDate(t *testing.T) {
	a := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	b := time.Date(2024, 6, 1, 22, 30, 0, 0, time.UTC)
	c := time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)

	if !SameDate(a, b) {
		t.Error("expected same date for different times on one day")
	}
	if SameDate(a, c) {
		t.Error("expected different dates to not match")
	}
}
