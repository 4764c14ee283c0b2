package service

import (
	"context"
	"testing"
	"time"

	availabilityerrors "carebook/internal/availability/errors"
	"carebook/internal/availability/repository"
	"carebook/internal/availability/validator"
	"carebook/pkg/config"
	apperrors "carebook/pkg/errors"
	"carebook/pkg/logger"
	"carebook/pkg/model"
)

type mockCarerDayRepository struct {
	upsertFunc             func(ctx context.Context, day *model.CarerDay) error
	findByCarerAndDateFunc func(ctx context.Context, carerID string, date time.Time) (*model.CarerDay, error)
	findByCarerRangeFunc   func(ctx context.Context, carerID string, from, to time.Time) ([]*model.CarerDay, error)
	deleteFunc             func(ctx context.Context, id string) error
}

var _ repository.CarerDayRepository = (*mockCarerDayRepository)(nil)

func (m *mockCarerDayRepository) Upsert(ctx context.Context, day *model.CarerDay) error {
	if m.upsertFunc != nil {
		return m.upsertFunc(ctx, day)
	}
	return nil
}

func (m *mockCarerDayRepository) FindByCarerAndDate(ctx context.Context, carerID string, date time.Time) (*model.CarerDay, error) {
	if m.findByCarerAndDateFunc != nil {
		return m.findByCarerAndDateFunc(ctx, carerID, date)
	}
	return nil, availabilityerrors.ErrNotFound
}

func (m *mockCarerDayRepository) FindByCarerAndRange(ctx context.Context, carerID string, from, to time.Time) ([]*model.CarerDay, error) {
	if m.findByCarerRangeFunc != nil {
		return m.findByCarerRangeFunc(ctx, carerID, from, to)
	}
	return nil, nil
}

func (m *mockCarerDayRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func testConfig() *config.Config {
	log := logger.New(logger.Config{
		Level:     "error",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
	return &config.Config{
		Log:                     log,
		ReadTimeout:             5 * time.Second,
		WriteTimeout:            5 * time.Second,
		DefaultVisitDurationMin: 60,
		DefaultDayStart:         "08:00",
		DefaultDayEnd:           "20:00",
		DefaultVisitingDaysGB:   config.DefaultVisitingDaysGB,
		DefaultVisitingDaysUS:   config.DefaultVisitingDaysUS,
	}
}

func newTestService(repo *mockCarerDayRepository) *availabilityService {
	cfg := testConfig()
	return &availabilityService{
		repo:      repo,
		validator: validator.NewCarerDayValidator(cfg.Log),
		cfg:       cfg,
	}
}

func slotAt(date time.Time, hour, minute int, available bool) model.AvailabilitySlot {
	y, m, d := date.Date()
	return model.AvailabilitySlot{
		TimeSlot:         time.Date(y, m, d, hour, minute, 0, 0, time.UTC),
		IsCarerAvailable: available,
	}
}

func TestGetSlots_MissingSnapshotIsEmptyDay(t *testing.T) {
	svc := newTestService(&mockCarerDayRepository{})

	slots, err := svc.GetSlots(context.Background(), "65a000000000000000000020", "2026-03-09")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 0 {
		t.Errorf("expected empty day, got %d slots", len(slots))
	}
}

func TestGetSlots_RejectsBadDate(t *testing.T) {
	svc := newTestService(&mockCarerDayRepository{})

	_, err := svc.GetSlots(context.Background(), "65a000000000000000000020", "09/03/2026")
	if err == nil {
		t.Fatal("expected invalid input error")
	}
	appErr, ok := apperrors.AsAppError(err)
	if !ok || appErr.StatusCode() != 400 {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestGetDates_CoversWholeMonth(t *testing.T) {
	date := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	repo := &mockCarerDayRepository{
		findByCarerRangeFunc: func(ctx context.Context, carerID string, from, to time.Time) ([]*model.CarerDay, error) {
			return []*model.CarerDay{
				{CarerID: carerID, Date: date, Slots: []model.AvailabilitySlot{slotAt(date, 9, 0, true)}},
			}, nil
		},
	}
	svc := newTestService(repo)

	dates, err := svc.GetDates(context.Background(), "65a000000000000000000020", "2026-02")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dates) != 28 {
		t.Fatalf("expected 28 entries for February 2026, got %d", len(dates))
	}

	availableCount := 0
	for _, d := range dates {
		if d.IsCarerAvailable {
			availableCount++
			if !d.Date.Equal(date) {
				t.Errorf("unexpected available date %s", d.Date.Format("2006-01-02"))
			}
		}
	}
	if availableCount != 1 {
		t.Errorf("expected exactly one available date, got %d", availableCount)
	}
}

func TestGetDates_FullyBookedDayIsUnavailable(t *testing.T) {
	date := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	repo := &mockCarerDayRepository{
		findByCarerRangeFunc: func(ctx context.Context, carerID string, from, to time.Time) ([]*model.CarerDay, error) {
			return []*model.CarerDay{
				{CarerID: carerID, Date: date, Slots: []model.AvailabilitySlot{
					slotAt(date, 9, 0, false),
					slotAt(date, 10, 0, false),
				}},
			}, nil
		},
	}
	svc := newTestService(repo)

	dates, err := svc.GetDates(context.Background(), "65a000000000000000000020", "2026-02")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, d := range dates {
		if d.IsCarerAvailable {
			t.Errorf("date %s should be unavailable", d.Date.Format("2006-01-02"))
		}
	}
}

func TestCheckSlot(t *testing.T) {
	date := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	day := &model.CarerDay{
		CarerID: "65a000000000000000000020",
		Date:    date,
		Slots: []model.AvailabilitySlot{
			slotAt(date, 9, 0, true),
			slotAt(date, 10, 0, false),
			slotAt(date, 11, 0, true),
		},
	}
	repo := &mockCarerDayRepository{
		findByCarerAndDateFunc: func(ctx context.Context, carerID string, d time.Time) (*model.CarerDay, error) {
			return day, nil
		},
	}
	svc := newTestService(repo)

	tests := []struct {
		name         string
		time         string
		wantDisabled bool
	}{
		{"open slot", "09:00", false},
		{"taken slot", "10:00", true},
		{"off-grid time", "09:30", true},
		{"first trailing sub-slot", "11:15", true},
		{"second trailing sub-slot", "11:30", true},
		{"third trailing sub-slot", "11:45", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.CheckSlot(context.Background(), &model.SlotCheckRequest{
				CarerID: day.CarerID,
				Date:    "2026-03-09",
				Time:    tt.time,
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if resp.Disabled != tt.wantDisabled {
				t.Errorf("Disabled = %v, want %v", resp.Disabled, tt.wantDisabled)
			}
			if resp.NoAvailability {
				t.Error("day with open slots should not report no availability")
			}
		})
	}
}

func TestCheckSlot_EmptyDayReportsNoAvailability(t *testing.T) {
	svc := newTestService(&mockCarerDayRepository{})

	resp, err := svc.CheckSlot(context.Background(), &model.SlotCheckRequest{
		CarerID: "65a000000000000000000020",
		Date:    "2026-03-09",
		Time:    "09:00",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.NoAvailability {
		t.Error("expected NoAvailability for an empty day")
	}
	if !resp.Disabled {
		t.Error("expected Disabled for an empty day")
	}
}

func TestUpsertDay_SeedsDefaultGridOnVisitingDay(t *testing.T) {
	var stored *model.CarerDay
	repo := &mockCarerDayRepository{
		upsertFunc: func(ctx context.Context, day *model.CarerDay) error {
			stored = day
			return nil
		},
	}
	svc := newTestService(repo)

	// 2026-03-09 is a Monday, a visiting day in every region.
	day := &model.CarerDay{
		CarerID: "65a000000000000000000020",
		Date:    time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
	}
	if err := svc.UpsertDay(context.Background(), day); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored == nil {
		t.Fatal("expected snapshot to be stored")
	}

	// 08:00 through 20:00 inclusive at 60-minute steps.
	if len(stored.Slots) != 13 {
		t.Fatalf("expected 13 seeded slots, got %d", len(stored.Slots))
	}
	first := stored.Slots[0].TimeSlot
	if first.Hour() != 8 || first.Minute() != 0 {
		t.Errorf("first slot at %02d:%02d, want 08:00", first.Hour(), first.Minute())
	}
	last := stored.Slots[len(stored.Slots)-1].TimeSlot
	if last.Hour() != 20 || last.Minute() != 0 {
		t.Errorf("last slot at %02d:%02d, want 20:00", last.Hour(), last.Minute())
	}
	for _, slot := range stored.Slots {
		if !slot.IsCarerAvailable {
			t.Error("seeded slots should start available")
			break
		}
	}
}

func TestUpsertDay_NonVisitingDaySeedsNothing(t *testing.T) {
	var stored *model.CarerDay
	repo := &mockCarerDayRepository{
		upsertFunc: func(ctx context.Context, day *model.CarerDay) error {
			stored = day
			return nil
		},
	}
	svc := newTestService(repo)

	// 2026-03-08 is a Sunday, outside the GB visiting days.
	day := &model.CarerDay{
		CarerID: "65a000000000000000000020",
		Date:    time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC),
	}
	if err := svc.UpsertDay(context.Background(), day); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored == nil {
		t.Fatal("expected snapshot to be stored")
	}
	if len(stored.Slots) != 0 {
		t.Errorf("expected no seeded slots on a Sunday, got %d", len(stored.Slots))
	}
}

func TestUpsertDay_USRegionSkipsSaturday(t *testing.T) {
	var stored *model.CarerDay
	repo := &mockCarerDayRepository{
		upsertFunc: func(ctx context.Context, day *model.CarerDay) error {
			stored = day
			return nil
		},
	}
	svc := newTestService(repo)

	// 2026-03-07 is a Saturday: a GB visiting day but not a US one.
	day := &model.CarerDay{
		CarerID:  "65a000000000000000000020",
		Date:     time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC),
		TimeZone: "America/New_York",
	}
	if err := svc.UpsertDay(context.Background(), day); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stored.Slots) != 0 {
		t.Errorf("expected no seeded slots for a US Saturday, got %d", len(stored.Slots))
	}
}

func TestUpsertDay_RejectsUnsortedSlots(t *testing.T) {
	svc := newTestService(&mockCarerDayRepository{})

	date := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	day := &model.CarerDay{
		CarerID: "65a000000000000000000020",
		Date:    date,
		Slots: []model.AvailabilitySlot{
			slotAt(date, 11, 0, true),
			slotAt(date, 9, 0, true),
		},
	}

	err := svc.UpsertDay(context.Background(), day)
	if err == nil {
		t.Fatal("expected validation error for unsorted slots")
	}
	appErr, ok := apperrors.AsAppError(err)
	if !ok || appErr.StatusCode() != 422 {
		t.Fatalf("expected 422 validation error, got %v", err)
	}
}
