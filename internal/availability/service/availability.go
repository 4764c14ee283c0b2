package service

import (
	"context"
	"errors"
	"time"

	availabilityerrors "carebook/internal/availability/errors"
	"carebook/internal/availability/filter"
	"carebook/internal/availability/repository"
	"carebook/internal/availability/validator"
	"carebook/pkg/config"
	apperrors "carebook/pkg/errors"
	"carebook/pkg/locale"
	"carebook/pkg/model"
	"carebook/pkg/sanitizer"
	"carebook/pkg/timewire"
)

type AvailabilityService interface {
	GetSlots(ctx context.Context, carerID, date string) ([]model.AvailabilitySlot, error)
	GetDates(ctx context.Context, carerID, month string) ([]model.AvailableDate, error)
	CheckSlot(ctx context.Context, req *model.SlotCheckRequest) (*model.SlotCheckResponse, error)
	UpsertDay(ctx context.Context, day *model.CarerDay) error
	GetDay(ctx context.Context, carerID, date string) (*model.CarerDay, error)
}

type availabilityService struct {
	repo      repository.CarerDayRepository
	validator *validator.CarerDayValidator
	cfg       *config.Config
}

func NewAvailabilityService(
	repo repository.CarerDayRepository,
	validator *validator.CarerDayValidator,
	cfg *config.Config,
) AvailabilityService {
	return &availabilityService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

// GetSlots returns the stored slots for a carer on a date. A missing
// snapshot is an empty day, not an error.
func (s *availabilityService) GetSlots(ctx context.Context, carerID, date string) ([]model.AvailabilitySlot, error) {
	carerID = sanitizer.TrimAndNormalize(carerID)
	if carerID == "" {
		return nil, apperrors.InvalidInput("Carer ID cannot be empty")
	}

	d, err := timewire.ParseDate(date)
	if err != nil {
		return nil, apperrors.InvalidInput("Invalid date, expected YYYY-MM-DD")
	}

	day, err := s.repo.FindByCarerAndDate(ctx, carerID, d)
	if err != nil {
		if errors.Is(err, availabilityerrors.ErrNotFound) {
			return []model.AvailabilitySlot{}, nil
		}
		s.cfg.Log.Error("Failed to load carer day", "carer_id", carerID, "date", date, "error", err)
		return nil, apperrors.Internal("Failed to load carer availability", err)
	}

	return day.Slots, nil
}

// GetDates reports for each calendar date of a month whether the carer has
// any bookable slot. Dates with no snapshot are unavailable.
func (s *availabilityService) GetDates(ctx context.Context, carerID, month string) ([]model.AvailableDate, error) {
	carerID = sanitizer.TrimAndNormalize(carerID)
	if carerID == "" {
		return nil, apperrors.InvalidInput("Carer ID cannot be empty")
	}

	first, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, apperrors.InvalidInput("Invalid month, expected YYYY-MM")
	}
	next := first.AddDate(0, 1, 0)

	days, err := s.repo.FindByCarerAndRange(ctx, carerID, first, next)
	if err != nil {
		s.cfg.Log.Error("Failed to load carer month", "carer_id", carerID, "month", month, "error", err)
		return nil, apperrors.Internal("Failed to load carer availability", err)
	}

	available := make(map[string]bool, len(days))
	for _, day := range days {
		available[day.Date.Format(timewire.DateOnly)] = filter.HasAnyAvailability(day.Slots)
	}

	var dates []model.AvailableDate
	for d := first; d.Before(next); d = d.AddDate(0, 0, 1) {
		dates = append(dates, model.AvailableDate{
			Date:             d,
			IsCarerAvailable: available[d.Format(timewire.DateOnly)],
		})
	}
	return dates, nil
}

// CheckSlot reconciles a candidate start time against the carer's stored
// slots. No availability at all is soft state, reported with a flag.
func (s *availabilityService) CheckSlot(ctx context.Context, req *model.SlotCheckRequest) (*model.SlotCheckResponse, error) {
	req.CarerID = sanitizer.TrimAndNormalize(req.CarerID)
	req.Date = sanitizer.TrimAndNormalize(req.Date)
	req.Time = sanitizer.TrimAndNormalize(req.Time)

	if err := s.validator.ValidateSlotCheck(req); err != nil {
		return nil, apperrors.Validation("Slot check validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	wire, err := timewire.ComposeStrings(req.Date, req.Time)
	if err != nil {
		return nil, apperrors.InvalidInput("Invalid date or time")
	}
	candidate, err := timewire.ParseWireInstant(wire)
	if err != nil {
		return nil, apperrors.Internal("Failed to parse composed instant", err)
	}

	slots, err := s.GetSlots(ctx, req.CarerID, req.Date)
	if err != nil {
		return nil, err
	}

	return &model.SlotCheckResponse{
		Disabled:       filter.IsTimeDisabled(candidate, slots),
		NoAvailability: !filter.HasAnyAvailability(slots),
	}, nil
}

// UpsertDay stores a carer's availability snapshot for one date. An empty
// slot list asks the service to seed the region's default working grid for
// that weekday.
func (s *availabilityService) UpsertDay(ctx context.Context, day *model.CarerDay) error {
	day.CarerID = sanitizer.TrimAndNormalize(day.CarerID)

	if len(day.Slots) == 0 {
		day.Slots = s.defaultSlots(day)
	}

	if err := s.validator.ValidateDay(day); err != nil {
		s.cfg.Log.Warn("Carer day validation failed",
			"carer_id", day.CarerID,
			"date", day.Date.Format(timewire.DateOnly),
			"error", err,
		)
		return apperrors.Validation("Carer day validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	if err := s.repo.Upsert(ctx, day); err != nil {
		s.cfg.Log.Error("Failed to store carer day",
			"carer_id", day.CarerID,
			"date", day.Date.Format(timewire.DateOnly),
			"error", err,
		)
		return apperrors.Internal("Failed to store carer availability", err)
	}

	s.cfg.Log.Info("Carer day stored",
		"carer_id", day.CarerID,
		"date", day.Date.Format(timewire.DateOnly),
		"slots", len(day.Slots),
	)
	return nil
}

func (s *availabilityService) GetDay(ctx context.Context, carerID, date string) (*model.CarerDay, error) {
	carerID = sanitizer.TrimAndNormalize(carerID)
	if carerID == "" {
		return nil, apperrors.InvalidInput("Carer ID cannot be empty")
	}

	d, err := timewire.ParseDate(date)
	if err != nil {
		return nil, apperrors.InvalidInput("Invalid date, expected YYYY-MM-DD")
	}

	day, err := s.repo.FindByCarerAndDate(ctx, carerID, d)
	if err != nil {
		if errors.Is(err, availabilityerrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Carer day", carerID+"/"+date)
		}
		s.cfg.Log.Error("Failed to load carer day", "carer_id", carerID, "date", date, "error", err)
		return nil, apperrors.Internal("Failed to load carer availability", err)
	}
	return day, nil
}

// defaultSlots seeds the working-hours grid for the snapshot's weekday,
// stepped by the default visit duration. Non-visiting weekdays for the
// carer's region seed nothing.
func (s *availabilityService) defaultSlots(day *model.CarerDay) []model.AvailabilitySlot {
	region := locale.DetectRegion(day.TimeZone)
	visitingDays := s.cfg.DefaultVisitingDaysGB
	if region == "US" {
		visitingDays = s.cfg.DefaultVisitingDaysUS
	}

	weekday := day.Date.Weekday().String()
	visiting := false
	for _, vd := range visitingDays {
		if vd == weekday {
			visiting = true
			break
		}
	}
	if !visiting {
		return nil
	}

	start, err := time.Parse("15:04", s.cfg.DefaultDayStart)
	if err != nil {
		return nil
	}
	end, err := time.Parse("15:04", s.cfg.DefaultDayEnd)
	if err != nil {
		return nil
	}

	y, m, d := day.Date.Date()
	cursor := time.Date(y, m, d, start.Hour(), start.Minute(), 0, 0, time.UTC)
	last := time.Date(y, m, d, end.Hour(), end.Minute(), 0, 0, time.UTC)

	step := time.Duration(s.cfg.DefaultVisitDurationMin) * time.Minute
	var slots []model.AvailabilitySlot
	for !cursor.After(last) {
		slots = append(slots, model.AvailabilitySlot{
			TimeSlot:         cursor,
			IsCarerAvailable: true,
		})
		cursor = cursor.Add(step)
	}
	return slots
}
