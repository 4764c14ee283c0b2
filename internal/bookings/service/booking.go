package service

import (
	"context"
	"errors"
	"sync"
	"time"

	bookingerrors "carebook/internal/bookings/errors"
	"carebook/internal/bookings/events"
	"carebook/internal/bookings/repository"
	"carebook/internal/bookings/validator"
	"carebook/internal/recurrence"
	"carebook/pkg/config"
	apperrors "carebook/pkg/errors"
	"carebook/pkg/model"
	"carebook/pkg/sanitizer"
	"carebook/pkg/timewire"

	"go.mongodb.org/mongo-driver/mongo"
)

// SlotSource answers whether a carer can take a visit at a given date and
// time. In production it is backed by the availability service; tests
// substitute a local implementation.
type SlotSource interface {
	CheckSlot(ctx context.Context, carerID, date, timeOfDay string) (*model.SlotCheckResponse, error)
}

type BookingService interface {
	Create(ctx context.Context, req *model.NewBookingRequest) (*model.Booking, error)
	CreateRecurring(ctx context.Context, req *model.RecurringBookingRequest) (*model.Booking, error)
	Preview(ctx context.Context, req *model.RecurrencePreviewRequest) (*model.RecurrencePreviewResponse, error)
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error)
	Update(ctx context.Context, id string, updates *model.EditBookingRequest) (*model.Booking, error)
	Cancel(ctx context.Context, id string) error
	Search(ctx context.Context, clientID, carerID, status, date string, limit int, offset int64) ([]*model.Booking, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	validator *validator.BookingValidator
	slots     SlotSource
	publisher events.Publisher
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	validator *validator.BookingValidator,
	slots SlotSource,
	publisher events.Publisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		validator: validator,
		slots:     slots,
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *bookingService) bounds() recurrence.Bounds {
	return recurrence.Bounds{
		MaxWeeks:  s.cfg.MaxCustomWeeks,
		MaxMonths: s.cfg.MaxCustomMonths,
	}
}

func (s *bookingService) Create(ctx context.Context, req *model.NewBookingRequest) (*model.Booking, error) {
	return s.create(ctx, req, nil)
}

func (s *bookingService) CreateRecurring(ctx context.Context, req *model.RecurringBookingRequest) (*model.Booking, error) {
	s.sanitizeNew(&req.NewBookingRequest)
	s.applyDefaults(&req.NewBookingRequest)

	if err := s.validator.ValidateRecurring(req); err != nil {
		s.cfg.Log.Warn("Recurring booking validation failed",
			"client_id", req.ClientID,
			"carer_id", req.CarerID,
			"error", err,
		)
		return nil, apperrors.Validation("Booking validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	descriptor, err := recurrence.NormalizeWithin(req.Recurrence, s.bounds())
	if err != nil {
		return nil, apperrors.Validation("Invalid recurrence selection", map[string]any{
			"error": err.Error(),
		})
	}

	return s.create(ctx, &req.NewBookingRequest, &descriptor)
}

func (s *bookingService) create(ctx context.Context, req *model.NewBookingRequest, descriptor *model.RecurrenceDescriptor) (*model.Booking, error) {
	s.sanitizeNew(req)
	s.applyDefaults(req)

	if descriptor == nil {
		if err := s.validator.ValidateNew(req); err != nil {
			s.cfg.Log.Warn("Booking validation failed",
				"client_id", req.ClientID,
				"carer_id", req.CarerID,
				"error", err,
			)
			return nil, apperrors.Validation("Booking validation failed", map[string]any{
				"error": err.Error(),
			})
		}
	}

	wire, err := timewire.ComposeStrings(req.Date, req.Time)
	if err != nil {
		return nil, apperrors.InvalidInput("Invalid visit date or time")
	}
	start, err := timewire.ParseWireInstant(wire)
	if err != nil {
		return nil, apperrors.Internal("Failed to parse composed visit time", err)
	}

	if err := s.checkSlot(ctx, req.CarerID, req.Date, req.Time); err != nil {
		return nil, err
	}

	b := &model.Booking{
		ClientID:        req.ClientID,
		CarerID:         req.CarerID,
		ServiceID:       req.ServiceID,
		StartTime:       start,
		StartWire:       wire,
		DurationMinutes: req.DurationMinutes,
		Description:     req.Description,
		ContactPhone:    req.ContactPhone,
		Recurrence:      descriptor,
		Status:          "pending",
	}

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		overlapping, err := s.repo.FindOverlapping(sessCtx, b.CarerID, b.StartTime, b.DurationMinutes)
		if err != nil {
			return apperrors.Internal("Failed to check for overlapping bookings", err)
		}
		if len(overlapping) > 0 {
			return apperrors.Conflict("Carer already has a booking in this time window")
		}
		return s.repo.Create(sessCtx, b)
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create booking",
			"client_id", b.ClientID,
			"carer_id", b.CarerID,
			"error", err,
		)
		return nil, err
	}

	if err := s.publisher.BookingCreated(ctx, b); err != nil {
		// Event delivery is best effort; the booking itself is committed.
		s.cfg.Log.Warn("Booking created but event not published", "id", b.ID, "error", err)
	}

	s.cfg.Log.Info("Booking created successfully",
		"id", b.ID,
		"client_id", b.ClientID,
		"carer_id", b.CarerID,
		"start_time", b.StartWire,
		"recurring", b.Recurrence != nil,
	)
	return b, nil
}

func (s *bookingService) Preview(ctx context.Context, req *model.RecurrencePreviewRequest) (*model.RecurrencePreviewResponse, error) {
	if err := s.validator.ValidatePreview(req); err != nil {
		return nil, apperrors.Validation("Preview validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	descriptor, err := recurrence.NormalizeWithin(req.Recurrence, s.bounds())
	if err != nil {
		return nil, apperrors.Validation("Invalid recurrence selection", map[string]any{
			"error": err.Error(),
		})
	}

	startDate, err := timewire.ParseDate(req.Date)
	if err != nil {
		return nil, apperrors.InvalidInput("Invalid visit date")
	}
	startTime, err := timewire.ParseClock(req.Time)
	if err != nil {
		return nil, apperrors.InvalidInput("Invalid visit time")
	}

	message, err := recurrence.DescribeWithin(req.Recurrence, startDate, startTime, s.bounds())
	if err != nil {
		return nil, apperrors.Internal("Failed to describe recurrence", err)
	}

	return &model.RecurrencePreviewResponse{
		Descriptor: descriptor,
		Message:    message,
	}, nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingerrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		if errors.Is(err, bookingerrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid booking ID format")
		}
		s.cfg.Log.Error("Failed to get booking by ID", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}

	return b, nil
}

func (s *bookingService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	// Shared timeout so the count and the page query cancel together.
	sharedCtx, cancel := context.WithTimeout(ctx, s.cfg.ReadTimeout)
	defer cancel()

	var count int64
	var bookings []*model.Booking
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		var err error
		count, err = s.repo.Count(sharedCtx)
		if err != nil {
			s.cfg.Log.Error("Failed to count bookings", "error", err)
			errCount = apperrors.Internal("Failed to count bookings", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		bookings, err = s.repo.FindAll(sharedCtx, limit, offset)
		if err != nil {
			s.cfg.Log.Error("Failed to get all bookings",
				"limit", limit,
				"offset", offset,
				"error", err,
			)
			errFind = apperrors.Internal("Failed to retrieve bookings", err)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}
	return bookings, count, nil
}

func (s *bookingService) Update(ctx context.Context, id string, updates *model.EditBookingRequest) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if existing.Status == "cancelled" || existing.Status == "completed" {
		return nil, apperrors.Conflict("Booking can no longer be edited")
	}

	s.sanitizeUpdate(updates)
	merged, err := s.mergeBookingUpdates(existing, updates)
	if err != nil {
		return nil, err
	}

	if err := s.validator.ValidateBooking(merged); err != nil {
		s.cfg.Log.Warn("Booking validation failed",
			"id", id,
			"error", err,
		)
		return nil, apperrors.Validation("Booking validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	timeChanged := !merged.StartTime.Equal(existing.StartTime)
	carerChanged := merged.CarerID != existing.CarerID
	if timeChanged || carerChanged {
		if err := s.checkSlot(ctx,
			merged.CarerID,
			merged.StartTime.Format(timewire.DateOnly),
			timewire.Clock(merged.StartTime),
		); err != nil {
			return nil, err
		}
	}

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if timeChanged || carerChanged || merged.DurationMinutes != existing.DurationMinutes {
			overlapping, err := s.repo.FindOverlapping(sessCtx, merged.CarerID, merged.StartTime, merged.DurationMinutes)
			if err != nil {
				return apperrors.Internal("Failed to check for overlapping bookings", err)
			}
			for _, o := range overlapping {
				if o.ID == merged.ID {
					continue
				}
				return apperrors.Conflict("Carer already has a booking in this time window")
			}
		}
		if _, err := s.repo.Update(sessCtx, id, merged); err != nil {
			if errors.Is(err, bookingerrors.ErrNotFound) {
				return apperrors.NotFoundWithID("Booking", id)
			}
			s.cfg.Log.Error("Failed to update booking", "id", id, "error", err)
			return apperrors.Internal("Failed to update booking", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.publisher.BookingUpdated(ctx, merged); err != nil {
		s.cfg.Log.Warn("Booking updated but event not published", "id", id, "error", err)
	}

	s.cfg.Log.Info("Booking updated successfully", "id", id)
	return merged, nil
}

func (s *bookingService) Cancel(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Booking ID cannot be empty")
	}

	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.Status == "cancelled" {
		return apperrors.Conflict("Booking is already cancelled")
	}

	if err := s.repo.UpdateStatus(ctx, id, "cancelled"); err != nil {
		if errors.Is(err, bookingerrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Booking", id)
		}
		if errors.Is(err, bookingerrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid booking ID format")
		}
		s.cfg.Log.Error("Failed to cancel booking", "id", id, "error", err)
		return apperrors.Internal("Failed to cancel booking", err)
	}

	existing.Status = "cancelled"
	if err := s.publisher.BookingCancelled(ctx, existing); err != nil {
		s.cfg.Log.Warn("Booking cancelled but event not published", "id", id, "error", err)
	}

	s.cfg.Log.Info("Booking cancelled successfully", "id", id)
	return nil
}

func (s *bookingService) Search(ctx context.Context, clientID, carerID, status, date string, limit int, offset int64) ([]*model.Booking, error) {
	if clientID == "" && carerID == "" {
		return nil, apperrors.InvalidInput("Client_id or carer_id must be provided, status is optional")
	}

	clientID = sanitizer.TrimAndNormalize(clientID)
	carerID = sanitizer.TrimAndNormalize(carerID)
	status = sanitizer.TrimAndNormalize(status)

	var day time.Time
	if date != "" {
		parsed, err := timewire.ParseDate(date)
		if err != nil {
			return nil, apperrors.InvalidInput("Invalid date, expected YYYY-MM-DD")
		}
		day = parsed
	}

	bookings, err := s.repo.Search(ctx, clientID, carerID, status, day, limit, offset)
	if err != nil {
		s.cfg.Log.Error("Failed to search bookings",
			"client_id", clientID,
			"carer_id", carerID,
			"status", status,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to search bookings", err)
	}
	if bookings == nil {
		bookings = []*model.Booking{}
	}

	s.cfg.Log.Debug("Bookings search completed",
		"client_id", clientID,
		"carer_id", carerID,
		"status", status,
		"date", date,
		"results_count", len(bookings),
	)

	return bookings, nil
}

// checkSlot consults the availability service before committing times. No
// availability at all and a disabled start time are distinct user-facing
// conflicts.
func (s *bookingService) checkSlot(ctx context.Context, carerID, date, timeOfDay string) error {
	result, err := s.slots.CheckSlot(ctx, carerID, date, timeOfDay)
	if err != nil {
		s.cfg.Log.Error("Slot availability check failed",
			"carer_id", carerID,
			"date", date,
			"error", err,
		)
		return apperrors.Internal("Failed to check carer availability", err)
	}

	if result.NoAvailability {
		return apperrors.Conflict("Carer has no availability on the requested date")
	}
	if result.Disabled {
		return apperrors.Conflict("Requested time is not available for this carer")
	}
	return nil
}

func (s *bookingService) sanitizeNew(req *model.NewBookingRequest) {
	req.ClientID = sanitizer.TrimAndNormalize(req.ClientID)
	req.CarerID = sanitizer.TrimAndNormalize(req.CarerID)
	req.ServiceID = sanitizer.TrimAndNormalize(req.ServiceID)
	req.Date = sanitizer.TrimAndNormalize(req.Date)
	req.Time = sanitizer.TrimAndNormalize(req.Time)
	req.Description = sanitizer.NormalizeDescription(req.Description)
	if req.ContactPhone != "" {
		req.ContactPhone = sanitizer.NormalizePhone(req.ContactPhone)
	}
}

func (s *bookingService) sanitizeUpdate(updates *model.EditBookingRequest) {
	updates.CarerID = sanitizer.TrimAndNormalize(updates.CarerID)
	updates.ServiceID = sanitizer.TrimAndNormalize(updates.ServiceID)
	updates.Date = sanitizer.TrimAndNormalize(updates.Date)
	updates.Time = sanitizer.TrimAndNormalize(updates.Time)
	if updates.Description != nil {
		normalized := sanitizer.NormalizeDescription(*updates.Description)
		updates.Description = &normalized
	}
	if updates.ContactPhone != nil && *updates.ContactPhone != "" {
		normalized := sanitizer.NormalizePhone(*updates.ContactPhone)
		updates.ContactPhone = &normalized
	}
}

func (s *bookingService) applyDefaults(req *model.NewBookingRequest) {
	if req.DurationMinutes == 0 {
		req.DurationMinutes = s.cfg.DefaultVisitDurationMin
	}
	req.DurationMinutes = sanitizer.NormalizeVisitDuration(req.DurationMinutes)
}

func (s *bookingService) mergeBookingUpdates(existing *model.Booking, updates *model.EditBookingRequest) (*model.Booking, error) {
	merged := *existing

	if updates.CarerID != "" {
		merged.CarerID = updates.CarerID
	}
	if updates.ServiceID != "" {
		merged.ServiceID = updates.ServiceID
	}
	if updates.DurationMinutes != nil {
		merged.DurationMinutes = sanitizer.NormalizeVisitDuration(*updates.DurationMinutes)
	}
	if updates.Description != nil {
		merged.Description = *updates.Description
	}
	if updates.ContactPhone != nil {
		merged.ContactPhone = *updates.ContactPhone
	}
	if updates.Status != "" {
		merged.Status = updates.Status
	}

	if updates.Date != "" || updates.Time != "" {
		date := merged.StartTime.Format(timewire.DateOnly)
		clock := timewire.Clock(merged.StartTime)
		if updates.Date != "" {
			date = updates.Date
		}
		if updates.Time != "" {
			clock = updates.Time
		}
		wire, err := timewire.ComposeStrings(date, clock)
		if err != nil {
			return nil, apperrors.InvalidInput("Invalid visit date or time")
		}
		start, err := timewire.ParseWireInstant(wire)
		if err != nil {
			return nil, apperrors.Internal("Failed to parse composed visit time", err)
		}
		merged.StartTime = start
		merged.StartWire = wire
	}

	if updates.Recurrence != nil {
		descriptor, err := recurrence.NormalizeWithin(*updates.Recurrence, s.bounds())
		if err != nil {
			return nil, apperrors.Validation("Invalid recurrence selection", map[string]any{
				"error": err.Error(),
			})
		}
		merged.Recurrence = &descriptor
	}

	return &merged, nil
}
