package service

import (
	"context"
	"errors"
	"time"

	shiftreporterrors "carebook/internal/shiftreports/errors"
	"carebook/internal/shiftreports/events"
	"carebook/internal/shiftreports/repository"
	"carebook/internal/shiftreports/validator"
	"carebook/pkg/config"
	apperrors "carebook/pkg/errors"
	"carebook/pkg/model"
	"carebook/pkg/sanitizer"
	"carebook/pkg/sealer"
)

type ShiftReportService interface {
	Submit(ctx context.Context, req *model.ShiftReportRequest) (*model.ShiftReport, error)
	GetByID(ctx context.Context, id string) (*model.ShiftReport, error)
	GetByBooking(ctx context.Context, bookingID string) ([]*model.ShiftReport, error)
	GetByCarer(ctx context.Context, carerID string, limit int, offset int64) ([]*model.ShiftReport, error)
	IssueToken(ctx context.Context, bookingID, carerID string) (string, error)
}

type shiftReportService struct {
	repo      repository.ShiftReportRepository
	validator *validator.ShiftReportValidator
	sealer    *sealer.Sealer
	publisher events.Publisher
	cfg       *config.Config
}

func NewShiftReportService(
	repo repository.ShiftReportRepository,
	validator *validator.ShiftReportValidator,
	seal *sealer.Sealer,
	publisher events.Publisher,
	cfg *config.Config,
) ShiftReportService {
	return &shiftReportService{
		repo:      repo,
		validator: validator,
		sealer:    seal,
		publisher: publisher,
		cfg:       cfg,
	}
}

// Submit unseals the shift token, validates the report body and stores the
// report. The token binds the submission to a booking and carer without the
// carer app ever holding raw IDs.
func (s *shiftReportService) Submit(ctx context.Context, req *model.ShiftReportRequest) (*model.ShiftReport, error) {
	req.Notes = sanitizer.NormalizeNotes(req.Notes)

	if err := s.validator.ValidateRequest(req); err != nil {
		s.cfg.Log.Warn("Shift report validation failed", "error", err)
		return nil, apperrors.Validation("Shift report validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	bookingID, carerID, err := s.sealer.ParseShiftToken(req.ShiftToken)
	if err != nil {
		s.cfg.Log.Warn("Rejected shift report with invalid token", "error", err)
		return nil, apperrors.Unauthorized("Invalid or corrupted shift token")
	}

	if req.CompletedAt.After(time.Now().Add(time.Hour)) {
		return nil, apperrors.InvalidInput("Completion time cannot be in the future")
	}

	report := &model.ShiftReport{
		BookingID:   bookingID,
		CarerID:     carerID,
		Outcome:     req.Outcome,
		Notes:       req.Notes,
		CompletedAt: req.CompletedAt,
	}

	if err := s.validator.ValidateReport(report); err != nil {
		return nil, apperrors.Validation("Shift report validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	existing, err := s.repo.FindByBooking(ctx, bookingID)
	if err != nil {
		s.cfg.Log.Error("Failed to check for existing reports", "booking_id", bookingID, "error", err)
		return nil, apperrors.Internal("Failed to check for existing reports", err)
	}
	for _, e := range existing {
		if e.CarerID == carerID {
			return nil, apperrors.Conflict("A report for this shift has already been submitted")
		}
	}

	if err := s.repo.Create(ctx, report); err != nil {
		s.cfg.Log.Error("Failed to store shift report", "booking_id", bookingID, "error", err)
		return nil, apperrors.Internal("Failed to store shift report", err)
	}

	if err := s.publisher.ShiftCompleted(ctx, report); err != nil {
		s.cfg.Log.Warn("Shift report stored but event not published", "id", report.ID, "error", err)
	}

	s.cfg.Log.Info("Shift report submitted",
		"id", report.ID,
		"booking_id", bookingID,
		"outcome", report.Outcome,
	)
	return report, nil
}

func (s *shiftReportService) GetByID(ctx context.Context, id string) (*model.ShiftReport, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Shift report ID cannot be empty")
	}

	report, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shiftreporterrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Shift report", id)
		}
		if errors.Is(err, shiftreporterrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid shift report ID format")
		}
		s.cfg.Log.Error("Failed to get shift report", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to retrieve shift report", err)
	}
	return report, nil
}

func (s *shiftReportService) GetByBooking(ctx context.Context, bookingID string) ([]*model.ShiftReport, error) {
	bookingID = sanitizer.TrimAndNormalize(bookingID)
	if bookingID == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	reports, err := s.repo.FindByBooking(ctx, bookingID)
	if err != nil {
		s.cfg.Log.Error("Failed to get reports for booking", "booking_id", bookingID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve shift reports", err)
	}
	return reports, nil
}

func (s *shiftReportService) GetByCarer(ctx context.Context, carerID string, limit int, offset int64) ([]*model.ShiftReport, error) {
	carerID = sanitizer.TrimAndNormalize(carerID)
	if carerID == "" {
		return nil, apperrors.InvalidInput("Carer ID cannot be empty")
	}

	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	reports, err := s.repo.FindByCarer(ctx, carerID, limit, offset)
	if err != nil {
		s.cfg.Log.Error("Failed to get reports for carer", "carer_id", carerID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve shift reports", err)
	}
	return reports, nil
}

// IssueToken seals a booking/carer pair for handing to the carer app when a
// shift is assigned.
func (s *shiftReportService) IssueToken(ctx context.Context, bookingID, carerID string) (string, error) {
	bookingID = sanitizer.TrimAndNormalize(bookingID)
	carerID = sanitizer.TrimAndNormalize(carerID)
	if bookingID == "" || carerID == "" {
		return "", apperrors.InvalidInput("Booking ID and carer ID are required")
	}

	token, err := s.sealer.CreateShiftToken(bookingID, carerID)
	if err != nil {
		s.cfg.Log.Error("Failed to seal shift token", "booking_id", bookingID, "error", err)
		return "", apperrors.Internal("Failed to issue shift token", err)
	}
	return token, nil
}
