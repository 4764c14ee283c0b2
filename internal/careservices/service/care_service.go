package service

import (
	"context"
	"errors"
	"sync"

	careserviceerrors "carebook/internal/careservices/errors"
	"carebook/internal/careservices/repository"
	"carebook/internal/careservices/validator"
	"carebook/pkg/config"
	apperrors "carebook/pkg/errors"
	"carebook/pkg/model"
	"carebook/pkg/sanitizer"

	"go.mongodb.org/mongo-driver/mongo"
)

type CareServiceService interface {
	Create(ctx context.Context, cs *model.CareService) error
	GetByID(ctx context.Context, id string) (*model.CareService, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.CareService, int64, error)
	Update(ctx context.Context, id string, updates *model.CareServiceUpdate) (*model.CareService, error)
	Delete(ctx context.Context, id string) error
}

type careServiceService struct {
	repo      repository.CareServiceRepository
	validator *validator.CareServiceValidator
	cfg       *config.Config
}

func NewCareServiceService(
	repo repository.CareServiceRepository,
	validator *validator.CareServiceValidator,
	cfg *config.Config,
) CareServiceService {
	return &careServiceService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *careServiceService) Create(ctx context.Context, cs *model.CareService) error {
	s.sanitize(cs)

	if err := s.validator.Validate(cs); err != nil {
		s.cfg.Log.Warn("Care service validation failed", "name", cs.Name, "error", err)
		return apperrors.Validation("Care service validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		existing, err := s.repo.FindByName(sessCtx, cs.Name)
		if err != nil {
			return apperrors.Internal("Failed to check for existing care services", err)
		}
		if len(existing) > 0 {
			return apperrors.Conflict("Care service with the same name already exists")
		}
		return s.repo.Create(sessCtx, cs)
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create care service", "name", cs.Name, "error", err)
		return err
	}

	s.cfg.Log.Info("Care service created successfully", "id", cs.ID, "name", cs.Name)
	return nil
}

func (s *careServiceService) GetByID(ctx context.Context, id string) (*model.CareService, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Care service ID cannot be empty")
	}

	cs, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, careserviceerrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Care service", id)
		}
		if errors.Is(err, careserviceerrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid care service ID format")
		}
		s.cfg.Log.Error("Failed to get care service by ID", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to retrieve care service", err)
	}
	return cs, nil
}

func (s *careServiceService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.CareService, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	sharedCtx, cancel := context.WithTimeout(ctx, s.cfg.ReadTimeout)
	defer cancel()

	var count int64
	var services []*model.CareService
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		var err error
		count, err = s.repo.Count(sharedCtx)
		if err != nil {
			s.cfg.Log.Error("Failed to count care services", "error", err)
			errCount = apperrors.Internal("Failed to count care services", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		services, err = s.repo.FindAll(sharedCtx, limit, offset)
		if err != nil {
			s.cfg.Log.Error("Failed to get all care services", "limit", limit, "offset", offset, "error", err)
			errFind = apperrors.Internal("Failed to retrieve care services", err)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}
	return services, count, nil
}

func (s *careServiceService) Update(ctx context.Context, id string, updates *model.CareServiceUpdate) (*model.CareService, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Care service ID cannot be empty")
	}

	if err := s.validator.ValidateUpdate(updates); err != nil {
		return nil, apperrors.Validation("Care service validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := s.mergeUpdates(existing, updates)
	s.sanitize(merged)

	if err := s.validator.Validate(merged); err != nil {
		return nil, apperrors.Validation("Care service validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		byName, err := s.repo.FindByName(sessCtx, merged.Name)
		if err != nil {
			return apperrors.Internal("Failed to check for duplicate care services", err)
		}
		for _, e := range byName {
			if e.ID != merged.ID {
				return apperrors.Conflict("Another care service with the same name already exists")
			}
		}
		if _, err := s.repo.Update(sessCtx, id, merged); err != nil {
			if errors.Is(err, careserviceerrors.ErrNotFound) {
				return apperrors.NotFoundWithID("Care service", id)
			}
			s.cfg.Log.Error("Failed to update care service", "id", id, "error", err)
			return apperrors.Internal("Failed to update care service", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cfg.Log.Info("Care service updated successfully", "id", id, "name", merged.Name)
	return merged, nil
}

func (s *careServiceService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Care service ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, careserviceerrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Care service", id)
		}
		if errors.Is(err, careserviceerrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid care service ID format")
		}
		s.cfg.Log.Error("Failed to delete care service", "id", id, "error", err)
		return apperrors.Internal("Failed to delete care service", err)
	}

	s.cfg.Log.Info("Care service deleted successfully", "id", id)
	return nil
}

func (s *careServiceService) sanitize(cs *model.CareService) {
	cs.Name = sanitizer.NormalizeName(cs.Name)
	cs.Description = sanitizer.NormalizeDescription(cs.Description)
	if cs.DurationMinutes != 0 {
		cs.DurationMinutes = sanitizer.NormalizeVisitDuration(cs.DurationMinutes)
	}
}

func (s *careServiceService) mergeUpdates(existing *model.CareService, updates *model.CareServiceUpdate) *model.CareService {
	merged := *existing
	if updates.Name != "" {
		merged.Name = updates.Name
	}
	if updates.Description != nil {
		merged.Description = *updates.Description
	}
	if updates.DurationMinutes != nil {
		merged.DurationMinutes = *updates.DurationMinutes
	}
	if updates.HourlyRatePence != nil {
		merged.HourlyRatePence = *updates.HourlyRatePence
	}
	if updates.Active != nil {
		merged.Active = *updates.Active
	}
	return &merged
}
