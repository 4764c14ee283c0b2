package service

import (
	"context"
	"testing"
	"time"

	careserviceerrors "carebook/internal/careservices/errors"
	"carebook/internal/careservices/repository"
	"carebook/internal/careservices/validator"
	"carebook/pkg/config"
	mongotx "carebook/pkg/db/mongo"
	apperrors "carebook/pkg/errors"
	"carebook/pkg/logger"
	"carebook/pkg/model"

	"go.mongodb.org/mongo-driver/mongo"
)

type mockCareServiceRepository struct {
	createFunc     func(ctx context.Context, cs *model.CareService) error
	findByIDFunc   func(ctx context.Context, id string) (*model.CareService, error)
	findAllFunc    func(ctx context.Context, limit int, offset int64) ([]*model.CareService, error)
	findByNameFunc func(ctx context.Context, name string) ([]*model.CareService, error)
	updateFunc     func(ctx context.Context, id string, cs *model.CareService) (*mongo.UpdateResult, error)
	deleteFunc     func(ctx context.Context, id string) error
	countFunc      func(ctx context.Context) (int64, error)
}

var _ repository.CareServiceRepository = (*mockCareServiceRepository)(nil)

func (m *mockCareServiceRepository) Create(ctx context.Context, cs *model.CareService) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, cs)
	}
	cs.ID = "65a000000000000000000001"
	return nil
}

func (m *mockCareServiceRepository) FindByID(ctx context.Context, id string) (*model.CareService, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, careserviceerrors.ErrNotFound
}

func (m *mockCareServiceRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.CareService, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, limit, offset)
	}
	return []*model.CareService{}, nil
}

func (m *mockCareServiceRepository) FindByName(ctx context.Context, name string) ([]*model.CareService, error) {
	if m.findByNameFunc != nil {
		return m.findByNameFunc(ctx, name)
	}
	return nil, nil
}

func (m *mockCareServiceRepository) Update(ctx context.Context, id string, cs *model.CareService) (*mongo.UpdateResult, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, cs)
	}
	return &mongo.UpdateResult{MatchedCount: 1}, nil
}

func (m *mockCareServiceRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockCareServiceRepository) Count(ctx context.Context) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx)
	}
	return 0, nil
}

func (m *mockCareServiceRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
}

func newTestService(repo *mockCareServiceRepository) *careServiceService {
	log := logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Service: "test",
	})
	return &careServiceService{
		repo:      repo,
		validator: validator.NewCareServiceValidator(),
		cfg: &config.Config{
			Log:         log,
			ReadTimeout: 5 * time.Second,
		},
	}
}

func validService() *model.CareService {
	return &model.CareService{
		Name:            "Personal Care",
		Description:     "Help with washing and dressing",
		DurationMinutes: 60,
		HourlyRatePence: 2450,
		Active:          true,
	}
}

func TestCreate_Success(t *testing.T) {
	svc := newTestService(&mockCareServiceRepository{})

	cs := validService()
	if err := svc.Create(context.Background(), cs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cs.ID == "" {
		t.Error("expected ID to be assigned")
	}
}

func TestCreate_DuplicateName(t *testing.T) {
	repo := &mockCareServiceRepository{
		findByNameFunc: func(ctx context.Context, name string) ([]*model.CareService, error) {
			return []*model.CareService{{ID: "65a000000000000000000099", Name: name}}, nil
		},
	}
	svc := newTestService(repo)

	err := svc.Create(context.Background(), validService())
	if err == nil {
		t.Fatal("expected conflict error")
	}
	appErr, ok := apperrors.AsAppError(err)
	if !ok || appErr.StatusCode() != 409 {
		t.Fatalf("expected 409 conflict, got %v", err)
	}
}

func TestCreate_ValidationFailure(t *testing.T) {
	svc := newTestService(&mockCareServiceRepository{})

	cs := validService()
	cs.Name = "x"

	err := svc.Create(context.Background(), cs)
	if err == nil {
		t.Fatal("expected validation error")
	}
	appErr, ok := apperrors.AsAppError(err)
	if !ok || appErr.StatusCode() != 422 {
		t.Fatalf("expected 422 validation error, got %v", err)
	}
}

func TestUpdate_MergesPartialChanges(t *testing.T) {
	existing := validService()
	existing.ID = "65a000000000000000000001"

	var updated *model.CareService
	repo := &mockCareServiceRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.CareService, error) {
			cp := *existing
			return &cp, nil
		},
		updateFunc: func(ctx context.Context, id string, cs *model.CareService) (*mongo.UpdateResult, error) {
			updated = cs
			return &mongo.UpdateResult{MatchedCount: 1}, nil
		},
	}
	svc := newTestService(repo)

	newRate := 2800
	inactive := false
	got, err := svc.Update(context.Background(), existing.ID, &model.CareServiceUpdate{
		HourlyRatePence: &newRate,
		Active:          &inactive,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated == nil {
		t.Fatal("expected repository update call")
	}
	if got.HourlyRatePence != 2800 {
		t.Errorf("rate = %d, want 2800", got.HourlyRatePence)
	}
	if got.Active {
		t.Error("expected service to be deactivated")
	}
	if got.Name != existing.Name {
		t.Errorf("name should be unchanged, got %q", got.Name)
	}
}

func TestDelete_NotFound(t *testing.T) {
	repo := &mockCareServiceRepository{
		deleteFunc: func(ctx context.Context, id string) error {
			return careserviceerrors.ErrNotFound
		},
	}
	svc := newTestService(repo)

	err := svc.Delete(context.Background(), "65a000000000000000000001")
	if err == nil {
		t.Fatal("expected not found error")
	}
	appErr, ok := apperrors.AsAppError(err)
	if !ok || appErr.StatusCode() != 404 {
		t.Fatalf("expected 404, got %v", err)
	}
}
