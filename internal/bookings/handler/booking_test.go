package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"carebook/pkg/logger"
	"carebook/pkg/model"
)

// Mock service for testing
type mockBookingService struct {
	searchFunc func(ctx context.Context, clientID, carerID, status, date string, limit int, offset int64) ([]*model.Booking, error)
}

func (m *mockBookingService) Create(ctx context.Context, req *model.NewBookingRequest) (*model.Booking, error) {
	return nil, nil
}

func (m *mockBookingService) CreateRecurring(ctx context.Context, req *model.RecurringBookingRequest) (*model.Booking, error) {
	return nil, nil
}

func (m *mockBookingService) Preview(ctx context.Context, req *model.RecurrencePreviewRequest) (*model.RecurrencePreviewResponse, error) {
	return nil, nil
}

func (m *mockBookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	return nil, nil
}

func (m *mockBookingService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error) {
	return []*model.Booking{}, 0, nil
}

func (m *mockBookingService) Update(ctx context.Context, id string, updates *model.EditBookingRequest) (*model.Booking, error) {
	return nil, nil
}

func (m *mockBookingService) Cancel(ctx context.Context, id string) error {
	return nil
}

func (m *mockBookingService) Search(ctx context.Context, clientID, carerID, status, date string, limit int, offset int64) ([]*model.Booking, error) {
	if m.searchFunc != nil {
		return m.searchFunc(ctx, clientID, carerID, status, date, limit, offset)
	}
	return []*model.Booking{}, nil
}

func testHandler(svc *mockBookingService) *BookingHandler {
	log := logger.New(logger.Config{Output: io.Discard})
	return NewBookingHandler(svc, log)
}

func TestSearch_ForwardsDateAndPagination(t *testing.T) {
	var gotCarerID, gotDate string
	var gotLimit int
	var gotOffset int64
	svc := &mockBookingService{
		searchFunc: func(ctx context.Context, clientID, carerID, status, date string, limit int, offset int64) ([]*model.Booking, error) {
			gotCarerID = carerID
			gotDate = date
			gotLimit = limit
			gotOffset = offset
			return []*model.Booking{}, nil
		},
	}
	h := testHandler(svc)

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/bookings/search?carer_id=65a000000000000000000020&date=2026-03-09&limit=50&offset=25", nil)
	rec := httptest.NewRecorder()
	h.Search(rec, req, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotCarerID != "65a000000000000000000020" {
		t.Errorf("unexpected carer_id: %q", gotCarerID)
	}
	if gotDate != "2026-03-09" {
		t.Errorf("unexpected date: %q", gotDate)
	}
	if gotLimit != 50 || gotOffset != 25 {
		t.Errorf("expected limit 50 offset 25, got %d %d", gotLimit, gotOffset)
	}

	var body struct {
		Data []*model.Booking `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response did not decode: %v", err)
	}
	if body.Data == nil {
		t.Error("expected data field with an empty list")
	}
}

func TestSearch_InvalidLimitRejected(t *testing.T) {
	called := false
	svc := &mockBookingService{
		searchFunc: func(ctx context.Context, clientID, carerID, status, date string, limit int, offset int64) ([]*model.Booking, error) {
			called = true
			return nil, nil
		},
	}
	h := testHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/search?carer_id=abc&limit=ten", nil)
	rec := httptest.NewRecorder()
	h.Search(rec, req, nil)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if called {
		t.Error("service should not be called on a bad limit")
	}
}

func TestSearch_RequiresClientOrCarer(t *testing.T) {
	h := testHandler(&mockBookingService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/search?status=confirmed", nil)
	rec := httptest.NewRecorder()
	h.Search(rec, req, nil)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
