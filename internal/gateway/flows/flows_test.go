package flows

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"carebook/internal/gateway/core"
	"carebook/pkg/client"
	apperrors "carebook/pkg/errors"
	httputil "carebook/pkg/http"
	"carebook/pkg/logger"
	"carebook/pkg/model"
	"carebook/pkg/timewire"
)

const (
	testClientID  = "65a000000000000000000010"
	testCarerID   = "65a000000000000000000020"
	testServiceID = "65a000000000000000000030"
	testBookingID = "65a000000000000000000050"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Output: io.Discard})
}

func newEngine() *core.Engine {
	return core.NewEngine(BookVisit(), DayOverview())
}

// availabilityServer answers slot checks with the given verdict and serves a
// fixed slot grid.
func availabilityServer(t *testing.T, check model.SlotCheckResponse, slots []model.AvailabilitySlot) *httptest.Server {
	t.Helper()
	if slots == nil {
		slots = []model.AvailabilitySlot{}
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/availability/check", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteSuccess(w, check)
	})
	mux.HandleFunc("/api/v1/availability/slots", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteSuccess(w, slots)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func bookingsServer(t *testing.T, created *model.Booking, previewMessage string, searchResults []*model.Booking, createCalls *atomic.Int32) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/bookings", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		createCalls.Add(1)
		httputil.WriteCreated(w, created)
	})
	mux.HandleFunc("/api/v1/bookings/recurring", func(w http.ResponseWriter, r *http.Request) {
		createCalls.Add(1)
		httputil.WriteCreated(w, created)
	})
	mux.HandleFunc("/api/v1/bookings/recurrence/preview", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteSuccess(w, model.RecurrencePreviewResponse{
			Descriptor: model.RecurrenceDescriptor{FrequencyInterval: 2, FrequencyType: 1, FrequencyDuration: 1},
			Message:    previewMessage,
		})
	})
	// Mirrors the real search handler: honors the date filter and replies
	// with the success envelope, never the paginated one.
	mux.HandleFunc("/api/v1/bookings/search", func(w http.ResponseWriter, r *http.Request) {
		results := searchResults
		if date := r.URL.Query().Get("date"); date != "" {
			day, err := timewire.ParseDate(date)
			if err != nil {
				httputil.WriteError(w, apperrors.InvalidInput("Invalid date, expected YYYY-MM-DD"))
				return
			}
			filtered := make([]*model.Booking, 0)
			for _, b := range results {
				if timewire.SameDate(b.StartTime, day) {
					filtered = append(filtered, b)
				}
			}
			results = filtered
		}
		if results == nil {
			results = []*model.Booking{}
		}
		httputil.WriteSuccess(w, results)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newClients(availabilityURL, bookingsURL string) *core.Clients {
	return &core.Clients{
		Bookings:     client.NewBookingsClient(bookingsURL),
		Availability: client.NewAvailabilityClient(availabilityURL),
		CareServices: client.NewCareServicesClient(bookingsURL),
	}
}

func bookVisitInput() map[string]any {
	return map[string]any{
		"client_id":        testClientID,
		"carer_id":         testCarerID,
		"service_id":       testServiceID,
		"date":             "2026-03-09",
		"time":             "10:30",
		"duration_minutes": float64(60),
	}
}

func TestBookVisit_CreatesBookingWhenSlotOpen(t *testing.T) {
	created := &model.Booking{
		ID:              testBookingID,
		ClientID:        testClientID,
		CarerID:         testCarerID,
		ServiceID:       testServiceID,
		StartTime:       time.Date(2026, 3, 9, 10, 30, 0, 0, time.UTC),
		DurationMinutes: 60,
		Status:          "pending",
	}

	var createCalls atomic.Int32
	asrv := availabilityServer(t, model.SlotCheckResponse{}, nil)
	bsrv := bookingsServer(t, created, "", nil, &createCalls)

	ctx := core.NewFlowContext(bookVisitInput(), newClients(asrv.URL, bsrv.URL), testLogger())
	if err := newEngine().Run("book_visit", ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	booking, ok := ctx.Output["booking"].(*model.Booking)
	if !ok {
		t.Fatalf("Output[booking] = %T, want *model.Booking", ctx.Output["booking"])
	}
	if booking.ID != testBookingID {
		t.Errorf("booking ID = %q, want %q", booking.ID, testBookingID)
	}
	if createCalls.Load() != 1 {
		t.Errorf("create calls = %d, want 1", createCalls.Load())
	}
	if _, present := ctx.Output["recurrence_message"]; present {
		t.Error("one-off booking should not carry a recurrence message")
	}
}

func TestBookVisit_DisabledSlotConflicts(t *testing.T) {
	var createCalls atomic.Int32
	asrv := availabilityServer(t, model.SlotCheckResponse{Disabled: true}, nil)
	bsrv := bookingsServer(t, nil, "", nil, &createCalls)

	ctx := core.NewFlowContext(bookVisitInput(), newClients(asrv.URL, bsrv.URL), testLogger())
	err := newEngine().Run("book_visit", ctx)
	if err == nil {
		t.Fatal("Run() error = nil, want conflict")
	}

	appErr, ok := apperrors.AsAppError(err)
	if !ok || appErr.StatusCode() != 409 {
		t.Fatalf("error = %v, want 409 app error", err)
	}
	if createCalls.Load() != 0 {
		t.Errorf("create was called despite disabled slot")
	}
}

func TestBookVisit_NoAvailabilityConflicts(t *testing.T) {
	var createCalls atomic.Int32
	asrv := availabilityServer(t, model.SlotCheckResponse{NoAvailability: true}, nil)
	bsrv := bookingsServer(t, nil, "", nil, &createCalls)

	ctx := core.NewFlowContext(bookVisitInput(), newClients(asrv.URL, bsrv.URL), testLogger())
	err := newEngine().Run("book_visit", ctx)

	appErr, ok := apperrors.AsAppError(err)
	if !ok || appErr.StatusCode() != 409 {
		t.Fatalf("error = %v, want 409 app error", err)
	}
}

func TestBookVisit_MissingParam(t *testing.T) {
	input := bookVisitInput()
	delete(input, "carer_id")

	// No servers: validation must fail before any downstream call.
	ctx := core.NewFlowContext(input, newClients("http://unused", "http://unused"), testLogger())
	err := newEngine().Run("book_visit", ctx)

	appErr, ok := apperrors.AsAppError(err)
	if !ok || appErr.StatusCode() != 400 {
		t.Fatalf("error = %v, want 400 app error", err)
	}
}

func TestBookVisit_RecurringAttachesMessage(t *testing.T) {
	message := "Starts from 09 Mar 2026 and repeats every Monday at 10:30 up to 08 Apr 2026"
	created := &model.Booking{
		ID:        testBookingID,
		ClientID:  testClientID,
		CarerID:   testCarerID,
		ServiceID: testServiceID,
		StartTime: time.Date(2026, 3, 9, 10, 30, 0, 0, time.UTC),
		Status:    "pending",
		Recurrence: &model.RecurrenceDescriptor{
			FrequencyInterval: 2,
			FrequencyType:     1,
			FrequencyDuration: 1,
		},
	}

	var createCalls atomic.Int32
	asrv := availabilityServer(t, model.SlotCheckResponse{}, nil)
	bsrv := bookingsServer(t, created, message, nil, &createCalls)

	input := bookVisitInput()
	input["recurrence"] = map[string]any{"frequency": "weekly", "duration_option": "1 Month"}

	ctx := core.NewFlowContext(input, newClients(asrv.URL, bsrv.URL), testLogger())
	if err := newEngine().Run("book_visit", ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if got := ctx.Output["recurrence_message"]; got != message {
		t.Errorf("recurrence_message = %v, want %q", got, message)
	}
	booking := ctx.Output["booking"].(*model.Booking)
	if booking.Recurrence == nil {
		t.Error("created booking lost its recurrence descriptor")
	}
}

func TestBookVisit_DownstreamErrorKeepsStatus(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/availability/check", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteError(w, apperrors.Validation("Date must be in YYYY-MM-DD format", nil))
	})
	asrv := httptest.NewServer(mux)
	t.Cleanup(asrv.Close)

	var createCalls atomic.Int32
	bsrv := bookingsServer(t, nil, "", nil, &createCalls)

	ctx := core.NewFlowContext(bookVisitInput(), newClients(asrv.URL, bsrv.URL), testLogger())
	err := newEngine().Run("book_visit", ctx)

	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		t.Fatalf("error = %v, want app error", err)
	}
	if appErr.StatusCode() != 422 {
		t.Errorf("StatusCode() = %d, want downstream 422", appErr.StatusCode())
	}
}

func TestDayOverview_MergesBookingsAndSlots(t *testing.T) {
	onDate := &model.Booking{
		ID:        testBookingID,
		CarerID:   testCarerID,
		ClientID:  testClientID,
		ServiceID: testServiceID,
		StartTime: time.Date(2026, 3, 9, 10, 30, 0, 0, time.UTC),
		Status:    "confirmed",
	}
	otherDate := &model.Booking{
		ID:        "65a000000000000000000051",
		CarerID:   testCarerID,
		ClientID:  testClientID,
		ServiceID: testServiceID,
		StartTime: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		Status:    "confirmed",
	}
	cancelled := &model.Booking{
		ID:        "65a000000000000000000052",
		CarerID:   testCarerID,
		ClientID:  testClientID,
		ServiceID: testServiceID,
		StartTime: time.Date(2026, 3, 9, 14, 0, 0, 0, time.UTC),
		Status:    "cancelled",
	}

	slots := []model.AvailabilitySlot{
		{TimeSlot: time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC), IsCarerAvailable: true},
		{TimeSlot: time.Date(2026, 3, 9, 10, 30, 0, 0, time.UTC), IsCarerAvailable: false},
		{TimeSlot: time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC), IsCarerAvailable: true},
	}

	var createCalls atomic.Int32
	asrv := availabilityServer(t, model.SlotCheckResponse{}, slots)
	bsrv := bookingsServer(t, nil, "", []*model.Booking{onDate, otherDate, cancelled}, &createCalls)

	input := map[string]any{"carer_id": testCarerID, "date": "2026-03-09"}
	ctx := core.NewFlowContext(input, newClients(asrv.URL, bsrv.URL), testLogger())
	if err := newEngine().Run("day_overview", ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	visits := ctx.Output["visits"].([]*model.Booking)
	if len(visits) != 1 || visits[0].ID != testBookingID {
		t.Fatalf("visits = %v, want only the confirmed same-day booking", visits)
	}
	if got := ctx.Output["visit_count"]; got != 1 {
		t.Errorf("visit_count = %v, want 1", got)
	}
	if got := ctx.Output["available_slot_count"]; got != 2 {
		t.Errorf("available_slot_count = %v, want 2", got)
	}
	if got := len(ctx.Output["slots"].([]model.AvailabilitySlot)); got != 3 {
		t.Errorf("slots length = %d, want 3", got)
	}
}

func TestDayOverview_SearchScopedToDay(t *testing.T) {
	var gotDate, gotLimit, gotOffset string
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/bookings/search", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotDate = q.Get("date")
		gotLimit = q.Get("limit")
		gotOffset = q.Get("offset")
		httputil.WriteSuccess(w, []*model.Booking{})
	})
	bsrv := httptest.NewServer(mux)
	t.Cleanup(bsrv.Close)

	asrv := availabilityServer(t, model.SlotCheckResponse{}, nil)

	input := map[string]any{"carer_id": testCarerID, "date": "2026-03-09"}
	ctx := core.NewFlowContext(input, newClients(asrv.URL, bsrv.URL), testLogger())
	if err := newEngine().Run("day_overview", ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if gotDate != "2026-03-09" {
		t.Errorf("search date = %q, want the rendered day", gotDate)
	}
	if gotLimit != strconv.Itoa(MaxOverviewBookings) {
		t.Errorf("search limit = %q, want %d", gotLimit, MaxOverviewBookings)
	}
	if gotOffset != "0" {
		t.Errorf("search offset = %q, want 0", gotOffset)
	}
}

func TestDayOverview_RejectsBadDate(t *testing.T) {
	input := map[string]any{"carer_id": testCarerID, "date": "09/03/2026"}
	ctx := core.NewFlowContext(input, newClients("http://unused", "http://unused"), testLogger())

	err := newEngine().Run("day_overview", ctx)

	appErr, ok := apperrors.AsAppError(err)
	if !ok || appErr.StatusCode() != 400 {
		t.Fatalf("error = %v, want 400 app error", err)
	}
}

func TestDayOverview_OutputSerializes(t *testing.T) {
	var createCalls atomic.Int32
	asrv := availabilityServer(t, model.SlotCheckResponse{}, nil)
	bsrv := bookingsServer(t, nil, "", nil, &createCalls)

	input := map[string]any{"carer_id": testCarerID, "date": "2026-03-09"}
	ctx := core.NewFlowContext(input, newClients(asrv.URL, bsrv.URL), testLogger())
	if err := newEngine().Run("day_overview", ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if _, err := json.Marshal(ctx.Output); err != nil {
		t.Fatalf("output does not serialize: %v", err)
	}
}
