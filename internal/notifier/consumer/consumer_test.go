package consumer

import (
	"context"
	"errors"
	"testing"
	"time"

	bookingevents "carebook/internal/bookings/events"
	"carebook/internal/notifier/repository"
	shiftevents "carebook/internal/shiftreports/events"
	"carebook/pkg/config"
	"carebook/pkg/kafka"
	"carebook/pkg/logger"
	"carebook/pkg/model"
)

type mockNotificationRepository struct {
	stored    []*model.Notification
	existing  map[string]bool
	createErr error
}

var _ repository.NotificationRepository = (*mockNotificationRepository)(nil)

func (m *mockNotificationRepository) Create(ctx context.Context, n *model.Notification) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.stored = append(m.stored, n)
	return nil
}

func (m *mockNotificationRepository) ExistsByEventID(ctx context.Context, eventID string) (bool, error) {
	return m.existing[eventID], nil
}

func (m *mockNotificationRepository) FindByBooking(ctx context.Context, bookingID string) ([]*model.Notification, error) {
	return m.stored, nil
}

func newTestConsumer(repo *mockNotificationRepository) *NotificationConsumer {
	log := logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Service: "test",
	})
	return NewNotificationConsumer(repo, &config.Config{Log: log})
}

func bookingMessage(eventID, eventType string, b *model.Booking) kafka.Message {
	return kafka.NewMessage().
		WithKey(b.ID).
		WithValue(b).
		WithEventID(eventID).
		WithEventType(eventType).
		Build()
}

func TestHandle_BookingCreated(t *testing.T) {
	repo := &mockNotificationRepository{existing: map[string]bool{}}
	c := newTestConsumer(repo)

	booking := &model.Booking{
		ID:           "65a000000000000000000001",
		ContactPhone: "+447911123456",
		StartTime:    time.Date(2026, 3, 9, 10, 30, 0, 0, time.UTC),
	}
	msg := bookingMessage("evt-1", bookingevents.EventBookingCreated, booking)

	if err := c.Handle(context.Background(), msg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.stored) != 1 {
		t.Fatalf("expected one notification, got %d", len(repo.stored))
	}
	n := repo.stored[0]
	if n.BookingID != booking.ID {
		t.Errorf("booking ID = %q, want %q", n.BookingID, booking.ID)
	}
	if n.Recipient != booking.ContactPhone {
		t.Errorf("recipient = %q, want %q", n.Recipient, booking.ContactPhone)
	}
	if n.Body != "Your visit on 2026-03-09 at 10:30:00 has been booked." {
		t.Errorf("unexpected body: %q", n.Body)
	}
}

func TestHandle_DuplicateEventIsSkipped(t *testing.T) {
	repo := &mockNotificationRepository{existing: map[string]bool{"evt-1": true}}
	c := newTestConsumer(repo)

	msg := bookingMessage("evt-1", bookingevents.EventBookingCreated, &model.Booking{ID: "65a000000000000000000001"})

	if err := c.Handle(context.Background(), msg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.stored) != 0 {
		t.Errorf("duplicate event should store nothing, got %d", len(repo.stored))
	}
}

func TestHandle_ShiftCompleted(t *testing.T) {
	repo := &mockNotificationRepository{existing: map[string]bool{}}
	c := newTestConsumer(repo)

	report := &model.ShiftReport{
		ID:        "65a000000000000000000002",
		BookingID: "65a000000000000000000001",
		Outcome:   "completed",
	}
	msg := kafka.NewMessage().
		WithKey(report.BookingID).
		WithValue(report).
		WithEventID("evt-2").
		WithEventType(shiftevents.EventShiftCompleted).
		Build()

	if err := c.Handle(context.Background(), msg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.stored) != 1 {
		t.Fatalf("expected one notification, got %d", len(repo.stored))
	}
	if repo.stored[0].Body != "Your carer has completed the visit." {
		t.Errorf("unexpected body: %q", repo.stored[0].Body)
	}
}

func TestHandle_UnknownEventTypeIsIgnored(t *testing.T) {
	repo := &mockNotificationRepository{existing: map[string]bool{}}
	c := newTestConsumer(repo)

	msg := kafka.NewMessage().
		WithRawValue([]byte(`{}`)).
		WithEventID("evt-3").
		WithEventType("carer.onboarded").
		Build()

	if err := c.Handle(context.Background(), msg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.stored) != 0 {
		t.Errorf("unknown event should store nothing, got %d", len(repo.stored))
	}
}

func TestHandle_UndecodableBookingIsPermanent(t *testing.T) {
	repo := &mockNotificationRepository{existing: map[string]bool{}}
	c := newTestConsumer(repo)

	msg := kafka.NewMessage().
		WithRawValue([]byte(`not json`)).
		WithEventID("evt-4").
		WithEventType(bookingevents.EventBookingCreated).
		Build()

	err := c.Handle(context.Background(), msg)
	if err == nil {
		t.Fatal("expected permanent error")
	}
	var kafkaErr *kafka.KafkaError
	if !errors.As(err, &kafkaErr) {
		t.Fatalf("expected KafkaError, got %T", err)
	}
	if kafka.ShouldRetry(err, 0, 3) {
		t.Error("undecodable payload should not be retried")
	}
}

func TestHandle_StorageFailureIsTransient(t *testing.T) {
	repo := &mockNotificationRepository{
		existing:  map[string]bool{},
		createErr: errors.New("connection reset"),
	}
	c := newTestConsumer(repo)

	msg := bookingMessage("evt-5", bookingevents.EventBookingCreated, &model.Booking{ID: "65a000000000000000000001"})

	err := c.Handle(context.Background(), msg)
	if err == nil {
		t.Fatal("expected transient error")
	}
	if !kafka.ShouldRetry(err, 0, 3) {
		t.Error("storage failure should be retryable")
	}
}
