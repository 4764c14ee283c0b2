package consumer

import (
	"context"
	"fmt"

	bookingevents "carebook/internal/bookings/events"
	"carebook/internal/notifier/repository"
	shiftevents "carebook/internal/shiftreports/events"
	"carebook/pkg/config"
	"carebook/pkg/kafka"
	"carebook/pkg/model"
	"carebook/pkg/timewire"
)

const (
	GroupID  = "notifier-consumer-group"
	DLQTopic = "dlq-notifier-service"
)

// NotificationConsumer turns booking and shift events into stored
// notification records. Redelivered events are deduplicated by event ID.
type NotificationConsumer struct {
	repo repository.NotificationRepository
	cfg  *config.Config
}

func NewNotificationConsumer(repo repository.NotificationRepository, cfg *config.Config) *NotificationConsumer {
	return &NotificationConsumer{repo: repo, cfg: cfg}
}

// Handle implements the consumer wrapper's MessageHandler contract.
func (c *NotificationConsumer) Handle(ctx context.Context, msg kafka.Message) error {
	eventID := msg.GetEventID()
	eventType := msg.GetEventType()

	if eventID == "" {
		return kafka.NewPermanentError("event without an event ID", nil)
	}

	exists, err := c.repo.ExistsByEventID(ctx, eventID)
	if err != nil {
		return kafka.NewTransientError("failed to check for duplicate event", err)
	}
	if exists {
		c.cfg.Log.Debug("Skipping already-processed event", "event_id", eventID, "event_type", eventType)
		return nil
	}

	notification, err := c.buildNotification(eventID, eventType, &msg)
	if err != nil {
		return err
	}
	if notification == nil {
		c.cfg.Log.Debug("Ignoring event type", "event_type", eventType)
		return nil
	}

	if err := c.repo.Create(ctx, notification); err != nil {
		return kafka.NewTransientError("failed to store notification", err)
	}

	c.cfg.Log.Info("Notification recorded",
		"event_id", eventID,
		"event_type", eventType,
		"booking_id", notification.BookingID,
	)
	return nil
}

// buildNotification maps a known event to its notification record. Unknown
// event types return nil, which the handler treats as a deliberate skip.
func (c *NotificationConsumer) buildNotification(eventID, eventType string, msg *kafka.Message) (*model.Notification, error) {
	switch eventType {
	case bookingevents.EventBookingCreated,
		bookingevents.EventBookingUpdated,
		bookingevents.EventBookingCancelled:
		var b model.Booking
		if err := msg.DecodeValue(&b); err != nil {
			return nil, kafka.NewPermanentError("undecodable booking event", err)
		}
		return &model.Notification{
			EventID:   eventID,
			EventType: eventType,
			BookingID: b.ID,
			Recipient: b.ContactPhone,
			Body:      bookingBody(eventType, &b),
		}, nil

	case shiftevents.EventShiftCompleted:
		var report model.ShiftReport
		if err := msg.DecodeValue(&report); err != nil {
			return nil, kafka.NewPermanentError("undecodable shift event", err)
		}
		return &model.Notification{
			EventID:   eventID,
			EventType: eventType,
			BookingID: report.BookingID,
			Body:      shiftBody(&report),
		}, nil

	default:
		return nil, nil
	}
}

func bookingBody(eventType string, b *model.Booking) string {
	when := b.StartTime.Format(timewire.DateOnly) + " at " + timewire.Clock(b.StartTime)
	switch eventType {
	case bookingevents.EventBookingCreated:
		return fmt.Sprintf("Your visit on %s has been booked.", when)
	case bookingevents.EventBookingUpdated:
		return fmt.Sprintf("Your visit has been changed to %s.", when)
	default:
		return fmt.Sprintf("Your visit on %s has been cancelled.", when)
	}
}

func shiftBody(report *model.ShiftReport) string {
	switch report.Outcome {
	case "completed":
		return "Your carer has completed the visit."
	case "partial":
		return "Your carer has reported a partially completed visit."
	default:
		return "Your carer has reported a missed visit."
	}
}
