package events

import (
	"context"
	"fmt"

	"carebook/pkg/kafka"
	"carebook/pkg/logger"
	"carebook/pkg/model"
)

const (
	TopicBookingEvents = "booking-events"
	DLQTopic           = "dlq-bookings-service"

	EventBookingCreated   = "booking.created"
	EventBookingUpdated   = "booking.updated"
	EventBookingCancelled = "booking.cancelled"

	sourceService = "bookings-service"
)

// Publisher emits booking lifecycle events for downstream consumers such as
// the notifier. Messages are keyed by booking ID so events for one booking
// stay ordered within a partition.
type Publisher interface {
	BookingCreated(ctx context.Context, b *model.Booking) error
	BookingUpdated(ctx context.Context, b *model.Booking) error
	BookingCancelled(ctx context.Context, b *model.Booking) error
	Close() error
}

type kafkaPublisher struct {
	producer *kafka.Producer
	log      *logger.Logger
}

func NewKafkaPublisher(producer *kafka.Producer, log *logger.Logger) Publisher {
	return &kafkaPublisher{producer: producer, log: log}
}

func (p *kafkaPublisher) BookingCreated(ctx context.Context, b *model.Booking) error {
	return p.publish(ctx, EventBookingCreated, b)
}

func (p *kafkaPublisher) BookingUpdated(ctx context.Context, b *model.Booking) error {
	return p.publish(ctx, EventBookingUpdated, b)
}

func (p *kafkaPublisher) BookingCancelled(ctx context.Context, b *model.Booking) error {
	return p.publish(ctx, EventBookingCancelled, b)
}

func (p *kafkaPublisher) publish(ctx context.Context, eventType string, b *model.Booking) error {
	msg := kafka.NewMessage().
		WithKey(b.ID).
		WithValue(b).
		WithEventType(eventType).
		WithSource(sourceService).
		Build()

	if err := p.producer.Publish(ctx, msg); err != nil {
		p.log.Error("Failed to publish booking event",
			"event_type", eventType,
			"booking_id", b.ID,
			"error", err,
		)
		return fmt.Errorf("failed to publish %s: %w", eventType, err)
	}
	return nil
}

func (p *kafkaPublisher) Close() error {
	return p.producer.Close()
}

// noopPublisher is used when Kafka is not configured. Booking operations
// still succeed; events are logged and dropped.
type noopPublisher struct {
	log *logger.Logger
}

func NewNoopPublisher(log *logger.Logger) Publisher {
	return &noopPublisher{log: log}
}

func (p *noopPublisher) BookingCreated(ctx context.Context, b *model.Booking) error {
	p.log.Debug("Event publishing disabled, dropping event", "event_type", EventBookingCreated, "booking_id", b.ID)
	return nil
}

func (p *noopPublisher) BookingUpdated(ctx context.Context, b *model.Booking) error {
	p.log.Debug("Event publishing disabled, dropping event", "event_type", EventBookingUpdated, "booking_id", b.ID)
	return nil
}

func (p *noopPublisher) BookingCancelled(ctx context.Context, b *model.Booking) error {
	p.log.Debug("Event publishing disabled, dropping event", "event_type", EventBookingCancelled, "booking_id", b.ID)
	return nil
}

func (p *noopPublisher) Close() error { return nil }
