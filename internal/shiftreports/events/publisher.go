package events

import (
	"context"
	"fmt"

	"carebook/pkg/kafka"
	"carebook/pkg/logger"
	"carebook/pkg/model"
)

const (
	TopicShiftEvents = "shift-events"
	DLQTopic         = "dlq-shiftreports-service"

	EventShiftCompleted = "shift.completed"

	sourceService = "shiftreports-service"
)

// Publisher emits shift completion events, keyed by booking ID so reports
// for one booking stay ordered.
type Publisher interface {
	ShiftCompleted(ctx context.Context, report *model.ShiftReport) error
	Close() error
}

type kafkaPublisher struct {
	producer *kafka.Producer
	log      *logger.Logger
}

func NewKafkaPublisher(producer *kafka.Producer, log *logger.Logger) Publisher {
	return &kafkaPublisher{producer: producer, log: log}
}

func (p *kafkaPublisher) ShiftCompleted(ctx context.Context, report *model.ShiftReport) error {
	msg := kafka.NewMessage().
		WithKey(report.BookingID).
		WithValue(report).
		WithEventType(EventShiftCompleted).
		WithSource(sourceService).
		Build()

	if err := p.producer.Publish(ctx, msg); err != nil {
		p.log.Error("Failed to publish shift event",
			"report_id", report.ID,
			"booking_id", report.BookingID,
			"error", err,
		)
		return fmt.Errorf("failed to publish %s: %w", EventShiftCompleted, err)
	}
	return nil
}

func (p *kafkaPublisher) Close() error {
	return p.producer.Close()
}

type noopPublisher struct {
	log *logger.Logger
}

func NewNoopPublisher(log *logger.Logger) Publisher {
	return &noopPublisher{log: log}
}

func (p *noopPublisher) ShiftCompleted(ctx context.Context, report *model.ShiftReport) error {
	p.log.Debug("Event publishing disabled, dropping event", "event_type", EventShiftCompleted, "report_id", report.ID)
	return nil
}

func (p *noopPublisher) Close() error { return nil }
