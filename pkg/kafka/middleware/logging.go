package kafka_middleware

import (
	"context"
	"log"
	"time"

	"carebook/pkg/kafka"
)

func LoggingProducerMiddleware() kafka.ProducerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next func(ctx context.Context, msg kafka.Message) error) error {
		start := time.Now()

		err := next(ctx, msg)

		duration := time.Since(start)

		if err != nil {
			log.Printf(
				"[KAFKA PRODUCER] Failed to publish message | topic=%s key=%s event_id=%s duration=%s error=%v",
				msg.Topic, msg.Key, msg.GetEventID(), duration, err,
			)
		} else {
			log.Printf(
				"[KAFKA PRODUCER] Published message | topic=%s key=%s event_id=%s duration=%s",
				msg.Topic, msg.Key, msg.GetEventID(), duration,
			)
		}

		return err
	}
}

func LoggingConsumerMiddleware() kafka.ConsumerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next kafka.MessageHandler) error {
		start := time.Now()

		err := next(ctx, msg)

		duration := time.Since(start)

		if err != nil {
			log.Printf(
				"[KAFKA CONSUMER] Failed to process message | topic=%s partition=%d offset=%d key=%s event_id=%s duration=%s error=%v",
				msg.Topic, msg.Partition, msg.Offset, msg.Key, msg.GetEventID(), duration, err,
			)
		} else {
			log.Printf(
				"[KAFKA CONSUMER] Processed message | topic=%s partition=%d offset=%d key=%s event_id=%s duration=%s",
				msg.Topic, msg.Partition, msg.Offset, msg.Key, msg.GetEventID(), duration,
			)
		}

		return err
	}
}
