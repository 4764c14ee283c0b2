package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"

	bookingevents "carebook/internal/bookings/events"
	"carebook/internal/notifier/consumer"
	"carebook/internal/notifier/repository"
	shiftevents "carebook/internal/shiftreports/events"
	"carebook/pkg/config"
	"carebook/pkg/kafka"
	kafka_config "carebook/pkg/kafka/config"
	kafka_middleware "carebook/pkg/kafka/middleware"
)

const ServiceName = "notifier"

func main() {
	cfg := config.Load(ServiceName)

	cfg.Log.Info("Starting Notifier service")
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	kafkaCfg := kafka_config.Load()
	kafkaCfg.LogConfiguration(cfg.Log.Info)

	notificationRepo := repository.NewMongoNotificationRepository(cfg)
	notificationConsumer := consumer.NewNotificationConsumer(notificationRepo, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	topics := []string{
		bookingevents.TopicBookingEvents,
		shiftevents.TopicShiftEvents,
	}

	var wg sync.WaitGroup
	consumers := make([]*kafka.Consumer, 0, len(topics))

	for _, topic := range topics {
		c, err := kafka.NewConsumer(kafkaCfg, topic, consumer.GroupID, consumer.DLQTopic, notificationConsumer.Handle)
		if err != nil {
			cfg.Log.Fatal("Failed to create Kafka consumer", "topic", topic, "error", err)
		}
		c.Use(kafka_middleware.LoggingConsumerMiddleware())
		consumers = append(consumers, c)

		wg.Add(1)
		go func(topic string, c *kafka.Consumer) {
			defer wg.Done()
			cfg.Log.Info("Consuming topic", "topic", topic)
			if err := c.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				cfg.Log.Error("Consumer stopped", "topic", topic, "error", err)
			}
		}(topic, c)
	}

	<-ctx.Done()
	cfg.Log.Info("Shutdown signal received, closing consumers")
	for _, c := range consumers {
		if err := c.Close(); err != nil {
			cfg.Log.Error("Failed to close consumer", "error", err)
		}
	}
	wg.Wait()
	cfg.Log.Info("Notifier stopped")
}
