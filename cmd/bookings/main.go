package main

import (
	"os"

	"carebook/internal/bookings/events"
	"carebook/internal/bookings/handler"
	"carebook/internal/bookings/repository"
	"carebook/internal/bookings/service"
	"carebook/internal/bookings/validator"
	"carebook/pkg/app"
	"carebook/pkg/client"
	"carebook/pkg/config"
	"carebook/pkg/kafka"
	kafka_config "carebook/pkg/kafka/config"
)

const ServiceName = "bookings"

func main() {
	cfg := config.Load(ServiceName)

	cfg.Log.Info("Starting Bookings service")
	cfg.SetMongo()
	cfg.SetRedis()
	defer cfg.GracefulShutdown()

	bookingService := initServices(cfg)
	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewBookingHandler(bookingService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) service.BookingService {
	bookingValidator := validator.NewBookingValidator(cfg.Log)
	bookingRepo := repository.NewMongoBookingRepository(cfg)
	slotSource := service.NewAvailabilitySlotSource(client.NewAvailabilityClient(cfg.AvailabilityBaseURL))
	bookingService := service.NewBookingService(
		bookingRepo,
		bookingValidator,
		slotSource,
		newPublisher(cfg),
		cfg,
	)

	cfg.Log.Info("Booking service initialized", "database", cfg.MongoDatabaseName)
	return bookingService
}

func newPublisher(cfg *config.Config) events.Publisher {
	if os.Getenv(kafka_config.EnvKafkaBrokers) == "" {
		cfg.Log.Info("Kafka brokers not configured, booking events disabled")
		return events.NewNoopPublisher(cfg.Log)
	}

	kafkaCfg := kafka_config.Load()
	kafkaCfg.LogConfiguration(cfg.Log.Info)

	producer, err := kafka.NewProducer(kafkaCfg, events.TopicBookingEvents, events.DLQTopic)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	return events.NewKafkaPublisher(producer, cfg.Log)
}
