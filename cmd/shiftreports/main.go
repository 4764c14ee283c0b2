package main

import (
	"os"

	"carebook/internal/shiftreports/events"
	"carebook/internal/shiftreports/handler"
	"carebook/internal/shiftreports/repository"
	"carebook/internal/shiftreports/service"
	"carebook/internal/shiftreports/validator"
	"carebook/pkg/app"
	"carebook/pkg/config"
	"carebook/pkg/kafka"
	kafka_config "carebook/pkg/kafka/config"
	"carebook/pkg/sealer"
)

const ServiceName = "shift-reports"

func main() {
	cfg := config.Load(ServiceName)

	cfg.Log.Info("Starting Shift Reports service")
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	shiftReportService := initServices(cfg)
	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewShiftReportHandler(shiftReportService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) service.ShiftReportService {
	if cfg.ShiftTokenKey == "" {
		cfg.Log.Fatal("SHIFT_TOKEN_KEY must be set for the shift reports service")
	}

	seal, err := sealer.New(cfg.ShiftTokenKey)
	if err != nil {
		cfg.Log.Fatal("Invalid shift token key", "error", err)
	}

	shiftReportValidator := validator.NewShiftReportValidator()
	shiftReportRepo := repository.NewMongoShiftReportRepository(cfg)
	shiftReportService := service.NewShiftReportService(
		shiftReportRepo,
		shiftReportValidator,
		seal,
		newPublisher(cfg),
		cfg,
	)

	cfg.Log.Info("Shift report service initialized", "database", cfg.MongoDatabaseName)
	return shiftReportService
}

func newPublisher(cfg *config.Config) events.Publisher {
	if os.Getenv(kafka_config.EnvKafkaBrokers) == "" {
		cfg.Log.Info("Kafka brokers not configured, shift events disabled")
		return events.NewNoopPublisher(cfg.Log)
	}

	kafkaCfg := kafka_config.Load()
	kafkaCfg.LogConfiguration(cfg.Log.Info)

	producer, err := kafka.NewProducer(kafkaCfg, events.TopicShiftEvents, events.DLQTopic)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	return events.NewKafkaPublisher(producer, cfg.Log)
}
