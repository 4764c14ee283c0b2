package main

import (
	"carebook/internal/availability/handler"
	"carebook/internal/availability/repository"
	"carebook/internal/availability/service"
	"carebook/internal/availability/validator"
	"carebook/pkg/app"
	"carebook/pkg/config"
)

const ServiceName = "availability"

func main() {
	cfg := config.Load(ServiceName)

	cfg.Log.Info("Starting Availability service")
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	availabilityService := initServices(cfg)
	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewAvailabilityHandler(availabilityService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) service.AvailabilityService {
	carerDayValidator := validator.NewCarerDayValidator(cfg.Log)
	carerDayRepo := repository.NewMongoCarerDayRepository(cfg)
	availabilityService := service.NewAvailabilityService(
		carerDayRepo,
		carerDayValidator,
		cfg,
	)

	cfg.Log.Info("Availability service initialized", "database", cfg.MongoDatabaseName)
	return availabilityService
}
