package main

import (
	"carebook/internal/careservices/handler"
	"carebook/internal/careservices/repository"
	"carebook/internal/careservices/service"
	"carebook/internal/careservices/validator"
	"carebook/pkg/app"
	"carebook/pkg/config"
)

const ServiceName = "care-services"

func main() {
	cfg := config.Load(ServiceName)

	cfg.Log.Info("Starting Care Services catalog service")
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	careServiceService := initServices(cfg)
	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewCareServiceHandler(careServiceService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) service.CareServiceService {
	careServiceValidator := validator.NewCareServiceValidator()
	careServiceRepo := repository.NewMongoCareServiceRepository(cfg)
	careServiceService := service.NewCareServiceService(
		careServiceRepo,
		careServiceValidator,
		cfg,
	)

	cfg.Log.Info("Care service catalog initialized", "database", cfg.MongoDatabaseName)
	return careServiceService
}
