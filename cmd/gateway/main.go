package main

import (
	"carebook/internal/gateway/core"
	"carebook/internal/gateway/handler"
	"carebook/internal/gateway/service"
	"carebook/pkg/app"
	"carebook/pkg/client"
	"carebook/pkg/config"
)

const ServiceName = "gateway"

func main() {
	cfg := config.Load(ServiceName)

	cfg.Log.Info("Starting Gateway service")
	defer cfg.GracefulShutdown()

	gatewayService := initServices(cfg)
	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewFlowHandler(gatewayService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) service.GatewayService {
	clients := &core.Clients{
		Bookings:     client.NewBookingsClient(cfg.BookingsBaseURL),
		Availability: client.NewAvailabilityClient(cfg.AvailabilityBaseURL),
		CareServices: client.NewCareServicesClient(cfg.CareServicesBaseURL),
	}

	cfg.Log.Info("Gateway initialized",
		"bookings", cfg.BookingsBaseURL,
		"availability", cfg.AvailabilityBaseURL,
		"care_services", cfg.CareServicesBaseURL,
	)
	return service.NewGatewayService(cfg, clients)
}
