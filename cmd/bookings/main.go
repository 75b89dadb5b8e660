package main

import (
	"tablebot/internal/bookings"
	"tablebot/internal/bookings/handler"
	"tablebot/pkg/app"
	"tablebot/pkg/config"
)

const ServiceName = "bookings"

func main() {
	cfg := config.Load(ServiceName)

	if !cfg.UsesMongo() {
		cfg.Log.Warn("Serving the in-memory store, bookings made by the agent process are not visible here")
	}

	cfg.Log.Info("Starting Bookings admin service")
	bookingService, shutdown := bookings.NewService(cfg, ServiceName)
	defer shutdown()

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		handler.NewHealthHandler(cfg.Client, cfg.Log),
		handler.NewBookingHandler(bookingService, cfg.Log),
	)
	serverApp.Run()
}
