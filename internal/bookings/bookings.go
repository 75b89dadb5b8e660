// Package bookings assembles the booking service from configuration.
package bookings

import (
	"tablebot/internal/bookings/events"
	"tablebot/internal/bookings/repository"
	"tablebot/internal/bookings/service"
	"tablebot/internal/bookings/validator"
	"tablebot/pkg/config"
	"tablebot/pkg/kafka"
)

// NewService connects the configured store and event publisher. The returned
// func releases both and must be called on shutdown.
func NewService(cfg *config.Config, source string) (service.BookingService, func()) {
	var repo repository.BookingRepository
	if cfg.UsesMongo() {
		cfg.SetMongo()
		repo = repository.NewMongoBookingRepository(cfg)
	} else {
		repo = repository.NewMemoryBookingRepository()
	}

	var publisher events.Publisher
	closeProducer := func() {}
	if cfg.KafkaEnabled() {
		producer, err := kafka.NewProducer(kafka.DefaultProducerConfig(cfg.KafkaBrokers, cfg.KafkaTopic), cfg.Log)
		if err != nil {
			cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
		}
		producer.Use(kafka.LoggingMiddleware(cfg.Log))
		publisher = events.NewKafkaPublisher(producer, source)
		closeProducer = func() {
			if err := producer.Close(); err != nil {
				cfg.Log.Error("Failed to close Kafka producer", "error", err)
			}
		}
	}

	svc := service.NewBookingService(
		repo,
		validator.NewBookingValidator(cfg.MaxPartySize, cfg.Log),
		publisher,
		cfg,
	)
	cfg.Log.Info("Booking service initialized",
		"store", cfg.BookingStore,
		"database", cfg.MongoDatabaseName,
		"events", cfg.KafkaEnabled(),
	)

	return svc, func() {
		closeProducer()
		cfg.GracefulShutdown()
	}
}
