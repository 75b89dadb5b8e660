package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "tablebot"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultBookingStore = StoreMemory

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultRequestTimeout  = 30 * time.Second
	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultAgentName         = "Chatbot"
	DefaultMaxPartySize      = 20
	DefaultOpeningTime       = "11:00"
	DefaultClosingTime       = "23:00"
	DefaultBookingWindowDays = 90

	DefaultIntentThreshold    = 0.6
	DefaultIdentityThreshold  = 0.5
	DefaultQAThreshold        = 0.4
	DefaultSmallTalkThreshold = 0.5
	DefaultDiscoveryThreshold = 0.6
	DefaultRetrievalThreshold = 0.7

	DefaultKafkaTopic = "booking-events"
)
