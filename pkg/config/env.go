package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvBookingStore = "BOOKING_STORE"

	EnvPort      = "PORT"
	EnvLogLevel  = "LOG_LEVEL"
	EnvLogFormat = "LOG_FORMAT"

	EnvRequestTimeout  = "REQUEST_TIMEOUT"
	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvAgentName         = "AGENT_NAME"
	EnvMaxPartySize      = "MAX_PARTY_SIZE"
	EnvOpeningTime       = "OPENING_TIME"
	EnvClosingTime       = "CLOSING_TIME"
	EnvBookingWindowDays = "BOOKING_WINDOW_DAYS"

	EnvIntentThreshold    = "INTENT_THRESHOLD"
	EnvIdentityThreshold  = "IDENTITY_THRESHOLD"
	EnvQAThreshold        = "QA_THRESHOLD"
	EnvSmallTalkThreshold = "SMALL_TALK_THRESHOLD"
	EnvDiscoveryThreshold = "DISCOVERY_THRESHOLD"
	EnvRetrievalThreshold = "RETRIEVAL_THRESHOLD"

	EnvKafkaBrokers = "KAFKA_BROKERS"
	EnvKafkaTopic   = "KAFKA_BOOKING_TOPIC"
)
