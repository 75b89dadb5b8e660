package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"tablebot/pkg/client"
	"tablebot/pkg/logger"

	"github.com/joho/godotenv"
)

const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

var (
	timeRegex     = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)
	mongoURIRegex = regexp.MustCompile(`^mongodb(\+srv)?://`)
)

type Config struct {
	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration

	BookingStore string

	Port string

	RequestTimeout  time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	AgentName         string
	MaxPartySize      int
	OpeningTime       string
	ClosingTime       string
	BookingWindowDays int

	IntentThreshold    float64
	IdentityThreshold  float64
	QAThreshold        float64
	SmallTalkThreshold float64
	DiscoveryThreshold float64
	RetrievalThreshold float64

	KafkaBrokers []string
	KafkaTopic   string

	Log    *logger.Logger
	Client *client.Client
}

// Load reads a .env file when present, then the process environment.
// Invalid configuration is fatal.
func Load(serviceName string) *Config {
	_ = godotenv.Load()

	cfg := FromEnv()
	cfg.Log = logger.New(logger.Config{
		Level:     getEnvStr(EnvLogLevel, DefaultLogLevel),
		Format:    getEnvStr(EnvLogFormat, logger.JSON),
		AddSource: true,
		Service:   serviceName,
	})

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

// FromEnv builds a Config from the environment without logging or validating.
func FromEnv() *Config {
	return &Config{
		MongoURI:          getEnvStr(EnvMongoURI, DefaultMongoURI),
		MongoDatabaseName: getEnvStr(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),

		BookingStore: strings.ToLower(getEnvStr(EnvBookingStore, DefaultBookingStore)),

		Port: getEnvStr(EnvPort, DefaultPort),

		RequestTimeout:  getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		AgentName:         getEnvStr(EnvAgentName, DefaultAgentName),
		MaxPartySize:      getEnvNum(EnvMaxPartySize, DefaultMaxPartySize),
		OpeningTime:       getEnvStr(EnvOpeningTime, DefaultOpeningTime),
		ClosingTime:       getEnvStr(EnvClosingTime, DefaultClosingTime),
		BookingWindowDays: getEnvNum(EnvBookingWindowDays, DefaultBookingWindowDays),

		IntentThreshold:    getEnvFloat(EnvIntentThreshold, DefaultIntentThreshold),
		IdentityThreshold:  getEnvFloat(EnvIdentityThreshold, DefaultIdentityThreshold),
		QAThreshold:        getEnvFloat(EnvQAThreshold, DefaultQAThreshold),
		SmallTalkThreshold: getEnvFloat(EnvSmallTalkThreshold, DefaultSmallTalkThreshold),
		DiscoveryThreshold: getEnvFloat(EnvDiscoveryThreshold, DefaultDiscoveryThreshold),
		RetrievalThreshold: getEnvFloat(EnvRetrievalThreshold, DefaultRetrievalThreshold),

		KafkaBrokers: getEnvList(EnvKafkaBrokers),
		KafkaTopic:   getEnvStr(EnvKafkaTopic, DefaultKafkaTopic),

		Client: client.NewClient(),
	}
}

func (cfg *Config) SetMongo() {
	cfg.Client.SetMongo(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
}

func (cfg *Config) UsesMongo() bool {
	return cfg.BookingStore == StoreMongo
}

func (cfg *Config) KafkaEnabled() bool {
	return len(cfg.KafkaBrokers) > 0
}

func (cfg *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	switch cfg.BookingStore {
	case StoreMongo, StoreMemory:
	default:
		errors = append(errors, fmt.Sprintf("BookingStore must be one of [%s, %s], got: %s", StoreMongo, StoreMemory, cfg.BookingStore))
	}

	if cfg.UsesMongo() {
		if cfg.MongoURI == "" {
			errors = append(errors, "MongoURI cannot be empty")
		} else if len(cfg.MongoURI) < 10 || !mongoURIRegex.MatchString(cfg.MongoURI) {
			errors = append(errors, fmt.Sprintf("MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %s", cfg.MongoURI))
		}
		if cfg.MongoDatabaseName == "" {
			errors = append(errors, "MongoDatabaseName cannot be empty")
		}
		if cfg.MongoConnTimeout <= 0 {
			errors = append(errors, fmt.Sprintf("MongoConnTimeout must be positive, got: %s", cfg.MongoConnTimeout))
		}
	}

	if cfg.RequestTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("RequestTimeout must be positive, got: %s", cfg.RequestTimeout))
	}
	if cfg.ReadTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ReadTimeout must be positive, got: %s", cfg.ReadTimeout))
	}
	if cfg.WriteTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("WriteTimeout must be positive, got: %s", cfg.WriteTimeout))
	}
	if cfg.IdleTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("IdleTimeout must be positive, got: %s", cfg.IdleTimeout))
	}
	if cfg.ShutdownTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ShutdownTimeout must be positive, got: %s", cfg.ShutdownTimeout))
	}

	if strings.TrimSpace(cfg.AgentName) == "" {
		errors = append(errors, "AgentName cannot be empty")
	}
	if cfg.MaxPartySize <= 0 {
		errors = append(errors, fmt.Sprintf("MaxPartySize must be positive, got: %d", cfg.MaxPartySize))
	}
	if cfg.BookingWindowDays < 0 {
		errors = append(errors, fmt.Sprintf("BookingWindowDays cannot be negative, got: %d", cfg.BookingWindowDays))
	}
	if !timeRegex.MatchString(cfg.OpeningTime) {
		errors = append(errors, fmt.Sprintf("OpeningTime must be in HH:MM format (00:00-23:59), got: %s", cfg.OpeningTime))
	}
	if !timeRegex.MatchString(cfg.ClosingTime) {
		errors = append(errors, fmt.Sprintf("ClosingTime must be in HH:MM format (00:00-23:59), got: %s", cfg.ClosingTime))
	}
	if timeRegex.MatchString(cfg.OpeningTime) && timeRegex.MatchString(cfg.ClosingTime) && cfg.ClosingTime < cfg.OpeningTime {
		errors = append(errors, fmt.Sprintf("ClosingTime (%s) must not be before OpeningTime (%s)", cfg.ClosingTime, cfg.OpeningTime))
	}

	thresholds := []struct {
		name  string
		value float64
	}{
		{"IntentThreshold", cfg.IntentThreshold},
		{"IdentityThreshold", cfg.IdentityThreshold},
		{"QAThreshold", cfg.QAThreshold},
		{"SmallTalkThreshold", cfg.SmallTalkThreshold},
		{"DiscoveryThreshold", cfg.DiscoveryThreshold},
		{"RetrievalThreshold", cfg.RetrievalThreshold},
	}
	for _, th := range thresholds {
		if th.value < 0 || th.value > 1 {
			errors = append(errors, fmt.Sprintf("%s must be between 0 and 1, got: %g", th.name, th.value))
		}
	}

	if cfg.KafkaEnabled() && cfg.KafkaTopic == "" {
		errors = append(errors, "KafkaTopic cannot be empty when Kafka brokers are configured")
	}

	if len(errors) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, err := range errors {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, err)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"booking_store", cfg.BookingStore,
		"mongo_uri", redactMongoURI(cfg.MongoURI),
		"mongo_database", cfg.MongoDatabaseName,
		"mongo_conn_timeout", cfg.MongoConnTimeout,
		"port", cfg.Port,
		"request_timeout", cfg.RequestTimeout,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
		"agent_name", cfg.AgentName,
		"max_party_size", cfg.MaxPartySize,
		"opening_time", cfg.OpeningTime,
		"closing_time", cfg.ClosingTime,
		"booking_window_days", cfg.BookingWindowDays,
		"intent_threshold", cfg.IntentThreshold,
		"retrieval_threshold", cfg.RetrievalThreshold,
		"kafka_brokers", cfg.KafkaBrokers,
		"kafka_topic", cfg.KafkaTopic,
	)
}

func (cfg *Config) GracefulShutdown() {
	cfg.Client.GracefulShutdown(cfg.Log, cfg.ShutdownTimeout)
}

func redactMongoURI(uri string) string {
	credentialRegex := regexp.MustCompile(`(mongodb(\+srv)?://)[^:]+:[^@]+@`)
	return credentialRegex.ReplaceAllString(uri, "${1}***:***@")
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvList(key string) []string {
	var out []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
