package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the complete application configuration
type Config struct {
	Server        ServerConfig
	Ingest        IngestConfig
	Dispatch      DispatchConfig
	Kafka         KafkaConfig
	Observability ObservabilityConfig
	Environment   string
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// IngestConfig holds event ingestion configuration.
// Token is the static bearer token; when empty, authentication is disabled.
type IngestConfig struct {
	Token         string
	PathPrefix    string
	MaxBodyBytes  int64
	StoreCapacity int
}

// DispatchConfig holds downstream dispatch configuration.
// Mode is "sync" (deliver before acknowledging) or "async" (queue and acknowledge).
type DispatchConfig struct {
	Mode      string
	QueueSize int
	Workers   int
}

// KafkaConfig holds Kafka sink configuration. Disabled by default.
type KafkaConfig struct {
	Enabled bool
	Brokers []string
	Topic   string
}

// ObservabilityConfig holds monitoring and logging configuration
type ObservabilityConfig struct {
	LogLevel       string
	LogFormat      string // json or console
	MetricsEnabled bool
}

// New creates a new Config instance by loading environment variables
func New(ctx context.Context) (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load(".env")

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getPort(),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Ingest: IngestConfig{
			Token:         getEnv("INGEST_TOKEN", ""),
			PathPrefix:    getEnv("INGEST_PATH_PREFIX", "/events"),
			MaxBodyBytes:  int64(getEnvAsInt("INGEST_MAX_BODY_BYTES", 1<<20)),
			StoreCapacity: getEnvAsInt("INGEST_STORE_CAPACITY", 1000),
		},
		Dispatch: DispatchConfig{
			Mode:      getEnv("DISPATCH_MODE", "sync"),
			QueueSize: getEnvAsInt("DISPATCH_QUEUE_SIZE", 256),
			Workers:   getEnvAsInt("DISPATCH_WORKERS", 4),
		},
		Kafka: KafkaConfig{
			Enabled: getEnvAsBool("KAFKA_ENABLED", false),
			Brokers: getEnvAsSlice("KAFKA_BROKERS", nil),
			Topic:   getEnv("KAFKA_TOPIC", "events.raw"),
		},
		Observability: ObservabilityConfig{
			LogLevel:       getEnv("LOG_LEVEL", "info"),
			LogFormat:      getEnv("LOG_FORMAT", "json"),
			MetricsEnabled: getEnvAsBool("METRICS_ENABLED", true),
		},
	}

	// Validate the configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks if all required configuration fields are set
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535, got %d", c.Server.Port)
	}

	if !strings.HasPrefix(c.Ingest.PathPrefix, "/") {
		return fmt.Errorf("ingest path prefix must start with /, got %q", c.Ingest.PathPrefix)
	}
	if c.Ingest.MaxBodyBytes <= 0 {
		return fmt.Errorf("ingest max body bytes must be positive")
	}
	if c.Ingest.StoreCapacity <= 0 {
		return fmt.Errorf("ingest store capacity must be positive")
	}

	switch c.Dispatch.Mode {
	case "sync", "async":
	default:
		return fmt.Errorf("dispatch mode must be sync or async, got %q", c.Dispatch.Mode)
	}
	if c.Dispatch.QueueSize <= 0 {
		return fmt.Errorf("dispatch queue size must be positive")
	}
	if c.Dispatch.Workers <= 0 {
		return fmt.Errorf("dispatch workers must be positive")
	}

	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka brokers are required when kafka is enabled")
	}

	if c.Observability.LogLevel == "" {
		return fmt.Errorf("log level is required")
	}

	return nil
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Environment == "production" || c.Environment == "prod"
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development" || c.Environment == "dev"
}

// AuthEnabled returns true when a static ingest token is configured
func (c *IngestConfig) AuthEnabled() bool {
	return c.Token != ""
}

// Address returns the HTTP server address
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Helper functions

// getPort returns the server port from PORT or SERVER_PORT env vars (default: 8000)
func getPort() int {
	if value := os.Getenv("PORT"); value != "" {
		if p, err := strconv.Atoi(value); err == nil {
			return p
		}
	}
	if value := os.Getenv("SERVER_PORT"); value != "" {
		if p, err := strconv.Atoi(value); err == nil {
			return p
		}
	}
	return 8000
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
