package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Environment string
	LogLevel    string

	// Redis transcript mirror, disabled when RedisURL is empty
	RedisURL      string
	TranscriptTTL time.Duration

	// PubNub voyage events, disabled without keys
	PubNubPublishKey   string
	PubNubSubscribeKey string
	PubNubUserID       string
	EventChannel       string

	// Circuit breaker around remote sinks
	BreakerMaxFailures int
	BreakerTimeout     time.Duration

	// Monitoring
	EnableMetrics   bool
	MetricsTextfile string

	// Reports
	PDFReportPath string
}

func LoadConfig() *Config {
	return &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		// Redis
		RedisURL:      getEnv("REDIS_URL", ""),
		TranscriptTTL: getEnvAsDuration("TRANSCRIPT_TTL", "24h"),

		// PubNub
		PubNubPublishKey:   getEnv("PUBNUB_PUBLISH_KEY", ""),
		PubNubSubscribeKey: getEnv("PUBNUB_SUBSCRIBE_KEY", ""),
		PubNubUserID:       getEnv("PUBNUB_USER_ID", "voyage-booking"),
		EventChannel:       getEnv("EVENT_CHANNEL", "voyage-events"),

		// Circuit breaker
		BreakerMaxFailures: getEnvAsInt("BREAKER_MAX_FAILURES", 5),
		BreakerTimeout:     getEnvAsDuration("BREAKER_TIMEOUT", "30s"),

		// Monitoring
		EnableMetrics:   getEnvAsBool("ENABLE_METRICS", true),
		MetricsTextfile: getEnv("METRICS_TEXTFILE", ""),

		// Reports
		PDFReportPath: getEnv("PDF_REPORT_PATH", ""),
	}
}

// NotificationsEnabled reports whether both PubNub keys are configured.
func (c *Config) NotificationsEnabled() bool {
	return c.PubNubPublishKey != "" && c.PubNubSubscribeKey != ""
}

// SlogLevel maps LogLevel to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	// If parsing fails, try to parse default value
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
