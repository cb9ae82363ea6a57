package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{
		"ENVIRONMENT", "LOG_LEVEL", "REDIS_URL", "TRANSCRIPT_TTL",
		"PUBNUB_PUBLISH_KEY", "PUBNUB_SUBSCRIBE_KEY", "PUBNUB_USER_ID", "EVENT_CHANNEL",
		"BREAKER_MAX_FAILURES", "BREAKER_TIMEOUT", "ENABLE_METRICS", "METRICS_TEXTFILE", "PDF_REPORT_PATH",
	} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.RedisURL)
	assert.Equal(t, 24*time.Hour, cfg.TranscriptTTL)
	assert.Equal(t, "voyage-booking", cfg.PubNubUserID)
	assert.Equal(t, "voyage-events", cfg.EventChannel)
	assert.Equal(t, 5, cfg.BreakerMaxFailures)
	assert.Equal(t, 30*time.Second, cfg.BreakerTimeout)
	assert.True(t, cfg.EnableMetrics)
	assert.Empty(t, cfg.MetricsTextfile)
	assert.Empty(t, cfg.PDFReportPath)
	assert.False(t, cfg.NotificationsEnabled())
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Setenv("REDIS_URL", "redis://localhost:6379/1")
	t.Setenv("TRANSCRIPT_TTL", "90m")
	t.Setenv("PUBNUB_PUBLISH_KEY", "pub-c-1")
	t.Setenv("PUBNUB_SUBSCRIBE_KEY", "sub-c-1")
	t.Setenv("BREAKER_MAX_FAILURES", "2")
	t.Setenv("BREAKER_TIMEOUT", "not-a-duration")
	t.Setenv("ENABLE_METRICS", "false")

	cfg := LoadConfig()

	assert.Equal(t, "redis://localhost:6379/1", cfg.RedisURL)
	assert.Equal(t, 90*time.Minute, cfg.TranscriptTTL)
	assert.True(t, cfg.NotificationsEnabled())
	assert.Equal(t, 2, cfg.BreakerMaxFailures)
	assert.Equal(t, 30*time.Second, cfg.BreakerTimeout)
	assert.False(t, cfg.EnableMetrics)
}

func TestConfig_SlogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
	}

	for level, want := range tests {
		cfg := &Config{LogLevel: level}
		assert.Equal(t, want, cfg.SlogLevel(), level)
	}
}
