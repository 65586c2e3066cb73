package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultMaxLineBytes = 1 << 20 // observation lines are ~80 bytes; 1 MiB is a hard ceiling

// Config holds all tool settings, populated from environment variables.
// Input file paths come from the command line, not from here.
type Config struct {
	LogLevel  string
	LogFormat string

	// HTTPAddr enables the monitoring server (/healthz, /readyz, /metrics)
	// when non-empty. Useful for long-running input sets.
	HTTPAddr string

	// Kafka summary publishing, enabled when KafkaSummaryTopic is set.
	KafkaBrokers      []string
	KafkaSummaryTopic string
	PublishTimeout    time.Duration

	// MaxLineBytes caps the scanner buffer for a single input line.
	MaxLineBytes int
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	publishTimeout, err := parseDuration("PUBLISH_TIMEOUT", "30s")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		LogLevel:          envOrDefault("LOG_LEVEL", "info"),
		LogFormat:         envOrDefault("LOG_FORMAT", "text"),
		HTTPAddr:          os.Getenv("HTTP_ADDR"),
		KafkaBrokers:      parseBrokers(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSummaryTopic: os.Getenv("KAFKA_SUMMARY_TOPIC"),
		PublishTimeout:    publishTimeout,
		MaxLineBytes:      parseMaxLineBytes(),
	}

	switch cfg.LogFormat {
	case "text", "json":
	default:
		return nil, fmt.Errorf("invalid LOG_FORMAT %q: want text or json", cfg.LogFormat)
	}

	if cfg.KafkaSummaryTopic != "" && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_SUMMARY_TOPIC is set but KAFKA_BROKERS is empty")
	}

	return cfg, nil
}

// PublishEnabled reports whether the run should publish summaries to Kafka.
func (c *Config) PublishEnabled() bool { return c.KafkaSummaryTopic != "" }

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseBrokers(s string) []string {
	var brokers []string
	for _, b := range strings.Split(s, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func parseDuration(key, def string) (time.Duration, error) {
	raw := envOrDefault(key, def)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s %q", key, raw)
	}
	return d, nil
}

func parseMaxLineBytes() int {
	if s := os.Getenv("MAX_LINE_BYTES"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return defaultMaxLineBytes
}
