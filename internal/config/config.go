package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the tracker
type Config struct {
	Env      string
	LogLevel string

	// Ledger summary reporting
	PrintInterval time.Duration
	Verbose       bool
	QueueSize     int

	// Optional file with payments recorded before reading stdin
	InputFile string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	interval, err := getDuration("TRACKER_PRINT_INTERVAL", time.Minute)
	if err != nil {
		return nil, err
	}
	verbose, err := getBool("TRACKER_VERBOSE", true)
	if err != nil {
		return nil, err
	}
	queueSize, err := getInt("TRACKER_QUEUE_SIZE", 16)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Env:           getEnv("ENV", "development"),
		LogLevel:      strings.ToLower(getEnv("LOG_LEVEL", "info")),
		PrintInterval: interval,
		Verbose:       verbose,
		QueueSize:     queueSize,
		InputFile:     getEnv("TRACKER_INPUT_FILE", ""),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) validate() error {
	if c.PrintInterval <= 0 {
		return fmt.Errorf("TRACKER_PRINT_INTERVAL must be positive, got %s", c.PrintInterval)
	}
	if c.QueueSize <= 0 {
		return fmt.Errorf("TRACKER_QUEUE_SIZE must be positive, got %d", c.QueueSize)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func getInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
