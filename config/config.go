// Package config provides configuration settings for the URL shortener service.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the configuration settings for the application.
type Config struct {
	ServerPort          int
	RequestTimeout      time.Duration
	ShutdownTimeout     time.Duration
	BaseURL             string
	DatabaseDSN         string
	ShortCodeLength     int
	MaxGenerateAttempts int
	StorageCapacity     int
	Debug               bool
}

// DefaultConfig returns the default configuration settings.
func DefaultConfig() *Config {
	return &Config{
		ServerPort:          8000,
		RequestTimeout:      5 * time.Second,
		ShutdownTimeout:     10 * time.Second,
		BaseURL:             "http://localhost:8000",
		DatabaseDSN:         "",
		ShortCodeLength:     6,
		MaxGenerateAttempts: 5,
		StorageCapacity:     1000000,
		Debug:               false,
	}
}

// FromEnv returns the default configuration with overrides applied from the
// environment. A .env file in the working directory is loaded first if
// present; a missing file is not an error.
func FromEnv() *Config {
	_ = godotenv.Load()

	cfg := DefaultConfig()
	applyEnvInt("SERVER_PORT", &cfg.ServerPort)
	applyEnvDuration("REQUEST_TIMEOUT", &cfg.RequestTimeout)
	applyEnvDuration("SHUTDOWN_TIMEOUT", &cfg.ShutdownTimeout)
	applyEnvString("BASE_URL", &cfg.BaseURL)
	applyEnvString("DATABASE_DSN", &cfg.DatabaseDSN)
	applyEnvInt("SHORT_CODE_LENGTH", &cfg.ShortCodeLength)
	applyEnvInt("MAX_GENERATE_ATTEMPTS", &cfg.MaxGenerateAttempts)
	applyEnvInt("STORAGE_CAPACITY", &cfg.StorageCapacity)
	applyEnvBool("DEBUG", &cfg.Debug)
	return cfg
}

func applyEnvString(key string, target *string) {
	if val, ok := os.LookupEnv(key); ok {
		*target = val
	}
}

func applyEnvInt(key string, target *int) {
	if val, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(val); err == nil {
			*target = n
		}
	}
}

func applyEnvDuration(key string, target *time.Duration) {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			*target = d
		}
	}
}

func applyEnvBool(key string, target *bool) {
	if val, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(val); err == nil {
			*target = b
		}
	}
}
