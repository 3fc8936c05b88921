// Package config reads CLI defaults from environment variables. Flags
// always take precedence; the environment (optionally seeded from a
// .env file) fills in whatever the user did not pass.
package config

import (
	"os"
	"strings"

	"longeda/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Input    InputConfig
	Database DatabaseConfig
	Columns  ColumnConfig
	Logging  LoggingConfig
}

// InputConfig holds file input settings
type InputConfig struct {
	Path  string
	Sheet string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	DSN   string
	Query string
}

// ColumnConfig holds default column names for the analyzers
type ColumnConfig struct {
	SubjectKey string
	TimeKey    string
	NominalKey string
	ActualKey  string
}

// LoggingConfig holds log output settings
type LoggingConfig struct {
	Level string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Input: InputConfig{
			Path:  os.Getenv("LONGEDA_INPUT"),
			Sheet: os.Getenv("LONGEDA_SHEET"),
		},
		Database: DatabaseConfig{
			DSN:   getEnvOrDefault("LONGEDA_DSN", os.Getenv("DATABASE_URL")),
			Query: os.Getenv("LONGEDA_QUERY"),
		},
		Columns: ColumnConfig{
			SubjectKey: os.Getenv("LONGEDA_SUBJECT"),
			TimeKey:    os.Getenv("LONGEDA_TIME"),
			NominalKey: os.Getenv("LONGEDA_NOMINAL"),
			ActualKey:  os.Getenv("LONGEDA_ACTUAL"),
		},
		Logging: LoggingConfig{
			Level: strings.ToUpper(getEnvOrDefault("LOG_LEVEL", "INFO")),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Input.Path != "" && config.Database.DSN != "" {
		return errors.InvalidInput("LONGEDA_INPUT and LONGEDA_DSN are mutually exclusive")
	}
	if config.Database.DSN != "" && config.Database.Query == "" {
		return errors.InvalidInput("LONGEDA_DSN requires LONGEDA_QUERY")
	}
	switch config.Logging.Level {
	case "ERROR", "WARN", "INFO", "DEBUG":
	default:
		return errors.InvalidInput("LOG_LEVEL must be one of ERROR, WARN, INFO, DEBUG")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
