package config

import (
	"os"
	"strconv"

	"tablelens/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Data     DataConfig
	Engine   EngineConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port       string
	ReportPort string
	GinMode    string
}

// DatabaseConfig holds optional Postgres settings. When URL is empty the
// server runs on file/in-memory sources only.
type DatabaseConfig struct {
	URL    string
	Schema string
}

// DataConfig holds data loading settings
type DataConfig struct {
	File string // CSV or XLSX loaded at startup, optional
}

// EngineConfig holds analysis execution settings
type EngineConfig struct {
	MaxConcurrentAnalyses int64
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:       getEnvOrDefault("PORT", "8080"),
			ReportPort: getEnvOrDefault("REPORT_PORT", "8081"),
			GinMode:    getEnvOrDefault("GIN_MODE", "release"),
		},
		Database: DatabaseConfig{
			URL:    getEnvOrDefault("DATABASE_URL", ""),
			Schema: getEnvOrDefault("DB_SCHEMA", "public"),
		},
		Data: DataConfig{
			File: getEnvOrDefault("DATA_FILE", ""),
		},
		Engine: EngineConfig{
			MaxConcurrentAnalyses: int64(getEnvIntOrDefault("MAX_CONCURRENT_ANALYSES", 4)),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if config.Engine.MaxConcurrentAnalyses < 1 {
		return errors.ConfigInvalid("MAX_CONCURRENT_ANALYSES must be at least 1")
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

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
