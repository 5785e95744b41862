package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration, loaded from the environment
type Config struct {
	// Server configuration
	Environment string
	ServerPort  string
	BaseURL     string // prefix for composed short URLs

	// Storage backend: "postgres" (durable) or "memory" (local runs)
	StorageBackend string

	// DB configuration (postgres backend)
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	// Shortening settings
	ShortCodeLength     int // length of generated short codes
	MaxGenerateAttempts int // insert retries before giving up on a free code
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:8080"),

		StorageBackend: getEnv("STORAGE_BACKEND", "postgres"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "urlshortener"),
		DBSSLMode:  getEnv("DB_SSL_MODE", "disable"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),
		CacheTTL:      time.Duration(getEnvAsInt("CACHE_TTL_SECONDS", 3600)) * time.Second,

		ShortCodeLength:     getEnvAsInt("SHORT_CODE_LENGTH", 7),
		MaxGenerateAttempts: getEnvAsInt("MAX_GENERATE_ATTEMPTS", 5),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks if all required configuration is present and valid
func (c *Config) Validate() error {
	if c.Environment == "production" && c.DBPassword == "" && c.StorageBackend == "postgres" {
		return fmt.Errorf("DB_PASSWORD is required in production")
	}

	if c.StorageBackend != "postgres" && c.StorageBackend != "memory" {
		return fmt.Errorf("STORAGE_BACKEND must be postgres or memory, got %q", c.StorageBackend)
	}

	if c.ShortCodeLength < 4 || c.ShortCodeLength > 12 {
		return fmt.Errorf("SHORT_CODE_LENGTH must be between 4 and 12, got %d", c.ShortCodeLength)
	}

	if c.MaxGenerateAttempts < 1 {
		return fmt.Errorf("MAX_GENERATE_ATTEMPTS must be at least 1, got %d", c.MaxGenerateAttempts)
	}

	if c.BaseURL == "" {
		return fmt.Errorf("BASE_URL is required")
	}

	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt reads an environment variable as integer or returns default
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
