package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/benvon/healthz-api/internal/cors"
	"github.com/benvon/healthz-api/internal/validation"
	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DatabaseURL        string
	RedisURL           string
	ServerPort         string
	AppVersion         string
	CORSOrigin         string
	CORSMethods        string
	CORSAllowedHeaders string
	CORSCredentials    bool
	CORSMaxAge         int
	CORSReloadInterval time.Duration
	RateLimit          string
	EnableHSTS         bool
	ServerDebugMode    bool
	OTELEnabled        bool
	OTELEndpoint       string
	OTELInsecure       bool
}

// LoadDotEnv loads variables from path (or ./.env) into the environment without
// overriding values that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		RedisURL:           getEnv("REDIS_URL", ""),
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		AppVersion:         getEnv("APP_VERSION", ""),
		CORSOrigin:         getEnv("CORS_ORIGIN", "http://localhost:3000,http://localhost:3001"),
		CORSMethods:        getEnvAllowEmpty("CORS_METHODS", "GET, POST, PUT, DELETE, OPTIONS"),
		CORSAllowedHeaders: getEnvAllowEmpty("CORS_ALLOWED_HEADERS", "Content-Type, Authorization, X-Requested-With"),
		CORSCredentials:    getEnvBool("CORS_ALLOW_CREDENTIALS", true),
		CORSMaxAge:         getEnvInt("CORS_MAX_AGE", cors.DefaultMaxAge),
		CORSReloadInterval: time.Duration(getEnvInt("CORS_RELOAD_SECONDS", 60)) * time.Second,
		RateLimit:          getEnv("RATE_LIMIT", "5-S"),
		EnableHSTS:         getEnvBool("ENABLE_HSTS", false),
		ServerDebugMode:    getEnvBool("SERVER_DEBUG_MODE", false),
		OTELEnabled:        getEnvBool("OTEL_ENABLED", false),
		OTELEndpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		OTELInsecure:       getEnvBool("OTEL_EXPORTER_OTLP_INSECURE", true),
	}

	if _, err := strconv.Atoi(cfg.ServerPort); err != nil {
		return nil, fmt.Errorf("SERVER_PORT must be numeric, got %q", cfg.ServerPort)
	}

	if err := cfg.CORS().Validate(); err != nil {
		return nil, fmt.Errorf("CORS settings: %w", err)
	}

	return cfg, nil
}

// RequireDatabase returns an error when DATABASE_URL is unset
func (c *Config) RequireDatabase() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	return nil
}

// CORS builds the policy config described by the CORS_* variables
func (c *Config) CORS() cors.Config {
	return cors.Config{
		Origin:         cors.ParseOrigin(c.CORSOrigin),
		Methods:        validation.SplitList(c.CORSMethods),
		AllowedHeaders: validation.SplitList(c.CORSAllowedHeaders),
		Credentials:    c.CORSCredentials,
		MaxAge:         c.CORSMaxAge,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAllowEmpty falls back only when key is unset; a set but empty value stays empty
func getEnvAllowEmpty(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
