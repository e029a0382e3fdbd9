package config

import (
	"errors"
	"fmt"
	"os"
	"time"
)

// Config struct holds application configuration
// This is a simple way to make config accessible globally.
type Config struct {
	Addr              string
	DatabaseURL       string
	JWTSecret         string
	InitToken         string
	GeminiAPIKey      string
	GeminiModel       string
	TelemetryInterval time.Duration
}

// AppConfig holds the application-wide configuration
var AppConfig Config

const (
	DefaultAddr        = ":3000"
	DefaultGeminiModel = "gemini-1.5-flash"
	DefaultInterval    = 1500 * time.Millisecond
)

// FromEnv reads the configuration from the process environment.
// JWT_SECRET is the only required variable.
func FromEnv() (Config, error) {
	cfg := Config{
		Addr:              getenv("ADDR", DefaultAddr),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		InitToken:         os.Getenv("INIT_TOKEN"),
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		GeminiModel:       getenv("GEMINI_MODEL", DefaultGeminiModel),
		TelemetryInterval: DefaultInterval,
	}

	if cfg.JWTSecret == "" {
		return cfg, errors.New("JWT_SECRET is not set")
	}

	if v := os.Getenv("TELEMETRY_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return cfg, fmt.Errorf("invalid TELEMETRY_INTERVAL %q", v)
		}
		cfg.TelemetryInterval = d
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
