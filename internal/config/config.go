// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// JWTSecret signs and verifies owner identity tokens. Required.
	JWTSecret string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// ShareTTLDays is the share expiry horizon in days, applied when a
	// share is first created. Defaults to 30. Expiry is advisory — it is
	// checked at resolve time, not enforced by a background job.
	ShareTTLDays int

	// Upstream API keys. Each is optional: a missing key makes the
	// corresponding proxy endpoint fail with a 502, nothing more.
	GeminiAPIKey   string
	PlacesAPIKey   string
	UnsplashKey    string
	OpenWeatherKey string
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set.
func Load() (Config, error) {
	cfg := Config{
		Port:           getEnv("PORT", "8080"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		CORSOrigins:    splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
		PlacesAPIKey:   os.Getenv("GOOGLE_PLACES_API_KEY"),
		UnsplashKey:    os.Getenv("UNSPLASH_ACCESS_KEY"),
		OpenWeatherKey: os.Getenv("OPENWEATHER_API_KEY"),
	}

	ttl, err := strconv.Atoi(getEnv("SHARE_TTL_DAYS", "30"))
	if err != nil || ttl < 1 {
		return Config{}, fmt.Errorf("SHARE_TTL_DAYS must be a positive integer, got %q", os.Getenv("SHARE_TTL_DAYS"))
	}
	cfg.ShareTTLDays = ttl

	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
