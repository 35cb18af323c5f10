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

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:3000"].
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// UseMockEstimator selects the mock route source instead of the real
	// directions API. Defaults to true so the server runs without any API
	// key; set USE_MOCK_ESTIMATOR=false to call the real service.
	UseMockEstimator bool

	// MapsAPIKey authenticates against the directions/geocoding API.
	// Required only when UseMockEstimator is false.
	MapsAPIKey string

	// DriverName, CarrierName, TruckNumber, and TrailerNumber identify the
	// driver and equipment stamped onto every generated daily log sheet.
	DriverName    string
	CarrierName   string
	TruckNumber   string
	TrailerNumber string

	// OdometerBase is the odometer reading assumed at the start of each
	// trip's first log day. Defaults to 100000.
	OdometerBase int
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set.
func Load() (Config, error) {
	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		CORSOrigins:   splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		DriverName:    getEnv("DRIVER_NAME", "John Doe"),
		CarrierName:   getEnv("CARRIER_NAME", "ABC Trucking Co."),
		TruckNumber:   getEnv("TRUCK_NUMBER", "TRK-001"),
		TrailerNumber: getEnv("TRAILER_NUMBER", "TRL-001"),
	}

	var err error
	cfg.UseMockEstimator, err = parseBool(getEnv("USE_MOCK_ESTIMATOR", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("USE_MOCK_ESTIMATOR: %w", err)
	}
	cfg.OdometerBase, err = strconv.Atoi(getEnv("ODOMETER_BASE", "100000"))
	if err != nil {
		return Config{}, fmt.Errorf("ODOMETER_BASE: %w", err)
	}

	cfg.MapsAPIKey = os.Getenv("MAPS_API_KEY")

	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if !cfg.UseMockEstimator && cfg.MapsAPIKey == "" {
		missing = append(missing, "MAPS_API_KEY")
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

// parseBool accepts the strconv.ParseBool forms (true/false/1/0/...).
func parseBool(s string) (bool, error) {
	v, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return false, fmt.Errorf("invalid boolean %q", s)
	}
	return v, nil
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
