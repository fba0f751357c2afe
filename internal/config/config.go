package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP Server
	Port string

	// Sheet source
	SheetID      string
	SheetSource  string // "csv" (public export) or "api" (Sheets API)
	SheetRange   string
	GoogleAPIKey string

	// Extraction
	GeminiAPIKey string
	GeminiModel  string
	AnchorDate   time.Time
	TripDays     int
	Participants int

	// Session
	DebounceWindow  time.Duration
	WeatherCacheTTL time.Duration
}

const defaultAnchor = "2025-10-28"

func Load() *Config {
	cfg := &Config{
		Port: getEnv("PORT", "8081"),

		SheetID:      getEnv("SHEET_ID", ""),
		SheetSource:  getEnv("SHEET_SOURCE", "csv"),
		SheetRange:   getEnv("SHEET_RANGE", "A:Z"),
		GoogleAPIKey: getEnv("GOOGLE_API_KEY", ""),

		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		AnchorDate:   getEnvDate("ANCHOR_DATE", defaultAnchor),
		TripDays:     getEnvInt("TRIP_DAYS", 8),
		Participants: getEnvInt("PARTICIPANTS", 6),

		DebounceWindow:  getEnvDuration("DEBOUNCE_WINDOW", 500*time.Millisecond),
		WeatherCacheTTL: getEnvDuration("WEATHER_CACHE_TTL", 15*time.Minute),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.SheetID == "" {
		errors = append(errors, "SHEET_ID is required")
	}

	switch c.SheetSource {
	case "csv":
	case "api":
		if c.GoogleAPIKey == "" {
			errors = append(errors, "GOOGLE_API_KEY is required when using the 'api' sheet source")
		}
		if c.SheetRange == "" {
			errors = append(errors, "SHEET_RANGE cannot be empty when using the 'api' sheet source")
		}
	default:
		errors = append(errors, fmt.Sprintf("invalid sheet source '%s': must be 'csv' or 'api'", c.SheetSource))
	}

	if c.AnchorDate.IsZero() {
		errors = append(errors, "invalid ANCHOR_DATE: must be YYYY-MM-DD")
	}

	if c.TripDays < 1 || c.TripDays > 60 {
		errors = append(errors, fmt.Sprintf("invalid trip days %d: must be between 1 and 60", c.TripDays))
	}

	if c.Participants < 1 {
		errors = append(errors, fmt.Sprintf("invalid participants %d: must be at least 1", c.Participants))
	}

	if c.DebounceWindow < 0 || c.DebounceWindow > 10*time.Second {
		errors = append(errors, fmt.Sprintf("invalid debounce window %v: must be between 0 and 10s", c.DebounceWindow))
	}

	if c.WeatherCacheTTL < time.Minute {
		errors = append(errors, fmt.Sprintf("invalid weather cache TTL %v: must be at least 1 minute", c.WeatherCacheTTL))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvDate(key, defaultValue string) time.Time {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}
	}
	return t
}
