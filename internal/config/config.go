package config

import (
	"os"
	"strconv"
	"strings"

	"screenline/domain/screening"
	"screenline/internal/errors"
)

// DefaultMemberCols is the fixed member-attribute column set. These columns
// describe the subject rather than an event and are excluded from the
// candidate event set.
var DefaultMemberCols = []string{
	"designer_id",
	"created_at",
	"canceled_at",
	"canceled_1_hour",
	"canceled_1_day",
	"canceled_1_week",
}

// DefaultOutcomeCol is the binary outcome tested against every event.
const DefaultOutcomeCol = "canceled_1_week"

// ScreenConfig carries the full configuration for a screening run. It is
// passed explicitly into the service; nothing reads process-wide state after
// Load returns.
type ScreenConfig struct {
	Alpha          float64                  // significance threshold
	ConfidenceTier screening.ConfidenceTier // drives the minimum-support filter
	MemberCols     []string                 // non-event columns
	OutcomeCol     string                   // binary outcome column
	Workers        int                      // per-event fan-out; 1 = sequential
}

// Paths holds the input/output locations for a run.
type Paths struct {
	InputFile  string
	OutputFile string
}

// DatabaseConfig holds the optional warehouse sink settings.
type DatabaseConfig struct {
	URL string
}

// Config represents the complete application configuration
type Config struct {
	Screen   ScreenConfig
	Paths    Paths
	Database DatabaseConfig
}

// Load reads configuration from environment variables and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		Screen: ScreenConfig{
			Alpha:          getEnvFloatOrDefault("SCREEN_ALPHA", 0.05),
			ConfidenceTier: screening.ConfidenceTier(getEnvOrDefault("SCREEN_CONFIDENCE", string(screening.TierHigh))),
			MemberCols:     getEnvListOrDefault("SCREEN_MEMBER_COLS", DefaultMemberCols),
			OutcomeCol:     getEnvOrDefault("SCREEN_OUTCOME_COL", DefaultOutcomeCol),
			Workers:        getEnvIntOrDefault("SCREEN_WORKERS", 1),
		},
		Paths: Paths{
			InputFile:  getEnvOrDefault("SCREEN_INPUT_FILE", ""),
			OutputFile: getEnvOrDefault("SCREEN_OUTPUT_FILE", ""),
		},
		Database: DatabaseConfig{
			URL: getEnvOrDefault("DATABASE_URL", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return cfg, nil
}

// Validate checks the screening invariants. An unrecognized confidence
// tier is NOT an error: it deliberately falls back to high-confidence
// behavior inside the threshold calculation.
//
// Called again after CLI flag overrides, so a flag can never smuggle in a
// value the environment path would have rejected.
func (c ScreenConfig) Validate() error {
	if c.Alpha <= 0 || c.Alpha >= 1 {
		return errors.ConfigInvalid("alpha must be in (0, 1)")
	}
	if c.OutcomeCol == "" {
		return errors.ConfigInvalid("outcome column is required")
	}
	if c.Workers < 1 {
		return errors.ConfigInvalid("workers must be >= 1")
	}
	return nil
}

// Validate checks the configuration invariants.
func (c *Config) Validate() error {
	return c.Screen.Validate()
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

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvListOrDefault(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return defaultValue
}
