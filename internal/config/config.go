package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config application configuration
type Config struct {
	// Database
	DatabasePath string `env:"DATABASE_PATH" envDefault:"./data/mailintake.db"`

	// Intake
	IntakeUser  string `env:"INTAKE_USER"`
	TaskDueDays int    `env:"TASK_DUE_DAYS" envDefault:"7"`

	// Quote extraction
	DefaultHourlyRate float64 `env:"DEFAULT_HOURLY_RATE" envDefault:"50"`
	QuoteNotesMax     int     `env:"QUOTE_NOTES_MAX" envDefault:"500"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"` // "json" or "text"
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.TaskDueDays <= 0 {
		return nil, fmt.Errorf("TASK_DUE_DAYS must be positive, got %d", cfg.TaskDueDays)
	}

	return cfg, nil
}
