// Package config provides application configuration loading from environment.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"gitlab.com/yelinaung/ledger-manager/internal/models"
)

// Config holds all configuration for the application.
type Config struct {
	DatabaseURL       string
	LogLevel          string
	DefaultCategories []string
	ExportDir         string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		LogLevel:    os.Getenv("LOG_LEVEL"),
		ExportDir:   os.Getenv("EXPORT_DIR"),
	}

	if cfg.ExportDir == "" {
		cfg.ExportDir = "."
	}

	cfg.DefaultCategories = models.DefaultCategoryNames
	if raw := os.Getenv("DEFAULT_CATEGORIES"); raw != "" {
		var names []string
		for name := range strings.SplitSeq(raw, ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			names = append(names, name)
		}
		if len(names) > 0 {
			cfg.DefaultCategories = names
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks that all required configuration is present.
func (c *Config) validate() error {
	var errs []string

	if c.DatabaseURL == "" {
		errs = append(errs, "DATABASE_URL is required")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}
