package config

import (
	"fmt"
	"os"

	intconfig "github.com/leapstack-labs/salesdq/internal/config"
	"github.com/leapstack-labs/salesdq/internal/quality"
)

// DefaultSchemaForType returns the default schema for a database type.
// This is a convenience wrapper that delegates to the shared config function.
func DefaultSchemaForType(dbType string) string {
	return intconfig.DefaultSchemaForType(dbType)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.DataFile == "" {
		return fmt.Errorf("data_file is required")
	}
	if c.ReportsDir == "" {
		return fmt.Errorf("reports_dir is required")
	}
	switch c.OutputFormat {
	case "", "auto", "text", "markdown", "json":
	default:
		return fmt.Errorf("unknown output format %q (want auto, text, markdown or json)", c.OutputFormat)
	}
	if c.Quality != nil && len(c.Quality.Checks) > 0 {
		if _, err := quality.BuildAll(c.Quality.Table, c.Quality.Checks); err != nil {
			return fmt.Errorf("invalid quality.checks: %w", err)
		}
	}
	return nil
}

// ValidateDataFile checks that the raw CSV exists.
func (c *Config) ValidateDataFile() error {
	if _, err := os.Stat(c.DataFile); os.IsNotExist(err) {
		return fmt.Errorf("data file does not exist: %s\nHint: Place the sales CSV there or use --data-file to specify a different path", c.DataFile)
	}
	return nil
}
