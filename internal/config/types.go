// Package config provides the configuration types shared by the CLI and
// the engine: the warehouse target and the on-disk project config.
package config

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/salesdq/internal/quality"
	"github.com/leapstack-labs/salesdq/pkg/adapter"
	"github.com/leapstack-labs/salesdq/pkg/core"
	"github.com/leapstack-labs/salesdq/pkg/dialect"
)

// TargetConfig holds warehouse target configuration.
type TargetConfig struct {
	Type string `koanf:"type" yaml:"type"` // sqlite, duckdb, postgres, mysql

	// File path for file-based databases, database name otherwise
	Database string `koanf:"database" yaml:"database"`

	// Network databases
	Host     string `koanf:"host" yaml:"host,omitempty"`
	Port     int    `koanf:"port" yaml:"port,omitempty"`
	User     string `koanf:"user" yaml:"user,omitempty"`
	Password string `koanf:"password" yaml:"password,omitempty"`

	Schema string `koanf:"schema" yaml:"schema,omitempty"`

	// Additional driver-specific options
	Options map[string]string `koanf:"options" yaml:"options,omitempty"`

	// Params holds adapter-specific configuration (sqlite pragmas, duckdb settings)
	Params map[string]any `koanf:"params" yaml:"params,omitempty"`
}

// DefaultSchemaForType returns the default schema for a database type.
// It looks up the dialect in the registry; if not found, returns "main" as fallback.
func DefaultSchemaForType(dbType string) string {
	if d, ok := dialect.Get(dbType); ok && d.DefaultSchema != "" {
		return d.DefaultSchema
	}
	return "main"
}

// Validate checks if the target configuration is valid.
// It uses the adapter registry to determine which adapter types are available.
func (t *TargetConfig) Validate() error {
	if t.Type == "" {
		return fmt.Errorf("target type is required")
	}

	if !adapter.IsRegistered(strings.ToLower(t.Type)) {
		return &adapter.UnknownAdapterError{
			Type:      t.Type,
			Available: adapter.ListAdapters(),
		}
	}

	switch strings.ToLower(t.Type) {
	case "postgres", "mysql":
		if t.Database == "" {
			return fmt.Errorf("target database is required for %s", t.Type)
		}
	}
	return nil
}

// AdapterConfig converts the target into the adapter connection config.
func (t *TargetConfig) AdapterConfig() *core.AdapterConfig {
	cfg := &core.AdapterConfig{
		Type:     strings.ToLower(t.Type),
		Database: t.Database,
		Schema:   t.Schema,
		Host:     t.Host,
		Port:     t.Port,
		Username: t.User,
		Password: t.Password,
		Options:  t.Options,
		Params:   t.Params,
	}
	switch cfg.Type {
	case "sqlite", "duckdb":
		cfg.Path = t.Database
	}
	return cfg
}

// BenchmarkConfig selects the benchmark segment and index.
type BenchmarkConfig struct {
	Segment   string `koanf:"segment" yaml:"segment"`
	IndexName string `koanf:"index_name" yaml:"index_name"`
}

// QualityConfig selects the checked table and optionally replaces the
// default check battery.
type QualityConfig struct {
	Table  string               `koanf:"table" yaml:"table"`
	Checks []quality.Descriptor `koanf:"checks" yaml:"checks,omitempty"`
}

// ProjectConfig is the layout of a generated salesdq.yaml.
type ProjectConfig struct {
	DataFile   string           `koanf:"data_file" yaml:"data_file"`
	ReportsDir string           `koanf:"reports_dir" yaml:"reports_dir"`
	Target     *TargetConfig    `koanf:"target" yaml:"target"`
	Benchmark  *BenchmarkConfig `koanf:"benchmark" yaml:"benchmark"`
	Quality    *QualityConfig   `koanf:"quality" yaml:"quality"`
}
