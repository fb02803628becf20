// Package config provides configuration management for the salesdq CLI.
//
// This package extends the shared configuration types from internal/config
// with CLI-specific fields. The shared types are re-exported here via type
// aliases for convenience.
package config

import (
	sharedcfg "github.com/leapstack-labs/salesdq/internal/config"
)

// TargetConfig is an alias for the shared target configuration.
type TargetConfig = sharedcfg.TargetConfig

// BenchmarkConfig is an alias for the shared benchmark configuration.
type BenchmarkConfig = sharedcfg.BenchmarkConfig

// QualityConfig is an alias for the shared quality configuration.
type QualityConfig = sharedcfg.QualityConfig

// Config holds all CLI configuration options.
type Config struct {
	DataFile     string               `koanf:"data_file"`
	ReportsDir   string               `koanf:"reports_dir"`
	StatePath    string               `koanf:"state_path"`
	Environment  string               `koanf:"environment"`
	Verbose      bool                 `koanf:"verbose"`
	OutputFormat string               `koanf:"output"`
	Target       *TargetConfig        `koanf:"target"`
	Benchmark    *BenchmarkConfig     `koanf:"benchmark"`
	Quality      *QualityConfig       `koanf:"quality"`
	Environments map[string]EnvConfig `koanf:"environments"`

	// ProjectRoot is the directory relative paths are resolved against.
	ProjectRoot string `koanf:"-"`
}

// EnvConfig holds environment-specific configuration overrides.
type EnvConfig struct {
	DataFile string        `koanf:"data_file"`
	Target   *TargetConfig `koanf:"target"`
}

// Default configuration values - uses shared defaults from internal/config
const (
	DefaultDataFile   = sharedcfg.DefaultDataFile
	DefaultReportsDir = sharedcfg.DefaultReportsDir
	DefaultStateFile  = ".salesdq/state.db"
	DefaultEnv        = "dev"
	DefaultOutput     = "auto" // Auto-detect: TTY=text, non-TTY=markdown
)
