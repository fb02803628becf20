package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/leapstack-labs/salesdq/internal/benchmark"
	"github.com/leapstack-labs/salesdq/internal/cli/config"
	"github.com/leapstack-labs/salesdq/internal/cli/output"
	intconfig "github.com/leapstack-labs/salesdq/internal/config"
	"github.com/leapstack-labs/salesdq/internal/engine"
	"github.com/leapstack-labs/salesdq/internal/quality"
	"github.com/leapstack-labs/salesdq/internal/warehouse"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Engine   *engine.Engine
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext with engine and renderer.
// Returns the context and a cleanup function that must be called (typically via defer).
func NewCommandContext(cmd *cobra.Command) (*CommandContext, func(), error) {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	// Per-check lines are only useful on a terminal.
	var diag io.Writer
	if r.EffectiveMode() == output.ModeText {
		diag = r.Writer()
	}

	eng, err := createEngine(cfg, logger, diag)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		_ = eng.Close()
	}

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Engine:   eng,
		Renderer: r,
	}, cleanup, nil
}

// NewCommandContextWithoutEngine creates a CommandContext without an engine.
// Useful for commands that don't need database access.
func NewCommandContextWithoutEngine(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// Helper functions shared across commands

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back to environment variables.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	// Fallback: read from environment with defaults
	return &config.Config{
		DataFile:     getEnvOrDefault("SALESDQ_DATA_FILE", config.DefaultDataFile),
		ReportsDir:   getEnvOrDefault("SALESDQ_REPORTS_DIR", config.DefaultReportsDir),
		StatePath:    getEnvOrDefault("SALESDQ_STATE_PATH", config.DefaultStateFile),
		Environment:  getEnvOrDefault("SALESDQ_ENVIRONMENT", config.DefaultEnv),
		Verbose:      os.Getenv("SALESDQ_VERBOSE") == "true",
		OutputFormat: os.Getenv("SALESDQ_OUTPUT"),
		Target: &config.TargetConfig{
			Type:     intconfig.DefaultTargetType,
			Database: getEnvOrDefault("SALESDQ_DATABASE", intconfig.DefaultDatabase),
		},
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func createEngine(cfg *config.Config, logger *slog.Logger, diag io.Writer) (*engine.Engine, error) {
	engineCfg := engine.Config{
		DataFile:    cfg.DataFile,
		ReportsDir:  cfg.ReportsDir,
		StatePath:   cfg.StatePath,
		Environment: cfg.Environment,
		Diagnostics: diag,
		Logger:      logger,
	}

	if cfg.Target != nil {
		engineCfg.AdapterConfig = cfg.Target.AdapterConfig()
	}

	table := warehouse.SalesTable
	var checks []quality.Descriptor
	if cfg.Quality != nil {
		if cfg.Quality.Table != "" {
			table = cfg.Quality.Table
		}
		checks = cfg.Quality.Checks
	}
	engineCfg.Table = table
	engineCfg.Checks = checks

	engineCfg.Benchmark = benchmark.Config{Table: warehouse.SalesTable}
	if cfg.Benchmark != nil {
		engineCfg.Benchmark.Segment = cfg.Benchmark.Segment
		engineCfg.Benchmark.IndexName = cfg.Benchmark.IndexName
	}

	return engine.New(engineCfg)
}
