// Package engine drives the salesdq pipeline: it loads raw sales records
// into the warehouse, benchmarks the segment report and runs the data
// quality battery, recording every run in the state store.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/leapstack-labs/salesdq/internal/benchmark"
	"github.com/leapstack-labs/salesdq/internal/quality"
	"github.com/leapstack-labs/salesdq/internal/state"
	"github.com/leapstack-labs/salesdq/internal/warehouse"
	"github.com/leapstack-labs/salesdq/pkg/adapter"
	"github.com/leapstack-labs/salesdq/pkg/core"
	"github.com/leapstack-labs/salesdq/pkg/dialect"
)

// Engine orchestrates the load, benchmark and quality phases.
type Engine struct {
	// Database adapter (lazy initialized)
	db          adapter.Adapter
	dbConfig    adapter.Config
	dbConnected bool
	dbMu        sync.Mutex

	// SQL dialect for the configured adapter type
	dialect *dialect.Dialect

	logger *slog.Logger

	store       state.Store
	dataFile    string
	reportsDir  string
	environment string
	table       string
	bench       benchmark.Config
	checks      []quality.Descriptor
	diagnostics io.Writer
}

// Config holds engine configuration.
type Config struct {
	// DataFile is the raw sales CSV.
	DataFile string
	// ReportsDir receives data_quality_report.txt.
	ReportsDir string
	// StatePath is the path to the SQLite run history database.
	// Empty means in-memory.
	StatePath string
	// Environment labels recorded runs (dev, staging, prod).
	Environment string
	// AdapterConfig selects and configures the warehouse.
	AdapterConfig *adapter.Config
	// Table is the table the quality battery checks. Defaults to Sales.
	Table string
	// Benchmark configures the segment report benchmark.
	Benchmark benchmark.Config
	// Checks replaces the default quality battery when non-empty.
	Checks []quality.Descriptor
	// Diagnostics receives one line per executed check (optional).
	Diagnostics io.Writer
	// Logger is the structured logger (optional, uses discard if nil).
	Logger *slog.Logger
}

// New creates an engine with a lazy warehouse connection. The state store
// is opened immediately.
func New(cfg Config) (*Engine, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	var dbConfig adapter.Config
	if cfg.AdapterConfig != nil {
		dbConfig = *cfg.AdapterConfig
	}
	if dbConfig.Type == "" {
		dbConfig.Type = "sqlite"
	}

	env := cfg.Environment
	if env == "" {
		env = "dev"
	}
	table := cfg.Table
	if table == "" {
		table = warehouse.SalesTable
	}

	// Validate the battery before opening anything.
	if len(cfg.Checks) > 0 {
		if _, err := quality.BuildAll(table, cfg.Checks); err != nil {
			return nil, err
		}
	}

	logger.Debug("initializing engine",
		slog.String("adapter", dbConfig.Type),
		slog.String("environment", env))

	statePath := cfg.StatePath
	if statePath == "" {
		statePath = ":memory:"
	}
	store := state.NewSQLiteStore(logger)
	if err := store.Open(statePath); err != nil {
		return nil, fmt.Errorf("failed to open state store: %w", err)
	}
	if err := store.InitSchema(); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to initialize state schema: %w", err)
	}

	d, _ := dialect.Get(dbConfig.Type)

	return &Engine{
		dbConfig:    dbConfig,
		dialect:     d,
		logger:      logger,
		store:       store,
		dataFile:    cfg.DataFile,
		reportsDir:  cfg.ReportsDir,
		environment: env,
		table:       table,
		bench:       cfg.Benchmark,
		checks:      cfg.Checks,
		diagnostics: cfg.Diagnostics,
	}, nil
}

// ensureDBConnected lazily connects to the warehouse.
func (e *Engine) ensureDBConnected(ctx context.Context) error {
	e.dbMu.Lock()
	defer e.dbMu.Unlock()

	if e.dbConnected {
		return nil
	}

	e.logger.Debug("connecting to database", slog.String("adapter_type", e.dbConfig.Type))

	db, err := adapter.NewAdapter(e.dbConfig, e.logger)
	if err != nil {
		return fmt.Errorf("failed to create database adapter: %w", err)
	}

	if err := db.Connect(ctx, e.dbConfig); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	e.db = db
	e.dbConnected = true
	e.dialect = db.Dialect()

	e.logger.Debug("database connected", slog.String("dialect", e.dialect.GetName()))
	return nil
}

// disconnect closes the shared warehouse connection if one is open.
func (e *Engine) disconnect() error {
	e.dbMu.Lock()
	defer e.dbMu.Unlock()

	if !e.dbConnected {
		return nil
	}
	err := e.db.Close()
	e.db = nil
	e.dbConnected = false
	return err
}

// Close releases all resources.
func (e *Engine) Close() error {
	e.logger.Debug("closing engine")

	var errs []error
	if err := e.disconnect(); err != nil {
		errs = append(errs, err)
	}
	if e.store != nil {
		if err := e.store.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("errors closing engine: %w", err)
	}
	return nil
}

// startRun records the start of a run of the given kind.
func (e *Engine) startRun(kind core.RunKind) (*core.Run, error) {
	run, err := e.store.CreateRun(kind, e.environment)
	if err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}
	e.logger.Debug("created run", slog.String("run_id", run.ID), slog.String("kind", string(kind)))
	return run, nil
}

// finishRun marks run completed, or failed when runErr is set, and returns
// runErr unchanged.
func (e *Engine) finishRun(run *core.Run, runErr error) error {
	status, msg := core.RunStatusCompleted, ""
	if runErr != nil {
		status, msg = core.RunStatusFailed, runErr.Error()
	}
	if err := e.store.CompleteRun(run.ID, status, msg); err != nil {
		e.logger.Warn("failed to complete run", slog.String("run_id", run.ID), slog.Any("error", err))
	}
	if latest, err := e.store.GetRun(run.ID); err == nil {
		*run = *latest
	}
	return runErr
}

// --- Getters (public accessors) ---

// GetStateStore returns the state store.
func (e *Engine) GetStateStore() state.Store {
	return e.store
}

// GetDialect returns the SQL dialect for the configured adapter, or nil
// when no dialect is registered under its type.
func (e *Engine) GetDialect() *dialect.Dialect {
	return e.dialect
}

// AdapterConfig returns the warehouse configuration.
func (e *Engine) AdapterConfig() adapter.Config {
	return e.dbConfig
}

// Environment returns the environment runs are recorded under.
func (e *Engine) Environment() string {
	return e.environment
}
