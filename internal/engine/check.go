package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/leapstack-labs/salesdq/internal/quality"
	"github.com/leapstack-labs/salesdq/pkg/adapter"
	"github.com/leapstack-labs/salesdq/pkg/core"
)

// ErrSourceUnreachable is returned when the warehouse cannot be reached
// for a quality run. No checks run and no report is written.
var ErrSourceUnreachable = errors.New("data source unreachable")

// CheckResult is a quality run, its ordered results and the written report.
type CheckResult struct {
	Run     *core.Run             `json:"run"`
	Results []core.CheckResult    `json:"results"`
	Report  quality.ReportOutcome `json:"report"`
}

// HasFailures reports whether any check failed.
func (r *CheckResult) HasFailures() bool {
	return r.Report.HasFailures()
}

// CheckQuality runs the quality battery against the warehouse on its own
// connection, writes the report and records the results.
func (e *Engine) CheckQuality(ctx context.Context) (*CheckResult, error) {
	run, err := e.startRun(core.RunKindCheck)
	if err != nil {
		return nil, err
	}

	res, err := e.checkQuality(ctx)
	if err != nil {
		return nil, e.finishRun(run, err)
	}

	if err := e.store.RecordCheckResults(run.ID, res.Results); err != nil {
		e.logger.Warn("failed to record check results", slog.String("run_id", run.ID), slog.Any("error", err))
	}
	_ = e.finishRun(run, nil)
	res.Run = run
	return res, nil
}

func (e *Engine) checkQuality(ctx context.Context) (*CheckResult, error) {
	descs := e.checks
	if len(descs) == 0 {
		descs = quality.DefaultBattery(e.table)
	}
	rules, err := quality.BuildAll(e.table, descs)
	if err != nil {
		return nil, err
	}

	db, release, err := e.acquireSource(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnreachable, err)
	}
	defer func() {
		if err := release(); err != nil {
			e.logger.Warn("failed to release data source", slog.Any("error", err))
		}
	}()

	checker := quality.NewChecker(quality.NewSQLSource(db), e.diagnostics, e.logger)
	checker.RunAll(ctx, rules)
	results := checker.Results()

	outcome, err := quality.WriteReport(e.reportsDir, results)
	if err != nil {
		return nil, err
	}
	e.logger.Info("quality report written",
		slog.String("path", outcome.Path),
		slog.Int("failed", outcome.Summary.Failed))

	return &CheckResult{Results: results, Report: outcome}, nil
}

// acquireSource returns a connection for one quality run and the function
// releasing it. In-memory warehouses only exist on the shared connection,
// so that one is lent out instead.
func (e *Engine) acquireSource(ctx context.Context) (adapter.Adapter, func() error, error) {
	if e.inMemory() {
		if err := e.ensureDBConnected(ctx); err != nil {
			return nil, nil, err
		}
		return e.db, func() error { return nil }, nil
	}

	if e.dbConfig.IsFileBased() {
		if _, err := os.Stat(e.dbConfig.Path); err != nil {
			return nil, nil, fmt.Errorf("warehouse %s: %w", e.dbConfig.Path, err)
		}
	}

	db, err := adapter.NewAdapter(e.dbConfig, e.logger)
	if err != nil {
		return nil, nil, err
	}
	if err := db.Connect(ctx, e.dbConfig); err != nil {
		return nil, nil, err
	}
	return db, db.Close, nil
}

func (e *Engine) inMemory() bool {
	switch e.dbConfig.Type {
	case "sqlite", "duckdb":
		return !e.dbConfig.IsFileBased()
	default:
		return false
	}
}
