package engine

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/leapstack-labs/salesdq/internal/warehouse"
	"github.com/leapstack-labs/salesdq/pkg/core"
)

// LoadResult describes a completed warehouse load.
type LoadResult struct {
	Run      *core.Run `json:"run"`
	Table    string    `json:"table"`
	DataFile string    `json:"data_file"`
	Rows     int64     `json:"rows"`
	Fresh    bool      `json:"fresh"`
}

// Setup loads the raw CSV into the Sales table. With fresh set, a
// file-based warehouse is deleted and any other warehouse has its Sales
// table dropped before loading; otherwise rows are appended.
func (e *Engine) Setup(ctx context.Context, fresh bool) (*LoadResult, error) {
	run, err := e.startRun(core.RunKindLoad)
	if err != nil {
		return nil, err
	}

	res, err := e.setup(ctx, fresh)
	if res != nil {
		res.Run = run
	}
	return res, e.finishRun(run, err)
}

func (e *Engine) setup(ctx context.Context, fresh bool) (*LoadResult, error) {
	// Check the input before touching an existing warehouse.
	if _, err := os.Stat(e.dataFile); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", warehouse.ErrDataFileMissing, e.dataFile)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", e.dataFile, err)
	}

	if fresh && e.dbConfig.IsFileBased() {
		if err := e.disconnect(); err != nil {
			return nil, fmt.Errorf("failed to close warehouse: %w", err)
		}
		if err := os.Remove(e.dbConfig.Path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to remove existing warehouse %s: %w", e.dbConfig.Path, err)
		}
		e.logger.Info("removed existing warehouse", slog.String("path", e.dbConfig.Path))
	}

	if err := e.ensureDBConnected(ctx); err != nil {
		return nil, err
	}

	loader := warehouse.NewLoader(e.db, e.logger)
	if err := loader.Prepare(ctx, fresh); err != nil {
		return nil, err
	}
	n, err := loader.Load(ctx, e.dataFile)
	if err != nil {
		return nil, err
	}

	return &LoadResult{Table: warehouse.SalesTable, DataFile: e.dataFile, Rows: n, Fresh: fresh}, nil
}
