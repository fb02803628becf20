package engine

import (
	"context"

	"github.com/leapstack-labs/salesdq/internal/benchmark"
	"github.com/leapstack-labs/salesdq/pkg/core"
)

// BenchmarkResult is a benchmark run and its measurements.
type BenchmarkResult struct {
	Run *core.Run `json:"run"`
	*benchmark.Result
}

// Benchmark times the segment report before and after the segment index
// is applied and records the measurement.
func (e *Engine) Benchmark(ctx context.Context) (*BenchmarkResult, error) {
	run, err := e.startRun(core.RunKindBenchmark)
	if err != nil {
		return nil, err
	}

	res, err := e.benchmark(ctx, run.ID)
	if err != nil {
		return nil, e.finishRun(run, err)
	}
	_ = e.finishRun(run, nil)
	return &BenchmarkResult{Run: run, Result: res}, nil
}

func (e *Engine) benchmark(ctx context.Context, runID string) (*benchmark.Result, error) {
	if err := e.ensureDBConnected(ctx); err != nil {
		return nil, err
	}

	res, err := benchmark.NewRunner(e.db, e.bench, e.logger).Run(ctx)
	if err != nil {
		return nil, err
	}

	rec := &core.BenchmarkRecord{
		RunID:            runID,
		Segment:          res.Segment,
		IndexName:        res.IndexName,
		BeforeMS:         res.BeforeMS,
		AfterMS:          res.AfterMS,
		ReductionPercent: res.Comparison.ReductionPercent,
		Outcome:          string(res.Comparison.Outcome),
	}
	if err := e.store.RecordBenchmark(rec); err != nil {
		e.logger.Warn("failed to record benchmark", "run_id", runID, "error", err)
	}
	return res, nil
}
