package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/leapstack-labs/salesdq/pkg/core"
)

// PipelineResult collects the outcome of every phase of a full run.
type PipelineResult struct {
	Run       *core.Run        `json:"run"`
	Load      *LoadResult      `json:"load"`
	Benchmark *BenchmarkResult `json:"benchmark"`
	Check     *CheckResult     `json:"check"`
	Elapsed   time.Duration    `json:"elapsed_ns"`
}

// Phase names a pipeline step.
type Phase string

// Pipeline phases in execution order.
const (
	PhaseSetup     Phase = "setup"
	PhaseBenchmark Phase = "benchmark"
	PhaseQuality   Phase = "quality"
)

// PhaseHook is called before each pipeline phase starts.
type PhaseHook func(Phase)

// Run executes the whole pipeline: a fresh load, the query benchmark and
// the quality battery. Failed checks do not fail the run.
func (e *Engine) Run(ctx context.Context, hook PhaseHook) (*PipelineResult, error) {
	if hook == nil {
		hook = func(Phase) {}
	}
	e.logger.Info("starting pipeline", "environment", e.environment)

	start := time.Now()
	run, err := e.startRun(core.RunKindPipeline)
	if err != nil {
		return nil, err
	}
	res := &PipelineResult{Run: run}

	hook(PhaseSetup)
	if res.Load, err = e.Setup(ctx, true); err != nil {
		return res, e.finishRun(run, fmt.Errorf("setup: %w", err))
	}

	hook(PhaseBenchmark)
	if res.Benchmark, err = e.Benchmark(ctx); err != nil {
		return res, e.finishRun(run, fmt.Errorf("benchmark: %w", err))
	}

	hook(PhaseQuality)
	if res.Check, err = e.CheckQuality(ctx); err != nil {
		return res, e.finishRun(run, fmt.Errorf("quality checks: %w", err))
	}

	res.Elapsed = time.Since(start)
	_ = e.finishRun(run, nil)
	e.logger.Info("pipeline completed", "run_id", run.ID, "elapsed", res.Elapsed)
	return res, nil
}
