package engine

import (
	"fmt"

	"github.com/leapstack-labs/salesdq/internal/quality"
	"github.com/leapstack-labs/salesdq/pkg/core"
)

// RunSummary is a recorded run with what it measured.
type RunSummary struct {
	Run        *core.Run               `json:"run"`
	Checks     *quality.Summary        `json:"checks,omitempty"`
	Benchmarks []*core.BenchmarkRecord `json:"benchmarks,omitempty"`
}

// RunDetails is a recorded run with its individual check results.
type RunDetails struct {
	RunSummary
	Results []*core.RecordedCheck `json:"results,omitempty"`
}

// History returns the most recent runs, newest first.
func (e *Engine) History(limit int) ([]RunSummary, error) {
	runs, err := e.store.ListRuns(limit)
	if err != nil {
		return nil, err
	}

	out := make([]RunSummary, 0, len(runs))
	for _, run := range runs {
		d, err := e.details(run)
		if err != nil {
			return nil, err
		}
		out = append(out, d.RunSummary)
	}
	return out, nil
}

// RunDetails returns one recorded run with its check results.
func (e *Engine) RunDetails(id string) (*RunDetails, error) {
	run, err := e.store.GetRun(id)
	if err != nil {
		return nil, err
	}
	return e.details(run)
}

func (e *Engine) details(run *core.Run) (*RunDetails, error) {
	d := &RunDetails{RunSummary: RunSummary{Run: run}}

	checks, err := e.store.GetCheckResults(run.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load checks for run %s: %w", run.ID, err)
	}
	if len(checks) > 0 {
		results := make([]core.CheckResult, len(checks))
		for i, c := range checks {
			results[i] = c.CheckResult
		}
		s := quality.Summarize(results)
		d.Checks = &s
		d.Results = checks
	}

	d.Benchmarks, err = e.store.GetBenchmarks(run.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load benchmarks for run %s: %w", run.ID, err)
	}
	return d, nil
}
