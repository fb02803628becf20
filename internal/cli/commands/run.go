package commands

import (
	"fmt"
	"time"

	"github.com/leapstack-labs/salesdq/internal/benchmark"
	"github.com/leapstack-labs/salesdq/internal/cli/output"
	"github.com/leapstack-labs/salesdq/internal/engine"
	"github.com/leapstack-labs/salesdq/internal/quality"
	"github.com/spf13/cobra"
)

// RunOptions holds options for the run command.
type RunOptions struct {
	Strict bool
}

var phaseTitles = map[engine.Phase]string{
	engine.PhaseSetup:     "Phase 1: Database Setup",
	engine.PhaseBenchmark: "Phase 2: Query Performance Optimization",
	engine.PhaseQuality:   "Phase 3: Automated Data Quality Checks",
}

// NewRunCommand creates the run command.
func NewRunCommand() *cobra.Command {
	opts := &RunOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the whole pipeline: load, benchmark and quality checks",
		Long: `Execute the full pipeline in order:

  1. Rebuild the warehouse from the raw sales CSV
  2. Benchmark the segment report before and after indexing
  3. Run the data quality checks and write the report

The pipeline stops at the first phase that errors. Failed quality checks
are reported but only fail the command with --strict.`,
		Example: `  # Run everything against the default SQLite warehouse
  salesdq run

  # Run against staging and fail on any failed check
  salesdq run --target staging --strict

  # Run with JSON output for CI/CD integration
  salesdq run -o json`,
		Aliases: []string{"pipeline"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRun(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "Exit with an error when any quality check fails")

	return cmd
}

func runRun(cmd *cobra.Command, opts *RunOptions) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := cmdCtx.Cfg.ValidateDataFile(); err != nil {
		return err
	}

	r := cmdCtx.Renderer
	text := r.EffectiveMode() == output.ModeText

	var hook engine.PhaseHook
	if text {
		r.Header(1, "Starting Data Warehouse Optimization")
		hook = func(p engine.Phase) {
			r.Println("")
			r.Header(2, phaseTitles[p])
		}
	}

	res, err := cmdCtx.Engine.Run(cmd.Context(), hook)
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		if err := r.JSON(res); err != nil {
			return err
		}
	case output.ModeMarkdown:
		runMarkdown(r, res)
	default:
		runText(r, res)
	}

	if opts.Strict && res.Check.HasFailures() {
		return quality.ErrChecksFailed
	}
	return nil
}

func runText(r *output.Renderer, res *engine.PipelineResult) {
	// Phase headers were printed as the pipeline progressed; fill in the
	// outcome of each phase here.
	r.Println("")
	r.Header(2, "Summary")
	r.StatusLine("Load", "success", fmt.Sprintf("%d rows into %s", res.Load.Rows, res.Load.Table))
	r.StatusLine("Benchmark", benchStatus(res.Benchmark), output.Title(string(res.Benchmark.Comparison.Outcome)))

	s := res.Check.Report.Summary
	checkStatus := "success"
	if s.HasFailures() {
		checkStatus = "warning"
	}
	r.StatusLine("Quality", checkStatus,
		fmt.Sprintf("%d passed, %d failed, %d skipped", s.Passed, s.Failed, s.Skipped))
	r.Println("")
	benchSummaryText(r, res.Benchmark.Result)
	r.Println("")
	r.Muted("Data quality report generated at: " + res.Check.Report.Path)
	r.Println(s.Verdict())
	r.Println("")
	r.Success(fmt.Sprintf("Pipeline finished in %.2f seconds", res.Elapsed.Seconds()))
}

func benchStatus(b *engine.BenchmarkResult) string {
	if b.Comparison.Outcome == benchmark.OutcomeImproved {
		return "success"
	}
	return "warning"
}

func runMarkdown(r *output.Renderer, res *engine.PipelineResult) {
	r.Println(output.FormatHeader(1, "Pipeline Run"))
	r.Println("")
	r.Println(output.FormatKeyValue("Run", res.Run.ID))
	r.Println(output.FormatKeyValue("Status", string(res.Run.Status)))
	r.Println(output.FormatKeyValue("Elapsed", res.Elapsed.Round(time.Millisecond).String()))
	r.Println("")

	loadMarkdown(r, res.Load)
	r.Println("")
	benchMarkdown(r, res.Benchmark)
	r.Println("")
	checkMarkdown(r, res.Check)
}
