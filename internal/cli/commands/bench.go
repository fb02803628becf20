package commands

import (
	"fmt"

	"github.com/leapstack-labs/salesdq/internal/benchmark"
	"github.com/leapstack-labs/salesdq/internal/cli/output"
	"github.com/leapstack-labs/salesdq/internal/engine"
	"github.com/spf13/cobra"
)

// NewBenchCommand creates the bench command.
func NewBenchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Benchmark the segment sales report before and after indexing",
		Long: `Time the sales-by-category report for one customer segment.

The report first runs with a case-insensitive filter that cannot use an
index, then the segment index is created (if missing) and the report runs
again with a direct comparison. The reduction in query time is reported
and recorded in the run history.

The warehouse must already be loaded (see 'salesdq load').`,
		Example: `  # Benchmark the Corporate segment
  salesdq bench

  # Benchmark as JSON for CI/CD
  salesdq bench -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBench(cmd)
		},
	}

	return cmd
}

func runBench(cmd *cobra.Command) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	res, err := cmdCtx.Engine.Benchmark(cmd.Context())
	if err != nil {
		return fmt.Errorf("benchmark failed: %w", err)
	}

	r := cmdCtx.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(res)
	case output.ModeMarkdown:
		benchMarkdown(r, res)
	default:
		benchText(r, res)
	}
	return nil
}

func benchRows(rows []benchmark.ReportRow) [][]string {
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, []string{row.Category, fmt.Sprintf("%d", row.Orders), fmt.Sprintf("%.2f", row.Revenue)})
	}
	return out
}

var benchHeader = []string{"Category", "Orders", "Revenue"}

func benchText(r *output.Renderer, res *engine.BenchmarkResult) {
	r.Header(1, "Query Performance Optimization")
	r.Muted(fmt.Sprintf("Segment: %s", res.Segment))
	r.Println("")

	if len(res.Rows) == 0 {
		r.Muted("No results returned")
	} else {
		r.Table(benchHeader, benchRows(res.Rows))
	}
	r.Println("")

	if res.IndexCreated {
		r.Success(fmt.Sprintf("Index '%s' created", res.IndexName))
	} else {
		r.Muted(fmt.Sprintf("Index '%s' already exists", res.IndexName))
	}

	r.Println("")
	r.Header(2, "Performance Summary")
	benchSummaryText(r, res.Result)
}

func benchSummaryText(r *output.Renderer, res *benchmark.Result) {
	switch res.Comparison.Outcome {
	case benchmark.OutcomeImproved:
		r.Success(fmt.Sprintf("Query response time reduced by approximately %.2f%%", res.Comparison.ReductionPercent))
	case benchmark.OutcomeNotImproved:
		r.Warning("No significant query time improvement, or optimized query was slower")
	default:
		r.Warning("Could not reliably measure performance improvement (times were likely too small)")
	}
	r.Printf("  Original Time:  %.4f ms\n", res.BeforeMS)
	r.Printf("  Optimized Time: %.4f ms\n", res.AfterMS)
	if res.Comparison.Outcome == benchmark.OutcomeInconclusive {
		r.Muted("  Consider a larger data file for more pronounced differences")
	}
}

func benchMarkdown(r *output.Renderer, res *engine.BenchmarkResult) {
	r.Println(output.FormatHeader(1, "Query Performance Optimization"))
	r.Println("")
	r.Println(output.FormatKeyValue("Segment", res.Segment))
	r.Println(output.FormatKeyValue("Index", res.IndexName))
	r.Println(output.FormatKeyValue("Index Created", fmt.Sprintf("%t", res.IndexCreated)))
	r.Println("")

	if len(res.Rows) > 0 {
		r.Table(benchHeader, benchRows(res.Rows))
		r.Println("")
	}

	r.Println(output.FormatHeader(2, "Performance Summary"))
	r.Println("")
	r.Println(output.FormatKeyValue("Outcome", output.Title(string(res.Comparison.Outcome))))
	if res.Comparison.Outcome == benchmark.OutcomeImproved {
		r.Println(output.FormatKeyValue("Reduction", fmt.Sprintf("%.2f%%", res.Comparison.ReductionPercent)))
	}
	r.Println(output.FormatKeyValue("Original Time", fmt.Sprintf("%.4f ms", res.BeforeMS)))
	r.Println(output.FormatKeyValue("Optimized Time", fmt.Sprintf("%.4f ms", res.AfterMS)))
}
