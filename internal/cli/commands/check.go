package commands

import (
	"fmt"

	"github.com/leapstack-labs/salesdq/internal/cli/output"
	"github.com/leapstack-labs/salesdq/internal/engine"
	"github.com/leapstack-labs/salesdq/internal/quality"
	"github.com/leapstack-labs/salesdq/pkg/core"
	"github.com/spf13/cobra"
)

// CheckOptions holds options for the check command.
type CheckOptions struct {
	Strict bool
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	opts := &CheckOptions{}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run the data quality checks and write the report",
		Long: `Run the data quality battery against the warehouse.

Every check runs, in order, and its outcome (PASS, FAIL or SKIPPED) is
written to data_quality_report.txt in the reports directory together with
summary counts. Results are also recorded in the run history.

Failed checks are reported but do not fail the command unless --strict is
given. A warehouse that cannot be reached is always an error and no report
is written.`,
		Example: `  # Run the default battery
  salesdq check

  # Fail CI when any check fails
  salesdq check --strict -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "Exit with an error when any check fails")

	return cmd
}

func runCheck(cmd *cobra.Command, opts *CheckOptions) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	r := cmdCtx.Renderer
	if r.EffectiveMode() == output.ModeText {
		r.Header(1, "Running Data Quality Checks")
	}

	res, err := cmdCtx.Engine.CheckQuality(cmd.Context())
	if err != nil {
		return fmt.Errorf("quality checks failed to run: %w", err)
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		if err := r.JSON(res); err != nil {
			return err
		}
	case output.ModeMarkdown:
		checkMarkdown(r, res)
	default:
		checkText(r, res)
	}

	if opts.Strict && res.HasFailures() {
		return quality.ErrChecksFailed
	}
	return nil
}

func statusKind(s core.CheckStatus) string {
	switch s {
	case core.StatusPass:
		return "success"
	case core.StatusSkipped:
		return "skipped"
	default:
		return "error"
	}
}

func checkText(r *output.Renderer, res *engine.CheckResult) {
	r.Println("")
	r.Header(2, "Results")
	for _, c := range res.Results {
		r.StatusLine(c.CheckName, statusKind(c.Status), c.Status.String())
	}
	r.Println("")

	s := res.Report.Summary
	r.Printf("Total: %d  Passed: %d  Failed: %d  Skipped: %d\n", s.Total, s.Passed, s.Failed, s.Skipped)
	r.Muted("Data quality report generated at: " + res.Report.Path)
	if s.HasFailures() {
		r.Warning(s.Verdict())
	} else {
		r.Success(s.Verdict())
	}
}

func checkMarkdown(r *output.Renderer, res *engine.CheckResult) {
	r.Println(output.FormatHeader(1, "Data Quality Checks"))
	r.Println("")

	rows := make([][]string, 0, len(res.Results))
	for _, c := range res.Results {
		rows = append(rows, []string{c.CheckName, c.Status.String(), c.Message})
	}
	r.Table([]string{"Check", "Status", "Message"}, rows)
	r.Println("")

	s := res.Report.Summary
	r.Println(output.FormatHeader(2, "Summary"))
	r.Println("")
	r.Println(output.FormatKeyValue("Total Checks", fmt.Sprintf("%d", s.Total)))
	r.Println(output.FormatKeyValue("Passed", fmt.Sprintf("%d", s.Passed)))
	r.Println(output.FormatKeyValue("Failed", fmt.Sprintf("%d", s.Failed)))
	r.Println(output.FormatKeyValue("Skipped", fmt.Sprintf("%d", s.Skipped)))
	r.Println(output.FormatKeyValue("Report", res.Report.Path))
	r.Println("")
	r.Println(s.Verdict())
}
