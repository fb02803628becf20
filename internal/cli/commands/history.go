package commands

import (
	"fmt"
	"time"

	"github.com/leapstack-labs/salesdq/internal/cli/output"
	"github.com/leapstack-labs/salesdq/internal/engine"
	"github.com/spf13/cobra"
)

// HistoryOptions holds options for the history command.
type HistoryOptions struct {
	Limit int
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand() *cobra.Command {
	opts := &HistoryOptions{}

	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "Show recorded runs",
		Long: `List recent load, benchmark, check and pipeline runs from the state
database, newest first, with their check counts and benchmark outcome.

Pass a run ID to show the individual check results of that run.`,
		Example: `  # Show the last 20 runs
  salesdq history

  # Show one run in detail
  salesdq history 3f0c2a9e-...

  # Export history as JSON
  salesdq history --limit 100 -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return runHistoryDetails(cmd, args[0])
			}
			return runHistory(cmd, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 20, "Maximum number of runs to show")

	return cmd
}

func runHistory(cmd *cobra.Command, opts *HistoryOptions) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	runs, err := cmdCtx.Engine.History(opts.Limit)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	r := cmdCtx.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(runs)
	case output.ModeMarkdown:
		r.Println(output.FormatHeader(1, "Run History"))
		r.Println("")
	default:
		r.Header(1, "Run History")
	}

	if len(runs) == 0 {
		r.Println("No runs recorded yet")
		return nil
	}
	r.Table([]string{"Run", "Kind", "Env", "Status", "Started", "Outcome"}, historyRows(runs))
	return nil
}

func historyRows(runs []engine.RunSummary) [][]string {
	rows := make([][]string, 0, len(runs))
	for _, s := range runs {
		rows = append(rows, []string{
			s.Run.ID,
			string(s.Run.Kind),
			s.Run.Environment,
			string(s.Run.Status),
			s.Run.StartedAt.Local().Format(time.DateTime),
			runOutcome(s),
		})
	}
	return rows
}

func runOutcome(s engine.RunSummary) string {
	if s.Run.Error != "" {
		return s.Run.Error
	}
	var out string
	if s.Checks != nil {
		out = fmt.Sprintf("%d passed, %d failed, %d skipped", s.Checks.Passed, s.Checks.Failed, s.Checks.Skipped)
	}
	if len(s.Benchmarks) > 0 {
		b := s.Benchmarks[0]
		if out != "" {
			out += "; "
		}
		out += output.Title(b.Outcome)
		if b.ReductionPercent > 0 {
			out += fmt.Sprintf(" (%.2f%%)", b.ReductionPercent)
		}
	}
	return out
}

func runHistoryDetails(cmd *cobra.Command, id string) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	d, err := cmdCtx.Engine.RunDetails(id)
	if err != nil {
		return err
	}

	r := cmdCtx.Renderer
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(d)
	}

	title := fmt.Sprintf("Run %s", d.Run.ID)
	if r.EffectiveMode() == output.ModeMarkdown {
		r.Println(output.FormatHeader(1, title))
		r.Println("")
		r.Println(output.FormatKeyValue("Kind", string(d.Run.Kind)))
		r.Println(output.FormatKeyValue("Environment", d.Run.Environment))
		r.Println(output.FormatKeyValue("Status", string(d.Run.Status)))
		if d.Run.Error != "" {
			r.Println(output.FormatKeyValue("Error", d.Run.Error))
		}
		r.Println("")
	} else {
		r.Header(1, title)
		r.Muted(fmt.Sprintf("%s in %s, %s", d.Run.Kind, d.Run.Environment, d.Run.Status))
		if d.Run.Error != "" {
			r.Error(d.Run.Error)
		}
		r.Println("")
	}

	for _, b := range d.Benchmarks {
		r.Printf("Benchmark %s (%s): %.4f ms -> %.4f ms, %s\n",
			b.Segment, b.IndexName, b.BeforeMS, b.AfterMS, output.Title(b.Outcome))
	}

	if len(d.Results) > 0 {
		rows := make([][]string, 0, len(d.Results))
		for _, c := range d.Results {
			rows = append(rows, []string{c.CheckName, c.Status.String(), c.Message})
		}
		r.Table([]string{"Check", "Status", "Message"}, rows)
	}
	return nil
}
