package commands

import (
	"fmt"

	"github.com/leapstack-labs/salesdq/internal/cli/output"
	"github.com/leapstack-labs/salesdq/internal/engine"
	"github.com/spf13/cobra"
)

// LoadOptions holds options for the load command.
type LoadOptions struct {
	Append bool
}

// NewLoadCommand creates the load command.
func NewLoadCommand() *cobra.Command {
	opts := &LoadOptions{}

	cmd := &cobra.Command{
		Use:   "load",
		Short: "Load the raw sales CSV into the warehouse",
		Long: `Create the Sales table and load the raw sales records into it.

By default the warehouse is rebuilt: a file-based database is deleted and
recreated, any other target has its Sales table dropped. Use --append to
add the rows to the existing table instead.

Output adapts to environment:
  - Terminal: Styled, colored output
  - Piped/Scripted: Markdown format (agent-friendly)

Use --output to override: auto, text, markdown, json`,
		Example: `  # Rebuild the warehouse from data/sales_records.csv
  salesdq load

  # Append another extract
  salesdq load --data-file data/sales_2024_q2.csv --append

  # Load into DuckDB
  salesdq load --database data/sales.duckdb -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLoad(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Append, "append", false, "Append rows instead of rebuilding the warehouse")

	return cmd
}

func runLoad(cmd *cobra.Command, opts *LoadOptions) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := cmdCtx.Cfg.ValidateDataFile(); err != nil {
		return err
	}

	res, err := cmdCtx.Engine.Setup(cmd.Context(), !opts.Append)
	if err != nil {
		return fmt.Errorf("failed to load data: %w", err)
	}

	r := cmdCtx.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(res)
	case output.ModeMarkdown:
		loadMarkdown(r, res)
	default:
		loadText(r, res)
	}
	return nil
}

func loadText(r *output.Renderer, res *engine.LoadResult) {
	r.Header(1, "Database Setup")
	if res.Fresh {
		r.Muted("Warehouse rebuilt from scratch")
	}
	r.Success(fmt.Sprintf("Loaded %d rows from '%s' into '%s'", res.Rows, res.DataFile, res.Table))
}

func loadMarkdown(r *output.Renderer, res *engine.LoadResult) {
	r.Println(output.FormatHeader(1, "Database Setup"))
	r.Println("")
	r.Println(output.FormatKeyValue("Table", res.Table))
	r.Println(output.FormatKeyValue("Data File", res.DataFile))
	r.Println(output.FormatKeyValue("Rows", fmt.Sprintf("%d", res.Rows)))
	r.Println(output.FormatKeyValue("Fresh", fmt.Sprintf("%t", res.Fresh)))
}
