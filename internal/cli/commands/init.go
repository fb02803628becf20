package commands

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/leapstack-labs/salesdq/internal/cli/output"
	intconfig "github.com/leapstack-labs/salesdq/internal/config"
	"github.com/leapstack-labs/salesdq/internal/warehouse"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// exampleRows is the number of sales records written by init --example.
const exampleRows = 200

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool
	var example bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new salesdq project",
		Long: `Initialize a new salesdq project with a default configuration.

This creates:
  - salesdq.yaml configuration file (SQLite warehouse)
  - data/ directory for the raw sales CSV
  - reports/ directory for the data quality report

Use --example to also write a generated data/sales_records.csv so the
pipeline can run immediately.`,
		Example: `  # Initialize in current directory
  salesdq init

  # Initialize a new directory with sample data
  salesdq init my-project --example

  # Force overwrite existing config
  salesdq init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			cfg := getConfig()
			mode := output.Mode(cfg.OutputFormat)
			r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

			return runInit(r, dir, force, example)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")
	cmd.Flags().BoolVar(&example, "example", false, "Write a generated sales CSV to data/")

	return cmd
}

func runInit(r *output.Renderer, dir string, force, example bool) error {
	configPath := filepath.Join(dir, intconfig.ConfigFileName)
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("%s already exists. Use --force to overwrite", intconfig.ConfigFileName)
	}

	for _, sub := range []string{"data", intconfig.DefaultReportsDir} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0o750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", sub, err)
		}
	}

	pf := &intconfig.ProjectConfig{}
	pf.ApplyDefaults()
	data, err := yaml.Marshal(pf)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", configPath, err)
	}

	created := []string{intconfig.ConfigFileName, "data/", intconfig.DefaultReportsDir + "/"}
	if example {
		if err := writeExampleData(filepath.Join(dir, intconfig.DefaultDataFile), exampleRows); err != nil {
			return err
		}
		created = append(created, intconfig.DefaultDataFile)
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(map[string]any{"directory": dir, "created": created})
	case output.ModeMarkdown:
		r.Println(output.FormatHeader(1, "Project Initialized"))
		r.Println("")
		for _, f := range created {
			r.Println("- " + f)
		}
	default:
		r.Success("Initialized salesdq project in " + dir)
		for _, f := range created {
			r.StatusLine(f, "success", "")
		}
		if !example {
			r.Println("")
			r.Muted("Place the raw sales CSV at " + intconfig.DefaultDataFile + ", then run 'salesdq run'")
		}
	}
	return nil
}

var (
	exampleSegments   = []string{"Corporate", "Consumer", "Home Office"}
	exampleRegions    = []string{"West", "East", "Central", "South"}
	exampleCategories = []string{"Furniture", "Office Supplies", "Technology"}
)

// writeExampleData writes n deterministic sales records that pass the
// default quality battery.
func writeExampleData(path string, n int) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	f, err := os.Create(path) //nolint:gosec // path is inside the project being initialized
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	header := make([]string, len(warehouse.SalesColumns))
	for i, c := range warehouse.SalesColumns {
		header[i] = c.Name
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	for i := 0; i < n; i++ {
		qty := 1 + (i*7)%9
		price := 5.0 + float64((i*37)%500)/4
		discount := float64((i*3)%5) / 10
		total := float64(qty) * price * (1 - discount)
		record := []string{
			strconv.Itoa(1001 + i),
			fmt.Sprintf("2024-%02d-%02d", 1+i%12, 1+i%28),
			fmt.Sprintf("C%04d", 1+(i*13)%150),
			exampleSegments[i%len(exampleSegments)],
			exampleRegions[(i/3)%len(exampleRegions)],
			fmt.Sprintf("P%03d", 1+(i*11)%60),
			exampleCategories[(i/2)%len(exampleCategories)],
			strconv.Itoa(qty),
			strconv.FormatFloat(price, 'f', 2, 64),
			strconv.FormatFloat(discount, 'f', 1, 64),
			strconv.FormatFloat(total, 'f', 2, 64),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
