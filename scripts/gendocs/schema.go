package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/salesdq/internal/cli/config"
	intconfig "github.com/leapstack-labs/salesdq/internal/config"
)

// generateSchemaDocs generates the salesdq.yaml reference.
func generateSchemaDocs(outDir string) error {
	log.Printf("Generating schema docs to %s", outDir)

	// Create output directory
	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	// Generate configuration reference
	if err := generateConfigurationDoc(outDir); err != nil {
		return fmt.Errorf("failed to generate configuration.md: %w", err)
	}
	log.Printf("  Generated configuration.md")

	return nil
}

// ConfigField represents a configuration field definition.
type ConfigField struct {
	Name        string
	Type        string
	Default     string
	Description string
	Category    string // "project", "target", "network", "benchmark", "quality"
}

// getConfigSchema returns the configuration schema definition.
// This is based on internal/cli/config.Config and internal/config.TargetConfig.
func getConfigSchema() []ConfigField {
	return []ConfigField{
		// Project settings
		{Name: "data_file", Type: "string", Default: config.DefaultDataFile, Description: "Raw sales CSV", Category: "project"},
		{Name: "reports_dir", Type: "string", Default: config.DefaultReportsDir, Description: "Directory receiving data_quality_report.txt", Category: "project"},
		{Name: "state_path", Type: "string", Default: config.DefaultStateFile, Description: "SQLite run history database", Category: "project"},
		{Name: "environment", Type: "string", Default: config.DefaultEnv, Description: "Environment recorded with each run", Category: "project"},
		{Name: "output", Type: "string", Default: config.DefaultOutput, Description: "Output format: auto, text, markdown or json", Category: "project"},

		// Target
		{Name: "type", Type: "string", Default: intconfig.DefaultTargetType, Description: "Warehouse type: sqlite, duckdb, postgres or mysql", Category: "target"},
		{Name: "database", Type: "string", Default: intconfig.DefaultDatabase, Description: "File path (sqlite, duckdb) or database name", Category: "target"},
		{Name: "schema", Type: "string", Description: "Schema holding the Sales table", Category: "target"},
		{Name: "options", Type: "map[string]string", Description: "Additional driver-specific options", Category: "target"},
		{Name: "params", Type: "map[string]any", Description: "Adapter-specific configuration (sqlite pragmas, duckdb settings)", Category: "target"},

		// Network databases
		{Name: "host", Type: "string", Default: "localhost", Description: "Database host", Category: "network"},
		{Name: "port", Type: "int", Default: "5432 / 3306", Description: "Database port", Category: "network"},
		{Name: "user", Type: "string", Description: "Database username", Category: "network"},
		{Name: "password", Type: "string", Description: "Database password", Category: "network"},

		// Benchmark
		{Name: "segment", Type: "string", Default: intconfig.DefaultSegment, Description: "Customer segment the report filters on", Category: "benchmark"},
		{Name: "index_name", Type: "string", Default: intconfig.DefaultIndexName, Description: "Index created on the segment column", Category: "benchmark"},

		// Quality
		{Name: "table", Type: "string", Default: intconfig.DefaultTable, Description: "Table the checks run against", Category: "quality"},
		{Name: "checks", Type: "list", Default: "built-in battery", Description: "Replaces the default battery (see Data Quality Checks)", Category: "quality"},
	}
}

func fieldRows(category string) [][]string {
	var rows [][]string
	for _, f := range getConfigSchema() {
		if f.Category != category {
			continue
		}
		defVal := "-"
		if f.Default != "" {
			defVal = InlineCode(f.Default)
		}
		rows = append(rows, []string{InlineCode(f.Name), f.Type, defVal, f.Description})
	}
	return rows
}

// generateConfigurationDoc generates the configuration reference page.
func generateConfigurationDoc(outDir string) error {
	w := NewMarkdownWriter()
	headers := []string{"Field", "Type", "Default", "Description"}

	// Frontmatter
	w.Frontmatter("Configuration", "salesdq configuration reference")
	w.GeneratedMarker()

	// Title and intro
	w.Header(1, "Configuration")
	w.Paragraph("salesdq is configured via " + InlineCode(intconfig.ConfigFileName) + " in your project root. " +
		"Values are layered: defaults, then the file, then " + InlineCode("SALESDQ_") + " environment variables, then command-line flags.")

	w.Header(2, "Project Settings")
	w.Paragraph("Relative paths are resolved against the directory holding the config file.")
	w.Table(headers, fieldRows("project"))

	w.Header(2, "Target Configuration")
	w.Paragraph("The warehouse is defined under the " + InlineCode("target") + " key.")
	w.Table(headers, fieldRows("target"))

	w.Header(3, "PostgreSQL and MySQL")
	w.Table(headers, fieldRows("network"))

	w.Header(4, "PostgreSQL Example")
	w.CodeBlock("yaml", `target:
  type: postgres
  host: localhost
  user: analytics
  password: ${POSTGRES_PASSWORD}
  database: warehouse
  schema: public`)

	w.Header(2, "Benchmark")
	w.Table(headers, fieldRows("benchmark"))

	w.Header(2, "Quality")
	w.Table(headers, fieldRows("quality"))

	w.Header(2, "Environments")
	w.Paragraph("Entries under " + InlineCode("environments") + " override " + InlineCode("data_file") +
		" and merge into " + InlineCode("target") + " when selected with " + InlineCode("--env") + " or " + InlineCode("--target") + ".")

	// Full example
	w.Header(2, "Full Configuration Example")
	w.CodeBlock("yaml", `# salesdq.yaml
data_file: data/sales_records.csv
reports_dir: reports

target:
  type: sqlite
  database: data/sales_warehouse.db

benchmark:
  segment: Corporate
  index_name: idx_customer_segment

quality:
  table: Sales

environments:
  prod:
    target:
      type: postgres
      host: prod-db.example.com
      user: salesdq
      password: ${PROD_DB_PASSWORD}
      database: analytics`)

	// Write file
	filename := filepath.Join(outDir, "configuration.md")
	return os.WriteFile(filename, w.Bytes(), 0600)
}
