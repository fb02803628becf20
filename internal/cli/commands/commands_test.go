// Package commands_test provides tests for CLI command creation and execution.
package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/salesdq/internal/cli/config"
	clitestutil "github.com/leapstack-labs/salesdq/internal/cli/testutil"
	"github.com/leapstack-labs/salesdq/internal/quality"
	"github.com/leapstack-labs/salesdq/internal/testutil"
	_ "github.com/leapstack-labs/salesdq/pkg/adapters/sqlite"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandMetadata(t *testing.T) {
	tests := []struct {
		cmd   *cobra.Command
		use   string
		flags []string
	}{
		{NewRunCommand(), "run", []string{"strict"}},
		{NewLoadCommand(), "load", []string{"append"}},
		{NewBenchCommand(), "bench", nil},
		{NewCheckCommand(), "check", []string{"strict"}},
		{NewHistoryCommand(), "history [run-id]", []string{"limit"}},
		{NewInitCommand(), "init [directory]", []string{"force", "example"}},
	}

	for _, tt := range tests {
		t.Run(tt.use, func(t *testing.T) {
			assert.Equal(t, tt.use, tt.cmd.Use)
			assert.NotEmpty(t, tt.cmd.Short, "Short should not be empty")
			assert.NotEmpty(t, tt.cmd.Example, "Example should not be empty")
			for _, flag := range tt.flags {
				assert.NotNil(t, tt.cmd.Flags().Lookup(flag), "flag %q should exist", flag)
			}
		})
	}

	assert.Equal(t, []string{"pipeline"}, NewRunCommand().Aliases)
}

// salesCSV renders rows with the shared sales fixture writer.
func salesCSV(t *testing.T, rows []testutil.SalesRow) string {
	t.Helper()
	data, err := os.ReadFile(testutil.WriteSalesCSV(t, rows))
	require.NoError(t, err)
	return string(data)
}

// loadProject creates a project, loads its config as the current config and
// returns the config and the project directory.
func loadProject(t *testing.T, rows []testutil.SalesRow, format string) (*config.Config, string) {
	t.Helper()

	body := ""
	if rows != nil {
		body = salesCSV(t, rows)
	}
	cfgPath := clitestutil.SetupTestProject(t, body)

	config.ResetConfig()
	t.Cleanup(config.ResetConfig)

	cfg, err := config.LoadConfig(cfgPath, nil)
	require.NoError(t, err)
	cfg.OutputFormat = format
	return cfg, filepath.Dir(cfgPath)
}

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestLoadCommand(t *testing.T) {
	_, dir := loadProject(t, testutil.CleanSalesRows(9), "markdown")

	out, err := execute(t, NewLoadCommand())
	require.NoError(t, err)
	clitestutil.AssertNoANSI(t, out)
	clitestutil.AssertValidMarkdown(t, out)
	assert.Contains(t, out, "# Database Setup")
	assert.Contains(t, out, "**Rows:** 9")
	assert.Contains(t, out, "**Fresh:** true")
	assert.FileExists(t, filepath.Join(dir, "data", "sales_warehouse.db"))

	cfg := config.GetCurrentConfig()
	cfg.OutputFormat = "json"
	out, err = execute(t, NewLoadCommand(), "--append")
	require.NoError(t, err)

	var res struct {
		Rows  int64 `json:"rows"`
		Fresh bool  `json:"fresh"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, int64(9), res.Rows)
	assert.False(t, res.Fresh)
}

func TestLoadCommand_MissingDataFile(t *testing.T) {
	loadProject(t, nil, "markdown")

	_, err := execute(t, NewLoadCommand())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "data file does not exist")
}

func TestCheckCommand(t *testing.T) {
	rows := testutil.CleanSalesRows(9)
	rows[3].OrderID = "2"
	_, dir := loadProject(t, rows, "markdown")

	_, err := execute(t, NewLoadCommand())
	require.NoError(t, err)

	out, err := execute(t, NewCheckCommand())
	require.NoError(t, err, "failed checks do not fail the command without --strict")
	clitestutil.AssertValidMarkdown(t, out)
	assert.Contains(t, out, "| Uniqueness in Sales.OrderID | FAIL |")
	assert.Contains(t, out, "| NULLs in Sales.OrderID | PASS |")
	assert.Contains(t, out, "**Failed:** 1")
	assert.Contains(t, out, quality.VerdictFailed)
	assert.FileExists(t, filepath.Join(dir, "reports", "data_quality_report.txt"))

	_, err = execute(t, NewCheckCommand(), "--strict")
	assert.ErrorIs(t, err, quality.ErrChecksFailed)
}

func TestCheckCommand_JSON(t *testing.T) {
	loadProject(t, testutil.CleanSalesRows(6), "json")

	_, err := execute(t, NewLoadCommand())
	require.NoError(t, err)

	out, err := execute(t, NewCheckCommand(), "--strict")
	require.NoError(t, err)

	var res struct {
		Results []struct {
			CheckName string `json:"check_name"`
			Status    string `json:"status"`
		} `json:"results"`
		Report struct {
			Summary quality.Summary `json:"summary"`
		} `json:"report"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.Len(t, res.Results, 7)
	assert.Equal(t, "NULLs in Sales.OrderID", res.Results[0].CheckName)
	assert.Equal(t, quality.Summary{Total: 7, Passed: 7}, res.Report.Summary)
}

func TestCheckCommand_Unreachable(t *testing.T) {
	_, dir := loadProject(t, testutil.CleanSalesRows(3), "markdown")

	_, err := execute(t, NewCheckCommand())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "data source unreachable")
	assert.NoFileExists(t, filepath.Join(dir, "reports", "data_quality_report.txt"))
}

func TestBenchCommand(t *testing.T) {
	loadProject(t, testutil.CleanSalesRows(12), "markdown")

	_, err := execute(t, NewLoadCommand())
	require.NoError(t, err)

	out, err := execute(t, NewBenchCommand())
	require.NoError(t, err)
	clitestutil.AssertValidMarkdown(t, out)
	assert.Contains(t, out, "# Query Performance Optimization")
	assert.Contains(t, out, "**Segment:** Corporate")
	assert.Contains(t, out, "**Index Created:** true")
	assert.Contains(t, out, "| Furniture | 4 |")
	assert.Contains(t, out, "**Outcome:**")
}

func TestRunAndHistoryCommands(t *testing.T) {
	loadProject(t, testutil.CleanSalesRows(9), "markdown")

	out, err := execute(t, NewRunCommand(), "--strict")
	require.NoError(t, err)
	clitestutil.AssertValidMarkdown(t, out)
	assert.Contains(t, out, "# Pipeline Run")
	assert.Contains(t, out, "**Status:** completed")
	assert.Contains(t, out, "**Passed:** 7")

	out, err = execute(t, NewHistoryCommand())
	require.NoError(t, err)
	assert.Contains(t, out, "| pipeline |")
	assert.Contains(t, out, "| load |")
	assert.Contains(t, out, "| benchmark |")
	assert.Contains(t, out, "7 passed, 0 failed, 0 skipped")

	cfg := config.GetCurrentConfig()
	cfg.OutputFormat = "json"
	out, err = execute(t, NewHistoryCommand(), "--limit", "1")
	require.NoError(t, err)

	var runs []struct {
		Run struct {
			ID   string
			Kind string
		} `json:"run"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &runs))
	require.Len(t, runs, 1)
	assert.Equal(t, "check", runs[0].Run.Kind)

	cfg.OutputFormat = "markdown"
	out, err = execute(t, NewHistoryCommand(), runs[0].Run.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "# Run "+runs[0].Run.ID)
	assert.Contains(t, out, "| Value range in Sales.Discount | PASS |")
}

func TestHistoryCommand_UnknownRun(t *testing.T) {
	loadProject(t, nil, "markdown")

	_, err := execute(t, NewHistoryCommand(), "no-such-run")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run not found")
}

func TestHistoryCommand_Empty(t *testing.T) {
	loadProject(t, nil, "text")

	out, err := execute(t, NewHistoryCommand())
	require.NoError(t, err)
	assert.Contains(t, out, "No runs recorded yet")
}
