// Package main provides tests for the salesdq CLI.
package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leapstack-labs/salesdq/internal/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// inTempProject switches into a fresh directory for the duration of the test.
func inTempProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	oldWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(oldWd) })
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestVersionCommand(t *testing.T) {
	inTempProject(t)

	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "salesdq v")
}

func TestHelpCommand(t *testing.T) {
	out, err := execute(t, "--help")
	require.NoError(t, err)

	for _, expected := range []string{"run", "load", "bench", "check", "history", "init"} {
		assert.Contains(t, out, expected)
	}
}

func TestInvalidOutputFormat(t *testing.T) {
	inTempProject(t)

	_, err := execute(t, "version", "--output", "yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestPipelineEndToEnd(t *testing.T) {
	dir := inTempProject(t)

	_, err := execute(t, "init", "--example", "-o", "json")
	require.NoError(t, err)
	require.FileExists(t, filepath.Join(dir, "salesdq.yaml"))
	require.FileExists(t, filepath.Join(dir, "data", "sales_records.csv"))

	out, err := execute(t, "run", "--strict", "-o", "json")
	require.NoError(t, err, out)

	var res struct {
		Load struct {
			Rows int64 `json:"rows"`
		} `json:"load"`
		Benchmark struct {
			Segment string `json:"segment"`
		} `json:"benchmark"`
		Check struct {
			Report struct {
				Path    string `json:"path"`
				Summary struct {
					Total  int `json:"total"`
					Passed int `json:"passed"`
				} `json:"summary"`
			} `json:"report"`
		} `json:"check"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, int64(200), res.Load.Rows)
	assert.Equal(t, "Corporate", res.Benchmark.Segment)
	assert.Equal(t, 7, res.Check.Report.Summary.Total)
	assert.Equal(t, 7, res.Check.Report.Summary.Passed)

	report, err := os.ReadFile(filepath.Join(dir, "reports", "data_quality_report.txt"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(report), "Data Quality Check Report\n"))
	assert.Contains(t, string(report), "Passed: 7\n")

	out, err = execute(t, "history", "-o", "markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "# Run History")
	assert.Contains(t, out, "| pipeline |")
	assert.Contains(t, out, "7 passed, 0 failed, 0 skipped")
}

func TestCheckWithoutWarehouse(t *testing.T) {
	dir := inTempProject(t)

	_, err := execute(t, "check", "-o", "json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "data source unreachable")
	assert.NoFileExists(t, filepath.Join(dir, "reports", "data_quality_report.txt"))
}

func TestRunMissingDataFile(t *testing.T) {
	inTempProject(t)

	_, err := execute(t, "run", "-o", "json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "data file does not exist")
}
