package quality

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/salesdq/pkg/core"
)

// ReportFileName is the name of the report written into the reports directory.
const ReportFileName = "data_quality_report.txt"

// Console verdicts printed after a report is written.
const (
	VerdictFailed = "WARNING: Some data quality checks failed!"
	VerdictClean  = "All data quality checks passed or were skipped."
)

// ErrChecksFailed marks a run whose report contains at least one FAIL.
var ErrChecksFailed = errors.New("data quality checks failed")

// Summary holds status counts for a run.
// Total always equals Passed + Failed + Skipped.
type Summary struct {
	Total   int `json:"total"`
	Passed  int `json:"passed"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
}

// Summarize counts results by status.
func Summarize(results []core.CheckResult) Summary {
	var s Summary
	for _, r := range results {
		s.Total++
		switch r.Status {
		case core.StatusPass:
			s.Passed++
		case core.StatusSkipped:
			s.Skipped++
		default:
			s.Failed++
		}
	}
	return s
}

// HasFailures reports whether any check failed.
func (s Summary) HasFailures() bool {
	return s.Failed > 0
}

// Verdict returns the one-line console classification of the run.
func (s Summary) Verdict() string {
	if s.HasFailures() {
		return VerdictFailed
	}
	return VerdictClean
}

// ReportOutcome describes a persisted report.
type ReportOutcome struct {
	Path    string  `json:"path"`
	Summary Summary `json:"summary"`
}

// HasFailures reports whether the reported run had any FAIL.
func (o ReportOutcome) HasFailures() bool {
	return o.Summary.HasFailures()
}

// RenderReport writes the plain-text report for results to w.
func RenderReport(w io.Writer, results []core.CheckResult) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "Data Quality Check Report")
	fmt.Fprintln(bw, strings.Repeat("=", 30))
	for _, r := range results {
		fmt.Fprintf(bw, "Check: %s\n", r.CheckName)
		fmt.Fprintf(bw, "Status: %s\n", r.Status)
		fmt.Fprintf(bw, "Message: %s\n", r.Message)
		fmt.Fprintln(bw, strings.Repeat("-", 20))
	}

	s := Summarize(results)
	fmt.Fprintln(bw, "\nSummary:")
	fmt.Fprintf(bw, "Total Checks: %d\n", s.Total)
	fmt.Fprintf(bw, "Passed: %d\n", s.Passed)
	fmt.Fprintf(bw, "Failed: %d\n", s.Failed)
	fmt.Fprintf(bw, "Skipped: %d\n", s.Skipped)

	return bw.Flush()
}

// WriteReport renders results into dir/data_quality_report.txt,
// replacing any previous report.
func WriteReport(dir string, results []core.CheckResult) (ReportOutcome, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return ReportOutcome{}, fmt.Errorf("failed to create reports directory: %w", err)
	}

	path := filepath.Join(dir, ReportFileName)
	f, err := os.Create(path) //nolint:gosec // path is built from the configured reports directory
	if err != nil {
		return ReportOutcome{}, fmt.Errorf("failed to create report: %w", err)
	}

	if err := RenderReport(f, results); err != nil {
		_ = f.Close()
		return ReportOutcome{}, fmt.Errorf("failed to write report: %w", err)
	}
	if err := f.Close(); err != nil {
		return ReportOutcome{}, fmt.Errorf("failed to close report: %w", err)
	}

	return ReportOutcome{Path: path, Summary: Summarize(results)}, nil
}
