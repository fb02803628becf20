package quality

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/salesdq/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleResults = []core.CheckResult{
	{CheckName: "NULLs in Sales.OrderID", Status: core.StatusPass, Message: "DQ Check: NULLs in 'OrderID'. Found 0 (0.00%) NULLs. Within threshold."},
	{CheckName: "Uniqueness in Sales.OrderID", Status: core.StatusFail, Message: "DQ Check: Uniqueness of 'OrderID' in 'Sales'. Found 1 duplicate value(s). Examples: [2]"},
	{CheckName: "Value range in Sales.Discount", Status: core.StatusSkipped, Message: "DQ Check: Value range for 'Discount' in 'Sales'. No min/max specified. Check skipped."},
}

const sampleReport = `Data Quality Check Report
==============================
Check: NULLs in Sales.OrderID
Status: PASS
Message: DQ Check: NULLs in 'OrderID'. Found 0 (0.00%) NULLs. Within threshold.
--------------------
Check: Uniqueness in Sales.OrderID
Status: FAIL
Message: DQ Check: Uniqueness of 'OrderID' in 'Sales'. Found 1 duplicate value(s). Examples: [2]
--------------------
Check: Value range in Sales.Discount
Status: SKIPPED
Message: DQ Check: Value range for 'Discount' in 'Sales'. No min/max specified. Check skipped.
--------------------

Summary:
Total Checks: 3
Passed: 1
Failed: 1
Skipped: 1
`

func TestRenderReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderReport(&buf, sampleResults))
	assert.Equal(t, sampleReport, buf.String())
}

func TestRenderReport_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderReport(&buf, nil))
	assert.Equal(t, "Data Quality Check Report\n==============================\n\nSummary:\nTotal Checks: 0\nPassed: 0\nFailed: 0\nSkipped: 0\n", buf.String())
}

func TestWriteReport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports", "nested")

	out, err := WriteReport(dir, sampleResults)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ReportFileName), out.Path)
	assert.Equal(t, Summary{Total: 3, Passed: 1, Failed: 1, Skipped: 1}, out.Summary)
	assert.True(t, out.HasFailures())

	data, err := os.ReadFile(out.Path)
	require.NoError(t, err)
	assert.Equal(t, sampleReport, string(data))

	// A second run overwrites rather than appends.
	out, err = WriteReport(dir, sampleResults[:1])
	require.NoError(t, err)
	assert.False(t, out.HasFailures())
	data, err = os.ReadFile(out.Path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Total Checks: 1\n")
	assert.NotContains(t, string(data), "Uniqueness")
}

func TestSummary(t *testing.T) {
	s := Summarize(sampleResults)
	assert.Equal(t, s.Total, s.Passed+s.Failed+s.Skipped)
	assert.Equal(t, VerdictFailed, s.Verdict())

	clean := Summarize([]core.CheckResult{{Status: core.StatusPass}, {Status: core.StatusSkipped}})
	assert.False(t, clean.HasFailures())
	assert.Equal(t, VerdictClean, clean.Verdict())
}
