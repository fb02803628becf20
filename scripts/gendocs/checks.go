package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	intconfig "github.com/leapstack-labs/salesdq/internal/config"
	"github.com/leapstack-labs/salesdq/internal/quality"
)

// kindDescriptions explains each check kind.
var kindDescriptions = map[quality.Kind]string{
	quality.KindNull:   "Fails when the share of NULLs in the column exceeds " + InlineCode("threshold_percent") + ". An empty table passes.",
	quality.KindUnique: "Fails when any non-NULL value occurs more than once, listing up to five duplicated values.",
	quality.KindRange:  "Fails when any value lies outside the inclusive " + InlineCode("min") + "/" + InlineCode("max") + " bounds. Skipped when neither bound is set.",
}

// generateChecksDocs generates the data quality check reference.
func generateChecksDocs(outDir string) error {
	log.Printf("Generating checks docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	w := NewMarkdownWriter()

	w.Frontmatter("Data Quality Checks", "Checks run by salesdq check")
	w.GeneratedMarker()

	w.Header(1, "Data Quality Checks")
	w.Paragraph("Every check in the battery runs in order and produces one result: " +
		InlineCode("PASS") + ", " + InlineCode("FAIL") + " or " + InlineCode("SKIPPED") + ". " +
		"A check whose query errors is recorded as a FAIL and the battery continues.")

	w.Header(2, "Check Kinds")
	var rows [][]string
	for _, k := range []quality.Kind{quality.KindNull, quality.KindUnique, quality.KindRange} {
		rows = append(rows, []string{InlineCode(string(k)), kindDescriptions[k]})
	}
	w.Table([]string{"Kind", "Behavior"}, rows)

	w.Header(2, "Default Battery")
	rows = rows[:0]
	for _, d := range quality.DefaultBattery(intconfig.DefaultTable) {
		rows = append(rows, []string{InlineCode(string(d.Kind)), InlineCode(d.Column), describeParams(d)})
	}
	w.Table([]string{"Kind", "Column", "Parameters"}, rows)

	w.Header(2, "Custom Battery")
	w.Paragraph("Set " + InlineCode("quality.checks") + " in " + InlineCode("salesdq.yaml") + " to replace the default battery:")
	w.CodeBlock("yaml", `quality:
  table: Sales
  checks:
    - kind: null
      column: OrderID
    - kind: unique
      column: OrderID
    - kind: range
      column: Discount
      min: 0
      max: 1
    - kind: range
      column: Quantity
      min: 1
      integer_bounds: true`)

	w.Header(2, "Report")
	w.Paragraph("Results are written to " + InlineCode(quality.ReportFileName) + " in the reports directory, followed by summary counts.")

	return os.WriteFile(filepath.Join(outDir, "index.md"), w.Bytes(), 0600)
}

func describeParams(d quality.Descriptor) string {
	switch d.Kind {
	case quality.KindNull:
		return fmt.Sprintf("threshold %g%%", d.ThresholdPercent)
	case quality.KindRange:
		s := ""
		if d.Min != nil {
			s = fmt.Sprintf("min %g", *d.Min)
		}
		if d.Max != nil {
			if s != "" {
				s += ", "
			}
			s += fmt.Sprintf("max %g", *d.Max)
		}
		if s == "" {
			return "-"
		}
		if d.IntegerBounds {
			s += " (integer)"
		}
		return s
	}
	return "-"
}
