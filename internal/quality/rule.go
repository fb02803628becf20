package quality

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/leapstack-labs/salesdq/pkg/core"
)

// maxDuplicateExamples bounds the example values listed in a uniqueness failure.
const maxDuplicateExamples = 5

// Rule is one validation over one table column.
// Check returns an error only when the source cannot answer a query.
type Rule interface {
	Name() string
	Check(ctx context.Context, src Source) (core.CheckResult, error)
}

// NullRule fails when the share of NULLs in a column exceeds a threshold.
type NullRule struct {
	Table            string
	Column           string
	ThresholdPercent float64
}

// Name implements Rule.
func (r NullRule) Name() string {
	return fmt.Sprintf("NULLs in %s.%s", r.Table, r.Column)
}

// Check implements Rule.
func (r NullRule) Check(ctx context.Context, src Source) (core.CheckResult, error) {
	prefix := fmt.Sprintf("DQ Check: NULLs in '%s'.", r.Column)

	total, err := src.CountRows(ctx, r.Table)
	if err != nil {
		return core.CheckResult{}, err
	}
	if total == 0 {
		return r.result(core.StatusPass,
			fmt.Sprintf("%s Table '%s' is empty. Check skipped.", prefix, r.Table)), nil
	}

	nulls, err := src.CountWhere(ctx, r.Table, IsNull(r.Column))
	if err != nil {
		return core.CheckResult{}, err
	}

	pct := 100 * float64(nulls) / float64(total)
	if pct > r.ThresholdPercent {
		return r.result(core.StatusFail, fmt.Sprintf("%s Found %d (%.2f%%) NULLs, exceeds threshold of %s%%.",
			prefix, nulls, pct, formatNumber(r.ThresholdPercent))), nil
	}
	return r.result(core.StatusPass, fmt.Sprintf("%s Found %d (%.2f%%) NULLs. Within threshold.",
		prefix, nulls, pct)), nil
}

func (r NullRule) result(status core.CheckStatus, msg string) core.CheckResult {
	return core.CheckResult{CheckName: r.Name(), Status: status, Message: msg}
}

// UniqueRule fails when any value of a column occurs more than once.
type UniqueRule struct {
	Table  string
	Column string
}

// Name implements Rule.
func (r UniqueRule) Name() string {
	return fmt.Sprintf("Uniqueness in %s.%s", r.Table, r.Column)
}

// Check implements Rule.
func (r UniqueRule) Check(ctx context.Context, src Source) (core.CheckResult, error) {
	prefix := fmt.Sprintf("DQ Check: Uniqueness of '%s' in '%s'.", r.Column, r.Table)

	groups, err := src.GroupedDuplicates(ctx, r.Table, r.Column)
	if err != nil {
		return core.CheckResult{}, err
	}
	if len(groups) == 0 {
		return core.CheckResult{
			CheckName: r.Name(),
			Status:    core.StatusPass,
			Message:   prefix + " All values are unique.",
		}, nil
	}

	n := min(len(groups), maxDuplicateExamples)
	examples := make([]string, n)
	for i := range n {
		examples[i] = formatValue(groups[i].Value)
	}
	return core.CheckResult{
		CheckName: r.Name(),
		Status:    core.StatusFail,
		Message: fmt.Sprintf("%s Found %d duplicate value(s). Examples: [%s]",
			prefix, len(groups), strings.Join(examples, ", ")),
	}, nil
}

// RangeRule fails when a column has values outside inclusive bounds.
// A nil bound is not checked; with both nil the rule is skipped.
// IntegerBounds renders the bounds without a fractional part.
type RangeRule struct {
	Table         string
	Column        string
	Min           *float64
	Max           *float64
	IntegerBounds bool
}

// Name implements Rule.
func (r RangeRule) Name() string {
	return fmt.Sprintf("Value range in %s.%s", r.Table, r.Column)
}

// Check implements Rule.
func (r RangeRule) Check(ctx context.Context, src Source) (core.CheckResult, error) {
	prefix := fmt.Sprintf("DQ Check: Value range for '%s' in '%s'.", r.Column, r.Table)

	var terms []Predicate
	if r.Min != nil {
		terms = append(terms, Less(r.Column, *r.Min))
	}
	if r.Max != nil {
		terms = append(terms, Greater(r.Column, *r.Max))
	}
	if len(terms) == 0 {
		return core.CheckResult{
			CheckName: r.Name(),
			Status:    core.StatusSkipped,
			Message:   prefix + " No min/max specified. Check skipped.",
		}, nil
	}

	violations, err := src.CountWhere(ctx, r.Table, Or(terms...))
	if err != nil {
		return core.CheckResult{}, err
	}

	bounds := fmt.Sprintf("(min: %s, max: %s)",
		formatBound(r.Min, r.IntegerBounds), formatBound(r.Max, r.IntegerBounds))
	if violations == 0 {
		return core.CheckResult{
			CheckName: r.Name(),
			Status:    core.StatusPass,
			Message:   fmt.Sprintf("%s All values within specified range %s.", prefix, bounds),
		}, nil
	}
	return core.CheckResult{
		CheckName: r.Name(),
		Status:    core.StatusFail,
		Message:   fmt.Sprintf("%s Found %d values out of range %s.", prefix, violations, bounds),
	}, nil
}

// Float returns a pointer to v, for building range bounds.
func Float(v float64) *float64 {
	return &v
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatFloat renders v the way the report has always printed float
// parameters: whole numbers keep a trailing ".0" and very small or very
// large magnitudes use exponent notation.
func formatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	if a := math.Abs(v); a != 0 && (a < 1e-4 || a >= 1e16) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func formatBound(v *float64, integer bool) string {
	if v == nil {
		return "None"
	}
	if integer {
		return formatNumber(*v)
	}
	return formatFloat(*v)
}

func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "None"
	case float64:
		return formatFloat(x)
	default:
		return fmt.Sprint(x)
	}
}
