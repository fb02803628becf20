package core

import "strings"

// CheckStatus is the outcome of a single data quality check.
type CheckStatus string

// Check status values.
const (
	StatusPass    CheckStatus = "PASS"
	StatusFail    CheckStatus = "FAIL"
	StatusSkipped CheckStatus = "SKIPPED"
)

// String returns the string representation of the status.
func (s CheckStatus) String() string {
	return string(s)
}

// ParseCheckStatus converts a string to a CheckStatus value.
// Returns the status and true if valid, or StatusFail and false if invalid.
func ParseCheckStatus(s string) (CheckStatus, bool) {
	switch strings.ToUpper(s) {
	case "PASS":
		return StatusPass, true
	case "FAIL":
		return StatusFail, true
	case "SKIPPED":
		return StatusSkipped, true
	default:
		return StatusFail, false
	}
}

// CheckResult records the outcome of one rule invocation.
// Results are created once and never mutated.
type CheckResult struct {
	CheckName string      `json:"check_name"`
	Status    CheckStatus `json:"status"`
	Message   string      `json:"message"`
}
