// Package output renders command results for terminals, pipes and scripts.
//
// A terminal gets styled text, anything else gets markdown unless JSON is
// requested explicitly.
package output

// OutputMode selects how results are rendered.
type OutputMode string //nolint:revive // output.OutputMode reads better at call sites than output.Mode

// Output modes.
const (
	ModeAuto     OutputMode = "auto"
	ModeText     OutputMode = "text"
	ModeMarkdown OutputMode = "markdown"
	ModeJSON     OutputMode = "json"
)

// Mode parses an output format name. Unknown names fall back to auto.
func Mode(format string) OutputMode {
	switch OutputMode(format) {
	case ModeText, ModeMarkdown, ModeJSON:
		return OutputMode(format)
	default:
		return ModeAuto
	}
}
