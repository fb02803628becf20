package sqlite

import "github.com/leapstack-labs/salesdq/pkg/adapter"

// Params holds SQLite-specific configuration.
// Parsed from adapter.Config.Params using mapstructure.
type Params struct {
	// Pragmas applied after connecting (e.g., journal_mode: WAL)
	Pragmas map[string]string `mapstructure:"pragmas"`

	// BusyTimeoutMS sets PRAGMA busy_timeout; zero keeps the driver default
	BusyTimeoutMS int `mapstructure:"busy_timeout_ms"`
}

// ParseParams decodes Params from the adapter config.
func ParseParams(raw map[string]any) (*Params, error) {
	p := &Params{}
	if err := adapter.DecodeParams(raw, p); err != nil {
		return nil, err
	}
	return p, nil
}
