// Package state records run history for salesdq in a SQLite database:
// every load, benchmark and check run, the check results it produced and
// the benchmark timings it measured.
//
// Core types are defined in pkg/core; this package re-exports the ones
// its callers use most.
package state

import (
	"github.com/leapstack-labs/salesdq/pkg/core"
)

type (
	// Store is an alias for core.Store.
	Store = core.Store

	// Run is an alias for core.Run.
	Run = core.Run

	// RunStatus is an alias for core.RunStatus.
	RunStatus = core.RunStatus

	// RunKind is an alias for core.RunKind.
	RunKind = core.RunKind
)

// Re-export status constants from core.
const (
	RunStatusRunning   = core.RunStatusRunning
	RunStatusCompleted = core.RunStatusCompleted
	RunStatusFailed    = core.RunStatusFailed
)

var _ Store = (*SQLiteStore)(nil)
