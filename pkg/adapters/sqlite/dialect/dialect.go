// Package dialect provides the SQLite SQL dialect definition.
// This package has no database driver dependencies.
package dialect

import (
	"github.com/leapstack-labs/salesdq/pkg/core"
	"github.com/leapstack-labs/salesdq/pkg/dialect"
)

func init() {
	dialect.Register(SQLite)
}

// SQLite is the SQLite dialect configuration.
var SQLite = dialect.NewDialect("sqlite").
	DefaultSchema("main").
	PlaceholderStyle(core.PlaceholderQuestion).
	DataType(core.TypeInteger, "INTEGER").
	DataType(core.TypeFloat, "REAL").
	DataType(core.TypeText, "TEXT").
	IndexIfNotExists(true).
	Build()
