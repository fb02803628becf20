// Package dialect provides the PostgreSQL SQL dialect definition.
// This package has no database driver dependencies.
package dialect

import (
	"github.com/leapstack-labs/salesdq/pkg/core"
	"github.com/leapstack-labs/salesdq/pkg/dialect"
)

func init() {
	dialect.Register(Postgres)
}

// Postgres is the PostgreSQL dialect configuration.
var Postgres = dialect.NewDialect("postgres").
	DefaultSchema("public").
	PlaceholderStyle(core.PlaceholderDollar).
	DataType(core.TypeInteger, "INTEGER").
	DataType(core.TypeFloat, "DOUBLE PRECISION").
	DataType(core.TypeText, "TEXT").
	IndexIfNotExists(true).
	Build()
