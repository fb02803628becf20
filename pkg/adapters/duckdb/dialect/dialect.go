// Package dialect provides the DuckDB SQL dialect definition.
// This package has no database driver dependencies.
package dialect

import (
	"github.com/leapstack-labs/salesdq/pkg/core"
	"github.com/leapstack-labs/salesdq/pkg/dialect"
)

func init() {
	dialect.Register(DuckDB)
}

// DuckDB is the DuckDB dialect configuration.
var DuckDB = dialect.NewDialect("duckdb").
	DefaultSchema("main").
	PlaceholderStyle(core.PlaceholderQuestion).
	DataType(core.TypeInteger, "INTEGER").
	DataType(core.TypeFloat, "DOUBLE").
	DataType(core.TypeText, "VARCHAR").
	IndexIfNotExists(true).
	Build()
