// Package dialect provides the MySQL SQL dialect definition.
// This package has no database driver dependencies.
package dialect

import (
	"github.com/leapstack-labs/salesdq/pkg/core"
	"github.com/leapstack-labs/salesdq/pkg/dialect"
)

func init() {
	dialect.Register(MySQL)
}

// MySQL is the MySQL dialect configuration.
// Its default schema is the connected database, so DefaultSchema is empty.
var MySQL = dialect.NewDialect("mysql").
	Identifiers("`", "`", "``").
	PlaceholderStyle(core.PlaceholderQuestion).
	DataType(core.TypeInteger, "INT").
	DataType(core.TypeFloat, "DOUBLE").
	DataType(core.TypeText, "VARCHAR(255)").
	IndexIfNotExists(false).
	Build()
