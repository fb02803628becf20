// Package adapter provides the database adapter contract used by the
// warehouse loader, the benchmark harness and the quality engine.
//
// Concrete adapter implementations are in pkg/adapters/ subdirectories and
// register themselves through Register in their init functions.
package adapter

import (
	"context"

	"github.com/leapstack-labs/salesdq/pkg/core"
	"github.com/leapstack-labs/salesdq/pkg/dialect"
)

// Type aliases for the core types adapters exchange.
type (
	// Config is an alias for core.AdapterConfig.
	Config = core.AdapterConfig

	// Column is an alias for core.Column.
	Column = core.Column

	// Metadata is an alias for core.TableMetadata.
	Metadata = core.TableMetadata

	// Rows is an alias for core.Rows.
	Rows = core.Rows
)

// Adapter defines the interface that all database adapters must implement.
type Adapter interface {
	// Connect establishes a connection to the database using the provided config.
	Connect(ctx context.Context, cfg Config) error

	// Close closes the database connection and releases resources.
	Close() error

	// Exec executes a SQL statement that doesn't return rows.
	Exec(ctx context.Context, sql string, args ...any) error

	// Query executes a SQL statement that returns rows.
	// The caller must close the returned rows.
	Query(ctx context.Context, sql string, args ...any) (*Rows, error)

	// GetTableMetadata retrieves column metadata for a table.
	GetTableMetadata(ctx context.Context, table string) (*Metadata, error)

	// LoadCSV appends the rows of a headed CSV file to an existing table
	// and returns the number of rows inserted.
	LoadCSV(ctx context.Context, tableName string, filePath string) (int64, error)

	// Dialect returns the SQL dialect configuration for this adapter.
	Dialect() *dialect.Dialect
}
