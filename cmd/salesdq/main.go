// Package main provides the CLI for the salesdq sales warehouse pipeline.
package main

import (
	"os"

	"github.com/leapstack-labs/salesdq/internal/cli"

	// Register warehouse adapters and their dialects.
	_ "github.com/leapstack-labs/salesdq/pkg/adapters/duckdb"
	_ "github.com/leapstack-labs/salesdq/pkg/adapters/mysql"
	_ "github.com/leapstack-labs/salesdq/pkg/adapters/postgres"
	_ "github.com/leapstack-labs/salesdq/pkg/adapters/sqlite"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
