// Package core defines the shared language of the salesdq system.
//
// This package contains:
//   - Domain entities (CheckResult, Run, BenchmarkRecord)
//   - Service interfaces (Store)
//   - Connection and dialect configuration (AdapterConfig, DialectConfig)
//
// pkg/core imports only the standard library.
// All other packages depend on core, not the reverse.
package core
