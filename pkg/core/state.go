package core

import "time"

// Store defines the interface for run history operations.
type Store interface {
	Open(path string) error
	Close() error
	InitSchema() error

	// Run operations
	CreateRun(kind RunKind, env string) (*Run, error)
	GetRun(id string) (*Run, error)
	CompleteRun(id string, status RunStatus, errMsg string) error
	GetLatestRun(env string) (*Run, error)
	ListRuns(limit int) ([]*Run, error)

	// Check result operations
	RecordCheckResults(runID string, results []CheckResult) error
	GetCheckResults(runID string) ([]*RecordedCheck, error)

	// Benchmark operations
	RecordBenchmark(b *BenchmarkRecord) error
	GetBenchmarks(runID string) ([]*BenchmarkRecord, error)
}

// RunKind identifies which pipeline phase a run executed.
type RunKind string

// Run kind constants.
const (
	RunKindLoad      RunKind = "load"
	RunKindBenchmark RunKind = "benchmark"
	RunKindCheck     RunKind = "check"
	RunKindPipeline  RunKind = "pipeline"
)

// RunStatus represents the status of a pipeline run.
type RunStatus string

// Run status constants.
const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// Run represents one recorded execution.
type Run struct {
	ID          string
	Kind        RunKind
	Environment string
	Status      RunStatus
	StartedAt   time.Time
	CompletedAt *time.Time
	Error       string
}

// RecordedCheck is a persisted check result.
type RecordedCheck struct {
	ID       string
	RunID    string
	Position int
	CheckResult
	RecordedAt time.Time
}

// BenchmarkRecord is a persisted before/after query timing.
type BenchmarkRecord struct {
	ID               string
	RunID            string
	Segment          string
	IndexName        string
	BeforeMS         float64
	AfterMS          float64
	ReductionPercent float64
	Outcome          string
	RecordedAt       time.Time
}
