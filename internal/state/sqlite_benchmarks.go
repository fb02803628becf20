package state

import (
	"fmt"
	"time"

	"github.com/leapstack-labs/salesdq/pkg/core"
)

// RecordBenchmark stores a benchmark timing. ID and RecordedAt are filled
// in when empty.
func (s *SQLiteStore) RecordBenchmark(b *core.BenchmarkRecord) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	if b.ID == "" {
		b.ID = generateID()
	}
	if b.RecordedAt.IsZero() {
		b.RecordedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx(),
		`INSERT INTO benchmarks (id, run_id, segment, index_name, before_ms, after_ms, reduction_percent, outcome, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.RunID, b.Segment, b.IndexName, b.BeforeMS, b.AfterMS, b.ReductionPercent, b.Outcome, b.RecordedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record benchmark: %w", err)
	}
	return nil
}

// GetBenchmarks returns the benchmark timings recorded for a run.
func (s *SQLiteStore) GetBenchmarks(runID string) ([]*core.BenchmarkRecord, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	rows, err := s.db.QueryContext(ctx(),
		`SELECT id, run_id, segment, index_name, before_ms, after_ms, reduction_percent, outcome, recorded_at
		 FROM benchmarks WHERE run_id = ? ORDER BY recorded_at, rowid`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get benchmarks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*core.BenchmarkRecord
	for rows.Next() {
		var b core.BenchmarkRecord
		if err := rows.Scan(&b.ID, &b.RunID, &b.Segment, &b.IndexName,
			&b.BeforeMS, &b.AfterMS, &b.ReductionPercent, &b.Outcome, &b.RecordedAt); err != nil {
			return nil, fmt.Errorf("failed to scan benchmark: %w", err)
		}
		out = append(out, &b)
	}

	return out, rows.Err()
}
