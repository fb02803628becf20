package state

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/leapstack-labs/salesdq/pkg/core"
)

// RecordCheckResults stores the results of a check run in execution order.
func (s *SQLiteStore) RecordCheckResults(runID string, results []core.CheckResult) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	s.logger.Debug("recording check results", slog.String("run_id", runID), slog.Int("count", len(results)))

	tx, err := s.db.BeginTx(ctx(), nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx(),
		`INSERT INTO check_results (id, run_id, position, check_name, status, message, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare check insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	now := time.Now().UTC()
	for i, r := range results {
		if _, err := stmt.ExecContext(ctx(), generateID(), runID, i, r.CheckName, string(r.Status), r.Message, now); err != nil {
			return fmt.Errorf("failed to record check %q: %w", r.CheckName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit check results: %w", err)
	}
	return nil
}

// GetCheckResults returns the recorded results of a run in execution order.
func (s *SQLiteStore) GetCheckResults(runID string) ([]*core.RecordedCheck, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	rows, err := s.db.QueryContext(ctx(),
		`SELECT id, run_id, position, check_name, status, message, recorded_at
		 FROM check_results WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get check results: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*core.RecordedCheck
	for rows.Next() {
		var (
			rc     core.RecordedCheck
			status string
		)
		if err := rows.Scan(&rc.ID, &rc.RunID, &rc.Position, &rc.CheckName, &status, &rc.Message, &rc.RecordedAt); err != nil {
			return nil, fmt.Errorf("failed to scan check result: %w", err)
		}
		st, ok := core.ParseCheckStatus(status)
		if !ok {
			return nil, fmt.Errorf("invalid check status %q for %s", status, rc.CheckName)
		}
		rc.Status = st
		out = append(out, &rc)
	}

	return out, rows.Err()
}
