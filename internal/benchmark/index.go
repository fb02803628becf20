package benchmark

import (
	"context"
	"fmt"
	"log/slog"
)

// indexLookups count indexes by table and name, keyed by dialect.
var indexLookups = map[string]string{
	"sqlite":   `SELECT COUNT(*) FROM pragma_index_list(?) WHERE name = ?`,
	"duckdb":   `SELECT COUNT(*) FROM duckdb_indexes() WHERE table_name = ? AND index_name = ?`,
	"postgres": `SELECT COUNT(*) FROM pg_indexes WHERE tablename = $1 AND indexname = $2`,
	"mysql":    `SELECT COUNT(*) FROM information_schema.statistics WHERE table_schema = DATABASE() AND table_name = ? AND index_name = ?`,
}

// IndexExists reports whether the benchmark index is already present.
// ok is false when the dialect has no lookup.
func (r *Runner) IndexExists(ctx context.Context) (exists, ok bool, err error) {
	query, ok := indexLookups[r.db.Dialect().GetName()]
	if !ok {
		return false, false, nil
	}

	rows, err := r.db.Query(ctx, query, r.cfg.Table, r.cfg.IndexName)
	if err != nil {
		return false, true, fmt.Errorf("failed to look up index %s: %w", r.cfg.IndexName, err)
	}
	defer func() { _ = rows.Close() }()

	var n int64
	if rows.Next() {
		if err := rows.Scan(&n); err != nil {
			return false, true, fmt.Errorf("failed to scan index lookup: %w", err)
		}
	}
	return n > 0, true, rows.Err()
}

// CreateIndexSQL returns the statement creating the benchmark index.
func (r *Runner) CreateIndexSQL() string {
	d := r.db.Dialect()
	ifNotExists := ""
	if d.IndexIfNotExists {
		ifNotExists = "IF NOT EXISTS "
	}
	return fmt.Sprintf("CREATE INDEX %s%s ON %s (%s)",
		ifNotExists, d.QuoteIdentifier(r.cfg.IndexName), d.QuoteTable(r.cfg.Table), d.QuoteIdentifier(r.cfg.Column))
}

// EnsureIndex creates the benchmark index unless it already exists and
// reports whether it was created.
func (r *Runner) EnsureIndex(ctx context.Context) (bool, error) {
	exists, known, err := r.IndexExists(ctx)
	if err != nil {
		return false, err
	}
	if exists {
		r.logger.Info("index already exists", slog.String("index", r.cfg.IndexName), slog.String("table", r.cfg.Table))
		return false, nil
	}
	if !known && !r.db.Dialect().IndexIfNotExists {
		return false, fmt.Errorf("cannot tell whether index %s exists on dialect %s", r.cfg.IndexName, r.db.Dialect().GetName())
	}

	if err := r.db.Exec(ctx, r.CreateIndexSQL()); err != nil {
		return false, fmt.Errorf("failed to create index %s: %w", r.cfg.IndexName, err)
	}
	r.logger.Info("index created", slog.String("index", r.cfg.IndexName), slog.String("table", r.cfg.Table))
	return true, nil
}
