package quality

import (
	"context"
	"errors"
	"fmt"

	"github.com/leapstack-labs/salesdq/pkg/adapter"
)

// ErrUnknownColumn marks a rule that references a column the table lacks.
var ErrUnknownColumn = errors.New("no such column")

// Source is the queryable tabular store the rules run against.
type Source interface {
	// CountRows returns the total number of rows in table.
	CountRows(ctx context.Context, table string) (int64, error)

	// CountWhere returns the number of rows in table matching where.
	CountWhere(ctx context.Context, table string, where Predicate) (int64, error)

	// GroupedDuplicates returns every value of column that occurs more
	// than once, with its occurrence count.
	GroupedDuplicates(ctx context.Context, table, column string) ([]DuplicateGroup, error)
}

// DuplicateGroup is one repeated value and how often it occurs.
type DuplicateGroup struct {
	Value any
	Count int64
}

// SQLSource implements Source over a connected adapter.
// Column references are checked against the table's metadata before any
// query runs, since some engines (SQLite) read an unknown quoted
// identifier as a string literal.
type SQLSource struct {
	db     adapter.Adapter
	tables map[string]*adapter.Metadata
}

// NewSQLSource wraps a connected adapter.
func NewSQLSource(db adapter.Adapter) *SQLSource {
	return &SQLSource{db: db, tables: make(map[string]*adapter.Metadata)}
}

// requireColumns fails unless table has every column. Metadata is cached
// per table once it has been read successfully.
func (s *SQLSource) requireColumns(ctx context.Context, table string, columns ...string) error {
	meta, ok := s.tables[table]
	if !ok {
		m, err := s.db.GetTableMetadata(ctx, table)
		if err != nil {
			return fmt.Errorf("failed to read columns of %s: %w", table, err)
		}
		meta = m
		s.tables[table] = meta
	}
	for _, c := range columns {
		if _, ok := meta.Column(c); !ok {
			return fmt.Errorf("%w: %s.%s", ErrUnknownColumn, table, c)
		}
	}
	return nil
}

// CountRows implements Source.
func (s *SQLSource) CountRows(ctx context.Context, table string) (int64, error) {
	d := s.db.Dialect()
	return s.scalar(ctx, "SELECT COUNT(*) FROM "+d.QuoteTable(table))
}

// CountWhere implements Source.
func (s *SQLSource) CountWhere(ctx context.Context, table string, where Predicate) (int64, error) {
	if err := s.requireColumns(ctx, table, Columns(where)...); err != nil {
		return 0, err
	}
	d := s.db.Dialect()
	cond, args := Compile(d, where)
	return s.scalar(ctx, "SELECT COUNT(*) FROM "+d.QuoteTable(table)+" WHERE "+cond, args...)
}

// GroupedDuplicates implements Source.
func (s *SQLSource) GroupedDuplicates(ctx context.Context, table, column string) ([]DuplicateGroup, error) {
	if err := s.requireColumns(ctx, table, column); err != nil {
		return nil, err
	}
	d := s.db.Dialect()
	col := d.QuoteIdentifier(column)
	query := fmt.Sprintf("SELECT %s, COUNT(*) FROM %s GROUP BY %s HAVING COUNT(*) > 1",
		col, d.QuoteTable(table), col)

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var groups []DuplicateGroup
	for rows.Next() {
		var g DuplicateGroup
		if err := rows.Scan(&g.Value, &g.Count); err != nil {
			return nil, fmt.Errorf("failed to scan duplicate group: %w", err)
		}
		if b, ok := g.Value.([]byte); ok {
			g.Value = string(b)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating duplicate groups: %w", err)
	}
	return groups, nil
}

func (s *SQLSource) scalar(ctx context.Context, query string, args ...any) (int64, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	defer func() { _ = rows.Close() }()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return 0, err
		}
		return 0, fmt.Errorf("count query returned no rows")
	}
	var n int64
	if err := rows.Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to scan count: %w", err)
	}
	return n, rows.Err()
}
