package benchmark

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/salesdq/pkg/adapter"
	"github.com/leapstack-labs/salesdq/pkg/dialect"
)

// Defaults for the benchmark target.
const (
	DefaultTable     = "Sales"
	DefaultColumn    = "CustomerSegment"
	DefaultSegment   = "Corporate"
	DefaultIndexName = "idx_customer_segment"
)

// Config selects what the benchmark queries and indexes.
type Config struct {
	Table     string
	Column    string
	Segment   string
	IndexName string
}

func (c Config) withDefaults() Config {
	if c.Table == "" {
		c.Table = DefaultTable
	}
	if c.Column == "" {
		c.Column = DefaultColumn
	}
	if c.Segment == "" {
		c.Segment = DefaultSegment
	}
	if c.IndexName == "" {
		c.IndexName = DefaultIndexName
	}
	return c
}

// ReportRow is one line of the sales report.
type ReportRow struct {
	Category string  `json:"category"`
	Orders   int64   `json:"orders"`
	Revenue  float64 `json:"revenue"`
}

// Result holds both timings, the comparison and the report rows.
type Result struct {
	Segment      string      `json:"segment"`
	IndexName    string      `json:"index_name"`
	IndexCreated bool        `json:"index_created"`
	BeforeMS     float64     `json:"before_ms"`
	AfterMS      float64     `json:"after_ms"`
	Comparison   Comparison  `json:"comparison"`
	Rows         []ReportRow `json:"rows"`
}

// Runner executes the benchmark against a connected adapter.
type Runner struct {
	db     adapter.Adapter
	cfg    Config
	logger *slog.Logger
}

// NewRunner creates a benchmark runner. Zero config fields take defaults.
func NewRunner(db adapter.Adapter, cfg Config, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Runner{db: db, cfg: cfg.withDefaults(), logger: logger}
}

// LegacyQuery is the report as written before optimization. Wrapping the
// segment column in LOWER keeps the index from being used.
func (r *Runner) LegacyQuery() (string, []any) {
	d := r.db.Dialect()
	where := fmt.Sprintf("LOWER(%s) = LOWER(%s)", d.QuoteIdentifier(r.cfg.Column), d.FormatPlaceholder(1))
	return reportQuery(d, r.cfg.Table, where), []any{r.cfg.Segment}
}

// OptimizedQuery is the report with a sargable segment filter.
func (r *Runner) OptimizedQuery() (string, []any) {
	d := r.db.Dialect()
	where := fmt.Sprintf("%s = %s", d.QuoteIdentifier(r.cfg.Column), d.FormatPlaceholder(1))
	return reportQuery(d, r.cfg.Table, where), []any{r.cfg.Segment}
}

func reportQuery(d *dialect.Dialect, table, where string) string {
	category := d.QuoteIdentifier("ProductCategory")
	return fmt.Sprintf(
		"SELECT %s, COUNT(*) AS orders, SUM(%s) AS revenue FROM %s WHERE %s GROUP BY %s ORDER BY revenue DESC",
		category, d.QuoteIdentifier("TotalSale"), d.QuoteTable(table), where, category)
}

// Run times the legacy report, applies the index and times the optimized
// report.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	query, args := r.LegacyQuery()
	_, before, err := Measure(func() ([]ReportRow, error) { return r.report(ctx, query, args) })
	if err != nil {
		return nil, fmt.Errorf("failed to run legacy report: %w", err)
	}
	r.logger.Debug("legacy report timed", slog.Duration("elapsed", before))

	created, err := r.EnsureIndex(ctx)
	if err != nil {
		return nil, err
	}

	query, args = r.OptimizedQuery()
	rows, after, err := Measure(func() ([]ReportRow, error) { return r.report(ctx, query, args) })
	if err != nil {
		return nil, fmt.Errorf("failed to run optimized report: %w", err)
	}
	r.logger.Debug("optimized report timed", slog.Duration("elapsed", after))

	return &Result{
		Segment:      r.cfg.Segment,
		IndexName:    r.cfg.IndexName,
		IndexCreated: created,
		BeforeMS:     Milliseconds(before),
		AfterMS:      Milliseconds(after),
		Comparison:   Compare(before, after),
		Rows:         rows,
	}, nil
}

func (r *Runner) report(ctx context.Context, query string, args []any) ([]ReportRow, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []ReportRow
	for rows.Next() {
		var (
			category sql.NullString
			row      ReportRow
			revenue  sql.NullFloat64
		)
		if err := rows.Scan(&category, &row.Orders, &revenue); err != nil {
			return nil, fmt.Errorf("failed to scan report row: %w", err)
		}
		row.Category = category.String
		row.Revenue = revenue.Float64
		out = append(out, row)
	}
	return out, rows.Err()
}
