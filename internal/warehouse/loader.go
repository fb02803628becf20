package warehouse

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/leapstack-labs/salesdq/pkg/adapter"
)

// ErrDataFileMissing is returned when the raw CSV file does not exist.
var ErrDataFileMissing = errors.New("raw data file not found")

// Loader creates the Sales table and appends raw records to it.
type Loader struct {
	db     adapter.Adapter
	table  string
	logger *slog.Logger
}

// NewLoader creates a loader for the Sales table on a connected adapter.
func NewLoader(db adapter.Adapter, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Loader{db: db, table: SalesTable, logger: logger}
}

// Prepare creates the Sales table. With replace set, an existing table is
// dropped first.
func (l *Loader) Prepare(ctx context.Context, replace bool) error {
	d := l.db.Dialect()
	if replace {
		if err := l.db.Exec(ctx, DropTableSQL(d, l.table)); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", l.table, err)
		}
	}
	if err := l.db.Exec(ctx, CreateTableSQL(d, l.table, SalesColumns)); err != nil {
		return fmt.Errorf("failed to create table %s: %w", l.table, err)
	}
	l.logger.Debug("table ready", slog.String("table", l.table), slog.Bool("replaced", replace))
	return nil
}

// Load appends the rows of the CSV file to the Sales table.
func (l *Loader) Load(ctx context.Context, csvPath string) (int64, error) {
	if _, err := os.Stat(csvPath); err != nil {
		if os.IsNotExist(err) {
			return 0, fmt.Errorf("%w: %s", ErrDataFileMissing, csvPath)
		}
		return 0, fmt.Errorf("failed to stat %s: %w", csvPath, err)
	}

	n, err := l.db.LoadCSV(ctx, l.table, csvPath)
	if err != nil {
		return 0, fmt.Errorf("failed to load %s into %s: %w", csvPath, l.table, err)
	}
	l.logger.Info("data loaded", slog.String("file", csvPath), slog.String("table", l.table), slog.Int64("rows", n))
	return n, nil
}
