package adapter

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/leapstack-labs/salesdq/pkg/core"
	"github.com/leapstack-labs/salesdq/pkg/dialect"
)

// ConvertValue turns a raw CSV field into a driver value for the column.
// Empty fields become NULL.
func ConvertValue(raw string, col core.Column) (any, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return nil, nil
	}
	switch col.Family() {
	case core.FamilyInteger:
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n, nil
		}
		// Spreadsheet exports write integral values as "3.0".
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f != float64(int64(f)) {
			return nil, fmt.Errorf("column %s: %q is not an integer", col.Name, raw)
		}
		return int64(f), nil
	case core.FamilyFloat:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("column %s: %q is not a number", col.Name, raw)
		}
		return f, nil
	default:
		return v, nil
	}
}

// BuildInsert returns a parameterized INSERT statement for the columns.
func BuildInsert(d *dialect.Dialect, table string, columns []string) string {
	quoted := make([]string, len(columns))
	params := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = d.QuoteIdentifier(c)
		params[i] = d.FormatPlaceholder(i + 1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		d.QuoteTable(table), strings.Join(quoted, ", "), strings.Join(params, ", "))
}

// CSVRows streams typed rows out of a headed CSV file.
// Its Next/Values/Err methods satisfy pgx.CopyFromSource.
type CSVRows struct {
	file    *os.File
	reader  *csv.Reader
	columns []core.Column
	names   []string
	line    int
	values  []any
	err     error
}

// OpenCSV opens a CSV file and maps its header onto the table's columns.
// Header names are matched ignoring case.
func OpenCSV(filePath, table string, meta *core.TableMetadata) (*CSVRows, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}
	file, err := os.Open(absPath) //nolint:gosec // path comes from user configuration
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file %s: %w", filePath, err)
	}

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	headers, err := reader.Read()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	r := &CSVRows{
		file:    file,
		reader:  reader,
		columns: make([]core.Column, len(headers)),
		names:   make([]string, len(headers)),
		line:    1,
	}
	for i, h := range headers {
		h = strings.TrimPrefix(strings.TrimSpace(h), "\ufeff")
		col, ok := meta.Column(h)
		if !ok {
			_ = file.Close()
			return nil, fmt.Errorf("CSV column %q does not exist in table %s", h, table)
		}
		r.columns[i] = col
		r.names[i] = col.Name
	}
	return r, nil
}

// Columns returns the table column names in CSV order.
func (r *CSVRows) Columns() []string {
	return r.names
}

// Next advances to the next record, converting its fields.
func (r *CSVRows) Next() bool {
	if r.err != nil {
		return false
	}
	record, err := r.reader.Read()
	if errors.Is(err, io.EOF) {
		return false
	}
	r.line++
	if err != nil {
		r.err = fmt.Errorf("failed to read CSV line %d: %w", r.line, err)
		return false
	}
	if len(record) != len(r.columns) {
		r.err = fmt.Errorf("CSV line %d has %d fields, expected %d", r.line, len(record), len(r.columns))
		return false
	}

	values := make([]any, len(record))
	for i, raw := range record {
		v, err := ConvertValue(raw, r.columns[i])
		if err != nil {
			r.err = fmt.Errorf("CSV line %d: %w", r.line, err)
			return false
		}
		values[i] = v
	}
	r.values = values
	return true
}

// Values returns the converted values of the current record.
func (r *CSVRows) Values() ([]any, error) {
	return r.values, nil
}

// Err returns the first error encountered while reading.
func (r *CSVRows) Err() error {
	return r.err
}

// Close closes the underlying file.
func (r *CSVRows) Close() error {
	return r.file.Close()
}

// LoadCSVCommon appends the rows of a headed CSV file to an existing table
// using a prepared INSERT inside one transaction.
func (b *BaseSQLAdapter) LoadCSVCommon(ctx context.Context, table, filePath string, d *dialect.Dialect, meta *core.TableMetadata) (int64, error) {
	if b.DB == nil {
		return 0, fmt.Errorf("database connection not established")
	}

	src, err := OpenCSV(filePath, table, meta)
	if err != nil {
		return 0, err
	}
	defer func() { _ = src.Close() }()

	tx, err := b.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, BuildInsert(d, table, src.Columns()))
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	var inserted int64
	for src.Next() {
		values, _ := src.Values()
		if _, err := stmt.ExecContext(ctx, values...); err != nil {
			return 0, fmt.Errorf("failed to insert CSV line %d: %w", src.line, err)
		}
		inserted++
	}
	if err := src.Err(); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit CSV load: %w", err)
	}
	if b.Logger != nil {
		b.Logger.Debug("loaded CSV", "table", table, "file", filePath, "rows", inserted)
	}
	return inserted, nil
}

// DecodeParams decodes adapter-specific Params into a typed struct.
// A nil map leaves out untouched.
func DecodeParams(params map[string]any, out any) error {
	if params == nil {
		return nil
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return fmt.Errorf("failed to create params decoder: %w", err)
	}
	if err := decoder.Decode(params); err != nil {
		return fmt.Errorf("failed to decode adapter params: %w", err)
	}
	return nil
}
