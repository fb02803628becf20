package core

import (
	"database/sql"
	"strings"
)

// AdapterConfig holds configuration for connecting to a database.
type AdapterConfig struct {
	Type     string
	Path     string
	Host     string
	Port     int
	Database string
	Username string
	Password string
	Schema   string
	Options  map[string]string
	Params   map[string]any
}

// IsFileBased reports whether the target lives in a local database file.
func (c AdapterConfig) IsFileBased() bool {
	switch c.Type {
	case "sqlite", "duckdb":
		return c.Path != "" && c.Path != ":memory:"
	default:
		return false
	}
}

// Column represents a column in a database table.
type Column struct {
	Name       string
	Type       string
	Nullable   bool
	PrimaryKey bool
	Position   int
}

// TypeFamily classifies a declared column type for value conversion.
type TypeFamily int

// Type families recognised by the CSV loader.
const (
	FamilyText TypeFamily = iota
	FamilyInteger
	FamilyFloat
)

// Family returns the conversion family of the column's declared type.
func (c Column) Family() TypeFamily {
	t := strings.ToUpper(c.Type)
	switch {
	case strings.Contains(t, "INT"):
		return FamilyInteger
	case strings.Contains(t, "FLOAT"), strings.Contains(t, "DOUBLE"),
		strings.Contains(t, "REAL"), strings.Contains(t, "NUMERIC"),
		strings.Contains(t, "DECIMAL"):
		return FamilyFloat
	default:
		return FamilyText
	}
}

// TableMetadata holds metadata about a database table.
type TableMetadata struct {
	Schema   string
	Name     string
	Columns  []Column
	RowCount int64
}

// Column looks up a column by name, ignoring case.
func (m *TableMetadata) Column(name string) (Column, bool) {
	for _, c := range m.Columns {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return Column{}, false
}

// Rows wraps sql.Rows to provide a consistent interface.
type Rows struct {
	*sql.Rows
}
