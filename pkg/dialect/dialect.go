// Package dialect describes the SQL surface differences between warehouse
// backends: identifier quoting, parameter placeholders and DDL type names.
package dialect

import (
	"strconv"
	"strings"

	"github.com/leapstack-labs/salesdq/pkg/core"
)

// Dialect represents a SQL dialect configuration.
type Dialect struct {
	Name        string
	Identifiers core.IdentifierConfig

	// Database-specific settings
	DefaultSchema    string                // Default schema name ("main" for DuckDB, "public" for Postgres)
	Placeholder      core.PlaceholderStyle // How to format query parameters
	IndexIfNotExists bool

	types map[core.LogicalType]string
}

// Config returns the pure data configuration for this dialect.
func (d *Dialect) Config() *core.DialectConfig {
	types := make(map[core.LogicalType]string, len(d.types))
	for k, v := range d.types {
		types[k] = v
	}
	return &core.DialectConfig{
		Name:             d.Name,
		Identifiers:      d.Identifiers,
		DefaultSchema:    d.DefaultSchema,
		Placeholder:      d.Placeholder,
		Types:            types,
		IndexIfNotExists: d.IndexIfNotExists,
	}
}

// GetName returns the dialect name.
func (d *Dialect) GetName() string {
	return d.Name
}

// FormatPlaceholder returns a placeholder for the given parameter index (1-based).
// Returns "?" for PlaceholderQuestion style, "$1", "$2" etc. for PlaceholderDollar style.
func (d *Dialect) FormatPlaceholder(index int) string {
	switch d.Placeholder {
	case core.PlaceholderDollar:
		return "$" + strconv.Itoa(index)
	default: // PlaceholderQuestion
		return "?"
	}
}

// QuoteIdentifier quotes an identifier using the dialect's quote characters.
func (d *Dialect) QuoteIdentifier(name string) string {
	escaped := strings.ReplaceAll(name, d.Identifiers.QuoteEnd, d.Identifiers.Escape)
	return d.Identifiers.Quote + escaped + d.Identifiers.QuoteEnd
}

// QuoteTable quotes a possibly schema-qualified table name part by part.
func (d *Dialect) QuoteTable(table string) string {
	parts := strings.Split(table, ".")
	for i, p := range parts {
		parts[i] = d.QuoteIdentifier(p)
	}
	return strings.Join(parts, ".")
}

// TypeName returns the DDL type for a logical column type.
// Unknown types fall back to the text type.
func (d *Dialect) TypeName(t core.LogicalType) string {
	if name, ok := d.types[t]; ok {
		return name
	}
	if name, ok := d.types[core.TypeText]; ok {
		return name
	}
	return "TEXT"
}

// ---------- Builder ----------

// Builder provides a fluent API for constructing dialects.
type Builder struct {
	dialect *Dialect
}

// NewDialect creates a new dialect builder with the given name.
// Identifiers default to ANSI double quotes and placeholders to "?".
func NewDialect(name string) *Builder {
	return &Builder{
		dialect: &Dialect{
			Name: name,
			Identifiers: core.IdentifierConfig{
				Quote:    `"`,
				QuoteEnd: `"`,
				Escape:   `""`,
			},
			types: map[core.LogicalType]string{
				core.TypeInteger: "INTEGER",
				core.TypeFloat:   "REAL",
				core.TypeText:    "TEXT",
			},
		},
	}
}

// Identifiers configures identifier quoting.
func (b *Builder) Identifiers(quote, quoteEnd, escape string) *Builder {
	b.dialect.Identifiers = core.IdentifierConfig{
		Quote:    quote,
		QuoteEnd: quoteEnd,
		Escape:   escape,
	}
	return b
}

// DefaultSchema sets the default schema name.
func (b *Builder) DefaultSchema(schema string) *Builder {
	b.dialect.DefaultSchema = schema
	return b
}

// PlaceholderStyle sets how query parameters are formatted.
func (b *Builder) PlaceholderStyle(style core.PlaceholderStyle) *Builder {
	b.dialect.Placeholder = style
	return b
}

// DataType maps a logical type to a DDL type name.
func (b *Builder) DataType(t core.LogicalType, name string) *Builder {
	b.dialect.types[t] = name
	return b
}

// IndexIfNotExists marks CREATE INDEX IF NOT EXISTS as supported.
func (b *Builder) IndexIfNotExists(ok bool) *Builder {
	b.dialect.IndexIfNotExists = ok
	return b
}

// Build returns the constructed dialect.
func (b *Builder) Build() *Dialect {
	return b.dialect
}
