package dialect

import (
	"testing"

	"github.com/leapstack-labs/salesdq/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatPlaceholder(t *testing.T) {
	question := NewDialect("q").Build()
	dollar := NewDialect("d").PlaceholderStyle(core.PlaceholderDollar).Build()

	assert.Equal(t, "?", question.FormatPlaceholder(1))
	assert.Equal(t, "?", question.FormatPlaceholder(3))
	assert.Equal(t, "$1", dollar.FormatPlaceholder(1))
	assert.Equal(t, "$12", dollar.FormatPlaceholder(12))
}

func TestQuoteIdentifier(t *testing.T) {
	ansi := NewDialect("ansi").Build()
	backtick := NewDialect("bt").Identifiers("`", "`", "``").Build()

	tests := []struct {
		name string
		d    *Dialect
		in   string
		want string
	}{
		{"ansi plain", ansi, "OrderID", `"OrderID"`},
		{"ansi embedded quote", ansi, `we"ird`, `"we""ird"`},
		{"backtick plain", backtick, "Sales", "`Sales`"},
		{"backtick embedded", backtick, "a`b", "`a``b`"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.d.QuoteIdentifier(tt.in))
		})
	}
}

func TestQuoteTable(t *testing.T) {
	d := NewDialect("ansi").Build()
	assert.Equal(t, `"Sales"`, d.QuoteTable("Sales"))
	assert.Equal(t, `"public"."Sales"`, d.QuoteTable("public.Sales"))
}

func TestTypeName(t *testing.T) {
	d := NewDialect("pg").
		DataType(core.TypeFloat, "DOUBLE PRECISION").
		Build()

	assert.Equal(t, "INTEGER", d.TypeName(core.TypeInteger))
	assert.Equal(t, "DOUBLE PRECISION", d.TypeName(core.TypeFloat))
	assert.Equal(t, "TEXT", d.TypeName(core.LogicalType("blob")))
}

func TestConfig(t *testing.T) {
	d := NewDialect("x").DefaultSchema("main").IndexIfNotExists(true).Build()
	cfg := d.Config()
	require.NotNil(t, cfg)
	assert.Equal(t, "x", cfg.Name)
	assert.Equal(t, "main", cfg.DefaultSchema)
	assert.True(t, cfg.IndexIfNotExists)
	assert.Equal(t, "TEXT", cfg.Types[core.TypeText])
}

func TestRegistry(t *testing.T) {
	Register(NewDialect("Registry_Test").Build())

	d, ok := Get("registry_test")
	require.True(t, ok)
	assert.Equal(t, "Registry_Test", d.Name)
	assert.Contains(t, List(), "registry_test")

	_, ok = Get("missing")
	assert.False(t, ok)
}
