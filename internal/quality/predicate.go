package quality

import (
	"strings"

	"github.com/leapstack-labs/salesdq/pkg/dialect"
)

// Predicate is a boolean expression over column comparisons.
// Predicates compile to parameterized SQL; values never appear in the
// statement text.
type Predicate interface {
	compile(c *compiler)
	appendColumns(dst []string) []string
}

// IsNull matches rows where the column is NULL.
func IsNull(column string) Predicate {
	return isNull{column: column}
}

// Less matches rows where the column is strictly less than v.
func Less(column string, v float64) Predicate {
	return comparison{column: column, op: "<", value: v}
}

// Greater matches rows where the column is strictly greater than v.
func Greater(column string, v float64) Predicate {
	return comparison{column: column, op: ">", value: v}
}

// And matches rows satisfying every term.
func And(terms ...Predicate) Predicate {
	return junction{op: "AND", terms: terms}
}

// Or matches rows satisfying at least one term.
func Or(terms ...Predicate) Predicate {
	return junction{op: "OR", terms: terms}
}

type isNull struct {
	column string
}

func (p isNull) compile(c *compiler) {
	c.sb.WriteString(c.d.QuoteIdentifier(p.column))
	c.sb.WriteString(" IS NULL")
}

func (p isNull) appendColumns(dst []string) []string {
	return append(dst, p.column)
}

type comparison struct {
	column string
	op     string
	value  any
}

func (p comparison) compile(c *compiler) {
	c.sb.WriteString(c.d.QuoteIdentifier(p.column))
	c.sb.WriteString(" ")
	c.sb.WriteString(p.op)
	c.sb.WriteString(" ")
	c.bind(p.value)
}

func (p comparison) appendColumns(dst []string) []string {
	return append(dst, p.column)
}

type junction struct {
	op    string
	terms []Predicate
}

func (p junction) compile(c *compiler) {
	switch len(p.terms) {
	case 0:
		// Empty AND is true, empty OR is false.
		if p.op == "AND" {
			c.sb.WriteString("1 = 1")
		} else {
			c.sb.WriteString("1 = 0")
		}
		return
	case 1:
		p.terms[0].compile(c)
		return
	}

	c.sb.WriteString("(")
	for i, t := range p.terms {
		if i > 0 {
			c.sb.WriteString(" " + p.op + " ")
		}
		t.compile(c)
	}
	c.sb.WriteString(")")
}

func (p junction) appendColumns(dst []string) []string {
	for _, t := range p.terms {
		dst = t.appendColumns(dst)
	}
	return dst
}

// Columns lists the columns a predicate references, in order of
// appearance.
func Columns(p Predicate) []string {
	return p.appendColumns(nil)
}

type compiler struct {
	d    *dialect.Dialect
	sb   strings.Builder
	args []any
}

func (c *compiler) bind(v any) {
	c.args = append(c.args, v)
	c.sb.WriteString(c.d.FormatPlaceholder(len(c.args)))
}

// Compile renders a predicate as a SQL boolean expression with its bind
// arguments in placeholder order.
func Compile(d *dialect.Dialect, p Predicate) (string, []any) {
	c := &compiler{d: d}
	p.compile(c)
	return c.sb.String(), c.args
}
