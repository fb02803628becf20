// Package warehouse owns the Sales table definition and loads raw sales
// records into it.
package warehouse

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/salesdq/pkg/core"
	"github.com/leapstack-labs/salesdq/pkg/dialect"
)

// SalesTable is the name of the table holding sales records.
const SalesTable = "Sales"

// ColumnDef is a portable column definition.
type ColumnDef struct {
	Name string
	Type core.LogicalType
}

// SalesColumns is the Sales table layout, in CSV order.
var SalesColumns = []ColumnDef{
	{Name: "OrderID", Type: core.TypeInteger},
	{Name: "OrderDate", Type: core.TypeText},
	{Name: "CustomerID", Type: core.TypeText},
	{Name: "CustomerSegment", Type: core.TypeText},
	{Name: "Region", Type: core.TypeText},
	{Name: "ProductID", Type: core.TypeText},
	{Name: "ProductCategory", Type: core.TypeText},
	{Name: "Quantity", Type: core.TypeInteger},
	{Name: "UnitPrice", Type: core.TypeFloat},
	{Name: "Discount", Type: core.TypeFloat},
	{Name: "TotalSale", Type: core.TypeFloat},
}

// CreateTableSQL renders CREATE TABLE IF NOT EXISTS for the dialect.
func CreateTableSQL(d *dialect.Dialect, table string, cols []ColumnDef) string {
	defs := make([]string, len(cols))
	for i, c := range cols {
		defs[i] = fmt.Sprintf("    %s %s", d.QuoteIdentifier(c.Name), d.TypeName(c.Type))
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n%s\n)", d.QuoteTable(table), strings.Join(defs, ",\n"))
}

// DropTableSQL renders DROP TABLE IF EXISTS for the dialect.
func DropTableSQL(d *dialect.Dialect, table string) string {
	return "DROP TABLE IF EXISTS " + d.QuoteTable(table)
}
