package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// SalesHeader is the column header of a sales records CSV.
const SalesHeader = "OrderID,OrderDate,CustomerID,CustomerSegment,Region,ProductID,ProductCategory,Quantity,UnitPrice,Discount,TotalSale"

// SalesRow is one sales record for fixture files. Empty strings are
// written as empty CSV fields, which load as NULL.
type SalesRow struct {
	OrderID         string
	CustomerSegment string
	ProductID       string
	Quantity        string
	Discount        string
	TotalSale       string
}

// CleanSalesRows returns n rows that pass every default quality check.
func CleanSalesRows(n int) []SalesRow {
	segments := []string{"Corporate", "Consumer", "Home Office"}
	rows := make([]SalesRow, n)
	for i := range rows {
		rows[i] = SalesRow{
			OrderID:         fmt.Sprint(i + 1),
			CustomerSegment: segments[i%len(segments)],
			ProductID:       fmt.Sprintf("P%03d", i%7),
			Quantity:        fmt.Sprint(1 + i%4),
			Discount:        "0.1",
			TotalSale:       fmt.Sprintf("%d.50", 10+i),
		}
	}
	return rows
}

// WriteSalesCSV writes rows to a sales CSV in a temporary directory and
// returns its path.
func WriteSalesCSV(t testing.TB, rows []SalesRow) string {
	t.Helper()

	var b strings.Builder
	b.WriteString(SalesHeader)
	b.WriteByte('\n')
	for _, r := range rows {
		fmt.Fprintf(&b, "%s,2024-01-15,C%s,%s,West,%s,Furniture,%s,12.5,%s,%s\n",
			r.OrderID, r.OrderID, r.CustomerSegment, r.ProductID, r.Quantity, r.Discount, r.TotalSale)
	}

	path := filepath.Join(t.TempDir(), "sales_records.csv")
	if err := os.WriteFile(path, []byte(b.String()), 0o600); err != nil {
		t.Fatalf("failed to write sales CSV: %v", err)
	}
	return path
}
