package quality

import (
	"testing"

	"github.com/leapstack-labs/salesdq/pkg/core"
	"github.com/leapstack-labs/salesdq/pkg/dialect"
	"github.com/stretchr/testify/assert"
)

func TestCompile(t *testing.T) {
	question := dialect.NewDialect("q").Build()
	dollar := dialect.NewDialect("d").PlaceholderStyle(core.PlaceholderDollar).Build()
	backtick := dialect.NewDialect("b").Identifiers("`", "`", "``").Build()

	tests := []struct {
		name     string
		d        *dialect.Dialect
		pred     Predicate
		wantSQL  string
		wantArgs []any
	}{
		{
			name:    "is null",
			d:       question,
			pred:    IsNull("OrderID"),
			wantSQL: `"OrderID" IS NULL`,
		},
		{
			name:     "less",
			d:        question,
			pred:     Less("Quantity", 1),
			wantSQL:  `"Quantity" < ?`,
			wantArgs: []any{1.0},
		},
		{
			name:     "or of bounds with dollar placeholders",
			d:        dollar,
			pred:     Or(Less("Discount", 0), Greater("Discount", 1)),
			wantSQL:  `("Discount" < $1 OR "Discount" > $2)`,
			wantArgs: []any{0.0, 1.0},
		},
		{
			name:     "nested and/or",
			d:        dollar,
			pred:     And(IsNull("Region"), Or(Less("TotalSale", 0), Greater("Quantity", 10))),
			wantSQL:  `("Region" IS NULL AND ("TotalSale" < $1 OR "Quantity" > $2))`,
			wantArgs: []any{0.0, 10.0},
		},
		{
			name:     "single term junction collapses",
			d:        question,
			pred:     Or(Greater("Quantity", 5)),
			wantSQL:  `"Quantity" > ?`,
			wantArgs: []any{5.0},
		},
		{
			name:    "empty and",
			d:       question,
			pred:    And(),
			wantSQL: "1 = 1",
		},
		{
			name:    "empty or",
			d:       question,
			pred:    Or(),
			wantSQL: "1 = 0",
		},
		{
			name:    "identifier escaping",
			d:       backtick,
			pred:    IsNull("we`ird"),
			wantSQL: "`we``ird` IS NULL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args := Compile(tt.d, tt.pred)
			assert.Equal(t, tt.wantSQL, sql)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}
