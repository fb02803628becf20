package benchmark

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/leapstack-labs/salesdq/internal/testutil"
	"github.com/leapstack-labs/salesdq/internal/warehouse"
	"github.com/leapstack-labs/salesdq/pkg/adapters/mysql"
	"github.com/leapstack-labs/salesdq/pkg/adapters/sqlite"
	"github.com/leapstack-labs/salesdq/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadedSqlite(t *testing.T, rows []testutil.SalesRow) *sqlite.Adapter {
	t.Helper()
	ctx := context.Background()

	adp := sqlite.New(testutil.NewTestLogger(t))
	require.NoError(t, adp.Connect(ctx, core.AdapterConfig{Path: ":memory:"}))
	t.Cleanup(func() { _ = adp.Close() })

	loader := warehouse.NewLoader(adp, nil)
	require.NoError(t, loader.Prepare(ctx, false))
	_, err := loader.Load(ctx, testutil.WriteSalesCSV(t, rows))
	require.NoError(t, err)
	return adp
}

func TestRunner_Queries(t *testing.T) {
	r := NewRunner(sqlite.New(nil), Config{}, nil)

	legacy, args := r.LegacyQuery()
	assert.Equal(t,
		`SELECT "ProductCategory", COUNT(*) AS orders, SUM("TotalSale") AS revenue FROM "Sales" WHERE LOWER("CustomerSegment") = LOWER(?) GROUP BY "ProductCategory" ORDER BY revenue DESC`,
		legacy)
	assert.Equal(t, []any{"Corporate"}, args)

	optimized, _ := r.OptimizedQuery()
	assert.Contains(t, optimized, `WHERE "CustomerSegment" = ?`)

	assert.Equal(t, `CREATE INDEX IF NOT EXISTS "idx_customer_segment" ON "Sales" ("CustomerSegment")`, r.CreateIndexSQL())

	my := NewRunner(mysql.New(nil), Config{Segment: "Consumer"}, nil)
	assert.Equal(t, "CREATE INDEX `idx_customer_segment` ON `Sales` (`CustomerSegment`)", my.CreateIndexSQL())
	_, args = my.LegacyQuery()
	assert.Equal(t, []any{"Consumer"}, args)
}

func TestRunner_Run(t *testing.T) {
	ctx := context.Background()
	adp := loadedSqlite(t, testutil.CleanSalesRows(30))
	r := NewRunner(adp, Config{}, testutil.NewTestLogger(t))

	exists, known, err := r.IndexExists(ctx)
	require.NoError(t, err)
	assert.True(t, known)
	assert.False(t, exists)

	res, err := r.Run(ctx)
	require.NoError(t, err)
	assert.True(t, res.IndexCreated)
	assert.Equal(t, "Corporate", res.Segment)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "Furniture", res.Rows[0].Category)
	assert.Equal(t, int64(10), res.Rows[0].Orders)
	assert.Contains(t, []Outcome{OutcomeImproved, OutcomeNotImproved, OutcomeInconclusive}, res.Comparison.Outcome)

	exists, _, err = r.IndexExists(ctx)
	require.NoError(t, err)
	assert.True(t, exists)

	// A second run finds the index in place.
	res, err = r.Run(ctx)
	require.NoError(t, err)
	assert.False(t, res.IndexCreated)
}

func TestRunner_MatchesSegmentCaseInsensitively(t *testing.T) {
	ctx := context.Background()
	rows := testutil.CleanSalesRows(3)
	rows[0].CustomerSegment = "corporate"
	adp := loadedSqlite(t, rows)
	r := NewRunner(adp, Config{}, nil)

	query, args := r.LegacyQuery()
	legacy, err := r.report(ctx, query, args)
	require.NoError(t, err)
	require.Len(t, legacy, 1)
	assert.Equal(t, int64(1), legacy[0].Orders)

	query, args = r.OptimizedQuery()
	optimized, err := r.report(ctx, query, args)
	require.NoError(t, err)
	assert.Empty(t, optimized)
}

func TestRunner_MissingTable(t *testing.T) {
	adp := sqlite.New(nil)
	require.NoError(t, adp.Connect(context.Background(), core.AdapterConfig{Path: ":memory:"}))
	defer func() { _ = adp.Close() }()

	_, err := NewRunner(adp, Config{}, nil).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "legacy report")
}

func TestRunner_MySQLIndexLookup(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	adp := mysql.New(nil)
	adp.DB = db
	r := NewRunner(adp, Config{}, nil)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM information_schema.statistics`).
		WithArgs("Sales", "idx_customer_segment").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("CREATE INDEX `idx_customer_segment` ON `Sales`").
		WillReturnResult(sqlmock.NewResult(0, 0))

	created, err := r.EnsureIndex(context.Background())
	require.NoError(t, err)
	assert.True(t, created)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM information_schema.statistics`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	created, err = r.EnsureIndex(context.Background())
	require.NoError(t, err)
	assert.False(t, created)

	assert.NoError(t, mock.ExpectationsWereMet())
}
