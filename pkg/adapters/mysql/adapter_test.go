package mysql

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/leapstack-labs/salesdq/pkg/adapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMySQLDSN(t *testing.T) {
	tests := []struct {
		name     string
		config   adapter.Config
		contains []string
	}{
		{
			name: "defaults",
			config: adapter.Config{
				Database: "sales",
			},
			contains: []string{"tcp(localhost:3306)/sales", "parseTime=true"},
		},
		{
			name: "credentials and port",
			config: adapter.Config{
				Host:     "db.internal",
				Port:     3307,
				Database: "warehouse",
				Username: "etl",
				Password: "secret",
			},
			contains: []string{"etl:secret@tcp(db.internal:3307)/warehouse"},
		},
		{
			name: "options become params",
			config: adapter.Config{
				Database: "sales",
				Options:  map[string]string{"charset": "utf8mb4"},
			},
			contains: []string{"charset=utf8mb4"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dsn := buildMySQLDSN(tt.config)
			for _, s := range tt.contains {
				assert.Contains(t, dsn, s)
			}
		})
	}
}

func TestNew(t *testing.T) {
	adp := New(nil)
	assert.False(t, adp.IsConnected())
	assert.Equal(t, "mysql", adp.DialectName())
	assert.Equal(t, "`Sales`", adp.Dialect().QuoteIdentifier("Sales"))
	assert.False(t, adp.Dialect().IndexIfNotExists)
}

func TestAdapter_GetTableMetadata_QualifiesDatabase(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("information_schema.columns").
		WithArgs("sales", "Sales").
		WillReturnRows(sqlmock.NewRows([]string{"column_name", "data_type", "is_nullable", "ordinal_position"}).
			AddRow("OrderID", "int", "NO", 1).
			AddRow("Discount", "double", "YES", 2))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM `sales`.`Sales`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(10))

	adp := New(nil)
	adp.DB = db
	adp.Cfg = adapter.Config{Database: "sales"}

	meta, err := adp.GetTableMetadata(context.Background(), "Sales")
	require.NoError(t, err)
	assert.Equal(t, "sales", meta.Schema)
	assert.Equal(t, int64(10), meta.RowCount)
	require.Len(t, meta.Columns, 2)
	assert.False(t, meta.Columns[0].Nullable)
	assert.True(t, meta.Columns[1].Nullable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_Registry(t *testing.T) {
	assert.True(t, adapter.IsRegistered("mysql"))
	factory, ok := adapter.Get("mysql")
	require.True(t, ok)
	_, ok = factory(nil).(*Adapter)
	assert.True(t, ok)
}
