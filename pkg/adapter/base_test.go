package adapter

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/leapstack-labs/salesdq/pkg/core"
	"github.com/leapstack-labs/salesdq/pkg/dialect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newMockBase returns a BaseSQLAdapter over a sqlmock connection.
func newMockBase(t *testing.T) (*BaseSQLAdapter, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return &BaseSQLAdapter{DB: db}, mock
}

func TestBaseSQLAdapter_Close(t *testing.T) {
	tests := []struct {
		name      string
		setupDB   bool
		closeErr  error
		expectErr bool
	}{
		{
			name:    "close with nil DB",
			setupDB: false,
		},
		{
			name:    "close with open DB",
			setupDB: true,
		},
		{
			name:      "close error is returned",
			setupDB:   true,
			closeErr:  assert.AnError,
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := &BaseSQLAdapter{}
			var mock sqlmock.Sqlmock

			if tt.setupDB {
				db, m, err := sqlmock.New()
				require.NoError(t, err)
				mock = m
				closeExp := mock.ExpectClose()
				if tt.closeErr != nil {
					closeExp.WillReturnError(tt.closeErr)
				}
				base.DB = db
			}

			err := base.Close()
			if tt.expectErr {
				assert.ErrorIs(t, err, tt.closeErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Nil(t, base.DB, "DB should be cleared after Close")
			assert.False(t, base.IsConnected())
			if mock != nil {
				assert.NoError(t, mock.ExpectationsWereMet())
			}

			// A second Close is a no-op.
			assert.NoError(t, base.Close())
		})
	}
}

func TestBaseSQLAdapter_Exec(t *testing.T) {
	tests := []struct {
		name      string
		setupDB   bool
		setupMock func(mock sqlmock.Sqlmock)
		sql       string
		args      []any
		expectErr bool
		errMsg    string
	}{
		{
			name:      "exec without connection",
			setupDB:   false,
			sql:       "SELECT 1",
			expectErr: true,
			errMsg:    "database connection not established",
		},
		{
			name:    "exec success",
			setupDB: true,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`CREATE TABLE "Sales"`).WillReturnResult(sqlmock.NewResult(0, 0))
			},
			sql: `CREATE TABLE "Sales" ("OrderID" INTEGER)`,
		},
		{
			name:    "exec binds arguments",
			setupDB: true,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO "Sales"`).
					WithArgs(int64(7), "Corporate").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			sql:  `INSERT INTO "Sales" ("OrderID", "CustomerSegment") VALUES (?, ?)`,
			args: []any{int64(7), "Corporate"},
		},
		{
			name:    "exec with error",
			setupDB: true,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INVALID SQL").WillReturnError(assert.AnError)
			},
			sql:       "INVALID SQL",
			expectErr: true,
			errMsg:    "failed to execute SQL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			base := &BaseSQLAdapter{}
			var mock sqlmock.Sqlmock

			if tt.setupDB {
				base, mock = newMockBase(t)
				if tt.setupMock != nil {
					tt.setupMock(mock)
				}
			}

			err := base.Exec(ctx, tt.sql, tt.args...)
			if tt.expectErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
			if mock != nil {
				assert.NoError(t, mock.ExpectationsWereMet())
			}
		})
	}
}

func TestBaseSQLAdapter_Query(t *testing.T) {
	tests := []struct {
		name      string
		setupDB   bool
		setupMock func(mock sqlmock.Sqlmock)
		sql       string
		args      []any
		wantRows  int
		expectErr bool
		errMsg    string
	}{
		{
			name:      "query without connection",
			setupDB:   false,
			sql:       "SELECT 1",
			expectErr: true,
			errMsg:    "database connection not established",
		},
		{
			name:    "query success",
			setupDB: true,
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"OrderID", "Region"}).
					AddRow(1, "West").
					AddRow(2, "East")
				mock.ExpectQuery("SELECT").WillReturnRows(rows)
			},
			sql:      `SELECT "OrderID", "Region" FROM "Sales"`,
			wantRows: 2,
		},
		{
			name:    "query binds arguments",
			setupDB: true,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`WHERE "Discount" < \? OR "Discount" > \?`).
					WithArgs(0.0, 1.0).
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
			},
			sql:      `SELECT COUNT(*) FROM "Sales" WHERE "Discount" < ? OR "Discount" > ?`,
			args:     []any{0.0, 1.0},
			wantRows: 1,
		},
		{
			name:    "query with error",
			setupDB: true,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("INVALID").WillReturnError(assert.AnError)
			},
			sql:       "INVALID SQL",
			expectErr: true,
			errMsg:    "failed to execute query",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			base := &BaseSQLAdapter{}
			var mock sqlmock.Sqlmock

			if tt.setupDB {
				base, mock = newMockBase(t)
				if tt.setupMock != nil {
					tt.setupMock(mock)
				}
			}

			rows, err := base.Query(ctx, tt.sql, tt.args...)
			if tt.expectErr {
				require.Error(t, err)
				assert.Nil(t, rows)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			defer func() { _ = rows.Close() }()

			n := 0
			for rows.Next() {
				n++
			}
			require.NoError(t, rows.Err())
			assert.Equal(t, tt.wantRows, n)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestBaseSQLAdapter_Ping(t *testing.T) {
	t.Run("without connection", func(t *testing.T) {
		err := (&BaseSQLAdapter{}).Ping(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database connection not established")
	})

	t.Run("alive", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectPing()
		assert.NoError(t, (&BaseSQLAdapter{DB: db}).Ping(context.Background()))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unreachable", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectPing().WillReturnError(assert.AnError)
		err = (&BaseSQLAdapter{DB: db}).Ping(context.Background())
		require.ErrorIs(t, err, assert.AnError)
		assert.Contains(t, err.Error(), "failed to ping database")
	})
}

func TestBaseSQLAdapter_CountRows(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		want      int64
	}{
		{
			name: "counts rows",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT COUNT\(\*\) FROM "main"\."Sales"`).
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))
			},
			want: 42,
		},
		{
			name: "query error falls back to zero",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT COUNT\(\*\) FROM "main"\."Sales"`).WillReturnError(assert.AnError)
			},
			want: 0,
		},
		{
			name: "no rows falls back to zero",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT COUNT\(\*\) FROM "main"\."Sales"`).
					WillReturnRows(sqlmock.NewRows([]string{"count"}))
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base, mock := newMockBase(t)
			tt.setupMock(mock)

			assert.Equal(t, tt.want, base.CountRows(context.Background(), `"main"."Sales"`))
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestParseQualifiedName(t *testing.T) {
	d := dialect.NewDialect("t").DefaultSchema("public").Build()

	tests := []struct {
		in         string
		wantSchema string
		wantName   string
	}{
		{"Sales", "public", "Sales"},
		{"retail.Sales", "retail", "Sales"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			schema, name := ParseQualifiedName(tt.in, d)
			assert.Equal(t, tt.wantSchema, schema)
			assert.Equal(t, tt.wantName, name)
		})
	}
}

func TestBaseSQLAdapter_GetTableMetadataCommon(t *testing.T) {
	d := dialect.NewDialect("t").DefaultSchema("public").PlaceholderStyle(core.PlaceholderDollar).Build()

	t.Run("reads columns and row count", func(t *testing.T) {
		base, mock := newMockBase(t)
		mock.ExpectQuery(`FROM information_schema\.columns\s+WHERE table_schema = \$1 AND table_name = \$2`).
			WithArgs("public", "Sales").
			WillReturnRows(sqlmock.NewRows([]string{"column_name", "data_type", "is_nullable", "ordinal_position"}).
				AddRow("OrderID", "integer", "NO", 1).
				AddRow("Discount", "double precision", "YES", 2))
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM "public"\."Sales"`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))

		meta, err := base.GetTableMetadataCommon(context.Background(), "Sales", d)
		require.NoError(t, err)
		assert.Equal(t, "public", meta.Schema)
		assert.Equal(t, int64(5), meta.RowCount)
		require.Len(t, meta.Columns, 2)
		assert.False(t, meta.Columns[0].Nullable)
		assert.True(t, meta.Columns[1].Nullable)
		assert.Equal(t, core.FamilyFloat, meta.Columns[1].Family())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing table", func(t *testing.T) {
		base, mock := newMockBase(t)
		mock.ExpectQuery(`information_schema\.columns`).
			WillReturnRows(sqlmock.NewRows([]string{"column_name", "data_type", "is_nullable", "ordinal_position"}))

		_, err := base.GetTableMetadataCommon(context.Background(), "Sales", d)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "table Sales not found")
	})

	t.Run("without connection", func(t *testing.T) {
		_, err := (&BaseSQLAdapter{}).GetTableMetadataCommon(context.Background(), "Sales", d)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database connection not established")
	})
}

func TestBaseSQLAdapter_IsConnected(t *testing.T) {
	assert.False(t, (&BaseSQLAdapter{}).IsConnected())

	base, _ := newMockBase(t)
	assert.True(t, base.IsConnected())
}
