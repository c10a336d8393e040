package sqlexec

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rulego/mcpsql/logger"
	"github.com/rulego/mcpsql/schema"
	"github.com/rulego/mcpsql/sqlgen"
	"github.com/rulego/mcpsql/types"
)

const ventasDDL = `CREATE TABLE ventas (
	"Date" DATE, "Year" INTEGER, "Month" INTEGER,
	"SalesRep" TEXT, "Region" TEXT, "Amount" REAL)`

var ventasRows = [][]any{
	{"2025-07-01", 2025, 7, "Ana", "North", 40.0},
	{"2025-07-15", 2025, 7, "Bo", "South", 60.0},
	{"2025-06-30", 2025, 6, "Bo", "South", 140.0},
	{"2025-08-01", 2025, 8, "Cy", "North", 75.0},
	{"2024-07-10", 2024, 7, "Ana", "East", 10.0},
}

func newTestExecutor(t *testing.T) *Executor {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(ventasDDL)
	require.NoError(t, err)
	for _, r := range ventasRows {
		_, err = db.Exec(`INSERT INTO ventas VALUES (?, ?, ?, ?, ?, ?)`, r...)
		require.NoError(t, err)
	}
	holder := schema.NewHolder("ventas", schema.NewSQLProvider(db, "sqlite3"))
	return New(db, sqlgen.SQLite, holder, WithLogger(logger.NewDiscardLogger()))
}

func TestExecuteScenarios(t *testing.T) {
	e := newTestExecutor(t)
	ctx := context.Background()

	t.Run("sum for one month", func(t *testing.T) {
		res, err := e.Execute(ctx, "SELECT SUM(Amount) WHERE Year=2025 AND Month=7")
		require.NoError(t, err)
		assert.Equal(t, []string{"SUM(Amount)"}, res.Columns)
		assert.Equal(t, [][]any{{100.0}}, res.Rows)
	})

	t.Run("top sales rep", func(t *testing.T) {
		res, err := e.Execute(ctx, "SELECT SUM(amount) GROUP BY salesrep ORDER BY SUM(amount) DESC LIMIT 1")
		require.NoError(t, err)
		assert.Equal(t, []string{"SalesRep", "SUM(Amount)"}, res.Columns)
		assert.Equal(t, [][]any{{"Bo", 200.0}}, res.Rows)
	})

	t.Run("misspelled column", func(t *testing.T) {
		mini := "SELECT SUM(Amounnt) WHERE Year=2025"
		resp := e.Query(ctx, mini)
		require.False(t, resp.OK())
		require.NotNil(t, resp.Failure)
		assert.Equal(t, mini, resp.Failure.Query)
		assert.Contains(t, resp.Failure.Error, "no such column")
		assert.Equal(t, types.KindColumnNotFound, resp.Failure.Kind)

		_, err := e.Execute(ctx, mini)
		assert.ErrorIs(t, err, types.ErrColumnNotFound)
	})
}

func TestExecuteTemporalGroupOrder(t *testing.T) {
	e := newTestExecutor(t)
	res, err := e.Execute(context.Background(), "SELECT SUM(Amount) GROUP BY month ORDER BY SUM(Amount) DESC")
	require.NoError(t, err)
	assert.Equal(t, []string{"Month", "SUM(Amount)"}, res.Columns)
	assert.Equal(t, [][]any{
		{int64(6), 140.0},
		{int64(7), 110.0},
		{int64(8), 75.0},
	}, res.Rows)
}

func TestExecuteBetweenInclusive(t *testing.T) {
	e := newTestExecutor(t)
	res, err := e.Execute(context.Background(), "SELECT SUM(Amount) WHERE Date BETWEEN '2025-06-30' AND '2025-7-15'")
	require.NoError(t, err)
	assert.Equal(t, [][]any{{240.0}}, res.Rows)

	res, err = e.Execute(context.Background(), "SELECT COUNT(*) WHERE Date = '2025-08-01'")
	require.NoError(t, err)
	assert.Equal(t, [][]any{{int64(1)}}, res.Rows)
}

func TestExecuteLimitBounds(t *testing.T) {
	e := newTestExecutor(t)
	ctx := context.Background()

	res, err := e.Execute(ctx, "SELECT SalesRep LIMIT 0")
	require.NoError(t, err)
	assert.Empty(t, res.Rows)

	res, err = e.Execute(ctx, "SELECT SalesRep LIMIT 100")
	require.NoError(t, err)
	assert.Len(t, res.Rows, len(ventasRows))

	res, err = e.Execute(ctx, "SELECT DISTINCT salesrep ORDER BY SalesRep LIMIT 2")
	require.NoError(t, err)
	assert.Equal(t, [][]any{{"Ana"}, {"Bo"}}, res.Rows)
}

func TestExecuteEmptyQuery(t *testing.T) {
	e := newTestExecutor(t)
	resp := e.Query(context.Background(), "   ")
	require.NotNil(t, resp.Failure)
	assert.Equal(t, types.KindEmptyQuery, resp.Failure.Kind)
	assert.Equal(t, "   ", resp.Failure.Query)
}

func TestExecuteNoRowsAggregate(t *testing.T) {
	e := newTestExecutor(t)
	res, err := e.Execute(context.Background(), "SELECT SUM(Amount) WHERE Year=1999")
	require.NoError(t, err)
	assert.Equal(t, [][]any{{nil}}, res.Rows)
}

func TestExplain(t *testing.T) {
	e := newTestExecutor(t)
	stmt, err := e.Explain(context.Background(), "select avg(AMOUNT) where year = 2025")
	require.NoError(t, err)
	assert.Equal(t, `SELECT AVG("Amount") AS "AVG(Amount)" FROM "ventas" WHERE "Year"=2025;`, stmt)
}

func TestExecuteCanceledContext(t *testing.T) {
	e := newTestExecutor(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := e.Execute(ctx, "SELECT *")
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrBackendExecutionError)
}

func TestOpenSQLite(t *testing.T) {
	ctx := context.Background()
	e, err := Open(ctx, "sqlite3", ":memory:", "ventas", WithLogger(logger.NewDiscardLogger()))
	require.NoError(t, err)
	defer e.Close()
	e.DB().SetMaxOpenConns(1)
	assert.Equal(t, sqlgen.SQLite, e.Dialect())

	// No table yet: the schema cannot be loaded.
	resp := e.Query(ctx, "SELECT *")
	require.NotNil(t, resp.Failure)
	assert.Equal(t, types.KindBackendExecutionError, resp.Failure.Kind)

	_, err = e.DB().Exec(`CREATE TABLE ventas ("Amount" REAL)`)
	require.NoError(t, err)
	_, err = e.DB().Exec(`INSERT INTO ventas VALUES (1.5), (2.5)`)
	require.NoError(t, err)
	res, err := e.Execute(ctx, "SELECT SUM(amount)")
	require.NoError(t, err)
	assert.Equal(t, [][]any{{4.0}}, res.Rows)

	_, err = Open(ctx, "oracle", "", "t")
	assert.Error(t, err)
}

func TestWithANSIQuotes(t *testing.T) {
	dsn, err := withANSIQuotes("user:pw@tcp(localhost:3306)/shop")
	require.NoError(t, err)
	assert.Contains(t, dsn, "sql_mode=")
	assert.Contains(t, dsn, "ANSI_QUOTES")

	_, err = withANSIQuotes("not a dsn")
	assert.Error(t, err)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected types.ErrorKind
	}{
		{"pq undefined column", &pq.Error{Code: "42703", Message: `column "Amounnt" does not exist`}, types.KindColumnNotFound},
		{"pq undefined table", &pq.Error{Code: "42P01"}, types.KindBackendExecutionError},
		{"mysql bad field", &mysql.MySQLError{Number: 1054, Message: "Unknown column"}, types.KindColumnNotFound},
		{"mysql syntax", &mysql.MySQLError{Number: 1064}, types.KindBackendExecutionError},
		{"wrapped pq", fmt.Errorf("query: %w", &pq.Error{Code: "42703"}), types.KindColumnNotFound},
		{"sqlite text", errors.New("no such column: Amounnt"), types.KindColumnNotFound},
		{"other", errors.New("connection reset"), types.KindBackendExecutionError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, classify(tt.err))
		})
	}
}

func TestNormalize(t *testing.T) {
	now := time.Now()
	assert.Equal(t, "abc", normalize([]byte("abc"), "TEXT"))
	assert.Equal(t, 12.5, normalize([]byte("12.50"), "NUMERIC"))
	assert.Equal(t, 3.0, normalize("3", "DECIMAL"))
	assert.Equal(t, int64(42), normalize([]byte("42"), "BIGINT"))
	assert.Equal(t, int64(7), normalize([]byte("7"), "UNSIGNED INT"))
	assert.Equal(t, "x1", normalize([]byte("x1"), "INT"))
	assert.Equal(t, now, normalize(now, "TIMESTAMP"))
	assert.Nil(t, normalize(nil, "TEXT"))
}

func TestExecuteUnknownColumnOnSQLite(t *testing.T) {
	e := newTestExecutor(t)
	ctx := context.Background()

	tests := []struct {
		mini   string
		column string
	}{
		{"SELECT SUM(Amounnt) WHERE Year=2025", "Amounnt"},
		{"SELECT SalesRepp", "SalesRepp"},
		{"SELECT COUNT(*) GROUP BY Zone", "Zone"},
		{"SELECT * ORDER BY Discount DESC", "Discount"},
		{"SELECT SUM(Amount) GROUP BY Region ORDER BY MAX(Price)", "Price"},
	}
	for _, tt := range tests {
		t.Run(tt.mini, func(t *testing.T) {
			_, err := e.Execute(ctx, tt.mini)
			require.Error(t, err)
			assert.ErrorIs(t, err, types.ErrColumnNotFound)
			assert.Contains(t, err.Error(), "no such column: "+tt.column)
		})
	}
}

func TestExecuteMissingTemporalColumnOnSQLite(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	_, err = db.Exec(`CREATE TABLE ventas ("Amount" REAL)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO ventas VALUES (1.5)`)
	require.NoError(t, err)
	e := New(db, sqlgen.SQLite, schema.NewHolder("ventas", schema.NewSQLProvider(db, "sqlite3")),
		WithLogger(logger.NewDiscardLogger()))
	ctx := context.Background()

	for _, mini := range []string{
		"SELECT SUM(Amount) WHERE Year=2025",
		"SELECT SUM(Amount) WHERE Month=7",
		"SELECT * WHERE Date='2025-07-01'",
		"SELECT SUM(Amount) GROUP BY Month",
	} {
		resp := e.Query(ctx, mini)
		require.NotNil(t, resp.Failure, mini)
		assert.Equal(t, types.KindColumnNotFound, resp.Failure.Kind, mini)
	}

	res, err := e.Execute(ctx, "SELECT SUM(Amount)")
	require.NoError(t, err)
	assert.Equal(t, [][]any{{1.5}}, res.Rows)
}
