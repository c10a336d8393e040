package schema

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openSQLite(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	_, err = db.Exec(`CREATE TABLE ventas ("Date" DATE, "Year" INTEGER, "Month" INTEGER, "SalesRep" TEXT, "Amount" REAL)`)
	require.NoError(t, err)
	return db
}

func TestSQLProviderSQLite(t *testing.T) {
	db := openSQLite(t)
	p := NewSQLProvider(db, "sqlite3")

	cols, err := p.Columns(context.Background(), "ventas")
	require.NoError(t, err)
	assert.Equal(t, []Column{
		{Name: "Date", DataType: "DATE"},
		{Name: "Year", DataType: "INTEGER"},
		{Name: "Month", DataType: "INTEGER"},
		{Name: "SalesRep", DataType: "TEXT"},
		{Name: "Amount", DataType: "REAL"},
	}, cols)

	_, err = p.Columns(context.Background(), "missing")
	assert.Error(t, err)
}

func TestSQLProviderUnsupportedDriver(t *testing.T) {
	p := NewSQLProvider(nil, "oracle")
	_, err := p.Columns(context.Background(), "t")
	assert.EqualError(t, err, `unsupported driver "oracle"`)
}

func TestHolderReload(t *testing.T) {
	db := openSQLite(t)
	h := NewHolder("ventas", NewSQLProvider(db, "sqlite3"))
	assert.Nil(t, h.Current())

	s, err := h.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, s.Len())
	assert.Same(t, s, h.Current())

	_, err = db.Exec(`ALTER TABLE ventas ADD COLUMN "Region" TEXT`)
	require.NoError(t, err)

	// The old snapshot is never mutated.
	fresh, err := h.Reload(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 6, fresh.Len())
	assert.Equal(t, 5, s.Len())
	assert.Equal(t, "Region", fresh.Resolve("region"))
	assert.Equal(t, "region", s.Resolve("region"))
}

func TestHolderReloadErrorKeepsSnapshot(t *testing.T) {
	fail := false
	h := NewHolder("t", ProviderFunc(func(ctx context.Context, table string) ([]Column, error) {
		if fail {
			return nil, errors.New("catalog unavailable")
		}
		return []Column{{Name: "A"}}, nil
	}))
	first, err := h.Reload(context.Background())
	require.NoError(t, err)

	fail = true
	_, err = h.Reload(context.Background())
	assert.Error(t, err)
	assert.Same(t, first, h.Current())
}

func TestHolderConcurrentReaders(t *testing.T) {
	h := NewHolder("t", Static("A", "B"))
	_, err := h.Reload(context.Background())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%4 == 0 {
				_, _ = h.Reload(context.Background())
				return
			}
			assert.Equal(t, "A", h.Current().Resolve("a"))
		}(i)
	}
	wg.Wait()
}
