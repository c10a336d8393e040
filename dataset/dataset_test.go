package dataset

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewTable(t *testing.T) {
	_, err := NewTable([]string{"a", "a"}, nil)
	assert.Error(t, err)

	_, err = NewTable([]string{"a", "b"}, []Row{{1}})
	assert.Error(t, err)

	src := []Row{{1, "x"}}
	tbl, err := NewTable([]string{"a", "b"}, src)
	require.NoError(t, err)
	src[0][0] = 99
	assert.Equal(t, 1, tbl.Value(0, 0), "rows are copied")

	i, ok := tbl.ColumnIndex("b")
	assert.True(t, ok)
	assert.Equal(t, 1, i)
	assert.False(t, tbl.HasColumn("B"))
	assert.Equal(t, 1, tbl.Len())
}

func TestKeyOf(t *testing.T) {
	assert.Equal(t, KeyOf(int64(7)), KeyOf(7.0))
	assert.Equal(t, KeyOf(day(2025, 1, 1)), KeyOf(day(2025, 1, 1).In(time.FixedZone("x", 3600))))
	assert.NotEqual(t, KeyOf("7"), KeyOf(7))
	assert.NotEqual(t, KeyOf(nil), KeyOf(""))
	assert.NotEqual(t, KeyOf("a", "b"), KeyOf("ab"))
}

func TestDetectDateColumn(t *testing.T) {
	c, ok := DetectDateColumn([]string{"Rep", "Fecha de venta", "OrderDate"})
	assert.True(t, ok)
	assert.Equal(t, "Fecha de venta", c)

	_, ok = DetectDateColumn([]string{"Rep", "Amount"})
	assert.False(t, ok)
}

func TestDerive(t *testing.T) {
	tbl := MustNewTable([]string{"Date", "Amount", "Year"}, []Row{
		{"2025-07-15", int64(10), "stale"},
		{day(2024, 12, 31), int64(20), "stale"},
		{"not a date", int64(30), "stale"},
	})
	out, err := Derive(tbl, "Date")
	require.NoError(t, err)

	assert.Equal(t, []string{"Date", "Amount", "Year", "Month", "Day"}, out.Columns())
	assert.Equal(t, Row{day(2025, 7, 15), int64(10), int64(2025), int64(7), day(2025, 7, 15)}, out.Row(0))
	assert.Equal(t, Row{day(2024, 12, 31), int64(20), int64(2024), int64(12), day(2024, 12, 31)}, out.Row(1))
	assert.Equal(t, Row{nil, int64(30), nil, nil, nil}, out.Row(2))

	// The source is untouched.
	assert.Equal(t, "2025-07-15", tbl.Value(0, 0))

	_, err = Derive(tbl, "Missing")
	assert.Error(t, err)
}

func TestToTimeExcelSerial(t *testing.T) {
	got, ok := ToTime(45839.0)
	require.True(t, ok)
	assert.Equal(t, "2025-07-01", got.Format("2006-01-02"))

	_, ok = ToTime(nil)
	assert.False(t, ok)
	_, ok = ToTime(true)
	assert.False(t, ok)
}

func TestLoadCSV(t *testing.T) {
	fs := afero.NewMemMapFs()
	content := "Fecha,SalesRep,Amount,Units\n" +
		"2025-07-01,Ana,40.5,2\n" +
		"\n" +
		"2025-07-15,Bo,60,3\n" +
		"2025-08-01,Cy,,x\n"
	require.NoError(t, afero.WriteFile(fs, "/data/ventas.csv", []byte(content), 0o644))

	loaded, err := LoadFile(fs, "/data/ventas.csv")
	require.NoError(t, err)
	assert.Equal(t, "Fecha", loaded.DateColumn)
	assert.Equal(t, []string{"Fecha", "SalesRep", "Amount", "Units", "Year", "Month", "Day"}, loaded.Columns())
	require.Equal(t, 3, loaded.Len())
	assert.Equal(t, Row{day(2025, 7, 1), "Ana", 40.5, "2", int64(2025), int64(7), day(2025, 7, 1)}, loaded.Row(0))
	assert.Equal(t, 60.0, loaded.Value(1, 2))
	assert.Nil(t, loaded.Value(2, 2))
	assert.Equal(t, "x", loaded.Value(2, 3))
}

func TestLoadCSVOptions(t *testing.T) {
	fs := afero.NewMemMapFs()
	content := "When,Created date,Amount,Amount\n2025-01-02,junk,1,2\n"
	require.NoError(t, afero.WriteFile(fs, "x.csv", []byte(content), 0o644))

	loaded, err := LoadFile(fs, "x.csv", WithDateColumn("When"))
	require.NoError(t, err)
	assert.Equal(t, "When", loaded.DateColumn)
	assert.Equal(t, []string{"When", "Created date", "Amount", "Amount.1", "Year", "Month", "Day"}, loaded.Columns())
	assert.Equal(t, int64(1), loaded.Value(0, 2))
	assert.Equal(t, int64(2), loaded.Value(0, 3))
	assert.Equal(t, int64(2025), loaded.Value(0, 4))

	plain, err := LoadFile(fs, "x.csv", WithoutDerivedColumns())
	require.NoError(t, err)
	assert.Empty(t, plain.DateColumn)
	assert.Equal(t, 4, len(plain.Columns()))
}

func TestLoadXLSX(t *testing.T) {
	wb := excelize.NewFile()
	require.NoError(t, wb.SetSheetRow("Sheet1", "A1", &[]any{"Date", "SalesRep", "Amount"}))
	require.NoError(t, wb.SetSheetRow("Sheet1", "A2", &[]any{"2025-07-01", "Ana", 40}))
	require.NoError(t, wb.SetSheetRow("Sheet1", "A3", &[]any{"2025-07-15", "Bo", 60}))
	_, err := wb.NewSheet("Other")
	require.NoError(t, err)
	require.NoError(t, wb.SetSheetRow("Other", "A1", &[]any{"Region"}))
	require.NoError(t, wb.SetSheetRow("Other", "A2", &[]any{"North"}))
	buf, err := wb.WriteToBuffer()
	require.NoError(t, err)

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "ventas.xlsx", buf.Bytes(), 0o644))

	loaded, err := LoadFile(fs, "ventas.xlsx")
	require.NoError(t, err)
	assert.Equal(t, []string{"Date", "SalesRep", "Amount", "Year", "Month", "Day"}, loaded.Columns())
	assert.Equal(t, 2, loaded.Len())
	assert.Equal(t, int64(60), loaded.Value(1, 2))
	assert.Equal(t, int64(7), loaded.Value(1, 4))

	other, err := LoadFile(fs, "ventas.xlsx", WithSheet("Other"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Region"}, other.Columns())
	assert.Equal(t, "North", other.Value(0, 0))
}

func TestLoadXLSXDateCells(t *testing.T) {
	wb := excelize.NewFile()
	require.NoError(t, wb.SetSheetRow("Sheet1", "A1", &[]any{"Date", "Amount"}))
	require.NoError(t, wb.SetSheetRow("Sheet1", "A2", &[]any{day(2025, 9, 15), 100}))
	require.NoError(t, wb.SetSheetRow("Sheet1", "A3", &[]any{day(2025, 7, 1), 5}))
	// A month-year display format must not hide the day.
	style, err := wb.NewStyle(&excelize.Style{NumFmt: 17})
	require.NoError(t, err)
	require.NoError(t, wb.SetCellStyle("Sheet1", "A3", "A3", style))
	buf, err := wb.WriteToBuffer()
	require.NoError(t, err)

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "ventas.xlsx", buf.Bytes(), 0o644))

	loaded, err := LoadFile(fs, "ventas.xlsx")
	require.NoError(t, err)
	assert.Equal(t, "Date", loaded.DateColumn)
	require.Equal(t, 2, loaded.Len())

	tests := []struct {
		row         int
		date        string
		year, month int64
		amount      int64
	}{
		{0, "2025-09-15", 2025, 9, 100},
		{1, "2025-07-01", 2025, 7, 5},
	}
	for _, tt := range tests {
		when, ok := loaded.Value(tt.row, 0).(time.Time)
		require.True(t, ok, "row %d date is %v", tt.row, loaded.Value(tt.row, 0))
		assert.Equal(t, tt.date, when.Format("2006-01-02"))
		assert.Equal(t, tt.amount, loaded.Value(tt.row, 1))
		assert.Equal(t, tt.year, loaded.Value(tt.row, 2))
		assert.Equal(t, tt.month, loaded.Value(tt.row, 3))
	}
}

func TestLoadFileErrors(t *testing.T) {
	fs := afero.NewMemMapFs()
	_, err := LoadFile(fs, "missing.csv")
	assert.Error(t, err)

	require.NoError(t, afero.WriteFile(fs, "notes.txt", []byte("x"), 0o644))
	_, err = LoadFile(fs, "notes.txt")
	assert.Error(t, err)

	require.NoError(t, afero.WriteFile(fs, "empty.csv", nil, 0o644))
	_, err = LoadFile(fs, "empty.csv")
	assert.Error(t, err)
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b any
		want int
	}{
		{int64(2), 10.5, -1},
		{10, int64(10), 0},
		{"10", "9", -1},
		{day(2025, 1, 2), day(2024, 12, 31), 1},
		{"b", "a", 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Compare(tt.a, tt.b), "%v vs %v", tt.a, tt.b)
	}
	assert.True(t, IsNumber(uint8(1)))
	assert.False(t, IsNumber("1"))
}
