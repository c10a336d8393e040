package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/rulego/mcpsql/config"
)

const ventasCSV = "Date,SalesRep,Amount\n" +
	"2025-07-01,Ana,40\n" +
	"2025-07-15,Ana,60\n" +
	"2025-07-20,Bo,30\n" +
	"2025-06-30,Bo,999\n"

// run executes the CLI against an in-memory filesystem holding ventas.csv.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	for _, env := range []string{"MCP_DRIVER", "MCP_DSN", "EXCEL_PATH", "EXCEL_SHEET", "TABLE_NAME", "MCP_LOG_LEVEL", "MCP_QUERY_TIMEOUT"} {
		t.Setenv(env, "")
	}

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/data/ventas.csv", []byte(ventasCSV), 0o644))
	saved := config.AppFs
	config.AppFs = fs
	t.Cleanup(func() { config.AppFs = saved })

	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--log-level", "off"}, args...))
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestQueryTable(t *testing.T) {
	out, _, err := run(t, "query", "--sheet", "/data/ventas.csv",
		"SELECT SUM(Amount) WHERE Year=2025 AND Month=7")
	require.NoError(t, err)
	assert.Contains(t, out, "SUM(Amount)")
	assert.Contains(t, out, "| 130")
	assert.Contains(t, out, "(1 rows)")
}

func TestQueryJSON(t *testing.T) {
	out, _, err := run(t, "query", "--sheet", "/data/ventas.csv", "-f", "json",
		"SELECT SalesRep, SUM(Amount) WHERE Month=7 GROUP BY SalesRep ORDER BY SUM(Amount) DESC LIMIT 1")
	require.NoError(t, err)

	var got struct {
		Columns []string `json:"columns"`
		Rows    [][]any  `json:"rows"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []string{"SalesRep", "SUM(Amount)"}, got.Columns)
	assert.Equal(t, [][]any{{"Ana", 100.0}}, got.Rows)
}

func TestQueryFailure(t *testing.T) {
	out, errOut, err := run(t, "query", "--sheet", "/data/ventas.csv", "-f", "yaml", "SELECT Nope")
	assert.ErrorIs(t, err, errReported)
	assert.Empty(t, errOut)

	var failure map[string]string
	require.NoError(t, yaml.Unmarshal([]byte(out), &failure))
	assert.Equal(t, "SELECT Nope", failure["query"])
	assert.Equal(t, "ColumnNotFound", failure["kind"])
	assert.Contains(t, failure["error"], "Nope")

	_, errOut, err = run(t, "query", "--sheet", "/data/ventas.csv", "SELECT Nope")
	assert.ErrorIs(t, err, errReported)
	assert.Contains(t, errOut, "error: ")
	assert.Contains(t, errOut, "query: SELECT Nope")
}

func TestQueryMissingSheet(t *testing.T) {
	_, errOut, err := run(t, "query", "--sheet", "/data/missing.csv", "SELECT *")
	assert.ErrorIs(t, err, errReported)
	assert.Contains(t, errOut, "missing.csv")
}

func TestCompileOffline(t *testing.T) {
	out, _, err := run(t, "compile", "--columns", "Date,Amount",
		"SELECT SUM(Amount) WHERE Year=2025")
	require.NoError(t, err)
	assert.Contains(t, out, `SUM("Amount")`)
	assert.Contains(t, out, `FROM "ventas"`)
	assert.Contains(t, out, "2025")
}

func TestCompileSheetPlan(t *testing.T) {
	out, _, err := run(t, "compile", "--sheet", "/data/ventas.csv", "SELECT SalesRep LIMIT 2")
	require.NoError(t, err)
	assert.Equal(t, "Project(SalesRep) -> Limit(2)\n", out)
}

func TestSchema(t *testing.T) {
	out, _, err := run(t, "schema", "--sheet", "/data/ventas.csv", "-f", "json")
	require.NoError(t, err)

	var cols []map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &cols))
	require.Len(t, cols, 6)
	assert.Equal(t, map[string]string{"column": "Date", "type": "date"}, cols[0])
	assert.Equal(t, map[string]string{"column": "Amount", "type": "integer"}, cols[2])
	assert.Equal(t, "Year", cols[3]["column"])
}

func TestInvalidFlags(t *testing.T) {
	_, _, err := run(t, "schema", "--sheet", "/data/ventas.csv", "-f", "xml")
	assert.Error(t, err)

	_, _, err = run(t, "query", "--log-level", "loud", "SELECT *")
	assert.Error(t, err)
}
