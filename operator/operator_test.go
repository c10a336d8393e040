package operator

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rulego/mcpsql/condition"
	"github.com/rulego/mcpsql/dataset"
	"github.com/rulego/mcpsql/rsql"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sales() *dataset.Table {
	return dataset.MustNewTable(
		[]string{"Date", "Year", "Month", "SalesRep", "Amount"},
		[]dataset.Row{
			{date(2025, 7, 1), int64(2025), int64(7), "Ana", 40.0},
			{date(2025, 7, 15), int64(2025), int64(7), "Bo", 60.0},
			{date(2025, 6, 30), int64(2025), int64(6), "Bo", 140.0},
			{date(2025, 8, 1), int64(2025), int64(8), "Cy", nil},
			{date(2024, 7, 10), int64(2024), int64(7), "Ana", 10.0},
		})
}

func rows(t *dataset.Table) [][]any {
	out := make([][]any, t.Len())
	for i := range out {
		out[i] = []any(t.Row(i))
	}
	return out
}

func TestFilterOp(t *testing.T) {
	c, err := condition.FromPredicates([]rsql.Predicate{
		{Kind: rsql.PredicateYear, Value: 2025},
		{Kind: rsql.PredicateDateBetween, From: "2025-07-01", To: "2025-08-01"},
	})
	require.NoError(t, err)
	op := &FilterOp{Condition: c, YearColumn: "Year", DateColumn: "Date"}
	out, err := op.Apply(context.Background(), sales())
	require.NoError(t, err)
	assert.Equal(t, 3, out.Len())
	assert.Equal(t, "Ana", out.Value(0, 3))
	assert.Equal(t, "Cy", out.Value(2, 3))
	assert.Contains(t, op.Explain(), "year == 2025")

	op.MonthColumn = "Missing"
	_, err = op.Apply(context.Background(), sales())
	var missing *MissingColumnError
	assert.ErrorAs(t, err, &missing)
}

func TestProjectOp(t *testing.T) {
	out, err := (&ProjectOp{Columns: []string{"SalesRep", "Year"}}).Apply(context.Background(), sales())
	require.NoError(t, err)
	assert.Equal(t, []string{"SalesRep", "Year"}, out.Columns())
	assert.Equal(t, []any{"Ana", int64(2025)}, rows(out)[0])
	assert.Equal(t, 5, out.Len())

	out, err = (&ProjectOp{Columns: []string{"SalesRep"}, Distinct: true}).Apply(context.Background(), sales())
	require.NoError(t, err)
	assert.Equal(t, [][]any{{"Ana"}, {"Bo"}, {"Cy"}}, rows(out))
}

func TestAggregateOp(t *testing.T) {
	sum := rsql.Aggregate{Func: rsql.AggSum, Column: "Amount"}
	count := rsql.Aggregate{Func: rsql.AggCount, Star: true}

	op := &AggregateOp{GroupBy: "SalesRep", Aggregates: []rsql.Aggregate{sum, count}}
	out, err := op.Apply(context.Background(), sales())
	require.NoError(t, err)
	assert.Equal(t, []string{"SalesRep", "SUM(Amount)", "COUNT(*)"}, out.Columns())
	assert.Equal(t, [][]any{
		{"Ana", 50.0, int64(2)},
		{"Bo", 200.0, int64(2)},
		{"Cy", nil, int64(1)},
	}, rows(out))
	assert.Equal(t, "Aggregate(group=SalesRep, SUM(Amount), COUNT(*))", op.Explain())

	empty := dataset.MustNewTable(sales().Columns(), nil)
	out, err = (&AggregateOp{Aggregates: []rsql.Aggregate{sum, count}}).Apply(context.Background(), empty)
	require.NoError(t, err)
	assert.Equal(t, [][]any{{nil, int64(0)}}, rows(out))

	out, err = (&AggregateOp{GroupBy: "SalesRep", Aggregates: []rsql.Aggregate{sum}}).Apply(context.Background(), empty)
	require.NoError(t, err)
	assert.Equal(t, 0, out.Len())

	out, err = (&AggregateOp{GroupBy: "Month"}).Apply(context.Background(), sales())
	require.NoError(t, err)
	assert.Equal(t, [][]any{{int64(7)}, {int64(6)}, {int64(8)}}, rows(out))
}

func TestOrderByOp(t *testing.T) {
	out, err := (&OrderByOp{Key: "Amount"}).Apply(context.Background(), sales())
	require.NoError(t, err)
	var got []any
	for _, r := range rows(out) {
		got = append(got, r[4])
	}
	assert.Equal(t, []any{10.0, 40.0, 60.0, 140.0, nil}, got)

	out, err = (&OrderByOp{Key: "Amount", Desc: true}).Apply(context.Background(), sales())
	require.NoError(t, err)
	got = got[:0]
	for _, r := range rows(out) {
		got = append(got, r[4])
	}
	assert.Equal(t, []any{nil, 140.0, 60.0, 40.0, 10.0}, got)

	// Stable for equal keys.
	out, err = (&OrderByOp{Key: "Month"}).Apply(context.Background(), sales())
	require.NoError(t, err)
	var reps []any
	for _, r := range rows(out) {
		reps = append(reps, r[3])
	}
	assert.Equal(t, []any{"Bo", "Ana", "Bo", "Ana", "Cy"}, reps)
}

func TestLimitOp(t *testing.T) {
	for _, n := range []int{0, 2, 100} {
		out, err := (&LimitOp{N: n}).Apply(context.Background(), sales())
		require.NoError(t, err)
		assert.Equal(t, min(n, 5), out.Len())
	}
}

func TestCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := (&ProjectOp{Columns: []string{"Year"}}).Apply(ctx, sales())
	assert.ErrorIs(t, err, context.Canceled)
}
