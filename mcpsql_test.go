package mcpsql

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rulego/mcpsql/dataset"
	"github.com/rulego/mcpsql/logger"
	"github.com/rulego/mcpsql/schema"
	"github.com/rulego/mcpsql/tabular"
	"github.com/rulego/mcpsql/types"
)

type stubBackend struct {
	execute func(ctx context.Context, mini string) (*types.Result, error)
}

func (s *stubBackend) Execute(ctx context.Context, mini string) (*types.Result, error) {
	return s.execute(ctx, mini)
}

func (s *stubBackend) Explain(context.Context, string) (string, error) {
	return "stub", nil
}

func (s *stubBackend) Schema(context.Context) (*schema.Schema, error) {
	return schema.FromNames("stub", "a"), nil
}

func newSheetEngine(t *testing.T) *Engine {
	t.Helper()
	tbl := dataset.MustNewTable(
		[]string{"Date", "Year", "Month", "SalesRep", "Amount"},
		[]dataset.Row{
			{time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), int64(2025), int64(7), "Ana", 40.0},
			{time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC), int64(2025), int64(7), "Bo", 60.0},
			{time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC), int64(2025), int64(6), "Bo", 140.0},
		})
	b := tabular.New(&dataset.Loaded{Table: tbl, DateColumn: "Date"}, "ventas", tabular.WithLogger(logger.NewDiscardLogger()))
	return New(b, WithDiscardLog())
}

func TestEngineQuery(t *testing.T) {
	e := newSheetEngine(t)
	ctx := context.Background()

	resp := e.Query(ctx, "SELECT SUM(Amount) WHERE Year=2025 AND Month=7")
	require.True(t, resp.OK())
	out, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"columns":["SUM(Amount)"],"rows":[[100]]}`, string(out))

	resp = e.Query(ctx, "SELECT SUM(Amounnt)")
	require.False(t, resp.OK())
	out, err = json.Marshal(resp)
	require.NoError(t, err)
	var failure map[string]any
	require.NoError(t, json.Unmarshal(out, &failure))
	assert.Equal(t, "SELECT SUM(Amounnt)", failure["query"])
	assert.Contains(t, failure["error"], "Amounnt")

	plan, err := e.Explain(ctx, "SELECT SUM(Amount) GROUP BY SalesRep")
	require.NoError(t, err)
	assert.Equal(t, "Aggregate(group=SalesRep, SUM(Amount))", plan)

	s, err := e.Schema(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ventas", s.Table())
}

func TestEngineRecoversPanics(t *testing.T) {
	e := New(&stubBackend{execute: func(context.Context, string) (*types.Result, error) {
		panic("boom")
	}}, WithDiscardLog())

	_, err := e.Execute(context.Background(), "SELECT *")
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrBackendExecutionError)
	assert.Contains(t, err.Error(), "boom")

	resp := e.Query(context.Background(), "SELECT *")
	assert.False(t, resp.OK())
	assert.Equal(t, "SELECT *", resp.Failure.Query)
}

func TestEngineTimeout(t *testing.T) {
	e := New(&stubBackend{execute: func(ctx context.Context, mini string) (*types.Result, error) {
		<-ctx.Done()
		return nil, types.WrapQueryError(types.KindBackendExecutionError, mini, ctx.Err())
	}}, WithDiscardLog(), WithQueryTimeout(20*time.Millisecond))

	start := time.Now()
	_, err := e.Execute(context.Background(), "SELECT *")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestDecodeActionPlan(t *testing.T) {
	tests := []struct {
		name string
		text string
		want ActionPlan
	}{
		{
			name: "query",
			text: `{"action":"query_postgres","query":"SELECT SUM(Amount)","need_data":true}`,
			want: ActionPlan{Action: ActionQuery, Query: "SELECT SUM(Amount)", NeedData: true},
		},
		{
			name: "fenced",
			text: "```json\n{\"action\":\"summary\",\"need_data\":false}\n```",
			want: ActionPlan{Action: ActionSummary},
		},
		{
			name: "not json",
			text: "Sure! Here is the plan.",
			want: ActionPlan{Action: ActionSummary},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DecodeActionPlan(tt.text))
		})
	}
}

func TestRunPlan(t *testing.T) {
	e := newSheetEngine(t)
	ctx := context.Background()

	resp, ran := e.RunPlan(ctx, ActionPlan{Action: ActionQuery, Query: "SELECT COUNT(*)", NeedData: true})
	require.True(t, ran)
	require.True(t, resp.OK())
	assert.Equal(t, [][]any{{int64(3)}}, resp.Result.Rows)

	_, ran = e.RunPlan(ctx, ActionPlan{Action: ActionQuery, Query: "SELECT COUNT(*)"})
	assert.False(t, ran)
	_, ran = e.RunPlan(ctx, ActionPlan{Action: ActionSummary, NeedData: true})
	assert.False(t, ran)
}
