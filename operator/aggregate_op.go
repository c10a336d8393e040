/*
 * Copyright 2025 The RuleGo Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package operator

import (
	"context"
	"fmt"
	"strings"

	"github.com/rulego/mcpsql/builtin"
	"github.com/rulego/mcpsql/dataset"
	"github.com/rulego/mcpsql/rsql"
)

// AggregateOp folds rows into one output row per group. The output has the
// group column first, when there is one, followed by one column per
// aggregate named by its label. Without GroupBy a single row is produced,
// even for an empty input. With GroupBy and no aggregates the output is
// the distinct group values.
type AggregateOp struct {
	BaseOp
	GroupBy    string
	Aggregates []rsql.Aggregate
}

func (o *AggregateOp) Apply(ctx context.Context, in *dataset.Table) (*dataset.Table, error) {
	groupCol := -1
	if o.GroupBy != "" {
		idx, err := columnIndexes(in, []string{o.GroupBy})
		if err != nil {
			return nil, err
		}
		groupCol = idx[0]
	}
	argCols := make([]int, len(o.Aggregates))
	for i, agg := range o.Aggregates {
		argCols[i] = -1
		if agg.Star {
			continue
		}
		idx, err := columnIndexes(in, []string{agg.Column})
		if err != nil {
			return nil, err
		}
		argCols[i] = idx[0]
	}

	out := dataset.NewBuilder(o.Columns()...)
	for n, g := range groupRows(in, groupCol) {
		if err := o.canceled(ctx, n); err != nil {
			return nil, err
		}
		row := make(dataset.Row, 0, len(o.Aggregates)+1)
		if groupCol >= 0 {
			row = append(row, g.key)
		}
		for i, agg := range o.Aggregates {
			values := make([]any, len(g.rows))
			if argCols[i] >= 0 {
				for j, r := range g.rows {
					values[j] = in.Value(r, argCols[i])
				}
			}
			v, err := builtin.Apply(agg, values)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", agg.Label(), err)
			}
			row = append(row, v)
		}
		out.Add(row)
	}
	return out.Build(), nil
}

// Columns returns the output column names.
func (o *AggregateOp) Columns() []string {
	var cols []string
	if o.GroupBy != "" {
		cols = append(cols, o.GroupBy)
	}
	for _, agg := range o.Aggregates {
		cols = append(cols, agg.Label())
	}
	return cols
}

func (o *AggregateOp) Explain() string {
	labels := make([]string, len(o.Aggregates))
	for i, agg := range o.Aggregates {
		labels[i] = agg.Label()
	}
	if o.GroupBy == "" {
		return "Aggregate(" + strings.Join(labels, ", ") + ")"
	}
	return "Aggregate(" + strings.Join(append([]string{"group=" + o.GroupBy}, labels...), ", ") + ")"
}
