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
	"slices"

	"github.com/rulego/mcpsql/dataset"
)

// OrderByOp sorts rows by Key. The sort is stable. Nil values sort after
// everything else ascending and before everything else descending.
type OrderByOp struct {
	BaseOp
	Key  string
	Desc bool
}

func (o *OrderByOp) Apply(ctx context.Context, in *dataset.Table) (*dataset.Table, error) {
	idx, err := columnIndexes(in, []string{o.Key})
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	k := idx[0]
	rows := make([]dataset.Row, in.Len())
	for i := range rows {
		rows[i] = in.Row(i)
	}
	slices.SortStableFunc(rows, func(a, b dataset.Row) int {
		c := compareNullsLast(a[k], b[k])
		if o.Desc {
			return -c
		}
		return c
	})

	out := dataset.NewBuilder(in.Columns()...)
	for _, r := range rows {
		out.Add(r)
	}
	return out.Build(), nil
}

func compareNullsLast(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	return dataset.Compare(a, b)
}

func (o *OrderByOp) Explain() string {
	dir := "ASC"
	if o.Desc {
		dir = "DESC"
	}
	return "OrderBy(" + o.Key + " " + dir + ")"
}
