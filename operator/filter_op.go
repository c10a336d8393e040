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

	"github.com/rulego/mcpsql/condition"
	"github.com/rulego/mcpsql/dataset"
	"github.com/rulego/mcpsql/utils/cast"
	"github.com/rulego/mcpsql/utils/timex"
)

// FilterOp keeps the rows that satisfy Condition. The condition sees the
// year, month and calendar day read from the named columns; an empty
// column name leaves that variable nil.
type FilterOp struct {
	BaseOp
	Condition   condition.Condition
	YearColumn  string
	MonthColumn string
	DateColumn  string
}

func (o *FilterOp) Apply(ctx context.Context, in *dataset.Table) (*dataset.Table, error) {
	year, err := optionalIndex(in, o.YearColumn)
	if err != nil {
		return nil, err
	}
	month, err := optionalIndex(in, o.MonthColumn)
	if err != nil {
		return nil, err
	}
	date, err := optionalIndex(in, o.DateColumn)
	if err != nil {
		return nil, err
	}

	out := dataset.NewBuilder(in.Columns()...)
	env := make(map[string]any, 3)
	for i := 0; i < in.Len(); i++ {
		if err := o.canceled(ctx, i); err != nil {
			return nil, err
		}
		row := in.Row(i)
		env[condition.VarYear] = intAt(row, year)
		env[condition.VarMonth] = intAt(row, month)
		env[condition.VarDay] = dayAt(row, date)
		if o.Condition.Evaluate(env) {
			out.Add(row)
		}
	}
	return out.Build(), nil
}

func (o *FilterOp) Explain() string {
	return "Filter(" + describe(o.Condition) + ")"
}

func describe(c condition.Condition) string {
	if s, ok := c.(interface{ String() string }); ok {
		return s.String()
	}
	return "?"
}

func optionalIndex(t *dataset.Table, name string) (int, error) {
	if name == "" {
		return -1, nil
	}
	idx, err := columnIndexes(t, []string{name})
	if err != nil {
		return -1, err
	}
	return idx[0], nil
}

func intAt(row dataset.Row, i int) any {
	if i < 0 {
		return nil
	}
	n, ok := cast.ToInt(row[i])
	if !ok {
		return nil
	}
	return int(n)
}

func dayAt(row dataset.Row, i int) any {
	if i < 0 {
		return nil
	}
	t, ok := dataset.ToTime(row[i])
	if !ok {
		return nil
	}
	return timex.FormatDay(t)
}
