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

package planner

import (
	"github.com/rulego/mcpsql/builtin"
	"github.com/rulego/mcpsql/operator"
	"github.com/rulego/mcpsql/rsql"
)

// GroupByPlan folds rows when the command aggregates or groups. An ORDER
// BY on a different aggregate than the selected one is computed as an
// extra column that LookFieldPlan drops again.
type GroupByPlan struct{}

func (p *GroupByPlan) Plan(st *planState) error {
	r := st.cmd
	if !r.HasAggregate() && r.GroupBy == "" {
		return nil
	}
	// Every plain selected column must be the group key.
	for _, c := range r.Select.Columns {
		if c != r.GroupBy {
			return backendError(r, "column %q must appear in the GROUP BY clause or be used in an aggregate function", c)
		}
	}
	if !r.HasAggregate() {
		op := &operator.AggregateOp{GroupBy: r.GroupBy}
		st.AddOperators(op)
		st.columns = op.Columns()
		st.visible = append([]string(nil), r.Select.Columns...)
		st.grouped = true
		return nil
	}

	aggs := []rsql.Aggregate{*r.Select.Aggregate}
	if ob := r.EffectiveOrder(); ob != nil && ob.Aggregate != nil && *ob.Aggregate != aggs[0] {
		aggs = append(aggs, *ob.Aggregate)
	}
	for _, agg := range aggs {
		fn, ok := builtin.Lookup(agg.Func)
		if !ok {
			return backendError(r, "unknown aggregate function %s", agg.Func)
		}
		if agg.Star && !fn.AllowStar {
			return backendError(r, "%s(*) is not supported", agg.Func)
		}
	}
	op := &operator.AggregateOp{GroupBy: r.GroupBy, Aggregates: aggs}
	st.AddOperators(op)
	st.columns = op.Columns()
	if len(aggs) > 1 {
		st.visible = st.columns[:len(st.columns)-1]
	}
	st.grouped = true
	return nil
}

func (p *GroupByPlan) Type() string {
	return "GroupByPlan"
}
