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
	"slices"

	"github.com/rulego/mcpsql/dataset"
	"github.com/rulego/mcpsql/rsql"
	"github.com/rulego/mcpsql/schema"
	"github.com/rulego/mcpsql/types"
)

// LogicalPlan contributes the operators for one clause.
type LogicalPlan interface {
	Plan(st *planState) error
	Type() string
}

// selectPlans run in this order; the order is the execution order of
// the operators they add.
var selectPlans = []LogicalPlan{
	&FilterPlan{},
	&GroupByPlan{},
	&OrderByPlan{},
	&LookFieldPlan{},
	&LimitPlan{},
}

// planState carries what earlier clause plans decided.
type planState struct {
	*BaseLogicalPlan
	cmd *schema.ResolvedCommand
	src *dataset.Table
	// columns of the working table after the operators added so far
	columns []string
	// visible lists the output columns when they differ from columns
	visible []string
	// grouped is set once rows have been folded by AggregateOp
	grouped bool
}

// Build validates r against tbl and plans its execution. Failures are
// *types.QueryError values: ColumnNotFound for names tbl lacks,
// UnsupportedQuery for select shapes the backend refuses and
// BackendExecutionError for queries a SQL database would reject.
func Build(r *schema.ResolvedCommand, tbl *dataset.Table) (*Plan, error) {
	if err := validate(r, tbl); err != nil {
		return nil, err
	}
	st := &planState{
		BaseLogicalPlan: &BaseLogicalPlan{},
		cmd:             r,
		src:             tbl,
		columns:         tbl.Columns(),
	}
	for _, p := range selectPlans {
		if err := p.Plan(st); err != nil {
			return nil, err
		}
	}
	return &Plan{BaseLogicalPlan: st.BaseLogicalPlan, query: r.Text}, nil
}

func validate(r *schema.ResolvedCommand, tbl *dataset.Table) error {
	switch {
	case r.Select.Kind == rsql.SelectNone:
		return types.NewQueryError(types.KindUnsupportedQuery, r.Text, "select list is empty or not understood")
	case r.Select.Kind == rsql.SelectAll && r.GroupBy != "":
		return types.NewQueryError(types.KindUnsupportedQuery, r.Text, "SELECT * cannot be combined with GROUP BY")
	}

	var needed []string
	needed = append(needed, r.Select.Columns...)
	if r.HasAggregate() && !r.Select.Aggregate.Star {
		needed = append(needed, r.Select.Aggregate.Column)
	}
	if r.GroupBy != "" {
		needed = append(needed, r.GroupBy)
	}
	for _, p := range r.Where {
		switch p.Kind {
		case rsql.PredicateYear:
			needed = append(needed, r.YearColumn)
		case rsql.PredicateMonth:
			needed = append(needed, r.MonthColumn)
		default:
			needed = append(needed, r.DateColumn)
		}
	}
	if ob := r.EffectiveOrder(); ob != nil {
		if ob.Aggregate != nil {
			if !ob.Aggregate.Star {
				needed = append(needed, ob.Aggregate.Column)
			}
		} else {
			needed = append(needed, ob.Column)
		}
	}
	for _, c := range needed {
		if !tbl.HasColumn(c) {
			return types.NewQueryError(types.KindColumnNotFound, r.Text, "column %q does not exist", c)
		}
	}
	return nil
}

func backendError(r *schema.ResolvedCommand, format string, args ...any) error {
	return types.NewQueryError(types.KindBackendExecutionError, r.Text, format, args...)
}

func (st *planState) has(column string) bool {
	return slices.Contains(st.columns, column)
}
