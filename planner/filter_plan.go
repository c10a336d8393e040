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
	"github.com/rulego/mcpsql/condition"
	"github.com/rulego/mcpsql/operator"
	"github.com/rulego/mcpsql/rsql"
)

type FilterPlan struct{}

func (p *FilterPlan) Plan(st *planState) error {
	r := st.cmd
	if len(r.Where) == 0 {
		return nil
	}
	c, err := condition.FromPredicates(r.Where)
	if err != nil {
		return backendError(r, "%v", err)
	}
	op := &operator.FilterOp{Condition: c}
	for _, pred := range r.Where {
		switch pred.Kind {
		case rsql.PredicateYear:
			op.YearColumn = r.YearColumn
		case rsql.PredicateMonth:
			op.MonthColumn = r.MonthColumn
		default:
			op.DateColumn = r.DateColumn
		}
	}
	st.AddOperators(op)
	return nil
}

func (p *FilterPlan) Type() string {
	return "FilterPlan"
}
