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
	"github.com/rulego/mcpsql/operator"
	"github.com/rulego/mcpsql/rsql"
)

// OrderByPlan sorts by the effective order. Ungrouped commands sort the
// source rows, so any column may be used; grouped commands may only sort
// by a produced column.
type OrderByPlan struct{}

func (p *OrderByPlan) Plan(st *planState) error {
	r := st.cmd
	ob := r.EffectiveOrder()
	if ob == nil {
		return nil
	}
	key := ob.Key()
	switch {
	case ob.Aggregate != nil && !st.grouped:
		return backendError(r, "aggregate %s in ORDER BY requires an aggregate select", key)
	case st.grouped && !st.has(key):
		return backendError(r, "column %q must appear in the GROUP BY clause or be used in an aggregate function", key)
	case r.Select.Kind == rsql.SelectDistinct && !st.grouped && r.Select.Columns[0] != key:
		return backendError(r, "for SELECT DISTINCT, ORDER BY expressions must appear in select list")
	}
	st.AddOperators(&operator.OrderByOp{Key: key, Desc: ob.Desc})
	return nil
}

func (p *OrderByPlan) Type() string {
	return "OrderByPlan"
}
