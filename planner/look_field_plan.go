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

	"github.com/rulego/mcpsql/operator"
	"github.com/rulego/mcpsql/rsql"
)

// LookFieldPlan projects the output columns.
type LookFieldPlan struct{}

func (p *LookFieldPlan) Plan(st *planState) error {
	r := st.cmd
	if st.grouped {
		if st.visible != nil && !slices.Equal(st.visible, st.columns) {
			st.AddOperators(&operator.ProjectOp{Columns: st.visible})
		}
		return nil
	}
	switch r.Select.Kind {
	case rsql.SelectColumns:
		st.AddOperators(&operator.ProjectOp{Columns: r.Select.Columns})
	case rsql.SelectDistinct:
		st.AddOperators(&operator.ProjectOp{Columns: r.Select.Columns, Distinct: true})
	}
	return nil
}

func (p *LookFieldPlan) Type() string {
	return "LookFieldPlan"
}
