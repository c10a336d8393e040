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

// Package planner turns a resolved command into a chain of table
// operators for the tabular backend.
package planner

import (
	"context"
	"strings"

	"github.com/rulego/mcpsql/dataset"
	"github.com/rulego/mcpsql/operator"
)

type BaseLogicalPlan struct {
	// operators run in insertion order
	operators []operator.Operator
}

// AddOperators appends operators to the plan.
func (p *BaseLogicalPlan) AddOperators(operators ...operator.Operator) {
	p.operators = append(p.operators, operators...)
}

// Operators returns the operators in execution order.
func (p *BaseLogicalPlan) Operators() []operator.Operator {
	return append([]operator.Operator(nil), p.operators...)
}

// Plan is an executable operator chain built for one command.
type Plan struct {
	*BaseLogicalPlan
	query string
}

// Query returns the mini-query the plan was built from.
func (p *Plan) Query() string {
	return p.query
}

// Execute runs every operator in turn, starting from tbl. tbl is never
// modified.
func (p *Plan) Execute(ctx context.Context, tbl *dataset.Table) (*dataset.Table, error) {
	current := tbl
	for _, op := range p.operators {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		next, err := op.Apply(ctx, current)
		if err != nil {
			return nil, err
		}
		current = next
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return current, nil
}

// Explain renders the operator chain, for example
// "Aggregate(group=SalesRep, SUM(Amount)) -> OrderBy(SUM(Amount) DESC) -> Limit(1)".
func (p *Plan) Explain() string {
	if len(p.operators) == 0 {
		return "Scan"
	}
	parts := make([]string, len(p.operators))
	for i, op := range p.operators {
		parts[i] = op.Explain()
	}
	return strings.Join(parts, " -> ")
}
