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

package condition

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/rulego/mcpsql/rsql"
	"github.com/rulego/mcpsql/utils/timex"
)

// Variables a predicate program reads from its environment.
const (
	// VarYear is the row's year as an int, or nil.
	VarYear = "year"
	// VarMonth is the row's month as an int, or nil.
	VarMonth = "month"
	// VarDay is the row's calendar day as "2006-01-02", or nil.
	VarDay = "day"
)

type Condition interface {
	Evaluate(env any) bool
}

// ExprCondition is a compiled boolean expr-lang program.
type ExprCondition struct {
	source  string
	program *vm.Program
}

// NewExprCondition compiles expression. Undefined variables evaluate to
// nil and the result must be a bool.
func NewExprCondition(expression string) (*ExprCondition, error) {
	program, err := expr.Compile(expression,
		expr.AllowUndefinedVariables(),
		expr.AsBool(),
	)
	if err != nil {
		return nil, err
	}
	return &ExprCondition{source: expression, program: program}, nil
}

// Evaluate runs the program against env. A runtime error counts as false.
func (c *ExprCondition) Evaluate(env any) bool {
	result, err := expr.Run(c.program, env)
	if err != nil {
		return false
	}
	ok, _ := result.(bool)
	return ok
}

func (c *ExprCondition) String() string {
	return c.source
}

// FromPredicates compiles the conjunction of preds into one program over
// VarYear, VarMonth and VarDay. Day comparisons are done on zero-padded
// ISO text so that string order is calendar order. Date literals that are
// not valid calendar days are rejected.
//
// Example:
//
//	c, _ := condition.FromPredicates([]rsql.Predicate{
//		{Kind: rsql.PredicateYear, Value: 2025},
//		{Kind: rsql.PredicateDateBetween, From: "2025-7-1", To: "2025-07-31"},
//	})
//	c.String() // year == 2025 && day != nil && day >= "2025-07-01" && day <= "2025-07-31"
func FromPredicates(preds []rsql.Predicate) (*ExprCondition, error) {
	if len(preds) == 0 {
		return NewExprCondition("true")
	}
	terms := make([]string, 0, len(preds))
	for _, p := range preds {
		switch p.Kind {
		case rsql.PredicateYear:
			terms = append(terms, VarYear+" == "+strconv.Itoa(p.Value))
		case rsql.PredicateMonth:
			terms = append(terms, VarMonth+" == "+strconv.Itoa(p.Value))
		case rsql.PredicateDate:
			day, err := normalizeDay(p.Day)
			if err != nil {
				return nil, err
			}
			terms = append(terms, VarDay+" == "+strconv.Quote(day))
		case rsql.PredicateDateBetween:
			from, err := normalizeDay(p.From)
			if err != nil {
				return nil, err
			}
			to, err := normalizeDay(p.To)
			if err != nil {
				return nil, err
			}
			terms = append(terms, fmt.Sprintf("%s != nil && %s >= %s && %s <= %s",
				VarDay, VarDay, strconv.Quote(from), VarDay, strconv.Quote(to)))
		default:
			return nil, fmt.Errorf("unknown predicate kind %d", p.Kind)
		}
	}
	return NewExprCondition(strings.Join(terms, " && "))
}

func normalizeDay(s string) (string, error) {
	t, err := timex.ParseDay(s)
	if err != nil {
		return "", fmt.Errorf("invalid date literal %q", s)
	}
	return timex.FormatDay(t), nil
}
