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

// Package builtin implements the aggregate functions of the tabular
// backend.
package builtin

import (
	"fmt"

	"github.com/rulego/mcpsql/dataset"
	"github.com/rulego/mcpsql/rsql"
)

type AggregateFunction struct {
	// Func is the upper-case function name.
	Func rsql.AggregateFunc
	// AllowStar reports whether FN(*) is accepted.
	AllowStar bool
	// Reduce folds the non-nil input values of one group. It is not
	// called with nil values. An empty input must give the function's
	// empty result.
	Reduce func(input []any) (any, error)
}

// Lookup returns the implementation of f.
func Lookup(f rsql.AggregateFunc) (*AggregateFunction, bool) {
	fn, ok := AggregateBuiltins[f]
	return fn, ok
}

// Apply evaluates agg over the values of one group. For FN(*) values
// holds one entry per row and nils are counted; otherwise nils are
// skipped and DISTINCT keeps the first of each equal value.
func Apply(agg rsql.Aggregate, values []any) (any, error) {
	fn, ok := Lookup(agg.Func)
	if !ok {
		return nil, fmt.Errorf("unknown aggregate function %s", agg.Func)
	}
	if agg.Star {
		if !fn.AllowStar {
			return nil, fmt.Errorf("%s(*) is not supported", agg.Func)
		}
		return fn.Reduce(values)
	}

	input := make([]any, 0, len(values))
	var seen map[dataset.GroupValues]struct{}
	if agg.Distinct {
		seen = make(map[dataset.GroupValues]struct{}, len(values))
	}
	for _, v := range values {
		if v == nil {
			continue
		}
		if seen != nil {
			k := dataset.KeyOf(v)
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
		}
		input = append(input, v)
	}
	return fn.Reduce(input)
}
