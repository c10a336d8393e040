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

package builtin

import (
	"math"

	"github.com/montanaflynn/stats"

	"github.com/rulego/mcpsql/dataset"
	"github.com/rulego/mcpsql/rsql"
	"github.com/rulego/mcpsql/utils/cast"
)

// AggregateBuiltins maps each aggregate function to its implementation.
var AggregateBuiltins = map[rsql.AggregateFunc]*AggregateFunction{}

func init() {
	for _, item := range aggregateBuiltins {
		AggregateBuiltins[item.Func] = item
	}
}

var aggregateBuiltins = []*AggregateFunction{
	{
		Func: rsql.AggSum,
		Reduce: func(input []any) (any, error) {
			nums, integral := numbers(input)
			if len(nums) == 0 {
				return nil, nil
			}
			sum, err := stats.Sum(nums)
			if err != nil {
				return nil, err
			}
			if integral && math.Abs(sum) < 1<<53 {
				return int64(sum), nil
			}
			return sum, nil
		},
	},
	{
		Func: rsql.AggAvg,
		Reduce: func(input []any) (any, error) {
			nums, _ := numbers(input)
			if len(nums) == 0 {
				return nil, nil
			}
			return stats.Mean(nums)
		},
	},
	{
		Func:   rsql.AggMin,
		Reduce: func(input []any) (any, error) { return extreme(input, stats.Min, -1) },
	},
	{
		Func:   rsql.AggMax,
		Reduce: func(input []any) (any, error) { return extreme(input, stats.Max, 1) },
	},
	{
		Func:      rsql.AggCount,
		AllowStar: true,
		Reduce: func(input []any) (any, error) {
			return int64(len(input)), nil
		},
	},
}

// numbers collects the numeric values of input. Text that reads as a
// number counts; anything else is skipped. integral reports whether
// every collected value had a Go integer type.
func numbers(input []any) (nums stats.Float64Data, integral bool) {
	integral = true
	for _, v := range input {
		f, ok := cast.ToFloat(v)
		if !ok {
			continue
		}
		if !isInteger(v) {
			integral = false
		}
		nums = append(nums, f)
	}
	return nums, integral
}

func isInteger(v any) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	}
	return false
}

func allNumbers(input []any) bool {
	for _, v := range input {
		if !dataset.IsNumber(v) {
			return false
		}
		if f, ok := cast.ToFloat(v); !ok || math.IsNaN(f) {
			return false
		}
	}
	return true
}

// extreme returns the input value that pick selects. When every value has a
// Go numeric type the comparison is numeric and the original value is returned;
// otherwise values are ordered with dataset.Compare and want is the
// comparison sign the winner must have against the rest.
func extreme(input []any, pick func(stats.Float64Data) (float64, error), want int) (any, error) {
	if len(input) == 0 {
		return nil, nil
	}
	if allNumbers(input) {
		nums, _ := numbers(input)
		target, err := pick(nums)
		if err != nil {
			return nil, err
		}
		for i, f := range nums {
			if f == target {
				return input[i], nil
			}
		}
	}
	best := input[0]
	for _, v := range input[1:] {
		if dataset.Compare(v, best) == want {
			best = v
		}
	}
	return best, nil
}
