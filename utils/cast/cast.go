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

// Package cast coerces loosely typed cell values. Spreadsheet cells and
// driver values arrive as any; these helpers decide what counts as a
// number.
package cast

import (
	"math"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// ToFloat converts x to float64. It reports false for nil, booleans,
// times, NaN and text that is not a number.
func ToFloat(x any) (float64, bool) {
	switch v := x.(type) {
	case nil, bool, time.Time:
		return 0, false
	case string:
		v = strings.TrimSpace(v)
		if v == "" {
			return 0, false
		}
		x = v
	case []byte:
		return ToFloat(string(v))
	}
	f, err := cast.ToFloat64E(x)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// IsNumeric reports whether ToFloat accepts x.
func IsNumeric(x any) bool {
	_, ok := ToFloat(x)
	return ok
}

// ToInt converts x to int64, truncating fractions. Text is read as a
// decimal number so "08" is 8.
func ToInt(x any) (int64, bool) {
	switch x.(type) {
	case string, []byte:
		f, ok := ToFloat(x)
		if !ok {
			return 0, false
		}
		return int64(f), true
	case nil, bool, time.Time:
		return 0, false
	}
	n, err := cast.ToInt64E(x)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ToString renders x as text. nil becomes the empty string.
func ToString(x any) string {
	switch v := x.(type) {
	case nil:
		return ""
	case time.Time:
		return v.Format(time.RFC3339)
	}
	return cast.ToString(x)
}
