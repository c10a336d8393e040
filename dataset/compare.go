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

package dataset

import (
	"strings"
	"time"

	"github.com/rulego/mcpsql/utils/cast"
)

// IsNumber reports whether v holds a Go numeric type. Numeric text is not
// a number here.
func IsNumber(v any) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	}
	return false
}

// Compare orders two non-nil cell values. Numbers compare by value, times
// by instant and everything else as text. Mixed kinds fall back to text.
func Compare(a, b any) int {
	if IsNumber(a) && IsNumber(b) {
		x, _ := cast.ToFloat(a)
		y, _ := cast.ToFloat(b)
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	}
	if x, ok := a.(time.Time); ok {
		if y, ok := b.(time.Time); ok {
			return x.Compare(y)
		}
	}
	return strings.Compare(cast.ToString(a), cast.ToString(b))
}
