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

package sqlexec

import (
	"strconv"
	"strings"

	"github.com/rulego/mcpsql/utils/cast"
)

type numericClass int

const (
	notNumeric numericClass = iota
	integral
	fractional
)

func classOf(dbType string) numericClass {
	t := strings.ToUpper(dbType)
	t = strings.TrimPrefix(t, "UNSIGNED ")
	switch t {
	case "INT", "INTEGER", "BIGINT", "SMALLINT", "TINYINT", "MEDIUMINT", "INT2", "INT4", "INT8", "YEAR":
		return integral
	case "NUMERIC", "DECIMAL", "FLOAT", "DOUBLE", "REAL", "FLOAT4", "FLOAT8":
		return fractional
	}
	return notNumeric
}

// normalize turns driver values into plain Go values. Drivers hand back
// text-protocol numbers and NUMERIC columns as bytes; those become int64
// or float64, any other bytes become a string.
func normalize(v any, dbType string) any {
	var text string
	switch x := v.(type) {
	case []byte:
		text = string(x)
	case string:
		text = x
	default:
		return v
	}
	switch classOf(dbType) {
	case integral:
		if n, err := strconv.ParseInt(text, 10, 64); err == nil {
			return n
		}
	case fractional:
		if f, ok := cast.ToFloat(text); ok {
			return f
		}
	}
	return text
}
