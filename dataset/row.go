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
	"fmt"
	"strings"
	"time"

	"github.com/rulego/mcpsql/utils/cast"
)

// Row is one positional record of a Table.
type Row []any

// Clone returns a shallow copy of the row.
func (r Row) Clone() Row {
	return append(Row(nil), r...)
}

// GroupValues identifies a group. Values that compare equal in SQL map to
// the same key: numbers by value regardless of Go type, times by instant.
type GroupValues string

// KeyOf builds the group key of values.
func KeyOf(values ...any) GroupValues {
	var sb strings.Builder
	for i, v := range values {
		if i > 0 {
			sb.WriteByte(0)
		}
		sb.WriteString(keyPart(v))
	}
	return GroupValues(sb.String())
}

func keyPart(v any) string {
	switch x := v.(type) {
	case nil:
		return "n:"
	case string:
		return "s:" + x
	case time.Time:
		return "t:" + x.UTC().Format(time.RFC3339Nano)
	case bool:
		return fmt.Sprintf("b:%t", x)
	}
	if f, ok := cast.ToFloat(v); ok {
		return fmt.Sprintf("f:%v", f)
	}
	return fmt.Sprintf("%T:%v", v, v)
}
