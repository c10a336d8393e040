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

	"github.com/xuri/excelize/v2"

	"github.com/rulego/mcpsql/rsql"
	"github.com/rulego/mcpsql/utils/cast"
	"github.com/rulego/mcpsql/utils/timex"
)

// DetectDateColumn returns the first column whose name contains "date"
// or "fecha" in any letter case.
func DetectDateColumn(columns []string) (string, bool) {
	for _, c := range columns {
		lower := strings.ToLower(c)
		if strings.Contains(lower, "date") || strings.Contains(lower, "fecha") {
			return c, true
		}
	}
	return "", false
}

// ToTime interprets a cell as a point in time. Text is parsed with
// timex.ParseDate; numbers are read as Excel serial dates.
func ToTime(v any) (time.Time, bool) {
	switch x := v.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		return x, true
	case string:
		t, err := timex.ParseDate(x)
		return t, err == nil
	}
	if f, ok := cast.ToFloat(v); ok && f > 0 {
		t, err := excelize.ExcelDateToTime(f, false)
		return t, err == nil
	}
	return time.Time{}, false
}

// Derive converts dateColumn to times and adds the temporal columns
// Year, Month (int64) and Day (midnight of the calendar day). Existing
// columns with those exact names are replaced. Cells that are not dates
// become nil in dateColumn and in every derived column.
func Derive(t *Table, dateColumn string) (*Table, error) {
	src, ok := t.ColumnIndex(dateColumn)
	if !ok {
		return nil, fmt.Errorf("date column %q not found", dateColumn)
	}

	columns := t.Columns()
	targets := make([]int, 3)
	for i, name := range []string{rsql.KeyYear, rsql.KeyMonth, rsql.KeyDay} {
		if idx, ok := t.ColumnIndex(name); ok && idx != src {
			targets[i] = idx
			continue
		}
		targets[i] = len(columns)
		columns = append(columns, name)
	}

	rows := make([]Row, t.Len())
	for i := range rows {
		row := make(Row, len(columns))
		copy(row, t.Row(i))
		if when, ok := ToTime(row[src]); ok {
			row[src] = when
			row[targets[0]] = int64(when.Year())
			row[targets[1]] = int64(when.Month())
			row[targets[2]] = timex.TruncateDay(when)
		} else {
			row[src] = nil
			row[targets[0]] = nil
			row[targets[1]] = nil
			row[targets[2]] = nil
		}
		rows[i] = row
	}
	return newTableOwned(columns, rows), nil
}
