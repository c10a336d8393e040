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

package table

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rulego/mcpsql/types"
	"github.com/rulego/mcpsql/utils/cast"
)

// Print writes r as an ASCII table followed by a row count.
func Print(w io.Writer, r *types.Result) {
	if r == nil || len(r.Columns) == 0 {
		fmt.Fprintln(w, "(0 rows)")
		return
	}

	cells := make([][]string, len(r.Rows))
	colWidths := make([]int, len(r.Columns))
	for i, col := range r.Columns {
		colWidths[i] = utf8.RuneCountInString(col)
	}
	for i, row := range r.Rows {
		cells[i] = make([]string, len(r.Columns))
		for j := range r.Columns {
			var v any
			if j < len(row) {
				v = row[j]
			}
			s := FormatValue(v)
			cells[i][j] = s
			if n := utf8.RuneCountInString(s); n > colWidths[j] {
				colWidths[j] = n
			}
		}
	}
	// Minimum width is 4
	for i := range colWidths {
		if colWidths[i] < 4 {
			colWidths[i] = 4
		}
	}

	PrintTableBorder(w, colWidths)
	printRow(w, r.Columns, colWidths)
	PrintTableBorder(w, colWidths)
	for _, row := range cells {
		printRow(w, row, colWidths)
	}
	PrintTableBorder(w, colWidths)
	fmt.Fprintf(w, "(%d rows)\n", len(r.Rows))
}

func printRow(w io.Writer, values []string, colWidths []int) {
	var sb strings.Builder
	sb.WriteString("|")
	for i, v := range values {
		sb.WriteString(" ")
		sb.WriteString(v)
		sb.WriteString(strings.Repeat(" ", colWidths[i]-utf8.RuneCountInString(v)))
		sb.WriteString(" |")
	}
	fmt.Fprintln(w, sb.String())
}

// PrintTableBorder prints table border
func PrintTableBorder(w io.Writer, columnWidths []int) {
	var sb strings.Builder
	sb.WriteString("+")
	for _, width := range columnWidths {
		sb.WriteString(strings.Repeat("-", width+2))
		sb.WriteString("+")
	}
	fmt.Fprintln(w, sb.String())
}

// FormatValue renders a cell. nil prints as NULL, midnight times as a
// bare date and floats without trailing zeros.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case time.Time:
		if x.Hour() == 0 && x.Minute() == 0 && x.Second() == 0 && x.Nanosecond() == 0 {
			return x.Format("2006-01-02")
		}
		return x.Format("2006-01-02 15:04:05")
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	default:
		return cast.ToString(v)
	}
}
