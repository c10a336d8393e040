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

package timex

import (
	"fmt"
	"strings"
	"time"
)

// DayLayout is the canonical calendar-day format.
const DayLayout = "2006-01-02"

// dateLayouts are tried in order by ParseDate. Day-first wins over
// month-first when both would parse.
var dateLayouts = []string{
	"2006-01-02",
	"2006-1-2",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006/01/02",
	"02/01/2006",
	"2/1/2006",
	"01/02/2006",
	"1/2/2006",
	"01-02-06",
	"1/2/06",
}

// ParseDate parses a cell value written in one of the common date
// layouts. The result is in UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// ParseDay parses a mini-query date literal such as 2025-07-01 or
// 2025-7-1 and returns midnight UTC of that day.
func ParseDay(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-1-2", strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date literal %q", s)
	}
	return t, nil
}

// TruncateDay returns midnight UTC of the calendar date t shows in its
// own location.
func TruncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDay renders the calendar date of t.
func FormatDay(t time.Time) string {
	return t.Format(DayLayout)
}
