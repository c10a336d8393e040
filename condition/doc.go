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

/*
Package condition compiles WHERE predicates into expr-lang programs.

The tabular backend filters rows by evaluating one compiled program per
row. The program sees a small environment built from the row:

	year  int or nil     value of the year column
	month int or nil     value of the month column
	day   string or nil  calendar day of the date column, "2006-01-02"

All predicates of a query are ANDed into a single program:

	c, err := condition.FromPredicates(cmd.Where)
	if err != nil {
		return err // invalid date literal
	}
	keep := c.Evaluate(map[string]any{"year": 2025, "month": 7, "day": "2025-07-15"})

Date BETWEEN is inclusive on both ends. Rows whose date is missing never
match a date predicate.
*/
package condition
