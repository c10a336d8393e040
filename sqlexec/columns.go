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
	"github.com/rulego/mcpsql/rsql"
	"github.com/rulego/mcpsql/schema"
)

// referencedColumns lists every column name r makes the database read.
func referencedColumns(r *schema.ResolvedCommand) []string {
	names := append([]string(nil), r.Select.Columns...)
	if agg := r.Select.Aggregate; agg != nil && !agg.Star {
		names = append(names, agg.Column)
	}
	if r.GroupBy != "" {
		names = append(names, r.GroupBy)
	}
	for _, p := range r.Where {
		switch p.Kind {
		case rsql.PredicateYear:
			names = append(names, r.YearColumn)
		case rsql.PredicateMonth:
			names = append(names, r.MonthColumn)
		default:
			names = append(names, r.DateColumn)
		}
	}
	if ob := r.EffectiveOrder(); ob != nil {
		switch {
		case ob.Aggregate == nil:
			names = append(names, ob.Column)
		case !ob.Aggregate.Star:
			names = append(names, ob.Aggregate.Column)
		}
	}
	return names
}

// unknownColumn returns the first column r references that s lacks.
// SQLite reads a double-quoted name that matches no column as a string
// literal, so such queries must be stopped before they run.
func unknownColumn(r *schema.ResolvedCommand, s *schema.Schema) (string, bool) {
	for _, name := range referencedColumns(r) {
		if !s.Has(name) {
			return name, true
		}
	}
	return "", false
}
