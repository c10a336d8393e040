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

package schema

import (
	"strings"

	"github.com/rulego/mcpsql/rsql"
)

// Clean trims whitespace and one layer of surrounding quotes of any kind.
func Clean(name string) string {
	name = strings.TrimSpace(name)
	if len(name) >= 2 {
		first, last := name[0], name[len(name)-1]
		if first == last && (first == '"' || first == '\'' || first == '`') {
			name = strings.TrimSpace(name[1 : len(name)-1])
		}
	}
	return name
}

// Resolve maps a user-typed identifier to the canonical column name.
// An exact match wins, then the first case-insensitive match in column
// order. Unknown names come back cleaned but otherwise unchanged so that
// the backend reports them.
//
// Example:
//
//	s := schema.FromNames("ventas", "Amount", "SalesRep")
//	s.Resolve(" amount ") // "Amount"
//	s.Resolve("Amounnt")  // "Amounnt"
func (s *Schema) Resolve(name string) string {
	cleaned := Clean(name)
	if s == nil || cleaned == "" {
		return cleaned
	}
	if i, ok := s.exact[cleaned]; ok {
		return s.columns[i].Name
	}
	if i, ok := s.folded[strings.ToLower(cleaned)]; ok {
		return s.columns[i].Name
	}
	return cleaned
}

// ResolveAggregate resolves the aggregate argument. COUNT(*) is returned
// unchanged.
func (s *Schema) ResolveAggregate(a rsql.Aggregate) rsql.Aggregate {
	if !a.Star {
		a.Column = s.Resolve(a.Column)
	}
	return a
}

// ResolveAggregateExpr parses text as a single aggregate call, resolves
// its argument and returns the canonical label, e.g. "sum(amount)" becomes
// "SUM(Amount)". It reports false when text is not an aggregate call.
func (s *Schema) ResolveAggregateExpr(text string) (string, bool) {
	agg, ok := rsql.ParseAggregate(text)
	if !ok {
		return "", false
	}
	return s.ResolveAggregate(agg).Label(), true
}

// ResolvedCommand is a Command whose identifiers are canonical column
// names. It owns its copy of the command.
type ResolvedCommand struct {
	*rsql.Command
	// YearColumn, MonthColumn and DateColumn are the columns the WHERE
	// predicates filter on.
	YearColumn  string
	MonthColumn string
	DateColumn  string
}

// ResolveCommand resolves every identifier in cmd. cmd itself is left
// untouched.
func (s *Schema) ResolveCommand(cmd *rsql.Command) *ResolvedCommand {
	out := cmd.Clone()
	for i, c := range out.Select.Columns {
		out.Select.Columns[i] = s.Resolve(c)
	}
	if out.Select.Aggregate != nil {
		agg := s.ResolveAggregate(*out.Select.Aggregate)
		out.Select.Aggregate = &agg
	}
	if out.GroupBy != "" {
		out.GroupBy = s.Resolve(out.GroupBy)
	}
	if out.OrderBy != nil {
		if out.OrderBy.Aggregate != nil {
			agg := s.ResolveAggregate(*out.OrderBy.Aggregate)
			out.OrderBy.Aggregate = &agg
		} else {
			out.OrderBy.Column = s.Resolve(out.OrderBy.Column)
		}
	}
	return &ResolvedCommand{
		Command:     out,
		YearColumn:  s.Resolve(rsql.KeyYear),
		MonthColumn: s.Resolve(rsql.KeyMonth),
		DateColumn:  s.Resolve(rsql.KeyDate),
	}
}

// TemporalGroup reports whether the command groups by Year, Month, Day
// or Date.
func (r *ResolvedCommand) TemporalGroup() bool {
	return r.GroupBy != "" && rsql.IsTemporalKey(r.GroupBy)
}

// EffectiveOrder returns the ordering both backends apply. A temporal
// group key always sorts ascending on that key, replacing any ORDER BY
// the query gave. Otherwise the query's own ORDER BY applies, or nil.
func (r *ResolvedCommand) EffectiveOrder() *rsql.OrderBy {
	if r.TemporalGroup() {
		return &rsql.OrderBy{Column: r.GroupBy}
	}
	if r.OrderBy == nil {
		return nil
	}
	ob := *r.OrderBy
	return &ob
}

// SelectsGroupKey reports whether the group key already appears in the
// select list.
func (r *ResolvedCommand) SelectsGroupKey() bool {
	for _, c := range r.Select.Columns {
		if c == r.GroupBy {
			return true
		}
	}
	return false
}
