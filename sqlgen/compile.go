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

// Package sqlgen compiles resolved mini-queries into SQL statements.
package sqlgen

import (
	"bytes"
	"strconv"

	"github.com/rulego/mcpsql/rsql"
	"github.com/rulego/mcpsql/schema"
)

// Compile renders r as a single statement against table, terminated by a
// semicolon. Every identifier is double-quoted. Columns are not checked
// here; an unknown column surfaces as a database error at execution.
//
// Example:
//
//	cmd, _ := rsql.Parse("SELECT sum(amount) WHERE Year=2025 AND Month=7")
//	r := schema.FromNames("ventas", "Amount").ResolveCommand(cmd)
//	sqlgen.Compile(r, "ventas", sqlgen.Postgres)
//	// SELECT SUM("Amount") AS "SUM(Amount)" FROM "ventas" WHERE "Year"=2025 AND "Month"=7;
func Compile(r *schema.ResolvedCommand, table string, d Dialect) string {
	var buf bytes.Buffer
	buf.WriteString("SELECT ")
	writeSelectList(&buf, r)
	buf.WriteString(" FROM ")
	buf.WriteString(QuoteIdent(table))
	writeWhere(&buf, r, d)
	if r.GroupBy != "" {
		buf.WriteString(" GROUP BY ")
		buf.WriteString(QuoteIdent(r.GroupBy))
	}
	if ob := r.EffectiveOrder(); ob != nil {
		buf.WriteString(" ORDER BY ")
		if ob.Aggregate != nil {
			writeAggregateCall(&buf, *ob.Aggregate)
		} else {
			buf.WriteString(QuoteIdent(ob.Column))
		}
		buf.WriteByte(' ')
		buf.WriteString(ob.Direction())
	}
	if r.Limit != nil {
		buf.WriteString(" LIMIT ")
		buf.WriteString(strconv.Itoa(*r.Limit))
	}
	buf.WriteByte(';')
	return buf.String()
}

func writeSelectList(buf *bytes.Buffer, r *schema.ResolvedCommand) {
	sel := r.Select
	if sel.Kind == rsql.SelectDistinct {
		buf.WriteString("DISTINCT ")
		writeColumnList(buf, sel.Columns)
		return
	}

	// The group key leads the output unless it is already selected.
	if r.GroupBy != "" && !r.SelectsGroupKey() {
		buf.WriteString(QuoteIdent(r.GroupBy))
		buf.WriteString(", ")
	}
	switch sel.Kind {
	case rsql.SelectAggregate:
		writeAggregateCall(buf, *sel.Aggregate)
		buf.WriteString(" AS ")
		buf.WriteString(QuoteIdent(sel.Aggregate.Label()))
	case rsql.SelectColumns:
		writeColumnList(buf, sel.Columns)
	default:
		buf.WriteByte('*')
	}
}

func writeColumnList(buf *bytes.Buffer, columns []string) {
	for i, c := range columns {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(QuoteIdent(c))
	}
}

func writeAggregateCall(buf *bytes.Buffer, a rsql.Aggregate) {
	buf.WriteString(a.Func.String())
	buf.WriteByte('(')
	switch {
	case a.Star:
		buf.WriteByte('*')
	case a.Distinct:
		buf.WriteString("DISTINCT ")
		buf.WriteString(QuoteIdent(a.Column))
	default:
		buf.WriteString(QuoteIdent(a.Column))
	}
	buf.WriteByte(')')
}

func writeWhere(buf *bytes.Buffer, r *schema.ResolvedCommand, d Dialect) {
	for i, p := range r.Where {
		if i == 0 {
			buf.WriteString(" WHERE ")
		} else {
			buf.WriteString(" AND ")
		}
		switch p.Kind {
		case rsql.PredicateYear:
			buf.WriteString(QuoteIdent(r.YearColumn))
			buf.WriteByte('=')
			buf.WriteString(strconv.Itoa(p.Value))
		case rsql.PredicateMonth:
			buf.WriteString(QuoteIdent(r.MonthColumn))
			buf.WriteByte('=')
			buf.WriteString(strconv.Itoa(p.Value))
		case rsql.PredicateDate:
			buf.WriteString(QuoteIdent(r.DateColumn))
			buf.WriteByte('=')
			buf.WriteString(d.dateLiteral(p.Day))
		case rsql.PredicateDateBetween:
			buf.WriteString(QuoteIdent(r.DateColumn))
			buf.WriteString(" BETWEEN ")
			buf.WriteString(d.dateLiteral(p.From))
			buf.WriteString(" AND ")
			buf.WriteString(d.dateLiteral(p.To))
		}
	}
}
