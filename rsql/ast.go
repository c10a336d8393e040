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

// ast.go defines the structured command produced by the parser.

package rsql

import (
	"bytes"
	"strconv"
	"strings"
)

// AggregateFunc is the closed set of aggregate functions the dialect knows.
type AggregateFunc int

const (
	AggSum AggregateFunc = iota + 1
	AggAvg
	AggMax
	AggMin
	AggCount
)

// String returns the upper-case SQL name of the function.
func (f AggregateFunc) String() string {
	switch f {
	case AggSum:
		return "SUM"
	case AggAvg:
		return "AVG"
	case AggMax:
		return "MAX"
	case AggMin:
		return "MIN"
	case AggCount:
		return "COUNT"
	default:
		return "UNKNOWN"
	}
}

// LookupAggregateFunc maps a function name in any letter case to its
// AggregateFunc.
func LookupAggregateFunc(name string) (AggregateFunc, bool) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "SUM":
		return AggSum, true
	case "AVG":
		return AggAvg, true
	case "MAX":
		return AggMax, true
	case "MIN":
		return AggMin, true
	case "COUNT":
		return AggCount, true
	}
	return 0, false
}

// Aggregate is a single aggregate call: FN(*), FN(col) or FN(DISTINCT col).
type Aggregate struct {
	Func     AggregateFunc
	Star     bool
	Distinct bool
	Column   string
}

// Label renders the aggregate as a result-column name, for example
// SUM(Amount), COUNT(*) or COUNT(DISTINCT SalesRep). Both backends name
// their aggregate output column with it, so an ORDER BY written as an
// aggregate call always binds to the produced column.
func (a Aggregate) Label() string {
	var buf bytes.Buffer
	a.Format(&buf)
	return buf.String()
}

// Format writes the label form of the aggregate.
func (a Aggregate) Format(buf *bytes.Buffer) {
	buf.WriteString(a.Func.String())
	buf.WriteByte('(')
	switch {
	case a.Star:
		buf.WriteByte('*')
	case a.Distinct:
		buf.WriteString("DISTINCT ")
		buf.WriteString(a.Column)
	default:
		buf.WriteString(a.Column)
	}
	buf.WriteByte(')')
}

// SelectKind tells which select shape the query used.
type SelectKind int

const (
	// SelectNone means no usable select list was found. The query is kept
	// so that callers can decide whether to coerce it.
	SelectNone SelectKind = iota
	SelectAll
	SelectColumns
	SelectDistinct
	SelectAggregate
)

func (k SelectKind) String() string {
	switch k {
	case SelectAll:
		return "all"
	case SelectColumns:
		return "columns"
	case SelectDistinct:
		return "distinct"
	case SelectAggregate:
		return "aggregate"
	default:
		return "none"
	}
}

// Select is the select list of a command.
type Select struct {
	Kind SelectKind
	// Columns holds the column list for SelectColumns and the single column
	// for SelectDistinct.
	Columns []string
	// Aggregate is set only for SelectAggregate.
	Aggregate *Aggregate
}

// PredicateKind enumerates the filters the WHERE clause understands.
type PredicateKind int

const (
	PredicateYear PredicateKind = iota + 1
	PredicateMonth
	PredicateDate
	PredicateDateBetween
)

func (k PredicateKind) String() string {
	switch k {
	case PredicateYear:
		return "Year"
	case PredicateMonth:
		return "Month"
	case PredicateDate:
		return "Date"
	case PredicateDateBetween:
		return "Date BETWEEN"
	default:
		return "unknown"
	}
}

// Predicate is one conjunct of the WHERE clause. Which fields are set
// depends on Kind: Value for Year and Month, Day for Date, From and To for
// Date BETWEEN. Dates are kept as written (digits and dashes).
type Predicate struct {
	Kind  PredicateKind
	Value int
	Day   string
	From  string
	To    string
}

// Format writes the predicate in mini-query syntax.
func (p Predicate) Format(buf *bytes.Buffer) {
	switch p.Kind {
	case PredicateYear:
		buf.WriteString("Year=" + strconv.Itoa(p.Value))
	case PredicateMonth:
		buf.WriteString("Month=" + strconv.Itoa(p.Value))
	case PredicateDate:
		buf.WriteString("Date='" + p.Day + "'")
	case PredicateDateBetween:
		buf.WriteString("Date BETWEEN '" + p.From + "' AND '" + p.To + "'")
	}
}

// OrderBy is the ORDER BY clause. Exactly one of Column and Aggregate is set.
type OrderBy struct {
	Column    string
	Aggregate *Aggregate
	Desc      bool
}

// Key returns the column name or aggregate label the clause sorts by.
func (o OrderBy) Key() string {
	if o.Aggregate != nil {
		return o.Aggregate.Label()
	}
	return o.Column
}

// Direction returns ASC or DESC.
func (o OrderBy) Direction() string {
	if o.Desc {
		return "DESC"
	}
	return "ASC"
}

// Command is the parsed form of a mini-query. It is built from text only,
// so every identifier in it is exactly what the user typed.
type Command struct {
	// Text is the original mini-query.
	Text    string
	Select  Select
	Where   []Predicate
	GroupBy string
	OrderBy *OrderBy
	Limit   *int
	// Warnings lists the parts of the input that were not understood and
	// therefore ignored.
	Warnings []*ParseError
}

// HasAggregate reports whether the command selects an aggregate.
func (c *Command) HasAggregate() bool {
	return c.Select.Kind == SelectAggregate && c.Select.Aggregate != nil
}

// Clone returns a deep copy of the command.
func (c *Command) Clone() *Command {
	out := *c
	out.Select.Columns = append([]string(nil), c.Select.Columns...)
	if c.Select.Aggregate != nil {
		agg := *c.Select.Aggregate
		out.Select.Aggregate = &agg
	}
	out.Where = append([]Predicate(nil), c.Where...)
	if c.OrderBy != nil {
		ob := *c.OrderBy
		if c.OrderBy.Aggregate != nil {
			agg := *c.OrderBy.Aggregate
			ob.Aggregate = &agg
		}
		out.OrderBy = &ob
	}
	if c.Limit != nil {
		n := *c.Limit
		out.Limit = &n
	}
	out.Warnings = append([]*ParseError(nil), c.Warnings...)
	return &out
}

// Format writes the command back in canonical mini-query syntax.
func (c *Command) Format(buf *bytes.Buffer) {
	buf.WriteString("SELECT ")
	switch c.Select.Kind {
	case SelectAll, SelectNone:
		buf.WriteByte('*')
	case SelectColumns:
		buf.WriteString(strings.Join(c.Select.Columns, ", "))
	case SelectDistinct:
		buf.WriteString("DISTINCT ")
		buf.WriteString(strings.Join(c.Select.Columns, ", "))
	case SelectAggregate:
		c.Select.Aggregate.Format(buf)
	}
	for i, p := range c.Where {
		if i == 0 {
			buf.WriteString(" WHERE ")
		} else {
			buf.WriteString(" AND ")
		}
		p.Format(buf)
	}
	if c.GroupBy != "" {
		buf.WriteString(" GROUP BY ")
		buf.WriteString(c.GroupBy)
	}
	if c.OrderBy != nil {
		buf.WriteString(" ORDER BY ")
		buf.WriteString(c.OrderBy.Key())
		buf.WriteByte(' ')
		buf.WriteString(c.OrderBy.Direction())
	}
	if c.Limit != nil {
		buf.WriteString(" LIMIT ")
		buf.WriteString(strconv.Itoa(*c.Limit))
	}
}

func (c *Command) String() string {
	var buf bytes.Buffer
	c.Format(&buf)
	return buf.String()
}

// Temporal synthetic keys. They are derived from the primary date column
// and sort chronologically.
const (
	KeyYear  = "Year"
	KeyMonth = "Month"
	KeyDay   = "Day"
	KeyDate  = "Date"
)

// IsTemporalKey reports whether name is one of Year, Month, Day or Date,
// ignoring letter case.
func IsTemporalKey(name string) bool {
	for _, k := range []string{KeyYear, KeyMonth, KeyDay, KeyDate} {
		if strings.EqualFold(name, k) {
			return true
		}
	}
	return false
}
