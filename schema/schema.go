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

// Package schema describes the live column set of the target table and
// maps user-typed identifiers onto it.
package schema

import "strings"

// Column is one column of the target table.
type Column struct {
	Name     string `json:"column" yaml:"column"`
	DataType string `json:"type" yaml:"type"`
}

// Schema is an immutable snapshot of a table's columns in ordinal order.
// A nil *Schema behaves like a schema with no columns.
type Schema struct {
	table   string
	columns []Column
	exact   map[string]int
	folded  map[string]int
}

// New builds a snapshot. The columns slice is copied.
func New(table string, columns []Column) *Schema {
	s := &Schema{
		table:   table,
		columns: append([]Column(nil), columns...),
		exact:   make(map[string]int, len(columns)),
		folded:  make(map[string]int, len(columns)),
	}
	for i, c := range s.columns {
		if _, ok := s.exact[c.Name]; !ok {
			s.exact[c.Name] = i
		}
		key := strings.ToLower(c.Name)
		if _, ok := s.folded[key]; !ok {
			s.folded[key] = i
		}
	}
	return s
}

// FromNames builds a snapshot whose columns have no declared type.
func FromNames(table string, names ...string) *Schema {
	cols := make([]Column, len(names))
	for i, n := range names {
		cols[i] = Column{Name: n}
	}
	return New(table, cols)
}

// Table returns the table name.
func (s *Schema) Table() string {
	if s == nil {
		return ""
	}
	return s.table
}

// Columns returns a copy of the columns.
func (s *Schema) Columns() []Column {
	if s == nil {
		return nil
	}
	return append([]Column(nil), s.columns...)
}

// ColumnNames returns the column names in ordinal order.
func (s *Schema) ColumnNames() []string {
	if s == nil {
		return nil
	}
	names := make([]string, len(s.columns))
	for i, c := range s.columns {
		names[i] = c.Name
	}
	return names
}

// Has reports whether a column with exactly this name exists.
func (s *Schema) Has(name string) bool {
	if s == nil {
		return false
	}
	_, ok := s.exact[name]
	return ok
}

// Len returns the number of columns.
func (s *Schema) Len() int {
	if s == nil {
		return 0
	}
	return len(s.columns)
}
