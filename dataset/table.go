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

// Package dataset holds in-memory tables loaded from spreadsheets.
package dataset

import (
	"fmt"
)

// Table is an immutable, column-named set of rows. Operators never modify
// a Table; they build new ones.
type Table struct {
	columns []string
	index   map[string]int
	rows    []Row
}

// NewTable builds a table. Column names must be unique and every row must
// have one value per column. The slices are copied.
func NewTable(columns []string, rows []Row) (*Table, error) {
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		if _, dup := index[c]; dup {
			return nil, fmt.Errorf("duplicate column %q", c)
		}
		index[c] = i
	}
	copied := make([]Row, len(rows))
	for i, r := range rows {
		if len(r) != len(columns) {
			return nil, fmt.Errorf("row %d has %d values, want %d", i, len(r), len(columns))
		}
		copied[i] = r.Clone()
	}
	return &Table{
		columns: append([]string(nil), columns...),
		index:   index,
		rows:    copied,
	}, nil
}

// MustNewTable is NewTable that panics on error. Intended for tests and
// fixed fixtures.
func MustNewTable(columns []string, rows []Row) *Table {
	t, err := NewTable(columns, rows)
	if err != nil {
		panic(err)
	}
	return t
}

// newTableOwned adopts columns and rows without copying.
func newTableOwned(columns []string, rows []Row) *Table {
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		index[c] = i
	}
	return &Table{columns: columns, index: index, rows: rows}
}

// Columns returns a copy of the column names.
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

// ColumnIndex returns the position of the exactly named column.
func (t *Table) ColumnIndex(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// HasColumn reports whether the exactly named column exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Row returns row i. The returned slice must not be modified.
func (t *Table) Row(i int) Row {
	return t.rows[i]
}

// Value returns the value of column col in row i.
func (t *Table) Value(i, col int) any {
	return t.rows[i][col]
}

// Builder accumulates rows for a new table.
type Builder struct {
	columns []string
	rows    []Row
}

// NewBuilder starts a table with the given columns.
func NewBuilder(columns ...string) *Builder {
	return &Builder{columns: append([]string(nil), columns...)}
}

// Add appends a row. It must have one value per column.
func (b *Builder) Add(r Row) {
	b.rows = append(b.rows, r)
}

// Build returns the table. The builder must not be used afterwards.
func (b *Builder) Build() *Table {
	return newTableOwned(b.columns, b.rows)
}
