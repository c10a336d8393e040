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

// Package operator holds the table operators the tabular backend chains
// together. Every operator reads an immutable table and returns a new one.
package operator

import (
	"context"

	"github.com/rulego/mcpsql/dataset"
)

// Operator is one step of a plan.
type Operator interface {
	Apply(ctx context.Context, in *dataset.Table) (*dataset.Table, error)
	// Explain describes the step for logs and plan dumps.
	Explain() string
}

// checkEvery is how many rows an operator processes between cancellation
// checks.
const checkEvery = 1024

type BaseOp struct {
}

// canceled returns ctx.Err() on every checkEvery-th row.
func (o *BaseOp) canceled(ctx context.Context, row int) error {
	if row%checkEvery != 0 {
		return nil
	}
	return ctx.Err()
}

// columnIndexes maps names to positions in t. The first missing name is
// reported.
func columnIndexes(t *dataset.Table, names []string) ([]int, error) {
	idx := make([]int, len(names))
	for i, n := range names {
		j, ok := t.ColumnIndex(n)
		if !ok {
			return nil, &MissingColumnError{Column: n}
		}
		idx[i] = j
	}
	return idx, nil
}

// MissingColumnError reports an operator input that lacks a column.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return "column \"" + e.Column + "\" does not exist"
}
