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

// Package tabular runs mini-queries against a spreadsheet loaded into
// memory.
package tabular

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/rulego/mcpsql/dataset"
	"github.com/rulego/mcpsql/logger"
	"github.com/rulego/mcpsql/operator"
	"github.com/rulego/mcpsql/planner"
	"github.com/rulego/mcpsql/rsql"
	"github.com/rulego/mcpsql/schema"
	"github.com/rulego/mcpsql/types"
)

// Backend answers mini-queries from one immutable table. It is safe for
// concurrent use.
type Backend struct {
	data   *dataset.Loaded
	schema *schema.Schema
	log    logger.Logger
}

// Option configures a Backend.
type Option func(*Backend)

// WithLogger sets the backend's logger.
func WithLogger(l logger.Logger) Option {
	return func(b *Backend) {
		b.log = l
	}
}

// New wraps a loaded table. table names it in the schema.
func New(data *dataset.Loaded, table string, opts ...Option) *Backend {
	b := &Backend{
		data:   data,
		schema: schemaOf(table, data.Table),
		log:    logger.GetDefault().Named("tabular"),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Open loads path from fs and wraps it. The table is named after the file.
func Open(fs afero.Fs, path string, loadOpts []dataset.LoadOption, opts ...Option) (*Backend, error) {
	data, err := dataset.LoadFile(fs, path, loadOpts...)
	if err != nil {
		return nil, err
	}
	table := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return New(data, table, opts...), nil
}

// Schema returns the columns of the loaded table.
func (b *Backend) Schema(context.Context) (*schema.Schema, error) {
	return b.schema, nil
}

// Table returns the loaded table.
func (b *Backend) Table() *dataset.Table {
	return b.data.Table
}

// Explain returns the operator chain mini plans to.
func (b *Backend) Explain(_ context.Context, mini string) (string, error) {
	plan, err := b.plan(mini)
	if err != nil {
		return "", err
	}
	return plan.Explain(), nil
}

// Execute plans and runs mini. Failures are *types.QueryError.
func (b *Backend) Execute(ctx context.Context, mini string) (*types.Result, error) {
	plan, err := b.plan(mini)
	if err != nil {
		return nil, err
	}
	b.log.Debug("planned %q as %s", mini, plan.Explain())

	out, err := plan.Execute(ctx, b.data.Table)
	if err != nil {
		var missing *operator.MissingColumnError
		if errors.As(err, &missing) {
			return nil, types.WrapQueryError(types.KindColumnNotFound, mini, err)
		}
		return nil, types.WrapQueryError(types.KindBackendExecutionError, mini, err)
	}

	result := types.NewResult(out.Columns()...)
	for i := 0; i < out.Len(); i++ {
		result.Rows = append(result.Rows, []any(out.Row(i).Clone()))
	}
	return result, nil
}

// Query is Execute for the service boundary: it never fails, reporting
// errors as a Failure that echoes mini.
func (b *Backend) Query(ctx context.Context, mini string) types.Response {
	result, err := b.Execute(ctx, mini)
	if err != nil {
		b.log.Warn("query %q failed: %v", mini, err)
		return types.Fail(err, mini)
	}
	return types.Succeed(result)
}

func (b *Backend) plan(mini string) (*planner.Plan, error) {
	cmd, err := rsql.Parse(mini)
	if err != nil {
		return nil, types.WrapQueryError(types.KindEmptyQuery, mini, err)
	}
	for _, w := range cmd.Warnings {
		b.log.Warn("%s", w.Error())
	}
	r := b.schema.ResolveCommand(cmd)
	// Sheets name their date column freely; date predicates fall back to
	// the detected one.
	if !b.data.HasColumn(r.DateColumn) && b.data.DateColumn != "" {
		r.DateColumn = b.data.DateColumn
	}
	return planner.Build(r, b.data.Table)
}

// schemaOf describes t, typing each column by its first non-nil value.
func schemaOf(table string, t *dataset.Table) *schema.Schema {
	names := t.Columns()
	cols := make([]schema.Column, len(names))
	for j, name := range names {
		cols[j] = schema.Column{Name: name, DataType: "text"}
		for i := 0; i < t.Len(); i++ {
			v := t.Value(i, j)
			if v == nil {
				continue
			}
			cols[j].DataType = typeName(v)
			break
		}
	}
	return schema.New(table, cols)
}

func typeName(v any) string {
	switch v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return "integer"
	case float32, float64:
		return "double precision"
	case time.Time:
		return "date"
	case bool:
		return "boolean"
	case string:
		return "text"
	}
	return fmt.Sprintf("%T", v)
}
