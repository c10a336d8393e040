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

// Package sqlexec runs mini-queries against a relational database.
package sqlexec

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rulego/mcpsql/logger"
	"github.com/rulego/mcpsql/rsql"
	"github.com/rulego/mcpsql/schema"
	"github.com/rulego/mcpsql/sqlgen"
	"github.com/rulego/mcpsql/types"
)

// Executor compiles mini-queries to SQL and runs each in its own
// read-only transaction. It is safe for concurrent use.
type Executor struct {
	db      *sql.DB
	dialect sqlgen.Dialect
	schemas *schema.Holder
	log     logger.Logger
}

// Option configures an Executor.
type Option func(*Executor)

// WithLogger sets the executor's logger.
func WithLogger(l logger.Logger) Option {
	return func(e *Executor) {
		e.log = l
	}
}

// New creates an executor over db. The target table is the one schemas
// describes.
func New(db *sql.DB, dialect sqlgen.Dialect, schemas *schema.Holder, opts ...Option) *Executor {
	e := &Executor{
		db:      db,
		dialect: dialect,
		schemas: schemas,
		log:     logger.GetDefault().Named("sqlexec"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// DB returns the underlying database handle.
func (e *Executor) DB() *sql.DB {
	return e.db
}

// Dialect returns the SQL dialect the executor compiles to.
func (e *Executor) Dialect() sqlgen.Dialect {
	return e.dialect
}

// Schema returns the current schema snapshot, loading it on first use.
func (e *Executor) Schema(ctx context.Context) (*schema.Schema, error) {
	return e.schemas.Get(ctx)
}

// Close closes the database handle.
func (e *Executor) Close() error {
	return e.db.Close()
}

// Explain returns the SQL statement mini compiles to. On SQLite a
// reference to a column the table lacks fails here with ColumnNotFound.
func (e *Executor) Explain(ctx context.Context, mini string) (string, error) {
	cmd, err := rsql.Parse(mini)
	if err != nil {
		return "", types.WrapQueryError(types.KindEmptyQuery, mini, err)
	}
	for _, w := range cmd.Warnings {
		e.log.Warn("%s", w.Error())
	}
	s, err := e.schemas.Get(ctx)
	if err != nil {
		return "", types.WrapQueryError(types.KindBackendExecutionError, mini, fmt.Errorf("failed to load schema: %w", err))
	}
	r := s.ResolveCommand(cmd)
	if e.dialect == sqlgen.SQLite {
		if name, ok := unknownColumn(r, s); ok {
			return "", types.WrapQueryError(types.KindColumnNotFound, mini, fmt.Errorf("no such column: %s", name))
		}
	}
	return sqlgen.Compile(r, s.Table(), e.dialect), nil
}

// Execute compiles and runs mini. Failures are *types.QueryError.
func (e *Executor) Execute(ctx context.Context, mini string) (*types.Result, error) {
	stmt, err := e.Explain(ctx, mini)
	if err != nil {
		return nil, err
	}
	e.log.Debug("compiled %q to %s", mini, stmt)

	tx, err := e.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, types.WrapQueryError(types.KindBackendExecutionError, mini, fmt.Errorf("failed to begin transaction: %w", err))
	}
	defer tx.Rollback()

	result, err := queryResult(ctx, tx, stmt)
	if err != nil {
		return nil, types.WrapQueryError(classify(err), mini, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, types.WrapQueryError(types.KindBackendExecutionError, mini, fmt.Errorf("failed to commit transaction: %w", err))
	}
	return result, nil
}

// Query is Execute for the service boundary: it never fails, reporting
// errors as a Failure that echoes mini.
func (e *Executor) Query(ctx context.Context, mini string) types.Response {
	result, err := e.Execute(ctx, mini)
	if err != nil {
		e.log.Warn("query %q failed: %v", mini, err)
		return types.Fail(err, mini)
	}
	return types.Succeed(result)
}

func queryResult(ctx context.Context, tx *sql.Tx, stmt string) (*types.Result, error) {
	rows, err := tx.QueryContext(ctx, stmt)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	dbTypes := make([]string, len(columns))
	if colTypes, err := rows.ColumnTypes(); err == nil {
		for i, ct := range colTypes {
			dbTypes[i] = ct.DatabaseTypeName()
		}
	}

	result := types.NewResult(columns...)
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		for i, v := range values {
			values[i] = normalize(v, dbTypes[i])
		}
		result.Rows = append(result.Rows, values)
	}
	return result, rows.Err()
}
