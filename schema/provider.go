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
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Provider lists the columns of a table in ordinal order.
type Provider interface {
	Columns(ctx context.Context, table string) ([]Column, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context, table string) ([]Column, error)

func (f ProviderFunc) Columns(ctx context.Context, table string) ([]Column, error) {
	return f(ctx, table)
}

// Static returns a Provider that always yields the same columns.
func Static(names ...string) Provider {
	return ProviderFunc(func(ctx context.Context, table string) ([]Column, error) {
		return FromNames(table, names...).Columns(), nil
	})
}

// SQLProvider reads columns from a database catalog. Driver is the
// database/sql driver name: postgres, mysql or sqlite3.
type SQLProvider struct {
	DB     *sql.DB
	Driver string
}

// NewSQLProvider creates a provider for db.
func NewSQLProvider(db *sql.DB, driver string) *SQLProvider {
	return &SQLProvider{DB: db, Driver: driver}
}

const (
	postgresColumnsQuery = `
		SELECT column_name, data_type
		FROM information_schema.columns
		WHERE table_name = $1
		ORDER BY ordinal_position`

	mysqlColumnsQuery = `
		SELECT column_name, data_type
		FROM information_schema.columns
		WHERE table_schema = DATABASE() AND table_name = ?
		ORDER BY ordinal_position`
)

// Columns implements Provider. A table with no columns is an error.
func (p *SQLProvider) Columns(ctx context.Context, table string) ([]Column, error) {
	var (
		columns []Column
		err     error
	)
	switch p.Driver {
	case "postgres", "pgx":
		columns, err = p.queryCatalog(ctx, postgresColumnsQuery, table)
	case "mysql":
		columns, err = p.queryCatalog(ctx, mysqlColumnsQuery, table)
	case "sqlite3", "sqlite":
		columns, err = p.pragmaTableInfo(ctx, table)
	default:
		return nil, fmt.Errorf("unsupported driver %q", p.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to introspect table %s: %w", table, err)
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("table %s not found or has no columns", table)
	}
	return columns, nil
}

func (p *SQLProvider) queryCatalog(ctx context.Context, query, table string) ([]Column, error) {
	rows, err := p.DB.QueryContext(ctx, query, table)
	if err != nil {
		return nil, fmt.Errorf("failed to query columns: %w", err)
	}
	defer rows.Close()

	var columns []Column
	for rows.Next() {
		var col Column
		if err := rows.Scan(&col.Name, &col.DataType); err != nil {
			return nil, fmt.Errorf("failed to scan column: %w", err)
		}
		columns = append(columns, col)
	}
	return columns, rows.Err()
}

func (p *SQLProvider) pragmaTableInfo(ctx context.Context, table string) ([]Column, error) {
	query := fmt.Sprintf(`PRAGMA table_info("%s")`, strings.ReplaceAll(table, `"`, `""`))
	rows, err := p.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query columns: %w", err)
	}
	defer rows.Close()

	var columns []Column
	for rows.Next() {
		var (
			cid       int
			col       Column
			notNull   int
			dfltValue sql.NullString
			isPk      int
		)
		if err := rows.Scan(&cid, &col.Name, &col.DataType, &notNull, &dfltValue, &isPk); err != nil {
			return nil, fmt.Errorf("failed to scan column: %w", err)
		}
		columns = append(columns, col)
	}
	return columns, rows.Err()
}
