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
	"context"
	"database/sql"
	"fmt"

	"github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"

	"github.com/rulego/mcpsql/schema"
	"github.com/rulego/mcpsql/sqlgen"
)

// Open connects to the database, checks it is reachable and returns an
// executor for table. The schema is loaded lazily on the first query.
//
// Parameters:
//   - driver: postgres, mysql or sqlite3
//   - dsn: driver-specific data source name
//   - table: the table every mini-query targets
func Open(ctx context.Context, driver, dsn, table string, opts ...Option) (*Executor, error) {
	dialect, err := sqlgen.DialectFor(driver)
	if err != nil {
		return nil, err
	}
	if dialect == sqlgen.MySQL {
		if dsn, err = withANSIQuotes(dsn); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	holder := schema.NewHolder(table, schema.NewSQLProvider(db, driver))
	return New(db, dialect, holder, opts...), nil
}

// withANSIQuotes makes MySQL accept double-quoted identifiers.
func withANSIQuotes(dsn string) (string, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("invalid mysql dsn: %w", err)
	}
	if cfg.Params == nil {
		cfg.Params = make(map[string]string)
	}
	if _, ok := cfg.Params["sql_mode"]; !ok {
		cfg.Params["sql_mode"] = "'ANSI_QUOTES'"
	}
	return cfg.FormatDSN(), nil
}
