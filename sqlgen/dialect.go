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

package sqlgen

import (
	"fmt"
	"strings"

	"github.com/rulego/mcpsql/utils/timex"
)

// Dialect selects the few renderings that differ between databases.
type Dialect int

const (
	Postgres Dialect = iota
	// MySQL expects the session to run with sql_mode ANSI_QUOTES so that
	// double-quoted identifiers work.
	MySQL
	SQLite
)

func (d Dialect) String() string {
	switch d {
	case Postgres:
		return "postgres"
	case MySQL:
		return "mysql"
	case SQLite:
		return "sqlite3"
	default:
		return "unknown"
	}
}

// DialectFor maps a database/sql driver name to its Dialect.
func DialectFor(driver string) (Dialect, error) {
	switch strings.ToLower(driver) {
	case "postgres", "postgresql", "pgx":
		return Postgres, nil
	case "mysql":
		return MySQL, nil
	case "sqlite3", "sqlite":
		return SQLite, nil
	default:
		return 0, fmt.Errorf("unsupported driver %q", driver)
	}
}

// QuoteIdent double-quotes name, doubling embedded quotes.
func QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// quoteString single-quotes s, doubling embedded quotes.
func quoteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// dateLiteral renders a calendar date constant. Valid dates are written
// zero-padded since SQLite's date() rejects 2025-1-2; invalid ones are
// passed through for the database to judge.
func (d Dialect) dateLiteral(day string) string {
	if t, err := timex.ParseDay(day); err == nil {
		day = timex.FormatDay(t)
	}
	if d == SQLite {
		return "date(" + quoteString(day) + ")"
	}
	return "DATE " + quoteString(day)
}
