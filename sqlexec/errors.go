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
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"

	"github.com/rulego/mcpsql/types"
)

const (
	pqUndefinedColumn  = "42703"
	mysqlBadFieldError = 1054
)

// classify maps a driver error to an error kind. Only an unknown column
// is singled out; everything else is a backend execution error.
func classify(err error) types.ErrorKind {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code == pqUndefinedColumn {
			return types.KindColumnNotFound
		}
		return types.KindBackendExecutionError
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		if myErr.Number == mysqlBadFieldError {
			return types.KindColumnNotFound
		}
		return types.KindBackendExecutionError
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) && strings.Contains(liteErr.Error(), "no such column") {
		return types.KindColumnNotFound
	}
	if strings.Contains(err.Error(), "no such column") {
		return types.KindColumnNotFound
	}
	return types.KindBackendExecutionError
}
