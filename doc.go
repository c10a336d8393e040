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

/*
Package mcpsql answers restricted, SQL-like mini-queries against either a
relational database or a spreadsheet loaded into memory.

A mini-query names one aggregate or a column list, optional date filters,
one group key, one sort key and a limit:

	SELECT SUM(Amount) WHERE Year=2025 AND Month=7
	SELECT SUM(amount) GROUP BY salesrep ORDER BY SUM(amount) DESC LIMIT 1
	SELECT COUNT(DISTINCT SalesRep) WHERE Date BETWEEN '2025-07-01' AND '2025-07-31'

Column names are matched to the live schema ignoring letter case, so the
caller does not need to know how the table spells them. Grouping by Year,
Month, Day or Date always sorts ascending on that key.

# Backends

Two backends share the same parser and resolver and return the same
results for the same data:

	// Relational: compiled to one SQL statement, run in a read-only transaction.
	exec, err := sqlexec.Open(ctx, "postgres", dsn, "ventas")

	// Tabular: planned as filter, aggregate, sort, project and limit operators.
	tab, err := tabular.Open(afero.NewOsFs(), "ventas.xlsx", nil)

Either is wrapped by an Engine, which adds a query timeout and turns every
failure into a types.Failure:

	engine := mcpsql.New(exec, mcpsql.WithQueryTimeout(10*time.Second))
	resp := engine.Query(ctx, "SELECT SUM(Amount) GROUP BY Month")
	out, _ := json.Marshal(resp) // {"columns":[...],"rows":[...]} or {"error":"...","query":"..."}

# Errors

Failures carry a types.ErrorKind: EmptyQuery, UnsupportedQuery,
ColumnNotFound or BackendExecutionError. Parts of a query that are not
understood are dropped with a logged warning instead of failing it.

# Action plans

DecodeActionPlan reads the routing JSON a language model produces
({"action":"query_postgres","query":"...","need_data":true}); RunPlan
executes it only when data is needed.
*/
package mcpsql
