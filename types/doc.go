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
Package types holds the result and error shapes shared by every mcpsql
backend.

# Results

A successful query yields a Result, a column list plus positional rows:

	{"columns": ["SUM(Amount)"], "rows": [[100]]}

A failed query handed across the service boundary yields a Failure that
echoes the mini-query:

	{"error": "column \"Amounnt\" does not exist", "query": "SELECT SUM(Amounnt)", "kind": "ColumnNotFound"}

Response wraps exactly one of the two.

# Errors

Backends report failures as *QueryError. Its Kind can be tested with
errors.Is against the sentinels:

	if errors.Is(err, types.ErrColumnNotFound) {
		// ...
	}
*/
package types
