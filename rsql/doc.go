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
Package rsql parses mini-queries, the restricted SQL-like dialect accepted
by mcpsql, into a structured Command.

# Supported Syntax

	SELECT * | col[, col...] | DISTINCT col | FN(*) | FN(col) | FN(DISTINCT col)
	[FROM ignored]
	[WHERE pred [AND pred ...]]
	[GROUP BY col]
	[ORDER BY col | FN(arg) [ASC|DESC]]
	[LIMIT n]

FN is one of SUM, AVG, MAX, MIN and COUNT. Only four predicates are
understood:

	Year = 2025
	Month = 7
	Date = '2025-07-01'
	Date BETWEEN '2025-07-01' AND '2025-07-31'

Keywords, function names and the predicate column names are matched in
any letter case. Column names are kept exactly as written; resolving them
against a live schema is the job of package schema.

# Leniency

The dialect never rejects a query for what it does not understand. Text
that cannot be parsed is dropped and recorded as a recoverable *ParseError
in Command.Warnings:

	cmd, _ := rsql.Parse("SELECT SUM(Amount) WHERE Region = 'North' AND Year = 2025")
	// cmd.Where holds only Year = 2025
	// cmd.Warnings[0].Type == rsql.ErrorTypeUnrecognizedPredicate

The only fatal error is blank input, reported as ErrorTypeEmptyQuery.

# Lexical Analysis

The Lexer produces tokens for identifiers, numbers, single-quoted strings
and double-quoted or backtick-quoted identifiers. Because clause keywords
are recognized on tokens rather than raw text, a keyword inside a string
literal never splits a clause.
*/
package rsql
