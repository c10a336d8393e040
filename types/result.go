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

package types

import (
	"encoding/json"
)

// Result is a successful query result. Every row has len(Columns) values.
type Result struct {
	Columns []string `json:"columns" yaml:"columns"`
	Rows    [][]any  `json:"rows" yaml:"rows"`
}

// NewResult returns an empty result with the given columns. Rows is
// non-nil so that it encodes as [] rather than null.
func NewResult(columns ...string) *Result {
	return &Result{Columns: columns, Rows: [][]any{}}
}

// ColumnIndex returns the position of name in Columns, or -1.
func (r *Result) ColumnIndex(name string) int {
	for i, c := range r.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Failure is the error shape returned across the service boundary.
type Failure struct {
	Error string    `json:"error" yaml:"error"`
	Query string    `json:"query" yaml:"query"`
	Kind  ErrorKind `json:"kind,omitempty" yaml:"kind,omitempty"`
}

// NewFailure converts err into a Failure that echoes query.
func NewFailure(err error, query string) *Failure {
	return &Failure{
		Error: err.Error(),
		Query: query,
		Kind:  KindOf(err),
	}
}

// Response holds exactly one of Result and Failure.
type Response struct {
	Result  *Result
	Failure *Failure
}

// Succeed wraps a result.
func Succeed(r *Result) Response {
	return Response{Result: r}
}

// Fail wraps err as a failure for query.
func Fail(err error, query string) Response {
	return Response{Failure: NewFailure(err, query)}
}

// OK reports whether the response carries a result.
func (r Response) OK() bool {
	return r.Failure == nil && r.Result != nil
}

// Value returns the populated half of the response, for encoders that
// work on plain values such as yaml.
func (r Response) Value() any {
	if r.Failure != nil {
		return r.Failure
	}
	return r.Result
}

// MarshalJSON encodes whichever half is populated.
func (r Response) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Value())
}
