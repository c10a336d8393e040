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
	"errors"
	"fmt"
)

// ErrorKind classifies query failures.
type ErrorKind string

const (
	KindEmptyQuery            ErrorKind = "EmptyQuery"
	KindUnsupportedQuery      ErrorKind = "UnsupportedQuery"
	KindColumnNotFound        ErrorKind = "ColumnNotFound"
	KindBackendExecutionError ErrorKind = "BackendExecutionError"
)

// Sentinels for errors.Is. A *QueryError matches the sentinel of its Kind.
var (
	ErrEmptyQuery            = errors.New("empty query")
	ErrUnsupportedQuery      = errors.New("unsupported query")
	ErrColumnNotFound        = errors.New("column not found")
	ErrBackendExecutionError = errors.New("backend execution error")
)

func (k ErrorKind) sentinel() error {
	switch k {
	case KindEmptyQuery:
		return ErrEmptyQuery
	case KindUnsupportedQuery:
		return ErrUnsupportedQuery
	case KindColumnNotFound:
		return ErrColumnNotFound
	default:
		return ErrBackendExecutionError
	}
}

// QueryError is the typed failure returned by backends.
type QueryError struct {
	Kind    ErrorKind
	Message string
	// Query is the mini-query that failed.
	Query string
	// Err is the underlying driver or evaluation error, if any.
	Err error
}

// NewQueryError creates a QueryError with a formatted message.
func NewQueryError(kind ErrorKind, query string, format string, args ...interface{}) *QueryError {
	return &QueryError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Query:   query,
	}
}

// WrapQueryError creates a QueryError around err. The message is err's text.
func WrapQueryError(kind ErrorKind, query string, err error) *QueryError {
	return &QueryError{
		Kind:    kind,
		Message: err.Error(),
		Query:   query,
		Err:     err,
	}
}

func (e *QueryError) Error() string {
	return e.Message
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel of e.Kind.
func (e *QueryError) Is(target error) bool {
	return target == e.Kind.sentinel()
}

// KindOf returns the kind of err. Errors that are not a *QueryError are
// treated as backend execution errors.
func KindOf(err error) ErrorKind {
	var qe *QueryError
	if errors.As(err, &qe) {
		return qe.Kind
	}
	return KindBackendExecutionError
}
