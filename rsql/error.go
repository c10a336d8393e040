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

package rsql

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType classifies parse problems.
type ErrorType int

const (
	// ErrorTypeEmptyQuery is the only fatal parse error: the input was blank.
	ErrorTypeEmptyQuery ErrorType = iota
	ErrorTypeUnsupportedSelect
	ErrorTypeUnrecognizedPredicate
	ErrorTypeDuplicatePredicate
	ErrorTypeDuplicateClause
	ErrorTypeClauseOrder
	ErrorTypeInvalidGroupBy
	ErrorTypeInvalidOrderBy
	ErrorTypeInvalidLimit
	ErrorTypeIgnoredTokens
	ErrorTypeUnterminatedString
)

// ParseError describes a problem found while parsing a mini-query. Every
// type except ErrorTypeEmptyQuery is recoverable: the parser records it as
// a warning on the Command and carries on without the offending text.
type ParseError struct {
	Type        ErrorType
	Message     string
	Position    int
	Token       string
	Context     string
	Recoverable bool
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("[%s] %s", e.getErrorTypeName(), e.Message))
	if e.Position >= 0 {
		builder.WriteString(fmt.Sprintf(" at position %d", e.Position))
	}
	if e.Token != "" {
		builder.WriteString(fmt.Sprintf(" (found '%s')", e.Token))
	}
	if e.Context != "" {
		builder.WriteString(fmt.Sprintf("\nContext: %s", e.Context))
	}
	return builder.String()
}

func (e *ParseError) getErrorTypeName() string {
	switch e.Type {
	case ErrorTypeEmptyQuery:
		return "EMPTY_QUERY"
	case ErrorTypeUnsupportedSelect:
		return "UNSUPPORTED_SELECT"
	case ErrorTypeUnrecognizedPredicate:
		return "UNRECOGNIZED_PREDICATE"
	case ErrorTypeDuplicatePredicate:
		return "DUPLICATE_PREDICATE"
	case ErrorTypeDuplicateClause:
		return "DUPLICATE_CLAUSE"
	case ErrorTypeClauseOrder:
		return "CLAUSE_ORDER"
	case ErrorTypeInvalidGroupBy:
		return "INVALID_GROUP_BY"
	case ErrorTypeInvalidOrderBy:
		return "INVALID_ORDER_BY"
	case ErrorTypeInvalidLimit:
		return "INVALID_LIMIT"
	case ErrorTypeIgnoredTokens:
		return "IGNORED_TOKENS"
	case ErrorTypeUnterminatedString:
		return "UNTERMINATED_STRING"
	default:
		return "UNKNOWN_ERROR"
	}
}

// IsRecoverable reports whether parsing continued past this error.
func (e *ParseError) IsRecoverable() bool {
	return e.Recoverable
}

// IsEmptyQuery reports whether err is the blank-input parse error.
func IsEmptyQuery(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe) && pe.Type == ErrorTypeEmptyQuery
}

func newEmptyQueryError() *ParseError {
	return &ParseError{
		Type:     ErrorTypeEmptyQuery,
		Message:  "empty query",
		Position: 0,
	}
}

// newWarning builds a recoverable error for the text covered by span.
func newWarning(t ErrorType, message string, span []Token) *ParseError {
	pos := -1
	if len(span) > 0 {
		pos = span[0].Pos
	}
	return &ParseError{
		Type:        t,
		Message:     message,
		Position:    pos,
		Token:       spanText(span),
		Recoverable: true,
	}
}

// FormatErrorContext renders the input around position with a caret under
// the offending character.
func FormatErrorContext(input string, position int, contextLength int) string {
	if position < 0 || position >= len(input) {
		return ""
	}
	start := position - contextLength
	if start < 0 {
		start = 0
	}
	end := position + contextLength
	if end > len(input) {
		end = len(input)
	}
	pointer := strings.Repeat(" ", position-start) + "^"
	return fmt.Sprintf("%s\n%s", input[start:end], pointer)
}

func spanText(span []Token) string {
	parts := make([]string, 0, len(span))
	for _, t := range span {
		parts = append(parts, t.text())
	}
	return strings.Join(parts, " ")
}
