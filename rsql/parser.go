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
	"strconv"
	"strings"
)

type clauseKind int

const (
	clauseSelect clauseKind = iota
	clauseFrom
	clauseWhere
	clauseGroupBy
	clauseOrderBy
	clauseLimit
	clauseCount
)

var clauseNames = [clauseCount]string{"SELECT", "FROM", "WHERE", "GROUP BY", "ORDER BY", "LIMIT"}

type clauseSpan struct {
	present bool
	keyword Token
	body    []Token
}

// Parser turns a mini-query into a Command. It is lenient: apart from a
// blank input it never fails, and whatever it cannot understand is
// dropped and reported in Command.Warnings.
type Parser struct {
	input    string
	lexer    *Lexer
	warnings []*ParseError
}

// NewParser creates a parser for input.
func NewParser(input string) *Parser {
	return &Parser{
		input: input,
		lexer: NewLexer(input),
	}
}

// Parse is shorthand for NewParser(text).Parse().
func Parse(text string) (*Command, error) {
	return NewParser(text).Parse()
}

// Parse parses the whole input. The only error it returns is a
// *ParseError of type ErrorTypeEmptyQuery.
func (p *Parser) Parse() (*Command, error) {
	tokens, ok := p.tokenize()
	if !ok {
		return nil, newEmptyQueryError()
	}
	clauses := p.splitClauses(tokens)

	cmd := &Command{Text: p.input}
	cmd.Select = p.parseSelect(clauses[clauseSelect])
	cmd.Where = p.parseWhere(clauses[clauseWhere])
	cmd.GroupBy = p.parseGroupBy(clauses[clauseGroupBy])
	cmd.OrderBy = p.parseOrderBy(clauses[clauseOrderBy])
	cmd.Limit = p.parseLimit(clauses[clauseLimit])
	cmd.Warnings = p.warnings
	return cmd, nil
}

func (p *Parser) warn(t ErrorType, message string, span []Token) {
	p.warnings = append(p.warnings, newWarning(t, message, span))
}

// tokenize lexes the input up to the first semicolon. It reports false
// when there is nothing but whitespace and semicolons.
func (p *Parser) tokenize() ([]Token, bool) {
	all := p.lexer.Tokens()
	nonBlank := false
	for _, t := range all {
		if t.Type != TokenSemicolon {
			nonBlank = true
			break
		}
	}
	if !nonBlank {
		return nil, false
	}

	var tokens []Token
	for i, t := range all {
		if t.Type == TokenSemicolon {
			if rest := trimSemicolons(all[i+1:]); len(rest) > 0 {
				p.warn(ErrorTypeIgnoredTokens, "text after ';' ignored", rest)
			}
			break
		}
		if t.Type == TokenIllegal {
			p.warn(ErrorTypeUnterminatedString, "unterminated quoted text ignored", []Token{t})
			continue
		}
		tokens = append(tokens, t)
	}
	return tokens, true
}

func trimSemicolons(tokens []Token) []Token {
	var out []Token
	for _, t := range tokens {
		if t.Type != TokenSemicolon {
			out = append(out, t)
		}
	}
	return out
}

// clauseAt reports whether a clause keyword starts at tokens[i] and how
// many tokens the keyword occupies.
func clauseAt(tokens []Token, i int) (clauseKind, int, bool) {
	switch tokens[i].Type {
	case TokenSELECT:
		return clauseSelect, 1, true
	case TokenFROM:
		return clauseFrom, 1, true
	case TokenWHERE:
		return clauseWhere, 1, true
	case TokenLIMIT:
		return clauseLimit, 1, true
	case TokenGROUP:
		if i+1 < len(tokens) && tokens[i+1].Type == TokenBY {
			return clauseGroupBy, 2, true
		}
	case TokenORDER:
		if i+1 < len(tokens) && tokens[i+1].Type == TokenBY {
			return clauseOrderBy, 2, true
		}
	}
	return 0, 0, false
}

// splitClauses cuts the token stream at clause keywords. Each clause body
// runs up to the next clause keyword. The first occurrence of a clause
// wins.
func (p *Parser) splitClauses(tokens []Token) [clauseCount]clauseSpan {
	var spans [clauseCount]clauseSpan
	var leading, discarded []Token
	current := -1
	highest := clauseKind(-1)

	for i := 0; i < len(tokens); i++ {
		kind, width, ok := clauseAt(tokens, i)
		if !ok {
			switch {
			case current >= 0:
				spans[current].body = append(spans[current].body, tokens[i])
			case current == -1:
				leading = append(leading, tokens[i])
			default:
				discarded = append(discarded, tokens[i])
			}
			continue
		}

		keyword := tokens[i : i+width]
		i += width - 1
		if spans[kind].present {
			p.warn(ErrorTypeDuplicateClause, "duplicate "+clauseNames[kind]+" clause ignored", keyword)
			current = -2
			continue
		}
		if kind < highest {
			p.warn(ErrorTypeClauseOrder, clauseNames[kind]+" clause out of order", keyword)
		} else {
			highest = kind
		}
		spans[kind].present = true
		spans[kind].keyword = keyword[0]
		current = int(kind)
	}

	if len(leading) > 0 {
		p.warn(ErrorTypeIgnoredTokens, "text before the first clause ignored", leading)
	}
	if len(discarded) > 0 {
		p.warn(ErrorTypeIgnoredTokens, "body of duplicate clause ignored", discarded)
	}
	return spans
}

func (p *Parser) parseSelect(span clauseSpan) Select {
	if !span.present {
		p.warn(ErrorTypeUnsupportedSelect, "missing SELECT clause", nil)
		return Select{Kind: SelectNone}
	}
	body := span.body
	if len(body) == 0 {
		p.warn(ErrorTypeUnsupportedSelect, "empty select list", []Token{span.keyword})
		return Select{Kind: SelectNone}
	}
	if len(body) == 1 && body[0].Type == TokenAsterisk {
		return Select{Kind: SelectAll}
	}

	// The leftmost aggregate call decides the shape; anything next to it
	// is dropped.
	if agg, start, end, ok := findAggregate(body); ok {
		if start > 0 || end < len(body) {
			ignored := append(append([]Token(nil), body[:start]...), body[end:]...)
			p.warn(ErrorTypeIgnoredTokens, "select items next to the aggregate ignored", ignored)
		}
		return Select{Kind: SelectAggregate, Aggregate: &agg}
	}

	if body[0].Type == TokenDISTINCT {
		if name, ok := identifierOf(body[1:]); ok {
			return Select{Kind: SelectDistinct, Columns: []string{name}}
		}
		p.warn(ErrorTypeUnsupportedSelect, "DISTINCT takes a single column", body)
		return Select{Kind: SelectNone}
	}

	var columns []string
	for _, item := range splitComma(body) {
		name, ok := identifierOf(item)
		if !ok {
			p.warn(ErrorTypeUnsupportedSelect, "unsupported select list", body)
			return Select{Kind: SelectNone}
		}
		columns = append(columns, name)
	}
	return Select{Kind: SelectColumns, Columns: columns}
}

func findAggregate(body []Token) (Aggregate, int, int, bool) {
	for i := range body {
		if agg, n, ok := parseAggregateCall(body[i:]); ok {
			return agg, i, i + n, true
		}
	}
	return Aggregate{}, 0, 0, false
}

// parseAggregateCall parses FN(*), FN(col) or FN(DISTINCT col) at the
// start of tokens and returns the number of tokens consumed.
func parseAggregateCall(tokens []Token) (Aggregate, int, bool) {
	if len(tokens) < 4 || tokens[0].Type != TokenIdent || tokens[1].Type != TokenLParen {
		return Aggregate{}, 0, false
	}
	fn, ok := LookupAggregateFunc(tokens[0].Value)
	if !ok {
		return Aggregate{}, 0, false
	}
	closing := -1
	for j := 2; j < len(tokens); j++ {
		if tokens[j].Type == TokenLParen {
			return Aggregate{}, 0, false
		}
		if tokens[j].Type == TokenRParen {
			closing = j
			break
		}
	}
	if closing < 0 {
		return Aggregate{}, 0, false
	}

	args := tokens[2:closing]
	agg := Aggregate{Func: fn}
	switch {
	case len(args) == 1 && args[0].Type == TokenAsterisk:
		agg.Star = true
	case len(args) > 1 && args[0].Type == TokenDISTINCT:
		name, ok := identifierOf(args[1:])
		if !ok {
			return Aggregate{}, 0, false
		}
		agg.Distinct = true
		agg.Column = name
	default:
		name, ok := identifierOf(args)
		if !ok {
			return Aggregate{}, 0, false
		}
		agg.Column = name
	}
	return agg, closing + 1, true
}

// ParseAggregate parses text that consists of exactly one aggregate call,
// such as "sum(amount)" or "COUNT(DISTINCT rep)".
func ParseAggregate(text string) (Aggregate, bool) {
	tokens := NewLexer(text).Tokens()
	agg, n, ok := parseAggregateCall(tokens)
	if !ok || n != len(tokens) {
		return Aggregate{}, false
	}
	return agg, true
}

// identifierOf accepts a single quoted identifier or a run of bare words,
// which it joins with single spaces so headers like Sales Rep work
// unquoted.
func identifierOf(tokens []Token) (string, bool) {
	if len(tokens) == 0 {
		return "", false
	}
	if len(tokens) == 1 && tokens[0].Type == TokenQuotedIdent {
		return tokens[0].Value, tokens[0].Value != ""
	}
	if tokens[0].Type != TokenIdent {
		return "", false
	}
	words := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t.Type != TokenIdent && t.Type != TokenNumber {
			return "", false
		}
		words = append(words, t.Value)
	}
	return strings.Join(words, " "), true
}

func splitComma(tokens []Token) [][]Token {
	var items [][]Token
	var current []Token
	for _, t := range tokens {
		if t.Type == TokenComma {
			items = append(items, current)
			current = nil
			continue
		}
		current = append(current, t)
	}
	return append(items, current)
}

func (p *Parser) parseWhere(span clauseSpan) []Predicate {
	if !span.present {
		return nil
	}
	body := span.body
	if len(body) == 0 {
		p.warn(ErrorTypeUnrecognizedPredicate, "empty WHERE clause", []Token{span.keyword})
		return nil
	}

	var preds []Predicate
	var dropped []Token
	seen := make(map[PredicateKind]bool)
	flush := func() {
		if len(dropped) > 0 {
			p.warn(ErrorTypeUnrecognizedPredicate, "unrecognized predicate ignored", dropped)
			dropped = nil
		}
	}

	for i := 0; i < len(body); {
		if pred, n, ok := matchPredicate(body[i:]); ok {
			flush()
			if seen[pred.Kind] {
				p.warn(ErrorTypeDuplicatePredicate, "repeated "+pred.Kind.String()+" predicate ignored", body[i:i+n])
			} else {
				seen[pred.Kind] = true
				preds = append(preds, pred)
			}
			i += n
			continue
		}
		if body[i].Type == TokenAND {
			flush()
			i++
			continue
		}
		dropped = append(dropped, body[i])
		i++
	}
	flush()
	return preds
}

// matchPredicate recognizes one of the four predicate forms at the start
// of tokens.
func matchPredicate(tokens []Token) (Predicate, int, bool) {
	if len(tokens) < 3 {
		return Predicate{}, 0, false
	}
	if tokens[0].Type != TokenIdent && tokens[0].Type != TokenQuotedIdent {
		return Predicate{}, 0, false
	}
	name := strings.ToLower(tokens[0].Value)

	switch {
	case name == "year" && tokens[1].Type == TokenEQ && isIntLiteral(tokens[2], 4, 4):
		v, _ := strconv.Atoi(tokens[2].Value)
		return Predicate{Kind: PredicateYear, Value: v}, 3, true
	case name == "month" && tokens[1].Type == TokenEQ && isIntLiteral(tokens[2], 1, 2):
		v, _ := strconv.Atoi(tokens[2].Value)
		return Predicate{Kind: PredicateMonth, Value: v}, 3, true
	case name == "date" && tokens[1].Type == TokenEQ && isDateLiteral(tokens[2]):
		return Predicate{Kind: PredicateDate, Day: tokens[2].Value}, 3, true
	case name == "date" && tokens[1].Type == TokenBETWEEN && len(tokens) >= 5 &&
		isDateLiteral(tokens[2]) && tokens[3].Type == TokenAND && isDateLiteral(tokens[4]):
		return Predicate{Kind: PredicateDateBetween, From: tokens[2].Value, To: tokens[4].Value}, 5, true
	}
	return Predicate{}, 0, false
}

func isIntLiteral(t Token, minDigits, maxDigits int) bool {
	if t.Type != TokenNumber || strings.Contains(t.Value, ".") {
		return false
	}
	return len(t.Value) >= minDigits && len(t.Value) <= maxDigits
}

// isDateLiteral accepts quoted strings made of digits and dashes only.
// Calendar validity is left to the backend.
func isDateLiteral(t Token) bool {
	if t.Type != TokenString || t.Value == "" {
		return false
	}
	digits := 0
	for _, r := range t.Value {
		switch {
		case isDigit(r):
			digits++
		case r == '-':
		default:
			return false
		}
	}
	return digits > 0
}

func (p *Parser) parseGroupBy(span clauseSpan) string {
	if !span.present {
		return ""
	}
	name, ok := identifierOf(span.body)
	if !ok {
		p.warn(ErrorTypeInvalidGroupBy, "GROUP BY takes a single column", append([]Token{span.keyword}, span.body...))
		return ""
	}
	return name
}

func (p *Parser) parseOrderBy(span clauseSpan) *OrderBy {
	if !span.present {
		return nil
	}
	body := span.body
	desc := false
	if n := len(body); n > 0 && (body[n-1].Type == TokenASC || body[n-1].Type == TokenDESC) {
		desc = body[n-1].Type == TokenDESC
		body = body[:n-1]
	}
	if len(body) > 0 {
		if agg, n, ok := parseAggregateCall(body); ok && n == len(body) {
			return &OrderBy{Aggregate: &agg, Desc: desc}
		}
		if name, ok := identifierOf(body); ok {
			return &OrderBy{Column: name, Desc: desc}
		}
	}
	p.warn(ErrorTypeInvalidOrderBy, "ORDER BY takes a column or an aggregate call", append([]Token{span.keyword}, span.body...))
	return nil
}

func (p *Parser) parseLimit(span clauseSpan) *int {
	if !span.present {
		return nil
	}
	if len(span.body) == 1 && isIntLiteral(span.body[0], 1, 18) {
		if n, err := strconv.Atoi(span.body[0].Value); err == nil {
			return &n
		}
	}
	p.warn(ErrorTypeInvalidLimit, "LIMIT takes a non-negative integer", append([]Token{span.keyword}, span.body...))
	return nil
}
