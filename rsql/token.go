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

import "strings"

// TokenType identifies the lexical class of a Token.
type TokenType int

const (
	TokenEOF TokenType = iota
	// TokenIllegal carries input the lexer could not classify, such as an
	// unterminated string literal.
	TokenIllegal
	TokenIdent
	// TokenQuotedIdent is an identifier written as "name" or `name`; the
	// value holds the name without quotes.
	TokenQuotedIdent
	TokenNumber
	// TokenString is a single-quoted literal; the value holds the content
	// without quotes.
	TokenString
	TokenComma
	TokenLParen
	TokenRParen
	TokenAsterisk
	TokenEQ
	TokenSemicolon
	// TokenOperator covers comparison and arithmetic operators the dialect
	// does not understand. They are kept so that warnings can echo them.
	TokenOperator

	TokenSELECT
	TokenFROM
	TokenWHERE
	TokenGROUP
	TokenORDER
	TokenBY
	TokenLIMIT
	TokenDISTINCT
	TokenAND
	TokenBETWEEN
	TokenASC
	TokenDESC
)

var tokenNames = map[TokenType]string{
	TokenEOF:         "EOF",
	TokenIllegal:     "ILLEGAL",
	TokenIdent:       "IDENT",
	TokenQuotedIdent: "QUOTED_IDENT",
	TokenNumber:      "NUMBER",
	TokenString:      "STRING",
	TokenComma:       ",",
	TokenLParen:      "(",
	TokenRParen:      ")",
	TokenAsterisk:    "*",
	TokenEQ:          "=",
	TokenSemicolon:   ";",
	TokenOperator:    "OPERATOR",
	TokenSELECT:      "SELECT",
	TokenFROM:        "FROM",
	TokenWHERE:       "WHERE",
	TokenGROUP:       "GROUP",
	TokenORDER:       "ORDER",
	TokenBY:          "BY",
	TokenLIMIT:       "LIMIT",
	TokenDISTINCT:    "DISTINCT",
	TokenAND:         "AND",
	TokenBETWEEN:     "BETWEEN",
	TokenASC:         "ASC",
	TokenDESC:        "DESC",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// Token is a single lexical unit. Pos is the byte offset of the token in
// the original input.
type Token struct {
	Type  TokenType
	Value string
	Pos   int
}

// IsKeyword reports whether the token is a reserved word of the dialect.
func (t Token) IsKeyword() bool {
	return t.Type >= TokenSELECT
}

// text renders the token the way it would appear in a mini-query.
func (t Token) text() string {
	switch t.Type {
	case TokenString:
		return "'" + strings.ReplaceAll(t.Value, "'", "''") + "'"
	case TokenQuotedIdent:
		return `"` + strings.ReplaceAll(t.Value, `"`, `""`) + `"`
	default:
		return t.Value
	}
}

var keywords = map[string]TokenType{
	"SELECT":   TokenSELECT,
	"FROM":     TokenFROM,
	"WHERE":    TokenWHERE,
	"GROUP":    TokenGROUP,
	"ORDER":    TokenORDER,
	"BY":       TokenBY,
	"LIMIT":    TokenLIMIT,
	"DISTINCT": TokenDISTINCT,
	"AND":      TokenAND,
	"BETWEEN":  TokenBETWEEN,
	"ASC":      TokenASC,
	"DESC":     TokenDESC,
}

func lookupIdent(ident string, pos int) Token {
	if tt, ok := keywords[strings.ToUpper(ident)]; ok {
		return Token{Type: tt, Value: ident, Pos: pos}
	}
	return Token{Type: TokenIdent, Value: ident, Pos: pos}
}
