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
	"strings"
	"unicode"
	"unicode/utf8"
)

// Lexer splits a mini-query into tokens. Identifiers may contain any
// unicode letter so that spreadsheet headers such as "Año" survive.
type Lexer struct {
	input   string
	pos     int // byte offset of ch
	readPos int // byte offset after ch
	ch      rune
}

// NewLexer creates a lexer positioned on the first character of input.
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

// Tokens drains the lexer. The returned slice never contains TokenEOF.
func (l *Lexer) Tokens() []Token {
	var tokens []Token
	for {
		tok := l.NextToken()
		if tok.Type == TokenEOF {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

// NextToken returns the next token, or TokenEOF at end of input.
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()
	start := l.pos

	switch l.ch {
	case 0:
		return Token{Type: TokenEOF, Pos: start}
	case ',':
		l.readChar()
		return Token{Type: TokenComma, Value: ",", Pos: start}
	case '(':
		l.readChar()
		return Token{Type: TokenLParen, Value: "(", Pos: start}
	case ')':
		l.readChar()
		return Token{Type: TokenRParen, Value: ")", Pos: start}
	case '*':
		l.readChar()
		return Token{Type: TokenAsterisk, Value: "*", Pos: start}
	case ';':
		l.readChar()
		return Token{Type: TokenSemicolon, Value: ";", Pos: start}
	case '=':
		l.readChar()
		if l.ch == '=' {
			l.readChar()
		}
		return Token{Type: TokenEQ, Value: "=", Pos: start}
	case '\'':
		return l.readQuoted('\'', TokenString)
	case '"', '`':
		return l.readQuoted(l.ch, TokenQuotedIdent)
	case '<', '>', '!':
		l.readChar()
		if l.ch == '=' || l.ch == '>' {
			l.readChar()
		}
		return Token{Type: TokenOperator, Value: l.input[start:l.pos], Pos: start}
	}

	if isLetter(l.ch) {
		return lookupIdent(l.readIdentifier(), start)
	}
	if isDigit(l.ch) {
		return Token{Type: TokenNumber, Value: l.readNumber(), Pos: start}
	}

	l.readChar()
	return Token{Type: TokenOperator, Value: l.input[start:l.pos], Pos: start}
}

func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0
		l.pos = len(l.input)
		l.readPos = len(l.input) + 1
		return
	}
	r, size := utf8.DecodeRuneInString(l.input[l.readPos:])
	l.ch = r
	l.pos = l.readPos
	l.readPos += size
}

func (l *Lexer) peekChar() rune {
	if l.readPos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPos:])
	return r
}

func (l *Lexer) readIdentifier() string {
	pos := l.pos
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[pos:l.pos]
}

func (l *Lexer) readNumber() string {
	pos := l.pos
	seenDot := false
	for isDigit(l.ch) || (l.ch == '.' && !seenDot && isDigit(l.peekChar())) {
		if l.ch == '.' {
			seenDot = true
		}
		l.readChar()
	}
	return l.input[pos:l.pos]
}

// readQuoted reads a literal delimited by quote. A doubled quote inside
// the literal stands for one quote character.
func (l *Lexer) readQuoted(quote rune, tt TokenType) Token {
	start := l.pos
	l.readChar() // opening quote
	var sb strings.Builder
	for {
		switch l.ch {
		case 0:
			return Token{Type: TokenIllegal, Value: l.input[start:], Pos: start}
		case quote:
			if l.peekChar() == quote {
				sb.WriteRune(quote)
				l.readChar()
				l.readChar()
				continue
			}
			l.readChar() // closing quote
			return Token{Type: tt, Value: sb.String(), Pos: start}
		default:
			sb.WriteRune(l.ch)
			l.readChar()
		}
	}
}

func (l *Lexer) skipWhitespace() {
	for l.ch != 0 && unicode.IsSpace(l.ch) {
		l.readChar()
	}
}

func isLetter(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}
