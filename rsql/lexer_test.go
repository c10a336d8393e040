package rsql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexerTokens(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Token
	}{
		{
			name:  "keywords in any case",
			input: "select Sum(Amount) wHeRe year=2025",
			expected: []Token{
				{Type: TokenSELECT, Value: "select", Pos: 0},
				{Type: TokenIdent, Value: "Sum", Pos: 7},
				{Type: TokenLParen, Value: "(", Pos: 10},
				{Type: TokenIdent, Value: "Amount", Pos: 11},
				{Type: TokenRParen, Value: ")", Pos: 17},
				{Type: TokenWHERE, Value: "wHeRe", Pos: 19},
				{Type: TokenIdent, Value: "year", Pos: 25},
				{Type: TokenEQ, Value: "=", Pos: 29},
				{Type: TokenNumber, Value: "2025", Pos: 30},
			},
		},
		{
			name:  "string with escaped quote",
			input: "'it''s'",
			expected: []Token{
				{Type: TokenString, Value: "it's", Pos: 0},
			},
		},
		{
			name:  "quoted identifiers",
			input: "\"Sales Rep\" `Año`",
			expected: []Token{
				{Type: TokenQuotedIdent, Value: "Sales Rep", Pos: 0},
				{Type: TokenQuotedIdent, Value: "Año", Pos: 12},
			},
		},
		{
			name:  "unicode identifier",
			input: "Año",
			expected: []Token{
				{Type: TokenIdent, Value: "Año", Pos: 0},
			},
		},
		{
			name:  "operators",
			input: "a >= 1.5 ; b <> 2",
			expected: []Token{
				{Type: TokenIdent, Value: "a", Pos: 0},
				{Type: TokenOperator, Value: ">=", Pos: 2},
				{Type: TokenNumber, Value: "1.5", Pos: 5},
				{Type: TokenSemicolon, Value: ";", Pos: 9},
				{Type: TokenIdent, Value: "b", Pos: 11},
				{Type: TokenOperator, Value: "<>", Pos: 13},
				{Type: TokenNumber, Value: "2", Pos: 16},
			},
		},
		{
			name:     "blank",
			input:    "  \t\n ",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NewLexer(tt.input).Tokens())
		})
	}
}

func TestLexerUnterminatedString(t *testing.T) {
	tokens := NewLexer("WHERE Date = '2025-01").Tokens()
	require.Len(t, tokens, 4)
	assert.Equal(t, TokenIllegal, tokens[3].Type)
	assert.Equal(t, "'2025-01", tokens[3].Value)
}

func TestLexerKeywordInsideString(t *testing.T) {
	tokens := NewLexer("'x WHERE y'").Tokens()
	require.Len(t, tokens, 1)
	assert.Equal(t, TokenString, tokens[0].Type)
	assert.False(t, tokens[0].IsKeyword())
}

func TestLexerDoubleEquals(t *testing.T) {
	tokens := NewLexer("Year == 2024").Tokens()
	require.Len(t, tokens, 3)
	assert.Equal(t, TokenEQ, tokens[1].Type)
}
