package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allTokens(t *testing.T, source string) []Token {
	t.Helper()
	l := New(source, "test.zinc")
	var toks []Token
	for {
		tok, err := l.NextToken()
		require.NoError(t, err)
		toks = append(toks, tok)
		if tok.Type == TokenEOF {
			break
		}
	}
	return toks
}

func TestLexer_Keywords(t *testing.T) {
	toks := allTokens(t, "let fn if else while return true false")
	want := []TokenType{
		TokenLet, TokenFn, TokenIf, TokenElse, TokenWhile, TokenReturn,
		TokenTrue, TokenFalse, TokenEOF,
	}
	require.Len(t, toks, len(want))
	for i, w := range want {
		assert.Equal(t, w, toks[i].Type, "token %d", i)
	}
}

func TestLexer_IdentifierRoundTrip(t *testing.T) {
	for _, name := range []string{"x", "_private", "camelCase", "snake_case_2"} {
		toks := allTokens(t, name)
		require.Len(t, toks, 2)
		assert.Equal(t, TokenIdentifier, toks[0].Type)
		assert.Equal(t, name, toks[0].Lexeme)
	}
}

func TestLexer_NumberRoundTrip(t *testing.T) {
	for _, n := range []string{"0", "7", "123456789"} {
		toks := allTokens(t, n)
		require.Len(t, toks, 2)
		assert.Equal(t, TokenNumber, toks[0].Type)
		assert.Equal(t, n, toks[0].Lexeme)
	}
}

func TestLexer_MaximalMunch(t *testing.T) {
	tests := []struct {
		source string
		want   TokenType
	}{
		{"==", TokenEqual},
		{"!=", TokenNotEqual},
		{"<=", TokenLessEqual},
		{">=", TokenGreaterEqual},
		{"&&", TokenAnd},
		{"||", TokenOr},
		{"<<", TokenShl},
		{">>", TokenShr},
	}
	for _, tt := range tests {
		toks := allTokens(t, tt.source)
		require.Len(t, toks, 2, tt.source)
		assert.Equal(t, tt.want, toks[0].Type, tt.source)
		assert.Equal(t, tt.source, toks[0].Lexeme, tt.source)
	}
}

func TestLexer_StringLiteral_EscapesKeptRaw(t *testing.T) {
	toks := allTokens(t, `"hello\nworld"`)
	require.Len(t, toks, 2)
	assert.Equal(t, TokenString, toks[0].Type)
	assert.Equal(t, `hello\nworld`, toks[0].Lexeme)
}

func TestLexer_UnterminatedString(t *testing.T) {
	l := New(`"abc`, "test.zinc")
	_, err := l.NextToken()
	require.Error(t, err)
}

func TestLexer_UnterminatedBlockComment(t *testing.T) {
	l := New("/* never closes", "test.zinc")
	_, err := l.NextToken()
	require.Error(t, err)
}

func TestLexer_LineComment(t *testing.T) {
	toks := allTokens(t, "let x = 1 // trailing comment\nlet y = 2")
	var kinds []TokenType
	for _, tok := range toks {
		kinds = append(kinds, tok.Type)
	}
	assert.NotContains(t, kinds, TokenInvalid)
}

func TestLexer_PositionTracking(t *testing.T) {
	toks := allTokens(t, "let\n  x")
	require.Len(t, toks, 3)
	assert.Equal(t, 1, toks[0].Position.Line)
	assert.Equal(t, 2, toks[1].Position.Line)
	assert.Equal(t, 3, toks[1].Position.Column)
}
