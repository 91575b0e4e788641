package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stackstep-io/stackstep/token"
)

func tokenize(t *testing.T, input string) []token.Token {
	t.Helper()
	tokens, err := New(input).Tokenize()
	require.NoError(t, err)
	return tokens
}

func TestSimpleStatement(t *testing.T) {
	tokens := tokenize(t, "let x = 10;")
	types := make([]token.Type, 0, len(tokens))
	for _, tok := range tokens {
		types = append(types, tok.Type)
	}
	require.Equal(t, []token.Type{
		token.LET,
		token.IDENT,
		token.ASSIGN,
		token.NUMBER,
		token.SEMICOLON,
		token.EOF,
	}, types)
	require.Equal(t, "x", tokens[1].Literal)
	require.Equal(t, "10", tokens[3].Literal)
}

func TestOperators(t *testing.T) {
	tests := []struct {
		input string
		want  token.Type
	}{
		{"==", token.EQ},
		{"===", token.STRICT_EQ},
		{"!=", token.NOT_EQ},
		{"!==", token.STRICT_NOTEQ},
		{"<=", token.LT_EQUALS},
		{">=", token.GT_EQUALS},
		{"&&", token.AND},
		{"||", token.OR},
		{"??", token.NULLISH},
		{"...", token.SPREAD},
		{"++", token.PLUS_PLUS},
		{"--", token.MINUS_MINUS},
		{"%", token.MOD},
		{"?", token.QUESTION},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tok, err := New(tt.input).Next()
			require.NoError(t, err)
			require.Equal(t, tt.want, tok.Type)
			require.Equal(t, tt.input, tok.Literal)
		})
	}
}

func TestKeywords(t *testing.T) {
	tokens := tokenize(t, "if else while for in of switch case default break continue function return import export from as let const var true false null")
	want := []token.Type{
		token.IF, token.ELSE, token.WHILE, token.FOR, token.IN, token.OF,
		token.SWITCH, token.CASE, token.DEFAULT, token.BREAK, token.CONTINUE,
		token.FUNCTION, token.RETURN, token.IMPORT, token.EXPORT, token.FROM,
		token.AS, token.LET, token.CONST, token.VAR, token.TRUE, token.FALSE,
		token.NULL, token.EOF,
	}
	require.Len(t, tokens, len(want))
	for i, tok := range tokens {
		require.Equal(t, want[i], tok.Type, tok.Literal)
	}
}

func TestNumbers(t *testing.T) {
	tokens := tokenize(t, "1 42 3.14")
	require.Equal(t, "1", tokens[0].Literal)
	require.Equal(t, "42", tokens[1].Literal)
	require.Equal(t, "3.14", tokens[2].Literal)
	for _, tok := range tokens[:3] {
		require.Equal(t, token.NUMBER, tok.Type)
	}
}

func TestStrings(t *testing.T) {
	tok, err := New(`"hello"`).Next()
	require.NoError(t, err)
	require.Equal(t, token.STRING, tok.Type)
	require.Equal(t, "hello", tok.Literal)

	tok, err = New(`'it\'s'`).Next()
	require.NoError(t, err)
	require.Equal(t, "it's", tok.Literal)

	tok, err = New(`"a\nb\tc"`).Next()
	require.NoError(t, err)
	require.Equal(t, "a\nb\tc", tok.Literal)
}

func TestUnterminatedString(t *testing.T) {
	_, err := New(`"abc`).Next()
	require.Error(t, err)
	require.Contains(t, err.Error(), "unterminated string")
}

func TestTemplateLiteral(t *testing.T) {
	tok, err := New("`hi ${name}`").Next()
	require.NoError(t, err)
	require.Equal(t, token.TEMPLATE, tok.Type)
	require.Equal(t, "hi ${name}", tok.Literal)
}

func TestUnterminatedTemplate(t *testing.T) {
	_, err := New("`abc").Next()
	require.Error(t, err)
	require.Contains(t, err.Error(), "unterminated template")
}

func TestComments(t *testing.T) {
	tokens := tokenize(t, "a // comment\nb /* inline */ c")
	var idents []string
	for _, tok := range tokens {
		if tok.Type == token.IDENT {
			idents = append(idents, tok.Literal)
		}
	}
	require.Equal(t, []string{"a", "b", "c"}, idents)
}

func TestPositions(t *testing.T) {
	tokens := tokenize(t, "let x\nlet y")
	// "let" at line 1, column 1
	require.Equal(t, 1, tokens[0].StartPosition.LineNumber())
	require.Equal(t, 1, tokens[0].StartPosition.ColumnNumber())
	// "x" at line 1, column 5
	require.Equal(t, 5, tokens[1].StartPosition.ColumnNumber())
	// second "let" at line 2, column 1
	require.Equal(t, 2, tokens[2].StartPosition.LineNumber())
	require.Equal(t, 1, tokens[2].StartPosition.ColumnNumber())
}

func TestFilenameOnPositions(t *testing.T) {
	l := New("x")
	l.SetFilename("main.js")
	tok, err := l.Next()
	require.NoError(t, err)
	require.Equal(t, "main.js", tok.StartPosition.File)
}

func TestIllegalCharacter(t *testing.T) {
	_, err := New("@").Next()
	require.Error(t, err)
	require.Contains(t, err.Error(), "unexpected character")
}

func TestLineText(t *testing.T) {
	l := New("let x = 1;\nlet y = 2;")
	var tokens []token.Token
	tokens, err := l.Tokenize()
	require.NoError(t, err)
	require.Equal(t, "let x = 1;", l.LineText(tokens[0].StartPosition))
	// "y" is the 7th token (index 6)
	require.Equal(t, "let y = 2;", l.LineText(tokens[6].StartPosition))
}

func TestEOFIsSticky(t *testing.T) {
	l := New("")
	for i := 0; i < 3; i++ {
		tok, err := l.Next()
		require.NoError(t, err)
		require.Equal(t, token.EOF, tok.Type)
	}
}
