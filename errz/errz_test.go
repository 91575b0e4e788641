package errz

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stackstep-io/stackstep/token"
)

func TestError(t *testing.T) {
	err := NewSyntaxError(token.Position{Line: 2, Column: 4}, "", "unexpected token")
	require.Equal(t, "syntax error: unexpected token (line 3, column 5)", err.Error())
}

func TestErrorWithFile(t *testing.T) {
	pos := token.Position{Line: 0, Column: 8, File: "main.js"}
	err := NewSyntaxErrorf(pos, "", "unexpected token %q", "}")
	require.Equal(t, `syntax error: unexpected token "}" (main.js:1:9)`, err.Error())
}

func TestFriendlyMessage(t *testing.T) {
	pos := token.Position{Line: 0, Column: 4}
	err := NewSyntaxError(pos, "let = 1;", "expected an identifier")
	want := "syntax error: expected an identifier (line 1, column 5)\n" +
		" | let = 1;\n" +
		" |     ^"
	require.Equal(t, want, err.FriendlyMessage())
}

func TestFriendlyMessageWithoutSource(t *testing.T) {
	err := NewSyntaxError(token.Position{}, "", "oops")
	require.Equal(t, err.Error(), err.FriendlyMessage())
}
