package stackstep

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stackstep-io/stackstep/compiler"
)

func TestCompile(t *testing.T) {
	program, err := Compile(context.Background(), "let x = 1;")
	require.NoError(t, err)
	require.Equal(t, "let x = 1;", program.Source())
	require.Len(t, program.Blocks(), 1)
	require.Len(t, program.Lines(), 3)
	require.Empty(t, program.Diagnostics())
}

func TestCompileParseError(t *testing.T) {
	program, err := Compile(context.Background(), "let = 1;")
	require.Error(t, err)
	require.Nil(t, program)
	require.Contains(t, err.Error(), "syntax error")
}

func TestCompileWithFilename(t *testing.T) {
	program, err := Compile(context.Background(), "let = 1;", WithFilename("main.js"))
	require.Error(t, err)
	require.Nil(t, program)
	require.Contains(t, err.Error(), "main.js")

	program, err = Compile(context.Background(), "let x = 1;", WithFilename("main.js"))
	require.NoError(t, err)
	require.Equal(t, "main.js", program.Filename())
}

func TestUnsupportedSyntaxIsNotAnError(t *testing.T) {
	// Destructuring parses fine; the compiler degrades it to a
	// placeholder instruction plus a diagnostic
	program, err := Compile(context.Background(), "let { a } = obj;")
	require.NoError(t, err)
	require.NotEmpty(t, program.Lines())
	require.NotEmpty(t, program.Diagnostics())
}

func TestWithLabelGenerator(t *testing.T) {
	labels := compiler.NewLabelGenerator()
	first, err := Compile(context.Background(), "if (x) { y; }",
		WithLabelGenerator(labels))
	require.NoError(t, err)
	second, err := Compile(context.Background(), "if (x) { y; }",
		WithLabelGenerator(labels))
	require.NoError(t, err)

	// The shared generator keeps numbering across compilations
	require.Equal(t, "JUMP_IF_FALSE if_end_0", first.Lines()[1].Text)
	require.Equal(t, "JUMP_IF_FALSE if_end_1", second.Lines()[1].Text)
}

func TestIndependentCompilesAreIsolated(t *testing.T) {
	first, err := Compile(context.Background(), "if (x) { y; }")
	require.NoError(t, err)
	second, err := Compile(context.Background(), "if (x) { y; }")
	require.NoError(t, err)
	require.Equal(t, first.Lines(), second.Lines())
}

func TestResultAccessor(t *testing.T) {
	program, err := Compile(context.Background(), "1 + 2;")
	require.NoError(t, err)
	result := program.Result()
	require.NotNil(t, result)
	require.Len(t, result.Lines, 4)
	require.Equal(t, "ADD", result.Lines[2].Text)
}
