package compiler

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stackstep-io/stackstep/op"
	"github.com/stackstep-io/stackstep/parser"
)

func compileSource(t *testing.T, source string) *Result {
	t.Helper()
	program, err := parser.Parse(context.Background(), source)
	require.NoError(t, err)
	return New().Compile(Split(program))
}

func texts(result *Result) []string {
	out := make([]string, 0, len(result.Lines))
	for _, line := range result.Lines {
		out = append(out, line.Text)
	}
	return out
}

func countOp(result *Result, code op.Code) int {
	n := 0
	for _, line := range result.Lines {
		if line.Opcode == code {
			n++
		}
	}
	return n
}

func TestVariableDeclaration(t *testing.T) {
	result := compileSource(t, "let x = 1;")
	require.Equal(t, []string{
		"DECLARE_VAR x",
		"PUSH_CONST 1",
		"STORE_VAR x",
	}, texts(result))
	require.Empty(t, result.Diagnostics)
}

func TestMultipleDeclarators(t *testing.T) {
	result := compileSource(t, "let a, b = 2;")
	require.Equal(t, []string{
		"DECLARE_VAR a",
		"DECLARE_VAR b",
		"PUSH_CONST 2",
		"STORE_VAR b",
	}, texts(result))
}

func TestDestructuringDeclaration(t *testing.T) {
	result := compileSource(t, "let { a, b } = obj;")
	require.NotEmpty(t, result.Lines)
	require.Equal(t, []string{"UNSUPPORTED Destructuring"}, texts(result))
	require.NotEmpty(t, result.Diagnostics)
	found := false
	for _, d := range result.Diagnostics {
		if strings.Contains(d.Message, "Destructuring") {
			found = true
		}
	}
	require.True(t, found, "expected a diagnostic mentioning Destructuring")
}

func TestDestructuringSiblingStillCompiles(t *testing.T) {
	result := compileSource(t, "let [a] = xs, b = 1;")
	require.Equal(t, []string{
		"UNSUPPORTED Destructuring",
		"DECLARE_VAR b",
		"PUSH_CONST 1",
		"STORE_VAR b",
	}, texts(result))
	require.Len(t, result.Diagnostics, 1)
}

func TestIfWithoutElse(t *testing.T) {
	result := compileSource(t, "if (x) { y; }")
	require.Equal(t, []string{
		"LOAD_VAR x",
		"JUMP_IF_FALSE if_end_0",
		"LOAD_VAR y",
		"POP",
		"LABEL if_end_0",
	}, texts(result))
	require.Equal(t, 1, countOp(result, op.Label))
	require.Equal(t, 0, countOp(result, op.Jump))
}

func TestIfElse(t *testing.T) {
	result := compileSource(t, "if (x) { a; } else { b; }")
	require.Equal(t, []string{
		"LOAD_VAR x",
		"JUMP_IF_FALSE if_else_0",
		"LOAD_VAR a",
		"POP",
		"JUMP if_end_1",
		"LABEL if_else_0",
		"LOAD_VAR b",
		"POP",
		"LABEL if_end_1",
	}, texts(result))
	require.Equal(t, 2, countOp(result, op.Label))
	require.Equal(t, 1, countOp(result, op.Jump))
}

func TestElseIfChain(t *testing.T) {
	result := compileSource(t, "if (a) { x; } else if (b) { y; } else { z; }")
	// The chain nests: the alternate of the outer if is another if
	require.Equal(t, []string{
		"LOAD_VAR a",
		"JUMP_IF_FALSE if_else_0",
		"LOAD_VAR x",
		"POP",
		"JUMP if_end_1",
		"LABEL if_else_0",
		"LOAD_VAR b",
		"JUMP_IF_FALSE if_else_2",
		"LOAD_VAR y",
		"POP",
		"JUMP if_end_3",
		"LABEL if_else_2",
		"LOAD_VAR z",
		"POP",
		"LABEL if_end_3",
		"LABEL if_end_1",
	}, texts(result))
}

func TestWhile(t *testing.T) {
	result := compileSource(t, "while (x) { y; }")
	require.Equal(t, []string{
		"LABEL while_start_0",
		"LOAD_VAR x",
		"JUMP_IF_FALSE while_end_1",
		"LOAD_VAR y",
		"POP",
		"JUMP while_start_0",
		"LABEL while_end_1",
	}, texts(result))
}

func TestForOf(t *testing.T) {
	result := compileSource(t, "for (let x of items) { log(x); }")
	require.Equal(t, []string{
		"DECLARE_VAR x",
		"LOAD_VAR items",
		"GET_ITERATOR",
		"LABEL forof_start_0",
		"ITER_HAS_NEXT",
		"JUMP_IF_FALSE forof_end_1",
		"ITER_NEXT",
		"STORE_VAR x",
		"LOAD_VAR x",
		"CALL log 1",
		"POP",
		"JUMP forof_start_0",
		"LABEL forof_end_1",
	}, texts(result))
}

func TestForIn(t *testing.T) {
	result := compileSource(t, "for (key in obj) { key; }")
	require.Equal(t, []string{
		"LOAD_VAR obj",
		"GET_KEYS",
		"LABEL forin_start_0",
		"ITER_HAS_NEXT",
		"JUMP_IF_FALSE forin_end_1",
		"ITER_NEXT",
		"STORE_VAR key",
		"LOAD_VAR key",
		"POP",
		"JUMP forin_start_0",
		"LABEL forin_end_1",
	}, texts(result))
}

func TestForInPatternTarget(t *testing.T) {
	result := compileSource(t, "for (let [a] of pairs) { a; }")
	require.Equal(t, []string{"UNSUPPORTED Destructuring"}, texts(result))
	require.Len(t, result.Diagnostics, 1)
}

func TestClassicForUnsupported(t *testing.T) {
	result := compileSource(t, "for (let i = 0; i < 3; i++) { i; }")
	require.Equal(t, []string{"UNSUPPORTED ForStatement"}, texts(result))
	require.Len(t, result.Diagnostics, 1)
	require.Contains(t, result.Diagnostics[0].Message, "for loops")
}

func TestSwitch(t *testing.T) {
	result := compileSource(t, `
switch (x) {
  case 1:
    a;
    break;
  case 2:
    b;
  default:
    c;
}`)
	require.Equal(t, []string{
		"LOAD_VAR x",
		"DUP",
		"PUSH_CONST 1",
		"EQ",
		"JUMP_IF_TRUE switch_case_1",
		"DUP",
		"PUSH_CONST 2",
		"EQ",
		"JUMP_IF_TRUE switch_case_2",
		"JUMP switch_default_3",
		"LABEL switch_case_1",
		"LOAD_VAR a",
		"POP",
		"JUMP switch_end_0",
		"LABEL switch_case_2",
		"LOAD_VAR b",
		"POP",
		"LABEL switch_default_3",
		"LOAD_VAR c",
		"POP",
		"LABEL switch_end_0",
		"POP",
	}, texts(result))

	// N non-default cases yield exactly N DUP/EQ/JUMP_IF_TRUE triplets
	require.Equal(t, 2, countOp(result, op.Dup))
	require.Equal(t, 2, countOp(result, op.Eq))
	require.Equal(t, 2, countOp(result, op.JumpIfTrue))
	require.Equal(t, 4, countOp(result, op.Label))
}

func TestSwitchWithoutDefault(t *testing.T) {
	result := compileSource(t, "switch (x) { case 1: a; }")
	require.Equal(t, []string{
		"LOAD_VAR x",
		"DUP",
		"PUSH_CONST 1",
		"EQ",
		"JUMP_IF_TRUE switch_case_1",
		"JUMP switch_end_0",
		"LABEL switch_case_1",
		"LOAD_VAR a",
		"POP",
		"LABEL switch_end_0",
		"POP",
	}, texts(result))
}

func TestBreakOutsideSwitch(t *testing.T) {
	result := compileSource(t, "break;")
	// The diagnostic is non-fatal and the statement pads to a NOOP
	require.Equal(t, []string{"NOOP"}, texts(result))
	require.Len(t, result.Diagnostics, 1)
	require.Contains(t, result.Diagnostics[0].Message, "break")
}

func TestContinueUnsupported(t *testing.T) {
	result := compileSource(t, "while (x) { continue; }")
	require.Contains(t, texts(result), "UNSUPPORTED ContinueStatement")
	require.Len(t, result.Diagnostics, 1)
}

func TestFunctionDeclaration(t *testing.T) {
	result := compileSource(t, "function add(a, b) { return a + b; }")
	require.Equal(t, []string{
		"DECLARE_FUNC add 2",
		"LABEL func_start_0",
		"PARAM a 0",
		"PARAM b 1",
		"LOAD_VAR a",
		"LOAD_VAR b",
		"ADD",
		"RETURN",
		"RETURN_UNDEFINED",
		"LABEL func_end_1",
	}, texts(result))
}

func TestReturnWithoutValue(t *testing.T) {
	result := compileSource(t, "function f() { return; }")
	require.Equal(t, []string{
		"DECLARE_FUNC f 0",
		"LABEL func_start_0",
		"RETURN_UNDEFINED",
		"RETURN_UNDEFINED",
		"LABEL func_end_1",
	}, texts(result))
}

func TestImports(t *testing.T) {
	tests := []struct {
		source string
		want   []string
	}{
		{`import { a, b as c } from "mod";`, []string{
			`IMPORT a "mod"`,
			`IMPORT_AS b c "mod"`,
		}},
		{`import def from "mod";`, []string{`IMPORT_DEFAULT def "mod"`}},
		{`import * as ns from "mod";`, []string{`IMPORT_NAMESPACE ns "mod"`}},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			result := compileSource(t, tt.source)
			require.Equal(t, tt.want, texts(result))
		})
	}
}

func TestExportInlineDeclaration(t *testing.T) {
	result := compileSource(t, "export const a = 1;")
	require.Equal(t, []string{
		"DECLARE_VAR a",
		"PUSH_CONST 1",
		"STORE_VAR a",
		"EXPORT a",
	}, texts(result))
}

func TestExportFunction(t *testing.T) {
	result := compileSource(t, "export function f() {}")
	require.Equal(t, []string{
		"DECLARE_FUNC f 0",
		"LABEL func_start_0",
		"RETURN_UNDEFINED",
		"LABEL func_end_1",
		"EXPORT f",
	}, texts(result))
}

func TestExportSpecifierList(t *testing.T) {
	result := compileSource(t, "export { a, b as c };")
	require.Equal(t, []string{
		"EXPORT a",
		"EXPORT_AS b c",
	}, texts(result))
}

func TestEmptyStatement(t *testing.T) {
	result := compileSource(t, ";")
	require.Equal(t, []string{"NOOP"}, texts(result))
}

func TestNoopPadding(t *testing.T) {
	source := "let x = 1;\n;\nbreak;\nx;"
	program, err := parser.Parse(context.Background(), source)
	require.NoError(t, err)
	blocks := Split(program)
	result := New().Compile(blocks)

	emitted := map[string]bool{}
	for _, line := range result.Lines {
		emitted[line.StatementID] = true
	}
	for _, block := range blocks {
		require.True(t, emitted[block.ID],
			fmt.Sprintf("statement %s has no instructions", block.ID))
	}
}

func TestLabelUniquenessAndTargets(t *testing.T) {
	result := compileSource(t, `
if (a) { b; } else { c; }
while (d) { e; }
switch (f) { case 1: break; default: g; }
for (let k in obj) { k; }
`)
	labels := map[string]int{}
	for _, line := range result.Lines {
		if line.Opcode == op.Label {
			labels[line.Args[0]]++
		}
	}
	for name, n := range labels {
		require.Equal(t, 1, n, fmt.Sprintf("label %s defined %d times", name, n))
	}
	for _, line := range result.Lines {
		switch line.Opcode {
		case op.Jump, op.JumpIfFalse, op.JumpIfTrue:
			require.Contains(t, labels, line.Args[0],
				fmt.Sprintf("jump target %s has no label", line.Args[0]))
		}
	}
}

func TestIdempotence(t *testing.T) {
	source := `
let total = 0;
for (let x of items) {
  if (x > 2) { total = total + x; }
}
switch (total) { case 0: log("none"); default: log(total); }
`
	program, err := parser.Parse(context.Background(), source)
	require.NoError(t, err)
	first := New().Compile(Split(program))
	second := New().Compile(Split(program))
	require.Equal(t, first, second)
}

func TestCompilerReuseResetsOutput(t *testing.T) {
	program, err := parser.Parse(context.Background(), "let x = 1;")
	require.NoError(t, err)
	blocks := Split(program)
	c := New()
	first := c.Compile(blocks)
	second := c.Compile(blocks)
	require.Equal(t, len(first.Lines), len(second.Lines))
	require.Empty(t, second.Diagnostics)
}

func TestStatementIDAttribution(t *testing.T) {
	result := compileSource(t, "let x = 1;\nlet y = 2;")
	require.Len(t, result.Lines, 6)
	firstID := result.Lines[0].StatementID
	secondID := result.Lines[3].StatementID
	require.NotEqual(t, firstID, secondID)
	for _, line := range result.Lines[:3] {
		require.Equal(t, firstID, line.StatementID)
	}
	for _, line := range result.Lines[3:] {
		require.Equal(t, secondID, line.StatementID)
	}
}

func TestSplit(t *testing.T) {
	program, err := parser.Parse(context.Background(), "let x = 1;\nlet y = 2;\nlet z = 3;")
	require.NoError(t, err)
	blocks := Split(program)
	require.Len(t, blocks, 3)
	require.Equal(t, "stmt-0-1:1", blocks[0].ID)
	require.Equal(t, "stmt-1-2:1", blocks[1].ID)
	require.Equal(t, "stmt-2-3:1", blocks[2].ID)
	for i, block := range blocks {
		require.Equal(t, i, block.Index)
		require.Equal(t, i%2, block.ColorBand)
		require.NotNil(t, block.Node)
	}
}

func TestSameLineStatementsGetDistinctIDs(t *testing.T) {
	program, err := parser.Parse(context.Background(), "a; b;")
	require.NoError(t, err)
	blocks := Split(program)
	require.Len(t, blocks, 2)
	require.NotEqual(t, blocks[0].ID, blocks[1].ID)
}

func TestNarrationsNonEmpty(t *testing.T) {
	result := compileSource(t, `
let x = 1;
if (x) { log(x); } else { log(0); }
for (let k in x) { k; }
`)
	for _, line := range result.Lines {
		require.NotEmpty(t, line.English, line.Text)
		require.NotEmpty(t, line.Text)
	}
}
