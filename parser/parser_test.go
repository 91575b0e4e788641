package parser

import (
	"context"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/require"

	"github.com/stackstep-io/stackstep/ast"
)

func parse(t *testing.T, input string) *ast.Program {
	t.Helper()
	program, err := Parse(context.Background(), input)
	require.NoError(t, err)
	require.NotNil(t, program)
	return program
}

func TestVariableDeclarations(t *testing.T) {
	tests := []struct {
		input string
		kind  string
		names []string
	}{
		{"let x = 5;", "let", []string{"x"}},
		{"const y = 10;", "const", []string{"y"}},
		{"var z;", "var", []string{"z"}},
		{"let a = 1, b, c = 3;", "let", []string{"a", "b", "c"}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			program := parse(t, tt.input)
			require.Len(t, program.Stmts, 1)
			decl, ok := program.Stmts[0].(*ast.VarDecl)
			require.True(t, ok)
			require.Equal(t, tt.kind, decl.Kind)
			require.Len(t, decl.Decls, len(tt.names))
			for i, name := range tt.names {
				ident, ok := decl.Decls[i].Target.(*ast.Ident)
				require.True(t, ok)
				require.Equal(t, name, ident.Name)
			}
		})
	}
}

func TestDestructuringTargets(t *testing.T) {
	program := parse(t, "let { a, b } = obj;")
	decl := program.Stmts[0].(*ast.VarDecl)
	pattern, ok := decl.Decls[0].Target.(*ast.ObjectPattern)
	require.True(t, ok)
	require.Equal(t, []string{"a", "b"}, pattern.Names)

	program = parse(t, "let [x, y] = pair;")
	decl = program.Stmts[0].(*ast.VarDecl)
	arr, ok := decl.Decls[0].Target.(*ast.ArrayPattern)
	require.True(t, ok)
	require.Equal(t, []string{"x", "y"}, arr.Names)
}

func TestOperatorPrecedence(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1 + 2 * 3;", "(1 + (2 * 3))"},
		{"1 * 2 + 3;", "((1 * 2) + 3)"},
		{"a == b && c != d;", "((a == b) && (c != d))"},
		{"a || b && c;", "(a || (b && c))"},
		{"a ?? b || c;", "(a ?? (b || c))"},
		{"!a && b;", "((!a) && b)"},
		{"-1 + 2;", "((-1) + 2)"},
		{"a < b == c;", "((a < b) == c)"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			program := parse(t, tt.input)
			stmt, ok := program.Stmts[0].(*ast.ExprStmt)
			require.True(t, ok)
			require.Equal(t, tt.want, stmt.X.String())
		})
	}
}

func TestAssignmentIsRightAssociative(t *testing.T) {
	program := parse(t, "a = b = 1;")
	stmt := program.Stmts[0].(*ast.ExprStmt)
	outer, ok := stmt.X.(*ast.Assign)
	require.True(t, ok)
	_, ok = outer.Value.(*ast.Assign)
	require.True(t, ok)
}

func TestIfElseChain(t *testing.T) {
	program := parse(t, "if (a) { x; } else if (b) { y; } else { z; }")
	require.Len(t, program.Stmts, 1)
	outer, ok := program.Stmts[0].(*ast.If)
	require.True(t, ok)
	inner, ok := outer.Alternate.(*ast.If)
	require.True(t, ok)
	_, ok = inner.Alternate.(*ast.Block)
	require.True(t, ok)
}

func TestForLoopForms(t *testing.T) {
	program := parse(t, "for (let k in obj) { k; }")
	forIn, ok := program.Stmts[0].(*ast.ForIn)
	require.True(t, ok)
	require.Equal(t, "let", forIn.Decl)

	program = parse(t, "for (x of xs) { x; }")
	forOf, ok := program.Stmts[0].(*ast.ForOf)
	require.True(t, ok)
	require.Empty(t, forOf.Decl)

	program = parse(t, "for (let i = 0; i < 3; i++) { i; }")
	classic, ok := program.Stmts[0].(*ast.ForClassic)
	require.True(t, ok)
	require.NotNil(t, classic.Init)
	require.NotNil(t, classic.Cond)
	require.NotNil(t, classic.Post)

	program = parse(t, "for (;;) { x; }")
	classic, ok = program.Stmts[0].(*ast.ForClassic)
	require.True(t, ok)
	require.Nil(t, classic.Init)
	require.Nil(t, classic.Cond)
	require.Nil(t, classic.Post)
}

func TestSwitchCases(t *testing.T) {
	program := parse(t, `
switch (x) {
  case 1:
    a;
    break;
  default:
    b;
}`)
	sw, ok := program.Stmts[0].(*ast.Switch)
	require.True(t, ok)
	require.Len(t, sw.Cases, 2)
	require.NotNil(t, sw.Cases[0].Test)
	require.Len(t, sw.Cases[0].Body, 2)
	require.Nil(t, sw.Cases[1].Test)
	require.Len(t, sw.Cases[1].Body, 1)
}

func TestFunctionDeclaration(t *testing.T) {
	program := parse(t, "function add(a, b) { return a + b; }")
	fn, ok := program.Stmts[0].(*ast.FuncDecl)
	require.True(t, ok)
	require.Equal(t, "add", fn.Name.Name)
	require.Len(t, fn.Params, 2)
	require.Len(t, fn.Body.Stmts, 1)
}

func TestImportForms(t *testing.T) {
	program := parse(t, `import { a, b as c } from "mod";`)
	imp, ok := program.Stmts[0].(*ast.Import)
	require.True(t, ok)
	require.Equal(t, "mod", imp.Source)
	require.Len(t, imp.Specs, 2)
	require.Equal(t, "a", imp.Specs[0].Imported)
	require.Equal(t, "a", imp.Specs[0].Local)
	require.Equal(t, "b", imp.Specs[1].Imported)
	require.Equal(t, "c", imp.Specs[1].Local)

	program = parse(t, `import def from "mod";`)
	imp = program.Stmts[0].(*ast.Import)
	require.Equal(t, ast.ImportDefault, imp.Specs[0].Kind)

	program = parse(t, `import * as ns from "mod";`)
	imp = program.Stmts[0].(*ast.Import)
	require.Equal(t, ast.ImportNamespace, imp.Specs[0].Kind)
	require.Equal(t, "ns", imp.Specs[0].Local)
}

func TestExportForms(t *testing.T) {
	program := parse(t, "export const a = 1;")
	exp, ok := program.Stmts[0].(*ast.ExportDecl)
	require.True(t, ok)
	_, ok = exp.Decl.(*ast.VarDecl)
	require.True(t, ok)

	program = parse(t, "export { a, b as c };")
	named, ok := program.Stmts[0].(*ast.ExportNamed)
	require.True(t, ok)
	require.Len(t, named.Specs, 2)
	require.Equal(t, "c", named.Specs[1].Exported)
}

func TestTemplateLiteral(t *testing.T) {
	program := parse(t, "`sum: ${a + b}!`;")
	stmt := program.Stmts[0].(*ast.ExprStmt)
	template, ok := stmt.X.(*ast.Template)
	require.True(t, ok)
	require.Equal(t, []string{"sum: ", "!"}, template.Quasis)
	require.Len(t, template.Exprs, 1)
	require.Equal(t, "(a + b)", template.Exprs[0].String())
}

func TestSyntaxErrorRecovery(t *testing.T) {
	// Both statements are bad; both errors are reported in one pass
	program, err := Parse(context.Background(), "let = 1;\nlet = 2;")
	require.Error(t, err)
	require.NotNil(t, program)
	require.Len(t, program.Stmts, 2)
	for _, stmt := range program.Stmts {
		_, ok := stmt.(*ast.BadStmt)
		require.True(t, ok)
	}
	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	require.Len(t, merr.Errors, 2)
}

func TestErrorDoesNotLoseGoodStatements(t *testing.T) {
	program, err := Parse(context.Background(), "let a = 1;\nlet = 2;\nlet b = 3;")
	require.Error(t, err)
	require.Len(t, program.Stmts, 3)
	_, ok := program.Stmts[0].(*ast.VarDecl)
	require.True(t, ok)
	_, ok = program.Stmts[1].(*ast.BadStmt)
	require.True(t, ok)
	_, ok = program.Stmts[2].(*ast.VarDecl)
	require.True(t, ok)
}

func TestTemplateExpressionError(t *testing.T) {
	program, err := Parse(context.Background(), "`${1 +}`;")
	require.Error(t, err)
	require.NotNil(t, program)
	stmt, ok := program.Stmts[0].(*ast.ExprStmt)
	require.True(t, ok)
	template := stmt.X.(*ast.Template)
	_, ok = template.Exprs[0].(*ast.BadExpr)
	require.True(t, ok)
}

func TestFilenameInErrors(t *testing.T) {
	_, err := Parse(context.Background(), "let = 1;", WithFilename("main.js"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "main.js")
}

func TestContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Parse(ctx, "let a = 1;")
	require.ErrorIs(t, err, context.Canceled)
}

func TestExtraSemicolons(t *testing.T) {
	program := parse(t, ";; let x = 1;;")
	require.Len(t, program.Stmts, 4)
	_, ok := program.Stmts[0].(*ast.Empty)
	require.True(t, ok)
	_, ok = program.Stmts[2].(*ast.VarDecl)
	require.True(t, ok)
}
