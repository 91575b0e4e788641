package ast

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTypeName(t *testing.T) {
	tests := []struct {
		node Node
		want string
	}{
		{&Ident{Name: "x"}, "Ident"},
		{&VarDecl{}, "VarDecl"},
		{&ForClassic{}, "ForClassic"},
		{&BadStmt{}, "BadStmt"},
		{nil, "Nil"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, TypeName(tt.node))
	}
}

func TestStringRendering(t *testing.T) {
	decl := &VarDecl{
		Kind: "let",
		Decls: []*Declarator{
			{Target: &Ident{Name: "x"}, Value: &Number{Literal: "1"}},
			{Target: &Ident{Name: "y"}},
		},
	}
	require.Equal(t, "let x = 1, y", decl.String())

	infix := &Infix{
		X:  &Ident{Name: "a"},
		Op: "+",
		Y:  &Number{Literal: "2"},
	}
	require.Equal(t, "(a + 2)", infix.String())

	call := &Call{
		Callee: &Member{
			Object: &Ident{Name: "console"},
			Prop:   &Ident{Name: "log"},
		},
		Args: []Expr{&Ident{Name: "x"}},
	}
	require.Equal(t, "console.log(x)", call.String())
}

func TestImportSpecString(t *testing.T) {
	tests := []struct {
		spec *ImportSpec
		want string
	}{
		{&ImportSpec{Kind: ImportNamed, Imported: "a", Local: "a"}, "a"},
		{&ImportSpec{Kind: ImportNamed, Imported: "a", Local: "b"}, "a as b"},
		{&ImportSpec{Kind: ImportDefault, Local: "def"}, "def"},
		{&ImportSpec{Kind: ImportNamespace, Local: "ns"}, "* as ns"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, tt.spec.String())
	}
}

func TestSwitchString(t *testing.T) {
	sw := &Switch{
		Value: &Ident{Name: "x"},
		Cases: []*SwitchCase{
			{Test: &Number{Literal: "1"}, Body: []Stmt{&Break{}}},
			{Body: []Stmt{&ExprStmt{X: &Ident{Name: "y"}}}},
		},
	}
	require.Equal(t, "switch (x) { case 1: break; default: y; }", sw.String())
}
