package ast

import (
	"bytes"
	"strings"

	"github.com/stackstep-io/stackstep/token"
)

// Declarator is a single "name = value" clause within a variable
// declaration statement. Value is nil when there is no initializer. Target
// is usually an *Ident but may be an ObjectPattern or ArrayPattern for
// destructuring declarations.
type Declarator struct {
	Target Expr // declaration target
	Value  Expr // optional initializer
}

func (d *Declarator) String() string {
	if d.Value == nil {
		return d.Target.String()
	}
	return d.Target.String() + " = " + d.Value.String()
}

// VarDecl is a statement that declares one or more variables, e.g.
// "let x = 1, y" or "const a = 2".
type VarDecl struct {
	DeclPos token.Position // position of the let/const/var keyword
	Kind    string         // "let", "const" or "var"
	Decls   []*Declarator  // declarators in source order
	EndPos  token.Position
}

func (s *VarDecl) stmtNode() {}

func (s *VarDecl) Pos() token.Position { return s.DeclPos }
func (s *VarDecl) End() token.Position { return s.EndPos }

func (s *VarDecl) String() string {
	decls := make([]string, 0, len(s.Decls))
	for _, d := range s.Decls {
		decls = append(decls, d.String())
	}
	return s.Kind + " " + strings.Join(decls, ", ")
}

// ExprStmt is a statement consisting of a single expression, whose value
// is discarded.
type ExprStmt struct {
	X Expr
}

func (s *ExprStmt) stmtNode() {}

func (s *ExprStmt) Pos() token.Position { return s.X.Pos() }
func (s *ExprStmt) End() token.Position { return s.X.End() }

func (s *ExprStmt) String() string { return s.X.String() }

// Block is a braced sequence of statements.
type Block struct {
	Lbrace token.Position // position of "{"
	Stmts  []Stmt         // statements in source order
	Rbrace token.Position // position of "}"
}

func (s *Block) stmtNode() {}

func (s *Block) Pos() token.Position { return s.Lbrace }
func (s *Block) End() token.Position { return s.Rbrace.Advance(1) }

func (s *Block) String() string {
	var out bytes.Buffer
	out.WriteString("{ ")
	for i, stmt := range s.Stmts {
		if i > 0 {
			out.WriteString("; ")
		}
		out.WriteString(stmt.String())
	}
	out.WriteString(" }")
	return out.String()
}

// If is a conditional statement. Alternate is nil when there is no else
// branch; it may be a *Block or another *If for "else if" chains.
type If struct {
	IfPos      token.Position // position of "if" keyword
	Cond       Expr           // the condition
	Consequent *Block         // executed when the condition is truthy
	Alternate  Stmt           // optional else branch
}

func (s *If) stmtNode() {}

func (s *If) Pos() token.Position { return s.IfPos }
func (s *If) End() token.Position {
	if s.Alternate != nil {
		return s.Alternate.End()
	}
	return s.Consequent.End()
}

func (s *If) String() string {
	var out bytes.Buffer
	out.WriteString("if (")
	out.WriteString(s.Cond.String())
	out.WriteString(") ")
	out.WriteString(s.Consequent.String())
	if s.Alternate != nil {
		out.WriteString(" else ")
		out.WriteString(s.Alternate.String())
	}
	return out.String()
}

// While is a loop that re-evaluates its condition before every iteration.
type While struct {
	WhilePos token.Position // position of "while" keyword
	Cond     Expr           // the loop condition
	Body     *Block         // the loop body
}

func (s *While) stmtNode() {}

func (s *While) Pos() token.Position { return s.WhilePos }
func (s *While) End() token.Position { return s.Body.End() }

func (s *While) String() string {
	return "while (" + s.Cond.String() + ") " + s.Body.String()
}

// ForIn is a "for (x in obj)" loop iterating over the keys of an object.
// Decl holds the declaration keyword ("let", "const", "var") when the loop
// variable is freshly declared, and is empty when the loop reuses an
// existing binding.
type ForIn struct {
	ForPos token.Position // position of "for" keyword
	Decl   string         // declaration keyword or ""
	Target Expr           // the loop variable
	Object Expr           // the object being enumerated
	Body   *Block         // the loop body
}

func (s *ForIn) stmtNode() {}

func (s *ForIn) Pos() token.Position { return s.ForPos }
func (s *ForIn) End() token.Position { return s.Body.End() }

func (s *ForIn) String() string {
	var out bytes.Buffer
	out.WriteString("for (")
	if s.Decl != "" {
		out.WriteString(s.Decl + " ")
	}
	out.WriteString(s.Target.String())
	out.WriteString(" in ")
	out.WriteString(s.Object.String())
	out.WriteString(") ")
	out.WriteString(s.Body.String())
	return out.String()
}

// ForOf is a "for (x of iterable)" loop iterating over the values produced
// by an iterator. Decl works as in ForIn.
type ForOf struct {
	ForPos   token.Position // position of "for" keyword
	Decl     string         // declaration keyword or ""
	Target   Expr           // the loop variable
	Iterable Expr           // the expression being iterated
	Body     *Block         // the loop body
}

func (s *ForOf) stmtNode() {}

func (s *ForOf) Pos() token.Position { return s.ForPos }
func (s *ForOf) End() token.Position { return s.Body.End() }

func (s *ForOf) String() string {
	var out bytes.Buffer
	out.WriteString("for (")
	if s.Decl != "" {
		out.WriteString(s.Decl + " ")
	}
	out.WriteString(s.Target.String())
	out.WriteString(" of ")
	out.WriteString(s.Iterable.String())
	out.WriteString(") ")
	out.WriteString(s.Body.String())
	return out.String()
}

// ForClassic is a C-style "for (init; cond; post)" loop. The compiler does
// not lower these; they are represented so that a clear diagnostic can be
// produced instead of the generic unknown-node fallback.
type ForClassic struct {
	ForPos token.Position // position of "for" keyword
	Init   Stmt           // optional initializer
	Cond   Expr           // optional condition
	Post   Expr           // optional post expression
	Body   *Block         // the loop body
}

func (s *ForClassic) stmtNode() {}

func (s *ForClassic) Pos() token.Position { return s.ForPos }
func (s *ForClassic) End() token.Position { return s.Body.End() }

func (s *ForClassic) String() string {
	var out bytes.Buffer
	out.WriteString("for (")
	if s.Init != nil {
		out.WriteString(s.Init.String())
	}
	out.WriteString("; ")
	if s.Cond != nil {
		out.WriteString(s.Cond.String())
	}
	out.WriteString("; ")
	if s.Post != nil {
		out.WriteString(s.Post.String())
	}
	out.WriteString(") ")
	out.WriteString(s.Body.String())
	return out.String()
}

// SwitchCase is one case clause in a switch statement. Test is nil for the
// default clause. The body is a bare statement list; fall-through between
// cases is expressed simply by the absence of a break statement.
type SwitchCase struct {
	CasePos token.Position // position of "case" or "default" keyword
	Test    Expr           // nil for the default clause
	Body    []Stmt         // statements in source order
	EndPos  token.Position
}

func (c *SwitchCase) String() string {
	var out bytes.Buffer
	if c.Test == nil {
		out.WriteString("default:")
	} else {
		out.WriteString("case " + c.Test.String() + ":")
	}
	for _, stmt := range c.Body {
		out.WriteString(" " + stmt.String() + ";")
	}
	return out.String()
}

// Switch is a switch statement over a single discriminant value.
type Switch struct {
	SwitchPos token.Position // position of "switch" keyword
	Value     Expr           // the discriminant
	Cases     []*SwitchCase  // case clauses in source order
	Rbrace    token.Position // position of closing "}"
}

func (s *Switch) stmtNode() {}

func (s *Switch) Pos() token.Position { return s.SwitchPos }
func (s *Switch) End() token.Position { return s.Rbrace.Advance(1) }

func (s *Switch) String() string {
	var out bytes.Buffer
	out.WriteString("switch (")
	out.WriteString(s.Value.String())
	out.WriteString(") {")
	for _, c := range s.Cases {
		out.WriteString(" " + c.String())
	}
	out.WriteString(" }")
	return out.String()
}

// Break is a break statement. In this language subset break only exits the
// nearest enclosing switch.
type Break struct {
	BreakPos token.Position // position of "break" keyword
}

func (s *Break) stmtNode() {}

func (s *Break) Pos() token.Position { return s.BreakPos }
func (s *Break) End() token.Position { return s.BreakPos.Advance(5) } // len("break")

func (s *Break) String() string { return "break" }

// Continue is a continue statement. The compiler does not support it and
// emits a diagnostic.
type Continue struct {
	ContinuePos token.Position // position of "continue" keyword
}

func (s *Continue) stmtNode() {}

func (s *Continue) Pos() token.Position { return s.ContinuePos }
func (s *Continue) End() token.Position { return s.ContinuePos.Advance(8) } // len("continue")

func (s *Continue) String() string { return "continue" }

// FuncDecl is a named function declaration. Params are usually *Ident
// nodes; other forms (patterns, defaults) are diagnosed by the compiler.
type FuncDecl struct {
	FuncPos token.Position // position of "function" keyword
	Name    *Ident         // the function name
	Params  []Expr         // parameters in source order
	Body    *Block         // the function body
}

func (s *FuncDecl) stmtNode() {}

func (s *FuncDecl) Pos() token.Position { return s.FuncPos }
func (s *FuncDecl) End() token.Position { return s.Body.End() }

func (s *FuncDecl) String() string {
	params := make([]string, 0, len(s.Params))
	for _, p := range s.Params {
		params = append(params, p.String())
	}
	return "function " + s.Name.Name + "(" + strings.Join(params, ", ") + ") " + s.Body.String()
}

// Return is a return statement with an optional value.
type Return struct {
	ReturnPos token.Position // position of "return" keyword
	Value     Expr           // optional return value
}

func (s *Return) stmtNode() {}

func (s *Return) Pos() token.Position { return s.ReturnPos }
func (s *Return) End() token.Position {
	if s.Value != nil {
		return s.Value.End()
	}
	return s.ReturnPos.Advance(6) // len("return")
}

func (s *Return) String() string {
	if s.Value == nil {
		return "return"
	}
	return "return " + s.Value.String()
}

// ImportKind distinguishes the forms an import specifier can take.
type ImportKind int

const (
	// ImportNamed is "import { a } from ..." or "import { a as b } from ...".
	ImportNamed ImportKind = iota
	// ImportDefault is "import a from ...".
	ImportDefault
	// ImportNamespace is "import * as a from ...".
	ImportNamespace
)

// ImportSpec is a single specifier within an import statement.
type ImportSpec struct {
	Kind     ImportKind
	Imported string // the exported name being imported; empty for default/namespace
	Local    string // the local binding name
}

func (s *ImportSpec) String() string {
	switch s.Kind {
	case ImportDefault:
		return s.Local
	case ImportNamespace:
		return "* as " + s.Local
	default:
		if s.Imported != s.Local {
			return s.Imported + " as " + s.Local
		}
		return s.Imported
	}
}

// Import is an import statement with one or more specifiers.
type Import struct {
	ImportPos token.Position // position of "import" keyword
	Specs     []*ImportSpec  // specifiers in source order
	Source    string         // the module source string
	EndPos    token.Position
}

func (s *Import) stmtNode() {}

func (s *Import) Pos() token.Position { return s.ImportPos }
func (s *Import) End() token.Position { return s.EndPos }

func (s *Import) String() string {
	var named []string
	var bare []string
	for _, spec := range s.Specs {
		if spec.Kind == ImportNamed {
			named = append(named, spec.String())
		} else {
			bare = append(bare, spec.String())
		}
	}
	parts := bare
	if len(named) > 0 {
		parts = append(parts, "{ "+strings.Join(named, ", ")+" }")
	}
	return "import " + strings.Join(parts, ", ") + " from " + s.Source
}

// ExportDecl is an export statement wrapping an inline declaration, e.g.
// "export const a = 1" or "export function f() {}".
type ExportDecl struct {
	ExportPos token.Position // position of "export" keyword
	Decl      Stmt           // the wrapped declaration
}

func (s *ExportDecl) stmtNode() {}

func (s *ExportDecl) Pos() token.Position { return s.ExportPos }
func (s *ExportDecl) End() token.Position { return s.Decl.End() }

func (s *ExportDecl) String() string { return "export " + s.Decl.String() }

// ExportSpec is a single specifier within an export-list statement.
type ExportSpec struct {
	Local    string // the local name being exported
	Exported string // the exported name; equals Local unless aliased
}

func (s *ExportSpec) String() string {
	if s.Exported != s.Local {
		return s.Local + " as " + s.Exported
	}
	return s.Local
}

// ExportNamed is an export statement with a specifier list, e.g.
// "export { a, b as c }".
type ExportNamed struct {
	ExportPos token.Position // position of "export" keyword
	Specs     []*ExportSpec  // specifiers in source order
	EndPos    token.Position
}

func (s *ExportNamed) stmtNode() {}

func (s *ExportNamed) Pos() token.Position { return s.ExportPos }
func (s *ExportNamed) End() token.Position { return s.EndPos }

func (s *ExportNamed) String() string {
	specs := make([]string, 0, len(s.Specs))
	for _, spec := range s.Specs {
		specs = append(specs, spec.String())
	}
	return "export { " + strings.Join(specs, ", ") + " }"
}

// Empty is an empty statement: a bare semicolon.
type Empty struct {
	SemiPos token.Position // position of ";"
}

func (s *Empty) stmtNode() {}

func (s *Empty) Pos() token.Position { return s.SemiPos }
func (s *Empty) End() token.Position { return s.SemiPos.Advance(1) }

func (s *Empty) String() string { return ";" }
