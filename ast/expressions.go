package ast

import (
	"bytes"
	"strings"

	"github.com/stackstep-io/stackstep/token"
)

// Ident is an expression node that refers to a variable by name.
type Ident struct {
	NamePos token.Position // position of identifier
	Name    string         // identifier name
}

func (x *Ident) exprNode() {}

func (x *Ident) Pos() token.Position { return x.NamePos }
func (x *Ident) End() token.Position { return x.NamePos.Advance(len(x.Name)) }

func (x *Ident) String() string { return x.Name }

// Prefix is an operator expression where the operator precedes the operand.
// Examples include "!flag" and "-x".
type Prefix struct {
	OpPos token.Position // position of operator
	Op    string         // operator: "!", "-"
	X     Expr           // operand
}

func (x *Prefix) exprNode() {}

func (x *Prefix) Pos() token.Position { return x.OpPos }
func (x *Prefix) End() token.Position { return x.X.End() }

func (x *Prefix) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	out.WriteString(x.Op)
	out.WriteString(x.X.String())
	out.WriteString(")")
	return out.String()
}

// Infix is an operator expression where the operator is between the operands.
// This covers arithmetic, comparison, logical and nullish operators; the
// compiler distinguishes them by the Op string.
type Infix struct {
	X     Expr           // left operand
	OpPos token.Position // position of operator
	Op    string         // operator: "+", "==", "&&", "??", etc.
	Y     Expr           // right operand
}

func (x *Infix) exprNode() {}

func (x *Infix) Pos() token.Position { return x.X.Pos() }
func (x *Infix) End() token.Position { return x.Y.End() }

func (x *Infix) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	out.WriteString(x.X.String())
	out.WriteString(" " + x.Op + " ")
	out.WriteString(x.Y.String())
	out.WriteString(")")
	return out.String()
}

// Assign is an expression node representing an assignment. In this language
// subset an assignment is itself an expression that yields the stored value.
type Assign struct {
	Target Expr           // assignment target
	OpPos  token.Position // position of operator
	Op     string         // "=", "+=", "-=", etc.
	Value  Expr           // value being assigned
}

func (x *Assign) exprNode() {}

func (x *Assign) Pos() token.Position { return x.Target.Pos() }
func (x *Assign) End() token.Position { return x.Value.End() }

func (x *Assign) String() string {
	return x.Target.String() + " " + x.Op + " " + x.Value.String()
}

// Call is an expression node representing a function or method invocation.
type Call struct {
	Callee Expr           // an *Ident or *Member
	Lparen token.Position // position of "("
	Args   []Expr         // call arguments in source order
	Rparen token.Position // position of ")"
}

func (x *Call) exprNode() {}

func (x *Call) Pos() token.Position { return x.Callee.Pos() }
func (x *Call) End() token.Position { return x.Rparen.Advance(1) }

func (x *Call) String() string {
	args := make([]string, 0, len(x.Args))
	for _, arg := range x.Args {
		args = append(args, arg.String())
	}
	return x.Callee.String() + "(" + strings.Join(args, ", ") + ")"
}

// Member is an expression node representing property access, either
// "obj.name" (non-computed) or "obj[expr]" (computed).
type Member struct {
	Object   Expr // the object whose property is accessed
	Prop     Expr // *Ident when non-computed, any Expr when computed
	Computed bool // true for obj[expr] access
	EndPos   token.Position
}

func (x *Member) exprNode() {}

func (x *Member) Pos() token.Position { return x.Object.Pos() }
func (x *Member) End() token.Position { return x.EndPos }

func (x *Member) String() string {
	if x.Computed {
		return x.Object.String() + "[" + x.Prop.String() + "]"
	}
	return x.Object.String() + "." + x.Prop.String()
}

// Update is an expression node representing "++" or "--" applied to a
// target, in either prefix or postfix position.
type Update struct {
	OpPos    token.Position // position of operator
	Op       string         // "++" or "--"
	Target   Expr           // the updated expression
	IsPrefix bool           // true for "++x", false for "x++"
}

func (x *Update) exprNode() {}

func (x *Update) Pos() token.Position {
	if x.IsPrefix {
		return x.OpPos
	}
	return x.Target.Pos()
}

func (x *Update) End() token.Position {
	if x.IsPrefix {
		return x.Target.End()
	}
	return x.OpPos.Advance(2)
}

func (x *Update) String() string {
	if x.IsPrefix {
		return x.Op + x.Target.String()
	}
	return x.Target.String() + x.Op
}

// Spread represents a spread element (...expr) inside an array literal or
// a call argument list.
type Spread struct {
	Ellipsis token.Position // position of "..."
	X        Expr           // expression being spread
}

func (x *Spread) exprNode() {}

func (x *Spread) Pos() token.Position { return x.Ellipsis }
func (x *Spread) End() token.Position { return x.X.End() }

func (x *Spread) String() string { return "..." + x.X.String() }

// Array is an expression node holding an array literal. A nil element
// represents an elision (hole), e.g. [1, , 3].
type Array struct {
	Lbracket token.Position // position of "["
	Elements []Expr         // elements in source order; nil means a hole
	Rbracket token.Position // position of "]"
}

func (x *Array) exprNode() {}

func (x *Array) Pos() token.Position { return x.Lbracket }
func (x *Array) End() token.Position { return x.Rbracket.Advance(1) }

func (x *Array) String() string {
	elems := make([]string, 0, len(x.Elements))
	for _, elem := range x.Elements {
		if elem == nil {
			elems = append(elems, "")
			continue
		}
		elems = append(elems, elem.String())
	}
	return "[" + strings.Join(elems, ", ") + "]"
}

// Property is one entry in an object literal.
type Property struct {
	Key      string // property name for plain keys; empty when computed/spread
	KeyExpr  Expr   // key expression when Computed is true
	Value    Expr   // the property value; nil for spread properties
	Computed bool   // true for {[expr]: value}
	Method   bool   // true for {name() {...}} shorthand methods
	Spread   bool   // true for {...expr}
}

func (p *Property) String() string {
	switch {
	case p.Spread:
		return "..." + p.Value.String()
	case p.Computed:
		return "[" + p.KeyExpr.String() + "]: " + p.Value.String()
	case p.Method:
		return p.Key + "() {...}"
	default:
		return p.Key + ": " + p.Value.String()
	}
}

// Object is an expression node holding an object literal.
type Object struct {
	Lbrace     token.Position // position of "{"
	Properties []*Property    // properties in source order
	Rbrace     token.Position // position of "}"
}

func (x *Object) exprNode() {}

func (x *Object) Pos() token.Position { return x.Lbrace }
func (x *Object) End() token.Position { return x.Rbrace.Advance(1) }

func (x *Object) String() string {
	props := make([]string, 0, len(x.Properties))
	for _, prop := range x.Properties {
		props = append(props, prop.String())
	}
	return "{" + strings.Join(props, ", ") + "}"
}

// ObjectPattern is a destructuring pattern used as a declaration target,
// e.g. "let { a, b } = obj". The compiler does not support destructuring
// and diagnoses these, but the parser still represents them so that
// sibling declarators compile normally.
type ObjectPattern struct {
	Lbrace token.Position // position of "{"
	Names  []string       // bound names in source order
	Rbrace token.Position // position of "}"
}

func (x *ObjectPattern) exprNode() {}

func (x *ObjectPattern) Pos() token.Position { return x.Lbrace }
func (x *ObjectPattern) End() token.Position { return x.Rbrace.Advance(1) }

func (x *ObjectPattern) String() string {
	return "{ " + strings.Join(x.Names, ", ") + " }"
}

// ArrayPattern is a destructuring pattern used as a declaration target,
// e.g. "let [a, b] = arr". Diagnosed by the compiler, like ObjectPattern.
type ArrayPattern struct {
	Lbracket token.Position // position of "["
	Names    []string       // bound names in source order
	Rbracket token.Position // position of "]"
}

func (x *ArrayPattern) exprNode() {}

func (x *ArrayPattern) Pos() token.Position { return x.Lbracket }
func (x *ArrayPattern) End() token.Position { return x.Rbracket.Advance(1) }

func (x *ArrayPattern) String() string {
	return "[" + strings.Join(x.Names, ", ") + "]"
}
