package ast

import (
	"bytes"

	"github.com/stackstep-io/stackstep/token"
)

// Number is an expression node that holds a numeric literal. The source
// text is preserved so that the compiler can narrate the constant exactly
// as it was written.
type Number struct {
	ValuePos token.Position // position of the literal
	Literal  string         // the literal text (e.g., "42", "3.14")
	Value    float64        // the parsed value
}

func (x *Number) exprNode() {}

func (x *Number) Pos() token.Position { return x.ValuePos }
func (x *Number) End() token.Position { return x.ValuePos.Advance(len(x.Literal)) }

func (x *Number) String() string { return x.Literal }

// StringLit is an expression node that holds a string literal.
type StringLit struct {
	ValuePos token.Position // position of opening quote
	Literal  string         // the raw literal including quotes
	Value    string         // the unquoted value
}

func (x *StringLit) exprNode() {}

func (x *StringLit) Pos() token.Position { return x.ValuePos }
func (x *StringLit) End() token.Position { return x.ValuePos.Advance(len(x.Literal)) }

func (x *StringLit) String() string { return x.Literal }

// Bool is an expression node that holds a boolean literal.
type Bool struct {
	ValuePos token.Position // position of "true" or "false"
	Value    bool           // the boolean value
}

func (x *Bool) exprNode() {}

func (x *Bool) Pos() token.Position { return x.ValuePos }
func (x *Bool) End() token.Position {
	if x.Value {
		return x.ValuePos.Advance(4) // len("true")
	}
	return x.ValuePos.Advance(5) // len("false")
}

func (x *Bool) String() string {
	if x.Value {
		return "true"
	}
	return "false"
}

// Null is an expression node that holds a null literal.
type Null struct {
	NullPos token.Position // position of "null" keyword
}

func (x *Null) exprNode() {}

func (x *Null) Pos() token.Position { return x.NullPos }
func (x *Null) End() token.Position { return x.NullPos.Advance(4) } // len("null")

func (x *Null) String() string { return "null" }

// Template is an expression node holding a template literal. The quasis are
// the constant text segments between interpolations. There is always exactly
// one more quasi than there are expressions, so that the segments and
// expressions alternate: quasi, expr, quasi, expr, ..., quasi. Boundary
// segments may be empty strings.
type Template struct {
	ValuePos token.Position // position of opening backtick
	Literal  string         // the raw literal including backticks
	Quasis   []string       // constant segments, len(Quasis) == len(Exprs)+1
	Exprs    []Expr         // interpolated expressions in source order
}

func (x *Template) exprNode() {}

func (x *Template) Pos() token.Position { return x.ValuePos }
func (x *Template) End() token.Position { return x.ValuePos.Advance(len(x.Literal)) }

func (x *Template) String() string {
	var out bytes.Buffer
	out.WriteString("`")
	for i, quasi := range x.Quasis {
		out.WriteString(quasi)
		if i < len(x.Exprs) {
			out.WriteString("${")
			out.WriteString(x.Exprs[i].String())
			out.WriteString("}")
		}
	}
	out.WriteString("`")
	return out.String()
}
