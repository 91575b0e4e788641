package compiler

import (
	"strconv"

	"github.com/stackstep-io/stackstep/ast"
	"github.com/stackstep-io/stackstep/op"
)

// binaryOps maps source operators to their opcodes. Strict and loose
// equality share an opcode: the instruction listing does not model
// coercion.
var binaryOps = map[string]op.Code{
	"+":   op.Add,
	"-":   op.Sub,
	"*":   op.Mul,
	"/":   op.Div,
	"%":   op.Mod,
	"==":  op.Eq,
	"===": op.Eq,
	"!=":  op.Neq,
	"!==": op.Neq,
	"<":   op.Lt,
	">":   op.Gt,
	"<=":  op.Lte,
	">=":  op.Gte,
}

// compileExpression emits instructions that leave the expression's value
// on top of the stack. Like statements, expressions never fail: the
// unsupported cases emit a placeholder and keep going.
func (c *Compiler) compileExpression(node ast.Expr) {
	switch node := node.(type) {
	case nil:
		c.unsupported("MissingExpression", "expression is missing")
	case *ast.Number:
		c.emit(op.PushConst, node.Literal)
	case *ast.StringLit:
		c.emit(op.PushConst, node.Literal)
	case *ast.Bool:
		c.emit(op.PushConst, strconv.FormatBool(node.Value))
	case *ast.Null:
		c.emit(op.PushNull)
	case *ast.Template:
		c.compileTemplate(node)
	case *ast.Ident:
		if node.Name == "undefined" {
			c.emit(op.PushUndefined)
		} else {
			c.emit(op.LoadVar, node.Name)
		}
	case *ast.Prefix:
		c.compilePrefix(node)
	case *ast.Infix:
		c.compileInfix(node)
	case *ast.Assign:
		c.compileAssign(node)
	case *ast.Update:
		c.compileUpdate(node)
	case *ast.Call:
		c.compileCall(node)
	case *ast.Member:
		c.compileMember(node)
	case *ast.Array:
		c.compileArray(node)
	case *ast.Object:
		c.compileObject(node)
	case *ast.Spread:
		c.unsupported("SpreadElement",
			"spread is only supported inside array literals")
	case *ast.BadExpr:
		c.unsupported("BadExpression", "expression could not be parsed")
	default:
		name := ast.TypeName(node)
		c.unsupported(name, "unsupported expression type: %s", name)
	}
}

func (c *Compiler) compilePrefix(node *ast.Prefix) {
	c.compileExpression(node.X)
	switch node.Op {
	case "!":
		c.emit(op.Not)
	case "-":
		c.emit(op.Neg)
	default:
		c.unsupported("UnaryOperator",
			"the unary operator %q is not supported", node.Op)
	}
}

func (c *Compiler) compileInfix(node *ast.Infix) {
	switch node.Op {
	case "&&":
		c.compileAnd(node)
	case "||":
		c.compileOr(node)
	case "??":
		c.compileNullish(node)
	default:
		c.compileExpression(node.X)
		c.compileExpression(node.Y)
		code, ok := binaryOps[node.Op]
		if !ok {
			c.unsupported("BinaryOperator",
				"the binary operator %q is not supported", node.Op)
			return
		}
		c.emit(code)
	}
}

// compileAnd short-circuits: the left value is kept as the result when it
// is falsy, otherwise it is replaced by the right value.
func (c *Compiler) compileAnd(node *ast.Infix) {
	end := c.labels.New("and_end")
	c.compileExpression(node.X)
	c.emit(op.Dup)
	c.emit(op.JumpIfFalse, end)
	c.emit(op.Pop)
	c.compileExpression(node.Y)
	c.emit(op.Label, end)
}

func (c *Compiler) compileOr(node *ast.Infix) {
	end := c.labels.New("or_end")
	c.compileExpression(node.X)
	c.emit(op.Dup)
	c.emit(op.JumpIfTrue, end)
	c.emit(op.Pop)
	c.compileExpression(node.Y)
	c.emit(op.Label, end)
}

// compileNullish keeps the left value unless it equals null, in which
// case the right side is evaluated instead.
func (c *Compiler) compileNullish(node *ast.Infix) {
	end := c.labels.New("nullish_end")
	c.compileExpression(node.X)
	c.emit(op.Dup)
	c.emit(op.PushNull)
	c.emit(op.Eq)
	c.emit(op.JumpIfFalse, end)
	c.emit(op.Pop)
	c.compileExpression(node.Y)
	c.emit(op.Label, end)
}

// compileAssign stores the value and reloads it, so the assignment itself
// leaves the assigned value on the stack.
func (c *Compiler) compileAssign(node *ast.Assign) {
	if node.Op != "=" {
		c.unsupported("CompoundAssignment",
			"the assignment operator %q is not supported", node.Op)
		return
	}
	ident, ok := node.Target.(*ast.Ident)
	if !ok {
		c.unsupported("AssignmentTarget",
			"assignment targets must be simple identifiers")
		return
	}
	c.compileExpression(node.Value)
	c.emit(op.StoreVar, ident.Name)
	c.emit(op.LoadVar, ident.Name)
}

// compileUpdate lowers ++ and -- on identifiers. The prefix form yields
// the updated value, the postfix form the original value.
func (c *Compiler) compileUpdate(node *ast.Update) {
	ident, ok := node.Target.(*ast.Ident)
	if !ok {
		c.unsupported("UpdateTarget",
			"increment and decrement targets must be simple identifiers")
		return
	}
	code := op.Increment
	if node.Op == "--" {
		code = op.Decrement
	}
	if node.IsPrefix {
		c.emit(code, ident.Name)
		c.emit(op.LoadVar, ident.Name)
	} else {
		c.emit(op.LoadVar, ident.Name)
		c.emit(code, ident.Name)
	}
}

func (c *Compiler) compileCall(node *ast.Call) {
	switch callee := node.Callee.(type) {
	case *ast.Ident:
		for _, arg := range node.Args {
			c.compileExpression(arg)
		}
		c.emit(op.Call, callee.Name, strconv.Itoa(len(node.Args)))
	case *ast.Member:
		c.compileMethodCall(node, callee)
	default:
		c.unsupported("CallTarget", "unsupported call target")
	}
}

// compileMethodCall handles obj.method(...) where obj is an identifier.
// Deeper chains and computed method names fall back to a placeholder.
func (c *Compiler) compileMethodCall(node *ast.Call, callee *ast.Member) {
	if callee.Computed {
		c.unsupported("CallTarget", "computed method calls are not supported")
		return
	}
	object, ok := callee.Object.(*ast.Ident)
	if !ok {
		c.unsupported("CallTarget", "chained method calls are not supported")
		return
	}
	method, ok := callee.Prop.(*ast.Ident)
	if !ok {
		c.unsupported("CallTarget", "unsupported method name")
		return
	}
	c.compileExpression(callee.Object)
	for _, arg := range node.Args {
		c.compileExpression(arg)
	}
	c.emit(op.CallMethod, object.Name, method.Name, strconv.Itoa(len(node.Args)))
}

func (c *Compiler) compileMember(node *ast.Member) {
	if node.Computed {
		c.compileExpression(node.Object)
		c.compileExpression(node.Prop)
		c.emit(op.GetComputedProp)
		return
	}
	prop, ok := node.Prop.(*ast.Ident)
	if !ok {
		c.unsupported("MemberExpression", "unsupported property access")
		return
	}
	c.compileExpression(node.Object)
	c.emit(op.GetProp, prop.Name)
}

// compileArray pushes the elements in source order and builds the array.
// Holes become undefined. A spread element expands at an unknown width,
// so the element count degrades to the symbolic marker "spread".
func (c *Compiler) compileArray(node *ast.Array) {
	hasSpread := false
	for _, elem := range node.Elements {
		switch elem := elem.(type) {
		case nil:
			c.emit(op.PushUndefined)
		case *ast.Spread:
			c.compileExpression(elem.X)
			c.emit(op.Spread)
			hasSpread = true
		default:
			c.compileExpression(elem)
		}
	}
	count := strconv.Itoa(len(node.Elements))
	if hasSpread {
		count = "spread"
	}
	c.emit(op.CreateArray, count)
}

// compileObject pushes key/value pairs for the plain properties and
// builds the object. Spread, computed and method properties are skipped
// with a diagnostic; the pair count reflects only what was pushed.
func (c *Compiler) compileObject(node *ast.Object) {
	pairs := 0
	for _, prop := range node.Properties {
		switch {
		case prop.Spread:
			c.unsupported("ObjectProperty",
				"spread properties in object literals are not supported")
		case prop.Computed:
			c.unsupported("ObjectProperty",
				"computed property keys are not supported")
		case prop.Method:
			c.unsupported("ObjectProperty",
				"method properties in object literals are not supported")
		default:
			c.emit(op.PushConst, strconv.Quote(prop.Key))
			c.compileExpression(prop.Value)
			pairs++
		}
	}
	c.emit(op.CreateObject, strconv.Itoa(pairs))
}

// compileTemplate pushes every constant segment and interpolation in
// source order, then concatenates. Empty boundary segments are kept so
// the segment count is always one more than the interpolation count.
func (c *Compiler) compileTemplate(node *ast.Template) {
	count := 0
	for i, quasi := range node.Quasis {
		c.emit(op.PushConst, strconv.Quote(quasi))
		count++
		if i < len(node.Exprs) {
			c.compileExpression(node.Exprs[i])
			count++
		}
	}
	c.emit(op.ConcatStrings, strconv.Itoa(count))
}
