// Package compiler lowers parsed statements into a flat, ordered list of
// narrated stack-machine instructions. The output is presentation data:
// instructions describe what a stack machine would do, line by line, and
// are never executed.
//
// Compilation is total. Unsupported constructs degrade into UNSUPPORTED
// placeholder instructions plus diagnostics rather than errors, so every
// input produces a usable instruction list.
package compiler

import (
	"fmt"
	"strconv"

	"github.com/stackstep-io/stackstep/ast"
	"github.com/stackstep-io/stackstep/op"
)

// Compiler lowers statement blocks into instruction lines. All mutable
// compilation state lives on the struct, so concurrent compilations each
// need their own Compiler. The zero value is not usable; call New.
type Compiler struct {
	labels       *LabelGenerator
	breakTargets []string
	lines        []InstructionLine
	diagnostics  []Diagnostic
	stmtID       string
}

// Option modifies a Compiler at construction time.
type Option func(*Compiler)

// WithLabelGenerator supplies a label generator, letting callers control
// label numbering across compilations.
func WithLabelGenerator(g *LabelGenerator) Option {
	return func(c *Compiler) {
		c.labels = g
	}
}

// New creates a Compiler.
func New(opts ...Option) *Compiler {
	c := &Compiler{}
	for _, opt := range opts {
		opt(c)
	}
	if c.labels == nil {
		c.labels = NewLabelGenerator()
	}
	return c
}

// Compile is a convenience that compiles blocks with a fresh Compiler.
func Compile(blocks []StatementBlock) *Result {
	return New().Compile(blocks)
}

// Compile lowers the given blocks into a Result. Output state is reset at
// the start of each call, so a Compiler may be reused; the label counter
// carries over unless the caller resets its generator.
func (c *Compiler) Compile(blocks []StatementBlock) *Result {
	c.lines = nil
	c.diagnostics = nil
	c.breakTargets = nil
	for _, block := range blocks {
		c.stmtID = block.ID
		mark := len(c.lines)
		c.compileStatement(block.Node)
		// Every block owns at least one line so that renderers can map
		// each statement to a non-empty instruction group.
		if len(c.lines) == mark {
			c.emit(op.Nop)
		}
	}
	return &Result{Lines: c.lines, Diagnostics: c.diagnostics}
}

func (c *Compiler) emit(code op.Code, args ...string) {
	c.lines = append(c.lines, NewInstruction(c.stmtID, code, args...))
}

func (c *Compiler) diagnose(format string, args ...interface{}) {
	c.diagnostics = append(c.diagnostics, Diagnostic{
		StatementID: c.stmtID,
		Message:     fmt.Sprintf(format, args...),
	})
}

// unsupported records a placeholder instruction tagged with the construct
// name and a diagnostic explaining what was skipped.
func (c *Compiler) unsupported(tag, format string, args ...interface{}) {
	c.emit(op.Unsupported, tag)
	c.diagnose(format, args...)
}

func (c *Compiler) compileStatement(node ast.Stmt) {
	switch node := node.(type) {
	case nil:
		c.unsupported("MissingStatement", "statement is missing")
	case *ast.VarDecl:
		c.compileVarDecl(node)
	case *ast.ExprStmt:
		c.compileExpression(node.X)
		c.emit(op.Pop)
	case *ast.Block:
		for _, stmt := range node.Stmts {
			c.compileStatement(stmt)
		}
	case *ast.If:
		c.compileIf(node)
	case *ast.While:
		c.compileWhile(node)
	case *ast.ForIn:
		c.compileForIn(node)
	case *ast.ForOf:
		c.compileForOf(node)
	case *ast.ForClassic:
		c.unsupported("ForStatement", "C-style for loops are not supported; use for-of or while")
	case *ast.Switch:
		c.compileSwitch(node)
	case *ast.Break:
		c.compileBreak(node)
	case *ast.Continue:
		c.unsupported("ContinueStatement", "continue statements are not supported")
	case *ast.FuncDecl:
		c.compileFuncDecl(node)
	case *ast.Return:
		c.compileReturn(node)
	case *ast.Import:
		c.compileImport(node)
	case *ast.ExportDecl:
		c.compileExportDecl(node)
	case *ast.ExportNamed:
		c.compileExportNamed(node)
	case *ast.Empty:
		c.emit(op.Nop)
	case *ast.BadStmt:
		c.unsupported("BadStatement", "statement could not be parsed")
	default:
		name := ast.TypeName(node)
		c.unsupported(name, "unsupported statement type: %s", name)
	}
}

func (c *Compiler) compileVarDecl(node *ast.VarDecl) {
	for _, decl := range node.Decls {
		ident, ok := decl.Target.(*ast.Ident)
		if !ok {
			c.unsupported("Destructuring",
				"Destructuring declaration targets are not supported")
			continue
		}
		c.emit(op.DeclareVar, ident.Name)
		if decl.Value != nil {
			c.compileExpression(decl.Value)
			c.emit(op.StoreVar, ident.Name)
		}
	}
}

func (c *Compiler) compileIf(node *ast.If) {
	c.compileExpression(node.Cond)
	if node.Alternate == nil {
		end := c.labels.New("if_end")
		c.emit(op.JumpIfFalse, end)
		c.compileStatement(node.Consequent)
		c.emit(op.Label, end)
		return
	}
	alternate := c.labels.New("if_else")
	end := c.labels.New("if_end")
	c.emit(op.JumpIfFalse, alternate)
	c.compileStatement(node.Consequent)
	c.emit(op.Jump, end)
	c.emit(op.Label, alternate)
	c.compileStatement(node.Alternate)
	c.emit(op.Label, end)
}

func (c *Compiler) compileWhile(node *ast.While) {
	start := c.labels.New("while_start")
	end := c.labels.New("while_end")
	c.emit(op.Label, start)
	c.compileExpression(node.Cond)
	c.emit(op.JumpIfFalse, end)
	c.compileStatement(node.Body)
	c.emit(op.Jump, start)
	c.emit(op.Label, end)
}

// loopVar resolves the loop variable of a for-in or for-of statement,
// emitting a declaration when the loop introduces a new binding. The
// second return is false when the target is not a simple identifier.
func (c *Compiler) loopVar(decl string, target ast.Expr) (string, bool) {
	ident, ok := target.(*ast.Ident)
	if !ok {
		c.unsupported("Destructuring",
			"Destructuring loop targets are not supported")
		return "", false
	}
	if decl != "" {
		c.emit(op.DeclareVar, ident.Name)
	}
	return ident.Name, true
}

func (c *Compiler) compileForIn(node *ast.ForIn) {
	name, ok := c.loopVar(node.Decl, node.Target)
	if !ok {
		return
	}
	c.compileExpression(node.Object)
	c.emit(op.GetKeys)
	start := c.labels.New("forin_start")
	end := c.labels.New("forin_end")
	c.emit(op.Label, start)
	c.emit(op.IterHasNext)
	c.emit(op.JumpIfFalse, end)
	c.emit(op.IterNext)
	c.emit(op.StoreVar, name)
	c.compileStatement(node.Body)
	c.emit(op.Jump, start)
	c.emit(op.Label, end)
}

func (c *Compiler) compileForOf(node *ast.ForOf) {
	name, ok := c.loopVar(node.Decl, node.Target)
	if !ok {
		return
	}
	c.compileExpression(node.Iterable)
	c.emit(op.GetIterator)
	start := c.labels.New("forof_start")
	end := c.labels.New("forof_end")
	c.emit(op.Label, start)
	c.emit(op.IterHasNext)
	c.emit(op.JumpIfFalse, end)
	c.emit(op.IterNext)
	c.emit(op.StoreVar, name)
	c.compileStatement(node.Body)
	c.emit(op.Jump, start)
	c.emit(op.Label, end)
}

// compileSwitch lowers a switch into a dispatch section of DUP/EQ tests
// followed by the case bodies in source order. Fall-through works because
// bodies are laid out contiguously; break jumps to the end label via the
// break-target stack.
func (c *Compiler) compileSwitch(node *ast.Switch) {
	c.compileExpression(node.Value)
	end := c.labels.New("switch_end")
	c.breakTargets = append(c.breakTargets, end)

	// Labels are allocated in source order so that the numbering reads
	// top to bottom in the listing.
	caseLabels := make([]string, len(node.Cases))
	defaultLabel := ""
	for i, clause := range node.Cases {
		if clause.Test == nil {
			caseLabels[i] = c.labels.New("switch_default")
			defaultLabel = caseLabels[i]
		} else {
			caseLabels[i] = c.labels.New("switch_case")
		}
	}

	for i, clause := range node.Cases {
		if clause.Test == nil {
			continue
		}
		c.emit(op.Dup)
		c.compileExpression(clause.Test)
		c.emit(op.Eq)
		c.emit(op.JumpIfTrue, caseLabels[i])
	}
	if defaultLabel != "" {
		c.emit(op.Jump, defaultLabel)
	} else {
		c.emit(op.Jump, end)
	}

	for i, clause := range node.Cases {
		c.emit(op.Label, caseLabels[i])
		for _, stmt := range clause.Body {
			c.compileStatement(stmt)
		}
	}

	c.emit(op.Label, end)
	// The duplicated discriminant is still on the stack.
	c.emit(op.Pop)
	c.breakTargets = c.breakTargets[:len(c.breakTargets)-1]
}

func (c *Compiler) compileBreak(node *ast.Break) {
	if len(c.breakTargets) == 0 {
		c.diagnose("break statement outside of a switch")
		return
	}
	c.emit(op.Jump, c.breakTargets[len(c.breakTargets)-1])
}

func (c *Compiler) compileFuncDecl(node *ast.FuncDecl) {
	name := "?"
	if node.Name != nil {
		name = node.Name.Name
	}
	c.emit(op.DeclareFunc, name, strconv.Itoa(len(node.Params)))
	start := c.labels.New("func_start")
	end := c.labels.New("func_end")
	c.emit(op.Label, start)
	for i, param := range node.Params {
		ident, ok := param.(*ast.Ident)
		if !ok {
			c.unsupported("FunctionParameter",
				"function parameters must be simple identifiers")
			continue
		}
		c.emit(op.Param, ident.Name, strconv.Itoa(i))
	}
	if node.Body != nil {
		for _, stmt := range node.Body.Stmts {
			c.compileStatement(stmt)
		}
	}
	// Every function body ends by returning, even when the source has a
	// trailing return of its own.
	c.emit(op.ReturnUndefined)
	c.emit(op.Label, end)
}

func (c *Compiler) compileReturn(node *ast.Return) {
	if node.Value == nil {
		c.emit(op.ReturnUndefined)
		return
	}
	c.compileExpression(node.Value)
	c.emit(op.Return)
}

func (c *Compiler) compileImport(node *ast.Import) {
	source := strconv.Quote(node.Source)
	for _, spec := range node.Specs {
		switch spec.Kind {
		case ast.ImportDefault:
			c.emit(op.ImportDefault, spec.Local, source)
		case ast.ImportNamespace:
			c.emit(op.ImportNamespace, spec.Local, source)
		default:
			if spec.Imported == spec.Local {
				c.emit(op.Import, spec.Imported, source)
			} else {
				c.emit(op.ImportAs, spec.Imported, spec.Local, source)
			}
		}
	}
}

// compileExportDecl compiles the wrapped declaration, then exports the
// names it binds.
func (c *Compiler) compileExportDecl(node *ast.ExportDecl) {
	c.compileStatement(node.Decl)
	switch decl := node.Decl.(type) {
	case *ast.VarDecl:
		for _, d := range decl.Decls {
			if ident, ok := d.Target.(*ast.Ident); ok {
				c.emit(op.Export, ident.Name)
			}
		}
	case *ast.FuncDecl:
		if decl.Name != nil {
			c.emit(op.Export, decl.Name.Name)
		}
	default:
		c.unsupported("ExportDeclaration",
			"only variable and function declarations can be exported inline")
	}
}

func (c *Compiler) compileExportNamed(node *ast.ExportNamed) {
	for _, spec := range node.Specs {
		if spec.Exported == spec.Local {
			c.emit(op.Export, spec.Local)
		} else {
			c.emit(op.ExportAs, spec.Local, spec.Exported)
		}
	}
}
