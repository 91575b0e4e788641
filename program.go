package stackstep

import "github.com/stackstep-io/stackstep/compiler"

// Program is the compiled representation of a source buffer: its
// statement blocks, instruction lines and diagnostics. It is immutable
// after creation and safe for concurrent use.
type Program struct {
	source   string
	filename string
	blocks   []compiler.StatementBlock
	result   *compiler.Result
}

// Source returns the original source code that was compiled.
func (p *Program) Source() string {
	return p.source
}

// Filename returns the filename associated with this program, if any.
func (p *Program) Filename() string {
	return p.filename
}

// Blocks returns the top-level statement blocks in source order.
func (p *Program) Blocks() []compiler.StatementBlock {
	return p.blocks
}

// Lines returns the compiled instruction lines in execution order.
func (p *Program) Lines() []compiler.InstructionLine {
	return p.result.Lines
}

// Diagnostics returns the non-fatal diagnostics collected during
// compilation, in emission order.
func (p *Program) Diagnostics() []compiler.Diagnostic {
	return p.result.Diagnostics
}

// Result returns the underlying compile result.
func (p *Program) Result() *compiler.Result {
	return p.result
}
