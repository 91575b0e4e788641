package compiler

import "github.com/stackstep-io/stackstep/op"

// InstructionLine is one emitted instruction. It is immutable once
// created. The position of a line within the Result's list is the only
// execution-order signal: there is no program counter or offset field.
type InstructionLine struct {
	// StatementID identifies the top-level statement block that produced
	// this instruction. Instructions emitted for nested statements carry
	// the id of their enclosing top-level statement.
	StatementID string `json:"statement_id"`

	// Opcode identifies the instruction kind.
	Opcode op.Code `json:"-"`

	// Args are the instruction's rendered arguments, in order.
	Args []string `json:"args,omitempty"`

	// Text is the display form: the opcode name followed by the
	// space-separated arguments.
	Text string `json:"text"`

	// English is a deterministic narration of the instruction, derived
	// solely from the opcode and arguments.
	English string `json:"english"`
}

// NewInstruction builds an InstructionLine for the given opcode and
// arguments. It is a pure function: the same inputs always produce the
// same line.
func NewInstruction(statementID string, code op.Code, args ...string) InstructionLine {
	return InstructionLine{
		StatementID: statementID,
		Opcode:      code,
		Args:        args,
		Text:        op.Render(code, args),
		English:     op.Narrate(code, args),
	}
}

// Diagnostic is a non-fatal note describing an unsupported or degraded
// construct encountered during compilation. Diagnostics carry no
// severity; the instruction stream remains usable in their presence.
type Diagnostic struct {
	StatementID string `json:"statement_id"`
	Message     string `json:"message"`
}

// Result is the output of one Compile call: the flat instruction list in
// execution order plus any diagnostics collected along the way.
type Result struct {
	Lines       []InstructionLine `json:"lines"`
	Diagnostics []Diagnostic      `json:"diagnostics,omitempty"`
}
