package compiler

import (
	"fmt"

	"github.com/stackstep-io/stackstep/ast"
	"github.com/stackstep-io/stackstep/token"
)

// StatementBlock is one top-level statement plus its stable identity and
// presentation metadata. Blocks are produced once from a parsed program
// and are immutable thereafter.
type StatementBlock struct {
	// ID is derived deterministically from the ordinal index and starting
	// line/column, so ids are unique even for statements sharing a line.
	ID string `json:"id"`

	// Index is the ordinal position of the statement in the program.
	Index int `json:"index"`

	// Pos is the source location of the statement's first token.
	Pos token.Position `json:"-"`

	// Node is the parsed statement.
	Node ast.Stmt `json:"-"`

	// ColorBand alternates by index parity and drives row grouping in
	// renderers.
	ColorBand int `json:"color_band"`
}

// Split converts a parsed program into the statement-block list consumed
// by the compiler.
func Split(program *ast.Program) []StatementBlock {
	blocks := make([]StatementBlock, 0, len(program.Stmts))
	for i, stmt := range program.Stmts {
		pos := stmt.Pos()
		blocks = append(blocks, StatementBlock{
			ID:        fmt.Sprintf("stmt-%d-%d:%d", i, pos.LineNumber(), pos.ColumnNumber()),
			Index:     i,
			Pos:       pos,
			Node:      stmt,
			ColorBand: i % 2,
		})
	}
	return blocks
}
