// Package errz defines the structured syntax errors produced by the
// lexer and parser. Each error carries its source location and, when
// available, the text of the offending line, so that callers can render
// a snippet with a caret pointing at the problem.
package errz

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/stackstep-io/stackstep/token"
)

// SyntaxError is a syntax error with a source location.
type SyntaxError struct {
	Message    string
	Position   token.Position
	SourceLine string
}

// NewSyntaxError creates a SyntaxError at the given position.
func NewSyntaxError(pos token.Position, sourceLine, message string) *SyntaxError {
	return &SyntaxError{
		Message:    message,
		Position:   pos,
		SourceLine: sourceLine,
	}
}

// NewSyntaxErrorf creates a SyntaxError with a formatted message.
func NewSyntaxErrorf(pos token.Position, sourceLine, format string, args ...interface{}) *SyntaxError {
	return NewSyntaxError(pos, sourceLine, fmt.Sprintf(format, args...))
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	if e.Position.File != "" {
		return fmt.Sprintf("syntax error: %s (%s:%d:%d)",
			e.Message, e.Position.File, e.Position.LineNumber(), e.Position.ColumnNumber())
	}
	return fmt.Sprintf("syntax error: %s (line %d, column %d)",
		e.Message, e.Position.LineNumber(), e.Position.ColumnNumber())
}

// FriendlyMessage returns a multi-line rendering of the error with the
// offending source line and a caret under the error column.
func (e *SyntaxError) FriendlyMessage() string {
	var msg bytes.Buffer
	msg.WriteString(e.Error())
	if e.SourceLine != "" {
		msg.WriteString("\n | ")
		msg.WriteString(e.SourceLine)
		if e.Position.Column >= 0 {
			msg.WriteString("\n | ")
			msg.WriteString(strings.Repeat(" ", e.Position.Column))
			msg.WriteString("^")
		}
	}
	return msg.String()
}
