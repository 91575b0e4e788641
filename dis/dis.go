// Package dis renders compiled instruction listings for human reading.
// Instructions are grouped by their originating statement, with the
// statement groups alternating between two color bands, mirroring how a
// side-by-side source/instruction view presents them.
package dis

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/stackstep-io/stackstep/compiler"
)

// Printer renders instruction listings to a writer.
type Printer struct {
	colorize  bool
	narrate   bool
	bandA     *color.Color
	bandB     *color.Color
	narration *color.Color
	header    *color.Color
	warning   *color.Color
}

// Option modifies a Printer at construction time.
type Option func(*Printer)

// WithColor enables or disables ANSI colors in the output.
func WithColor(enabled bool) Option {
	return func(p *Printer) {
		p.colorize = enabled
	}
}

// WithNarration enables or disables the English narration column.
func WithNarration(enabled bool) Option {
	return func(p *Printer) {
		p.narrate = enabled
	}
}

// NewPrinter creates a Printer. Colors and narration are on by default.
func NewPrinter(opts ...Option) *Printer {
	p := &Printer{
		colorize:  true,
		narrate:   true,
		bandA:     color.New(color.FgWhite),
		bandB:     color.New(color.FgCyan),
		narration: color.New(color.Faint),
		header:    color.New(color.FgGreen, color.Bold),
		warning:   color.New(color.FgYellow),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Printer) sprint(c *color.Color, s string) string {
	if !p.colorize {
		return s
	}
	return c.Sprint(s)
}

// Print writes the full listing: one header per statement block followed
// by that block's instructions, then any diagnostics.
func (p *Printer) Print(w io.Writer, blocks []compiler.StatementBlock, result *compiler.Result) error {
	width := textWidth(result.Lines)
	byID := make(map[string][]compiler.InstructionLine)
	for _, line := range result.Lines {
		byID[line.StatementID] = append(byID[line.StatementID], line)
	}
	for _, block := range blocks {
		source := ""
		if block.Node != nil {
			source = block.Node.String()
		}
		header := fmt.Sprintf("%s  %s", block.ID, source)
		if _, err := fmt.Fprintln(w, p.sprint(p.header, header)); err != nil {
			return err
		}
		band := p.bandA
		if block.ColorBand == 1 {
			band = p.bandB
		}
		for _, line := range byID[block.ID] {
			if err := p.printLine(w, band, width, line); err != nil {
				return err
			}
		}
	}
	return p.printDiagnostics(w, result.Diagnostics)
}

// PrintLines writes a flat listing without statement headers.
func (p *Printer) PrintLines(w io.Writer, lines []compiler.InstructionLine) error {
	width := textWidth(lines)
	for _, line := range lines {
		if err := p.printLine(w, p.bandA, width, line); err != nil {
			return err
		}
	}
	return nil
}

func (p *Printer) printLine(w io.Writer, band *color.Color, width int, line compiler.InstructionLine) error {
	text := p.sprint(band, line.Text)
	if !p.narrate {
		_, err := fmt.Fprintf(w, "  %s\n", text)
		return err
	}
	padding := strings.Repeat(" ", width-len(line.Text)+2)
	narration := p.sprint(p.narration, line.English)
	_, err := fmt.Fprintf(w, "  %s%s%s\n", text, padding, narration)
	return err
}

func (p *Printer) printDiagnostics(w io.Writer, diagnostics []compiler.Diagnostic) error {
	for _, d := range diagnostics {
		msg := fmt.Sprintf("warning: %s: %s", d.StatementID, d.Message)
		if _, err := fmt.Fprintln(w, p.sprint(p.warning, msg)); err != nil {
			return err
		}
	}
	return nil
}

func textWidth(lines []compiler.InstructionLine) int {
	width := 0
	for _, line := range lines {
		if len(line.Text) > width {
			width = len(line.Text)
		}
	}
	return width
}

// Print renders a program listing with default options.
func Print(w io.Writer, blocks []compiler.StatementBlock, result *compiler.Result) error {
	return NewPrinter().Print(w, blocks, result)
}
