package compiler

import "fmt"

// LabelGenerator produces unique jump-target names from a monotonically
// increasing counter. Each Compiler owns its own generator, so independent
// compilations never share label numbering; a generator can be reset for
// deterministic output in tests.
type LabelGenerator struct {
	counter int
}

// NewLabelGenerator returns a LabelGenerator starting at zero.
func NewLabelGenerator() *LabelGenerator {
	return &LabelGenerator{}
}

// New returns a fresh label with the given prefix, e.g. "if_end_3".
func (g *LabelGenerator) New(prefix string) string {
	label := fmt.Sprintf("%s_%d", prefix, g.counter)
	g.counter++
	return label
}

// Reset rewinds the counter so that the next label is numbered zero.
func (g *LabelGenerator) Reset() {
	g.counter = 0
}
