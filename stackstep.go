// Package stackstep compiles a subset of JavaScript into a flat, ordered
// list of narrated stack-machine instructions. The instructions describe
// what a stack machine would do, step by step, in plain English; they are
// presentation data for code-reading tools and are never executed.
package stackstep

import (
	"context"

	"github.com/stackstep-io/stackstep/compiler"
	"github.com/stackstep-io/stackstep/parser"
)

// Option configures a compilation.
type Option func(*options)

type options struct {
	filename string
	labels   *compiler.LabelGenerator
}

func collectOptions(opts ...Option) *options {
	o := &options{}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

// WithFilename sets the filename for the source code being compiled.
// It is used in parse error messages.
func WithFilename(filename string) Option {
	return func(o *options) {
		o.filename = filename
	}
}

// WithLabelGenerator supplies the label generator used for jump targets,
// giving callers control over label numbering across compilations.
func WithLabelGenerator(g *compiler.LabelGenerator) Option {
	return func(o *options) {
		o.labels = g
	}
}

// Compile parses and compiles source code into a Program. The only error
// condition is a parse failure; once a statement list exists, compilation
// is total and unsupported constructs surface as diagnostics on the
// Program instead of errors.
func Compile(ctx context.Context, source string, opts ...Option) (*Program, error) {
	o := collectOptions(opts...)

	var parserOpts []parser.Option
	if o.filename != "" {
		parserOpts = append(parserOpts, parser.WithFilename(o.filename))
	}
	program, err := parser.Parse(ctx, source, parserOpts...)
	if err != nil {
		return nil, err
	}

	var compilerOpts []compiler.Option
	if o.labels != nil {
		compilerOpts = append(compilerOpts, compiler.WithLabelGenerator(o.labels))
	}
	blocks := compiler.Split(program)
	result := compiler.New(compilerOpts...).Compile(blocks)

	return &Program{
		source:   source,
		filename: o.filename,
		blocks:   blocks,
		result:   result,
	}, nil
}
