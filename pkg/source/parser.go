package source

import (
	"context"

	"github.com/goliatone/go-dowhile/pkg/model"
)

// Parser recognises do-while statements in a document and produces the
// segment model renderers consume. Text outside recognised statements is
// carried through untouched; a statement that begins but does not parse
// completely fails the whole document with a positioned error.
type Parser interface {
	Parse(ctx context.Context, doc Document) (model.File, error)
}

// DefaultMaxNestDepth bounds how deeply do-while statements may nest inside
// each other's bodies before parsing refuses the input.
const DefaultMaxNestDepth = 16

// ParserOptions exposes the parser toggles.
type ParserOptions struct {
	// MaxNestDepth caps do-while nesting inside loop bodies. Zero applies
	// DefaultMaxNestDepth.
	MaxNestDepth int
}

// ParserOption mutates ParserOptions during construction.
type ParserOption func(*ParserOptions)

// WithMaxNestDepth overrides the nesting cap.
func WithMaxNestDepth(depth int) ParserOption {
	return func(opts *ParserOptions) {
		if depth > 0 {
			opts.MaxNestDepth = depth
		}
	}
}

// NewParserOptions applies ParserOption functions and returns the resulting
// configuration. Implementations under internal/source should call this
// helper to remain consistent.
func NewParserOptions(options ...ParserOption) ParserOptions {
	cfg := ParserOptions{
		MaxNestDepth: DefaultMaxNestDepth,
	}
	for _, opt := range options {
		opt(&cfg)
	}
	return cfg
}

// Construction helpers live in the top-level dowhile package to avoid import cycles.
