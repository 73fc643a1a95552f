// Package parser implements do-while recognition over raw Go source text.
// It deliberately avoids go/parser: inputs are not valid Go until after the
// rewrite, and the surface syntax only needs lexical awareness (strings,
// comments, brace depth) plus statement-position detection for the do
// keyword. Everything outside a recognised statement passes through
// byte-for-byte.
package parser

import (
	"context"
	"errors"

	"github.com/goliatone/go-dowhile/pkg/model"
	pkgsource "github.com/goliatone/go-dowhile/pkg/source"
)

// Parser implements pkgsource.Parser. Construction helpers live in the
// top-level dowhile package.
type Parser struct {
	maxDepth int
}

// Ensure the implementation satisfies the public interface.
var _ pkgsource.Parser = (*Parser)(nil)

// New constructs a Parser from pre-resolved options.
func New(options pkgsource.ParserOptions) pkgsource.Parser {
	depth := options.MaxNestDepth
	if depth <= 0 {
		depth = pkgsource.DefaultMaxNestDepth
	}
	return &Parser{maxDepth: depth}
}

// Parse splits the document into raw and loop segments. A do-while statement
// that begins but does not parse completely fails the whole document; there
// is no recovery or partial output.
func (p *Parser) Parse(ctx context.Context, doc pkgsource.Document) (model.File, error) {
	if ctx == nil {
		return model.File{}, errors.New("parser: context is required")
	}
	if err := ctx.Err(); err != nil {
		return model.File{}, err
	}

	w := &walker{
		source:   doc.Location(),
		maxDepth: p.maxDepth,
	}

	segments, derr := w.region(doc.Raw(), 1, 1, 0)
	if derr != nil {
		return model.File{}, derr
	}

	return model.File{Name: doc.Name(), Segments: segments}, nil
}
