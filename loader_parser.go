package dowhile

import (
	internalLoader "github.com/goliatone/go-dowhile/internal/source/loader"
	internalParser "github.com/goliatone/go-dowhile/internal/source/parser"
	pkgsource "github.com/goliatone/go-dowhile/pkg/source"
)

// NewLoader constructs a loader using the internal implementation while
// keeping the concrete type hidden from consumers.
func NewLoader(options ...pkgsource.LoaderOption) pkgsource.Loader {
	cfg := pkgsource.NewLoaderOptions(options...)
	return internalLoader.New(cfg)
}

// NewParser constructs a parser backed by the internal implementation.
func NewParser(options ...pkgsource.ParserOption) pkgsource.Parser {
	cfg := pkgsource.NewParserOptions(options...)
	return internalParser.New(cfg)
}
