package model

import (
	"github.com/goliatone/go-dowhile/internal/model"
)

// Builder normalises parsed files ahead of rendering.
type Builder interface {
	Build(file File) (File, error)
}

// BuilderOption configures the builder behaviour.
type BuilderOption func(*builderOptions)

type builderOptions struct {
	indentUnit string
}

// WithIndentUnit overrides the indentation step used when a loop body gives
// no hint of its own (inline bodies, bodies indented level with the do
// keyword). The default is a single tab.
func WithIndentUnit(unit string) BuilderOption {
	return func(opts *builderOptions) {
		opts.indentUnit = unit
	}
}

// NewBuilder returns a Builder backed by the internal implementation.
func NewBuilder(options ...BuilderOption) Builder {
	cfg := builderOptions{}
	for _, opt := range options {
		opt(&cfg)
	}

	internalOpts := model.Options{}
	if cfg.indentUnit != "" {
		internalOpts.IndentUnit = cfg.indentUnit
	}

	return model.New(internalOpts)
}
