package source

import (
	"context"
	"io"
	"io/fs"
)

// DefaultMaxInputSize caps how much a loader will read for a single input.
// Source rewriting happens file by file, so anything past a few megabytes is
// almost certainly a mistake rather than Go source.
const DefaultMaxInputSize = 8 << 20

// Loader fetches input documents from different sources (filesystem, fs.FS,
// stdin). Implementations live under internal/source but satisfy this
// contract.
type Loader interface {
	Load(ctx context.Context, src Source) (Document, error)
}

// LoaderOptions configures how a Loader resolves sources.
type LoaderOptions struct {
	// FileSystem enables loading from an abstract filesystem; defaults to the
	// operating system if nil.
	FileSystem fs.FS

	// Stdin overrides the reader used for stdin sources. Defaults to
	// os.Stdin; tests inject a buffer here.
	Stdin io.Reader

	// MaxInputSize caps the bytes read for a single document. Zero or
	// negative applies DefaultMaxInputSize.
	MaxInputSize int64
}

// LoaderOption mutates LoaderOptions prior to construction.
type LoaderOption func(*LoaderOptions)

// WithFileSystem injects an fs.FS implementation for relative paths.
func WithFileSystem(files fs.FS) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.FileSystem = files
	}
}

// WithStdin injects the reader backing stdin sources.
func WithStdin(r io.Reader) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.Stdin = r
	}
}

// WithMaxInputSize overrides the input size cap.
func WithMaxInputSize(n int64) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.MaxInputSize = n
	}
}

// NewLoaderOptions applies a set of LoaderOption values and returns the
// resulting configuration. Implementations can embed this helper to stay
// consistent.
func NewLoaderOptions(options ...LoaderOption) LoaderOptions {
	cfg := LoaderOptions{}
	for _, opt := range options {
		opt(&cfg)
	}
	return cfg
}

// Construction helpers live in the top-level dowhile package to prevent import cycles.
