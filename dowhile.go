// Package dowhile rewrites Go source files that use do-while statements
// into plain Go. The body of a do-while runs before its condition is
// checked, so it always executes at least once:
//
//	i := 0
//	do {
//		i++
//	} while i < 10;
//
// becomes
//
//	i := 0
//	for {
//		i++
//		if !(i < 10) {
//			break
//		}
//	}
//
// A second form adds a block that runs between iterations but never after
// the last one, which is the natural shape for separators:
//
//	parts := []int{1, 2, 3, 4}
//	i, out := 0, ""
//	do {
//		out += strconv.Itoa(parts[i])
//		i++
//	} while i < len(parts), do {
//		out += ", "
//	}
//
// leaves out equal to "1, 2, 3, 4", with the separator between elements
// and not after the final one.
//
// The rewriter treats input as text, not as a Go AST: everything outside a
// do-while statement passes through byte for byte, strings and comments
// never trigger the rewrite, and running the output through the rewriter
// again returns it unchanged. Expand is the in-memory entry point;
// ExpandFile wires it to disk the way go:generate expects. The pipeline
// underneath (loader, parser, model builder, renderer registry) is
// assembled by NewOrchestrator and every stage can be swapped through
// options.
package dowhile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/goliatone/go-dowhile/pkg/orchestrator"
	"github.com/goliatone/go-dowhile/pkg/render"
	pkgsource "github.com/goliatone/go-dowhile/pkg/source"
)

// RenderOptions describes per-request instructions renderers can use, such
// as header overrides or report titles.
type RenderOptions = render.RenderOptions

// Source identifies where an input lives; see SourceFromFile and friends.
type Source = pkgsource.Source

// Option adjusts a single Expand call.
type Option func(*config)

type config struct {
	name     string
	renderer string
	render   render.RenderOptions
	gen      *orchestrator.Orchestrator
}

// WithSourceName names the input in generated headers and error messages.
func WithSourceName(name string) Option {
	return func(cfg *config) {
		cfg.name = name
	}
}

// WithRenderer selects a registry renderer by name instead of the default
// source renderer.
func WithRenderer(name string) Option {
	return func(cfg *config) {
		cfg.renderer = name
	}
}

// WithRenderOptions forwards renderer instructions on this call.
func WithRenderOptions(opts RenderOptions) Option {
	return func(cfg *config) {
		cfg.render = opts
	}
}

// WithOrchestrator reuses a configured pipeline instead of the shared
// default one.
func WithOrchestrator(gen *orchestrator.Orchestrator) Option {
	return func(cfg *config) {
		cfg.gen = gen
	}
}

var (
	defaultGenOnce sync.Once
	defaultGen     *orchestrator.Orchestrator
)

func (cfg *config) pipeline() *orchestrator.Orchestrator {
	if cfg.gen != nil {
		return cfg.gen
	}
	defaultGenOnce.Do(func() {
		defaultGen = orchestrator.New()
	})
	return defaultGen
}

// Expand rewrites every do-while statement in src and returns the result.
// Inputs without do-while statements, previous output included, come back
// unchanged except for the generated-code header.
func Expand(ctx context.Context, src []byte, opts ...Option) ([]byte, error) {
	cfg := config{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	doc, err := pkgsource.NewDocument(pkgsource.SourceFromMemory(cfg.name), src)
	if err != nil {
		return nil, err
	}

	return cfg.pipeline().Generate(ctx, orchestrator.Request{
		Document:      &doc,
		Renderer:      cfg.renderer,
		RenderOptions: cfg.render,
	})
}

// ExpandString is Expand for string payloads.
func ExpandString(ctx context.Context, src string, opts ...Option) (string, error) {
	out, err := Expand(ctx, []byte(src), opts...)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// ExpandFile rewrites the file at in and writes the result to out,
// creating parent directories as needed. The input path names the source
// in the generated header.
func ExpandFile(ctx context.Context, in, out string, opts ...Option) error {
	cfg := config{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	result, err := cfg.pipeline().Generate(ctx, orchestrator.Request{
		Source:        pkgsource.SourceFromFile(in),
		Renderer:      cfg.renderer,
		RenderOptions: cfg.render,
	})
	if err != nil {
		return err
	}

	if dir := filepath.Dir(out); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("dowhile: create output dir: %w", err)
		}
	}
	if err := os.WriteFile(out, result, 0o644); err != nil {
		return fmt.Errorf("dowhile: write %s: %w", out, err)
	}
	return nil
}

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module so callers can assemble a customised pipeline once and reuse it.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// SourceFromFile returns a Source pointing at a file path.
func SourceFromFile(path string) Source {
	return pkgsource.SourceFromFile(path)
}

// SourceFromStdin returns a Source reading standard input.
func SourceFromStdin() Source {
	return pkgsource.SourceFromStdin()
}
