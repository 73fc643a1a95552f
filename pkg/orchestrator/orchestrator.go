package orchestrator

import (
	"context"
	"errors"
	"fmt"

	internalLoader "github.com/goliatone/go-dowhile/internal/source/loader"
	internalParser "github.com/goliatone/go-dowhile/internal/source/parser"
	"github.com/goliatone/go-dowhile/pkg/model"
	"github.com/goliatone/go-dowhile/pkg/render"
	"github.com/goliatone/go-dowhile/pkg/renderers/gofile"
	"github.com/goliatone/go-dowhile/pkg/renderers/report"
	pkgsource "github.com/goliatone/go-dowhile/pkg/source"
)

const defaultRendererName = "gofile"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom source loader.
func WithLoader(loader pkgsource.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithParser injects a custom source parser.
func WithParser(parser pkgsource.Parser) Option {
	return func(o *Orchestrator) {
		o.parser = parser
	}
}

// WithModelBuilder injects a custom loop model builder.
func WithModelBuilder(builder model.Builder) Option {
	return func(o *Orchestrator) {
		o.builder = builder
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithDecorators registers decorators that run against the parsed file
// before rendering.
func WithDecorators(decorators ...model.Decorator) Option {
	return func(o *Orchestrator) {
		if len(decorators) == 0 {
			return
		}
		o.decorators = append(o.decorators, decorators...)
	}
}

// Orchestrator coordinates the full pipeline from source text to rendered
// output. It applies sensible defaults (built-in loader and parser, source
// renderer plus the report renderers) while remaining open to dependency
// injection for advanced callers.
type Orchestrator struct {
	loader          pkgsource.Loader
	parser          pkgsource.Parser
	builder         model.Builder
	registry        *render.Registry
	defaultRenderer string
	decorators      []model.Decorator
	initialiseErr   error
	defaultsApplied bool
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations so callers
// can start with a single constructor call.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes the inputs required to rewrite one source file.
type Request struct {
	// Source identifies where the input lives. Optional when Document is
	// supplied.
	Source pkgsource.Source

	// Document allows callers to bypass the loader when they already have
	// the input bytes.
	Document *pkgsource.Document

	// Renderer names the renderer to use. If empty, the orchestrator falls
	// back to the configured default renderer.
	Renderer string

	// RenderOptions carries per-request instructions such as header
	// overrides or report titles. When omitted, renderers receive the
	// zero-value struct, which produces headed Go source.
	RenderOptions render.RenderOptions
}

// Generate executes the loader, parser, builder, renderer sequence and
// returns the rendered bytes (Go source for the default renderer).
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	if !o.defaultsApplied {
		o.applyDefaults()
		if err := o.initialiseErr; err != nil {
			return nil, err
		}
	}

	doc, err := o.resolveDocument(ctx, req)
	if err != nil {
		return nil, err
	}

	file, err := o.parser.Parse(ctx, doc)
	if err != nil {
		return nil, err
	}

	file, err = o.builder.Build(file)
	if err != nil {
		return nil, err
	}

	if err := o.applyDecorators(&file); err != nil {
		return nil, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	opts := req.RenderOptions
	if opts.SourceName == "" {
		// Unnamed in-memory input stays out of generated headers.
		if name := doc.Name(); name != pkgsource.MemoryName {
			opts.SourceName = name
		}
	}

	output, err := renderer.Render(ctx, file, opts)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}

	return output, nil
}

func (o *Orchestrator) resolveDocument(ctx context.Context, req Request) (pkgsource.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Source == nil {
		return pkgsource.Document{}, errors.New("orchestrator: source or document is required")
	}
	doc, err := o.loader.Load(ctx, req.Source)
	if err != nil {
		return pkgsource.Document{}, fmt.Errorf("orchestrator: load document: %w", err)
	}
	return doc, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}

	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDecorators(file *model.File) error {
	if len(o.decorators) == 0 || file == nil {
		return nil
	}
	for _, decorator := range o.decorators {
		if decorator == nil {
			continue
		}
		if err := decorator.Decorate(file); err != nil {
			return fmt.Errorf("orchestrator: decorate file: %w", err)
		}
	}
	return nil
}

func (o *Orchestrator) applyDefaults() {
	if o.defaultsApplied {
		return
	}

	if o.loader == nil {
		o.loader = internalLoader.New(pkgsource.NewLoaderOptions())
	}
	if o.parser == nil {
		o.parser = internalParser.New(pkgsource.NewParserOptions())
	}
	if o.builder == nil {
		o.builder = model.NewBuilder()
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		o.registerBuiltins()
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}

	o.defaultsApplied = true
}

func (o *Orchestrator) registerBuiltins() {
	source, err := gofile.New()
	if err != nil {
		o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		return
	}
	o.registry.MustRegister(source)

	markdown, err := report.NewMarkdown()
	if err != nil {
		o.initialiseErr = fmt.Errorf("orchestrator: markdown report renderer: %w", err)
		return
	}
	o.registry.MustRegister(markdown)

	html, err := report.NewHTML()
	if err != nil {
		o.initialiseErr = fmt.Errorf("orchestrator: html report renderer: %w", err)
		return
	}
	o.registry.MustRegister(html)
}
