// Package gofile renders a parsed source file back to plain Go, replacing
// every do-while statement with an equivalent for loop. Everything between
// statements passes through byte for byte, so running the output through
// the renderer again reproduces it exactly.
package gofile

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-dowhile/pkg/model"
	"github.com/goliatone/go-dowhile/pkg/render"
	rendertemplate "github.com/goliatone/go-dowhile/pkg/render/template"
	gotemplate "github.com/goliatone/go-dowhile/pkg/render/template/gotemplate"
	pkgsource "github.com/goliatone/go-dowhile/pkg/source"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

type Renderer struct {
	templates rendertemplate.TemplateRenderer
}

// New constructs the source renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
		)
		if err != nil {
			return nil, fmt.Errorf("gofile renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer}, nil
}

func (r *Renderer) Name() string {
	return "gofile"
}

func (r *Renderer) ContentType() string {
	return "text/x-go; charset=utf-8"
}

func (r *Renderer) Render(_ context.Context, file model.File, opts render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("gofile renderer: template renderer is nil")
	}

	// Unnamed in-memory input never reaches headers or line directives.
	source := opts.SourceName
	if source == "" && file.Name != pkgsource.MemoryName {
		source = file.Name
	}

	exp := &expander{
		source:     source,
		directives: opts.LineDirectives && source != "",
	}
	body := exp.file(file)

	// Inputs that already carry a generated-code header are previous output
	// of this renderer. Adding another header would stack markers and break
	// the rewrite-twice-get-the-same-bytes property.
	if opts.DisableHeader || render.HasGeneratedHeader([]byte(body)) {
		return []byte(body), nil
	}

	header, err := r.headerLine(source, opts.HeaderText)
	if err != nil {
		return nil, err
	}
	return []byte(header + "\n\n" + body), nil
}

func (r *Renderer) headerLine(source, override string) (string, error) {
	data := map[string]any{
		"tool":   render.DefaultTool,
		"source": source,
	}

	var (
		line string
		err  error
	)
	if override != "" {
		line, err = r.templates.RenderString(override, data)
	} else {
		line, err = r.templates.RenderTemplate("templates/header.tpl", data)
	}
	if err != nil {
		return "", fmt.Errorf("gofile renderer: render header: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
