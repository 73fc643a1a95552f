// Package report renders human-readable summaries of the do-while
// statements found in a file, with the original text and the rewrite side
// by side. Markdown output suits code review comments and CI logs; HTML
// output is self-contained and ready to serve.
package report

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/goliatone/go-dowhile/pkg/model"
	"github.com/goliatone/go-dowhile/pkg/render"
	rendertemplate "github.com/goliatone/go-dowhile/pkg/render/template"
	gotemplate "github.com/goliatone/go-dowhile/pkg/render/template/gotemplate"
	"github.com/goliatone/go-dowhile/pkg/renderers/gofile"
)

// DefaultTitle labels reports when the caller does not provide one.
const DefaultTitle = "do-while rewrite report"

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

func newTemplates(options []Option) (rendertemplate.TemplateRenderer, error) {
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
	if cfg.templateRenderer != nil {
		return cfg.templateRenderer, nil
	}

	engine, err := gotemplate.New(
		gotemplate.WithFS(cfg.templateFS),
	)
	if err != nil {
		return nil, fmt.Errorf("report renderer: configure template renderer: %w", err)
	}
	return engine, nil
}

// Markdown renders the report as a Markdown document.
type Markdown struct {
	templates rendertemplate.TemplateRenderer
}

// NewMarkdown constructs the Markdown report renderer.
func NewMarkdown(options ...Option) (*Markdown, error) {
	templates, err := newTemplates(options)
	if err != nil {
		return nil, err
	}
	return &Markdown{templates: templates}, nil
}

func (r *Markdown) Name() string {
	return "report-markdown"
}

func (r *Markdown) ContentType() string {
	return "text/markdown; charset=utf-8"
}

func (r *Markdown) Render(_ context.Context, file model.File, opts render.RenderOptions) ([]byte, error) {
	result, err := r.templates.RenderTemplate("templates/report.md.tpl", reportContext(file, opts, opts.Notes))
	if err != nil {
		return nil, fmt.Errorf("report renderer: render markdown: %w", err)
	}
	return []byte(result), nil
}

// HTML renders the report as a standalone HTML page. Caller-provided notes
// are sanitised before they are embedded as markup.
type HTML struct {
	templates rendertemplate.TemplateRenderer
}

// NewHTML constructs the HTML report renderer.
func NewHTML(options ...Option) (*HTML, error) {
	templates, err := newTemplates(options)
	if err != nil {
		return nil, err
	}
	return &HTML{templates: templates}, nil
}

func (r *HTML) Name() string {
	return "report-html"
}

func (r *HTML) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *HTML) Render(_ context.Context, file model.File, opts render.RenderOptions) ([]byte, error) {
	result, err := r.templates.RenderTemplate("templates/report.html.tpl", reportContext(file, opts, sanitizeNotes(opts.Notes)))
	if err != nil {
		return nil, fmt.Errorf("report renderer: render html: %w", err)
	}
	return []byte(result), nil
}

// reportContext flattens the file into template data. Every per-loop value
// is a string or bool so the shape survives the template engine's
// normalisation untouched.
func reportContext(file model.File, opts render.RenderOptions, notes string) map[string]any {
	title := opts.Title
	if title == "" {
		title = DefaultTitle
	}
	source := opts.SourceName
	if source == "" {
		source = file.Name
	}

	loops := make([]map[string]any, 0, file.LoopCount())
	file.WalkLoops(func(lp model.Loop, depth int) {
		loops = append(loops, map[string]any{
			"form":      string(lp.Form),
			"span":      lp.Loc.String(),
			"cond":      lp.Cond.Expr,
			"nested":    depth > 0,
			"original":  lp.Indent + lp.Text,
			"rewritten": gofile.ExpandLoop(lp),
		})
	})

	return map[string]any{
		"title":     title,
		"source":    source,
		"notes":     notes,
		"loopCount": len(loops),
		"loops":     loops,
	}
}
