// Command dowhile-cli rewrites do-while statements in Go source files.
//
// Single file:
//
//	dowhile-cli -source counter.dw
//
// writes counter.go next to the input. Batch mode reads a manifest
// (dowhile.yaml by default) listing inputs and outputs. With -watch the
// command stays running and re-expands sources as they change.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-dowhile"
	"github.com/goliatone/go-dowhile/pkg/diag"
	"github.com/goliatone/go-dowhile/pkg/manifest"
	"github.com/goliatone/go-dowhile/pkg/orchestrator"
	"github.com/goliatone/go-dowhile/pkg/render"
	pkgsource "github.com/goliatone/go-dowhile/pkg/source"
)

func main() {
	source := flag.String("source", "", "input file to rewrite; - reads standard input")
	output := flag.String("output", "", "output file; empty derives it from the source name")
	rendererName := flag.String("renderer", "", "renderer to use (gofile, report-markdown, report-html)")
	manifestPath := flag.String("manifest", "", "manifest for batch mode; discovered in the working directory when -source is not set")
	stdout := flag.Bool("stdout", false, "write output to standard output instead of a file")
	force := flag.Bool("force", false, "overwrite output files that lack a generated-code header")
	watch := flag.Bool("watch", false, "keep running and re-expand sources when they change")
	report := flag.String("report", "", "also write a rewrite report; .html selects the HTML report, anything else Markdown")
	noHeader := flag.Bool("no-header", false, "omit the generated-code header")
	lineDirectives := flag.Bool("line-directives", false, "emit //line directives mapping output back to the input")
	quiet := flag.Bool("quiet", false, "suppress status output and diagnostics decoration")
	flag.Parse()

	interactive := isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stderr.Fd())
	if *quiet || !interactive {
		pterm.DisableColor()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{
		gen:            orchestrator.New(),
		loader:         dowhile.NewLoader(pkgsource.WithStdin(os.Stdin)),
		renderer:       *rendererName,
		stdout:         *stdout,
		force:          *force,
		noHeader:       *noHeader,
		lineDirectives: *lineDirectives,
		quiet:          *quiet,
		prompts:        newPromptDriver(interactive && !*quiet),
		status:         pterm.Success.WithWriter(os.Stderr),
		problem:        pterm.Error.WithWriter(os.Stderr),
	}

	jobs, err := a.resolveJobs(*source, *output, *report, *manifestPath)
	if err != nil {
		a.fail(err)
	}

	if *watch {
		err = a.watchLoop(ctx, jobs)
	} else {
		err = a.runOnce(ctx, jobs)
	}
	if err != nil {
		a.fail(err)
	}
}

// job is one source file with its resolved destinations.
type job struct {
	source string
	output string
	report string
	stdin  bool
}

type app struct {
	gen            *orchestrator.Orchestrator
	loader         pkgsource.Loader
	renderer       string
	stdout         bool
	force          bool
	noHeader       bool
	lineDirectives bool
	quiet          bool
	headerText     string
	prompts        PromptDriver
	status         *pterm.PrefixPrinter
	problem        *pterm.PrefixPrinter
}

func (a *app) fail(err error) {
	if a.quiet {
		fmt.Fprintf(os.Stderr, "dowhile: %v\n", err)
	} else {
		a.problem.Printfln("%v", err)
	}
	os.Exit(1)
}

// resolveJobs turns flags into the list of files to process. A -source flag
// wins; otherwise a manifest provides the batch.
func (a *app) resolveJobs(source, output, report, manifestPath string) ([]job, error) {
	if source != "" {
		if source == "-" {
			return []job{{source: "-", report: report, stdin: true}}, nil
		}
		if output == "" {
			output = manifest.DeriveOutput(source)
		}
		return []job{{source: source, output: output, report: report}}, nil
	}

	path := manifestPath
	if path == "" {
		found, ok := manifest.Discover(".")
		if !ok {
			return nil, errors.New("nothing to do: pass -source or add a dowhile.yaml manifest")
		}
		path = found
	}

	m, err := manifest.Load(path)
	if err != nil {
		return nil, err
	}
	if a.renderer == "" {
		a.renderer = m.Renderer
	}
	if a.headerText == "" {
		a.headerText = m.HeaderText
	}
	if m.LineDirectives {
		a.lineDirectives = true
	}

	jobs := make([]job, 0, len(m.Inputs))
	for _, in := range m.Inputs {
		j := job{
			source: m.Resolve(in.Source),
			output: m.Resolve(in.Output),
		}
		if m.Report != "" {
			name := filepath.Base(in.Output) + ".report.md"
			j.report = filepath.Join(m.Resolve(m.Report), name)
		}
		jobs = append(jobs, j)
	}
	return jobs, nil
}

func (a *app) runOnce(ctx context.Context, jobs []job) error {
	if len(jobs) == 1 {
		return a.expand(ctx, jobs[0])
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, j := range jobs {
		j := j
		g.Go(func() error {
			return a.expand(gctx, j)
		})
	}
	return g.Wait()
}

// expand runs the pipeline for one job and writes its outputs.
func (a *app) expand(ctx context.Context, j job) error {
	doc, err := a.load(ctx, j)
	if err != nil {
		return err
	}

	out, err := a.generate(ctx, doc, a.renderer, renderOpts(a, j))
	if err != nil {
		return a.diagnose(doc, j.source, err)
	}

	if j.stdin || a.stdout {
		if _, err := os.Stdout.Write(out); err != nil {
			return err
		}
	} else {
		if err := a.write(ctx, j.output, out); err != nil {
			return err
		}
		if !a.quiet {
			a.status.Printfln("%s -> %s", j.source, j.output)
		}
	}

	if j.report != "" {
		if err := a.writeReport(ctx, doc, j); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) load(ctx context.Context, j job) (pkgsource.Document, error) {
	var src pkgsource.Source
	if j.stdin {
		src = pkgsource.SourceFromStdin()
	} else {
		src = pkgsource.SourceFromFile(j.source)
	}
	return a.loader.Load(ctx, src)
}

func (a *app) generate(ctx context.Context, doc pkgsource.Document, renderer string, opts render.RenderOptions) ([]byte, error) {
	return a.gen.Generate(ctx, orchestrator.Request{
		Document:      &doc,
		Renderer:      renderer,
		RenderOptions: opts,
	})
}

func renderOpts(a *app, j job) render.RenderOptions {
	return render.RenderOptions{
		DisableHeader:  a.noHeader,
		HeaderText:     a.headerText,
		LineDirectives: a.lineDirectives,
		SourceName:     sourceLabel(j),
	}
}

func sourceLabel(j job) string {
	if j.stdin {
		return ""
	}
	return filepath.Base(j.source)
}

// diagnose prints a source excerpt for positioned errors, then returns a
// short failure so the caller does not repeat the message.
func (a *app) diagnose(doc pkgsource.Document, name string, err error) error {
	var derr *diag.Error
	if !errors.As(err, &derr) || a.quiet {
		return err
	}
	diag.WriteExcerpt(os.Stderr, doc.Raw(), derr)
	return fmt.Errorf("rewrite of %s failed", displayName(name))
}

func displayName(name string) string {
	if name == "-" {
		return "standard input"
	}
	return name
}

// write refuses to clobber files a human wrote. Generated output carries
// the DO NOT EDIT header, so its absence means the target was not ours.
func (a *app) write(ctx context.Context, path string, data []byte) error {
	if err := a.confirmOverwrite(ctx, path); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func (a *app) confirmOverwrite(ctx context.Context, path string) error {
	if a.force {
		return nil
	}
	existing, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if render.HasGeneratedHeader(existing) {
		return nil
	}

	ok, err := a.prompts.Confirm(ctx, fmt.Sprintf("%s exists and has no generated-code header. Overwrite?", path), false)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("refusing to overwrite %s: not generated by dowhile (pass -force to override)", path)
	}
	return nil
}

func (a *app) writeReport(ctx context.Context, doc pkgsource.Document, j job) error {
	renderer := "report-markdown"
	if strings.HasSuffix(j.report, ".html") {
		renderer = "report-html"
	}

	out, err := a.generate(ctx, doc, renderer, render.RenderOptions{
		SourceName: sourceLabel(j),
	})
	if err != nil {
		return a.diagnose(doc, j.source, err)
	}
	if err := a.write(ctx, j.report, out); err != nil {
		return err
	}
	if !a.quiet {
		a.status.Printfln("%s -> %s", j.source, j.report)
	}
	return nil
}
