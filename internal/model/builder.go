package model

import (
	"strings"

	"github.com/goliatone/go-dowhile/pkg/diag"
)

// Builder normalises parsed files before rendering: it validates loop
// structure and fills in the indentation unit each rewrite uses for the
// inserted condition check.
type Builder struct {
	opts Options
}

// New creates a Builder with the supplied options.
func New(options Options) *Builder {
	opts := defaultOptions()
	if options.IndentUnit != "" {
		opts.IndentUnit = options.IndentUnit
	}
	return &Builder{opts: opts}
}

// Build returns a normalised copy of the file. The parser guarantees most
// structural invariants; Build re-checks them so programmatically constructed
// files get the same treatment as parsed ones.
func (b *Builder) Build(f File) (File, error) {
	segments, err := b.buildSegments(f.Name, f.Segments)
	if err != nil {
		return File{}, err
	}
	return File{Name: f.Name, Segments: segments}, nil
}

func (b *Builder) buildSegments(name string, segs []Segment) ([]Segment, error) {
	if len(segs) == 0 {
		return nil, nil
	}

	out := make([]Segment, 0, len(segs))
	for _, seg := range segs {
		loop, ok := seg.(Loop)
		if !ok {
			out = append(out, seg)
			continue
		}

		built, err := b.buildLoop(name, loop)
		if err != nil {
			return nil, err
		}
		out = append(out, built)
	}
	return out, nil
}

func (b *Builder) buildLoop(name string, loop Loop) (Loop, error) {
	if strings.TrimSpace(loop.Cond.Expr) == "" {
		return Loop{}, diag.Errorf(name, loop.Cond.Loc, "do-while statement is missing its loop condition")
	}
	loop.Cond.Expr = strings.TrimSpace(loop.Cond.Expr)

	switch loop.Form {
	case FormDoWhile:
		if loop.After != nil {
			return Loop{}, diag.Errorf(name, loop.Loc, "do-while form carries an unexpected secondary block")
		}
	case FormDoWhileDo:
		if loop.After == nil {
			return Loop{}, diag.Errorf(name, loop.Loc, "do-while-do form is missing its secondary block")
		}
	default:
		return Loop{}, diag.Errorf(name, loop.Loc, "unknown loop form %q", string(loop.Form))
	}

	loop.Body = normalizeBlock(loop.Body)
	if loop.After != nil {
		after := normalizeBlock(*loop.After)
		loop.After = &after
	}

	if loop.Unit == "" {
		loop.Unit = detectUnit(loop, b.opts.IndentUnit)
	}

	bodySegs, err := b.buildSegments(name, loop.Body.Segments)
	if err != nil {
		return Loop{}, err
	}
	loop.Body.Segments = bodySegs

	if loop.After != nil {
		afterSegs, err := b.buildSegments(name, loop.After.Segments)
		if err != nil {
			return Loop{}, err
		}
		loop.After.Segments = afterSegs
	}

	return loop, nil
}

func normalizeBlock(block Block) Block {
	block.Inline = !strings.Contains(block.Raw, "\n")
	if len(block.Segments) == 0 && block.Raw != "" {
		block.Segments = []Segment{Raw{Text: block.Raw, Loc: block.Loc}}
	}
	return block
}

// detectUnit infers one indentation step from the first indented body line.
// A body whose lines sit level with the do keyword, or an inline body, falls
// back to the configured unit.
func detectUnit(loop Loop, fallback string) string {
	for _, line := range strings.Split(loop.Body.Raw, "\n") {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" {
			continue
		}
		lead := line[:len(line)-len(trimmed)]
		if strings.HasPrefix(lead, loop.Indent) && len(lead) > len(loop.Indent) {
			return lead[len(loop.Indent):]
		}
	}
	return fallback
}
