package model

import (
	"strings"
	"testing"

	"github.com/goliatone/go-dowhile/pkg/diag"
)

func validLoop() Loop {
	return Loop{
		Form:   FormDoWhile,
		Body:   Block{Raw: "\n\t\ti++\n\t"},
		Cond:   Cond{Expr: "i < 10", Loc: diag.SpanAt(3, 9)},
		Indent: "\t",
		Loc:    diag.Span{StartLine: 1, StartCol: 2, EndLine: 3, EndCol: 17},
	}
}

func buildFile(t *testing.T, loop Loop) File {
	t.Helper()
	b := New(Options{})
	file, err := b.Build(File{Name: "f.dw", Segments: []Segment{loop}})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return file
}

func builtLoop(t *testing.T, loop Loop) Loop {
	t.Helper()
	file := buildFile(t, loop)
	if len(file.Segments) != 1 {
		t.Fatalf("expected one segment, got %d", len(file.Segments))
	}
	return file.Segments[0].(Loop)
}

func TestBuildDetectsUnitFromBody(t *testing.T) {
	cases := []struct {
		name   string
		indent string
		body   string
		want   string
	}{
		{"tabs", "\t", "\n\t\ti++\n\t", "\t"},
		{"spaces", "  ", "\n    x()\n  ", "  "},
		{"wide step", "", "\n    x()\n", "    "},
		{"first content line wins", "\t", "\n\n\t\t\tdeep()\n\t", "\t\t"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			loop := validLoop()
			loop.Indent = tc.indent
			loop.Body = Block{Raw: tc.body}

			got := builtLoop(t, loop)
			if got.Unit != tc.want {
				t.Fatalf("unit mismatch: got %q, want %q", got.Unit, tc.want)
			}
		})
	}
}

func TestBuildUnitFallback(t *testing.T) {
	// Body lines level with the do keyword give no clue; the configured
	// unit applies.
	loop := validLoop()
	loop.Indent = "\t"
	loop.Body = Block{Raw: "\n\tx()\n\t"}

	if got := builtLoop(t, loop); got.Unit != "\t" {
		t.Fatalf("unit mismatch: got %q", got.Unit)
	}

	b := New(Options{IndentUnit: "    "})
	file, err := b.Build(File{Name: "f.dw", Segments: []Segment{loop}})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if got := file.Segments[0].(Loop); got.Unit != "    " {
		t.Fatalf("configured unit mismatch: got %q", got.Unit)
	}
}

func TestBuildKeepsExplicitUnit(t *testing.T) {
	loop := validLoop()
	loop.Unit = "  "

	if got := builtLoop(t, loop); got.Unit != "  " {
		t.Fatalf("explicit unit overwritten: got %q", got.Unit)
	}
}

func TestBuildTrimsCondition(t *testing.T) {
	loop := validLoop()
	loop.Cond.Expr = "  i < 10\t"

	if got := builtLoop(t, loop); got.Cond.Expr != "i < 10" {
		t.Fatalf("condition mismatch: got %q", got.Cond.Expr)
	}
}

func TestBuildNormalizesHandBuiltBlocks(t *testing.T) {
	// Programmatic callers often fill Raw and leave Segments empty.
	loop := validLoop()
	loop.Body = Block{Raw: "\n\tx()\n", Inline: true}

	got := builtLoop(t, loop)
	if got.Body.Inline {
		t.Fatalf("multi-line raw left flagged inline")
	}
	if len(got.Body.Segments) != 1 {
		t.Fatalf("expected synthesised raw segment, got %d", len(got.Body.Segments))
	}
	raw, ok := got.Body.Segments[0].(Raw)
	if !ok {
		t.Fatalf("expected raw segment, got %T", got.Body.Segments[0])
	}
	if raw.Text != loop.Body.Raw {
		t.Fatalf("segment text mismatch: got %q", raw.Text)
	}
}

func TestBuildValidation(t *testing.T) {
	after := Block{Raw: " x() "}

	cases := []struct {
		name   string
		mutate func(*Loop)
		want   string
	}{
		{
			"missing condition",
			func(l *Loop) { l.Cond.Expr = "   " },
			"f.dw:3:9: do-while statement is missing its loop condition",
		},
		{
			"unexpected secondary block",
			func(l *Loop) { l.After = &after },
			"f.dw:1:2: do-while form carries an unexpected secondary block",
		},
		{
			"missing secondary block",
			func(l *Loop) { l.Form = FormDoWhileDo },
			"f.dw:1:2: do-while-do form is missing its secondary block",
		},
		{
			"unknown form",
			func(l *Loop) { l.Form = "do-until" },
			`f.dw:1:2: unknown loop form "do-until"`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			loop := validLoop()
			tc.mutate(&loop)

			b := New(Options{})
			_, err := b.Build(File{Name: "f.dw", Segments: []Segment{loop}})
			if err == nil {
				t.Fatalf("expected validation error")
			}
			if err.Error() != tc.want {
				t.Fatalf("error mismatch:\n got %q\nwant %q", err.Error(), tc.want)
			}
		})
	}
}

func TestBuildRecursesIntoNestedLoops(t *testing.T) {
	inner := validLoop()
	inner.Indent = "\t\t"
	inner.Body = Block{Raw: "\n\t\t\tj++\n\t\t"}

	outer := validLoop()
	outer.Body = Block{
		Raw:      "\n\t\tdo {\n\t\t\tj++\n\t\t} while j < 3;\n\t",
		Segments: []Segment{inner},
	}

	got := builtLoop(t, outer)
	builtInner, ok := got.Body.Segments[0].(Loop)
	if !ok {
		t.Fatalf("expected nested loop, got %T", got.Body.Segments[0])
	}
	if builtInner.Unit != "\t" {
		t.Fatalf("nested unit mismatch: got %q", builtInner.Unit)
	}
}

func TestBuildRejectsNestedInvalidLoop(t *testing.T) {
	inner := validLoop()
	inner.Cond.Expr = ""

	outer := validLoop()
	outer.Body = Block{
		Raw:      "\n\t\tdo { } while ;\n\t",
		Segments: []Segment{inner},
	}

	b := New(Options{})
	_, err := b.Build(File{Name: "f.dw", Segments: []Segment{outer}})
	if err == nil || !strings.Contains(err.Error(), "missing its loop condition") {
		t.Fatalf("expected nested validation error, got %v", err)
	}
}
