package model

import "github.com/goliatone/go-dowhile/pkg/diag"

// Form enumerates the recognised do-while statement shapes.
type Form string

const (
	// FormDoWhile is the two-part form: do <block> while <cond> ;
	FormDoWhile Form = "do-while"
	// FormDoWhileDo adds a secondary block that runs between iterations:
	// do <block> while <cond> , do <block>
	FormDoWhileDo Form = "do-while-do"
)

// Segment is one slice of an input file: either raw text carried through
// untouched or a do-while loop to rewrite. Segments appear in source order
// and concatenating their original text reproduces the input exactly.
type Segment interface {
	Span() diag.Span
	segment()
}

// Raw is passthrough text between loops.
type Raw struct {
	Text string
	Loc  diag.Span
}

func (r Raw) Span() diag.Span { return r.Loc }
func (Raw) segment()          {}

// Cond is a loop condition expression. Expr holds the expression text with
// surrounding whitespace trimmed; interior formatting is preserved.
type Cond struct {
	Expr string
	Loc  diag.Span
}

// Block is a brace-delimited statement block. Raw holds the text between the
// braces verbatim; Segments holds the same content with nested do-while
// statements recognised. Inline marks blocks written without an interior
// newline, which the rewrite moves onto their own lines.
type Block struct {
	Raw      string
	Inline   bool
	Segments []Segment
	Loc      diag.Span
}

// Loop is one do-while statement. Text preserves the statement verbatim for
// reports and diagnostics. Indent is the leading whitespace of the line
// holding the do keyword; Unit is one indentation step, filled in by the
// builder when the parser could not infer it from the body.
type Loop struct {
	Form   Form
	Body   Block
	Cond   Cond
	After  *Block
	Text   string
	Indent string
	Unit   string
	Loc    diag.Span
}

func (l Loop) Span() diag.Span { return l.Loc }
func (Loop) segment()          {}

// File is a parsed input document.
type File struct {
	Name     string
	Segments []Segment
}

// WalkLoops visits every loop in the file in source order, including loops
// nested inside bodies. depth starts at zero for top-level statements.
func (f File) WalkLoops(fn func(loop Loop, depth int)) {
	walkSegments(f.Segments, 0, fn)
}

func walkSegments(segs []Segment, depth int, fn func(Loop, int)) {
	for _, seg := range segs {
		loop, ok := seg.(Loop)
		if !ok {
			continue
		}
		fn(loop, depth)
		walkSegments(loop.Body.Segments, depth+1, fn)
		if loop.After != nil {
			walkSegments(loop.After.Segments, depth+1, fn)
		}
	}
}

// LoopCount returns the number of loops in the file, nested ones included.
func (f File) LoopCount() int {
	count := 0
	f.WalkLoops(func(Loop, int) { count++ })
	return count
}
