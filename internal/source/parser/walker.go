package parser

import (
	"strings"

	"github.com/goliatone/go-dowhile/internal/source/scan"
	"github.com/goliatone/go-dowhile/pkg/diag"
	"github.com/goliatone/go-dowhile/pkg/model"
)

// walker carries the per-document parse state. Regions are parsed with a
// fresh cursor whose position counters start at the region's file
// coordinates, so spans inside nested blocks still point at the original
// file.
type walker struct {
	source   string
	maxDepth int
}

type prevClass int

const (
	// prevStatementEdge marks tokens after which a new statement begins
	// regardless of line breaks: { } ; : and the start of a region.
	prevStatementEdge prevClass = iota
	// prevEnder marks tokens Go's semicolon insertion treats as statement
	// enders: identifiers, literals, ) ] } ++ -- and a few keywords.
	prevEnder
	// prevOther marks continuation tokens (operators, dots, commas, opening
	// brackets, non-ender keywords).
	prevOther
)

type tokenState struct {
	class     prevClass
	lineBreak bool
}

// statementPosition reports whether a token starting now would begin a new
// statement, mirroring where Go itself would insert a semicolon.
func (s *tokenState) statementPosition() bool {
	return s.class == prevStatementEdge || (s.lineBreak && s.class == prevEnder)
}

func (s *tokenState) observe(class prevClass) {
	s.class = class
	s.lineBreak = false
}

// Keywords that cannot end a statement. An identifier after one of these on
// a fresh line is still part of the same construct, so it never sits in
// statement position.
var nonEnderKeywords = map[string]struct{}{
	"if": {}, "else": {}, "for": {}, "func": {}, "switch": {}, "select": {},
	"go": {}, "defer": {}, "var": {}, "const": {}, "type": {}, "map": {},
	"chan": {}, "struct": {}, "interface": {}, "range": {}, "case": {},
	"default": {}, "package": {}, "import": {}, "goto": {},
}

func classifyWord(word string) prevClass {
	if _, ok := nonEnderKeywords[word]; ok {
		return prevOther
	}
	return prevEnder
}

// region parses one stretch of source text, returning its segments. depth
// counts how many loop bodies enclose the region.
func (w *walker) region(src []byte, line, col, depth int) ([]model.Segment, *diag.Error) {
	c := scan.NewAt(src, line, col)

	var segments []model.Segment
	rawStart := c.Mark()
	state := tokenState{class: prevStatementEdge}

	for !c.EOF() {
		b := c.Peek()
		switch {
		case b == '"':
			c.ConsumeString()
			state.observe(prevEnder)
		case b == '`':
			c.ConsumeRawString()
			state.observe(prevEnder)
		case b == '\'':
			c.ConsumeRune()
			state.observe(prevEnder)
		case b == '/' && c.PeekAt(1) == '/':
			c.ConsumeLineComment()
		case b == '/' && c.PeekAt(1) == '*':
			if c.ConsumeBlockComment() {
				state.lineBreak = true
			}
		case b == '\n':
			c.Next()
			state.lineBreak = true
		case b == ' ' || b == '\t' || b == '\r':
			c.Next()
		case scan.IsWordStart(b):
			mark := c.Mark()
			word := c.ConsumeWord()
			if word == "do" && state.statementPosition() && braceFollows(c) {
				if mark.Off > rawStart.Off {
					segments = append(segments, model.Raw{
						Text: c.Slice(rawStart, mark),
						Loc:  spanBetween(rawStart, mark),
					})
				}

				loop, derr := w.loop(c, src, mark, depth)
				if derr != nil {
					return nil, derr
				}
				segments = append(segments, loop)

				rawStart = c.Mark()
				state = tokenState{class: prevStatementEdge}
				continue
			}
			state.observe(classifyWord(word))
		default:
			c.Next()
			switch b {
			case '{', '}', ';', ':':
				state.observe(prevStatementEdge)
			case ')', ']':
				state.observe(prevEnder)
			case '+', '-':
				if c.Peek() == b {
					c.Next()
					state.observe(prevEnder)
				} else {
					state.observe(prevOther)
				}
			default:
				if b >= '0' && b <= '9' {
					state.observe(prevEnder)
				} else {
					state.observe(prevOther)
				}
			}
		}
	}

	if end := c.Mark(); end.Off > rawStart.Off {
		segments = append(segments, model.Raw{
			Text: c.Slice(rawStart, end),
			Loc:  spanBetween(rawStart, end),
		})
	}
	return segments, nil
}

// loop parses one do-while statement. The cursor sits just past the do
// keyword with a { guaranteed ahead on the same line.
func (w *walker) loop(c *scan.Cursor, src []byte, doMark scan.Mark, depth int) (model.Loop, *diag.Error) {
	if depth >= w.maxDepth {
		return model.Loop{}, w.errAt(doMark, "do-while statements nest deeper than %d levels", w.maxDepth)
	}

	c.SkipSpaceTab()
	body, derr := w.block(c, depth)
	if derr != nil {
		return model.Loop{}, derr
	}

	// Like Go's else, the while keyword must open on the same line as the
	// body's closing brace.
	sameLine := skipSameLine(c)
	wordMark := c.Mark()
	if !sameLine || c.EOF() || !scan.IsWordStart(c.Peek()) {
		return model.Loop{}, w.errAt(wordMark, "expected 'while' on the same line as the loop body's closing brace")
	}
	if word := c.ConsumeWord(); word != "while" {
		return model.Loop{}, w.errSpan(wordMark, c.Mark(), "expected 'while' after the loop body, found %q", word)
	}

	c.SkipLayout()
	cond, term, derr := w.cond(c)
	if derr != nil {
		return model.Loop{}, derr
	}

	loop := model.Loop{
		Form:   model.FormDoWhile,
		Body:   body,
		Cond:   cond,
		Indent: indentAt(src, doMark),
	}

	if term == ',' {
		c.SkipLayout()
		doneMark := c.Mark()
		if c.EOF() || !scan.IsWordStart(c.Peek()) {
			return model.Loop{}, w.errAt(doneMark, "expected 'do' to open the secondary block after ','")
		}
		if word := c.ConsumeWord(); word != "do" {
			return model.Loop{}, w.errSpan(doneMark, c.Mark(), "expected 'do' after ',', found %q", word)
		}
		c.SkipSpaceTab()
		if c.Peek() != '{' {
			return model.Loop{}, w.errAt(c.Mark(), "expected a block after 'do'")
		}

		after, derr := w.block(c, depth)
		if derr != nil {
			return model.Loop{}, derr
		}
		loop.Form = model.FormDoWhileDo
		loop.After = &after
	}

	end := c.Mark()
	loop.Text = c.Slice(doMark, end)
	loop.Loc = spanBetween(doMark, end)
	return loop, nil
}

// block captures a balanced brace block and recursively parses its interior
// for nested do-while statements. The cursor sits on the opening brace.
func (w *walker) block(c *scan.Cursor, depth int) (model.Block, *diag.Error) {
	openMark := c.Mark()
	c.Next()
	innerStart := c.Mark()
	level := 1

	for !c.EOF() {
		switch c.Peek() {
		case '"':
			c.ConsumeString()
		case '`':
			c.ConsumeRawString()
		case '\'':
			c.ConsumeRune()
		case '/':
			switch c.PeekAt(1) {
			case '/':
				c.ConsumeLineComment()
			case '*':
				c.ConsumeBlockComment()
			default:
				c.Next()
			}
		case '{':
			level++
			c.Next()
		case '}':
			level--
			if level > 0 {
				c.Next()
				continue
			}
			innerEnd := c.Mark()
			c.Next()

			inner := c.Slice(innerStart, innerEnd)
			segments, derr := w.region([]byte(inner), innerStart.Line, innerStart.Col, depth+1)
			if derr != nil {
				return model.Block{}, derr
			}

			return model.Block{
				Raw:      inner,
				Inline:   !strings.Contains(inner, "\n"),
				Segments: segments,
				Loc:      spanBetween(openMark, c.Mark()),
			}, nil
		default:
			c.Next()
		}
	}

	return model.Block{}, w.errAt(openMark, "unterminated block: missing '}'")
}

// cond captures the condition expression up to a ; or , at bracket depth
// zero. The terminator byte is consumed and returned.
func (w *walker) cond(c *scan.Cursor) (model.Cond, byte, *diag.Error) {
	startMark := c.Mark()
	level := 0

	for !c.EOF() {
		b := c.Peek()
		switch {
		case b == '"':
			c.ConsumeString()
		case b == '`':
			c.ConsumeRawString()
		case b == '\'':
			c.ConsumeRune()
		case b == '/' && c.PeekAt(1) == '/':
			c.ConsumeLineComment()
		case b == '/' && c.PeekAt(1) == '*':
			c.ConsumeBlockComment()
		case b == '(' || b == '[' || b == '{':
			level++
			c.Next()
		case b == ')' || b == ']':
			if level == 0 {
				return model.Cond{}, 0, w.errAt(c.Mark(), "unbalanced %q in do-while condition", string(b))
			}
			level--
			c.Next()
		case b == '}':
			if level == 0 {
				return model.Cond{}, 0, w.errAt(c.Mark(), "expected ';' or ', do' to close the do-while condition")
			}
			level--
			c.Next()
		case (b == ';' || b == ',') && level == 0:
			endMark := c.Mark()
			c.Next()

			expr := strings.TrimSpace(c.Slice(startMark, endMark))
			if expr == "" {
				return model.Cond{}, 0, w.errAt(startMark, "missing loop condition before %q", string(b))
			}
			return model.Cond{Expr: expr, Loc: spanBetween(startMark, endMark)}, b, nil
		default:
			c.Next()
		}
	}

	return model.Cond{}, 0, w.errAt(startMark, "unterminated do-while condition: expected ';' or ', do'")
}

// braceFollows reports whether the next significant byte on the current line
// is an opening brace. It looks ahead without consuming.
func braceFollows(c *scan.Cursor) bool {
	for n := 0; ; n++ {
		switch c.PeekAt(n) {
		case ' ', '\t', '\r':
		case '{':
			return true
		default:
			return false
		}
	}
}

// skipSameLine advances over spaces, tabs, and single-line block comments.
// It reports false when a multi-line comment broke the line.
func skipSameLine(c *scan.Cursor) bool {
	for !c.EOF() {
		switch c.Peek() {
		case ' ', '\t', '\r':
			c.Next()
		case '/':
			if c.PeekAt(1) != '*' {
				return true
			}
			if c.ConsumeBlockComment() {
				return false
			}
		default:
			return true
		}
	}
	return true
}

// indentAt returns the leading whitespace of the line holding the mark.
func indentAt(src []byte, m scan.Mark) string {
	lineStart := m.Off
	for lineStart > 0 && src[lineStart-1] != '\n' {
		lineStart--
	}

	end := lineStart
	for end < m.Off {
		if b := src[end]; b != ' ' && b != '\t' {
			break
		}
		end++
	}
	return string(src[lineStart:end])
}

func spanBetween(from, to scan.Mark) diag.Span {
	return diag.Span{
		StartLine: from.Line,
		StartCol:  from.Col,
		EndLine:   to.Line,
		EndCol:    to.Col,
	}
}

func (w *walker) errAt(m scan.Mark, format string, args ...any) *diag.Error {
	return diag.Errorf(w.source, diag.SpanAt(m.Line, m.Col), format, args...)
}

func (w *walker) errSpan(from, to scan.Mark, format string, args ...any) *diag.Error {
	return diag.Errorf(w.source, spanBetween(from, to), format, args...)
}
