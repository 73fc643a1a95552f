package gofile

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-dowhile/pkg/model"
	"github.com/goliatone/go-dowhile/pkg/render"
)

// expander assembles output text from a parsed file. Raw segments pass
// through byte for byte; each loop segment is replaced by an equivalent for
// statement:
//
//	for {
//		<body>
//		if !(<cond>) {
//			break
//		}
//		<secondary block, when present>
//	}
//
// The secondary block of the three-part form lands after the condition
// check, so it runs between iterations but never after the final one.
type expander struct {
	source     string
	directives bool
}

func (e *expander) file(file model.File) string {
	var buf strings.Builder
	if e.directives {
		buf.WriteString(e.leadingDirective(file.Segments))
	}
	e.segments(&buf, file.Segments)
	return buf.String()
}

// leadingDirective resyncs line numbering at the top of the output. Inputs
// that already start with a directive or a generated-code header are
// rewrites of previous output, so no directive is added and re-running the
// tool reproduces its input.
func (e *expander) leadingDirective(segs []model.Segment) string {
	if len(segs) > 0 {
		if raw, ok := segs[0].(model.Raw); ok {
			if strings.HasPrefix(raw.Text, "//line ") || render.HasGeneratedHeader([]byte(raw.Text)) {
				return ""
			}
		}
	}
	return "//line " + e.source + ":1\n"
}

func (e *expander) segments(buf *strings.Builder, segs []model.Segment) {
	for i, seg := range segs {
		switch s := seg.(type) {
		case model.Raw:
			buf.WriteString(s.Text)
		case model.Loop:
			e.loop(buf, s)
			// Text after the statement has shifted down, so resync.
			// The directive rides the newline that opens the next raw
			// segment; without one there is no line break to claim.
			if e.directives && nextOpensLine(segs, i+1) {
				buf.WriteString("\n//line " + e.source + ":" + strconv.Itoa(s.Loc.EndLine+1))
			}
		}
	}
}

func nextOpensLine(segs []model.Segment, i int) bool {
	if i >= len(segs) {
		return false
	}
	raw, ok := segs[i].(model.Raw)
	return ok && strings.HasPrefix(raw.Text, "\n")
}

func (e *expander) loop(buf *strings.Builder, lp model.Loop) {
	unit := lp.Unit
	if unit == "" {
		unit = "\t"
	}
	checkIndent := lp.Indent + unit
	breakIndent := checkIndent + unit

	body := e.blockText(lp.Body, lp.Indent, unit)

	buf.WriteString("for {")
	if e.directives && strings.HasPrefix(body, "\n") {
		buf.WriteString("\n//line " + e.source + ":" + strconv.Itoa(contentLine(lp.Body)))
	}
	buf.WriteString(body)
	if e.directives {
		buf.WriteString("//line " + e.source + ":" + strconv.Itoa(lp.Cond.Loc.StartLine) + "\n")
	}
	buf.WriteString(checkIndent)
	buf.WriteString("if !(")
	buf.WriteString(lp.Cond.Expr)
	buf.WriteString(") {\n")
	buf.WriteString(breakIndent)
	buf.WriteString("break\n")
	buf.WriteString(checkIndent)
	buf.WriteString("}")

	if lp.After != nil {
		after := e.blockText(*lp.After, lp.Indent, unit)
		if e.directives && strings.HasPrefix(after, "\n") {
			buf.WriteString("\n//line " + e.source + ":" + strconv.Itoa(contentLine(*lp.After)))
		}
		buf.WriteString(after)
	} else {
		buf.WriteString("\n")
	}
	buf.WriteString(lp.Indent)
	buf.WriteString("}")
}

// blockText renders a block's interior, expanding nested loops. The result
// always ends with a newline so the condition check and closing brace land
// on fresh lines. Inline blocks are reindented onto their own lines;
// multi-line blocks keep the author's formatting, minus the whitespace that
// indented the original closing brace.
func (e *expander) blockText(block model.Block, indent, unit string) string {
	var buf strings.Builder
	e.segments(&buf, block.Segments)
	inner := buf.String()

	if block.Inline {
		content := strings.TrimSpace(inner)
		if content == "" {
			return "\n"
		}
		return "\n" + indent + unit + content + "\n"
	}

	inner = strings.TrimRight(inner, " \t")
	if !strings.HasSuffix(inner, "\n") {
		inner += "\n"
	}
	return inner
}

// contentLine is the source line a block's first statement sits on, used to
// aim the directive that precedes the block's text in the output.
func contentLine(block model.Block) int {
	if block.Inline {
		return block.Loc.StartLine
	}
	return block.Loc.StartLine + 1
}

// ExpandLoop renders the replacement text for a single statement at its
// original indentation. Report renderers use it to show rewrites without
// assembling a whole file.
func ExpandLoop(lp model.Loop) string {
	var buf strings.Builder
	e := &expander{}
	e.loop(&buf, lp)
	return lp.Indent + buf.String()
}
