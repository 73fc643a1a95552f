package diag

import "fmt"

// Span marks a region of source text using 1-based line and column
// coordinates. EndCol is exclusive so a single-character token at the start
// of a line spans 1:1-1:2.
type Span struct {
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
}

// SpanAt returns a single-point span, useful for errors that reference a
// location rather than a region (unexpected EOF, missing token).
func SpanAt(line, col int) Span {
	return Span{StartLine: line, StartCol: col, EndLine: line, EndCol: col + 1}
}

// Multiline reports whether the span covers more than one line.
func (s Span) Multiline() bool {
	return s.EndLine > s.StartLine
}

func (s Span) String() string {
	if s.Multiline() {
		return fmt.Sprintf("%d:%d-%d:%d", s.StartLine, s.StartCol, s.EndLine, s.EndCol)
	}
	return fmt.Sprintf("%d:%d", s.StartLine, s.StartCol)
}

// Error is a positioned source error. Parser and builder failures carry one
// so callers can point at the offending text instead of echoing it.
type Error struct {
	Source  string
	Span    Span
	Message string
}

// Errorf builds a positioned error against the named source.
func Errorf(source string, span Span, format string, args ...any) *Error {
	return &Error{
		Source:  source,
		Span:    span,
		Message: fmt.Sprintf(format, args...),
	}
}

// Error renders the conventional file:line:col prefix followed by the
// message, matching what editors and go vet style tooling expect.
func (e *Error) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("%d:%d: %s", e.Span.StartLine, e.Span.StartCol, e.Message)
	}
	return fmt.Sprintf("%s:%d:%d: %s", e.Source, e.Span.StartLine, e.Span.StartCol, e.Message)
}
