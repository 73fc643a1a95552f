// Package scan provides the byte-level cursor shared by the do-while parser
// and the analysis checks. It understands just enough Go lexical structure to
// walk source text without being fooled by string literals, rune literals, or
// comments, and it tracks 1-based line/column positions for diagnostics.
package scan

// Mark captures a cursor position so callers can slice source regions and
// build spans after the fact.
type Mark struct {
	Off  int
	Line int
	Col  int
}

// Cursor walks raw source bytes. Columns are byte-based; a tab counts as one
// column.
type Cursor struct {
	src  []byte
	off  int
	line int
	col  int
}

// New returns a cursor positioned at the start of src (line 1, column 1).
func New(src []byte) *Cursor {
	return NewAt(src, 1, 1)
}

// NewAt returns a cursor over src whose position counters start at the given
// line and column. Nested block parsing uses this so positions inside a block
// report file coordinates rather than block-local ones.
func NewAt(src []byte, line, col int) *Cursor {
	return &Cursor{src: src, line: line, col: col}
}

// EOF reports whether the cursor is past the last byte.
func (c *Cursor) EOF() bool {
	return c.off >= len(c.src)
}

// Peek returns the current byte without advancing, or 0 at EOF.
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.src[c.off]
}

// PeekAt returns the byte n positions ahead of the current one, or 0 past
// EOF.
func (c *Cursor) PeekAt(n int) byte {
	if c.off+n >= len(c.src) {
		return 0
	}
	return c.src[c.off+n]
}

// Next consumes and returns the current byte, updating position counters.
func (c *Cursor) Next() byte {
	if c.EOF() {
		return 0
	}
	b := c.src[c.off]
	c.off++
	if b == '\n' {
		c.line++
		c.col = 1
	} else {
		c.col++
	}
	return b
}

// Mark snapshots the current position.
func (c *Cursor) Mark() Mark {
	return Mark{Off: c.off, Line: c.line, Col: c.col}
}

// Slice returns the source text between two marks.
func (c *Cursor) Slice(from, to Mark) string {
	return string(c.src[from.Off:to.Off])
}

// SkipSpaceTab advances over spaces, tabs, and carriage returns, leaving
// newlines in place so callers can observe line boundaries.
func (c *Cursor) SkipSpaceTab() {
	for !c.EOF() {
		switch c.Peek() {
		case ' ', '\t', '\r':
			c.Next()
		default:
			return
		}
	}
}

// SkipLayout advances over whitespace of every kind plus comments. It is used
// between tokens of the do-while grammar where line breaks carry no meaning.
func (c *Cursor) SkipLayout() {
	for !c.EOF() {
		switch c.Peek() {
		case ' ', '\t', '\r', '\n':
			c.Next()
		case '/':
			switch c.PeekAt(1) {
			case '/':
				c.ConsumeLineComment()
			case '*':
				c.ConsumeBlockComment()
			default:
				return
			}
		default:
			return
		}
	}
}

// ConsumeString consumes an interpreted string literal, assuming the cursor
// sits on the opening quote. It stops before a bare newline so an
// unterminated literal cannot swallow the rest of the file.
func (c *Cursor) ConsumeString() {
	c.Next()
	for !c.EOF() {
		switch c.Peek() {
		case '\\':
			c.Next()
			c.Next()
		case '"':
			c.Next()
			return
		case '\n':
			return
		default:
			c.Next()
		}
	}
}

// ConsumeRawString consumes a backquoted string literal, which may span
// lines and has no escapes.
func (c *Cursor) ConsumeRawString() {
	c.Next()
	for !c.EOF() {
		if c.Next() == '`' {
			return
		}
	}
}

// ConsumeRune consumes a rune literal, assuming the cursor sits on the
// opening quote.
func (c *Cursor) ConsumeRune() {
	c.Next()
	for !c.EOF() {
		switch c.Peek() {
		case '\\':
			c.Next()
			c.Next()
		case '\'':
			c.Next()
			return
		case '\n':
			return
		default:
			c.Next()
		}
	}
}

// ConsumeLineComment consumes a // comment up to but not including the
// terminating newline.
func (c *Cursor) ConsumeLineComment() {
	for !c.EOF() && c.Peek() != '\n' {
		c.Next()
	}
}

// ConsumeBlockComment consumes a /* */ comment, reporting whether it
// contained a newline. Semicolon insertion treats multi-line comments like a
// line break, and the parser follows suit when deciding statement position.
func (c *Cursor) ConsumeBlockComment() bool {
	sawNewline := false
	c.Next()
	c.Next()
	for !c.EOF() {
		b := c.Next()
		if b == '\n' {
			sawNewline = true
		}
		if b == '*' && c.Peek() == '/' {
			c.Next()
			return sawNewline
		}
	}
	return sawNewline
}

// ConsumeWord consumes an identifier or keyword and returns its text. The
// cursor must sit on an identifier start byte.
func (c *Cursor) ConsumeWord() string {
	start := c.Mark()
	for !c.EOF() && IsWordPart(c.Peek()) {
		c.Next()
	}
	return c.Slice(start, c.Mark())
}

// IsWordStart reports whether b can begin an identifier. Bytes outside ASCII
// are treated as identifier text, which keeps multi-byte runes inside a
// single token without decoding them.
func IsWordStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b >= 0x80
}

// IsWordPart reports whether b can continue an identifier.
func IsWordPart(b byte) bool {
	return IsWordStart(b) || (b >= '0' && b <= '9')
}
