package diag

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
)

const tabWidth = 4

var (
	bannerStyle  = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	caretStyle   = pterm.NewStyle(pterm.FgRed)
	gutterStyle  = pterm.NewStyle(pterm.FgLightGreen)
	sourceStyle  = pterm.NewStyle(pterm.FgLightGreen)
	maxBannerLen = 50
)

// WriteExcerpt prints a banner, the error message, and the offending source
// lines with caret markers underneath the span. src holds the full input the
// error was produced from; when the span falls outside it only the banner and
// message are written. Colors follow pterm's global settings, so callers can
// disable them for non-terminal output.
func WriteExcerpt(w io.Writer, src []byte, err *Error) {
	if err == nil {
		return
	}

	writeBanner(w, err.Source)
	fmt.Fprintln(w, err.Message)

	lines := excerptLines(src, err.Span)
	if len(lines) == 0 {
		return
	}
	writeSelection(w, lines, err.Span)
}

func writeBanner(w io.Writer, source string) {
	label := "Syntax Error"
	width := pterm.GetTerminalWidth() / 2
	if width > maxBannerLen {
		width = maxBannerLen
	}

	dashes := width - len(label) - len(source) - 5
	if dashes < 3 {
		dashes = 3
	}

	fmt.Fprint(w, "\n-- ")
	fmt.Fprint(w, bannerStyle.Sprint(label))
	fmt.Fprint(w, " "+strings.Repeat("-", dashes)+" ")
	fmt.Fprintln(w, sourceStyle.Sprint(source))
}

func excerptLines(src []byte, span Span) []string {
	if span.StartLine < 1 || span.EndLine < span.StartLine {
		return nil
	}

	all := strings.Split(string(src), "\n")
	if span.StartLine > len(all) {
		return nil
	}
	end := span.EndLine
	if end > len(all) {
		end = len(all)
	}

	out := make([]string, 0, end-span.StartLine+1)
	for _, line := range all[span.StartLine-1 : end] {
		out = append(out, strings.TrimRight(line, "\r"))
	}
	return out
}

func writeSelection(w io.Writer, lines []string, span Span) {
	fmt.Fprintln(w)

	gutterWidth := len(strconv.Itoa(span.StartLine+len(lines)-1)) + 1
	gutterFmt := "%-" + strconv.Itoa(gutterWidth) + "d"

	for i, line := range lines {
		fmt.Fprint(w, gutterStyle.Sprintf(gutterFmt, span.StartLine+i))
		fmt.Fprint(w, "|  ")
		fmt.Fprintln(w, expandTabs(line))

		fmt.Fprint(w, strings.Repeat(" ", gutterWidth), "|  ")
		fmt.Fprintln(w, caretStyle.Sprint(caretsFor(line, i, len(lines), span)))
	}

	fmt.Fprintln(w)
}

// caretsFor computes the marker row for one excerpt line. Columns are
// 1-based byte positions with an exclusive end; padding is measured against
// the tab-expanded line so markers stay under the printed text.
func caretsFor(line string, index, total int, span Span) string {
	width := displayWidth(line, len(line))

	switch {
	case total == 1:
		start := displayWidth(line, span.StartCol-1)
		end := displayWidth(line, span.EndCol-1)
		if end <= start {
			end = start + 1
		}
		return strings.Repeat(" ", start) + strings.Repeat("^", end-start)
	case index == 0:
		start := displayWidth(line, span.StartCol-1)
		return strings.Repeat(" ", start) + strings.Repeat("^", max(width-start, 1))
	case index == total-1:
		end := displayWidth(line, span.EndCol-1)
		return strings.Repeat("^", max(end, 1))
	default:
		return strings.Repeat("^", max(width, 1))
	}
}

func expandTabs(line string) string {
	return strings.ReplaceAll(line, "\t", strings.Repeat(" ", tabWidth))
}

// displayWidth measures the printed width of the first n bytes of line after
// tab expansion.
func displayWidth(line string, n int) int {
	if n < 0 {
		n = 0
	}
	if n > len(line) {
		n = len(line)
	}

	width := 0
	for _, b := range []byte(line[:n]) {
		if b == '\t' {
			width += tabWidth
		} else {
			width++
		}
	}
	return width
}
