// Package analyze inspects parsed files for do-while statements that are
// legal but probably not what the author meant. Findings are advisory; the
// rewrite itself never consults them.
package analyze

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/goliatone/go-dowhile/internal/source/scan"
	"github.com/goliatone/go-dowhile/pkg/diag"
	"github.com/goliatone/go-dowhile/pkg/model"
)

// Finding is one advisory diagnostic tied to a statement.
type Finding struct {
	Source  string
	Span    diag.Span
	Rule    string
	Message string
}

// String renders the conventional file:line:col prefix followed by the rule
// and message, one finding per line.
func (f Finding) String() string {
	if f.Source == "" {
		return fmt.Sprintf("%d:%d: %s: %s", f.Span.StartLine, f.Span.StartCol, f.Rule, f.Message)
	}
	return fmt.Sprintf("%s:%d:%d: %s: %s", f.Source, f.Span.StartLine, f.Span.StartCol, f.Rule, f.Message)
}

// deepNesting is the depth at which nested do-while statements get flagged.
const deepNesting = 3

var tautology = regexp.MustCompile(`^(\d+)\s*==\s*(\d+)$`)

// File checks every loop in the file and returns findings in source order.
func File(file model.File) []Finding {
	var findings []Finding
	add := func(span diag.Span, rule, message string) {
		findings = append(findings, Finding{
			Source:  file.Name,
			Span:    span,
			Rule:    rule,
			Message: message,
		})
	}

	file.WalkLoops(func(lp model.Loop, depth int) {
		if alwaysTrue(lp.Cond.Expr) {
			add(lp.Cond.Loc, "always-true", "condition is always true, the loop only exits through break or return")
		}
		if strings.TrimSpace(lp.Body.Raw) == "" {
			add(lp.Body.Loc, "empty-body", "loop body is empty")
		}
		if lp.After != nil && strings.TrimSpace(lp.After.Raw) == "" {
			add(lp.After.Loc, "empty-secondary", "secondary block is empty, use the two-part form instead")
		}
		checkBranches(lp, add)
		if depth >= deepNesting {
			add(lp.Loc, "deep-nesting", fmt.Sprintf("do-while statements nested %d levels deep", depth+1))
		}
	})

	return findings
}

func alwaysTrue(expr string) bool {
	if expr == "true" {
		return true
	}
	if m := tautology.FindStringSubmatch(expr); m != nil {
		return m[1] == m[2]
	}
	return false
}

// checkBranches flags break and continue statements that bind to the loop
// the rewrite synthesises. In the rewritten form, continue restarts the
// body without re-checking the condition, and break skips both the check
// and the secondary block. Bodies containing their own for loop are left
// alone since the keyword may bind to it.
func checkBranches(lp model.Loop, add func(diag.Span, string, string)) {
	words := bodyWords(lp.Body)

	if words.hasFor {
		return
	}
	if words.continueAt != nil {
		add(*words.continueAt, "continue-in-body", "continue restarts the body without re-checking the loop condition")
	}
	if words.breakAt != nil && !words.hasSwitch {
		add(*words.breakAt, "break-in-body", "break exits the loop without running the condition check or secondary block")
	}
}

type branchWords struct {
	hasFor     bool
	hasSwitch  bool
	continueAt *diag.Span
	breakAt    *diag.Span
}

// bodyWords scans the block interior for the keywords that interact with
// the synthesised loop, skipping strings and comments. The scan starts at
// the block's file coordinates so findings point into the original source.
func bodyWords(block model.Block) branchWords {
	c := scan.NewAt([]byte(block.Raw), block.Loc.StartLine, block.Loc.StartCol+1)
	var words branchWords

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
		case scan.IsWordStart(b):
			mark := c.Mark()
			switch c.ConsumeWord() {
			case "for":
				words.hasFor = true
			case "switch", "select":
				words.hasSwitch = true
			case "continue":
				if words.continueAt == nil {
					span := diag.SpanAt(mark.Line, mark.Col)
					words.continueAt = &span
				}
			case "break":
				if words.breakAt == nil {
					span := diag.SpanAt(mark.Line, mark.Col)
					words.breakAt = &span
				}
			}
		default:
			c.Next()
		}
	}

	return words
}
