package report

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	notesPolicyOnce sync.Once
	notesPolicy     *bluemonday.Policy
)

// sanitizeNotes strips scripts and event handlers from caller-provided
// notes before the HTML report embeds them as markup.
func sanitizeNotes(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(notesSanitizer().Sanitize(trimmed))
}

func notesSanitizer() *bluemonday.Policy {
	notesPolicyOnce.Do(func() {
		notesPolicy = bluemonday.UGCPolicy()
	})
	return notesPolicy
}
