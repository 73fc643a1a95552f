package report

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

// TemplatesFS exposes the embedded report templates so callers can derive
// their own bundles from the built-in ones.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
