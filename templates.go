package dowhile

import (
	"io/fs"

	gofile "github.com/goliatone/go-dowhile/pkg/renderers/gofile"
)

// EmbeddedTemplates exposes the built-in source renderer templates so
// callers can reuse or extend them without importing the renderer package
// directly.
func EmbeddedTemplates() fs.FS {
	fsys := gofile.TemplatesFS()
	return fsys
}
