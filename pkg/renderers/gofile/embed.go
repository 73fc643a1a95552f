package gofile

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

// TemplatesFS exposes the embedded template bundle for consumers that want
// to customise the header template starting from the built-in one.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
