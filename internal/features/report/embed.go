package report

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

// TemplatesFS exposes the embedded report template bundle.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
