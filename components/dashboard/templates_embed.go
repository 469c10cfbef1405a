package dashboard

import (
	"embed"

	template "github.com/goliatone/go-template"
)

// The compiled-in templates cover the dashboard shell plus one panel
// partial per widget category, so the component renders without any
// filesystem layout on the host.
//
//go:embed templates/*.html templates/**/*.html
var embeddedTemplates embed.FS

// NewTemplateRenderer builds a go-template renderer over the embedded
// dashboard templates. Hosts that ship their own templates satisfy
// Renderer directly and skip this constructor.
func NewTemplateRenderer() (Renderer, error) {
	return template.NewRenderer(
		template.WithFS(embeddedTemplates),
		template.WithBaseDir("templates"),
		template.WithExtension(".html"),
	)
}
