package layout

import (
	"embed"
)

//go:embed templates/*.html
var embeddedTemplates embed.FS

// DefaultTemplateName is the embedded page template used when no user
// template is configured.
const DefaultTemplateName = "page"

// GetEmbeddedTemplate returns an embedded template by name.
// The name should not include the .html extension.
func GetEmbeddedTemplate(name string) (string, bool) {
	data, err := embeddedTemplates.ReadFile("templates/" + name + ".html")
	if err != nil {
		return "", false
	}
	return string(data), true
}
