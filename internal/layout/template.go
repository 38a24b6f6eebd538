// Package layout composes rendered HTML fragments into complete pages.
//
// Templates are plain HTML files containing named placeholders. Substitution
// is a single pass over the template, so placeholder text appearing inside
// substituted content is left as is.
package layout

import (
	"errors"
	"log/slog"
	"os"
	"strings"

	"github.com/jmylchreest/mdsee/internal/render"
)

// Placeholders recognized in page templates.
const (
	PlaceholderTitle          = "{{TITLE}}"
	PlaceholderBase           = "{{BASE}}"
	PlaceholderThemeCSS       = "{{THEME_CSS}}"
	PlaceholderHighlightLinks = "{{HIGHLIGHT_LINKS}}"
	PlaceholderContent        = "{{CONTENT}}"
)

// FallbackTemplate is used when neither a user nor the embedded template
// can be read.
const FallbackTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{TITLE}}</title>
{{HIGHLIGHT_LINKS}}
<style>
{{THEME_CSS}}
</style>
</head>
<body>{{CONTENT}}</body>
</html>
`

// DefaultTitle is the page title used when none is given.
const DefaultTitle = "Markdown"

// Page holds the values substituted into a template. Title and Base are
// escaped; the remaining fields are inserted verbatim.
type Page struct {
	Title          string
	Base           string
	ThemeCSS       string
	HighlightLinks string
	Content        string
}

// Compose substitutes page into tmpl. An empty tmpl uses FallbackTemplate.
func Compose(tmpl string, page Page) string {
	if tmpl == "" {
		tmpl = FallbackTemplate
	}
	title := page.Title
	if title == "" {
		title = DefaultTitle
	}
	r := strings.NewReplacer(
		PlaceholderTitle, render.EscapeHTML(title),
		PlaceholderBase, render.EscapeHTML(page.Base),
		PlaceholderThemeCSS, page.ThemeCSS,
		PlaceholderHighlightLinks, page.HighlightLinks,
		PlaceholderContent, page.Content,
	)
	return r.Replace(tmpl)
}

// RenderError composes a page whose content is message, escaped, inside an
// error block. Any Content already set on page is replaced.
func RenderError(tmpl, message string, page Page) string {
	page.Content = `<div class="error">` + render.EscapeHTML(message) + `</div>`
	return Compose(tmpl, page)
}

// Loader resolves the page template from the available sources.
type Loader struct {
	path   string
	logger *slog.Logger
}

// NewLoader creates a template loader. path is the user template to prefer;
// an empty path disables the user override.
func NewLoader(path string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{path: path, logger: logger}
}

// Load returns the user template if readable, else the embedded page
// template, else FallbackTemplate. It never fails.
func (l *Loader) Load() string {
	if l.path != "" {
		data, err := os.ReadFile(l.path)
		switch {
		case err == nil:
			return string(data)
		case errors.Is(err, os.ErrNotExist):
			l.logger.Debug("no user template", "path", l.path)
		default:
			l.logger.Warn("failed to read template, using default", "path", l.path, "error", err)
		}
	}

	if tmpl, ok := GetEmbeddedTemplate(DefaultTemplateName); ok {
		return tmpl
	}
	return FallbackTemplate
}
