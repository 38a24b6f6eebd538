// Package preview renders markdown files into complete themed HTML pages.
//
// A Previewer ties the theme catalog, the markdown parser, the HTML renderer
// and the page template together. Rendering reads the source once and is
// otherwise a pure function of its inputs, so re-rendering after a change is
// a fresh call to Render.
package preview

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/jmylchreest/mdsee/internal/layout"
	"github.com/jmylchreest/mdsee/internal/markdown"
	"github.com/jmylchreest/mdsee/internal/render"
	"github.com/jmylchreest/mdsee/internal/theme"
)

// Options configures a Previewer.
type Options struct {
	// Catalog supplies themes. Nil loads the bundled themes only.
	Catalog *theme.Catalog
	// Template is the page template text. Empty uses layout.FallbackTemplate.
	Template string
	// ThemeName is the configured theme preference, used when Render is
	// not given an explicit name.
	ThemeName string
	// HighlightBase overrides the highlight.js stylesheet base URL.
	HighlightBase string
	// Parser converts markdown. Nil uses the default GFM parser.
	Parser *markdown.Parser
	Logger *slog.Logger
}

// Page is the result of a render.
type Page struct {
	HTML string
	// BaseURL resolves relative links and images: the source file's
	// directory as a file:// URL ending in "/". Empty for error pages.
	BaseURL string
	// Theme is the name of the theme the page was styled with.
	Theme string
	// Err is set when the source could not be read; HTML then holds an
	// error page.
	Err error
}

// Previewer renders markdown documents. It is safe for concurrent use.
type Previewer struct {
	logger        *slog.Logger
	parser        *markdown.Parser
	themeName     string
	highlightBase string

	catalog  atomic.Pointer[theme.Catalog]
	template atomic.Pointer[string]
}

// New creates a Previewer.
func New(opts Options) *Previewer {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	parser := opts.Parser
	if parser == nil {
		parser = markdown.NewParser()
	}

	p := &Previewer{
		logger:        logger,
		parser:        parser,
		themeName:     opts.ThemeName,
		highlightBase: opts.HighlightBase,
	}

	catalog := opts.Catalog
	if catalog == nil {
		catalog = theme.LoadCatalog(theme.Bundled(), "", logger)
	}
	p.SetCatalog(catalog)
	p.SetTemplate(opts.Template)
	return p
}

// SetCatalog replaces the theme catalog. Renders already in progress keep
// the catalog they started with.
func (p *Previewer) SetCatalog(c *theme.Catalog) {
	if c == nil {
		return
	}
	p.catalog.Store(c)
}

// Catalog returns the current theme catalog.
func (p *Previewer) Catalog() *theme.Catalog {
	return p.catalog.Load()
}

// SetTemplate replaces the page template. An empty template selects
// layout.FallbackTemplate.
func (p *Previewer) SetTemplate(tmpl string) {
	if tmpl == "" {
		tmpl = layout.FallbackTemplate
	}
	p.template.Store(&tmpl)
}

// ThemeNames returns the sorted names of all available themes.
func (p *Previewer) ThemeNames() []string {
	return p.Catalog().Names()
}

// Theme picks the theme for a render: the explicit name, else the
// configured name, else the catalog default. Unknown names fall back to
// the default with a warning.
func (p *Previewer) Theme(name string) *theme.ResolvedTheme {
	if name == "" {
		name = p.themeName
	}
	t, found := p.Catalog().Lookup(name)
	if !found {
		p.logger.Warn("unknown theme, using default", "theme", name, "default", t.Name)
	}
	return t
}

// Render reads the markdown file at path and renders it with the named
// theme. A read failure yields an error page and sets Page.Err.
func (p *Previewer) Render(path, themeName string) Page {
	t := p.Theme(themeName)

	source, err := os.ReadFile(path)
	if err != nil {
		p.logger.Warn("failed to read source", "path", path, "error", err)
		return p.errorPage(t, filepath.Base(path), fmt.Errorf("failed to read file: %w", err))
	}

	baseURL, err := BaseURL(path)
	if err != nil {
		p.logger.Debug("cannot derive base URL", "path", path, "error", err)
	}

	return p.render(t, source, filepath.Base(path), baseURL)
}

// RenderSource renders markdown held in memory.
func (p *Previewer) RenderSource(source []byte, title, baseURL, themeName string) Page {
	return p.render(p.Theme(themeName), source, title, baseURL)
}

func (p *Previewer) render(t *theme.ResolvedTheme, source []byte, title, baseURL string) Page {
	content := render.HTML(p.parser.Parse(source))

	html := layout.Compose(*p.template.Load(), layout.Page{
		Title:          title,
		Base:           baseURL,
		ThemeCSS:       theme.CSS(t),
		HighlightLinks: theme.HighlightLinksHTML(t, p.highlightBase),
		Content:        content,
	})

	return Page{HTML: html, BaseURL: baseURL, Theme: t.Name}
}

func (p *Previewer) errorPage(t *theme.ResolvedTheme, title string, err error) Page {
	html := layout.RenderError(*p.template.Load(), err.Error(), layout.Page{
		Title:          title,
		ThemeCSS:       theme.CSS(t),
		HighlightLinks: theme.HighlightLinksHTML(t, p.highlightBase),
	})
	return Page{HTML: html, Theme: t.Name, Err: err}
}

// BaseURL returns the directory containing path as a file:// URL with a
// trailing slash.
func BaseURL(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	dir := filepath.ToSlash(filepath.Dir(abs))
	if dir[len(dir)-1] != '/' {
		dir += "/"
	}
	u := url.URL{Scheme: "file", Path: dir}
	return u.String(), nil
}
