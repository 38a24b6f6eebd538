package preview

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/mdsee/internal/layout"
	"github.com/jmylchreest/mdsee/internal/theme"
)

const testTemplate = "<title>{{TITLE}}</title><base href=\"{{BASE}}\">{{HIGHLIGHT_LINKS}}<style>{{THEME_CSS}}</style><body>{{CONTENT}}</body>"

func testCatalog(t *testing.T) *theme.Catalog {
	t.Helper()
	return theme.LoadCatalog(fstest.MapFS{
		"default.yaml": {Data: []byte("name: default\nlight:\n  colors:\n    background: \"#fefefe\"\ndark:\n  colors:\n    background: \"#010101\"\n")},
		"night.yaml":   {Data: []byte("name: night\nmode: dark\nhighlightjs: monokai\ncolors:\n  background: \"#000020\"\n")},
	}, "", nil)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRender(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "notes.md", "# Notes\n\n**bold _and italic_**\n")

	p := New(Options{Catalog: testCatalog(t), Template: testTemplate})
	page := p.Render(path, "")

	require.NoError(t, page.Err)
	assert.Equal(t, "default", page.Theme)
	assert.Equal(t, "file://"+filepath.ToSlash(dir)+"/", page.BaseURL)
	assert.Contains(t, page.HTML, "<title>notes.md</title>")
	assert.Contains(t, page.HTML, `<base href="`+page.BaseURL+`">`)
	assert.Contains(t, page.HTML, "<h1>Notes</h1>\n")
	assert.Contains(t, page.HTML, "<strong>bold <em>and italic</em></strong>")
	assert.Contains(t, page.HTML, "--bg-color: #fefefe;")
	assert.Contains(t, page.HTML, "@media (prefers-color-scheme: dark)")
	assert.Contains(t, page.HTML, `media="(prefers-color-scheme: light)"`)
}

func TestRender_ExplicitTheme(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.md", "text\n")

	p := New(Options{Catalog: testCatalog(t), Template: testTemplate, HighlightBase: "https://cdn.test"})
	page := p.Render(path, "night")

	assert.Equal(t, "night", page.Theme)
	assert.Contains(t, page.HTML, "--bg-color: #000020;")
	assert.NotContains(t, page.HTML, "@media")
	assert.Contains(t, page.HTML, `<link rel="stylesheet" href="https://cdn.test/monokai.min.css">`)
}

func TestRender_ThemeChoiceOrder(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.md", "text\n")

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelWarn}))

	p := New(Options{Catalog: testCatalog(t), ThemeName: "night", Logger: logger})

	assert.Equal(t, "night", p.Render(path, "").Theme, "configured name used when none given")
	assert.Equal(t, "default", p.Render(path, "default").Theme, "explicit name wins")
	assert.Empty(t, logs.String())

	assert.Equal(t, "default", p.Render(path, "missing").Theme, "unknown name falls back")
	assert.Contains(t, logs.String(), "unknown theme")
	assert.Contains(t, logs.String(), "missing")
}

func TestRender_UnknownConfiguredTheme(t *testing.T) {
	p := New(Options{Catalog: testCatalog(t), ThemeName: "gone"})
	assert.Equal(t, "default", p.Theme("").Name)
}

func TestRender_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.md")

	p := New(Options{Catalog: testCatalog(t), Template: testTemplate})
	page := p.Render(path, "")

	require.Error(t, page.Err)
	assert.ErrorIs(t, page.Err, os.ErrNotExist)
	assert.Empty(t, page.BaseURL)
	assert.Equal(t, "default", page.Theme)
	assert.Contains(t, page.HTML, `<div class="error">failed to read file: `)
	assert.Contains(t, page.HTML, "--bg-color: #fefefe;", "error page is still themed")
	assert.Contains(t, page.HTML, `<base href="">`)
}

func TestRender_EscapesErrorMessage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "<b>.md")

	p := New(Options{Catalog: testCatalog(t), Template: testTemplate})
	page := p.Render(path, "")

	require.Error(t, page.Err)
	assert.NotContains(t, page.HTML, "<b>.md")
	assert.Contains(t, page.HTML, "&lt;b&gt;.md")
}

func TestRender_Idempotent(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.md", "- [x] done\n- [ ] todo\n\n| a | b |\n|---|--:|\n| 1 | 2 |\n")

	p := New(Options{Catalog: testCatalog(t)})
	assert.Equal(t, p.Render(path, "").HTML, p.Render(path, "").HTML)
}

func TestRender_PicksUpSourceChanges(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.md", "first\n")

	p := New(Options{Catalog: testCatalog(t)})
	assert.Contains(t, p.Render(path, "").HTML, "<p>first</p>")

	writeFile(t, dir, "a.md", "second\n")
	html := p.Render(path, "").HTML
	assert.Contains(t, html, "<p>second</p>")
	assert.NotContains(t, html, "first")
}

func TestRenderSource(t *testing.T) {
	p := New(Options{Catalog: testCatalog(t), Template: testTemplate})
	page := p.RenderSource([]byte("hello {{CONTENT}}\n"), "stdin", "", "night")

	require.NoError(t, page.Err)
	assert.Equal(t, "night", page.Theme)
	assert.Contains(t, page.HTML, "<title>stdin</title>")
	assert.Contains(t, page.HTML, "<p>hello {{CONTENT}}</p>")
}

func TestNew_Defaults(t *testing.T) {
	p := New(Options{})

	assert.ElementsMatch(t, theme.BundledThemes, p.ThemeNames())
	page := p.RenderSource([]byte("x\n"), "", "", "")
	assert.True(t, strings.HasPrefix(page.HTML, "<!DOCTYPE html>"))
	assert.Contains(t, page.HTML, "<title>"+layout.DefaultTitle+"</title>")
}

func TestSetCatalog(t *testing.T) {
	p := New(Options{Catalog: testCatalog(t)})
	assert.Equal(t, []string{"default", "night"}, p.ThemeNames())

	p.SetCatalog(theme.LoadCatalog(fstest.MapFS{
		"x.yaml": {Data: []byte("name: sepia-ish\n")},
	}, "", nil))
	assert.Equal(t, []string{"sepia-ish"}, p.ThemeNames())

	p.SetCatalog(nil)
	assert.Equal(t, []string{"sepia-ish"}, p.ThemeNames(), "nil catalog is ignored")

	assert.Equal(t, theme.DefaultThemeName, p.Theme("").Name, "builtin default when catalog has none")
}

func TestSetTemplate(t *testing.T) {
	p := New(Options{Catalog: testCatalog(t), Template: testTemplate})
	p.SetTemplate("<main>{{CONTENT}}</main>")
	assert.Equal(t, "<main><p>x</p>\n</main>", p.RenderSource([]byte("x\n"), "", "", "").HTML)

	p.SetTemplate("")
	assert.Contains(t, p.RenderSource([]byte("x\n"), "", "", "").HTML, "<!DOCTYPE html>")
}

func TestBaseURL(t *testing.T) {
	got, err := BaseURL("/home/user/my docs/readme.md")
	require.NoError(t, err)
	assert.Equal(t, "file:///home/user/my%20docs/", got)

	got, err = BaseURL("/readme.md")
	require.NoError(t, err)
	assert.Equal(t, "file:///", got)
}
