package layout

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompose(t *testing.T) {
	tmpl := "<title>{{TITLE}}</title><base href=\"{{BASE}}\">{{HIGHLIGHT_LINKS}}<style>{{THEME_CSS}}</style><body>{{CONTENT}}</body>"

	got := Compose(tmpl, Page{
		Title:          "A & B",
		Base:           "file:///tmp/docs/",
		ThemeCSS:       ":root { --bg-color: #fff; }",
		HighlightLinks: `<link rel="stylesheet" href="x.css">`,
		Content:        "<p>hi</p>\n",
	})

	assert.Equal(t,
		`<title>A &amp; B</title><base href="file:///tmp/docs/"><link rel="stylesheet" href="x.css"><style>:root { --bg-color: #fff; }</style><body><p>hi</p>`+"\n</body>",
		got)
}

func TestCompose_SinglePass(t *testing.T) {
	got := Compose("{{CONTENT}}|{{TITLE}}", Page{
		Title:   "t",
		Content: "literal {{TITLE}} and {{CONTENT}}",
	})
	assert.Equal(t, "literal {{TITLE}} and {{CONTENT}}|t", got)
}

func TestCompose_Defaults(t *testing.T) {
	got := Compose("", Page{Content: "<p>x</p>"})

	assert.True(t, strings.HasPrefix(got, "<!DOCTYPE html>"))
	assert.Contains(t, got, "<title>"+DefaultTitle+"</title>")
	assert.Contains(t, got, "<body><p>x</p></body>")
	assert.NotContains(t, got, "{{")
}

func TestCompose_RepeatedPlaceholder(t *testing.T) {
	got := Compose("{{CONTENT}}{{CONTENT}}", Page{Content: "ab"})
	assert.Equal(t, "abab", got)
}

func TestRenderError(t *testing.T) {
	got := RenderError("<body>{{CONTENT}}</body>", `open "x.md": <missing>`, Page{Content: "ignored"})

	assert.Equal(t,
		`<body><div class="error">open &quot;x.md&quot;: &lt;missing&gt;</div></body>`,
		got)
}

func TestEmbeddedTemplate(t *testing.T) {
	tmpl, found := GetEmbeddedTemplate(DefaultTemplateName)
	require.True(t, found)

	for _, p := range []string{
		PlaceholderTitle, PlaceholderBase, PlaceholderThemeCSS,
		PlaceholderHighlightLinks, PlaceholderContent,
	} {
		assert.Equal(t, 1, strings.Count(tmpl, p), p)
	}
	assert.Contains(t, tmpl, "var(--bg-color)")
	assert.Contains(t, tmpl, ".error")

	_, found = GetEmbeddedTemplate("nonexistent")
	assert.False(t, found)
}

func TestLoader(t *testing.T) {
	embedded, _ := GetEmbeddedTemplate(DefaultTemplateName)

	t.Run("no user path uses embedded", func(t *testing.T) {
		assert.Equal(t, embedded, NewLoader("", nil).Load())
	})

	t.Run("missing user file uses embedded", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "template.html")
		assert.Equal(t, embedded, NewLoader(path, nil).Load())
	})

	t.Run("user file wins", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "template.html")
		require.NoError(t, os.WriteFile(path, []byte("<main>{{CONTENT}}</main>"), 0644))
		assert.Equal(t, "<main>{{CONTENT}}</main>", NewLoader(path, nil).Load())
	})

	t.Run("unreadable path uses embedded", func(t *testing.T) {
		dir := t.TempDir()
		assert.Equal(t, embedded, NewLoader(dir, nil).Load())
	})
}
