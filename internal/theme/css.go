package theme

import (
	"fmt"
	"html"
	"strings"
)

// DefaultHighlightBase is where highlight.js stylesheets are fetched from.
const DefaultHighlightBase = "https://cdnjs.cloudflare.com/ajax/libs/highlight.js/11.9.0/styles"

const (
	mediaLight = "(prefers-color-scheme: light)"
	mediaDark  = "(prefers-color-scheme: dark)"
)

// CSS generates the custom-property declarations for a theme.
//
// Themes with both modes get a light :root block plus a dark block inside a
// prefers-color-scheme media query. Single-mode themes get one static block,
// so a dark-only theme stays dark on light-preferring systems.
func CSS(t *ResolvedTheme) string {
	var sb strings.Builder

	if t.Adaptive() {
		sb.WriteString(":root {\n")
		writeVars(&sb, t.LightColors, t.LightFont, "    ")
		sb.WriteString("}\n\n")

		sb.WriteString("@media " + mediaDark + " {\n")
		sb.WriteString("    :root {\n")
		writeVars(&sb, t.DarkColors, t.DarkFont, "        ")
		sb.WriteString("    }\n")
		sb.WriteString("}\n")
		return sb.String()
	}

	mode := t.PrimaryMode()
	sb.WriteString(":root {\n")
	writeVars(&sb, t.Colors(mode), t.Font(mode), "    ")
	sb.WriteString("}\n")
	return sb.String()
}

func writeVars(sb *strings.Builder, c ColorPalette, f FontSpec, indent string) {
	decl := func(name, value string) {
		fmt.Fprintf(sb, "%s--%s: %s;\n", indent, name, value)
	}

	decl("bg-color", c.Background)
	decl("text-color", c.Text)
	decl("heading-color", c.Headings)
	for level := 1; level <= 6; level++ {
		decl(fmt.Sprintf("h%d-color", level), c.HeadingColor(level))
	}
	decl("link-color", c.Links)
	decl("code-bg", c.CodeBackground)
	decl("border-color", c.Border)
	decl("blockquote-border", c.BlockquoteBorder)
	decl("blockquote-text", c.BlockquoteText)
	decl("table-border", c.TableBorder)
	decl("table-row-alt", c.TableRowAlt)
	decl("hr-color", c.HR)
	decl("error-bg", c.ErrorBackground)
	decl("error-border", c.ErrorBorder)
	decl("error-text", c.ErrorText)

	decl("font-family", f.Family)
	decl("mono-family", f.MonoFamily)
	decl("font-size", f.Size)
}

// Stylesheet is a reference to an external stylesheet.
// Media is empty for unconditional stylesheets.
type Stylesheet struct {
	Href  string
	Media string
}

// HTML renders the stylesheet as a <link> tag.
func (s Stylesheet) HTML() string {
	tag := `<link rel="stylesheet" href="` + html.EscapeString(s.Href) + `"`
	if s.Media != "" {
		tag += ` media="` + html.EscapeString(s.Media) + `"`
	}
	return tag + ">"
}

// HighlightLinks returns the highlight.js stylesheets for a theme.
// Themes with both modes get one stylesheet per mode, each gated by a media
// query; single-mode themes get exactly one unconditional stylesheet.
// An empty base uses DefaultHighlightBase.
func HighlightLinks(t *ResolvedTheme, base string) []Stylesheet {
	if base == "" {
		base = DefaultHighlightBase
	}
	base = strings.TrimSuffix(base, "/")
	href := func(style string) string {
		return base + "/" + style + ".min.css"
	}

	if t.Adaptive() {
		return []Stylesheet{
			{Href: href(t.LightHighlight), Media: mediaLight},
			{Href: href(t.DarkHighlight), Media: mediaDark},
		}
	}
	return []Stylesheet{{Href: href(t.Highlight(t.PrimaryMode()))}}
}

// HighlightLinksHTML renders HighlightLinks as newline-separated <link> tags.
func HighlightLinksHTML(t *ResolvedTheme, base string) string {
	links := HighlightLinks(t, base)
	tags := make([]string, 0, len(links))
	for _, l := range links {
		tags = append(tags, l.HTML())
	}
	return strings.Join(tags, "\n")
}
