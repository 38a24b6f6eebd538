package theme

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorPalette_Merge(t *testing.T) {
	partial := ColorPalette{
		Background: "#000000",
		Links:      "#ff00ff",
		HeadingColors: HeadingColors{
			H2: "#222222",
		},
	}
	fallback := DefaultLightPalette
	fallback.HeadingColors = HeadingColors{H1: "#111111", H2: "#999999", Default: "#333333"}

	merged := partial.Merge(fallback)

	assert.Equal(t, "#000000", merged.Background)
	assert.Equal(t, "#ff00ff", merged.Links)
	assert.Equal(t, fallback.Text, merged.Text)
	assert.Equal(t, fallback.ErrorText, merged.ErrorText)
	assert.Equal(t, fallback.Headings, merged.Headings)

	// Heading levels merge independently.
	assert.Equal(t, "#111111", merged.HeadingColors.H1)
	assert.Equal(t, "#222222", merged.HeadingColors.H2)
	assert.Equal(t, "", merged.HeadingColors.H3)
	assert.Equal(t, "#333333", merged.HeadingColors.Default)
}

func TestColorPalette_MergeIdempotent(t *testing.T) {
	for _, p := range []ColorPalette{DefaultLightPalette, DefaultDarkPalette, {}} {
		assert.Equal(t, p, p.Merge(p))
	}
}

func TestColorPalette_MergeEmptyTakesFallback(t *testing.T) {
	assert.Equal(t, DefaultDarkPalette, ColorPalette{}.Merge(DefaultDarkPalette))
}

func TestColorPalette_HeadingColor(t *testing.T) {
	p := ColorPalette{
		Headings:      "#aaaaaa",
		HeadingColors: HeadingColors{H1: "#111111"},
	}
	assert.Equal(t, "#111111", p.HeadingColor(1))
	assert.Equal(t, "#aaaaaa", p.HeadingColor(2))

	p.HeadingColors.Default = "#dddddd"
	assert.Equal(t, "#111111", p.HeadingColor(1))
	assert.Equal(t, "#dddddd", p.HeadingColor(6))
	assert.Equal(t, "#dddddd", p.HeadingColor(7))
}

func TestFontSpec_Merge(t *testing.T) {
	f := FontSpec{Size: "18px"}.Merge(DefaultFont)
	assert.Equal(t, "18px", f.Size)
	assert.Equal(t, DefaultFont.Family, f.Family)
	assert.Equal(t, DefaultFont.MonoFamily, f.MonoFamily)
	assert.Equal(t, DefaultFont, DefaultFont.Merge(DefaultFont))
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		input  string
		want   Mode
		wantOK bool
	}{
		{"", ModeLight, true},
		{"light", ModeLight, true},
		{"LIGHT", ModeLight, true},
		{" Dark ", ModeDark, true},
		{"sepia", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseMode(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_DarkOnly(t *testing.T) {
	rt := Resolve(Definition{
		Name: "midnight",
		Dark: &ModeConfig{Colors: ColorPalette{Background: "#000010"}},
	})

	assert.False(t, rt.HasLight)
	assert.True(t, rt.HasDark)
	assert.Equal(t, "#000010", rt.DarkColors.Background)
	assert.Equal(t, DefaultDarkPalette.Text, rt.DarkColors.Text)
	assert.Equal(t, DefaultLightPalette, rt.LightColors)
	assert.Equal(t, DefaultLightHighlight, rt.LightHighlight)
	assert.Equal(t, DefaultDarkHighlight, rt.DarkHighlight)
}

func TestResolve_Adaptive(t *testing.T) {
	rt := Resolve(Definition{
		Name:  "both",
		Light: &ModeConfig{Highlight: "atom-one-light", Font: FontSpec{Size: "15px"}},
		Dark:  &ModeConfig{Colors: ColorPalette{Links: "#abcdef"}},
	})

	assert.True(t, rt.Adaptive())
	assert.Equal(t, "atom-one-light", rt.LightHighlight)
	assert.Equal(t, DefaultDarkHighlight, rt.DarkHighlight)
	assert.Equal(t, "15px", rt.LightFont.Size)
	assert.Equal(t, DefaultFont, rt.DarkFont)
	assert.Equal(t, "#abcdef", rt.DarkColors.Links)
	assert.Equal(t, DefaultLightPalette, rt.LightColors)
}

func TestResolve_AdaptiveWinsOverFlatFields(t *testing.T) {
	rt := Resolve(Definition{
		Name:   "mixed",
		Light:  &ModeConfig{},
		Colors: ColorPalette{Background: "#123456"},
		Mode:   "dark",
	})

	assert.True(t, rt.HasLight)
	assert.False(t, rt.HasDark)
	assert.Equal(t, DefaultLightPalette.Background, rt.LightColors.Background)
	assert.Equal(t, DefaultDarkPalette.Background, rt.DarkColors.Background)
}

func TestResolve_SingleMode(t *testing.T) {
	tests := []struct {
		name      string
		mode      string
		wantLight bool
		wantDark  bool
	}{
		{"no mode defaults to light", "", true, false},
		{"light", "light", true, false},
		{"dark mixed case", "Dark", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := Resolve(Definition{
				Name:      "single",
				Mode:      tt.mode,
				Colors:    ColorPalette{Text: "#010101"},
				Highlight: "monokai",
			})

			assert.Equal(t, tt.wantLight, rt.HasLight)
			assert.Equal(t, tt.wantDark, rt.HasDark)

			if tt.wantDark {
				assert.Equal(t, "#010101", rt.DarkColors.Text)
				assert.Equal(t, "monokai", rt.DarkHighlight)
				assert.Equal(t, DefaultLightPalette, rt.LightColors)
				assert.Equal(t, DefaultLightHighlight, rt.LightHighlight)
			} else {
				assert.Equal(t, "#010101", rt.LightColors.Text)
				assert.Equal(t, "monokai", rt.LightHighlight)
				assert.Equal(t, DefaultDarkPalette, rt.DarkColors)
				assert.Equal(t, DefaultDarkHighlight, rt.DarkHighlight)
			}
		})
	}
}

func TestCSS_DarkOnly(t *testing.T) {
	rt := Resolve(Definition{
		Name: "midnight",
		Dark: &ModeConfig{Colors: ColorPalette{Background: "#000010"}},
	})

	css := CSS(rt)

	assert.Equal(t, 1, strings.Count(css, ":root"))
	assert.NotContains(t, css, "@media")
	assert.Contains(t, css, "--bg-color: #000010;")
	assert.Contains(t, css, "--text-color: "+DefaultDarkPalette.Text+";")
	assert.NotContains(t, css, DefaultLightPalette.Text)
}

func TestCSS_Adaptive(t *testing.T) {
	rt := BuiltinDefault()
	css := CSS(rt)

	assert.Equal(t, 2, strings.Count(css, ":root"))
	assert.Equal(t, 1, strings.Count(css, "@media (prefers-color-scheme: dark)"))

	lightPart, darkPart, found := strings.Cut(css, "@media")
	require.True(t, found)
	assert.True(t, strings.HasPrefix(lightPart, ":root {\n"))
	assert.Contains(t, lightPart, "--bg-color: "+DefaultLightPalette.Background+";")
	assert.Contains(t, darkPart, "--bg-color: "+DefaultDarkPalette.Background+";")
	assert.NotContains(t, lightPart, DefaultDarkPalette.Background)
}

func TestCSS_LightOnlyAndNeither(t *testing.T) {
	light := Resolve(Definition{Name: "light"})
	neither := &ResolvedTheme{
		Name:        "bare",
		LightColors: DefaultLightPalette,
		DarkColors:  DefaultDarkPalette,
		LightFont:   DefaultFont,
		DarkFont:    DefaultFont,
	}

	for _, rt := range []*ResolvedTheme{light, neither} {
		css := CSS(rt)
		assert.Equal(t, 1, strings.Count(css, ":root"), rt.Name)
		assert.NotContains(t, css, "@media", rt.Name)
		assert.Contains(t, css, "--bg-color: #ffffff;", rt.Name)
	}
}

func TestCSS_HeadingLevels(t *testing.T) {
	rt := Resolve(Definition{
		Name: "headings",
		Colors: ColorPalette{
			Headings:      "#aaaaaa",
			HeadingColors: HeadingColors{H1: "#ff0000", H3: "#00ff00"},
		},
	})

	css := CSS(rt)

	assert.Contains(t, css, "--heading-color: #aaaaaa;")
	assert.Contains(t, css, "--h1-color: #ff0000;")
	assert.Contains(t, css, "--h2-color: #aaaaaa;")
	assert.Contains(t, css, "--h3-color: #00ff00;")
	for _, level := range []string{"h4", "h5", "h6"} {
		assert.Contains(t, css, "--"+level+"-color: #aaaaaa;")
	}
	assert.NotContains(t, css, "var(--heading-color)")
}

func TestCSS_AllProperties(t *testing.T) {
	css := CSS(BuiltinDefault())

	props := []string{
		"--bg-color", "--text-color", "--heading-color",
		"--h1-color", "--h2-color", "--h3-color", "--h4-color", "--h5-color", "--h6-color",
		"--link-color", "--code-bg", "--border-color",
		"--blockquote-border", "--blockquote-text",
		"--table-border", "--table-row-alt", "--hr-color",
		"--error-bg", "--error-border", "--error-text",
		"--font-family", "--mono-family", "--font-size",
	}
	for _, p := range props {
		assert.Equal(t, 2, strings.Count(css, p+":"), p)
	}
	assert.Equal(t, strings.Count(css, "{"), strings.Count(css, "}"))
}

func TestHighlightLinks(t *testing.T) {
	adaptive := HighlightLinks(BuiltinDefault(), "")
	require.Len(t, adaptive, 2)
	assert.Equal(t, DefaultHighlightBase+"/github.min.css", adaptive[0].Href)
	assert.Equal(t, "(prefers-color-scheme: light)", adaptive[0].Media)
	assert.Equal(t, DefaultHighlightBase+"/github-dark.min.css", adaptive[1].Href)
	assert.Equal(t, "(prefers-color-scheme: dark)", adaptive[1].Media)

	dark := Resolve(Definition{Name: "d", Mode: "dark", Highlight: "nord"})
	links := HighlightLinks(dark, "https://example.test/styles/")
	require.Len(t, links, 1)
	assert.Equal(t, "https://example.test/styles/nord.min.css", links[0].Href)
	assert.Empty(t, links[0].Media)

	light := Resolve(Definition{Name: "l"})
	links = HighlightLinks(light, "")
	require.Len(t, links, 1)
	assert.Equal(t, DefaultHighlightBase+"/github.min.css", links[0].Href)
}

func TestHighlightLinksHTML(t *testing.T) {
	html := HighlightLinksHTML(BuiltinDefault(), "https://cdn.test")
	assert.Equal(t,
		`<link rel="stylesheet" href="https://cdn.test/github.min.css" media="(prefers-color-scheme: light)">`+"\n"+
			`<link rel="stylesheet" href="https://cdn.test/github-dark.min.css" media="(prefers-color-scheme: dark)">`,
		html)

	single := HighlightLinksHTML(Resolve(Definition{Name: "l"}), "https://cdn.test")
	assert.Equal(t, `<link rel="stylesheet" href="https://cdn.test/github.min.css">`, single)
}
