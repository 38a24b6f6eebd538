package theme

// Built-in highlight.js styles used when a theme does not name one.
const (
	DefaultLightHighlight = "github"
	DefaultDarkHighlight  = "github-dark"
)

// DefaultThemeName is the catalog entry returned by Catalog.Default.
const DefaultThemeName = "default"

// DefaultLightPalette is the fallback for every light-mode slot.
var DefaultLightPalette = ColorPalette{
	Background:       "#ffffff",
	Text:             "#24292f",
	Headings:         "#1f2328",
	Links:            "#0969da",
	CodeBackground:   "#f6f8fa",
	Border:           "#d0d7de",
	BlockquoteBorder: "#d0d7de",
	BlockquoteText:   "#59636e",
	TableBorder:      "#d0d7de",
	TableRowAlt:      "#f6f8fa",
	HR:               "#d8dee4",
	ErrorBackground:  "#ffebe9",
	ErrorBorder:      "#ff8182",
	ErrorText:        "#cf222e",
}

// DefaultDarkPalette is the fallback for every dark-mode slot.
var DefaultDarkPalette = ColorPalette{
	Background:       "#0d1117",
	Text:             "#e6edf3",
	Headings:         "#ffffff",
	Links:            "#58a6ff",
	CodeBackground:   "#161b22",
	Border:           "#30363d",
	BlockquoteBorder: "#3b434b",
	BlockquoteText:   "#8b949e",
	TableBorder:      "#30363d",
	TableRowAlt:      "#161b22",
	HR:               "#21262d",
	ErrorBackground:  "#490202",
	ErrorBorder:      "#f85149",
	ErrorText:        "#f85149",
}

// DefaultFont is shared by both modes.
var DefaultFont = FontSpec{
	Family:     `-apple-system, BlinkMacSystemFont, "Segoe UI", "Noto Sans", Helvetica, Arial, sans-serif`,
	MonoFamily: "ui-monospace, SFMono-Regular, SF Mono, Menlo, Consolas, Liberation Mono, monospace",
	Size:       "16px",
}

// BuiltinDefault returns the theme used when no "default" theme was loaded.
func BuiltinDefault() *ResolvedTheme {
	return &ResolvedTheme{
		Name:           DefaultThemeName,
		Source:         "builtin",
		LightColors:    DefaultLightPalette,
		DarkColors:     DefaultDarkPalette,
		LightFont:      DefaultFont,
		DarkFont:       DefaultFont,
		LightHighlight: DefaultLightHighlight,
		DarkHighlight:  DefaultDarkHighlight,
		HasLight:       true,
		HasDark:        true,
	}
}
