package theme

import "strings"

// HeadingColors holds optional per-level heading colors.
// An empty string means the level inherits from Default, then from the
// palette's single heading color.
type HeadingColors struct {
	H1      string
	H2      string
	H3      string
	H4      string
	H5      string
	H6      string
	Default string
}

// IsZero reports whether no heading color is set.
func (h HeadingColors) IsZero() bool {
	return h == HeadingColors{}
}

// Level returns the color configured for a heading level (1-6), or "".
func (h HeadingColors) Level(level int) string {
	switch level {
	case 1:
		return h.H1
	case 2:
		return h.H2
	case 3:
		return h.H3
	case 4:
		return h.H4
	case 5:
		return h.H5
	case 6:
		return h.H6
	default:
		return ""
	}
}

// Merge fills every empty field from fallback.
func (h HeadingColors) Merge(fallback HeadingColors) HeadingColors {
	return HeadingColors{
		H1:      or(h.H1, fallback.H1),
		H2:      or(h.H2, fallback.H2),
		H3:      or(h.H3, fallback.H3),
		H4:      or(h.H4, fallback.H4),
		H5:      or(h.H5, fallback.H5),
		H6:      or(h.H6, fallback.H6),
		Default: or(h.Default, fallback.Default),
	}
}

// ColorPalette is the set of named color slots a theme can set.
// Every slot is optional; "" means inherit from the fallback palette.
type ColorPalette struct {
	Background       string
	Text             string
	Headings         string        // single color for all heading levels
	HeadingColors    HeadingColors // per-level overrides
	Links            string
	CodeBackground   string
	Border           string
	BlockquoteBorder string
	BlockquoteText   string
	TableBorder      string
	TableRowAlt      string
	HR               string
	ErrorBackground  string
	ErrorBorder      string
	ErrorText        string
}

// Merge returns p with every empty slot taken from fallback.
// The heading-color block merges each of its fields independently.
func (p ColorPalette) Merge(fallback ColorPalette) ColorPalette {
	return ColorPalette{
		Background:       or(p.Background, fallback.Background),
		Text:             or(p.Text, fallback.Text),
		Headings:         or(p.Headings, fallback.Headings),
		HeadingColors:    p.HeadingColors.Merge(fallback.HeadingColors),
		Links:            or(p.Links, fallback.Links),
		CodeBackground:   or(p.CodeBackground, fallback.CodeBackground),
		Border:           or(p.Border, fallback.Border),
		BlockquoteBorder: or(p.BlockquoteBorder, fallback.BlockquoteBorder),
		BlockquoteText:   or(p.BlockquoteText, fallback.BlockquoteText),
		TableBorder:      or(p.TableBorder, fallback.TableBorder),
		TableRowAlt:      or(p.TableRowAlt, fallback.TableRowAlt),
		HR:               or(p.HR, fallback.HR),
		ErrorBackground:  or(p.ErrorBackground, fallback.ErrorBackground),
		ErrorBorder:      or(p.ErrorBorder, fallback.ErrorBorder),
		ErrorText:        or(p.ErrorText, fallback.ErrorText),
	}
}

// HeadingColor resolves the color for a heading level: the per-level
// override, then the heading-colors default, then the palette's heading color.
func (p ColorPalette) HeadingColor(level int) string {
	if c := p.HeadingColors.Level(level); c != "" {
		return c
	}
	return or(p.HeadingColors.Default, p.Headings)
}

// FontSpec describes the page fonts. Empty fields inherit.
type FontSpec struct {
	Family     string
	MonoFamily string
	Size       string
}

// Merge returns f with every empty field taken from fallback.
func (f FontSpec) Merge(fallback FontSpec) FontSpec {
	return FontSpec{
		Family:     or(f.Family, fallback.Family),
		MonoFamily: or(f.MonoFamily, fallback.MonoFamily),
		Size:       or(f.Size, fallback.Size),
	}
}

// ModeConfig is the configuration active under one color mode.
type ModeConfig struct {
	Colors    ColorPalette
	Font      FontSpec
	Highlight string // highlight.js style name
}

// Mode is a color mode.
type Mode string

const (
	ModeLight Mode = "light"
	ModeDark  Mode = "dark"
)

// ParseMode parses a mode tag case-insensitively. An empty tag is light.
func ParseMode(s string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "light":
		return ModeLight, true
	case "dark":
		return ModeDark, true
	default:
		return "", false
	}
}

// Form identifies which of the two theme file layouts a Definition uses.
type Form int

const (
	// FormSingle is a flat colors/font/highlightjs block plus a mode tag.
	FormSingle Form = iota
	// FormAdaptive has explicit light and/or dark sections.
	FormAdaptive
)

// Definition is a theme as loaded from disk, before resolution.
type Definition struct {
	Name        string
	Description string

	// Adaptive form.
	Light *ModeConfig
	Dark  *ModeConfig

	// Single-mode form.
	Colors    ColorPalette
	Font      FontSpec
	Highlight string
	Mode      string

	// Warnings lists problems that were ignored while decoding.
	Warnings []string
}

// Form reports the layout in use. Adaptive sections win when both are present.
func (d Definition) Form() Form {
	if d.Light != nil || d.Dark != nil {
		return FormAdaptive
	}
	return FormSingle
}

// ResolvedTheme is a theme with both modes fully populated.
// Values are created by Resolve and never modified afterwards.
type ResolvedTheme struct {
	Name        string
	Description string
	Source      string // file path, or "builtin"

	LightColors    ColorPalette
	DarkColors     ColorPalette
	LightFont      FontSpec
	DarkFont       FontSpec
	LightHighlight string
	DarkHighlight  string

	// HasLight and HasDark record which modes the theme author supplied.
	HasLight bool
	HasDark  bool
}

// Adaptive reports whether the theme follows the system color scheme.
func (t *ResolvedTheme) Adaptive() bool {
	return t.HasLight && t.HasDark
}

// PrimaryMode is the mode used when a single static block is emitted.
func (t *ResolvedTheme) PrimaryMode() Mode {
	if t.HasDark && !t.HasLight {
		return ModeDark
	}
	return ModeLight
}

// Colors returns the palette for a mode.
func (t *ResolvedTheme) Colors(m Mode) ColorPalette {
	if m == ModeDark {
		return t.DarkColors
	}
	return t.LightColors
}

// Font returns the font spec for a mode.
func (t *ResolvedTheme) Font(m Mode) FontSpec {
	if m == ModeDark {
		return t.DarkFont
	}
	return t.LightFont
}

// Highlight returns the highlight.js style for a mode.
func (t *ResolvedTheme) Highlight(m Mode) string {
	if m == ModeDark {
		return t.DarkHighlight
	}
	return t.LightHighlight
}

func or(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}
