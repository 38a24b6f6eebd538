package theme

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrInvalidTheme is returned for theme files that parse but are unusable.
var ErrInvalidTheme = errors.New("invalid theme")

// themeFile mirrors the on-disk layout of a theme file.
type themeFile struct {
	Name        string     `yaml:"name" toml:"name"`
	Description string     `yaml:"description" toml:"description"`
	Light       *modeFile  `yaml:"light" toml:"light"`
	Dark        *modeFile  `yaml:"dark" toml:"dark"`
	Colors      *colorFile `yaml:"colors" toml:"colors"`
	Font        *fontFile  `yaml:"font" toml:"font"`
	Highlightjs string     `yaml:"highlightjs" toml:"highlightjs"`
	Mode        string     `yaml:"mode" toml:"mode"`
}

type modeFile struct {
	Colors      *colorFile `yaml:"colors" toml:"colors"`
	Font        *fontFile  `yaml:"font" toml:"font"`
	Highlightjs string     `yaml:"highlightjs" toml:"highlightjs"`
}

type colorFile struct {
	Background       string `yaml:"background" toml:"background"`
	Text             string `yaml:"text" toml:"text"`
	Headings         any    `yaml:"headings" toml:"headings"` // string or h1..h6/default mapping
	Links            string `yaml:"links" toml:"links"`
	CodeBackground   string `yaml:"code-background" toml:"code-background"`
	Border           string `yaml:"border" toml:"border"`
	BlockquoteBorder string `yaml:"blockquote-border" toml:"blockquote-border"`
	BlockquoteText   string `yaml:"blockquote-text" toml:"blockquote-text"`
	TableBorder      string `yaml:"table-border" toml:"table-border"`
	TableRowAlt      string `yaml:"table-row-alt" toml:"table-row-alt"`
	HR               string `yaml:"hr" toml:"hr"`
	ErrorBackground  string `yaml:"error-background" toml:"error-background"`
	ErrorBorder      string `yaml:"error-border" toml:"error-border"`
	ErrorText        string `yaml:"error-text" toml:"error-text"`
}

type fontFile struct {
	Family     string `yaml:"family" toml:"family"`
	MonoFamily string `yaml:"mono-family" toml:"mono-family"`
	Size       string `yaml:"size" toml:"size"`
}

// IsThemeFile reports whether a filename has a recognized theme extension.
func IsThemeFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml", ".toml":
		return true
	default:
		return false
	}
}

// ParseDefinition decodes a theme file. The format is chosen from the
// filename extension.
func ParseDefinition(filename string, data []byte) (Definition, error) {
	var f themeFile

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return Definition{}, fmt.Errorf("parse yaml: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &f); err != nil {
			return Definition{}, fmt.Errorf("parse toml: %w", err)
		}
	default:
		return Definition{}, fmt.Errorf("unsupported theme format %q", filepath.Ext(filename))
	}

	return f.definition()
}

func (f *themeFile) definition() (Definition, error) {
	var warnings []string
	warn := func(format string, args ...any) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	}

	def := Definition{
		Name:        strings.TrimSpace(f.Name),
		Description: strings.TrimSpace(f.Description),
		Highlight:   f.Highlightjs,
		Mode:        f.Mode,
	}
	if def.Name == "" {
		return Definition{}, fmt.Errorf("%w: name is required", ErrInvalidTheme)
	}

	var err error
	if def.Light, err = f.Light.config("light.", warn); err != nil {
		return Definition{}, fmt.Errorf("light: %w", err)
	}
	if def.Dark, err = f.Dark.config("dark.", warn); err != nil {
		return Definition{}, fmt.Errorf("dark: %w", err)
	}
	if def.Colors, err = f.Colors.palette("", warn); err != nil {
		return Definition{}, err
	}
	def.Font = f.Font.spec()

	if def.Form() == FormSingle {
		if _, ok := ParseMode(def.Mode); !ok {
			return Definition{}, fmt.Errorf("%w: unknown mode %q (want light or dark)", ErrInvalidTheme, def.Mode)
		}
	}

	def.Warnings = warnings
	return def, nil
}

func (m *modeFile) config(prefix string, warn func(string, ...any)) (*ModeConfig, error) {
	if m == nil {
		return nil, nil
	}
	colors, err := m.Colors.palette(prefix, warn)
	if err != nil {
		return nil, err
	}
	return &ModeConfig{
		Colors:    colors,
		Font:      m.Font.spec(),
		Highlight: m.Highlightjs,
	}, nil
}

func (c *colorFile) palette(prefix string, warn func(string, ...any)) (ColorPalette, error) {
	if c == nil {
		return ColorPalette{}, nil
	}
	p := ColorPalette{
		Background:       c.Background,
		Text:             c.Text,
		Links:            c.Links,
		CodeBackground:   c.CodeBackground,
		Border:           c.Border,
		BlockquoteBorder: c.BlockquoteBorder,
		BlockquoteText:   c.BlockquoteText,
		TableBorder:      c.TableBorder,
		TableRowAlt:      c.TableRowAlt,
		HR:               c.HR,
		ErrorBackground:  c.ErrorBackground,
		ErrorBorder:      c.ErrorBorder,
		ErrorText:        c.ErrorText,
	}

	switch h := c.Headings.(type) {
	case nil:
	case map[string]any:
		levels, err := headingColors(h, prefix, warn)
		if err != nil {
			return ColorPalette{}, err
		}
		p.HeadingColors = levels
	default:
		s, ok := scalarString(h)
		if !ok {
			return ColorPalette{}, fmt.Errorf("%w: colors.headings must be a color or a map of levels, got %T", ErrInvalidTheme, h)
		}
		p.Headings = s
	}

	return p, nil
}

// headingColors decodes a per-level heading mapping. Keys other than h1..h6
// and default are reported as warnings and ignored.
func headingColors(m map[string]any, prefix string, warn func(string, ...any)) (HeadingColors, error) {
	var h HeadingColors
	for key, v := range m {
		s, ok := scalarString(v)
		if !ok {
			return HeadingColors{}, fmt.Errorf("%w: colors.headings.%s must be a string, got %T", ErrInvalidTheme, key, v)
		}
		switch strings.ToLower(key) {
		case "h1":
			h.H1 = s
		case "h2":
			h.H2 = s
		case "h3":
			h.H3 = s
		case "h4":
			h.H4 = s
		case "h5":
			h.H5 = s
		case "h6":
			h.H6 = s
		case "default":
			h.Default = s
		default:
			warn("ignoring unknown heading level %q in %scolors.headings", key, prefix)
		}
	}
	return h, nil
}

// scalarString returns the text of a decoded scalar. Numbers and booleans
// are accepted the way an unquoted YAML value reads.
func scalarString(v any) (string, bool) {
	switch v := v.(type) {
	case string:
		return v, true
	case int, int64, uint64, float64, bool:
		return fmt.Sprint(v), true
	default:
		return "", false
	}
}

func (f *fontFile) spec() FontSpec {
	if f == nil {
		return FontSpec{}
	}
	return FontSpec{
		Family:     f.Family,
		MonoFamily: f.MonoFamily,
		Size:       f.Size,
	}
}
