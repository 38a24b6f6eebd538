package theme

// Resolve fills in a Definition against the built-in defaults.
//
// Adaptive definitions merge each supplied side against its default and
// synthesize a missing side entirely from defaults. Single-mode definitions
// merge the authored side only; the other side is the pure default.
// Unrecognized mode tags resolve as light; the loader rejects them earlier.
func Resolve(def Definition) *ResolvedTheme {
	t := &ResolvedTheme{
		Name:        def.Name,
		Description: def.Description,
	}

	switch def.Form() {
	case FormAdaptive:
		t.HasLight = def.Light != nil
		t.HasDark = def.Dark != nil

		light := modeOrZero(def.Light)
		dark := modeOrZero(def.Dark)

		t.LightColors = light.Colors.Merge(DefaultLightPalette)
		t.DarkColors = dark.Colors.Merge(DefaultDarkPalette)
		t.LightFont = light.Font.Merge(DefaultFont)
		t.DarkFont = dark.Font.Merge(DefaultFont)
		t.LightHighlight = or(light.Highlight, DefaultLightHighlight)
		t.DarkHighlight = or(dark.Highlight, DefaultDarkHighlight)

	case FormSingle:
		mode, ok := ParseMode(def.Mode)
		if !ok {
			mode = ModeLight
		}

		t.LightColors = DefaultLightPalette
		t.DarkColors = DefaultDarkPalette
		t.LightFont = DefaultFont
		t.DarkFont = DefaultFont
		t.LightHighlight = DefaultLightHighlight
		t.DarkHighlight = DefaultDarkHighlight

		if mode == ModeDark {
			t.HasDark = true
			t.DarkColors = def.Colors.Merge(DefaultDarkPalette)
			t.DarkFont = def.Font.Merge(DefaultFont)
			t.DarkHighlight = or(def.Highlight, DefaultDarkHighlight)
		} else {
			t.HasLight = true
			t.LightColors = def.Colors.Merge(DefaultLightPalette)
			t.LightFont = def.Font.Merge(DefaultFont)
			t.LightHighlight = or(def.Highlight, DefaultLightHighlight)
		}
	}

	return t
}

func modeOrZero(m *ModeConfig) ModeConfig {
	if m == nil {
		return ModeConfig{}
	}
	return *m
}
