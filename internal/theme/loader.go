package theme

import (
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
)

// Catalog maps theme names to resolved themes.
// A Catalog is built once by LoadCatalog and is read-only afterwards, so it
// can be shared between goroutines without locking.
type Catalog struct {
	themes map[string]*ResolvedTheme
}

// ThemesDir returns the path to the user's themes directory.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ThemesDir() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "mdsee", "themes"), nil
}

// LoadCatalog scans the bundled themes and then userDir (non-recursively).
// Themes are keyed by their declared name; a user theme replaces a bundled
// one with the same name. Files that cannot be read or parsed are skipped.
// A missing or empty userDir is not an error.
func LoadCatalog(bundled fs.FS, userDir string, logger *slog.Logger) *Catalog {
	if logger == nil {
		logger = slog.Default()
	}

	themes := make(map[string]*ResolvedTheme)
	if bundled != nil {
		for _, t := range loadDir(bundled, "bundled", logger) {
			themes[t.Name] = t
		}
	}

	if userDir != "" {
		info, err := os.Stat(userDir)
		switch {
		case err != nil:
			logger.Debug("user themes directory not available", "path", userDir, "error", err)
		case !info.IsDir():
			logger.Warn("user themes path is not a directory", "path", userDir)
		default:
			for _, t := range loadDir(os.DirFS(userDir), userDir, logger) {
				if prev, ok := themes[t.Name]; ok {
					logger.Debug("user theme overrides existing theme", "name", t.Name, "previous", prev.Source)
				}
				themes[t.Name] = t
			}
		}
	}

	logger.Debug("theme catalog loaded", "count", len(themes))
	return &Catalog{themes: themes}
}

// loadDir parses every theme file at the root of fsys.
// Files are visited in lexical order, so duplicate names within one
// directory resolve deterministically (last file wins).
func loadDir(fsys fs.FS, origin string, logger *slog.Logger) []*ResolvedTheme {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		logger.Warn("failed to read themes directory", "path", origin, "error", err)
		return nil
	}

	var themes []*ResolvedTheme
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !IsThemeFile(name) {
			continue
		}

		source := "bundled:" + name
		if origin != "bundled" {
			source = filepath.Join(origin, name)
		}

		data, err := fs.ReadFile(fsys, path.Clean(name))
		if err != nil {
			logger.Warn("failed to read theme file", "path", source, "error", err)
			continue
		}

		def, err := ParseDefinition(name, data)
		if err != nil {
			logger.Warn("skipping invalid theme file", "path", source, "error", err)
			continue
		}
		for _, w := range def.Warnings {
			logger.Warn("theme file problem", "path", source, "problem", w)
		}

		t := Resolve(def)
		t.Source = source
		themes = append(themes, t)
	}
	return themes
}

// Get returns the theme with the given name.
func (c *Catalog) Get(name string) (*ResolvedTheme, bool) {
	if c == nil {
		return nil, false
	}
	t, ok := c.themes[name]
	return t, ok
}

// Names returns all theme names in lexical order.
func (c *Catalog) Names() []string {
	if c == nil {
		return nil
	}
	names := make([]string, 0, len(c.themes))
	for name := range c.themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of themes in the catalog.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.themes)
}

// Default returns the catalog's "default" theme, or the built-in default
// when none was loaded.
func (c *Catalog) Default() *ResolvedTheme {
	if t, ok := c.Get(DefaultThemeName); ok {
		return t
	}
	return BuiltinDefault()
}

// Lookup returns the named theme, falling back to Default for an empty or
// unknown name. found is false when a non-empty name was not in the catalog.
func (c *Catalog) Lookup(name string) (t *ResolvedTheme, found bool) {
	if name == "" {
		return c.Default(), true
	}
	if t, ok := c.Get(name); ok {
		return t, true
	}
	return c.Default(), false
}
