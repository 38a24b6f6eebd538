package theme

import (
	"embed"
	"io/fs"
	"path"
	"strings"
)

// embeddedThemes contains all bundled theme definition files.
//
//go:embed themes/*.yaml
var embeddedThemes embed.FS

// BundledThemes lists all embedded theme names.
var BundledThemes = []string{"default", "github-dark", "github-light", "nord", "solarized"}

// Bundled returns the bundled theme files as a filesystem rooted at the
// directory containing them.
func Bundled() fs.FS {
	sub, err := fs.Sub(embeddedThemes, "themes")
	if err != nil {
		// fs.Sub only fails for invalid paths.
		panic(err)
	}
	return sub
}

// GetEmbeddedTheme returns the raw source of a bundled theme by file stem.
func GetEmbeddedTheme(name string) (string, bool) {
	data, err := embeddedThemes.ReadFile(path.Join("themes", name+".yaml"))
	if err != nil {
		return "", false
	}
	return string(data), true
}

// ListEmbeddedThemes returns the file stems of all bundled themes.
func ListEmbeddedThemes() []string {
	entries, err := fs.ReadDir(embeddedThemes, "themes")
	if err != nil {
		return BundledThemes
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !IsThemeFile(entry.Name()) {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), path.Ext(entry.Name())))
	}
	return names
}
