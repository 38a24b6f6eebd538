package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/mdsee/internal/theme"
)

var themesOpts struct {
	long    bool
	preview bool
	export  string
}

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List available themes",
	Long: `List the names of all available themes, sorted.

User themes in the themes directory override bundled themes of the same name.

Examples:
  # Names only
  mdsee themes

  # Mode, source and description
  mdsee themes --long

  # Color swatches for each mode
  mdsee themes --preview

  # Copy a bundled theme into the user directory to customize it
  mdsee themes --export nord > ~/.config/mdsee/themes/nord.yaml`,
	Args: cobra.NoArgs,
	RunE: runThemes,
}

func init() {
	rootCmd.AddCommand(themesCmd)

	themesCmd.Flags().BoolVarP(&themesOpts.long, "long", "l", false,
		"Show mode, source and description")
	themesCmd.Flags().BoolVarP(&themesOpts.preview, "preview", "p", false,
		"Show color swatches")
	themesCmd.Flags().StringVar(&themesOpts.export, "export", "",
		"Print the source of a bundled theme")
}

func runThemes(cmd *cobra.Command, args []string) error {
	catalog := loadCatalog()
	out := cmd.OutOrStdout()

	switch {
	case themesOpts.export != "":
		src, found := theme.GetEmbeddedTheme(themesOpts.export)
		if !found {
			return fmt.Errorf("no bundled theme %q (bundled: %s)",
				themesOpts.export, strings.Join(theme.ListEmbeddedThemes(), ", "))
		}
		_, err := io.WriteString(out, src)
		return err

	case themesOpts.preview:
		for _, name := range catalog.Names() {
			t, _ := catalog.Get(name)
			writePreview(out, t)
		}
		return nil

	case themesOpts.long:
		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tMODE\tSOURCE\tDESCRIPTION")
		for _, name := range catalog.Names() {
			t, _ := catalog.Get(name)
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", t.Name, modeLabel(t), sourceLabel(t.Source), t.Description)
		}
		return tw.Flush()

	default:
		for _, name := range catalog.Names() {
			fmt.Fprintln(out, name)
		}
		return nil
	}
}

// modeLabel describes which appearance modes a theme defines.
func modeLabel(t *theme.ResolvedTheme) string {
	switch {
	case t.Adaptive():
		return "adaptive"
	case t.HasDark:
		return "dark"
	default:
		return "light"
	}
}

// sourceLabel shortens bundled sources and annotates user files with their
// modification time.
func sourceLabel(source string) string {
	if strings.HasPrefix(source, "bundled:") {
		return "bundled"
	}
	info, err := os.Stat(source)
	if err != nil {
		return source
	}
	return fmt.Sprintf("%s (modified %s)", source, humanize.Time(info.ModTime()))
}

// writePreview prints one line of swatches per mode the theme defines.
func writePreview(w io.Writer, t *theme.ResolvedTheme) {
	nameStyle := lipgloss.NewStyle().Bold(true).Width(16)

	modes := []theme.Mode{t.PrimaryMode()}
	if t.Adaptive() {
		modes = []theme.Mode{theme.ModeLight, theme.ModeDark}
	}

	for i, m := range modes {
		label := t.Name
		if i > 0 {
			label = ""
		}
		fmt.Fprintf(w, "%s %-5s %s\n", nameStyle.Render(label), m, swatches(t.Colors(m)))
	}
}

// swatches renders sample text in the palette's colors on its background.
func swatches(c theme.ColorPalette) string {
	base := lipgloss.NewStyle().
		Background(lipgloss.Color(c.Background)).
		Padding(0, 1)

	parts := []string{
		base.Foreground(lipgloss.Color(c.Text)).Render("text"),
		base.Foreground(lipgloss.Color(c.HeadingColor(1))).Bold(true).Render("heading"),
		base.Foreground(lipgloss.Color(c.Links)).Underline(true).Render("link"),
		lipgloss.NewStyle().
			Background(lipgloss.Color(c.CodeBackground)).
			Foreground(lipgloss.Color(c.Text)).
			Padding(0, 1).
			Render("code"),
		base.Foreground(lipgloss.Color(c.BlockquoteText)).Render("quote"),
		lipgloss.NewStyle().
			Background(lipgloss.Color(c.ErrorBackground)).
			Foreground(lipgloss.Color(c.ErrorText)).
			Padding(0, 1).
			Render("error"),
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}
