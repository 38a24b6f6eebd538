package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/mdsee/internal/theme"
)

var cssOpts struct {
	links bool
}

var cssCmd = &cobra.Command{
	Use:   "css [theme]",
	Short: "Print the CSS generated for a theme",
	Long: `Print the CSS custom properties generated for a theme.

Without a theme name the configured theme (or "default") is used.
With --links the highlight.js stylesheet links are printed as well.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCSS,
}

func init() {
	rootCmd.AddCommand(cssCmd)

	cssCmd.Flags().BoolVar(&cssOpts.links, "links", false,
		"Also print highlight.js <link> tags")
}

func runCSS(cmd *cobra.Command, args []string) error {
	name := cfg.Theme
	if len(args) == 1 {
		name = args[0]
	}

	catalog := loadCatalog()
	t, found := catalog.Lookup(name)
	if !found {
		return fmt.Errorf("unknown theme %q (available: %v)", name, catalog.Names())
	}

	out := cmd.OutOrStdout()
	fmt.Fprint(out, theme.CSS(t))
	if cssOpts.links {
		fmt.Fprintln(out)
		fmt.Fprintln(out, theme.HighlightLinksHTML(t, cfg.Render.HighlightBase))
	}
	return nil
}
