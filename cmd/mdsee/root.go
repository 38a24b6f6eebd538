package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/mdsee/internal/config"
	"github.com/jmylchreest/mdsee/internal/layout"
	"github.com/jmylchreest/mdsee/internal/preview"
	"github.com/jmylchreest/mdsee/internal/theme"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Global configuration and state
var (
	cfg        *config.Config
	globalOpts struct {
		verbose    bool
		configPath string
		themesDir  string
	}
	logger *slog.Logger
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "mdsee [file]",
	Short: "Render markdown files as themed HTML pages",
	Long: `mdsee renders a markdown file into a self-contained, themed HTML page.

Themes are YAML or TOML files. Bundled themes can be overridden or extended
by placing files in ~/.config/mdsee/themes. Adaptive themes follow the
viewer's light/dark preference through a prefers-color-scheme media query.

Running mdsee with a file argument is the same as "mdsee render <file>".`,
	Version:      fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogger()

		var err error
		cfg, err = config.LoadConfig(globalOpts.configPath)
		if err != nil {
			// A broken config should not stop a preview
			logger.Warn("failed to load config, using defaults", "error", err)
			cfg = config.DefaultConfig()
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return runRender(cmd, args)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: ~/.config/mdsee/config.toml)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.themesDir, "themes-dir", "",
		"Directory of user themes (default: ~/.config/mdsee/themes)")

	// Root accepts the render flags so "mdsee file.md -t nord" works
	addRenderFlags(rootCmd)
}

// setupLogger configures the global slog logger.
func setupLogger() {
	level := slog.LevelWarn
	if globalOpts.verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Log to stderr so stdout is clean for output
	handler := slog.NewTextHandler(os.Stderr, opts)
	logger = slog.New(handler)
	slog.SetDefault(logger)
}

// userThemesDir returns the user theme directory from the flag or the
// default location. Empty when neither is available.
func userThemesDir() string {
	if globalOpts.themesDir != "" {
		return globalOpts.themesDir
	}
	dir, err := theme.ThemesDir()
	if err != nil {
		logger.Debug("cannot determine themes directory", "error", err)
		return ""
	}
	return dir
}

// loadCatalog builds the theme catalog from bundled and user themes.
func loadCatalog() *theme.Catalog {
	return theme.LoadCatalog(theme.Bundled(), userThemesDir(), logger)
}

// templateLoader returns the page template loader for the current config.
func templateLoader() *layout.Loader {
	return layout.NewLoader(cfg.TemplatePath(), logger)
}

// newPreviewer wires the catalog, template and config into a Previewer.
func newPreviewer() *preview.Previewer {
	return preview.New(preview.Options{
		Catalog:       loadCatalog(),
		Template:      templateLoader().Load(),
		ThemeName:     cfg.Theme,
		HighlightBase: cfg.Render.HighlightBase,
		Logger:        logger,
	})
}
