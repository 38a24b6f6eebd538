package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/mdsee/internal/theme"
	"github.com/jmylchreest/mdsee/internal/watch"
)

var watchOpts struct {
	theme  string
	output string
}

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Re-render a markdown file whenever it changes",
	Long: `Render a markdown file to an HTML page and keep it up to date.

The page is re-rendered when the markdown file changes, when a theme file in
the user themes directory changes, or when the page template changes. Point a
browser with auto-reload at the output file for a live preview.

Debounce and polling are configured in the [watch] section of the config.

Examples:
  mdsee watch README.md -o /tmp/readme.html
  mdsee watch notes.md -o notes.html -t solarized`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&watchOpts.theme, "theme", "t", "",
		"Theme name (default: config theme, then \"default\")")
	watchCmd.Flags().StringVarP(&watchOpts.output, "output", "o", "",
		"File to write the page to (required)")
	_ = watchCmd.MarkFlagRequired("output")
}

func runWatch(cmd *cobra.Command, args []string) error {
	path := args[0]
	if err := checkSource(path); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p := newPreviewer()
	loader := templateLoader()

	// Callbacks for different targets run on separate timers
	var mu sync.Mutex
	rerender := func(reason string) {
		mu.Lock()
		defer mu.Unlock()

		start := time.Now()
		page := p.Render(path, watchOpts.theme)
		if err := writeFileAtomic(watchOpts.output, []byte(page.HTML)); err != nil {
			logger.Warn("failed to write output", "path", watchOpts.output, "error", err)
			return
		}
		if page.Err != nil {
			// The error page was written; the next change retries
			logger.Warn("render failed", "source", path, "error", page.Err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "%s %s -> %s (%s, %s, theme %s)\n",
			time.Now().Format("15:04:05"), reason, watchOpts.output,
			humanize.Bytes(uint64(len(page.HTML))), time.Since(start).Round(time.Millisecond), page.Theme)
	}

	w := watch.New(watch.Options{
		Debounce:     cfg.Watch.Debounce.Duration(),
		PollInterval: cfg.Watch.PollInterval.Duration(),
		Logger:       logger,
	})

	if err := w.AddFile(path, func() { rerender("source changed") }); err != nil {
		return err
	}
	if dir := userThemesDir(); dir != "" {
		err := w.AddDir(dir, theme.IsThemeFile, func() {
			p.SetCatalog(loadCatalog())
			rerender("themes changed")
		})
		if err != nil {
			return err
		}
	}
	if tmplPath := cfg.TemplatePath(); tmplPath != "" {
		err := w.AddFile(tmplPath, func() {
			p.SetTemplate(loader.Load())
			rerender("template changed")
		})
		if err != nil {
			return err
		}
	}

	rerender("rendered")

	if err := w.Start(ctx); err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer w.Stop()

	<-ctx.Done()
	return nil
}
