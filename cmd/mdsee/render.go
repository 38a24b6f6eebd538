package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var renderOpts struct {
	theme  string
	output string
}

var renderCmd = &cobra.Command{
	Use:   "render <file>",
	Short: "Render a markdown file to HTML",
	Long: `Render a markdown file into a complete HTML page.

Use "-" as the file to read markdown from stdin. The page is written to
stdout unless --output is given.

Examples:
  # Render with the configured (or default) theme
  mdsee render README.md > readme.html

  # Render with a specific theme into a file
  mdsee render notes.md -t nord -o notes.html

  # Render from a pipe
  cat CHANGELOG.md | mdsee render - -t github-dark`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)
	addRenderFlags(renderCmd)
}

func addRenderFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&renderOpts.theme, "theme", "t", "",
		"Theme name (default: config theme, then \"default\")")
	cmd.Flags().StringVarP(&renderOpts.output, "output", "o", "",
		"Write the page to this file instead of stdout")
}

func runRender(cmd *cobra.Command, args []string) error {
	path := args[0]
	p := newPreviewer()

	if path == "-" {
		source, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		page := p.RenderSource(source, "stdin", "", renderOpts.theme)
		return writePage(cmd, page.HTML)
	}

	if err := checkSource(path); err != nil {
		return err
	}

	page := p.Render(path, renderOpts.theme)
	if err := writePage(cmd, page.HTML); err != nil {
		return err
	}
	logger.Debug("rendered", "source", path, "theme", page.Theme, "base", page.BaseURL)
	return page.Err
}

// checkSource reports a missing or unreadable source before rendering.
func checkSource(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("file does not exist: %s", path)
		}
		return fmt.Errorf("cannot access file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("not a file: %s", path)
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("file is not readable: %s", path)
	}
	return f.Close()
}

func writePage(cmd *cobra.Command, html string) error {
	if renderOpts.output == "" || renderOpts.output == "-" {
		_, err := io.WriteString(cmd.OutOrStdout(), html)
		return err
	}
	if err := writeFileAtomic(renderOpts.output, []byte(html)); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s (%s)\n", renderOpts.output, humanize.Bytes(uint64(len(html))))
	return nil
}
