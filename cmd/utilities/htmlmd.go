// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/utilities/internal/htmlmd"
	"github.com/pdiddy/utilities/internal/httputil"
)

var htmlmdCmd = &cobra.Command{
	Use:   "html-to-markdown",
	Short: "Convert a web page or HTML file to Markdown",
	Long: `Html-to-markdown converts one HTML document to Markdown. Give exactly one
of --in_url and --in_html. The Markdown goes to --out_markdown, written
atomically, or to stdout.

Engines:
  builtin  in-process converter (default)
  pandoc   runs pandoc from PATH, or the pandoc/core image through docker
           or podman; raw HTML is always suppressed in the output`,
	Args: cobra.NoArgs,
	RunE: runHTMLToMarkdown,
}

func init() {
	htmlmdCmd.Flags().String("in_url", "", "URL of the page to convert")
	htmlmdCmd.Flags().String("in_html", "", "path of a local HTML file to convert")
	htmlmdCmd.Flags().String("out_markdown", "", "Markdown file to write (default stdout)")
	htmlmdCmd.Flags().String("engine", "", "conversion engine: builtin or pandoc (default builtin)")
	htmlmdCmd.Flags().String("output_format", "", "pandoc output format (default gfm-raw_html)")
	htmlmdCmd.Flags().String("pandoc-image", "", "container image used when pandoc is not on PATH")
	htmlmdCmd.Flags().Duration("timeout", 0, "HTTP timeout for --in_url (default 30s)")
	htmlmdCmd.Flags().Bool("frontmatter", false, "prepend YAML frontmatter naming the source")
	bindFlag("htmlmd.engine", htmlmdCmd.Flags().Lookup("engine"))
	bindFlag("htmlmd.output_format", htmlmdCmd.Flags().Lookup("output_format"))
	bindFlag("htmlmd.pandoc_image", htmlmdCmd.Flags().Lookup("pandoc-image"))
	bindFlag("htmlmd.timeout", htmlmdCmd.Flags().Lookup("timeout"))

	rootCmd.AddCommand(htmlmdCmd)
}

func runHTMLToMarkdown(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	inURL, _ := cmd.Flags().GetString("in_url")
	inHTML, _ := cmd.Flags().GetString("in_html")
	outPath, _ := cmd.Flags().GetString("out_markdown")
	frontmatter, _ := cmd.Flags().GetBool("frontmatter")

	src := htmlmd.Source{URL: inURL, Path: inHTML}
	if err := src.Validate(); err != nil {
		return err
	}

	ctx := cmd.Context()
	conv, err := htmlmd.NewConverter(ctx, cfg.HTML)
	if err != nil {
		return err
	}

	_, err = htmlmd.Convert(ctx, conv, htmlmd.Options{
		Source:      src,
		OutPath:     outPath,
		Frontmatter: frontmatter,
		UserAgent:   cfg.HTML.UserAgent,
		Client:      httputil.NewClient(cfg.HTML.Timeout),
		Stdout:      cmd.OutOrStdout(),
	})
	return err
}
