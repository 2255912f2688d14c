// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package htmlmd converts a single HTML document, fetched from a URL or read
// from disk, into Markdown. The whole document is held in memory.
package htmlmd

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/utilities/internal/logging"
)

// Options describes one conversion.
type Options struct {
	Source Source

	// OutPath is the Markdown file to write. Empty writes to Stdout.
	OutPath string

	// Frontmatter prepends a YAML block naming the source.
	Frontmatter bool

	UserAgent string
	Client    *http.Client

	// Stdout receives the Markdown when OutPath is empty.
	Stdout io.Writer
}

// Result reports what a conversion produced.
type Result struct {
	Markdown string
	OutPath  string
	Bytes    int
}

// Convert loads the source, converts it with c and writes the Markdown.
func Convert(ctx context.Context, c Converter, opts Options) (Result, error) {
	if err := opts.Source.Validate(); err != nil {
		return Result{}, err
	}
	log := logging.FromContext(ctx)

	client := opts.Client
	if client == nil {
		client = http.DefaultClient
	}

	html, err := opts.Source.Load(ctx, client, opts.UserAgent)
	if err != nil {
		return Result{}, err
	}
	log.Debug("loaded html", "source", opts.Source.String(), "bytes", len(html))

	md, err := c.Convert(ctx, html, opts.Source.URL)
	if err != nil {
		return Result{}, err
	}
	if !strings.HasSuffix(md, "\n") {
		md += "\n"
	}
	if opts.Frontmatter {
		md, err = addFrontmatter(opts.Source, md, time.Now())
		if err != nil {
			return Result{}, err
		}
	}

	res := Result{Markdown: md, OutPath: opts.OutPath, Bytes: len(md)}
	if opts.OutPath == "" {
		w := opts.Stdout
		if w == nil {
			w = os.Stdout
		}
		if _, err := io.WriteString(w, md); err != nil {
			return Result{}, fmt.Errorf("writing markdown: %w", err)
		}
		return res, nil
	}

	if err := writeFileAtomic(opts.OutPath, []byte(md)); err != nil {
		return Result{}, err
	}
	log.Info("wrote markdown", "path", opts.OutPath, "bytes", len(md))
	return res, nil
}

type frontmatter struct {
	Source      string `yaml:"source"`
	ConvertedAt string `yaml:"converted_at"`
}

// addFrontmatter prepends a YAML frontmatter block to body.
func addFrontmatter(src Source, body string, now time.Time) (string, error) {
	data, err := yaml.Marshal(frontmatter{
		Source:      src.String(),
		ConvertedAt: now.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return "", fmt.Errorf("encoding frontmatter: %w", err)
	}
	var b strings.Builder
	b.WriteString("---\n")
	b.Write(data)
	b.WriteString("---\n\n")
	b.WriteString(body)
	return b.String(), nil
}

// writeFileAtomic writes data to a temporary file next to path and renames
// it into place, so readers never see a partial file.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".htmlmd-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	_, writeErr := tmp.Write(data)
	closeErr := tmp.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w", path, writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
