// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package htmlmd

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"

	"github.com/pdiddy/utilities/internal/pandoc"
	"github.com/pdiddy/utilities/pkg/types"
)

// Converter transforms an HTML document into Markdown. baseURL, when set,
// is the address the document was fetched from.
type Converter interface {
	Convert(ctx context.Context, html, baseURL string) (string, error)
}

// BuiltinConverter converts in-process with html-to-markdown.
type BuiltinConverter struct{}

// Convert implements Converter. Relative links and images are resolved
// against baseURL when it is set.
func (BuiltinConverter) Convert(ctx context.Context, html, baseURL string) (string, error) {
	opts := []converter.ConvertOptionFunc{converter.WithContext(ctx)}
	if baseURL != "" {
		opts = append(opts, converter.WithDomain(baseURL))
	}
	md, err := htmltomarkdown.ConvertString(html, opts...)
	if err != nil {
		return "", fmt.Errorf("converting HTML to markdown: %w", err)
	}
	return md, nil
}

// PandocConverter pipes the document through pandoc.
type PandocConverter struct {
	Runner       pandoc.Runner
	OutputFormat string
}

// Convert implements Converter. baseURL is not used.
func (p *PandocConverter) Convert(ctx context.Context, html, _ string) (string, error) {
	var out bytes.Buffer
	args := pandoc.HTMLToMarkdownArgs(p.OutputFormat)
	if err := p.Runner.Run(ctx, args, strings.NewReader(html), &out); err != nil {
		return "", fmt.Errorf("converting with %s: %w", p.Runner.Name(), err)
	}
	return out.String(), nil
}

// NewConverter returns the converter for cfg.Engine. The pandoc engine
// needs pandoc on PATH or a container runtime with cfg.PandocImage.
func NewConverter(ctx context.Context, cfg types.HTMLConfig) (Converter, error) {
	switch cfg.Engine {
	case types.EngineBuiltin, "":
		return BuiltinConverter{}, nil
	case types.EnginePandoc:
		r, err := pandoc.Detect(ctx, cfg.PandocImage)
		if err != nil {
			return nil, err
		}
		return &PandocConverter{Runner: r, OutputFormat: cfg.OutputFormat}, nil
	default:
		return nil, fmt.Errorf("unknown engine %q: use builtin or pandoc", cfg.Engine)
	}
}
