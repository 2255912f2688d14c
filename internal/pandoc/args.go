// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pandoc

import "strings"

// InputFormat reads HTML while dropping div/span containers (their contents
// are kept).
const InputFormat = "html-native_divs-native_spans"

// DefaultOutputFormat is GitHub-flavoured Markdown without raw HTML.
const DefaultOutputFormat = "gfm-raw_html"

// NormalizeOutputFormat turns raw HTML passthrough off for any writer
// format: "+raw_html" becomes "-raw_html", and "-raw_html" is appended when
// the format does not mention the extension.
func NormalizeOutputFormat(format string) string {
	format = strings.TrimSpace(format)
	if format == "" {
		return DefaultOutputFormat
	}
	format = strings.ReplaceAll(format, "+raw_html", "-raw_html")
	if !strings.Contains(format, "raw_html") {
		format += "-raw_html"
	}
	return format
}

// HTMLToMarkdownArgs returns the pandoc arguments for converting HTML on
// stdin to outputFormat on stdout without hard line wrapping.
func HTMLToMarkdownArgs(outputFormat string) []string {
	return []string{
		"--from=" + InputFormat,
		"--to=" + NormalizeOutputFormat(outputFormat),
		"--wrap=none",
	}
}
